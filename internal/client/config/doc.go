// Package config loads runtime configuration for the gophauth CLI.
//
// Sources, in increasing precedence: built-in defaults, an optional JSON file
// named by -c/-config (or GOPHAUTH_CLIENT_CONFIG), then the short flags -a,
// -i and -w. Durations in JSON are either strings such as "3s" or integer
// nanoseconds:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "online_check_interval": "5s",
//	  "request_timeout": "10s"
//	}
package config
