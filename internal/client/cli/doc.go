// Package cli provides the interactive gophauth command-line client.
//
// App wires the configuration and the gRPC auth client into a small REPL:
// login, passwd, whoami, logout and exit. Passwords are read from the
// terminal without echo. A background watcher pings the server and shows
// whether it is online in the prompt.
package cli
