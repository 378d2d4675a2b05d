package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/flagx"
)

// parseFlags populates Config from the short flags it owns:
//
//	-a string   address and port of the auth server
//	-i int      online check interval, seconds
//	-w int      per-request timeout, seconds
//
// Durations are only replaced when their flag is given.
func parseFlags(cfg *Config) {
	interval, timeout := -1, -1

	err := flagx.Parse(os.Args[1:], []string{"-a", "-i", "-w"}, func(fs *flag.FlagSet) {
		fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
		fs.IntVar(&interval, "i", interval, "online check interval (in seconds)")
		fs.IntVar(&timeout, "w", timeout, "request timeout (in seconds)")
	})
	if err != nil {
		panic(err)
	}

	if interval >= 0 {
		cfg.OnlineCheckInterval = time.Duration(interval) * time.Second
	}
	if timeout >= 0 {
		cfg.RequestTimeout = time.Duration(timeout) * time.Second
	}
}
