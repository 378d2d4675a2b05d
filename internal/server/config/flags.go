package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   gRPC bind address (e.g., ":50051")
//	-d string   PostgreSQL DSN
//	-s string   access token HMAC secret
//	-k string   refresh token HMAC secret
//	-t int      access token validity, minutes
//	-r int      refresh token validity, minutes
//	-b int      bcrypt cost
//
// Duration flags are accepted as integers in minutes. A duration is only
// replaced when its flag is given, so finer JSON values survive.
func parseFlags(config *Config) {
	accessTokenValidity, refreshTokenValidity := -1, -1

	err := flagx.Parse(os.Args[1:], []string{"-a", "-d", "-s", "-k", "-t", "-r", "-b"}, func(fs *flag.FlagSet) {
		fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
		fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
		fs.StringVar(&config.AccessTokenSecret, "s", config.AccessTokenSecret, "access token secret")
		fs.StringVar(&config.RefreshTokenSecret, "k", config.RefreshTokenSecret, "refresh token secret")
		fs.IntVar(&accessTokenValidity, "t", accessTokenValidity, "access_token_validity_duration (in minutes)")
		fs.IntVar(&refreshTokenValidity, "r", refreshTokenValidity, "refresh_token_validity_duration (in minutes)")
		fs.IntVar(&config.BcryptCost, "b", config.BcryptCost, "bcrypt cost")
	})
	if err != nil {
		panic(err)
	}

	if accessTokenValidity >= 0 {
		config.AccessTokenValidityDuration = time.Duration(accessTokenValidity) * time.Minute
	}
	if refreshTokenValidity >= 0 {
		config.RefreshTokenValidityDuration = time.Duration(refreshTokenValidity) * time.Minute
	}
}
