package config

import (
	"flag"
	"os"
	"time"

	"github.com/parksujin/lifeshare/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   token HMAC secret key
//	-t int      access token validity, seconds
//	-r int      refresh token validity, seconds
//	-k string   fixed RSA public key (base64 DER)
//	-p string   fixed RSA private key (base64 DER)
//	-e string   AES passphrase for field encryption
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-r", "-k", "-p", "-e"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Seconds()), "access_token_validity_duration (in seconds)")
	refreshTokenValidityDuration := fs.Int("r", int(config.RefreshTokenValidityDuration.Seconds()), "refresh_token_validity_duration (in seconds)")

	fs.StringVar(&config.RSAPublicKey, "k", config.RSAPublicKey, "fixed RSA public key (base64 DER)")
	fs.StringVar(&config.RSAPrivateKey, "p", config.RSAPrivateKey, "fixed RSA private key (base64 DER)")
	fs.StringVar(&config.AESPassphrase, "e", config.AESPassphrase, "AES passphrase")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Second
	config.RefreshTokenValidityDuration = time.Duration(*refreshTokenValidityDuration) * time.Second
}
