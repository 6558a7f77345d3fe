// Command issue-token prints a signed access token for local testing of the
// protected endpoints. It reads the same JWT_* settings as the server.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	jwttoken "nameorigin/internal/jwt_token"
	"nameorigin/internal/platform/config"
)

func main() {
	userID := flag.String("user", "local-dev", "user id placed in the user_id claim")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	flag.Parse()

	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *ttl <= 0 {
		fmt.Fprintln(os.Stderr, "ttl must be positive")
		os.Exit(2)
	}

	svc := jwttoken.NewJWTService(cfg.Auth.JWTSigningKey, cfg.Auth.JWTIssuer, cfg.Auth.JWTAudience)
	token, err := svc.GenerateAccessToken(*userID, *ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sign token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
