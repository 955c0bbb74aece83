// Command devtoken prints a locally signed bearer token for development.
//
//	JWT_SECRET=... devtoken -sub auth0|me -email me@example.com
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/hongminglow/homeflow-be/internal/auth"
)

func main() {
	_ = godotenv.Load()
	os.Exit(run(os.Args[1:], os.Getenv, os.Stdout, os.Stderr))
}

func run(args []string, getenv func(string) string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("devtoken", flag.ContinueOnError)
	fs.SetOutput(stderr)
	sub := fs.String("sub", "", "token subject (required)")
	email := fs.String("email", "", "email claim")
	name := fs.String("name", "", "name claim")
	ttl := fs.Duration("ttl", time.Hour, "token lifetime")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	secret := strings.TrimSpace(getenv("JWT_SECRET"))
	if secret == "" {
		fmt.Fprintln(stderr, "devtoken: JWT_SECRET is not set")
		return 1
	}
	if strings.TrimSpace(*sub) == "" || *ttl <= 0 {
		fmt.Fprintln(stderr, "devtoken: -sub is required and -ttl must be positive")
		fs.Usage()
		return 2
	}
	issuer := strings.TrimSpace(getenv("JWT_ISSUER"))
	if issuer == "" {
		issuer = "homeflow"
	}

	token, err := auth.NewTokenManager(secret, issuer, *ttl).Generate(auth.Identity{
		Subject: strings.TrimSpace(*sub),
		Email:   *email,
		Name:    *name,
	})
	if err != nil {
		fmt.Fprintf(stderr, "devtoken: %v\n", err)
		return 1
	}
	fmt.Fprintln(stdout, token)
	return 0
}
