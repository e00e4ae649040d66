//go:build ignore

// Generates an operator token for the governor write API.
// Run with: GOVERNOR_JWT_SECRET=... go run scripts/generate-jwt.go -sub alice

package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/impactchain/npo-governance/pkg/auth"
)

func main() {
	subject := flag.String("sub", "operator", "Token subject")
	issuer := flag.String("iss", "", "Token issuer, must match auth.issuer when set")
	ttl := flag.Duration("ttl", time.Hour, "Token lifetime")
	secretEnv := flag.String("secret-env", "GOVERNOR_JWT_SECRET", "Env var holding the HMAC secret")
	flag.Parse()

	token, err := auth.IssueToken([]byte(os.Getenv(*secretEnv)), *subject, *issuer, *ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(token)
	fmt.Println()
	fmt.Printf("curl -H \"Authorization: Bearer %s\" -X POST http://localhost:8080/v1/npos -d @npo.json\n", token)
}
