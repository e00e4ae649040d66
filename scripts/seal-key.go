//go:build ignore

// Seals a hex contract key for wallet.sealed_key_file.
// Run with: GOVERNOR_CONTRACT_KEY=0x... GOVERNOR_KEY_PASSPHRASE=... go run scripts/seal-key.go > contract.key

package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/impactchain/npo-governance/pkg/wallet"
)

func main() {
	keyEnv := flag.String("key-env", "GOVERNOR_CONTRACT_KEY", "Env var holding the hex private key")
	passEnv := flag.String("passphrase-env", "GOVERNOR_KEY_PASSPHRASE", "Env var holding the sealing passphrase")
	flag.Parse()

	key, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(os.Getenv(*keyEnv)), "0x"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid key in %s: %v\n", *keyEnv, err)
		os.Exit(1)
	}

	sealed, err := wallet.SealKey(key, []byte(os.Getenv(*passEnv)))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error sealing key: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(sealed)
}
