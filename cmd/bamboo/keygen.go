package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate an Ed25519 keypair and write it to files",
	PreRun: func(cmd *cobra.Command, args []string) {
		configureLogging(cmd, args)
	},
	RunE: runKeygen,
}

func init() {
	rootCmd.AddCommand(keygenCmd)

	keygenCmd.Flags().String("out", "bamboo", "Output file prefix: writes <out>.pub and <out>.key")
}

func runKeygen(cmd *cobra.Command, args []string) error {
	prefix, _ := cmd.Flags().GetString("out")

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return fmt.Errorf("generate keypair: %w", err)
	}

	pubPath := prefix + ".pub"
	keyPath := prefix + ".key"

	if err := os.WriteFile(pubPath, []byte(hex.EncodeToString(pub)), 0o644); err != nil {
		return fmt.Errorf("write public key: %w", err)
	}
	if err := os.WriteFile(keyPath, []byte(hex.EncodeToString(priv)), 0o600); err != nil {
		return fmt.Errorf("write secret key: %w", err)
	}

	fmt.Printf("wrote %s (public) and %s (secret)\n", pubPath, keyPath)
	return nil
}
