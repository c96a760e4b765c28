package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pietgeursen/bamboo-rs/internal/store"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify an entry file against a payload file and the entry store",
	PreRun: func(cmd *cobra.Command, args []string) {
		configureLogging(cmd, args)
	},
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().String("entry", "", "Path to the encoded entry file to verify")
	verifyCmd.Flags().String("payload", "", "Path to the payload file the entry claims to commit to")

	verifyCmd.MarkFlagRequired("entry")
	verifyCmd.MarkFlagRequired("payload")
}

func runVerify(cmd *cobra.Command, args []string) error {
	logger := zap.L()

	entryPath, _ := cmd.Flags().GetString("entry")
	payloadPath, _ := cmd.Flags().GetString("payload")

	entryBytes, err := os.ReadFile(entryPath)
	if err != nil {
		return fmt.Errorf("read entry: %w", err)
	}
	payload, err := os.ReadFile(payloadPath)
	if err != nil {
		return fmt.Errorf("read payload: %w", err)
	}

	s := openStore(cmd, logger)
	if err := store.Verify(cmd.Context(), s, entryBytes, payload); err != nil {
		return fmt.Errorf("verify: %w", err)
	}

	logger.Info("entry verified ok", zap.String("entry", entryPath))
	fmt.Println("ok")
	return nil
}
