package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pietgeursen/bamboo-rs/internal/store"
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish a new entry extending an author's log in the entry store",
	PreRun: func(cmd *cobra.Command, args []string) {
		configureLogging(cmd, args)
	},
	RunE: runPublish,
}

func init() {
	rootCmd.AddCommand(publishCmd)

	publishCmd.Flags().String("payload", "", "Path to the payload file to publish")
	publishCmd.Flags().String("pub", "", "Path to the author's public key file")
	publishCmd.Flags().String("key", "", "Path to the author's secret key file")
	publishCmd.Flags().Uint64("log-id", 0, "Log id to publish into")
	publishCmd.Flags().Bool("end-of-feed", false, "Mark this entry as the last one in the feed")
	publishCmd.Flags().String("out", "", "Path to write the encoded entry to (default: printed as hex)")

	publishCmd.MarkFlagRequired("payload")
	publishCmd.MarkFlagRequired("pub")
	publishCmd.MarkFlagRequired("key")
}

func runPublish(cmd *cobra.Command, args []string) error {
	logger := zap.L()

	payloadPath, _ := cmd.Flags().GetString("payload")
	pubPath, _ := cmd.Flags().GetString("pub")
	keyPath, _ := cmd.Flags().GetString("key")
	logID, _ := cmd.Flags().GetUint64("log-id")
	isEndOfFeed, _ := cmd.Flags().GetBool("end-of-feed")
	outPath, _ := cmd.Flags().GetString("out")

	payload, err := os.ReadFile(payloadPath)
	if err != nil {
		return fmt.Errorf("read payload: %w", err)
	}
	pub, err := loadPublicKey(pubPath)
	if err != nil {
		return err
	}
	priv, err := loadSecretKey(keyPath)
	if err != nil {
		return err
	}

	s := openStore(cmd, logger)
	entryBytes, err := store.Publish(cmd.Context(), s, store.PublishRequest{
		Payload:     payload,
		PublicKey:   pub,
		SecretKey:   priv,
		LogID:       logID,
		IsEndOfFeed: isEndOfFeed,
	})
	if err != nil {
		return fmt.Errorf("publish: %w", err)
	}

	logger.Info("published entry", zap.Uint64("logId", logID), zap.Int("entryLength", len(entryBytes)))

	if outPath != "" {
		if err := os.WriteFile(outPath, entryBytes, 0o644); err != nil {
			return fmt.Errorf("write entry: %w", err)
		}
		fmt.Printf("wrote %s\n", outPath)
		return nil
	}

	fmt.Println(hex.EncodeToString(entryBytes))
	return nil
}
