package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pietgeursen/bamboo-rs/entry"
)

var decodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "Decode and pretty-print an entry file",
	PreRun: func(cmd *cobra.Command, args []string) {
		configureLogging(cmd, args)
	},
	RunE: runDecode,
}

func init() {
	rootCmd.AddCommand(decodeCmd)
	decodeCmd.Flags().String("entry", "", "Path to the encoded entry file")
	decodeCmd.MarkFlagRequired("entry")
}

func runDecode(cmd *cobra.Command, args []string) error {
	entryPath, _ := cmd.Flags().GetString("entry")

	raw, err := os.ReadFile(entryPath)
	if err != nil {
		return fmt.Errorf("read entry: %w", err)
	}

	e, err := entry.Decode(raw)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	fmt.Printf("log_id:         %d\n", e.LogID)
	fmt.Printf("seq_num:        %d\n", e.SeqNum)
	fmt.Printf("is_end_of_feed: %t\n", e.IsEndOfFeed)
	fmt.Printf("author:         %s\n", hex.EncodeToString(e.Author.Bytes))
	fmt.Printf("payload_hash:   %s\n", hex.EncodeToString(e.PayloadHash.Bytes))
	fmt.Printf("payload_length: %d\n", e.PayloadLength)
	if e.Backlink != nil {
		fmt.Printf("backlink:       %s\n", hex.EncodeToString(e.Backlink.Bytes))
	}
	if e.LipmaaLink != nil {
		fmt.Printf("lipmaa_link:    %s\n", hex.EncodeToString(e.LipmaaLink.Bytes))
	}
	fmt.Printf("signature:      %s\n", hex.EncodeToString(e.Sig.Bytes))
	return nil
}
