package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pietgeursen/bamboo-rs/lipmaa"
)

var lipmaaCmd = &cobra.Command{
	Use:   "lipmaa <n>",
	Short: "Print lipmaa(n): the seq number an entry at n links to for skip-verification",
	Args:  cobra.ExactArgs(1),
	RunE:  runLipmaa,
}

func init() {
	rootCmd.AddCommand(lipmaaCmd)
}

func runLipmaa(cmd *cobra.Command, args []string) error {
	n, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("parse n: %w", err)
	}
	fmt.Println(lipmaa.Lipmaa(n))
	return nil
}
