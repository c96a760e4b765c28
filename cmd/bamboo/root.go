package main

import (
	"os"
	"strings"

	dotenv "github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pietgeursen/bamboo-rs/internal/bambooutil"
	"github.com/pietgeursen/bamboo-rs/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "bamboo",
	Short: "Create, publish, decode, and verify Bamboo append-only log entries",
}

func init() {
	_ = dotenv.Load()

	rootCmd.PersistentFlags().Bool("debug", false, "Enables debug output.")
	rootCmd.PersistentFlags().Bool("json", false, "Enables structured logging in JSON format.")
	rootCmd.PersistentFlags().String("store-dir", "./bamboo-store", "Root directory for the local file-backed entry store.")
	rootCmd.PersistentFlags().String("remote-store", "", "Base URL of a remote bamboo-store HTTP endpoint. When set, overrides --store-dir.")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("store_dir", rootCmd.PersistentFlags().Lookup("store-dir"))
	viper.BindPFlag("remote_store", rootCmd.PersistentFlags().Lookup("remote-store"))

	cobra.OnInitialize(initConfig)
}

func initConfig() {
	viper.SetEnvPrefix("bamboo")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// Execute runs the root command, exiting the process with a non-zero
// status on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func configureLogging(cmd *cobra.Command, _ []string) *zap.Logger {
	debug, _ := cmd.Flags().GetBool("debug")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	logger, err := bambooutil.NewLogger(debug, jsonOutput)
	if err != nil {
		logger, _ = zap.NewProduction()
	}
	zap.ReplaceGlobals(logger)
	return logger
}

func storeDir(cmd *cobra.Command) string {
	if cmd.Flags().Changed("store-dir") {
		dir, _ := cmd.Flags().GetString("store-dir")
		return dir
	}
	return viper.GetString("store_dir")
}

func remoteStoreURL(cmd *cobra.Command) string {
	url, _ := cmd.Flags().GetString("remote-store")
	if url == "" {
		url = viper.GetString("remote_store")
	}
	return url
}

// openStore picks store.HTTPStore when --remote-store (or BAMBOO_REMOTE_STORE)
// names a remote bamboo-store endpoint, falling back to a local store.FileStore
// rooted at --store-dir otherwise.
func openStore(cmd *cobra.Command, logger *zap.Logger) store.EntryStore {
	if url := remoteStoreURL(cmd); url != "" {
		return store.NewHTTPStore(logger, url)
	}
	return store.NewFileStore(storeDir(cmd))
}
