// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the notemigrate CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the notemigrate CLI.
var rootCmd = &cobra.Command{
	Use:   "notemigrate",
	Short: "Convert exported notes into site-ready documents",
	Long: `notemigrate converts a directory of exported HTML notes and their
.resources media folders into documents with YAML front matter, moves all
media into one shared directory and rewrites references to match.

Settings come from flags, NOTEMIGRATE_* environment variables and an
optional notemigrate.yaml config file, in that order of precedence.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./notemigrate.yaml or ~/.config/notemigrate/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("notemigrate")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "notemigrate"))
		}
	}

	viper.SetEnvPrefix("NOTEMIGRATE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
