package main

import (
	"fmt"
	"os"

	"github.com/aretw0/automata/internal/config"
	"github.com/spf13/cobra"
)

// settings is resolved once per invocation by the root PersistentPreRunE.
var settings = config.Default()

var rootCmd = &cobra.Command{
	Use:   "automata",
	Short: "Automata builds finite automata and tests strings against them",
	Long: `Automata reads line-based machine descriptions, classifies each machine as
DFA, NFA or INVALID, and evaluates candidate strings against every machine.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
			if _, err := config.ParseLevel(cfg.LogLevel); err != nil {
				return err
			}
		}
		settings = cfg
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", config.DefaultPath, "Path to the settings file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error); overrides the settings file")
}
