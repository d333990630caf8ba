package main

import (
	"fmt"
	"os"

	"github.com/aretw0/automata/internal/cli"
	"github.com/aretw0/automata/internal/presentation/tui"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <machine-file>...",
	Short: "Build machines and evaluate a batch of strings",
	Long: `Builds every machine description, evaluates each line of the --strings file
against every valid machine and prints the summary report.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		stringsPath, _ := cmd.Flags().GetString("strings")
		saveID, _ := cmd.Flags().GetString("save")
		plain, _ := cmd.Flags().GetBool("plain")
		banner, _ := cmd.Flags().GetBool("banner")

		if banner && !plain {
			tui.PrintBanner(os.Stdout)
		}

		err := cli.Execute(cmd.Context(), cli.RunOptions{
			MachinePaths: args,
			StringsPath:  stringsPath,
			SaveID:       saveID,
			Plain:        plain,
			Config:       settings,
			Out:          os.Stdout,
		})
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("strings", "s", "", "File with one candidate string per line")
	runCmd.Flags().String("save", "", "Persist the report under this run ID")
	runCmd.Flags().Bool("plain", false, "Plain text output (no colors, no markdown rendering)")
	runCmd.Flags().Bool("banner", false, "Print the banner before running")
}
