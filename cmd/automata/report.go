package main

import (
	"fmt"
	"os"

	"github.com/aretw0/automata/internal/cli"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/aretw0/automata/pkg/report"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Manage saved run reports",
	Long:  `List, show, and remove reports saved with 'run --save' in the configured store.`,
}

var reportLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List saved runs",
	Run: func(cmd *cobra.Command, args []string) {
		store, closeStore := getStore()
		defer closeStore()

		runs, err := store.List(cmd.Context())
		if err != nil {
			fmt.Printf("Error listing runs: %v\n", err)
			os.Exit(1)
		}

		if len(runs) == 0 {
			fmt.Println("No saved runs found.")
			return
		}

		fmt.Println("Saved Runs:")
		for _, r := range runs {
			fmt.Println("- " + r)
		}
	},
}

var reportShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Print the records of a saved run",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runID := args[0]
		store, closeStore := getStore()
		defer closeStore()

		run, err := store.Load(cmd.Context(), runID)
		if err != nil {
			fmt.Printf("Error loading run '%s': %v\n", runID, err)
			os.Exit(1)
		}

		format, _ := cmd.Flags().GetString("format")
		switch format {
		case "yaml":
			data, err := report.YAML(run.Records)
			if err != nil {
				fmt.Printf("Error rendering run: %v\n", err)
				os.Exit(1)
			}
			fmt.Print(string(data))
		case "markdown":
			fmt.Print(report.Markdown(run.Records))
		default:
			fmt.Println(report.Format(run.Records))
		}
	},
}

var reportRmCmd = &cobra.Command{
	Use:   "rm <run-id>...",
	Short: "Remove one or more saved runs",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store, closeStore := getStore()
		defer closeStore()
		hasError := false

		for _, runID := range args {
			if err := store.Delete(cmd.Context(), runID); err != nil {
				fmt.Printf("Error removing '%s': %v\n", runID, err)
				hasError = true
			} else {
				fmt.Printf("Removed run '%s'\n", runID)
			}
		}

		if hasError {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.AddCommand(reportLsCmd)
	reportCmd.AddCommand(reportShowCmd)
	reportCmd.AddCommand(reportRmCmd)

	reportShowCmd.Flags().String("format", "text", "Output format: text, markdown or yaml")
}

func getStore() (ports.ReportStore, func() error) {
	store, closeStore, err := cli.OpenStore(settings)
	if err != nil {
		fmt.Printf("Error opening store: %v\n", err)
		os.Exit(1)
	}
	return store, closeStore
}
