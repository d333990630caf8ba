package main

import (
	"fmt"
	"os"

	"github.com/aretw0/automata/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <machine-file>...",
	Short: "Check machine descriptions",
	Long: `Builds every description, reports its kind and lints it for unreachable
states, epsilon cycles and unused accept states. Exits non-zero when any
machine is INVALID, or with --strict when any machine has warnings.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		strict, _ := cmd.Flags().GetBool("strict")
		err := cli.Validate(cmd.Context(), cli.ValidateOptions{
			Paths:  args,
			Strict: strict,
			Config: settings,
			Out:    os.Stdout,
		})
		if err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("All machines are valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().Bool("strict", false, "Treat lint warnings as failures")
}
