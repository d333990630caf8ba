package main

import (
	"fmt"
	"os"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <machine-file>",
	Short: "Export the machine visualization",
	Long:  `Builds a machine description and outputs a Mermaid diagram (graph LR) of its states and transitions.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		engine := automata.New()

		m, err := engine.UploadFile(cmd.Context(), args[0])
		if m == nil {
			fmt.Printf("Error loading machine: %v\n", err)
			os.Exit(1)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}

		fmt.Print(graph.GenerateMermaid(m))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
