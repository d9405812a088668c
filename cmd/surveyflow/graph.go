package main

import (
	"fmt"
	"os"

	"github.com/careerloop/surveyflow"
	"github.com/careerloop/surveyflow/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [survey-id]",
	Short: "Export a survey graph visualization",
	Long:  `Outputs a Mermaid diagram (graph TD) representing the survey's flow logic.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		catalogue, _ := cmd.Flags().GetString("catalogue")

		engineOpts := []surveyflow.Option{}
		if catalogue != "" {
			engineOpts = append(engineOpts, surveyflow.WithCatalogue(catalogue))
		}

		eng, err := surveyflow.New(engineOpts...)
		if err != nil {
			fmt.Printf("Error initializing engine: %v\n", err)
			os.Exit(1)
		}

		reg := eng.Registry()
		surveyID := reg.DefaultID()
		if len(args) > 0 {
			surveyID = args[0]
		}

		def, ok := reg.Lookup(surveyID)
		if !ok {
			fmt.Printf("Unknown survey %q (available: %v)\n", surveyID, reg.IDs())
			os.Exit(1)
		}

		fmt.Print(graph.GenerateMermaid(def))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
