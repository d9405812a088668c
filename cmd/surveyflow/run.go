package main

import (
	"fmt"
	"os"

	"github.com/careerloop/surveyflow/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [survey-id]",
	Short: "Run a survey interactively in the terminal",
	Long:  `Starts a survey session on stdin/stdout, the same flow the chat widget drives over HTTP.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		catalogue, _ := cmd.Flags().GetString("catalogue")
		debug, _ := cmd.Flags().GetBool("debug")

		surveyID := ""
		if len(args) > 0 {
			surveyID = args[0]
		}

		opts := cli.RunOptions{
			CataloguePath: catalogue,
			SurveyID:      surveyID,
			Debug:         debug,
		}
		if err := cli.Run(opts); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
