package main

import (
	"fmt"

	"github.com/careerloop/surveyflow"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of surveyflow",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("surveyflow version %s\n", surveyflow.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
