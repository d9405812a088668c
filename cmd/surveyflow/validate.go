package main

import (
	"fmt"
	"os"

	"github.com/careerloop/surveyflow/internal/config"
	"github.com/careerloop/surveyflow/internal/flow"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <catalogue.yaml>",
	Short: "Check a survey catalogue for consistency",
	Long:  `Crawls every survey graph and reports dead links, unreachable steps and bot message cycles.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(args[0]); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Catalogue is valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(path string) error {
	cat, err := config.Load(path)
	if err != nil {
		return err
	}

	for _, def := range cat.Definitions {
		if err := flow.Strict(def); err != nil {
			return err
		}
	}
	return nil
}
