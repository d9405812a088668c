package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "surveyflow",
	Short: "surveyflow drives conversational surveys from static graph definitions",
	Long: `surveyflow is a conversational survey engine: it interprets directed
graphs of typed steps (bot messages, options, free text, dropdowns), captures
answers into named variables, and serves them to a chat widget UI.`,
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
	rootCmd.PersistentFlags().String("catalogue", "", "Path to a YAML survey catalogue (default: shipped surveys)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
}
