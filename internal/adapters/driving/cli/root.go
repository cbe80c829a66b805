// Package cli implements the command line interface. Commands are thin
// wrappers around the driving port services; all behaviour lives in the
// core.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/legalease-labs/legalease/internal/core/ports/driving"
	"github.com/legalease-labs/legalease/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services used by the commands. Set by SetServices before Execute.
var (
	ingestionService driving.IngestionService
	retrievalService driving.RetrievalService
	qaService        driving.QAService
)

// verboseFlag enables debug logging on stderr.
var verboseFlag bool

// userFlag identifies the acting user for commands that need one.
var userFlag string

var rootCmd = &cobra.Command{
	Use:   "legalease",
	Short: "Ask questions about your legal documents",
	Long: `LegalEase ingests contracts and other legal documents, indexes them
for semantic search, and answers questions grounded in the text.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&userFlag, "user", "u", "local", "Acting user ID")
}

// SetServices injects the application services into the command tree.
func SetServices(ingestion driving.IngestionService, retrieval driving.RetrievalService, qa driving.QAService) {
	ingestionService = ingestion
	retrievalService = retrieval
	qaService = qa
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
