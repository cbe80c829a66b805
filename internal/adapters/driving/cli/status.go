package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/legalease-labs/legalease/internal/core/domain"
)

var statusCmd = &cobra.Command{
	Use:   "status [doc-id]",
	Short: "Show a document's processing status",
	Args:  cobra.ExactArgs(1),
	RunE:  runStatus,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List your documents",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(listCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	if ingestionService == nil {
		return errors.New("ingestion service not configured")
	}

	doc, err := ingestionService.Status(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get document status: %w", err)
	}

	printDocument(cmd, doc)
	return nil
}

func runList(cmd *cobra.Command, _ []string) error {
	if ingestionService == nil {
		return errors.New("ingestion service not configured")
	}

	docs, err := ingestionService.List(context.Background(), userFlag)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Println("No documents found.")
		return nil
	}

	for i := range docs {
		cmd.Printf("  %s\n", docs[i].ID)
		cmd.Printf("    File:   %s\n", docs[i].Filename)
		cmd.Printf("    Status: %s\n", docs[i].Status)
		switch docs[i].Status {
		case domain.StatusReady:
			cmd.Printf("    Chunks: %d\n", docs[i].ChunksCount)
		case domain.StatusFailed:
			cmd.Printf("    Error:  %s\n", docs[i].Error)
		}
		cmd.Println()
	}

	cmd.Printf("Total: %d documents\n", len(docs))
	return nil
}

// printDocument prints one document record.
func printDocument(cmd *cobra.Command, doc *domain.Document) {
	cmd.Printf("Document: %s\n\n", doc.ID)
	cmd.Printf("  File:     %s\n", doc.Filename)
	cmd.Printf("  Status:   %s\n", doc.Status)
	if doc.Status == domain.StatusReady {
		cmd.Printf("  Chunks:   %d\n", doc.ChunksCount)
	}
	if doc.Status == domain.StatusFailed && doc.Error != "" {
		cmd.Printf("  Error:    %s\n", doc.Error)
	}
	cmd.Printf("  Created:  %s\n", doc.CreatedAt.Format("2006-01-02 15:04:05"))
	cmd.Printf("  Updated:  %s\n", doc.UpdatedAt.Format("2006-01-02 15:04:05"))
}
