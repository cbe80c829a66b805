package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file]",
	Short: "Upload a document for processing",
	Long: `Validates the file, stores a copy and schedules background processing.
Supported formats: pdf, txt, docx. Use "legalease status" to follow the
document through the pipeline.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

var ingestWaitFlag bool

var reingestCmd = &cobra.Command{
	Use:   "reingest [doc-id]",
	Short: "Reprocess an existing document",
	Long:  `Schedules a fresh processing run, e.g. after a failed ingestion.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runReingest,
}

func init() {
	ingestCmd.Flags().BoolVarP(&ingestWaitFlag, "wait", "w", false, "Block until processing finishes")
	reingestCmd.Flags().BoolVarP(&ingestWaitFlag, "wait", "w", false, "Block until processing finishes")

	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(reingestCmd)
}

// waiter is implemented by ingestion services that can block until all
// scheduled runs finish.
type waiter interface {
	Wait()
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestionService == nil {
		return errors.New("ingestion service not configured")
	}

	ctx := context.Background()
	doc, err := ingestionService.Upload(ctx, args[0], userFlag)
	if err != nil {
		return fmt.Errorf("failed to upload document: %w", err)
	}

	cmd.Printf("Document %s accepted for processing.\n", doc.ID)
	cmd.Printf("  File:   %s\n", doc.Filename)
	cmd.Printf("  Status: %s\n", doc.Status)

	if ingestWaitFlag {
		return waitAndReport(cmd, ctx, doc.ID)
	}
	cmd.Printf("\nRun \"legalease status %s\" to check progress.\n", doc.ID)
	return nil
}

func runReingest(cmd *cobra.Command, args []string) error {
	if ingestionService == nil {
		return errors.New("ingestion service not configured")
	}

	ctx := context.Background()
	if err := ingestionService.Reingest(ctx, args[0]); err != nil {
		return fmt.Errorf("failed to schedule reprocessing: %w", err)
	}

	cmd.Printf("Document %s scheduled for reprocessing.\n", args[0])
	if ingestWaitFlag {
		return waitAndReport(cmd, ctx, args[0])
	}
	return nil
}

// waitAndReport blocks until in-flight processing finishes and prints
// the final status.
func waitAndReport(cmd *cobra.Command, ctx context.Context, documentID string) error {
	w, ok := ingestionService.(waiter)
	if !ok {
		return nil
	}
	w.Wait()

	doc, err := ingestionService.Status(ctx, documentID)
	if err != nil {
		return fmt.Errorf("failed to read final status: %w", err)
	}
	printDocument(cmd, doc)
	return nil
}
