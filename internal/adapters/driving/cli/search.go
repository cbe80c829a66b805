package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search [doc-id] [query]",
	Short: "Find the most relevant passages in a document",
	Long: `Embeds the query and prints the top matching passages with their
similarity scores. Works without an LLM configured.`,
	Args: cobra.ExactArgs(2),
	RunE: runSearch,
}

var searchTopKFlag int

func init() {
	searchCmd.Flags().IntVarP(&searchTopKFlag, "top-k", "k", 3, "Number of passages to return")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if retrievalService == nil {
		return errors.New("retrieval service not configured")
	}

	documentID, query := args[0], args[1]
	results, err := retrievalService.Retrieve(context.Background(), documentID, query, searchTopKFlag, 20)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(results) == 0 {
		cmd.Println("No matching passages found.")
		return nil
	}

	for i, result := range results {
		cmd.Printf("%d. (score %.3f, chunk %d)\n", i+1, result.Score, result.Position)
		cmd.Printf("   %s\n\n", result.Content)
	}
	return nil
}
