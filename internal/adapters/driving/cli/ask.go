package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask [doc-id] [question]",
	Short: "Ask a question about a document",
	Long: `Retrieves the most relevant passages from a READY document and asks
the configured model to answer based on them.`,
	Args: cobra.ExactArgs(2),
	RunE: runAsk,
}

var (
	askTopKFlag     int
	askContextsFlag bool
)

var historyCmd = &cobra.Command{
	Use:   "history [doc-id]",
	Short: "Show past questions and answers for a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistory,
}

func init() {
	askCmd.Flags().IntVarP(&askTopKFlag, "top-k", "k", 0, "Number of passages given to the model (0 = default)")
	askCmd.Flags().BoolVarP(&askContextsFlag, "contexts", "c", false, "Print the passages the answer is based on")

	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(historyCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if qaService == nil {
		return errors.New("question answering not configured; set an LLM provider in the config")
	}

	documentID, question := args[0], args[1]
	answer, err := qaService.Ask(context.Background(), userFlag, documentID, question, askTopKFlag)
	if err != nil {
		return fmt.Errorf("failed to answer question: %w", err)
	}

	cmd.Println(answer.Text)

	if askContextsFlag && len(answer.Contexts) > 0 {
		cmd.Println("\nBased on:")
		for i, excerpt := range answer.Contexts {
			cmd.Printf("\n[%d] (relevance %.2f)\n%s\n", i+1, answer.Scores[i], excerpt)
		}
	}
	return nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	if qaService == nil {
		return errors.New("question answering not configured; set an LLM provider in the config")
	}

	records, err := qaService.History(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	if len(records) == 0 {
		cmd.Println("No questions asked yet.")
		return nil
	}

	for i := range records {
		cmd.Printf("[%s] Q: %s\n", records[i].CreatedAt.Format("2006-01-02 15:04"), records[i].Question)
		cmd.Printf("A: %s\n\n", records[i].Answer)
	}
	return nil
}
