package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var askDebug bool

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question against the knowledge base",
	Long: `Retrieves the most relevant ingested content and generates an answer
grounded in it. The sources behind the answer are printed below it and
remain available via the sources command.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askDebug, "debug", false, "print the assembled context before the answer")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if err := requireServices(answerer, attribution); err != nil {
		return err
	}
	ctx := context.Background()
	question := args[0]

	var answer, contextText string
	var err error
	if askDebug {
		answer, contextText, err = answerer.AnswerWithContext(ctx, question)
	} else {
		answer, err = answerer.Answer(ctx, question)
	}
	if err != nil {
		return fmt.Errorf("answer failed: %w", err)
	}

	if askDebug && contextText != "" {
		color.New(color.FgYellow).Fprintln(cmd.OutOrStdout(), "Context:")
		cmd.Println(contextText)
		cmd.Println()
	}

	color.New(color.FgCyan, color.Bold).Fprintln(cmd.OutOrStdout(), "Answer:")
	cmd.Println(answer)

	sources := attribution.LastSources()
	if len(sources) > 0 {
		cmd.Println()
		color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), "Sources:")
		for i, src := range sources {
			cmd.Printf("  [%d] %s (%s, score %.0f) %s\n", i+1, src.Title, src.Type, src.Score, src.Link)
		}
	}
	return nil
}
