package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Drop and recreate the vector collection",
	Long: `Destroys every indexed chunk and recreates the collection empty. The
document and note registry is untouched; re-ingest to rebuild the
index. Required after changing the embedding model.`,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&resetYes, "yes", false, "skip the confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, _ []string) error {
	if err := requireServices(vectorStore); err != nil {
		return err
	}

	if !resetYes {
		cmd.Print("This deletes ALL indexed content. Type 'yes' to continue: ")
		reader := bufio.NewReader(cmd.InOrStdin())
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("read confirmation: %w", err)
		}
		if strings.TrimSpace(line) != "yes" {
			cmd.Println("Aborted.")
			return nil
		}
	}

	if err := vectorStore.Reset(context.Background()); err != nil {
		return fmt.Errorf("reset failed: %w", err)
	}
	cmd.Println("Vector collection reset.")
	return nil
}
