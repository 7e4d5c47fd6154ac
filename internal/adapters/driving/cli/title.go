package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var titleCmd = &cobra.Command{
	Use:   "title [file]",
	Short: "Generate a title for a file without ingesting it",
	Args:  cobra.ExactArgs(1),
	RunE:  runTitle,
}

func init() {
	rootCmd.AddCommand(titleCmd)
}

func runTitle(cmd *cobra.Command, args []string) error {
	if err := requireServices(ingestor); err != nil {
		return err
	}

	title, err := ingestor.GenerateTitle(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("generate title: %w", err)
	}
	cmd.Println(title)
	return nil
}
