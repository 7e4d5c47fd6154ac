package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Show the sources behind the most recent answer",
	Long: `Prints the deduplicated source list recorded for the last answered
question. Refused questions leave this list untouched.`,
	RunE: runSources,
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}

func runSources(cmd *cobra.Command, _ []string) error {
	if err := requireServices(attribution); err != nil {
		return err
	}

	sources := attribution.LastSources()
	if len(sources) == 0 {
		cmd.Println("No sources recorded yet.")
		return nil
	}

	color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), "Sources:")
	for i, src := range sources {
		cmd.Printf("  [%d] %s (%s, score %.0f) %s\n", i+1, src.Title, src.Type, src.Score, src.Link)
	}
	return nil
}
