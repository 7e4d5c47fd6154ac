// Package cli implements the lorebase command-line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/verdantlabs/lorebase/internal/core/ports/driven"
	"github.com/verdantlabs/lorebase/internal/core/ports/driving"
	"github.com/verdantlabs/lorebase/internal/logger"
)

// version is set via Execute at build time.
var version = "dev"

// Services wired by ensureApp. Commands check for nil so unit tests can
// inject their own implementations.
var (
	ingestor    driving.Ingestor
	answerer    driving.Answerer
	attribution driven.AttributionSink
	library     driven.LibraryStore
	vectorStore driven.VectorStore
	configStore driven.ConfigStore
	promptStore driven.PromptStore
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "lorebase",
	Short: "Team knowledge base with retrieval-augmented answers",
	Long: `Lorebase ingests documents and notes into a searchable knowledge base
and answers questions grounded in the ingested content, with source
attribution for every answer.`,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute(buildVersion string) error {
	if buildVersion != "" {
		version = buildVersion
	}
	return rootCmd.Execute()
}
