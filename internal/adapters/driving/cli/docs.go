package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Manage ingested documents",
	RunE:  runDocsList,
}

var docsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered documents",
	RunE:  runDocsList,
}

var docsDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a document and its indexed content",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocsDelete,
}

func init() {
	docsCmd.AddCommand(docsListCmd)
	docsCmd.AddCommand(docsDeleteCmd)
	rootCmd.AddCommand(docsCmd)
}

func runDocsList(cmd *cobra.Command, _ []string) error {
	if err := requireServices(library); err != nil {
		return err
	}

	docs, err := library.ListDocuments(context.Background())
	if err != nil {
		return fmt.Errorf("list documents: %w", err)
	}
	if len(docs) == 0 {
		cmd.Println("No documents ingested.")
		return nil
	}

	for _, doc := range docs {
		cmd.Printf("%s  %s\n", doc.ID, doc.Title)
		cmd.Printf("    uploaded %s", doc.UploadedAt.Format("2006-01-02 15:04"))
		if doc.Uploader != "" {
			cmd.Printf(" by %s", doc.Uploader)
		}
		cmd.Printf("  (%s)\n", filepath.Join(doc.Folder, doc.Filename))
	}
	return nil
}

func runDocsDelete(cmd *cobra.Command, args []string) error {
	if err := requireServices(library, ingestor); err != nil {
		return err
	}
	ctx := context.Background()
	id := args[0]

	doc, err := library.GetDocument(ctx, id)
	if err != nil {
		return err
	}

	// Chunks first, then the registry record, then the stored file.
	if err := ingestor.DeleteOwner(ctx, id); err != nil {
		return fmt.Errorf("delete chunks: %w", err)
	}
	if err := library.DeleteDocument(ctx, id); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	stored := filepath.Join(uploadsRoot(), doc.Folder, doc.Filename)
	if err := os.Remove(stored); err != nil && !os.IsNotExist(err) {
		cmd.Printf("Warning: could not remove stored file %s: %v\n", stored, err)
	}

	cmd.Printf("Deleted document %s (%s)\n", id, doc.Title)
	return nil
}
