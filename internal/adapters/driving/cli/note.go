package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/verdantlabs/lorebase/internal/core/domain"
)

var (
	noteID     string
	noteTitle  string
	noteBody   string
	noteFolder string
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Manage wiki notes",
	RunE:  runNoteList,
}

var noteSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Create or update a note",
	Long: `Saves a note and re-indexes its content. Each note maps to exactly one
chunk: saving replaces the prior chunk wholesale. Pass --id to update
an existing note.`,
	RunE: runNoteSave,
}

var noteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes",
	RunE:  runNoteList,
}

var noteDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a note and its indexed content",
	Args:  cobra.ExactArgs(1),
	RunE:  runNoteDelete,
}

func init() {
	noteSaveCmd.Flags().StringVar(&noteID, "id", "", "note id to update (new note when empty)")
	noteSaveCmd.Flags().StringVar(&noteTitle, "title", "", "note title")
	noteSaveCmd.Flags().StringVar(&noteBody, "body", "", "note body text")
	noteSaveCmd.Flags().StringVar(&noteFolder, "folder", "", "optional grouping folder")
	_ = noteSaveCmd.MarkFlagRequired("title")
	_ = noteSaveCmd.MarkFlagRequired("body")

	noteCmd.AddCommand(noteSaveCmd)
	noteCmd.AddCommand(noteListCmd)
	noteCmd.AddCommand(noteDeleteCmd)
	rootCmd.AddCommand(noteCmd)
}

func runNoteSave(cmd *cobra.Command, _ []string) error {
	if err := requireServices(library, ingestor); err != nil {
		return err
	}
	ctx := context.Background()

	note := &domain.Note{
		ID:        noteID,
		Title:     noteTitle,
		Body:      noteBody,
		Folder:    noteFolder,
		UpdatedAt: time.Now(),
	}
	if note.ID == "" {
		note.ID = uuid.New().String()
	}

	if err := library.SaveNote(ctx, note); err != nil {
		return fmt.Errorf("save note: %w", err)
	}

	// Title and body are indexed together so questions about the title
	// alone still retrieve the note.
	text := note.Title + "\n\n" + note.Body
	metadata := map[string]string{
		domain.MetaTitle:  note.Title,
		domain.MetaFolder: note.Folder,
		domain.MetaNoteID: note.ID,
	}
	if err := ingestor.IngestText(ctx, text, note.ID, domain.OwnerNote, metadata); err != nil {
		return fmt.Errorf("index note: %w", err)
	}

	cmd.Printf("Saved note %s (%s)\n", note.ID, note.Title)
	return nil
}

func runNoteList(cmd *cobra.Command, _ []string) error {
	if err := requireServices(library); err != nil {
		return err
	}

	notes, err := library.ListNotes(context.Background())
	if err != nil {
		return fmt.Errorf("list notes: %w", err)
	}
	if len(notes) == 0 {
		cmd.Println("No notes saved.")
		return nil
	}

	for _, note := range notes {
		cmd.Printf("%s  %s\n", note.ID, note.Title)
		cmd.Printf("    updated %s", note.UpdatedAt.Format("2006-01-02 15:04"))
		if note.Folder != "" {
			cmd.Printf("  [%s]", note.Folder)
		}
		cmd.Println()
	}
	return nil
}

func runNoteDelete(cmd *cobra.Command, args []string) error {
	if err := requireServices(library, ingestor); err != nil {
		return err
	}
	ctx := context.Background()
	id := args[0]

	note, err := library.GetNote(ctx, id)
	if err != nil {
		return err
	}

	if err := ingestor.DeleteOwner(ctx, id); err != nil {
		return fmt.Errorf("delete chunks: %w", err)
	}
	if err := library.DeleteNote(ctx, id); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}

	cmd.Printf("Deleted note %s (%s)\n", id, note.Title)
	return nil
}
