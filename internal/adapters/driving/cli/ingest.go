package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/verdantlabs/lorebase/internal/core/domain"
	"github.com/verdantlabs/lorebase/internal/logger"
)

var (
	ingestUploader string
	ingestTitle    string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file]",
	Short: "Ingest a document into the knowledge base",
	Long: `Copies the file into the uploads area, generates a title, registers the
document and indexes its content for retrieval.

Supported formats: txt, md, docx, xlsx, pdf, png, jpg, jpeg. Other
formats are registered but their content is not indexed.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVar(&ingestUploader, "uploader", "", "name recorded as the uploader")
	ingestCmd.Flags().StringVar(&ingestTitle, "title", "", "title override (skips title generation)")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if err := requireServices(ingestor, library); err != nil {
		return err
	}
	ctx := context.Background()
	src := args[0]

	folder, filename, err := storeUpload(src)
	if err != nil {
		return fmt.Errorf("store upload: %w", err)
	}
	stored := filepath.Join(uploadsRoot(), folder, filename)

	title := ingestTitle
	if title == "" {
		title, err = ingestor.GenerateTitle(ctx, stored)
		if err != nil {
			logger.Warn("Title generation failed, using filename: %v", err)
			title = filename
		}
	}

	doc := &domain.Document{
		ID:         uuid.New().String(),
		Title:      title,
		Uploader:   ingestUploader,
		UploadedAt: time.Now(),
		Folder:     folder,
		Filename:   filename,
		Ext:        strings.ToLower(filepath.Ext(filename)),
	}
	if err := library.SaveDocument(ctx, doc); err != nil {
		return fmt.Errorf("register document: %w", err)
	}

	metadata := map[string]string{
		domain.MetaTitle:    doc.Title,
		domain.MetaFolder:   doc.Folder,
		domain.MetaFilename: doc.Filename,
		domain.MetaExt:      doc.Ext,
		domain.MetaUploader: doc.Uploader,
	}
	if err := ingestor.Ingest(ctx, stored, doc.ID, domain.OwnerDocument, metadata); err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	cmd.Printf("Ingested %q as document %s\n", doc.Title, doc.ID)
	return nil
}

// uploadsRoot returns the uploads directory, ~/.lorebase/uploads.
func uploadsRoot() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "uploads"
	}
	return filepath.Join(home, ".lorebase", "uploads")
}

// storeUpload copies the source file into a year/month folder under the
// uploads root and returns the folder and stored filename.
func storeUpload(src string) (folder, filename string, err error) {
	now := time.Now()
	folder = filepath.Join(now.Format("2006"), now.Format("01"))
	filename = filepath.Base(src)

	dir := filepath.Join(uploadsRoot(), folder)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", "", err
	}

	in, err := os.Open(src)
	if err != nil {
		return "", "", err
	}
	defer in.Close()

	out, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return "", "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return "", "", err
	}
	return folder, filename, nil
}
