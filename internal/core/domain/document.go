package domain

import "time"

// Document is the registry record for an uploaded file. It is created
// at upload time and never mutated after ingestion completes; deleting
// a document removes this record plus every chunk whose OwnerID matches
// its ID.
type Document struct {
	// ID is the unique document identifier (also the chunk owner id).
	ID string

	// Title is the human-readable title, possibly model-generated.
	Title string

	// Uploader names who uploaded the file.
	Uploader string

	// UploadedAt is the upload timestamp.
	UploadedAt time.Time

	// Folder is the storage folder relative to the uploads root.
	Folder string

	// Filename is the stored file name within Folder.
	Filename string

	// Ext is the lower-cased file extension, including the dot.
	Ext string
}

// Note is a wiki-style page. Unlike documents, a note maps to exactly
// one chunk, re-embedded wholesale on every edit: saving a note deletes
// its prior chunk before inserting the replacement.
type Note struct {
	// ID is the unique note identifier (also the chunk owner id).
	ID string

	// Title is the page title.
	Title string

	// Body is the page text.
	Body string

	// Folder is an optional grouping tag.
	Folder string

	// UpdatedAt is the last edit timestamp.
	UpdatedAt time.Time
}
