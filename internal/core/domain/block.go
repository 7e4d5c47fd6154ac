package domain

// BlockKind discriminates the closed set of content block variants.
type BlockKind int

const (
	// BlockText is prose content embedded as-is.
	BlockText BlockKind = iota

	// BlockTable is raw tabular text, summarised before embedding.
	BlockTable

	// BlockImage is a bounded re-encoded image, described by the
	// language model before embedding.
	BlockImage
)

// String returns the kind name for logging.
func (k BlockKind) String() string {
	switch k {
	case BlockText:
		return "text"
	case BlockTable:
		return "table"
	case BlockImage:
		return "image"
	default:
		return "unknown"
	}
}

// Block is one typed unit of extracted content. Extraction returns an
// ordered sequence of blocks; downstream stages switch exhaustively on
// Kind. Text and Table carry Text; Image carries Data.
type Block struct {
	Kind BlockKind
	Text string
	Data []byte
}

// TextBlock builds a text block.
func TextBlock(text string) Block {
	return Block{Kind: BlockText, Text: text}
}

// TableBlock builds a table block holding raw tabular text.
func TableBlock(text string) Block {
	return Block{Kind: BlockTable, Text: text}
}

// ImageBlock builds an image block from re-encoded image bytes.
func ImageBlock(data []byte) Block {
	return Block{Kind: BlockImage, Data: data}
}
