package core

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for catalog entities.
// It is generated from database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// Identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// ShortPathHash returns a short deterministic hex digest of a source path.
// Used to disambiguate document ids when two input files share a base name.
func ShortPathHash(path string) string {
	h, _ := blake2b.New(8, nil)
	h.Write([]byte(path))
	sum := h.Sum(nil)
	return hex.EncodeToString(sum[:4])
}

// Page is the extracted plain text of a single document page.
// Pages whose trimmed text is empty never become Pages.
type Page struct {
	PageNumber int
	Text       string
}

// Document is a loaded source file with its non-empty pages.
// DocID is the file's base name without extension; a collision with an
// already loaded document is resolved by suffixing a ShortPathHash of the
// full source path.
type Document struct {
	DocID      string
	Title      string
	SourcePath string
	Pages      []Page
}

// Chunk is a bounded, overlapping window of words from one page.
// Position is 1-based per page; chunks preserve source order across
// documents, pages and positions.
type Chunk struct {
	ChunkID  string
	DocID    string
	Page     int
	Position int
	Text     string
}

// ChunkIDFor builds the chunk identifier for a document page position.
// Globally unique given unique document ids.
func ChunkIDFor(docID string, page, position int) string {
	return fmt.Sprintf("%s_p%d_c%d", docID, page, position)
}

// Metadata describes a persisted knowledge base. Counts reflect what was
// actually grouped into Documents, not raw input counts.
type Metadata struct {
	CreatedAt    string `json:"created_at"`
	Model        string `json:"model"`
	NumDocuments int    `json:"num_documents"`
	NumChunks    int    `json:"num_chunks"`
}

// ChunkEntry is a chunk joined with its embedding inside a knowledge base.
type ChunkEntry struct {
	ChunkID   string    `json:"chunk_id"`
	Page      int       `json:"page"`
	Position  int       `json:"position"`
	Text      string    `json:"text"`
	Embedding []float32 `json:"embedding"`
}

// DocumentEntry groups the embedded chunks of one source document.
type DocumentEntry struct {
	DocID      string       `json:"doc_id"`
	SourcePath string       `json:"source_path"`
	Title      string       `json:"title"`
	Chunks     []ChunkEntry `json:"chunks"`
}

// KnowledgeBase is the persisted retrieval index. Once written it is
// treated as immutable; ingestion only ever produces a complete replacement.
type KnowledgeBase struct {
	Metadata  Metadata        `json:"metadata"`
	Documents []DocumentEntry `json:"documents"`
}

// IngestionRun is a catalog record of one completed ingestion run.
type IngestionRun struct {
	Id           ID
	Source       string
	OutputPath   string
	Model        string
	NumDocuments int
	NumChunks    int
	StartedAt    time.Time
	FinishedAt   time.Time
}
