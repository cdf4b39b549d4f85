package loader

import (
	"context"
	"fmt"
	"os"

	"github.com/tmc/langchaingo/documentloaders"
)

// pdfExtractor extracts per-page text from PDF files using the langchaingo
// PDF document loader.
type pdfExtractor struct{}

var _ PageExtractor = (*pdfExtractor)(nil)

// ExtractPages returns the raw text of every page of the PDF at path, in
// physical page order. Pages the parser cannot extract text from come back
// empty and are filtered by the caller.
func (e *pdfExtractor) ExtractPages(ctx context.Context, path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	docs, err := documentloaders.NewPDF(f, info.Size()).Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("parsing pdf: %w", err)
	}

	pages := make([]string, len(docs))
	for i, doc := range docs {
		pages[i] = doc.PageContent
	}
	return pages, nil
}
