package loader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeExtractor is a test double for PageExtractor keyed by path.
type fakeExtractor struct {
	pages map[string][]string
	errs  map[string]error
}

func (f *fakeExtractor) ExtractPages(_ context.Context, path string) ([]string, error) {
	if err, ok := f.errs[path]; ok {
		return nil, err
	}
	return f.pages[path], nil
}

func TestLoad_TrimsAndDropsEmptyPages(t *testing.T) {
	extractor := &fakeExtractor{
		pages: map[string][]string{
			"/data/reg.pdf": {"  first page  ", "", "   \n\t  ", "fourth page"},
		},
	}
	l := New(WithExtractor(extractor))

	docs, outcomes := l.Load(context.Background(), []string{"/data/reg.pdf"})

	require.Len(t, docs, 1)
	require.Len(t, outcomes, 1)
	assert.Equal(t, OutcomeLoaded, outcomes[0].Status)

	doc := docs[0]
	assert.Equal(t, "reg", doc.DocID)
	assert.Equal(t, "reg", doc.Title)
	assert.Equal(t, "/data/reg.pdf", doc.SourcePath)

	require.Len(t, doc.Pages, 2, "empty pages should be dropped")
	assert.Equal(t, 1, doc.Pages[0].PageNumber)
	assert.Equal(t, "first page", doc.Pages[0].Text, "page text should be trimmed")
	assert.Equal(t, 4, doc.Pages[1].PageNumber, "page numbers follow physical pages")
	assert.Equal(t, "fourth page", doc.Pages[1].Text)
}

func TestLoad_SkipsFileWithNoUsableText(t *testing.T) {
	extractor := &fakeExtractor{
		pages: map[string][]string{
			"/data/blank.pdf": {"", "   ", "\n"},
		},
	}
	l := New(WithExtractor(extractor))

	docs, outcomes := l.Load(context.Background(), []string{"/data/blank.pdf"})

	assert.Empty(t, docs, "file with no usable text never appears in the output")
	require.Len(t, outcomes, 1)
	assert.Equal(t, OutcomeSkipped, outcomes[0].Status)
	assert.Contains(t, outcomes[0].Reason, "no extractable text")
}

func TestLoad_UnreadableFileDoesNotAbort(t *testing.T) {
	extractor := &fakeExtractor{
		pages: map[string][]string{
			"/data/good.pdf": {"some content"},
		},
		errs: map[string]error{
			"/data/bad.pdf": errors.New("corrupt xref table"),
		},
	}
	l := New(WithExtractor(extractor))

	docs, outcomes := l.Load(context.Background(), []string{"/data/bad.pdf", "/data/good.pdf"})

	require.Len(t, docs, 1, "loading continues past the unreadable file")
	assert.Equal(t, "good", docs[0].DocID)

	require.Len(t, outcomes, 2)
	assert.Equal(t, OutcomeSkipped, outcomes[0].Status)
	assert.Contains(t, outcomes[0].Reason, "corrupt xref table")
	assert.Equal(t, OutcomeLoaded, outcomes[1].Status)
	assert.Equal(t, 1, SkippedCount(outcomes))
}

func TestLoad_PreservesInputOrder(t *testing.T) {
	extractor := &fakeExtractor{
		pages: map[string][]string{
			"/data/b.pdf": {"b text"},
			"/data/a.pdf": {"a text"},
			"/data/c.pdf": {"c text"},
		},
	}
	l := New(WithExtractor(extractor))

	docs, _ := l.Load(context.Background(), []string{"/data/b.pdf", "/data/a.pdf", "/data/c.pdf"})

	require.Len(t, docs, 3)
	assert.Equal(t, "b", docs[0].DocID)
	assert.Equal(t, "a", docs[1].DocID)
	assert.Equal(t, "c", docs[2].DocID)
}

func TestLoad_DocIDCollisionDisambiguated(t *testing.T) {
	extractor := &fakeExtractor{
		pages: map[string][]string{
			"/one/reg.pdf": {"first corpus"},
			"/two/reg.pdf": {"second corpus"},
		},
	}
	l := New(WithExtractor(extractor))

	docs, _ := l.Load(context.Background(), []string{"/one/reg.pdf", "/two/reg.pdf"})

	require.Len(t, docs, 2, "both colliding documents survive")
	assert.Equal(t, "reg", docs[0].DocID)
	assert.NotEqual(t, docs[0].DocID, docs[1].DocID)
	assert.Contains(t, docs[1].DocID, "reg-")
	assert.Equal(t, "reg", docs[1].Title, "title keeps the bare stem")

	// Deterministic across runs
	docs2, _ := l.Load(context.Background(), []string{"/one/reg.pdf", "/two/reg.pdf"})
	assert.Equal(t, docs[1].DocID, docs2[1].DocID)
}

func TestLoad_ZeroFiles(t *testing.T) {
	l := New(WithExtractor(&fakeExtractor{}))

	docs, outcomes := l.Load(context.Background(), nil)

	assert.Empty(t, docs)
	assert.Empty(t, outcomes)
}

func TestListFiles_SortedPDFsOnly(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"zeta.pdf", "alpha.pdf", "notes.txt", "mid.pdf"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	l := New()
	paths, err := l.ListFiles(dir)
	require.NoError(t, err)

	require.Len(t, paths, 3, "only pdf files are matched")
	assert.Equal(t, filepath.Join(dir, "alpha.pdf"), paths[0])
	assert.Equal(t, filepath.Join(dir, "mid.pdf"), paths[1])
	assert.Equal(t, filepath.Join(dir, "zeta.pdf"), paths[2])
}

func TestListFiles_EmptyDir(t *testing.T) {
	l := New()
	paths, err := l.ListFiles(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, paths)
}
