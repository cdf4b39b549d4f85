package badger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quercia-labs/vecbase/core"
	"github.com/quercia-labs/vecbase/storage"
)

func setupCatalog(t *testing.T) storage.CatalogRepository {
	t.Helper()
	catalog, backend, err := NewMemoryCatalog()
	require.NoError(t, err)
	t.Cleanup(func() {
		catalog.Close()
		backend.Close()
	})
	return catalog
}

func sampleRun(source string) *core.IngestionRun {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return &core.IngestionRun{
		Source:       source,
		OutputPath:   "/out/knowledge_vectors.json",
		Model:        "text-embedding-3-small",
		NumDocuments: 2,
		NumChunks:    9,
		StartedAt:    now.Add(-time.Minute),
		FinishedAt:   now,
	}
}

func TestCatalog_AddAndGetRun(t *testing.T) {
	catalog := setupCatalog(t)
	ctx := context.Background()

	added, err := catalog.AddRun(ctx, sampleRun("/data/pdfs"))
	require.NoError(t, err)
	assert.NotZero(t, added.Id, "ID should be assigned from sequence")

	got, err := catalog.GetRun(ctx, added.Id)
	require.NoError(t, err)
	assert.Equal(t, added.Source, got.Source)
	assert.Equal(t, added.Model, got.Model)
	assert.Equal(t, added.NumDocuments, got.NumDocuments)
	assert.Equal(t, added.NumChunks, got.NumChunks)
	assert.True(t, added.FinishedAt.Equal(got.FinishedAt))
}

func TestCatalog_GetRunNotFound(t *testing.T) {
	catalog := setupCatalog(t)

	_, err := catalog.GetRun(context.Background(), core.ID(9999))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCatalog_AddRunValidation(t *testing.T) {
	catalog := setupCatalog(t)

	run := sampleRun("")
	_, err := catalog.AddRun(context.Background(), run)
	assert.ErrorIs(t, err, core.ErrInvalidIngestionRun)
}

func TestCatalog_GetRunsInIDOrder(t *testing.T) {
	catalog := setupCatalog(t)
	ctx := context.Background()

	var ids []core.ID
	for _, source := range []string{"/a", "/b", "/c"} {
		added, err := catalog.AddRun(ctx, sampleRun(source))
		require.NoError(t, err)
		ids = append(ids, added.Id)
	}

	runs, err := catalog.GetRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 3)

	for i, run := range runs {
		assert.Equal(t, ids[i], run.Id)
	}
	assert.Equal(t, "/a", runs[0].Source)
	assert.Equal(t, "/c", runs[2].Source)
}

func TestCatalog_GetRunsEmpty(t *testing.T) {
	catalog := setupCatalog(t)

	runs, err := catalog.GetRuns(context.Background())
	require.NoError(t, err)
	assert.Empty(t, runs)
}
