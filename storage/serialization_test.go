package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quercia-labs/vecbase/core"
)

func TestMarshalUnmarshalID(t *testing.T) {
	for _, id := range []core.ID{0, 1, 12345, 1 << 40} {
		data := MarshalID(id)
		decoded, err := UnmarshalID(data)
		require.NoError(t, err)
		assert.Equal(t, id, decoded)
	}
}

func TestMarshalUnmarshalIngestionRun(t *testing.T) {
	run := &core.IngestionRun{
		Id:           7,
		Source:       "/data/pdfs",
		OutputPath:   "/out/kb.json",
		Model:        "text-embedding-3-small",
		NumDocuments: 4,
		NumChunks:    31,
		StartedAt:    time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC),
		FinishedAt:   time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
	}

	data := MarshalIngestionRun(run)
	decoded, err := UnmarshalIngestionRun(data)
	require.NoError(t, err)
	assert.Equal(t, run, decoded)
}

func TestUnmarshalIngestionRun_Truncated(t *testing.T) {
	run := &core.IngestionRun{
		Source:     "/data",
		OutputPath: "/out/kb.json",
		StartedAt:  time.Now().UTC(),
		FinishedAt: time.Now().UTC(),
	}

	data := MarshalIngestionRun(run)
	_, err := UnmarshalIngestionRun(data[:len(data)/2])
	assert.Error(t, err)
}
