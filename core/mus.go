package core

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for catalog records. The record set is small enough that
// these are written by hand instead of generated.

// IDMUS serializes IDs.
var IDMUS = idMUS{}

type idMUS struct{}

func (idMUS) Marshal(id ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idMUS) Unmarshal(bs []byte) (ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idMUS) Size(id ID) int {
	return varint.Uint64.Size(uint64(id))
}

// IngestionRunMUS serializes IngestionRun records. Timestamps are stored as
// Unix milliseconds in UTC.
var IngestionRunMUS = ingestionRunMUS{}

type ingestionRunMUS struct{}

func (ingestionRunMUS) Marshal(run IngestionRun, bs []byte) (n int) {
	n = varint.Uint64.Marshal(uint64(run.Id), bs)
	n += ord.String.Marshal(run.Source, bs[n:])
	n += ord.String.Marshal(run.OutputPath, bs[n:])
	n += ord.String.Marshal(run.Model, bs[n:])
	n += varint.Int.Marshal(run.NumDocuments, bs[n:])
	n += varint.Int.Marshal(run.NumChunks, bs[n:])
	n += varint.Int64.Marshal(run.StartedAt.UnixMilli(), bs[n:])
	n += varint.Int64.Marshal(run.FinishedAt.UnixMilli(), bs[n:])
	return n
}

func (ingestionRunMUS) Unmarshal(bs []byte) (run IngestionRun, n int, err error) {
	var (
		id       uint64
		started  int64
		finished int64
		n1       int
	)

	id, n, err = varint.Uint64.Unmarshal(bs)
	if err != nil {
		return
	}
	run.Id = ID(id)

	run.Source, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}

	run.OutputPath, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}

	run.Model, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}

	run.NumDocuments, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}

	run.NumChunks, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}

	started, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	run.StartedAt = time.UnixMilli(started).UTC()

	finished, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	run.FinishedAt = time.UnixMilli(finished).UTC()

	return
}

func (ingestionRunMUS) Size(run IngestionRun) int {
	return varint.Uint64.Size(uint64(run.Id)) +
		ord.String.Size(run.Source) +
		ord.String.Size(run.OutputPath) +
		ord.String.Size(run.Model) +
		varint.Int.Size(run.NumDocuments) +
		varint.Int.Size(run.NumChunks) +
		varint.Int64.Size(run.StartedAt.UnixMilli()) +
		varint.Int64.Size(run.FinishedAt.UnixMilli())
}
