package storage

import (
	"github.com/quercia-labs/vecbase/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := core.IDMUS.Unmarshal(data)
	return id, err
}

// MarshalIngestionRun serializes an IngestionRun to bytes.
func MarshalIngestionRun(run *core.IngestionRun) []byte {
	buf := make([]byte, core.IngestionRunMUS.Size(*run))
	core.IngestionRunMUS.Marshal(*run, buf)
	return buf
}

// UnmarshalIngestionRun deserializes an IngestionRun from bytes.
func UnmarshalIngestionRun(data []byte) (*core.IngestionRun, error) {
	run, _, err := core.IngestionRunMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &run, nil
}
