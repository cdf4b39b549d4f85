package badger

import (
	"encoding/binary"

	"github.com/quercia-labs/vecbase/core"
)

// Key prefixes for different data types
const (
	runRecordPrefix = "runrec"
	runIDSeq        = "runrecseq"
)

// makeRunKey generates a key for an ingestion run by ID.
// The ID is written in BigEndian order so iteration follows ID order.
func makeRunKey(id core.ID) []byte {
	prefix := runRecordPrefix + ":"
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}
