package index

import (
	"errors"
	"strconv"
)

// Sentinel errors for the four error kinds spec §7 assigns to ingestion
// and lookup. Wrap with fmt.Errorf("...: %w", err) to attach context;
// callers compare with errors.Is.
var (
	// ErrIngestionOutOfOrder is returned when a new zgram id does not
	// strictly exceed the previous dynamic id.
	ErrIngestionOutOfOrder = errors.New("index: zgram id does not strictly exceed previous id")
	// ErrFieldOverflow is returned when a field's word count would
	// overflow its bit width.
	ErrFieldOverflow = errors.New("index: field word count overflow")
	// ErrUnknownZgramId is returned when a metadata record refers to a
	// zgram id not present in either segment.
	ErrUnknownZgramId = errors.New("index: metadata record refers to unknown zgram id")
	// ErrInternalInvariant marks a fatal, unrecoverable internal
	// inconsistency (e.g. a binary search landing outside bounds).
	ErrInternalInvariant = errors.New("index: internal invariant violated")
)

// IngestionError wraps an ingestion failure with the record's zgram id.
type IngestionError struct {
	ZgramId ZgramId
	Err     error
}

func (e *IngestionError) Error() string {
	return "index: ingest zgram " + strconv.FormatUint(uint64(e.ZgramId), 10) + ": " + e.Err.Error()
}

func (e *IngestionError) Unwrap() error { return e.Err }
