package services

// PersistOutcome reports how far a mutating write got. The primary-store
// write has always succeeded by the time an outcome exists; the mirror may
// still have failed, in which case the request is reported as failed even
// though the record is durable in the primary store. That partial failure is
// deliberate and documented rather than an uncaught fault.
type PersistOutcome struct {
	// MirrorErr is nil when the snapshot reached the object store.
	MirrorErr error
}

// Mirrored reports whether the write was both persisted and mirrored.
func (o PersistOutcome) Mirrored() bool {
	return o.MirrorErr == nil
}
