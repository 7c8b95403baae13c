package workflow

import "fmt"

// Stable machine-readable error kinds surfaced to clients.
const (
	KindInvalidField  = "invalid_field"
	KindMissingImage  = "missing_image"
	KindPartialUpload = "partial_upload"
	KindPersistence   = "persistence"
)

// InvalidFieldError reports a text field that failed validation. Never
// retried; the client must resubmit corrected input.
type InvalidFieldError struct {
	Field  string
	Reason string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("workflow: invalid field %s: %s", e.Field, e.Reason)
}

// MissingImageError reports an absent or empty image payload.
type MissingImageError struct {
	Name string
}

func (e *MissingImageError) Error() string {
	return fmt.Sprintf("workflow: missing image %s", e.Name)
}

// PartialUploadError reports a remote store failure partway through the three
// uploads. Siblings stored before the failure have already been rolled back
// (best effort) by the time this is returned.
type PartialUploadError struct {
	Label string
	Err   error
}

func (e *PartialUploadError) Error() string {
	return fmt.Sprintf("workflow: upload of %s failed: %v", e.Label, e.Err)
}

func (e *PartialUploadError) Unwrap() error { return e.Err }

// PersistenceError reports a failed record append after all three images were
// stored. The remote images are left in place (documented orphan risk); a
// reconciliation pass, not this workflow, is the place to clean them up.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("workflow: failed to persist record: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
