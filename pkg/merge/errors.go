package merge

import (
	"errors"
	"fmt"
)

// Precondition failures, checked in this order by Orchestrator.Merge.
var (
	ErrMissingOutputFolder = errors.New("please specify an output folder")
	ErrMissingOutputName   = errors.New("please specify a name for the merged PDF")
	ErrNoInputFiles        = errors.New("no PDF files selected")
)

// Failure kinds as shown to the user.
const (
	KindMissingOutputFolder = "MissingOutputFolder"
	KindMissingOutputName   = "MissingOutputName"
	KindNoInputFiles        = "NoInputFiles"
	KindBackendFailure      = "MergeBackendFailure"
)

// BackendError reports a failure of the merge backend.
type BackendError struct {
	File string // Offending input or destination, empty when unknown.
	Err  error  // Underlying cause.
}

func (e *BackendError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("merge failed on %s: %v", e.File, e.Err)
	}
	return fmt.Sprintf("merge failed: %v", e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// Kind maps err to its failure kind. It returns "" for nil and for errors
// outside the merge taxonomy.
func Kind(err error) string {
	var be *BackendError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingOutputFolder):
		return KindMissingOutputFolder
	case errors.Is(err, ErrMissingOutputName):
		return KindMissingOutputName
	case errors.Is(err, ErrNoInputFiles):
		return KindNoInputFiles
	case errors.As(err, &be):
		return KindBackendFailure
	default:
		return ""
	}
}
