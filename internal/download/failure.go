package download

import (
	"errors"
	"fmt"
)

// FailureKind classifies why a download request could not be
// fulfilled. Each kind maps to exactly one user-facing message shape.
type FailureKind int

const (
	// ValidationFailure indicates the caller did not supply a usable URL.
	ValidationFailure FailureKind = iota
	// ExtractionFailure indicates the extractor could not retrieve the media.
	ExtractionFailure
	// PostconditionFailure indicates the extractor returned without error but
	// the expected output file was never written.
	PostconditionFailure
	// InternalFailure covers every other fault.
	InternalFailure
)

func (kind FailureKind) String() string {
	switch kind {
	case ValidationFailure:
		return "validation"
	case ExtractionFailure:
		return "extraction"
	case PostconditionFailure:
		return "postcondition"
	default:
		return "internal"
	}
}

// Failure is the result of a download which did not produce a file. The
// Error method renders the message which is safe to show to the caller, while
// Cause retains the underlying error for logging.
type Failure struct {
	Kind   FailureKind
	Detail string
	Cause  error
}

func newFailure(kind FailureKind, cause error) *Failure {
	failure := &Failure{Kind: kind, Cause: cause}
	if cause != nil {
		failure.Detail = cause.Error()
	}

	return failure
}

func (failure *Failure) Error() string {
	switch failure.Kind {
	case ValidationFailure:
		return "Please provide an Instagram 'url' in the JSON body."
	case ExtractionFailure:
		return fmt.Sprintf("Failed to process URL: %s", failure.Detail)
	case PostconditionFailure:
		return "Video download failed - file not found."
	default:
		return fmt.Sprintf("An unexpected error occurred: %s", failure.Detail)
	}
}

func (failure *Failure) Unwrap() error { return failure.Cause }

// AsInternal wraps an arbitrary error as an InternalFailure, unless
// the error already is (or wraps) a Failure, in which case that Failure
// is returned untouched.
func AsInternal(err error) *Failure {
	var failure *Failure
	if errors.As(err, &failure) {
		return failure
	}

	return newFailure(InternalFailure, err)
}
