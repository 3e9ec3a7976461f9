package download_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/hbomb79/Siphon/internal/download"
	"github.com/stretchr/testify/assert"
)

func TestFailure_Messages(t *testing.T) {
	cause := errors.New("boom")

	assert.Equal(t, "Please provide an Instagram 'url' in the JSON body.",
		(&download.Failure{Kind: download.ValidationFailure, Detail: "ignored"}).Error())
	assert.Equal(t, "Failed to process URL: boom",
		(&download.Failure{Kind: download.ExtractionFailure, Detail: cause.Error()}).Error())
	assert.Equal(t, "Video download failed - file not found.",
		(&download.Failure{Kind: download.PostconditionFailure}).Error())
	assert.Equal(t, "An unexpected error occurred: boom",
		(&download.Failure{Kind: download.InternalFailure, Detail: cause.Error()}).Error())
}

func TestFailureKind_String(t *testing.T) {
	assert.Equal(t, "validation", download.ValidationFailure.String())
	assert.Equal(t, "extraction", download.ExtractionFailure.String())
	assert.Equal(t, "postcondition", download.PostconditionFailure.String())
	assert.Equal(t, "internal", download.InternalFailure.String())
}

func TestAsInternal(t *testing.T) {
	cause := errors.New("disk on fire")
	failure := download.AsInternal(cause)
	assert.Equal(t, download.InternalFailure, failure.Kind)
	assert.ErrorIs(t, failure, cause)
	assert.Equal(t, "An unexpected error occurred: disk on fire", failure.Error())

	existing := &download.Failure{Kind: download.PostconditionFailure}
	assert.Same(t, existing, download.AsInternal(fmt.Errorf("wrapped: %w", existing)))
}
