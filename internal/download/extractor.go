package download

import "context"

// DefaultFormat prefers the best MP4 rendition, falling back to the
// best available rendition of any container.
const DefaultFormat = "best[ext=mp4]/best"

type (
	// ExtractRequest describes a single invocation of an Extractor.
	ExtractRequest struct {
		URL        string
		OutputPath string
		Format     string
		NoPlaylist bool
		Quiet      bool
	}

	// Extractor is the external collaborator which resolves a media page URL
	// and downloads exactly one file to the requested output path. Failures to
	// retrieve the media are reported as errors.
	Extractor interface {
		Download(ctx context.Context, request ExtractRequest) error
	}
)
