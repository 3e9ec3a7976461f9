package download

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

const (
	outputExtension = ".mp4"
	tempDirPattern  = "siphon-"
)

// Job represents a single download. Each job owns an isolated temporary
// directory which is removed once the request it belongs to has been
// answered.
type Job struct {
	ID         uuid.UUID
	URL        string
	Dir        string
	Filename   string
	OutputPath string
	CreatedAt  time.Time
}

// newJob allocates a fresh directory under root (or the OS temp dir if root
// is empty) and derives a unique output filename for the download.
func newJob(root string, url string) (*Job, error) {
	dir, err := os.MkdirTemp(root, tempDirPattern)
	if err != nil {
		return nil, fmt.Errorf("failed to create job directory: %w", err)
	}

	id := uuid.New()
	filename := id.String() + outputExtension
	return &Job{
		ID:         id,
		URL:        url,
		Dir:        dir,
		Filename:   filename,
		OutputPath: filepath.Join(dir, filename),
		CreatedAt:  time.Now(),
	}, nil
}

func (job *Job) String() string {
	return fmt.Sprintf("{job id=%s | url=%s | out_path=%s}", job.ID, job.URL, job.OutputPath)
}
