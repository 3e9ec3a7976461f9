package download

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hbomb79/Siphon/pkg/logger"
	syncx "github.com/hbomb79/Siphon/pkg/sync"
)

var log = logger.Get("Download")

const outcomeSuccess = "success"

type (
	// Config contains the options which control how the download
	// service allocates jobs and invokes the extractor.
	Config struct {
		// Root directory for job directories. Empty means the OS temp dir.
		TempDir string `yaml:"temp_dir" env:"TEMP_DIR"`

		// Format preference passed to the extractor.
		Format string `yaml:"format" env:"FORMAT" env-default:"best[ext=mp4]/best"`

		// Upper bound on a single extraction. Zero disables the timeout, in
		// which case a download is bounded only by the lifetime of the request.
		Timeout time.Duration `yaml:"timeout" env:"DOWNLOAD_TIMEOUT" env-default:"0s"`

		YtdlpPath        string `yaml:"ytdlp_path" env:"YTDLP_PATH"`
		YtdlpAutoInstall bool   `yaml:"ytdlp_auto_install" env:"YTDLP_AUTO_INSTALL" env-default:"false"`
	}

	// Recorder receives notifications about the jobs handled by
	// the service, typically to export them as metrics.
	Recorder interface {
		JobStarted()
		JobFinished(outcome string, elapsed time.Duration, sizeBytes int64)
		JobRejected()
	}

	// Service owns the lifecycle of download jobs: from allocating an
	// isolated directory, through invoking the extractor, to removing
	// the directory once the result has been served.
	Service struct {
		config    Config
		extractor Extractor
		recorder  Recorder
		jobs      *syncx.TypedSyncMap[uuid.UUID, *Job]
	}
)

// New constructs a download service. If the configured temp directory
// does not exist it is created.
func New(config Config, extractor Extractor, recorder Recorder) (*Service, error) {
	if extractor == nil {
		return nil, errors.New("download service requires an extractor")
	}
	if config.Format == "" {
		config.Format = DefaultFormat
	}
	if config.TempDir != "" {
		if err := os.MkdirAll(config.TempDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create temp directory %s: %w", config.TempDir, err)
		}
	}
	if recorder == nil {
		recorder = noopRecorder{}
	}

	return &Service{
		config:    config,
		extractor: extractor,
		recorder:  recorder,
		jobs:      &syncx.TypedSyncMap[uuid.UUID, *Job]{},
	}, nil
}

// Run blocks until the provided context is cancelled. Once cancelled, the
// directories of any jobs which are still in flight are removed so that
// nothing is left behind on disk after the process exits. Callers should
// cancel the context only once no further requests will be served.
func (service *Service) Run(ctx context.Context) error {
	<-ctx.Done()

	if active := service.ActiveJobs(); active > 0 {
		log.Emit(logger.STOP, "Removing directories of %d in-flight job(s)\n", active)
	}
	service.jobs.Range(func(id uuid.UUID, job *Job) bool {
		service.release(job)
		return true
	})

	return nil
}

// Reject records a request which was refused before a job could be
// created, returning the ValidationFailure which should be reported.
func (service *Service) Reject(cause error) error {
	service.recorder.JobRejected()
	return newFailure(ValidationFailure, cause)
}

// Fetch downloads the media at the URL provided and hands the resulting job
// to serve. The job directory, and everything inside it, is removed once serve
// returns or as soon as the download fails, whichever comes first.
//
// A nil error is returned only if serve was called and itself returned nil.
// Download failures are always reported as a *Failure.
func (service *Service) Fetch(ctx context.Context, url string, serve func(*Job) error) (err error) {
	if strings.TrimSpace(url) == "" {
		return service.Reject(errors.New("url must not be empty"))
	}

	started := time.Now()
	var sizeBytes int64
	service.recorder.JobStarted()
	defer func() {
		service.recorder.JobFinished(outcomeOf(err), time.Since(started), sizeBytes)
	}()

	job, err := newJob(service.config.TempDir, url)
	if err != nil {
		return newFailure(InternalFailure, err)
	}

	service.jobs.Store(job.ID, job)
	defer service.release(job)

	if err := service.extract(ctx, job); err != nil {
		return err
	}

	info, err := os.Stat(job.OutputPath)
	if errors.Is(err, fs.ErrNotExist) {
		log.Emit(logger.WARNING, "Extractor returned successfully but no file exists for job %s\n", job)
		return newFailure(PostconditionFailure, err)
	} else if err != nil {
		return newFailure(InternalFailure, err)
	}

	sizeBytes = info.Size()
	log.Emit(logger.SUCCESS, "Job %s downloaded %d bytes\n", job.ID, sizeBytes)
	return serve(job)
}

// extract invokes the extractor for the job provided. Panics raised by
// the extractor are recovered and reported as an InternalFailure.
func (service *Service) extract(ctx context.Context, job *Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Emit(logger.ERROR, "Extractor panicked while processing job %s: %v\n", job, r)
			err = newFailure(InternalFailure, fmt.Errorf("%v", r))
		}
	}()

	if service.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, service.config.Timeout)
		defer cancel()
	}

	log.Emit(logger.NEW, "Starting job %s\n", job)
	request := ExtractRequest{
		URL:        job.URL,
		OutputPath: job.OutputPath,
		Format:     service.config.Format,
		NoPlaylist: true,
		Quiet:      true,
	}
	if err := service.extractor.Download(ctx, request); err != nil {
		log.Emit(logger.ERROR, "Extraction failed for job %s: %v\n", job, err)
		return newFailure(ExtractionFailure, err)
	}

	return nil
}

// release forgets the job and removes its directory. It is safe to call
// more than once for the same job.
func (service *Service) release(job *Job) {
	service.jobs.Delete(job.ID)

	if err := os.RemoveAll(job.Dir); err != nil {
		log.Emit(logger.WARNING, "Failed to remove directory for job %s: %v\n", job, err)
		return
	}

	log.Emit(logger.REMOVE, "Cleaned up job %s\n", job.ID)
}

// ActiveJobs returns the number of jobs currently in flight.
func (service *Service) ActiveJobs() int { return service.jobs.Len() }

func outcomeOf(err error) string {
	if err == nil {
		return outcomeSuccess
	}

	var failure *Failure
	if errors.As(err, &failure) {
		return failure.Kind.String()
	}

	return InternalFailure.String()
}

type noopRecorder struct{}

func (noopRecorder) JobStarted()                              {}
func (noopRecorder) JobFinished(string, time.Duration, int64) {}
func (noopRecorder) JobRejected()                             {}
