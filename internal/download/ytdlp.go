package download

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hbomb79/Siphon/pkg/logger"
	"github.com/lrstanley/go-ytdlp"
)

const ytdlpErrorPrefix = "ERROR:"

// YtdlpExtractor is an Extractor backed by the yt-dlp executable.
type YtdlpExtractor struct {
	binPath string
}

// NewYtdlpExtractor constructs an extractor which runs the yt-dlp binary
// found at binPath. An empty binPath defers to go-ytdlp's own lookup (PATH,
// or the binary cached by InstallYtdlp).
func NewYtdlpExtractor(binPath string) *YtdlpExtractor {
	return &YtdlpExtractor{binPath: binPath}
}

func (extractor *YtdlpExtractor) Download(ctx context.Context, request ExtractRequest) error {
	format := request.Format
	if format == "" {
		format = DefaultFormat
	}

	cmd := ytdlp.New().
		Output(request.OutputPath).
		Format(format)

	if extractor.binPath != "" {
		cmd = cmd.SetExecutable(extractor.binPath)
	}
	if request.NoPlaylist {
		cmd = cmd.NoPlaylist()
	}
	if request.Quiet {
		cmd = cmd.Quiet().NoWarnings()
	}

	result, err := cmd.Run(ctx, request.URL)
	if err == nil {
		return nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("download interrupted: %w", ctxErr)
	}

	stderr := ""
	if result != nil {
		stderr = result.Stderr
	}
	return condenseYtdlpError(stderr, err)
}

// condenseYtdlpError picks the relevant information out of yt-dlp's stderr
// output. yt-dlp reports the reason for a failed download on a line prefixed
// with 'ERROR:'; the last such line is the one which aborted the download. If
// no such line exists err is returned unchanged.
func condenseYtdlpError(stderr string, err error) error {
	lines := strings.Split(stderr, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if strings.HasPrefix(line, ytdlpErrorPrefix) {
			return errors.New(line)
		}
	}

	return err
}

// InstallYtdlp ensures a yt-dlp binary is available, downloading one in to
// go-ytdlp's cache directory if none can be found.
func InstallYtdlp(ctx context.Context) error {
	log.Emit(logger.NEW, "Ensuring yt-dlp is installed...\n")
	if _, err := ytdlp.Install(ctx, nil); err != nil {
		return fmt.Errorf("failed to install yt-dlp: %w", err)
	}

	log.Emit(logger.SUCCESS, "yt-dlp is available\n")
	return nil
}
