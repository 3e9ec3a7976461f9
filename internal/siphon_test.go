package internal

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingService appends its label to a shared log once its
// context is cancelled, optionally failing immediately instead.
type recordingService struct {
	label   string
	stopped *stopLog
	err     error
}

type stopLog struct {
	mu     sync.Mutex
	labels []string
}

func (l *stopLog) add(label string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.labels = append(l.labels, label)
}

func (service *recordingService) Run(ctx context.Context) error {
	if service.err != nil {
		service.stopped.add(service.label)
		return service.err
	}

	<-ctx.Done()
	service.stopped.add(service.label)
	return nil
}

func runSiphon(t *testing.T, siphon *siphonImpl, ctx context.Context) error {
	done := make(chan error, 1)
	go func() { done <- siphon.Run(ctx) }()

	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		require.FailNow(t, "Siphon did not stop")
		return nil
	}
}

func TestRun_DrainsGatewayBeforeDownloads(t *testing.T) {
	stopped := &stopLog{}
	siphon := &siphonImpl{
		downloadService: &recordingService{label: "download-service", stopped: stopped},
		restGateway:     &recordingService{label: "rest-gateway", stopped: stopped},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, runSiphon(t, siphon, ctx))
	assert.Equal(t, []string{"rest-gateway", "download-service"}, stopped.labels)
}

func TestRun_GatewayCrashStopsSiphon(t *testing.T) {
	stopped := &stopLog{}
	crash := errors.New("listen tcp: address already in use")
	siphon := &siphonImpl{
		downloadService: &recordingService{label: "download-service", stopped: stopped},
		restGateway:     &recordingService{label: "rest-gateway", stopped: stopped, err: crash},
	}

	err := runSiphon(t, siphon, context.Background())
	assert.ErrorIs(t, err, crash)
	assert.Equal(t, []string{"rest-gateway", "download-service"}, stopped.labels)
}
