package internal

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/hbomb79/Siphon/internal/api"
	"github.com/hbomb79/Siphon/internal/download"
	"github.com/hbomb79/Siphon/internal/metrics"
	"github.com/hbomb79/Siphon/pkg/logger"
)

var log = logger.Get("Core")

const metricsNamespace = "siphon"

type RunnableService interface {
	Run(context.Context) error
}

// Siphon represents the top-level object for the server, and is responsible
// for constructing the download service and the gateway which exposes it.
// A single instance is shared by every request for the lifetime of the process.
type siphonImpl struct {
	config SiphonConfig

	metrics         *metrics.Collector
	downloadService RunnableService
	restGateway     RunnableService
}

func New(config SiphonConfig) (*siphonImpl, error) {
	log.Emit(logger.DEBUG, "Bootstrapping Siphon services using config: %#v\n", config)
	siphon := &siphonImpl{
		config:  config,
		metrics: metrics.New(metricsNamespace),
	}

	extractor := download.NewYtdlpExtractor(config.Download.YtdlpPath)
	downloadService, err := download.New(config.Download, extractor, siphon.metrics)
	if err != nil {
		return nil, fmt.Errorf("failed to construct download service: %w", err)
	}

	siphon.downloadService = downloadService
	siphon.restGateway = api.NewRestGateway(&config.Rest, downloadService, siphon.metrics)
	return siphon, nil
}

// Run will start all of Siphon by bringing up the download service and
// the REST gateway. If configured, the yt-dlp binary is installed first.
//
// This function will not return until Siphon is stopped.
// To stop Siphon, the provided context must be cancelled. Errors from which
// Siphon cannot recover will also cause Siphon to stop. On shutdown the
// gateway is drained before the download service sweeps any job directories
// left behind, so requests within the grace period are served in full.
func (siphon *siphonImpl) Run(parent context.Context) error {
	if siphon.config.Download.YtdlpAutoInstall {
		if err := download.InstallYtdlp(parent); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithCancelCause(parent)
	defer cancel(nil)
	crashHandler := func(label string, err error) {
		log.Emit(logger.FATAL, "Service crash (%s)! %s\n", label, err.Error())
		cancel(fmt.Errorf("%s: %w", label, err))
	}

	// The download service outlives the gateway: it is stopped only once
	// the gateway has finished serving in-flight requests.
	downloadCtx, stopDownloads := context.WithCancel(context.WithoutCancel(ctx))
	defer stopDownloads()

	downloadWg := &sync.WaitGroup{}
	gatewayWg := &sync.WaitGroup{}
	siphon.spawnAsyncService(downloadCtx, downloadWg, siphon.downloadService, "download-service", crashHandler)
	siphon.spawnAsyncService(ctx, gatewayWg, siphon.restGateway, "rest-gateway", crashHandler)
	log.Emit(logger.SUCCESS, "Siphon services spawned!\n")

	gatewayWg.Wait()
	stopDownloads()
	downloadWg.Wait()

	if cause := context.Cause(ctx); cause != nil && !errors.Is(cause, context.Canceled) {
		return cause
	}

	return nil
}

// spawnAsyncService will run the provided service as it's own
// go-routine, ensuring that the Siphon service waitgroup is updated correctly
func (siphon *siphonImpl) spawnAsyncService(ctx context.Context, wg *sync.WaitGroup, service RunnableService, serviceLabel string, crashHandler func(string, error)) {
	log.Emit(logger.NEW, "Spawning %s\n", serviceLabel)
	wg.Add(1)

	go func(label string, crash func(string, error)) {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				crash(label, fmt.Errorf("panic %v", r))
			}
		}()

		if err := service.Run(ctx); err != nil {
			crash(label, err)
		}
	}(serviceLabel, crashHandler)
}
