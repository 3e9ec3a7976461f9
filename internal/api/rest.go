package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/hbomb79/Siphon/internal/api/downloads"
	"github.com/hbomb79/Siphon/internal/api/health"
	"github.com/hbomb79/Siphon/pkg/logger"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

var log = logger.Get("API")

const (
	shutdownGracePeriod = 15 * time.Second

	// Request bodies carry a single URL.
	maxRequestBodySize = "1K"
)

type (
	RestConfig struct {
		HostAddr       string `yaml:"host" env:"HOST_ADDR" env-default:"0.0.0.0"`
		HostPort       int    `yaml:"port" env:"HOST_PORT" env-default:"8080"`
		ServiceName    string `yaml:"service_name" env:"SERVICE_NAME" env-default:"Instagram Downloader"`
		MetricsEnabled bool   `yaml:"metrics_enabled" env:"METRICS_ENABLED" env-default:"true"`
	}

	controller interface {
		SetRoutes(*echo.Group)
	}

	// MetricsExporter exposes collected metrics over HTTP.
	MetricsExporter interface {
		Handler() http.Handler
	}

	// The RestGateway is a thin-wrapper around the Echo HTTP router. It's sole responsibility
	// is to create the routes Siphon exposes and to render failures consistently.
	RestGateway struct {
		config             *RestConfig
		ec                 *echo.Echo
		healthController   controller
		downloadController controller
	}
)

// Address returns the host:port the gateway listens on.
func (config *RestConfig) Address() string {
	return fmt.Sprintf("%s:%d", config.HostAddr, config.HostPort)
}

// NewRestGateway constructs the Echo router and populates it with all the
// routes defined by the controllers. If metrics is non-nil, and metrics
// are enabled in the config, the metrics are exposed on /metrics.
func NewRestGateway(
	config *RestConfig,
	downloadService downloads.Service,
	metrics MetricsExporter,
) *RestGateway {
	ec := echo.New()
	ec.OnAddRouteHandler = func(host string, route echo.Route, handler echo.HandlerFunc, middleware []echo.MiddlewareFunc) {
		log.Emit(logger.DEBUG, "Registered new route %s %s\n", route.Method, route.Path)
	}
	ec.HidePort = true
	ec.HideBanner = true
	ec.Validator = &requestValidator{validator: validator.New()}
	ec.HTTPErrorHandler = GetHTTPErrorHandler(ec.DefaultHTTPErrorHandler)

	gateway := &RestGateway{
		config:             config,
		ec:                 ec,
		healthController:   health.New(config.ServiceName),
		downloadController: downloads.New(downloadService),
	}

	ec.Use(middleware.Logger())
	ec.Use(middleware.Recover())
	ec.Use(middleware.BodyLimit(maxRequestBodySize))
	ec.Pre(middleware.RemoveTrailingSlash())

	root := ec.Group("")
	gateway.healthController.SetRoutes(root)
	gateway.downloadController.SetRoutes(root)

	if config.MetricsEnabled && metrics != nil {
		ec.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	}

	return gateway
}

// ServeHTTP allows the gateway to be used directly as an http.Handler.
func (gateway *RestGateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	gateway.ec.ServeHTTP(w, r)
}

// Run starts the HTTP listener and blocks until the provided context is
// cancelled, at which point in-flight requests are given a short grace
// period to complete before the server is closed.
func (gateway *RestGateway) Run(parentCtx context.Context) error {
	ctx, ctxCancel := context.WithCancelCause(parentCtx)
	defer ctxCancel(nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		log.Emit(logger.NEW, "Starting HTTP gateway on %s\n", gateway.config.Address())
		if err := gateway.ec.Start(gateway.config.Address()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			ctxCancel(err)
		}
	}()

	<-ctx.Done()
	log.Emit(logger.STOP, "Closing HTTP gateway\n")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGracePeriod)
	defer cancel()
	if err := gateway.ec.Shutdown(shutdownCtx); err != nil {
		log.Emit(logger.WARNING, "HTTP gateway did not shutdown cleanly: %v\n", err)
	}
	<-done

	// Return cancellation cause if any, otherwise nil as parent context
	// cancellation is not an error case we should report.
	if cause := context.Cause(ctx); cause != nil && !errors.Is(cause, context.Canceled) {
		return cause
	}

	return nil
}
