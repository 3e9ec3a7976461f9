package downloads

import (
	"context"
	"fmt"

	"github.com/hbomb79/Siphon/internal/download"
	"github.com/labstack/echo/v4"
)

const videoMimeType = "video/mp4"

type (
	Service interface {
		Fetch(ctx context.Context, url string, serve func(*download.Job) error) error
		Reject(cause error) error
	}

	Request struct {
		URL string `json:"url" validate:"required"`
	}

	Controller struct{ service Service }
)

func New(service Service) *Controller { return &Controller{service: service} }

func (controller *Controller) SetRoutes(eg *echo.Group) {
	eg.POST("/download", controller.download)
}

// download fetches the media at the requested URL and streams the file back
// to the client as an attachment. The body is always decoded as JSON,
// regardless of the Content-Type supplied by the client.
func (controller *Controller) download(ec echo.Context) error {
	var request Request
	if err := ec.Echo().JSONSerializer.Deserialize(ec, &request); err != nil {
		return controller.service.Reject(fmt.Errorf("JSON body invalid: %w", err))
	}
	if err := ec.Validate(&request); err != nil {
		return controller.service.Reject(err)
	}

	return controller.service.Fetch(ec.Request().Context(), request.URL, func(job *download.Job) error {
		ec.Response().Header().Set(echo.HeaderContentType, videoMimeType)
		return ec.Attachment(job.OutputPath, job.Filename)
	})
}
