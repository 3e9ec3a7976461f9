package health

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const statusHealthy = "healthy"

type (
	Dto struct {
		Status  string `json:"status"`
		Service string `json:"service"`
	}

	Controller struct{ serviceName string }
)

func New(serviceName string) *Controller { return &Controller{serviceName: serviceName} }

func (controller *Controller) SetRoutes(eg *echo.Group) {
	eg.GET("/", controller.get)
}

func (controller *Controller) get(ec echo.Context) error {
	return ec.JSON(http.StatusOK, Dto{Status: statusHealthy, Service: controller.serviceName})
}
