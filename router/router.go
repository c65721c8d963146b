package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authctl "agrieye/pkg/auth/controller"
	catctl "agrieye/pkg/catalog/controller"
	"agrieye/pkg/middleware"
	optctl "agrieye/pkg/optimize/controller"
	planctl "agrieye/pkg/treatmentplan/controller"
)

type Controllers struct {
	Auth     authctl.AuthController
	Health   interface{ Health(echo.Context) error }
	Optimize optctl.OptimizeController
	Catalog  catctl.CatalogController
	Plans    planctl.TreatmentPlanController
	Metrics  http.Handler
}

// New mounts every route. requireAuth switches the /api identity check
// from the dev cookie to a mandatory X-User-Id.
func New(e *echo.Echo, requireAuth bool, ctl Controllers) *echo.Echo {
	e.GET("/health", ctl.Health.Health)
	if ctl.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(ctl.Metrics))
	}

	dev := e.Group("", middleware.DevLogin())
	dev.GET("/whoami", ctl.Auth.WhoAmI)
	dev.GET("/devlogin", ctl.Auth.DevLogin)

	api := e.Group("/api", middleware.Identity(requireAuth))

	api.POST("/optimize", ctl.Optimize.Optimize)
	api.GET("/optimize/runs", ctl.Optimize.Runs)
	api.GET("/optimize/runs/:id", ctl.Optimize.Run)

	api.GET("/catalog", ctl.Catalog.Diseases)
	api.GET("/catalog/:disease", ctl.Catalog.List)
	api.DELETE("/catalog/:disease", ctl.Catalog.Delete)
	api.POST("/catalog/:disease/import", ctl.Catalog.Import)
	api.POST("/catalog/:disease/optimize", ctl.Catalog.Optimize)

	api.GET("/treatment-plans", ctl.Plans.List)
	api.POST("/treatment-plans", ctl.Plans.Create)
	api.GET("/treatment-plans/:id", ctl.Plans.Get)
	api.DELETE("/treatment-plans/:id", ctl.Plans.Delete)
	api.PUT("/treatment-plans/:id/tasks", ctl.Plans.UpdateTask)
	return e
}
