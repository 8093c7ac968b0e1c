package handlers

import (
	"github.com/gin-gonic/gin"

	portssvc "github.com/marhaba-travel/agency_accounting/internal/core/ports/services"
	"github.com/marhaba-travel/agency_accounting/internal/middleware"
	"github.com/marhaba-travel/agency_accounting/pkg/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	registerCustomValidators()

	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations.
func setupAPIV1Routes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
) {
	// Identity is asserted upstream; every v1 route requires it.
	v1 := r.Group("/api/v1", middleware.RequireUserID())

	registerPostingRoutes(v1, services.Posting)
	registerFiscalYearRoutes(v1, services.FiscalYear, services.Posting)
	registerCurrencyRoutes(v1, services.Currency)
	registerReportingRoutes(v1, services.Reporting)
}
