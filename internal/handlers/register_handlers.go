package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/quarryworks/quarry_books_app/internal/apperrors"
	portssvc "github.com/quarryworks/quarry_books_app/internal/core/ports/services"
	"github.com/quarryworks/quarry_books_app/internal/middleware"
	"github.com/quarryworks/quarry_books_app/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to per-feature
// route registrations. Every route is quarry-scoped.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	quarry := v1.Group("/quarries/:quarryID")
	RegisterAccountRoutes(quarry, services.Account, services.Ledger)
	registerJournalRoutes(quarry, services.Journal)
	registerPeriodRoutes(quarry, services.Period)
	registerAutoGenRoutes(quarry, services.AutoGen)
	registerReportingRoutes(quarry, services.Reporting, services.Ledger)
	registerSetupRoutes(quarry, services.Setup)
}

// parseDateQuery reads a YYYY-MM-DD query parameter, falling back to the
// given default when absent.
func parseDateQuery(c *gin.Context, name string, fallback time.Time) (time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s date %q, expected YYYY-MM-DD", name, raw)
	}
	return parsed, nil
}

// requireDateQuery reads a YYYY-MM-DD query parameter that must be present.
func requireDateQuery(c *gin.Context, name string) (time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}, fmt.Errorf("missing required %s date", name)
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s date %q, expected YYYY-MM-DD", name, raw)
	}
	return parsed, nil
}

// respondWithError maps service errors to HTTP statuses uniformly.
func respondWithError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrUnbalanced):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrPeriodClosed):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
