package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/tallybook/tally_backend/internal/core/domain"
	portssvc "github.com/tallybook/tally_backend/internal/core/ports/services"
	"github.com/tallybook/tally_backend/internal/middleware"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// through the service facades.
func RegisterRoutes(r *gin.Engine, services *portssvc.ServiceContainer) {
	registerValidations()

	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Public authentication routes (session cookie, no identity yet)
	registerAuthRoutes(r, services)

	// Everything under /api/v1 requires a logged-in session
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(services.Auth))
	registerUserRoutes(v1, services.User)
	registerJournalRoutes(v1, services.Journal)
	registerLedgerRoutes(v1, services.Ledger)
	registerInviteRoutes(v1, services.Invite)
}

// registerValidations installs the custom binding validations used by the
// DTO tags.
func registerValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterValidation("permission", func(fl validator.FieldLevel) bool {
		_, err := domain.ParsePermissions([]string{fl.Field().String()})
		return err == nil
	})
}
