package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "gastos/internal/errors"
	"gastos/internal/logger"
	"gastos/internal/middleware"
)

// callerIdentity extracts the resolved identity from the Gin context.
// Returns ErrAccessDenied for anonymous callers; protected routes are
// guarded by RequireAuth so this only fires on a miswired router.
func callerIdentity(c *gin.Context) (middleware.Identity, error) {
	identity := middleware.IdentityFrom(c)
	if !identity.Authenticated {
		return middleware.Anonymous, apperrors.ErrAccessDenied
	}
	return identity, nil
}

// respondWithError writes a consistent JSON error response. If the error is
// an *AppError it uses the error's status code and message. Otherwise it
// logs the unexpected error and returns a generic internal server error;
// internal detail never reaches the client.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, gin.H{"error": appErr.Message})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, gin.H{"error": apperrors.ErrInternalServer.Message})
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}
