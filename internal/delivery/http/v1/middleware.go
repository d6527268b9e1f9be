package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/avoronov/go-task-api/internal/models"
)

const (
	userCtxKey   = "user"
	userIDCtxKey = "user_id"
)

// HandleAuthMiddleware resolves the bearer token from the
// Authorization header into an authenticated user. Every failure is
// answered with the same 401 body.
func (h *handlerImpl) HandleAuthMiddleware(c *gin.Context) {
	const authHeader = "Authorization"
	header := c.GetHeader(authHeader)
	if header == "" {
		h.logger.Info().Msg("authorization header required")
		abort(c, newStatusTextError(http.StatusUnauthorized))
		return
	}

	const bearerPrefix = "Bearer"
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != bearerPrefix {
		h.logger.Info().Msg("invalid authorization header")
		abort(c, newStatusTextError(http.StatusUnauthorized))
		return
	}

	user, err := h.auth.Resolve(c, parts[1])
	if err != nil {
		h.logger.Info().
			Err(err).
			Msg("failed to resolve token")
		abort(c, newStatusTextError(http.StatusUnauthorized))
		return
	}

	c.Set(userCtxKey, user)
	c.Set(userIDCtxKey, user.ID)
	c.Next()
}

func getUserFromContext(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(userCtxKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}

func getUserIDFromContext(c *gin.Context) (int64, bool) {
	value, exists := c.Get(userIDCtxKey)
	if !exists {
		return 0, false
	}
	id, ok := value.(int64)
	return id, ok
}
