package handlers

import (
	"errors"
	"net/http"

	"tuiter/internal/middleware"
	"tuiter/internal/services"
	"tuiter/internal/utils"

	"github.com/gin-gonic/gin"
)

// ResolveActingUser maps the "me"/"my" identity alias to the session user and
// plain path parameters to concrete ids. It writes the failure response
// itself and returns false, so handlers stay one-liners. An alias with no
// session is 503, deliberately distinct from a 404 on a missing entity.
func ResolveActingUser(c *gin.Context, raw string) (uint, bool) {
	if raw == "me" || raw == "my" {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": services.ErrIdentityUnresolved.Error()})
			return 0, false
		}
		return user.ID, true
	}
	id, ok := utils.StringToUint(raw)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return 0, false
	}
	return id, true
}

// UintParam parses a numeric path parameter, answering 400 on garbage.
func UintParam(c *gin.Context, name string) (uint, bool) {
	id, ok := utils.StringToUint(c.Param(name))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

// AbortWithError maps the service error taxonomy to documented status codes.
func AbortWithError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrIdentityUnresolved):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": services.ErrIdentityUnresolved.Error()})
	case errors.Is(err, services.ErrTuitNotFound),
		errors.Is(err, services.ErrPollNotFound),
		errors.Is(err, services.ErrOptionNotFound),
		errors.Is(err, services.ErrVoteNotFound),
		errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrConflict), errors.Is(err, services.ErrPollClosed):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrTimeout):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": services.ErrTimeout.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
