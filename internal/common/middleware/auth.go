package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"user-admin-backend/internal/auth"
	"user-admin-backend/internal/common/apperr"
	"user-admin-backend/internal/common/logger"
	"user-admin-backend/internal/common/response"
	"user-admin-backend/internal/features/user/models"
	"user-admin-backend/internal/features/user/service"
)

// callerKey is the gin context key holding the authenticated user.
const callerKey = "caller"

// Authenticate resolves the bearer token to a live, active user and stores
// it in the request context. Resolution is repeated on every request; there
// is no cross-request cache, so deactivation and role changes take effect on
// the next request.
func Authenticate(tokens *auth.TokenManager, users service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearer(c.GetHeader("Authorization"))
		if token == "" {
			response.Abort(c, http.StatusUnauthorized, "Access denied. No token provided.")
			return
		}

		userID, err := tokens.Verify(token)
		if err != nil {
			// Expired vs malformed stays an internal distinction; the
			// caller sees the same rejection either way.
			logger.Debug().Err(err).Msg("Token verification failed")
			response.Abort(c, http.StatusUnauthorized, "Token invalid.")
			return
		}

		user, err := users.ResolveUser(c.Request.Context(), userID)
		if err != nil {
			if appErr, ok := apperr.As(err); ok && !appErr.IsInternal() {
				response.Abort(c, appErr.HTTPStatus(), appErr.Message)
				return
			}
			response.Error(c, err)
			return
		}

		if !user.IsActive {
			response.Abort(c, http.StatusUnauthorized, "Account has been deactivated.")
			return
		}

		c.Set(callerKey, user)
		c.Next()
	}
}

// RequireRoles passes only callers whose role is in roles. Must run after
// Authenticate.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := CallerFrom(c)
		if !ok {
			response.Abort(c, http.StatusUnauthorized, "Authentication required.")
			return
		}

		for _, role := range roles {
			if caller.Role == role {
				c.Next()
				return
			}
		}

		response.Abort(c, http.StatusForbidden, "Access denied. Required role: "+strings.Join(roles, " or "))
	}
}

// CallerFrom returns the authenticated user attached by Authenticate.
func CallerFrom(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(callerKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}

func extractBearer(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

var errNoCaller = errors.New("no authenticated caller in context")

// MustCaller is CallerFrom for handlers that run strictly behind
// Authenticate; it aborts with 401 when the invariant is broken.
func MustCaller(c *gin.Context) (*models.User, error) {
	caller, ok := CallerFrom(c)
	if !ok {
		response.Abort(c, http.StatusUnauthorized, "Authentication required.")
		return nil, errNoCaller
	}
	return caller, nil
}
