package httpapi

import (
	"net/http"
	"strings"

	"github.com/zwelix28/canna-bomb-sub001/internal/models"
	"github.com/zwelix28/canna-bomb-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthRequired validates the Bearer token and injects the caller's identity
// into the request context for the service layer.
func AuthRequired(tokens service.TokenProvider, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authz := c.GetHeader("Authorization")
		token, ok := extractBearerToken(authz)
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, NewUnauthorizedError("missing or invalid Authorization header"))
			return
		}

		claims, err := tokens.ParseAndValidateAccess(c.Request.Context(), token)
		if err != nil {
			log.Debug("token validation failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, NewUnauthorizedError("invalid token"))
			return
		}

		ctx := service.WithUserID(c.Request.Context(), claims.UserID)
		ctx = service.WithRole(ctx, models.Role(claims.Role))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireAdmin must be chained after AuthRequired.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := service.RoleFromContext(c.Request.Context())
		if !ok || role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, NewForbiddenError("admin access required"))
			return
		}
		c.Next()
	}
}

func extractBearerToken(authz string) (string, bool) {
	if authz == "" {
		return "", false
	}
	parts := strings.SplitN(authz, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}
