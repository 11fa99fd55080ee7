package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"lockchat/config"
	"lockchat/internal/user"
	"lockchat/pkg/logger"
	"lockchat/pkg/utils"
)

const viewerContextKey = "lockchat.viewer"

// AuthGuard authenticates the request from the session cookie or a
// Bearer header, loads the account and attaches the viewer identity.
// Disabled accounts are rejected even with a valid token.
func AuthGuard(cfg *config.Config, users user.UserRepository, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cfg.Cookie.Name)
		if err != nil || token == "" {
			if auth := c.GetHeader("Authorization"); auth != "" {
				scheme, value, ok := strings.Cut(auth, " ")
				if ok && strings.EqualFold(scheme, "bearer") {
					token = value
				}
			}
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		claims, err := utils.ParseJWTToken(token, cfg)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		u, err := users.GetUserByID(c.Request.Context(), claims.UserID)
		if err != nil || !u.IsActive() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		c.Set(viewerContextKey, user.Viewer{
			ID:       u.ID,
			Username: u.Username,
			Role:     u.Role,
		})
		c.Next()
	}
}

func viewerFrom(c *gin.Context) user.Viewer {
	v, _ := c.Get(viewerContextKey)
	viewer, _ := v.(user.Viewer)
	return viewer
}
