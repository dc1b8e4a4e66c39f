package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/itwasdom/portfolio-service/internal/apierr"
)

const (
	ctxKeyUserID    = "auth_user_id"
	ctxKeyUserEmail = "auth_user_email"
)

// authRequired verifies the bearer token and stashes the caller identity in
// the request context.
func (s *Service) authRequired(c *gin.Context) {
	header := c.GetHeader("Authorization")
	raw, found := strings.CutPrefix(header, "Bearer ")
	if !found || raw == "" {
		apierr.Handle(c, apierr.Unauthenticated("User must be authenticated"))
		return
	}

	token, err := s.TokenVerifier.VerifyIDToken(c.Request.Context(), raw)
	if err != nil {
		s.Logger.Warn("failed to verify bearer token", zap.Error(err))
		apierr.Handle(c, apierr.Unauthenticated("User must be authenticated"))
		return
	}

	c.Set(ctxKeyUserID, token.UID)
	if email, ok := token.Claims["email"].(string); ok {
		c.Set(ctxKeyUserEmail, email)
	}
	c.Next()
}

// adminRequired gates maintenance routes on the configured allow-list. The
// UI's own admin gating is cosmetic; this is the enforced check.
func (s *Service) adminRequired(c *gin.Context) {
	email := c.GetString(ctxKeyUserEmail)
	for _, allowed := range s.Config.AdminAllowlist {
		if email != "" && strings.EqualFold(email, allowed) {
			c.Next()
			return
		}
	}
	apierr.Handle(c, apierr.PermissionDenied("caller is not an administrator"))
}
