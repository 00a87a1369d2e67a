// File: middleware/auth.go
package middleware

import (
	"context"
	"net/http"
	"strings"

	"dreamdecol/services/admin"
	"dreamdecol/utils"

	"github.com/gin-gonic/gin"
)

const (
	ctxAdminKey = "admin"
	ctxTokenKey = "adminToken"
)

// Authenticator resolves a bearer token to a live admin identity.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*admin.Identity, error)
}

// BearerToken returns the token of an "Authorization: Bearer <token>" header, or "".
func BearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

// Protect rejects requests without a valid admin token and attaches the identity to the context.
func Protect(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c)
		if token == "" {
			utils.JSONError(c, http.StatusUnauthorized, admin.MsgNoToken)
			return
		}
		identity, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			utils.RespondError(c, err, admin.MsgTokenFailed)
			return
		}
		c.Set(ctxAdminKey, identity)
		c.Set(ctxTokenKey, token)
		c.Next()
	}
}

// CurrentAdmin returns the identity set by Protect.
func CurrentAdmin(c *gin.Context) (*admin.Identity, bool) {
	v, ok := c.Get(ctxAdminKey)
	if !ok {
		return nil, false
	}
	identity, ok := v.(*admin.Identity)
	return identity, ok && identity != nil
}

// CurrentToken returns the raw bearer token accepted by Protect.
func CurrentToken(c *gin.Context) string {
	return c.GetString(ctxTokenKey)
}
