package server

import (
	"strings"

	"github.com/gdg-oncampus/certhub/internal/identity"
	"github.com/gin-gonic/gin"
)

// Identity headers set by the authenticating reverse proxy. Requests
// reach this service only after the proxy has verified the session.
const (
	headerUID   = "X-Authentik-Uid"
	headerName  = "X-Authentik-Name"
	headerEmail = "X-Authentik-Email"
)

func (s *Server) IdentityRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := strings.TrimSpace(c.GetHeader(headerUID))
		email := strings.TrimSpace(c.GetHeader(headerEmail))
		if uid == "" || email == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		caller := identity.Caller{
			OCID:  uid,
			Name:  identity.DeriveName(c.GetHeader(headerName), email),
			Email: email,
		}

		ctx := identity.WithCaller(c.Request.Context(), caller)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func callerFrom(c *gin.Context) (identity.Caller, bool) {
	return identity.CallerFromContext(c.Request.Context())
}
