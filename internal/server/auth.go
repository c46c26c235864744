package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Me resolves the proxied identity to an issuer record, creating it on
// first login. A freshly created record answers 201.
func (s *Server) Me(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	resp, err := s.issuerSvc.Resolve(c.Request.Context(), caller)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	status := http.StatusOK
	if resp.Created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"data": resp.Issuer})
}
