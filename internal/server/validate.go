package server

import (
	"errors"
	"net/http"
	"strings"

	certdomain "github.com/gdg-oncampus/certhub/internal/certificate/domain"
	"github.com/gin-gonic/gin"
)

// ValidateCertificate is the public verification endpoint. An unknown
// ID answers with an explicit valid:false body rather than the generic
// error envelope so verifiers get a stable shape either way.
func (s *Server) ValidateCertificate(c *gin.Context) {
	uniqueID := strings.TrimSpace(c.Param("uniqueId"))

	resp, err := s.certSvc.Validate(c.Request.Context(), uniqueID)
	if err != nil {
		if errors.Is(err, certdomain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"valid":   false,
				"message": "certificate not found",
			})
			return
		}
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
