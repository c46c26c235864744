package server

import (
	"net/http"

	certdomain "github.com/gdg-oncampus/certhub/internal/certificate/domain"
	"github.com/gdg-oncampus/certhub/pkg/db/pagination"
	"github.com/gin-gonic/gin"
)

func (s *Server) CreateCertificate(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req certdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.certSvc.Create(c.Request.Context(), caller.OCID, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) CreateCertificateBatch(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req struct {
		Certificates []certdomain.CreateRequest `json:"certificates"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.certSvc.CreateBatch(c.Request.Context(), caller.OCID, req.Certificates)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	// A batch where every row failed is still a processed batch.
	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListCertificates(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var page pagination.Page
	if err := c.ShouldBindQuery(&page); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.certSvc.ListByIssuer(c.Request.Context(), caller.OCID, page)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
