package server

import (
	"context"
	"net/http"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	catalogdomain "github.com/smallbiznis/galeri/internal/catalog/domain"
)

// listArtworks is the buyer-facing catalog; only approved artworks show.
func (s *Server) listArtworks(c *gin.Context) {
	artworks, err := s.catalog.List(c.Request.Context(), catalogdomain.ListArtworkRequest{
		Status: string(catalogdomain.ArtworkStatusApproved),
	})
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"artworks": artworks})
}

func (s *Server) getArtwork(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		abort(c, catalogdomain.ErrNotFound)
		return
	}

	artwork, err := s.catalog.GetByID(c.Request.Context(), id)
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, artwork)
}

func (s *Server) createArtwork(c *gin.Context) {
	var req catalogdomain.CreateArtworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	artwork, err := s.catalog.Create(c.Request.Context(), req)
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, artwork)
}

func (s *Server) approveArtwork(c *gin.Context) {
	s.transitionArtwork(c, s.catalog.Approve)
}

func (s *Server) rejectArtwork(c *gin.Context) {
	s.transitionArtwork(c, s.catalog.Reject)
}

func (s *Server) transitionArtwork(c *gin.Context, fn func(ctx context.Context, id snowflake.ID) error) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		abort(c, catalogdomain.ErrNotFound)
		return
	}
	if err := fn(c.Request.Context(), id); err != nil {
		abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) listArtworksAdmin(c *gin.Context) {
	artworks, err := s.catalog.List(c.Request.Context(), catalogdomain.ListArtworkRequest{
		Status: c.Query("status"),
	})
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"artworks": artworks})
}
