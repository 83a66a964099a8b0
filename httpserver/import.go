package httpserver

import (
	"context"
	"moviehub/errs"
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterPrivateImportRoutes(g *echo.Group) {
	g.POST("/admin/import", s.handleImportMovies)
}

// handleImportMovies godoc
// @Summary Import Movies
// @Description Reconcile stored movies with the OMDb catalog
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} APIResponse{result=movie.ImportStats}
// @Failure 401 {object} APIResponse
// @Failure 409 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /api/admin/import [post]
func (s *Server) handleImportMovies(c echo.Context) error {
	if s.Importer == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie importer not configured")
	}

	// The run outlives a client that disconnects mid-import.
	ctx := context.WithoutCancel(c.Request().Context())
	stats, err := s.Importer.Reconcile(ctx)
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, stats)
}
