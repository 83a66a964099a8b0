package httpserver

import (
	"moviehub/errs"
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterPublicMovieRoutes(g *echo.Group) {
	g.GET("/movies", s.handleSearchMovies)
}

// handleSearchMovies godoc
// @Summary Search Movies
// @Description Full-text search over title, director and plot
// @Tags movies
// @Produce json
// @Param q query string true "Search query"
// @Param page query int false "Page number, default 1"
// @Param limit query int false "Page size, default 10"
// @Success 200 {object} SearchMoviesResponse
// @Failure 400 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /api/movies [get]
func (s *Server) handleSearchMovies(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	q, err := parseSearchMoviesRequest(c)
	if err != nil {
		return err
	}

	result, err := s.MovieService.Search(c.Request().Context(), q)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, SearchMoviesResponse{
		Movies: result.Movies,
		Total:  result.Total,
		Page:   q.Page,
		Limit:  q.Limit,
	})
}
