package httpserver

import (
	"moviehub/errs"
	"moviehub/movie"
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

type SearchMoviesRequest struct {
	Q     string `query:"q" validate:"required,notblank"`
	Page  int    `query:"page" validate:"min=1"`
	Limit int    `query:"limit" validate:"min=1"`
}

// parseSearchMoviesRequest binds and validates the search query string.
// Omitted page and limit fall back to 1 and 10.
func parseSearchMoviesRequest(c echo.Context) (movie.SearchQuery, error) {
	req := SearchMoviesRequest{Page: defaultPage, Limit: defaultLimit}
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &req); err != nil {
		return movie.SearchQuery{}, errs.Errorf(errs.EINVALID, "invalid query parameters")
	}
	if err := c.Validate(&req); err != nil {
		return movie.SearchQuery{}, err
	}

	return movie.SearchQuery{
		Query: strings.TrimSpace(req.Q),
		Page:  req.Page,
		Limit: req.Limit,
	}, nil
}

type SearchMoviesResponse struct {
	Movies []movie.Movie `json:"movies"`
	Total  int64         `json:"total"`
	Page   int           `json:"page"`
	Limit  int           `json:"limit"`
}
