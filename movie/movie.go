package movie

import (
	"math"
	"moviehub/errs"
	"strings"
)

var (
	ErrInvalidQuery      = errs.Errorf(errs.EINVALID, "invalid search query")
	ErrInvalidPagination = errs.Errorf(errs.EINVALID, "page and limit must be greater than or equal to 1")
	ErrImportInProgress  = errs.Errorf(errs.ECONFLICT, "movie import is already running")
)

// Movie is a catalog record keyed by its external (IMDb) identifier.
type Movie struct {
	ExternalID string `json:"imdbID"`
	Title      string `json:"title"`
	Director   string `json:"director,omitempty"`
	Plot       string `json:"plot,omitempty"`
	Poster     string `json:"poster,omitempty"`
	Year       int    `json:"year,omitempty"`
}

// SearchQuery is an already validated search request.
type SearchQuery struct {
	Query string
	Page  int
	Limit int
}

func (q SearchQuery) Validate() error {
	if strings.TrimSpace(q.Query) == "" {
		return ErrInvalidQuery
	}
	if q.Page < 1 || q.Limit < 1 {
		return ErrInvalidPagination
	}
	if q.Page-1 > math.MaxInt/q.Limit {
		return ErrInvalidPagination
	}
	return nil
}

// Skip is the number of matches before the requested page.
func (q SearchQuery) Skip() int {
	return (q.Page - 1) * q.Limit
}

type SearchResult struct {
	Movies []Movie
	Total  int64
}
