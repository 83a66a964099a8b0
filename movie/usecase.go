package movie

import (
	"context"
	"moviehub/errs"
	"moviehub/pkg/metrics"

	"golang.org/x/sync/errgroup"
)

type Service interface {
	Search(ctx context.Context, q SearchQuery) (SearchResult, error)
}

type Repository interface {
	Search(ctx context.Context, query string, skip, limit int) ([]Movie, error)
	Count(ctx context.Context, query string) (int64, error)
	ExternalIDs(ctx context.Context) ([]string, error)
	UpsertMovies(ctx context.Context, movies []Movie) error
}

type Usecase struct {
	r Repository
}

func NewUsecase(r Repository) *Usecase {
	return &Usecase{r: r}
}

// Search returns one page of relevance-ranked matches together with the
// total number of matches. The page and the count are queried concurrently.
func (uc *Usecase) Search(ctx context.Context, q SearchQuery) (SearchResult, error) {
	if err := q.Validate(); err != nil {
		return SearchResult{}, err
	}

	var (
		movies []Movie
		total  int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		movies, err = uc.r.Search(gctx, q.Query, q.Skip(), q.Limit)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = uc.r.Count(gctx, q.Query)
		return err
	})
	if err := g.Wait(); err != nil {
		metrics.SearchRequests.WithLabelValues("error").Inc()
		return SearchResult{}, errs.Wrap(errs.EINTERNAL, err, "failed to search movies")
	}

	if movies == nil {
		movies = []Movie{}
	}
	metrics.SearchRequests.WithLabelValues("success").Inc()
	return SearchResult{Movies: movies, Total: total}, nil
}
