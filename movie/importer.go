package movie

import (
	"context"
	"fmt"
	"log/slog"
	"moviehub/errs"
	"moviehub/pkg/metrics"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultPageSize is the number of items the catalog returns per search page.
// The termination condition of Reconcile depends on it.
const DefaultPageSize = 10

// Profile is the fixed catalog search an import run reconciles against.
type Profile struct {
	Keyword string
	Year    string
	Type    string
}

var DefaultProfile = Profile{Keyword: "space", Year: "2020", Type: "movie"}

type CatalogQuery struct {
	Keyword string
	Year    string
	Type    string
	Page    int
}

type CatalogItem struct {
	ExternalID string
	Title      string
}

// CatalogPage is one page of catalog search results. Found is false when
// the catalog answered with an explicit "no match".
type CatalogPage struct {
	Found        bool
	Reason       string
	TotalResults int
	Items        []CatalogItem
}

type Catalog interface {
	Search(ctx context.Context, q CatalogQuery) (CatalogPage, error)
	Detail(ctx context.Context, externalID string) (Movie, error)
}

type ImportStats struct {
	Pages      int `json:"pages"`
	Discovered int `json:"discovered"`
	Fetched    int `json:"fetched"`
	Failed     int `json:"failed"`
	Upserted   int `json:"upserted"`
}

type ImporterOption func(im *Importer)

func WithProfile(p Profile) ImporterOption {
	return func(im *Importer) {
		im.profile = p
	}
}

func WithPageSize(size int) ImporterOption {
	return func(im *Importer) {
		if size > 0 {
			im.pageSize = size
		}
	}
}

// WithConcurrency bounds the detail lookups in flight per page. Zero means
// every lookup of a page runs at once.
func WithConcurrency(n int) ImporterOption {
	return func(im *Importer) {
		im.concurrency = n
	}
}

func WithLogger(l *slog.Logger) ImporterOption {
	return func(im *Importer) {
		im.logger = l
	}
}

// WithErrorReporter registers a callback for failed runs started by Run.
func WithErrorReporter(fn func(error)) ImporterOption {
	return func(im *Importer) {
		im.report = fn
	}
}

// WithOnImported registers a callback invoked after a successful run that
// stored at least one movie.
func WithOnImported(fn func(ImportStats)) ImporterOption {
	return func(im *Importer) {
		im.onImported = fn
	}
}

// Importer brings storage up to date with the catalog for a fixed profile.
type Importer struct {
	catalog     Catalog
	r           Repository
	profile     Profile
	pageSize    int
	concurrency int
	logger      *slog.Logger
	report      func(error)
	onImported  func(ImportStats)

	running atomic.Bool
}

func NewImporter(catalog Catalog, r Repository, opts ...ImporterOption) *Importer {
	im := &Importer{
		catalog:    catalog,
		r:          r,
		profile:    DefaultProfile,
		pageSize:   DefaultPageSize,
		logger:     slog.Default(),
		report:     func(error) {},
		onImported: func(ImportStats) {},
	}
	for _, fn := range opts {
		fn(im)
	}
	return im
}

// Reconcile pages through the catalog, fetches details for every item not
// stored yet and upserts them page by page. Failed detail lookups are logged
// and skipped; any other failure aborts the run.
func (im *Importer) Reconcile(ctx context.Context) (ImportStats, error) {
	if !im.running.CompareAndSwap(false, true) {
		return ImportStats{}, ErrImportInProgress
	}
	defer im.running.Store(false)

	stats, err := im.reconcile(ctx)
	if err != nil {
		metrics.ImportRuns.WithLabelValues("error").Inc()
		return stats, errs.Wrap(errs.EINTERNAL, err, "failed to import movies")
	}
	metrics.ImportRuns.WithLabelValues("success").Inc()
	if stats.Upserted > 0 {
		im.onImported(stats)
	}
	return stats, nil
}

func (im *Importer) reconcile(ctx context.Context) (ImportStats, error) {
	var stats ImportStats

	ids, err := im.r.ExternalIDs(ctx)
	if err != nil {
		return stats, fmt.Errorf("load stored ids: %w", err)
	}
	known := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		known[id] = struct{}{}
	}

	total := 0
	for page := 1; ; page++ {
		result, err := im.catalog.Search(ctx, CatalogQuery{
			Keyword: im.profile.Keyword,
			Year:    im.profile.Year,
			Type:    im.profile.Type,
			Page:    page,
		})
		if err != nil {
			return stats, fmt.Errorf("search page %d: %w", page, err)
		}
		stats.Pages++

		if !result.Found {
			im.logger.Info("catalog has no more matches", "page", page, "reason", result.Reason)
			break
		}
		total = result.TotalResults

		fresh := unknownItems(result.Items, known)
		stats.Discovered += len(fresh)

		movies := im.fetchDetails(ctx, fresh)
		batch := make([]Movie, 0, len(movies))
		for _, m := range movies {
			if _, ok := known[m.ExternalID]; ok {
				continue
			}
			known[m.ExternalID] = struct{}{}
			batch = append(batch, m)
		}
		stats.Fetched += len(movies)
		stats.Failed += len(fresh) - len(movies)

		if len(batch) > 0 {
			if err := im.r.UpsertMovies(ctx, batch); err != nil {
				return stats, fmt.Errorf("upsert page %d: %w", page, err)
			}
			stats.Upserted += len(batch)
			metrics.ImportUpsertedMovies.Add(float64(len(batch)))
		}

		if page*im.pageSize >= total {
			break
		}
	}

	return stats, nil
}

// fetchDetails looks up every item concurrently and returns the successful
// lookups in item order.
func (im *Importer) fetchDetails(ctx context.Context, items []CatalogItem) []Movie {
	found := make([]*Movie, len(items))

	g := new(errgroup.Group)
	if im.concurrency > 0 {
		g.SetLimit(im.concurrency)
	}
	for i, item := range items {
		g.Go(func() error {
			m, err := im.catalog.Detail(ctx, item.ExternalID)
			if err != nil {
				metrics.ImportDetailFailures.Inc()
				im.logger.Warn("skipping movie, detail lookup failed",
					"imdb_id", item.ExternalID, "error", err)
				return nil
			}
			found[i] = &m
			return nil
		})
	}
	_ = g.Wait()

	movies := make([]Movie, 0, len(items))
	for _, m := range found {
		if m != nil {
			movies = append(movies, *m)
		}
	}
	return movies
}

func unknownItems(items []CatalogItem, known map[string]struct{}) []CatalogItem {
	seen := make(map[string]struct{}, len(items))
	fresh := make([]CatalogItem, 0, len(items))
	for _, item := range items {
		if _, ok := known[item.ExternalID]; ok {
			continue
		}
		if _, ok := seen[item.ExternalID]; ok {
			continue
		}
		seen[item.ExternalID] = struct{}{}
		fresh = append(fresh, item)
	}
	return fresh
}

// Run reconciles on every tick of interval until ctx is done. With runFirst
// it also reconciles before the first tick. A non-positive interval disables
// the ticker.
func (im *Importer) Run(ctx context.Context, interval time.Duration, runFirst bool) {
	if runFirst {
		im.runOnce(ctx)
	}
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			im.runOnce(ctx)
		}
	}
}

func (im *Importer) runOnce(ctx context.Context) {
	start := time.Now()
	stats, err := im.Reconcile(ctx)
	if err != nil {
		im.logger.Error("movie import failed", "error", err)
		if errs.ErrorCode(err) != errs.ECONFLICT {
			im.report(err)
		}
		return
	}

	im.logger.Info("movies imported",
		"pages", stats.Pages,
		"discovered", stats.Discovered,
		"failed", stats.Failed,
		"upserted", stats.Upserted,
		"duration", time.Since(start).String(),
	)
}
