package main

import (
	"context"
	"flag"
	"log/slog"
	"moviehub/movie"
	"moviehub/omdb"
	"moviehub/pkg/config"
	"moviehub/pkg/sentry"
	"moviehub/postgres"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	sentrygo "github.com/getsentry/sentry-go"
	_ "github.com/lib/pq"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("load config failed", "error", err)
		os.Exit(1)
	}

	var (
		keyword     string
		year        string
		kind        string
		concurrency int
	)
	flag.StringVar(&keyword, "keyword", cfg.Import.Keyword, "Catalog search keyword")
	flag.StringVar(&year, "year", cfg.Import.Year, "Release year filter")
	flag.StringVar(&kind, "type", cfg.Import.Type, "Catalog item type")
	flag.IntVar(&concurrency, "concurrency", cfg.Import.Concurrency, "Detail lookups in flight per page (0 = unbounded)")
	flag.Parse()

	if err := sentrygo.Init(sentrygo.ClientOptions{
		Dsn:         cfg.SentryDSN,
		Environment: cfg.AppEnv,
	}); err != nil {
		slog.Error("cannot init sentry", "error", err)
		os.Exit(1)
	}

	db, err := postgres.NewConnection(postgres.Options{
		DBName:   cfg.DB.Name,
		DBUser:   cfg.DB.User,
		Password: cfg.DB.Pass,
		Host:     cfg.DB.Host,
		Port:     strconv.Itoa(cfg.DB.Port),
		SSLMode:  cfg.DB.EnableSSL,
	})
	if err != nil {
		slog.Error("cannot open postgres connection", "error", err)
		os.Exit(1)
	}

	catalog, err := omdb.NewClient(omdb.Options{
		APIKey:  cfg.OMDB.APIKey,
		BaseURL: cfg.OMDB.BaseURL,
		Timeout: cfg.OMDB.Timeout,
	})
	if err != nil {
		slog.Error("cannot create omdb client", "error", err)
		os.Exit(1)
	}

	importer := movie.NewImporter(catalog, postgres.NewMovieRepository(db),
		movie.WithProfile(movie.Profile{Keyword: keyword, Year: year, Type: kind}),
		movie.WithConcurrency(concurrency),
		movie.WithLogger(logger),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	stats, err := importer.Reconcile(ctx)
	if err != nil {
		slog.Error("movie import failed", "error", err, "pages", stats.Pages, "upserted", stats.Upserted)
		sentry.WithTags(map[string]string{"component": "movieimport"}).
			WithExtras(map[string]interface{}{"pages": stats.Pages, "upserted": stats.Upserted}).
			Fatal(err)
		os.Exit(1)
	}

	slog.Info("movies imported",
		"keyword", keyword,
		"pages", stats.Pages,
		"discovered", stats.Discovered,
		"fetched", stats.Fetched,
		"failed", stats.Failed,
		"upserted", stats.Upserted,
		"duration", time.Since(start).String(),
	)
}
