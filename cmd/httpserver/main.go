package main

import (
	"context"
	"errors"
	"log/slog"
	"moviehub/cache"
	_ "moviehub/docs"
	"moviehub/httpserver"
	"moviehub/movie"
	"moviehub/omdb"
	"moviehub/pkg/config"
	"moviehub/pkg/sentry"
	"moviehub/postgres"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	sentrygo "github.com/getsentry/sentry-go"
	_ "github.com/lib/pq"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Cannot load config", "error", err)
		os.Exit(1)
	}

	err = sentrygo.Init(sentrygo.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.AppEnv,
		AttachStacktrace: true,
	})
	if err != nil {
		slog.Error("Cannot init sentry", "error", err)
		os.Exit(1)
	}
	defer sentrygo.Flush(sentry.FlushTime)

	db, err := postgres.NewConnection(postgres.Options{
		DBName:   cfg.DB.Name,
		DBUser:   cfg.DB.User,
		Password: cfg.DB.Pass,
		Host:     cfg.DB.Host,
		Port:     strconv.Itoa(cfg.DB.Port),
		SSLMode:  cfg.DB.EnableSSL,
	})
	if err != nil {
		slog.Error("Cannot open postgres connection", "error", err)
		os.Exit(1)
	}

	catalog, err := omdb.NewClient(omdb.Options{
		APIKey:  cfg.OMDB.APIKey,
		BaseURL: cfg.OMDB.BaseURL,
		Timeout: cfg.OMDB.Timeout,
	})
	if err != nil {
		slog.Error("Cannot create omdb client", "error", err)
		os.Exit(1)
	}

	repo := postgres.NewMovieRepository(db)
	search := cache.NewMovieSearchCache(movie.NewUsecase(repo), cfg.Cache.TTL, cfg.Cache.MaxEntries)
	importer := movie.NewImporter(catalog, repo,
		movie.WithProfile(movie.Profile{
			Keyword: cfg.Import.Keyword,
			Year:    cfg.Import.Year,
			Type:    cfg.Import.Type,
		}),
		movie.WithConcurrency(cfg.Import.Concurrency),
		movie.WithLogger(logger.With("component", "importer")),
		movie.WithErrorReporter(func(err error) {
			sentry.WithTags(map[string]string{"component": "importer"}).Error(err)
		}),
		movie.WithOnImported(func(movie.ImportStats) { search.Flush() }),
	)

	server := httpserver.Default(cfg)
	server.MovieService = search
	server.Importer = importer
	if sqlDB, err := db.DB(); err == nil {
		server.Ready = sqlDB.PingContext
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("server started!", "addr", server.Addr)
		serverErr <- server.Start()
	}()

	if cfg.Import.OnStartup || cfg.Import.Interval > 0 {
		go importer.Run(ctx, cfg.Import.Interval, cfg.Import.OnStartup)
	}

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server stopped with error", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown failed", "error", err)
		}
	}
}
