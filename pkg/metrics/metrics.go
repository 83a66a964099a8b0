package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "moviehub"

var (
	ImportRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "import_runs_total",
		Help:      "Movie import runs by outcome.",
	}, []string{"outcome"})

	ImportDetailFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "import_detail_failures_total",
		Help:      "Catalog detail lookups dropped from an import run.",
	})

	ImportUpsertedMovies = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "import_upserted_movies_total",
		Help:      "Movies written by the importer.",
	})

	SearchRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "search_requests_total",
		Help:      "Movie searches by outcome.",
	}, []string{"outcome"})

	SearchCache = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "search_cache_lookups_total",
		Help:      "Search cache lookups by result (hit or miss).",
	}, []string{"result"})
)
