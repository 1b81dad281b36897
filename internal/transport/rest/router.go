package rest

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/custodio78/termsuite-core/internal/config"
	"github.com/custodio78/termsuite-core/internal/transport/middleware"
)

// requestObserver receives per-request metrics.
type requestObserver interface {
	RequestStarted()
	RequestDone()
	ObserveRequest(method, route string, status int, elapsed time.Duration)
}

// RouterDeps holds everything NewRouter mounts.
type RouterDeps struct {
	Logger     *slog.Logger
	CORS       config.CORSConfig
	Health     *HealthHandler
	Memory     *MemoryHandler
	Extraction *ExtractionHandler
	Metrics    requestObserver
	// MetricsHandler serves GET /metrics; nil leaves it unmounted.
	MetricsHandler http.Handler
	// UploadLimit guards upload endpoints; nil disables rate limiting.
	UploadLimit middleware.Middleware
}

// NewRouter mounts every endpoint and wraps the mux in the global
// middleware chain. RequestID runs first so that the request seen by the
// inner middleware is the one the mux annotates with its route pattern.
func NewRouter(d RouterDeps) http.Handler {
	mux := http.NewServeMux()
	upload := func(h http.HandlerFunc) http.Handler {
		return middleware.Chain(d.UploadLimit)(h)
	}

	mux.HandleFunc("GET /{$}", d.Health.Index)
	mux.HandleFunc("GET /health", d.Health.Health)
	mux.HandleFunc("GET /health/live", d.Health.Live)
	if d.MetricsHandler != nil {
		mux.Handle("GET /metrics", d.MetricsHandler)
	}

	mux.Handle("POST /api/upload-tmx", upload(d.Memory.Upload))
	mux.HandleFunc("GET /api/tmx", d.Memory.List)
	mux.HandleFunc("GET /api/tmx-languages/{tmx_id}", d.Memory.Languages)
	mux.HandleFunc("POST /api/extract-tmx-language", d.Memory.ExtractLanguage)
	mux.HandleFunc("GET /api/export/tmx-excel/{tmx_id}", d.Memory.Export)

	mux.Handle("POST /api/upload-corpus", upload(d.Extraction.UploadCorpus))
	mux.HandleFunc("POST /api/extract", d.Extraction.Extract)
	mux.HandleFunc("GET /api/status/{job_id}", d.Extraction.Status)
	mux.HandleFunc("GET /api/export/excel/{job_id}", d.Extraction.Export)

	var observe middleware.Middleware
	if d.Metrics != nil {
		observe = middleware.Metrics(d.Metrics)
	}

	return middleware.Chain(
		middleware.RequestID(),
		middleware.Recovery(d.Logger),
		middleware.Logger(d.Logger),
		observe,
		middleware.CORS(d.CORS),
	)(mux)
}
