package api

import (
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"alumni-office/internal/api/handlers"
	"alumni-office/internal/api/middleware"
	"alumni-office/internal/api/utils"
	"alumni-office/internal/config"
	"alumni-office/internal/logger"
	"alumni-office/internal/registry"
	"alumni-office/internal/report"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type ServerDeps struct {
	Store    handlers.Store
	Logger   logger.LoggerService
	Renderer *report.Renderer
}

func NewServer(cfg config.Config, deps ServerDeps) (*http.Server, error) {
	addr := strings.TrimSpace(cfg.APIListen)
	if err := validateListenAddr(addr); err != nil {
		return nil, err
	}
	if deps.Store == nil {
		return nil, errors.New("database store is required")
	}

	return &http.Server{
		Addr:              addr,
		Handler:           NewRouter(cfg, deps),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}, nil
}

// NewRouter wires every route; NewServer wraps it in an http.Server.
func NewRouter(cfg config.Config, deps ServerDeps) http.Handler {
	log := deps.Logger
	if log == nil {
		log = logger.NewNop()
	}
	renderer := deps.Renderer
	if renderer == nil {
		renderer = report.New()
	}

	opt := handlers.Options{
		QueryTimeout: cfg.DB.QueryTimeout,
		CacheMaxAge:  cfg.API.CacheMaxAge,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(log, true))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{"Content-Disposition", middleware.RequestIDHeader},
		MaxAge:         300,
	}))
	if cfg.API.RateLimitPerMinute > 0 {
		r.Use(httprate.LimitByIP(cfg.API.RateLimitPerMinute, time.Minute))
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) { utils.WriteNotFound(w) })
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) { utils.WriteMethodNotAllowed(w) })

	r.Get("/health", handlers.NewHealthHandler(deps.Store))
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.Metrics)

		r.Get("/table/{name}", handlers.NewReadHandler(deps.Store, registry.Tables(), opt, log))
		r.Post("/table/{name}", handlers.NewInsertHandler(deps.Store, registry.TableSchemas(), opt, log))
		r.Get("/view/{name}", handlers.NewReadHandler(deps.Store, registry.Views(), opt, log))
		r.Get("/report/{name}", handlers.NewReportHandler(deps.Store, registry.Reports(), renderer, opt, log))
	})

	return r
}

func validateListenAddr(addr string) error {
	if addr == "" {
		return errors.New("apiListen is required")
	}

	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return errors.New("apiListen must be in host:port format")
	}
	if host == "" {
		return errors.New("apiListen host is required")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil || port < 1 || port > 65535 {
		return errors.New("apiListen port is invalid")
	}

	return nil
}
