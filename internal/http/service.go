package http

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"

	"github.com/tuanvumaihuynh/graphql-crm/internal/config"
	"github.com/tuanvumaihuynh/graphql-crm/internal/http/metric"
	"github.com/tuanvumaihuynh/graphql-crm/internal/http/middleware"
	"github.com/tuanvumaihuynh/graphql-crm/internal/http/swagger"
	"github.com/tuanvumaihuynh/graphql-crm/internal/storage/db"
)

const GraphQLPath = "/graphql"

var tracer = otel.Tracer("internal/http")

// Service represents the HTTP service.
type Service struct {
	cfg     config.HTTP
	logger  *slog.Logger
	metrics *metric.Metrics

	graphql http.Handler
	health  db.HealthChecker
	apiDoc  *openapi3.T
}

type CleanupFunc func(ctx context.Context) error

// New wires the GraphQL handler behind the shared middleware stack.
// apiDoc is only needed when cfg.Swagger is set.
func New(
	cfg config.HTTP,
	log *slog.Logger,
	graphql http.Handler,
	health db.HealthChecker,
	apiDoc *openapi3.T,
) *Service {
	return &Service{
		cfg:     cfg,
		logger:  log.With(slog.String("service", "http")),
		metrics: metric.New(),
		graphql: graphql,
		health:  health,
		apiDoc:  apiDoc,
	}
}

func (s *Service) Run(ctx context.Context) (CleanupFunc, error) {
	r, err := s.Router()
	if err != nil {
		return nil, err
	}
	return s.RunWithServer(ctx, r)
}

// Router builds the full handler tree without binding a listener.
func (s *Service) Router() (chi.Router, error) {
	r := chi.NewRouter()
	s.RegisterMiddlewares(r)

	if s.cfg.Swagger && s.apiDoc != nil {
		if err := swagger.Register(r, s.apiDoc); err != nil {
			return nil, fmt.Errorf("register swagger: %w", err)
		}
	}

	s.RegisterHandlers(r)
	return r, nil
}

func (s *Service) RunWithServer(ctx context.Context, handler http.Handler) (CleanupFunc, error) {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 16, // 64 KB
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", srv.Addr, err)
	}

	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.logger.Error("http server stopped", slog.Any("error", err))
		}
	}()

	s.logger.Info("http server listening", slog.String("addr", srv.Addr))

	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(ctx)
	}, nil
}

func (s *Service) RegisterMiddlewares(r chi.Router) {
	r.Use(
		middleware.Recoverer(s.logger),
		middleware.Trace(tracer),
		middleware.Metrics(s.metrics),
		middleware.CorrelationID(),
		middleware.Cors(s.cfg.AllowedOrigins),
		middleware.Logging(s.logger),
	)
}

func (s *Service) RegisterHandlers(r chi.Router) {
	r.Method(http.MethodPost, GraphQLPath, s.graphql)
	r.Method(http.MethodGet, GraphQLPath, s.graphql)

	r.Get(middleware.HealthPath, s.handleHealth)

	r.Handle(middleware.MetricsPath, promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{
		ErrorLog: log.Default(),
		Registry: s.metrics.Registry,
	}))
}
