package dashboard

import (
	"context"
	"embed"
	"encoding/json"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/mlb-dashboard/internal/health"
	"github.com/yourusername/mlb-dashboard/internal/metrics"
)

//go:embed templates/index.html.tmpl
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html.tmpl"))

// ServerConfig holds the web server settings
type ServerConfig struct {
	Addr           string
	Window         DateWindow
	CORSOrigins    []string
	MetricsEnabled bool
	MetricsPath    string
}

// Server is the dashboard HTTP server
type Server struct {
	cfg      ServerConfig
	builder  *Builder
	renderer *TextRenderer
	health   *health.Checker
	logger   *logrus.Logger
	now      func() time.Time
	server   *http.Server
}

type indexPage struct {
	Selected string
	Min      string
	Max      string
	Text     string
}

// NewServer creates a dashboard server
func NewServer(cfg ServerConfig, builder *Builder, checker *health.Checker, log *logrus.Logger) *Server {
	return &Server{
		cfg:      cfg,
		builder:  builder,
		renderer: NewTextRenderer(cfg.Window.Location),
		health:   checker,
		logger:   log,
		now:      time.Now,
	}
}

// Router builds the HTTP routes
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Get("/", s.handleIndex)

	if s.health != nil {
		s.health.Routes(r)
	}

	if s.cfg.MetricsEnabled {
		path := s.cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.Handle(path, metrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		if len(s.cfg.CORSOrigins) > 0 {
			r.Use(cors.Handler(cors.Options{
				AllowedOrigins: s.cfg.CORSOrigins,
				AllowedMethods: []string{"GET", "OPTIONS"},
				AllowedHeaders: []string{"Accept", "Content-Type"},
				MaxAge:         300,
			}))
		}
		r.Get("/predictions", s.handlePredictions)
	})

	return r
}

// Start serves until ctx is cancelled
func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", s.cfg.Addr).Info("Dashboard server starting")
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return s.Shutdown()
	}
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown() error {
	if s.server == nil {
		return nil
	}

	s.logger.Info("Dashboard server shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}

func (s *Server) buildReport(r *http.Request) *Report {
	query := r.URL.Query()
	date, notices := s.cfg.Window.Resolve(query.Get("action"), query.Get("date"), s.now())

	report := s.builder.Build(r.Context(), date)
	report.Notices = append(notices, report.Notices...)
	return report
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	report := s.buildReport(r)
	first, last := s.cfg.Window.Bounds(s.now())

	page := indexPage{
		Selected: report.DateString,
		Min:      first.Format(dateLayout),
		Max:      last.Format(dateLayout),
		Text:     s.renderer.String(report),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, page); err != nil {
		s.logger.WithError(err).Error("Failed to render dashboard page")
	}
}

func (s *Server) handlePredictions(w http.ResponseWriter, r *http.Request) {
	report := s.buildReport(r)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(report); err != nil {
		s.logger.WithError(err).Error("Failed to encode predictions response")
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		metrics.RecordHTTPRequest(route, strconv.Itoa(ww.Status()))

		s.logger.WithFields(logrus.Fields{
			"request_id":  chimiddleware.GetReqID(r.Context()),
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      ww.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
		}).Debug("HTTP request")
	})
}
