// ABOUTME: HTTP API server wiring: router, middleware, and JSON helpers.
// ABOUTME: Routes mirror the CLI surface for compounds, doses, and entries.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"fitlog/internal/storage"
)

// Server holds the API's collaborators.
type Server struct {
	repo     storage.Repository
	log      *zap.Logger
	auth     *Auth
	password string
}

// New creates a Server over the given repository. The password gates
// every /api route except login.
func New(repo storage.Repository, password string, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		repo:     repo,
		log:      log,
		auth:     NewAuth(password),
		password: password,
	}
}

// Handler builds the chi router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth", s.handleLogin)
		r.Delete("/auth", s.handleLogout)

		// Everything else requires the auth cookie.
		r.Group(func(r chi.Router) {
			r.Use(s.auth.Require)

			r.Route("/compounds", func(r chi.Router) {
				r.Get("/", s.handleListCompounds)
				r.Post("/", s.handleCreateCompound)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", s.handleGetCompound)
					r.Put("/", s.handleUpdateCompound)
					r.Delete("/", s.handleDeleteCompound)
					r.Get("/doses", s.handleListDoses)
					r.Post("/doses", s.handleUpsertDose)
					r.Get("/series", s.handleSeries)
				})
			})

			r.Route("/entries", func(r chi.Router) {
				r.Get("/", s.handleListEntries)
				r.Post("/", s.handleCreateEntry)
				r.Put("/{id}", s.handleUpdateEntry)
				r.Delete("/{id}", s.handleDeleteEntry)
			})
		})
	})

	return r
}

// requestLogger logs each request with latency and status.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", chimw.GetReqID(r.Context())),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
