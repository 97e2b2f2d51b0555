// Package devserver is an in-memory implementation of the DiagnoCare REST
// API. It backs `diagnocare devserver` and the end-to-end tests; nothing it
// stores survives a restart.
package devserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/schema"
	"go.uber.org/zap"

	summaryout "diagnocare/internal/modules/summary/adapter/out"
	summaryport "diagnocare/internal/modules/summary/port/out"
	"diagnocare/internal/platform/clock"
	"diagnocare/internal/platform/id"
)

const (
	// Access tokens are valid one hour, refresh tokens one week, in seconds.
	tokenValidity        = 3600
	refreshTokenValidity = 7 * 24 * 3600
)

type Server struct {
	router  chi.Router
	log     *zap.Logger
	clock   clock.Clock
	ids     id.Generator
	pdf     summaryport.PDFRenderer
	queries *schema.Decoder

	mu    sync.Mutex
	state *state
}

type Option func(*Server)

func WithLogger(log *zap.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

func WithClock(c clock.Clock) Option {
	return func(s *Server) { s.clock = c }
}

func WithIDs(ids id.Generator) Option {
	return func(s *Server) { s.ids = ids }
}

func WithRenderer(r summaryport.PDFRenderer) Option {
	return func(s *Server) { s.pdf = r }
}

func New(opts ...Option) *Server {
	s := &Server{
		log:     zap.NewNop(),
		clock:   clock.SystemClock{},
		ids:     id.UUID{},
		pdf:     summaryout.NewGofpdfRenderer(),
		queries: schema.NewDecoder(),
		state:   newState(),
	}
	s.queries.IgnoreUnknownKeys(true)
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLog)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", s.login)
			r.Post("/register", s.register)
			r.Post("/refresh-token", s.refresh)
			r.Get("/roles", s.roles)
			r.With(s.authenticated).Put("/users/{id}", s.updateUser)
			r.With(s.authenticated).Delete("/users/{id}", s.deleteUser)
		})
		r.Route("/diagnocare", func(r chi.Router) {
			r.Use(s.authenticated)
			r.Get("/symptoms", s.listSymptoms)
			r.Get("/symptoms/search", s.searchSymptoms)
			r.Post("/predictions", s.createPrediction)
			r.Get("/predictions/{id}", s.getPrediction)
			r.Get("/predictions/user/{userId}", s.listPredictions)
			r.Get("/pathology-results/prediction/{id}", s.pathologyResults)
			r.Get("/check-ins", s.listCheckIns)
			r.Post("/check-ins", s.submitCheckIn)
			r.Get("/consultation-summaries/{id}", s.getSummary)
			r.Get("/consultation-summaries/{id}/pdf", s.summaryPDF)
			r.Get("/patient-profiles/user/{userId}", s.getProfile)
			r.Post("/patient-profiles", s.saveProfile)
		})
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.fail(w, r, http.StatusNotFound, "Resource not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		s.fail(w, r, http.StatusMethodNotAllowed, "Method not allowed")
	})
	return r
}

func (s *Server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		started := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Duration("elapsed", time.Since(started)))
	})
}

type envelope struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data,omitempty"`
}

// language reads the caller's preferred language; anything but en is fr.
func language(r *http.Request) string {
	for _, h := range []string{"x-auth-user-lang", "Accept-Language"} {
		if v := strings.ToLower(strings.TrimSpace(r.Header.Get(h))); strings.HasPrefix(v, "en") {
			return "en"
		}
	}
	return "fr"
}

func (s *Server) ok(w http.ResponseWriter, r *http.Request, status int, data any) {
	msg := "Succès"
	if language(r) == "en" {
		msg = "Success"
	}
	writeJSON(w, status, envelope{Message: msg, StatusCode: status, Data: data})
}

func (s *Server) fail(w http.ResponseWriter, _ *http.Request, status int, msg string) {
	writeJSON(w, status, envelope{Message: msg, StatusCode: status})
}

// failErr writes an *httpError as-is and anything else as a 500.
func (s *Server) failErr(w http.ResponseWriter, r *http.Request, err error) {
	var he *httpError
	if errors.As(err, &he) {
		s.fail(w, r, he.status, he.msg)
		return
	}
	s.log.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	s.fail(w, r, http.StatusInternalServerError, "Internal server error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type httpError struct {
	status int
	msg    string
}

func (e *httpError) Error() string { return e.msg }

func errorf(status int, msg string) error {
	return &httpError{status: status, msg: msg}
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errorf(http.StatusBadRequest, "Invalid request body")
	}
	return nil
}

func pathID(r *http.Request, key string) (int64, error) {
	v, err := strconv.ParseInt(chi.URLParam(r, key), 10, 64)
	if err != nil || v <= 0 {
		return 0, errorf(http.StatusBadRequest, "Invalid id: "+chi.URLParam(r, key))
	}
	return v, nil
}

func (s *Server) now() string {
	return s.clock.Now().UTC().Format("2006-01-02T15:04:05.000000")
}
