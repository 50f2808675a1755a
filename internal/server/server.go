// Package server exposes the solver over HTTP.
//
// Routes:
//
//	GET  /healthz    liveness probe
//	POST /v1/solve   solve the polygon in the request body
//
// The solve body is either vertex lines ("x,y" per line, any content type)
// or, with Content-Type application/json, a {"vertices": [[x,y], ...]}
// document. Query parameters variant, policy, workers and refresh override
// the server defaults. Every response carries an X-Request-ID header.
package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"mime"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/inscribe/pkg/buildinfo"
	"github.com/matzehuels/inscribe/pkg/errors"
	"github.com/matzehuels/inscribe/pkg/geom"
	inio "github.com/matzehuels/inscribe/pkg/io"
	"github.com/matzehuels/inscribe/pkg/pipeline"
	"github.com/matzehuels/inscribe/pkg/raster"
)

// RequestIDHeader carries the per-request id.
const RequestIDHeader = "X-Request-ID"

// shutdownTimeout bounds graceful shutdown.
const shutdownTimeout = 10 * time.Second

// Config configures a Server.
type Config struct {
	// MaxBodyBytes caps the request body.
	MaxBodyBytes int64

	// Defaults are the solve options used when the request does not
	// override them.
	Defaults pipeline.Options
}

// Server handles solve requests with a shared runner.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	cfg    Config
	router chi.Router
}

// New creates a server. The runner may be shared with other callers.
func New(runner *pipeline.Runner, logger *log.Logger, cfg Config) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{runner: runner, logger: logger, cfg: cfg}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Post("/v1/solve", s.handleSolve)

	s.router = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return ctx.Err()
}

// =============================================================================
// Handlers
// =============================================================================

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: buildinfo.Version})
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	opts, err := s.requestOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	p, err := s.readPolygon(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	opts.Logger = s.logger.With("request_id", RequestID(r.Context()))
	res, err := s.runner.Solve(r.Context(), p, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res.Source = "request"
	writeJSON(w, http.StatusOK, res)
}

// requestOptions applies query parameters on top of the configured defaults.
func (s *Server) requestOptions(r *http.Request) (pipeline.Options, error) {
	opts := s.cfg.Defaults
	q := r.URL.Query()

	if v := q.Get("variant"); v != "" {
		opts.Variant = v
	}
	if v := q.Get("policy"); v != "" {
		p, err := raster.ParsePolicy(v)
		if err != nil {
			return opts, err
		}
		opts.Policy = p
	}
	if v := q.Get("workers"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidOption, err, "workers %q", v)
		}
		opts.Workers = n
	}
	if v := q.Get("refresh"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidOption, err, "refresh %q", v)
		}
		opts.Refresh = b
	}
	return opts, opts.ValidateAndSetDefaults()
}

func (s *Server) readPolygon(w http.ResponseWriter, r *http.Request) (geom.Polygon, error) {
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	defer body.Close()

	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mt == "application/json" {
		return inio.ReadJSON(body)
	}
	return inio.ReadText(body)
}

// =============================================================================
// Responses
// =============================================================================

type errorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

type errorResponse struct {
	Error     errorBody `json:"error"`
	RequestID string    `json:"request_id,omitempty"`
}

// StatusFor maps an error to an HTTP status: 400 for unusable requests, 413
// for oversized bodies and polygons over the configured limits, 422 for well-formed polygons the solver rejects and
// 500 for everything else.
func StatusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case stderrors.As(err, &tooLarge), errors.Is(err, errors.ErrCodePolygonTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, errors.ErrCodeMalformedInput),
		errors.Is(err, errors.ErrCodeInvalidInput),
		errors.Is(err, errors.ErrCodeInvalidOption):
		return http.StatusBadRequest
	case errors.IsGeometry(err):
		return http.StatusUnprocessableEntity
	case stderrors.Is(err, context.Canceled), stderrors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}

	msg := errors.UserMessage(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("solve failed", "request_id", RequestID(r.Context()), "err", err)
		msg = "internal error"
	}

	writeJSON(w, status, errorResponse{
		Error:     errorBody{Code: code, Message: msg},
		RequestID: RequestID(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// =============================================================================
// Middleware
// =============================================================================

type ctxKey int

const requestIDKey ctxKey = 0

// RequestID returns the id assigned to the request carrying ctx.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// requestID keeps a valid incoming X-Request-ID and assigns a fresh uuid
// otherwise.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", RequestID(r.Context()))
	})
}
