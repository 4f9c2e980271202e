// Package server exposes the diagram renderer over HTTP.
//
// Routes:
//
//	POST /render    definition in the body, artifact in the response
//	POST /payload   definition in the body, {"image/svg+xml": "<svg ...>"}
//	GET  /healthz   liveness probe
//	GET  /metrics   Prometheus metrics, when a gatherer is configured
//
// The request body is a definition in JSON, YAML or TOML, selected by the
// Content-Type header (JSON when absent). Query parameters override the
// configured render defaults:
//
//	format      svg (default), png, jpg, dot, pdf
//	input       string to trace and highlight
//	engine      Graphviz layout engine
//	horizontal  true or false
//	reverse     true or false
package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/fadiagram/pkg/errors"
	"github.com/matzehuels/fadiagram/pkg/fa"
	fio "github.com/matzehuels/fadiagram/pkg/io"
	"github.com/matzehuels/fadiagram/pkg/render/diagram"
)

// DefaultMaxBody bounds request bodies.
const DefaultMaxBody = 1 << 20

// Config configures [NewHandler].
type Config struct {
	// Defaults are the render options before query overrides.
	Defaults diagram.Options
	// Logger receives one line per request. Nil discards.
	Logger *log.Logger
	// Gatherer backs GET /metrics. Nil disables the route.
	Gatherer prometheus.Gatherer
	// MaxBody bounds request bodies; zero means DefaultMaxBody.
	MaxBody int64
}

type server struct {
	renderer *diagram.Renderer
	defaults diagram.Options
	logger   *log.Logger
	maxBody  int64
}

// NewHandler returns the HTTP handler serving r.
func NewHandler(r *diagram.Renderer, cfg Config) http.Handler {
	s := &server{
		renderer: r,
		defaults: cfg.Defaults,
		logger:   cfg.Logger,
		maxBody:  cfg.MaxBody,
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	if s.maxBody <= 0 {
		s.maxBody = DefaultMaxBody
	}

	mux := chi.NewRouter()
	mux.Use(middleware.RequestID)
	mux.Use(middleware.Recoverer)
	mux.Use(s.logRequests)

	mux.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		io.WriteString(w, "ok\n")
	})
	mux.Post("/render", s.handleRender)
	mux.Post("/payload", s.handlePayload)
	if cfg.Gatherer != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}
	return mux
}

func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"elapsed", time.Since(start).Round(time.Millisecond),
			"id", middleware.GetReqID(r.Context()))
	})
}

func (s *server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := diagram.DefaultFormat
	if f := r.URL.Query().Get("format"); f != "" {
		var err error
		if format, err = diagram.ParseFormat(f); err != nil {
			s.writeError(w, err)
			return
		}
	}

	m, opts, err := s.request(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	opts.Format = string(format)
	res, err := s.renderer.Encode(r.Context(), m, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", format.MIMEType())
	w.Header().Set("Content-Length", strconv.Itoa(len(res.Data)))
	if tr := res.Graph.Trace; tr != nil {
		w.Header().Set("X-Trace-Accepted", strconv.FormatBool(tr.Accepted))
		w.Header().Set("X-Trace-Steps", strconv.Itoa(tr.Steps))
	}
	w.Write(res.Data)
}

func (s *server) handlePayload(w http.ResponseWriter, r *http.Request) {
	g, err := s.build(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	payload, err := s.renderer.DisplayPayload(r.Context(), g, nil, nil)
	if err != nil {
		s.writeError(w, err)
		return
	}

	out := make(map[string]string, len(payload))
	for mime, data := range payload {
		out[mime] = string(data)
	}
	s.writeJSON(w, http.StatusOK, out)
}

// request decodes the posted definition and the query options.
func (s *server) request(r *http.Request) (*fa.Machine, diagram.Options, error) {
	opts, err := s.options(r)
	if err != nil {
		return nil, opts, err
	}
	m, err := s.machine(r)
	if err != nil {
		return nil, opts, err
	}
	return m, opts, nil
}

// build decodes the definition and builds its graph with the request's
// options. Nothing is written to disk.
func (s *server) build(r *http.Request) (*diagram.Graph, error) {
	m, opts, err := s.request(r)
	if err != nil {
		return nil, err
	}
	res, err := s.renderer.Render(r.Context(), m, opts)
	if err != nil {
		return nil, err
	}
	return res.Graph, nil
}

func (s *server) machine(r *http.Request) (*fa.Machine, error) {
	enc, err := fio.ParseEncoding(r.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}
	def, err := fio.Read(http.MaxBytesReader(nil, r.Body, s.maxBody), enc)
	if err != nil {
		return nil, err
	}
	return def.Machine()
}

func (s *server) options(r *http.Request) (diagram.Options, error) {
	opts := s.defaults
	opts.Destination = ""
	opts.View = false

	q := r.URL.Query()
	if q.Has("input") {
		input := q.Get("input")
		if err := errors.ValidateInputText(input); err != nil {
			return opts, err
		}
		opts = opts.WithInput(input)
	}
	if e := q.Get("engine"); e != "" {
		if _, err := diagram.ParseEngine(e); err != nil {
			return opts, err
		}
		opts.Engine = e
	}
	for name, dst := range map[string]*bool{"horizontal": &opts.Horizontal, "reverse": &opts.ReverseOrientation} {
		v := q.Get(name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "%s must be true or false, got %q", name, v)
		}
		*dst = b
	}
	return opts, nil
}

type errorBody struct {
	Code  errors.Code `json:"code"`
	Error string      `json:"error"`
}

func (s *server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "code", code, "err", err)
	}
	s.writeJSON(w, status, errorBody{Code: code, Error: errors.UserMessage(err)})
}

func (s *server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("encode response", "err", err)
	}
}

// statusFor maps error codes to HTTP status codes.
func statusFor(err error) int {
	code := errors.GetCode(err)
	switch {
	case errors.IsValidation(err):
		return http.StatusBadRequest
	case code == errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case code == errors.ErrCodeUnsupported:
		return http.StatusUnprocessableEntity
	case code == errors.ErrCodeRenderUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
