// Package server exposes the prefix engine over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/yacobolo/cssprefix/internal/prefixer"
)

// MaxBodySize bounds stylesheet uploads.
const MaxBodySize = 10 << 20

// Server holds the chi router and the shared engine.
type Server struct {
	router chi.Router
	engine *prefixer.Engine
	log    *zap.Logger
}

// NewServer creates a Server with all routes configured.
func NewServer(engine *prefixer.Engine, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		engine: engine,
		log:    log.Named("server"),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/prefix", s.handlePrefix)
		r.Post("/expand", s.handleExpand)
		r.Get("/table", s.handleTable)
	})

	s.router = r
	return s
}

// ServeHTTP implements the http.Handler interface, delegating to the chi router.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// logRequests logs one line per request at debug level.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			s.log.Debug("Request",
				zap.String("id", middleware.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("elapsed", time.Since(start)))
		}()
		next.ServeHTTP(ww, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// PrefixResponse is returned by POST /v1/prefix when JSON is requested.
type PrefixResponse struct {
	Content string          `json:"content"`
	Report  prefixer.Report `json:"report"`
}

// handlePrefix rewrites the request body. The "path" query parameter names
// the stylesheet (default "input.css") and "minify" enables minification.
// Bodies whose path is not a stylesheet are returned unchanged. Responds with
// text/css unless the client accepts application/json.
func (s *Server) handlePrefix(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "Request body too large (max 10MB)", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	path := r.URL.Query().Get("path")
	if path == "" {
		path = "input.css"
	}
	filters := []prefixer.Filter{prefixer.NewPrefixFilter(s.engine)}
	if minify := r.URL.Query().Get("minify"); minify == "1" || minify == "true" {
		filters = append(filters, prefixer.MinifyFilter{})
	}

	asset := &prefixer.Asset{Content: string(body), SourcePath: path}
	if err := prefixer.NewPipeline(s.log, filters...).Run(r.Context(), asset); err != nil {
		s.log.Warn("Prefix failed", zap.String("path", path), zap.Error(err))
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		writeJSON(w, http.StatusOK, PrefixResponse{Content: asset.Content, Report: asset.Report})
		return
	}

	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, asset.Content)
}

// ExpandRequest is the body of POST /v1/expand.
type ExpandRequest struct {
	Property string `json:"property"`
	Value    string `json:"value"`
	Bang     string `json:"bang,omitempty"`
}

// ExpandResponse lists the rendered declarations. It is empty when the
// declaration needs no prefixes.
type ExpandResponse struct {
	Declarations []string `json:"declarations"`
}

func (s *Server) handleExpand(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)

	var req ExpandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Property) == "" {
		http.Error(w, "property is required", http.StatusBadRequest)
		return
	}

	d := prefixer.NewDeclaration(req.Property, req.Value, req.Bang)
	resp := ExpandResponse{Declarations: []string{}}
	for _, x := range s.engine.Expand(d) {
		resp.Declarations = append(resp.Declarations, x.Render())
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTable(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Table().Snapshot())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
