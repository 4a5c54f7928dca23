package http

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/marijep/recipeimport"
	"github.com/tidwall/gjson"
)

// ShutdownTimeout is the time given for outstanding requests to finish
// before shutdown.
const ShutdownTimeout = 10 * time.Second

// DefaultAllowedOrigin is the only origin browsers may call the endpoint from.
const DefaultAllowedOrigin = "https://marijep.github.io"

// MaxRequestBodyBytes caps the size of an import request body.
const MaxRequestBodyBytes = 1 << 20

// Server is the import endpoint. Every path accepts OPTIONS for CORS
// preflight and POST {"url": "..."} to import a recipe.
type Server struct {
	ln     net.Listener
	server *http.Server

	// Bind address to open.
	Addr string

	// Value of Access-Control-Allow-Origin on every response.
	AllowedOrigin string

	Importer recipeimport.Importer
	Logger   *slog.Logger
}

// NewServer returns a new instance of Server.
func NewServer() *Server {
	s := &Server{
		server: &http.Server{
			ReadHeaderTimeout: 10 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		AllowedOrigin: DefaultAllowedOrigin,
		Logger:        slog.New(slog.DiscardHandler),
	}
	s.server.Handler = s.logRequests(s.setCORSHeaders(http.HandlerFunc(s.handleImport)))
	return s
}

// Open begins listening on the bind address and serves in the background.
func (s *Server) Open() (err error) {
	if s.ln, err = net.Listen("tcp", s.Addr); err != nil {
		return err
	}
	go s.server.Serve(s.ln)
	return nil
}

// Close gracefully shuts down the server.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// URL returns the local base URL of the running server.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}

// ServeHTTP handles a request with the full middleware chain.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.server.Handler.ServeHTTP(w, r)
}

// handleImport dispatches on method and runs the import for POST requests.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusOK)
		return
	case http.MethodPost:
	default:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusMethodNotAllowed)
		_, _ = io.WriteString(w, "Method not allowed")
		return
	}

	url, err := readImportRequest(w, r)
	if err != nil {
		s.Error(w, r, err)
		return
	}

	recipe, err := s.Importer.Import(r.Context(), url)
	if err != nil {
		s.Error(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(recipe)
}

// readImportRequest reads the body once and returns its non-empty url.
func readImportRequest(w http.ResponseWriter, r *http.Request) (string, error) {
	invalid := recipeimport.Errorf(recipeimport.EINVALID, "Invalid request body")

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxRequestBodyBytes))
	if err != nil || !gjson.ValidBytes(body) {
		return "", invalid
	}
	// Member names match exactly, unlike encoding/json.
	url := gjson.GetBytes(body, "url")
	if url.Type != gjson.String || url.Str == "" {
		return "", invalid
	}
	return url.Str, nil
}

// setCORSHeaders adds the cross-origin headers to every response so browsers
// can read error bodies too.
func (s *Server) setCORSHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", s.AllowedOrigin)
		h.Set("Access-Control-Allow-Methods", "POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type")
		next.ServeHTTP(w, r)
	})
}

// logRequests tags each request with an id and logs it once served.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		defer func(begin time.Time) {
			s.Logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration", time.Since(begin),
				"request_id", id,
			)
		}(time.Now())

		next.ServeHTTP(rec, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

type requestIDKey struct{}

// RequestIDFromContext returns the id assigned to the request, if any.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// statusRecorder remembers the status code written to a response.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
