// Package httpapi exposes the key-value client over HTTP.
package httpapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"

	"github.com/JCL38-ORANGE/cf-cassandra-example-app/internal/logging"
	"github.com/JCL38-ORANGE/cf-cassandra-example-app/types"
)

// MaxValueSize bounds the request body of a store request.
const MaxValueSize = 1 << 20

// KV is the subset of cfcassandra.Client served by the API.
type KV interface {
	CreateTable(ctx context.Context, table string) error
	DropTable(ctx context.Context, table string) error
	Store(ctx context.Context, table, key, value string) error
	Fetch(ctx context.Context, table, key string) (string, error)
	Connected() bool
}

// Handler routes API requests to a KV.
type Handler struct {
	kv      KV
	logger  types.Logger
	metrics http.Handler
	router  *mux.Router
}

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the logger used for failed requests.
func WithLogger(logger types.Logger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithMetricsHandler serves h on GET /metrics.
func WithMetricsHandler(metrics http.Handler) Option {
	return func(h *Handler) {
		h.metrics = metrics
	}
}

// New creates the API handler.
//
// Parameters:
//   - kv: The key-value client, usually a *cfcassandra.Client
//   - opts: Handler options
//
// Returns:
//   - *Handler: An http.Handler serving the API routes
func New(kv KV, opts ...Option) *Handler {
	h := &Handler{
		kv:     kv,
		logger: logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(h)
	}

	// Match on the escaped path so a key may contain an encoded slash.
	r := mux.NewRouter().UseEncodedPath()
	r.HandleFunc("/healthz", h.health).Methods(http.MethodGet)
	r.HandleFunc("/tables/{table}", h.createTable).Methods(http.MethodPut)
	r.HandleFunc("/tables/{table}", h.dropTable).Methods(http.MethodDelete)
	r.HandleFunc("/tables/{table}/keys/{key}", h.store).Methods(http.MethodPut)
	r.HandleFunc("/tables/{table}/keys/{key}", h.fetch).Methods(http.MethodGet)
	if h.metrics != nil {
		r.Handle("/metrics", h.metrics).Methods(http.MethodGet)
	}
	h.router = r

	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	if !h.kv.Connected() {
		http.Error(w, "not connected", http.StatusServiceUnavailable)
		return
	}
	writeText(w, http.StatusOK, "ok")
}

func (h *Handler) createTable(w http.ResponseWriter, r *http.Request) {
	table, _, ok := pathVars(w, r)
	if !ok {
		return
	}
	if err := h.kv.CreateTable(r.Context(), table); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) dropTable(w http.ResponseWriter, r *http.Request) {
	table, _, ok := pathVars(w, r)
	if !ok {
		return
	}
	if err := h.kv.DropTable(r.Context(), table); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) store(w http.ResponseWriter, r *http.Request) {
	table, key, ok := pathVars(w, r)
	if !ok {
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, MaxValueSize+1))
	if err != nil {
		http.Error(w, "unable to read request body", http.StatusBadRequest)
		return
	}
	if len(body) > MaxValueSize {
		http.Error(w, "value too large", http.StatusRequestEntityTooLarge)
		return
	}

	if err := h.kv.Store(r.Context(), table, key, string(body)); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) fetch(w http.ResponseWriter, r *http.Request) {
	table, key, ok := pathVars(w, r)
	if !ok {
		return
	}

	value, err := h.kv.Fetch(r.Context(), table, key)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeText(w, http.StatusOK, value)
}

// pathVars returns the unescaped table and key route variables. A malformed
// escape is answered with 400 and ok is false.
func pathVars(w http.ResponseWriter, r *http.Request) (table, key string, ok bool) {
	vars := mux.Vars(r)

	table, err := url.PathUnescape(vars["table"])
	if err == nil {
		key, err = url.PathUnescape(vars["key"])
	}
	if err != nil {
		http.Error(w, "malformed path: "+err.Error(), http.StatusBadRequest)
		return "", "", false
	}

	return table, key, true
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusCode(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "status", status, "err", err)
	} else {
		h.logger.Debug("request rejected", "method", r.Method, "path", r.URL.Path, "status", status, "err", err)
	}
	http.Error(w, err.Error(), status)
}

// StatusCode maps an error returned by the client to an HTTP status.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, types.ErrInvalidTableName), errors.Is(err, types.ErrInvalidKeyspaceName):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrTableDoesNotExist), errors.Is(err, types.ErrKeyNotFound):
		return http.StatusNotFound
	case errors.Is(err, types.ErrInvalidCredentials):
		return http.StatusBadGateway
	case errors.Is(err, types.ErrUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}
