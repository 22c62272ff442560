package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/eugenenazirov/confstack/internal/endpoint"
	"github.com/eugenenazirov/confstack/internal/snapshot"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

// Handler exposes the resolved configuration snapshot over HTTP.
type Handler struct {
	store *snapshot.Store
	clock func() time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// NewHandler constructs a Handler reading from the provided snapshot store.
func NewHandler(store *snapshot.Store, opts ...HandlerOption) *Handler {
	h := &Handler{
		store: store,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = r
	snap, ok := h.store.Current()
	if !ok {
		writeNotReady(w)
		return
	}

	resp := healthResponse{
		Status:      "ok",
		Environment: snap.Environment().String(),
		ResolvedAt:  snap.ResolvedAt(),
		Timestamp:   h.clock(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleEnvironment(w http.ResponseWriter, r *http.Request) {
	_ = r
	snap, ok := h.store.Current()
	if !ok {
		writeNotReady(w)
		return
	}

	writeJSON(w, http.StatusOK, environmentResponse{Environment: snap.Environment().String()})
}

func (h *Handler) handleEndpoints(w http.ResponseWriter, r *http.Request) {
	_ = r
	snap, ok := h.store.Current()
	if !ok {
		writeNotReady(w)
		return
	}

	decisions := snap.Decisions()
	entries := make([]endpointEntry, 0, len(decisions))
	for _, name := range endpoint.Names(decisions) {
		d := decisions[name]
		entries = append(entries, endpointEntry{
			Service: d.Service,
			Mode:    string(d.Mode),
			URL:     d.URL,
		})
	}
	writeJSON(w, http.StatusOK, endpointsResponse{Endpoints: entries})
}

// handleReport serves the redacted startup summary as plain text; secret
// values never appear here by construction of the report itself.
func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	_ = r
	snap, ok := h.store.Current()
	if !ok {
		writeNotReady(w)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(snap.Report()))
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

type healthResponse struct {
	Status      string    `json:"status"`
	Environment string    `json:"environment"`
	ResolvedAt  time.Time `json:"resolvedAt"`
	Timestamp   time.Time `json:"timestamp"`
}

type environmentResponse struct {
	Environment string `json:"environment"`
}

type endpointEntry struct {
	Service string `json:"service"`
	Mode    string `json:"mode"`
	URL     string `json:"url"`
}

type endpointsResponse struct {
	Endpoints []endpointEntry `json:"endpoints"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, errorResponse{Error: message, Details: details})
}

func writeNotReady(w http.ResponseWriter) {
	writeError(w, http.StatusServiceUnavailable, "Not ready", "configuration has not been resolved")
}
