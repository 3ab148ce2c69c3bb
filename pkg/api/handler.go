package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/hazyhaar/titlematch/pkg/kit"
)

// NewRouter returns an http.Handler with all titlematch API routes.
func NewRouter(m Matcher, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	h := &handler{eps: NewEndpoints(m, logger), m: m}

	mux.HandleFunc("GET /v1/normalize/batch", methodNotAllowed) // prevent GET on batch
	mux.HandleFunc("POST /v1/normalize/batch", h.handleNormalizeBatch)
	mux.HandleFunc("GET /v1/normalize/{title}", h.handleNormalizeTitle)
	mux.HandleFunc("GET /v1/titles", h.handleListTitles)
	mux.HandleFunc("GET /v1/health", h.handleHealth)

	return cors(mux)
}

type handler struct {
	eps Endpoints
	m   Matcher
}

// --- normalize single title ---

func (h *handler) handleNormalizeTitle(w http.ResponseWriter, r *http.Request) {
	title := r.PathValue("title")
	if title == "" {
		writeError(w, http.StatusBadRequest, "missing title")
		return
	}

	req := &normalizeReq{Title: title}
	q := r.URL.Query()
	if v := q.Get("explain"); v != "" {
		explain, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "explain must be a boolean")
			return
		}
		req.Explain = explain
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		req.Limit = limit
	}

	resp, err := h.eps.NormalizeTitle(kit.WithTransport(r.Context(), "http"), req)
	if err != nil {
		writeEndpointError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- normalize batch ---

type httpBatchRequest struct {
	Titles []string `json:"titles"`
}

func (h *handler) handleNormalizeBatch(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 64*1024) // 64 KiB max
	var req httpBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	resp, err := h.eps.NormalizeBatch(kit.WithTransport(r.Context(), "http"), &normalizeBatchReq{Titles: req.Titles})
	if err != nil {
		writeEndpointError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- list titles ---

func (h *handler) handleListTitles(w http.ResponseWriter, r *http.Request) {
	resp, err := h.eps.ListTitles(kit.WithTransport(r.Context(), "http"), nil)
	if err != nil {
		writeEndpointError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- health ---

type healthResponse struct {
	Status string `json:"status"`
	Titles int    `json:"titles"`
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status: "ok",
		Titles: len(h.m.Titles()),
	})
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func writeEndpointError(w http.ResponseWriter, err error) {
	if errors.Is(err, errInvalidRequest) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

// cors is a simple CORS middleware for browser-based clients.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
