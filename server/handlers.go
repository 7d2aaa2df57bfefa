package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jonwraymond/ogimage/catalog"
	"github.com/jonwraymond/ogimage/render"
	"github.com/jonwraymond/ogimage/templates"
)

// Response header values.
const (
	cacheImmutable = "public, max-age=31536000, immutable"
	cacheNoStore   = "no-store"
	cacheCatalog   = "public, max-age=60"
)

// previewParam selects a cache-bypassing render. It is not a template
// parameter and never reaches the schema or the cache key.
const previewParam = "preview"

type notFoundBody struct {
	Error     string   `json:"error"`
	Available []string `json:"available"`
}

type invalidBody struct {
	Error   string               `json:"error"`
	Details templates.FlatIssues `json:"details"`
}

type failedBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "template")
	params := queryParams(r)
	preview := params[previewParam] == "true"
	delete(params, previewParam)

	res, err := s.orchestrator.Render(r.Context(), name, params, render.Options{BypassCache: preview})
	if err != nil {
		s.writeRenderError(w, r, err)
		return
	}

	h := w.Header()
	h.Set("Content-Type", "image/png")
	h.Set("Content-Length", strconv.Itoa(len(res.PNG)))
	h.Set("X-Cache", string(res.Status))
	if preview {
		h.Set("Cache-Control", cacheNoStore)
	} else {
		h.Set("Cache-Control", cacheImmutable)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.PNG)
}

// queryParams flattens the query string. A repeated key keeps its last value.
func queryParams(r *http.Request) map[string]string {
	q := r.URL.Query()
	params := make(map[string]string, len(q))
	for k, vs := range q {
		if len(vs) > 0 {
			params[k] = vs[len(vs)-1]
		}
	}
	return params
}

func (s *Server) writeRenderError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		notFound *render.TemplateNotFoundError
		invalid  *render.InvalidParametersError
		failed   *render.RenderFailedError
	)
	switch {
	case errors.As(err, &notFound):
		writeJSON(w, http.StatusNotFound, notFoundBody{Error: "Template not found", Available: notFound.Available})
	case errors.As(err, &invalid):
		writeJSON(w, http.StatusBadRequest, invalidBody{Error: "Invalid parameters", Details: invalid.Details()})
	case errors.As(err, &failed):
		writeJSON(w, http.StatusInternalServerError, failedBody{Error: "Failed to render image", Message: failed.Message()})
	default:
		s.logger.Error(r.Context(), "unexpected render error", errorField(err))
		writeJSON(w, http.StatusInternalServerError, failedBody{Error: "Failed to render image", Message: err.Error()})
	}
}

func (s *Server) handleTemplates(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Cache-Control", cacheCatalog)
	writeJSON(w, http.StatusOK, catalog.Describe(s.orchestrator.Registry()))
}

func (s *Server) handleCacheStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", cacheNoStore)
	writeJSON(w, http.StatusOK, s.orchestrator.Store().Stats(r.Context()))
}

func (s *Server) handleCacheClear(w http.ResponseWriter, r *http.Request) {
	if err := s.orchestrator.Store().Clear(r.Context()); err != nil {
		s.logger.Error(r.Context(), "cache clear failed", errorField(err))
		writeJSON(w, http.StatusInternalServerError, failedBody{Error: "Failed to clear cache", Message: err.Error()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
