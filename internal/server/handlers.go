package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/vizforge/vizforge/pkg/buildinfo"
	vferrors "github.com/vizforge/vizforge/pkg/errors"
	"github.com/vizforge/vizforge/pkg/model"
	"github.com/vizforge/vizforge/pkg/pipeline"
)

// generateRequest is the POST /api/generate body.
type generateRequest struct {
	Text    string   `json:"text"`
	Kind    string   `json:"kind,omitempty"`
	Formats []string `json:"formats,omitempty"`
	Width   int      `json:"width,omitempty"`
	Height  int      `json:"height,omitempty"`
	Refresh bool     `json:"refresh,omitempty"`
}

// generateResponse is the JSON envelope for a full compilation.
// Artifact bytes are base64-encoded by encoding/json.
type generateResponse struct {
	Kind      string            `json:"kind"`
	ModelHash string            `json:"model_hash"`
	Stats     statsPayload      `json:"stats"`
	Cache     cachePayload      `json:"cache"`
	Artifacts map[string][]byte `json:"artifacts"`
}

type statsPayload struct {
	Nodes    int     `json:"nodes"`
	Edges    int     `json:"edges"`
	Series   int     `json:"series"`
	ParseMS  float64 `json:"parse_ms"`
	RenderMS float64 `json:"render_ms"`
}

type cachePayload struct {
	ModelHit  bool `json:"model_hit"`
	RenderHit bool `json:"render_hit"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// contentTypes maps output formats to response content types.
var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatHTML: "text/html; charset=utf-8",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatDOT:  "text/vnd.graphviz",
	pipeline.FormatPNG:  "image/png",
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, vferrors.New(vferrors.ErrCodeInvalidInput, "invalid request body"))
		return
	}

	result, err := s.runner.Execute(r.Context(), pipeline.Options{
		Text:    req.Text,
		Kind:    req.Kind,
		Formats: req.Formats,
		Width:   req.Width,
		Height:  req.Height,
		Redact:  s.cfg.Redact,
		Refresh: req.Refresh,
		Logger:  s.logger,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, generateResponse{
		Kind:      result.Kind.String(),
		ModelHash: result.ModelHash,
		Stats: statsPayload{
			Nodes:    result.Stats.NodeCount,
			Edges:    result.Stats.EdgeCount,
			Series:   result.Stats.SeriesCount,
			ParseMS:  float64(result.Stats.ParseTime) / float64(time.Millisecond),
			RenderMS: float64(result.Stats.RenderTime) / float64(time.Millisecond),
		},
		Cache: cachePayload{
			ModelHit:  result.CacheInfo.ModelHit,
			RenderHit: result.CacheInfo.RenderHit,
		},
		Artifacts: result.Artifacts,
	})
}

// handleRender compiles one format and responds with raw bytes, so the demo
// page can embed the result directly.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, err)
		return
	}

	width, height := 0, 0
	if v := q.Get("width"); v != "" {
		width, _ = strconv.Atoi(v)
	}
	if v := q.Get("height"); v != "" {
		height, _ = strconv.Atoi(v)
	}

	result, err := s.runner.Execute(r.Context(), pipeline.Options{
		Text:    q.Get("text"),
		Kind:    q.Get("kind"),
		Formats: []string{format},
		Width:   width,
		Height:  height,
		Redact:  s.cfg.Redact,
		Logger:  s.logger,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexPage))
}

// writeJSON encodes v as the response body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps structured error codes to HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch vferrors.GetCode(err) {
	case vferrors.ErrCodeInvalidInput, vferrors.ErrCodeInvalidKind,
		vferrors.ErrCodeInvalidFormat, vferrors.ErrCodeInvalidSize,
		vferrors.ErrCodeInvalidPath, vferrors.ErrCodeUnsupported:
		status = http.StatusBadRequest
	case vferrors.ErrCodeEmptyResult:
		status = http.StatusUnprocessableEntity
	case vferrors.ErrCodeNotFound, vferrors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	}

	code := string(vferrors.GetCode(err))
	if code == "" {
		code = string(vferrors.ErrCodeInternal)
	}

	writeJSON(w, status, errorResponse{Error: errorPayload{
		Code:    code,
		Message: vferrors.UserMessage(err),
	}})
}

// kindOptions lists the kinds offered by the demo page selector.
var kindOptions = []model.Kind{model.KindAuto, model.KindFlowchart, model.KindDiagram, model.KindChart}
