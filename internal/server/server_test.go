package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vizforge/vizforge/internal/config"
	"github.com/vizforge/vizforge/pkg/pipeline"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(nil, nil, logger)
	cfg := config.Default().Server
	srv := httptest.NewServer(New(runner, logger, cfg).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	res, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", res.StatusCode)
	}

	var body map[string]string
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want ok", body["status"])
	}
	if res.Header.Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID header")
	}
}

func TestGenerate(t *testing.T) {
	srv := newTestServer(t)

	payload := `{"text": "Start\nValidate input\nEnd", "formats": ["svg", "json"]}`
	res, err := http.Post(srv.URL+"/api/generate", "application/json", bytes.NewBufferString(payload))
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(res.Body)
		t.Fatalf("status = %d, body %s", res.StatusCode, raw)
	}

	var body struct {
		Kind      string            `json:"kind"`
		ModelHash string            `json:"model_hash"`
		Artifacts map[string][]byte `json:"artifacts"`
		Stats     struct {
			Nodes int `json:"nodes"`
		} `json:"stats"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}

	if body.Kind != "flowchart" {
		t.Errorf("kind = %q, want flowchart", body.Kind)
	}
	if body.ModelHash == "" {
		t.Error("model_hash should be set")
	}
	if body.Stats.Nodes != 3 {
		t.Errorf("nodes = %d, want 3", body.Stats.Nodes)
	}
	if !bytes.Contains(body.Artifacts["svg"], []byte("<svg")) {
		t.Error("svg artifact missing <svg element")
	}
	if !bytes.Contains(body.Artifacts["json"], []byte(`"kind"`)) {
		t.Error("json artifact missing kind field")
	}
}

func TestGenerateErrors(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name       string
		payload    string
		wantStatus int
		wantCode   string
	}{
		{"malformed body", "{", http.StatusBadRequest, "INVALID_INPUT"},
		{"empty text", `{"text": ""}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"bad kind", `{"text": "x: 1", "kind": "pie"}`, http.StatusBadRequest, "INVALID_KIND"},
		{"bad format", `{"text": "x: 1", "formats": ["bmp"]}`, http.StatusBadRequest, "INVALID_FORMAT"},
		{"empty model", `{"text": "no numbers", "kind": "chart"}`, http.StatusUnprocessableEntity, "EMPTY_RESULT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := http.Post(srv.URL+"/api/generate", "application/json", strings.NewReader(tt.payload))
			if err != nil {
				t.Fatal(err)
			}
			defer res.Body.Close()

			if res.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", res.StatusCode, tt.wantStatus)
			}

			var body struct {
				Error struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if body.Error.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", body.Error.Code, tt.wantCode)
			}
		})
	}
}

func TestRenderRaw(t *testing.T) {
	srv := newTestServer(t)

	res, err := http.Get(srv.URL + "/api/render?text=Q1:+10%0AQ2:+20%0AQ3:+30&format=svg")
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(res.Body)
		t.Fatalf("status = %d, body %s", res.StatusCode, raw)
	}
	if ct := res.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("content type = %q, want image/svg+xml", ct)
	}
	raw, _ := io.ReadAll(res.Body)
	if !bytes.Contains(raw, []byte("class=\"bar\"")) {
		t.Error("expected chart bars in SVG")
	}
}

func TestRenderRedactsByDefault(t *testing.T) {
	srv := newTestServer(t)

	res, err := http.Get(srv.URL + "/api/render?text=Start+-%3E+Email+bob%40example.com+-%3E+End&kind=flowchart")
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()

	raw, _ := io.ReadAll(res.Body)
	if bytes.Contains(raw, []byte("bob@example.com")) {
		t.Error("server should redact secrets by default")
	}
}

func TestIndexPage(t *testing.T) {
	srv := newTestServer(t)

	res, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()

	raw, _ := io.ReadAll(res.Body)
	if !bytes.Contains(raw, []byte("VizForge")) || !bytes.Contains(raw, []byte("/api/render")) {
		t.Error("index page should reference the render endpoint")
	}
}
