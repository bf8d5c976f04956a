package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/treemap/pkg/cache"
	"github.com/matzehuels/treemap/pkg/errors"
	"github.com/matzehuels/treemap/pkg/pipeline"
)

const budgetJSON = `{
  "name": "Budget",
  "children": [
    {"name": "Eng", "children": [{"name": "Infra", "value": 30}, {"name": "Web", "value": 20}]},
    {"name": "Ops", "children": [{"name": "Infra", "value": 10}]},
    {"name": "Misc", "value": 5}
  ]
}`

func newTestServer(t *testing.T, opts ...Option) (*Server, *httptest.Server) {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	s := New(pipeline.NewRunner(cache.NewNullCache(), nil, logger), logger, opts...)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func do(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		r = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, url, r)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func createBudget(t *testing.T, ts *httptest.Server) createResponse {
	t.Helper()
	resp := do(t, http.MethodPost, ts.URL+"/charts", map[string]any{
		"dataset": json.RawMessage(budgetJSON),
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("POST /charts status = %d, want 201", resp.StatusCode)
	}
	return decodeBody[createResponse](t, resp)
}

func sendEvent(t *testing.T, ts *httptest.Server, id string, ev map[string]any) (int, eventResponse) {
	t.Helper()
	resp := do(t, http.MethodPost, ts.URL+"/charts/"+id+"/events", ev)
	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, eventResponse{}
	}
	return resp.StatusCode, decodeBody[eventResponse](t, resp)
}

func TestCreateChart(t *testing.T) {
	s, ts := newTestServer(t)
	created := createBudget(t, ts)

	if created.ID == "" {
		t.Error("created chart has no ID")
	}
	if created.Width != 960 || created.Height != 600 {
		t.Errorf("size = %vx%v, want 960x600", created.Width, created.Height)
	}
	if created.Nodes != 7 || created.Leaves != 4 {
		t.Errorf("nodes/leaves = %d/%d, want 7/4", created.Nodes, created.Leaves)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestCreateChartYAMLAndConfig(t *testing.T) {
	_, ts := newTestServer(t)
	resp := do(t, http.MethodPost, ts.URL+"/charts", map[string]any{
		"yaml":   "name: Root\nchildren:\n  - {name: a, value: 1}\n  - {name: b, value: 3}\n",
		"config": "width = 400\nheight = 200\n",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	created := decodeBody[createResponse](t, resp)
	if created.Width != 400 || created.Height != 200 {
		t.Errorf("size = %vx%v, want 400x200", created.Width, created.Height)
	}
}

func TestCreateChartErrors(t *testing.T) {
	_, ts := newTestServer(t)

	tests := []struct {
		name string
		body any
		code string
	}{
		{"empty", map[string]any{}, "INVALID_INPUT"},
		{"both inputs", map[string]any{"dataset": json.RawMessage(budgetJSON), "yaml": "name: x\nvalue: 1\n"}, "INVALID_INPUT"},
		{"unknown field", map[string]any{"dataset": json.RawMessage(budgetJSON), "colour": "red"}, "INVALID_FORMAT"},
		{"bad config", map[string]any{"dataset": json.RawMessage(budgetJSON), "config": "width = -1\n"}, "INVALID_SIZE"},
		{"bad replay", map[string]any{"dataset": json.RawMessage(budgetJSON), "isolate": []string{"Nope"}}, "NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, http.MethodPost, ts.URL+"/charts", tt.body)
			if resp.StatusCode < 400 {
				t.Fatalf("status = %d, want an error", resp.StatusCode)
			}
			got := decodeBody[errorResponse](t, resp)
			if got.Code != tt.code {
				t.Errorf("code = %q (%s), want %q", got.Code, got.Error, tt.code)
			}
		})
	}
}

func TestEvents(t *testing.T) {
	_, ts := newTestServer(t)
	id := createBudget(t, ts).ID

	status, got := sendEvent(t, ts, id, map[string]any{"type": "toggle_leaf", "path": "Misc"})
	if status != http.StatusOK {
		t.Fatalf("toggle_leaf status = %d", status)
	}
	if len(got.Deltas) != 1 || got.Deltas[0].Opacity != 0.7 {
		t.Errorf("toggle_leaf deltas = %+v, want one opacity 0.7 delta", got.Deltas)
	}
	if len(got.Selected) != 1 {
		t.Errorf("selected = %v, want one leaf", got.Selected)
	}

	_, got = sendEvent(t, ts, id, map[string]any{"type": "toggle_group", "path": "Ops"})
	if len(got.Isolated) != 1 {
		t.Errorf("isolated = %v, want one group", got.Isolated)
	}
	if len(got.Selected) != 2 {
		t.Errorf("selected after isolate = %v, want Misc and Ops/Infra", got.Selected)
	}

	_, got = sendEvent(t, ts, id, map[string]any{"type": "clear"})
	if len(got.Selected) != 1 {
		t.Errorf("selected after clear = %v, want the isolated group's leaf", got.Selected)
	}

	_, got = sendEvent(t, ts, id, map[string]any{"type": "toggle_group", "path": "Ops"})
	if len(got.Isolated) != 0 || len(got.Selected) != 0 {
		t.Errorf("after restore: isolated %v, selected %v, want none", got.Isolated, got.Selected)
	}
}

func TestLassoEvents(t *testing.T) {
	_, ts := newTestServer(t)
	id := createBudget(t, ts).ID

	_, got := sendEvent(t, ts, id, map[string]any{"type": "pointer_down", "x": 0, "y": 0})
	if !got.Dragging {
		t.Error("pointer_down should start a drag")
	}
	sendEvent(t, ts, id, map[string]any{"type": "pointer_move", "x": 500, "y": 300})
	_, got = sendEvent(t, ts, id, map[string]any{"type": "pointer_up", "x": 960, "y": 600})
	if got.Dragging {
		t.Error("pointer_up should end the drag")
	}
	if len(got.Selected) != 4 {
		t.Errorf("selected = %v, want all 4 leaves", got.Selected)
	}

	resp := do(t, http.MethodGet, ts.URL+"/charts/"+id+"/svg", nil)
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `class="lasso"`) {
		t.Error("svg should show the lingering lasso guide")
	}

	_, got = sendEvent(t, ts, id, map[string]any{"type": "lasso", "rect": map[string]float64{"x0": 0, "y0": 0, "x1": 960, "y1": 600}})
	if len(got.Deltas) != 0 {
		t.Errorf("repeated lasso deltas = %d, want 0", len(got.Deltas))
	}
}

func TestEventErrors(t *testing.T) {
	_, ts := newTestServer(t)
	id := createBudget(t, ts).ID

	tests := []struct {
		name   string
		ev     map[string]any
		status int
	}{
		{"missing type", map[string]any{}, http.StatusBadRequest},
		{"unknown type", map[string]any{"type": "hover"}, http.StatusBadRequest},
		{"lasso without rect", map[string]any{"type": "lasso"}, http.StatusBadRequest},
		{"toggle without target", map[string]any{"type": "toggle_leaf"}, http.StatusBadRequest},
		{"unknown node", map[string]any{"type": "toggle_leaf", "node": 99}, http.StatusNotFound},
		{"ambiguous path", map[string]any{"type": "toggle_leaf", "path": "Infra"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if status, _ := sendEvent(t, ts, id, tt.ev); status != tt.status {
				t.Errorf("status = %d, want %d", status, tt.status)
			}
		})
	}

	if status, _ := sendEvent(t, ts, "missing", map[string]any{"type": "clear"}); status != http.StatusNotFound {
		t.Errorf("unknown chart status = %d, want 404", status)
	}
}

func TestWrongKindToggleIsNoop(t *testing.T) {
	_, ts := newTestServer(t)
	id := createBudget(t, ts).ID

	status, got := sendEvent(t, ts, id, map[string]any{"type": "toggle_leaf", "path": "Eng"})
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if len(got.Deltas) != 0 || len(got.Selected) != 0 {
		t.Errorf("toggle_leaf on a group: deltas %v, selected %v", got.Deltas, got.Selected)
	}
}

func TestSceneAndDOT(t *testing.T) {
	_, ts := newTestServer(t)
	id := createBudget(t, ts).ID
	sendEvent(t, ts, id, map[string]any{"type": "toggle_leaf", "path": "Misc"})

	resp := do(t, http.MethodGet, ts.URL+"/charts/"+id, nil)
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("scene Content-Type = %q", ct)
	}
	doc := decodeBody[map[string]any](t, resp)
	if doc["name"] != "Budget" {
		t.Errorf("scene name = %v, want Budget", doc["name"])
	}
	if sel, _ := doc["selected"].([]any); len(sel) != 1 {
		t.Errorf("scene selected = %v, want one leaf", doc["selected"])
	}
	if nodes, _ := doc["nodes"].([]any); len(nodes) != 7 {
		t.Errorf("scene nodes = %d, want 7", len(nodes))
	}

	resp = do(t, http.MethodGet, ts.URL+"/charts/"+id+"/dot", nil)
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "n0 -> n1") {
		t.Errorf("dot missing root edge:\n%s", body)
	}
}

func TestDeleteAndEviction(t *testing.T) {
	s, ts := newTestServer(t, WithMaxCharts(1))
	first := createBudget(t, ts).ID
	second := createBudget(t, ts).ID

	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 after eviction", s.Len())
	}
	if resp := do(t, http.MethodGet, ts.URL+"/charts/"+first+"/svg", nil); resp.StatusCode != http.StatusNotFound {
		t.Errorf("evicted chart status = %d, want 404", resp.StatusCode)
	}
	if resp := do(t, http.MethodDelete, ts.URL+"/charts/"+second, nil); resp.StatusCode != http.StatusNoContent {
		t.Errorf("DELETE status = %d, want 204", resp.StatusCode)
	}
	if resp := do(t, http.MethodDelete, ts.URL+"/charts/"+second, nil); resp.StatusCode != http.StatusNotFound {
		t.Errorf("second DELETE status = %d, want 404", resp.StatusCode)
	}
}

func TestHealthAndVersion(t *testing.T) {
	_, ts := newTestServer(t)

	if resp := do(t, http.MethodGet, ts.URL+"/healthz", nil); resp.StatusCode != http.StatusOK {
		t.Errorf("healthz status = %d", resp.StatusCode)
	}
	resp := do(t, http.MethodGet, ts.URL+"/version", nil)
	info := decodeBody[map[string]string](t, resp)
	if info["version"] == "" {
		t.Errorf("version response = %v", info)
	}
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{"INVALID_INPUT", http.StatusBadRequest},
		{"INVALID_SIZE", http.StatusBadRequest},
		{"NOT_FOUND", http.StatusNotFound},
		{"UNSUPPORTED", http.StatusNotImplemented},
		{"INTERNAL_ERROR", http.StatusInternalServerError},
		{"", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusOf(errors.Code(tt.code)); got != tt.want {
			t.Errorf("statusOf(%q) = %d, want %d", tt.code, got, tt.want)
		}
	}
}

// keyCache is an in-memory cache that remembers every key written.
type keyCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	sets    []string
}

func newKeyCache() *keyCache { return &keyCache{entries: map[string][]byte{}} }

func (c *keyCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.entries[key]
	return data, ok, nil
}

func (c *keyCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = data
	c.sets = append(c.sets, key)
	return nil
}

func (c *keyCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

func (c *keyCache) Close() error { return nil }

func TestCacheScope(t *testing.T) {
	tests := []struct {
		name   string
		opts   []Option
		prefix string
	}{
		{"default", nil, DefaultCacheScope},
		{"tenant", []Option{WithCacheScope("team-a:")}, "team-a:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newKeyCache()
			logger := log.NewWithOptions(io.Discard, log.Options{})
			runner := pipeline.NewRunner(store, nil, logger)
			s := New(runner, logger, tt.opts...)
			ts := httptest.NewServer(s.Handler())
			defer ts.Close()

			createBudget(t, ts)
			createBudget(t, ts)

			if len(store.sets) != 1 {
				t.Fatalf("cache writes = %v, want one svg artifact shared by both charts", store.sets)
			}
			if !strings.HasPrefix(store.sets[0], tt.prefix) {
				t.Errorf("key %q lacks scope %q", store.sets[0], tt.prefix)
			}
			if runner.Keyer == s.runner.Keyer {
				t.Error("New should scope a copy, not the caller's runner")
			}
		})
	}
}
