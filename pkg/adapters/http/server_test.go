package http_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	api "github.com/aretw0/automata/pkg/adapters/http"
	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/registry"
	"github.com/aretw0/automata/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHandler(t *testing.T, opts ...api.Option) http.Handler {
	t.Helper()
	n := 0
	svc := session.NewService(session.NewManager(memory.NewStore()), registry.NewBuiltin(),
		session.WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("s%d", n)
		}))
	return api.NewHandler(svc, opts...)
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

type status struct {
	SessionID string        `json:"session_id"`
	Automaton string        `json:"automaton"`
	Kind      domain.Kind   `json:"kind"`
	Result    domain.Result `json:"result"`
	Message   string        `json:"message"`
	Steps     int           `json:"steps"`
}

func TestSpec_IsValid(t *testing.T) {
	doc, err := api.Spec()
	require.NoError(t, err)
	assert.NotNil(t, doc.Paths.Find("/sessions/{id}/next"))
	assert.Equal(t, "1.0.0", api.APIVersion())
}

func TestHealthAndInfo(t *testing.T) {
	h := newHandler(t)

	w := do(t, h, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	info := decode[map[string]string](t, do(t, h, http.MethodGet, "/info", nil))
	assert.Equal(t, "automata-http", info["app"])
	assert.Equal(t, "1.0.0", info["api_version"])
	assert.NotEmpty(t, info["version"])

	w = do(t, h, http.MethodGet, "/openapi.yaml", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "openapi: 3.0.3")
}

func TestCORSPreflight(t *testing.T) {
	w := do(t, newHandler(t), http.MethodOptions, "/sessions", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestAutomata(t *testing.T) {
	h := newHandler(t)

	list := decode[[]api.Summary](t, do(t, h, http.MethodGet, "/automata", nil))
	names := make([]string, len(list))
	for i, s := range list {
		names[i] = s.Name
	}
	assert.Contains(t, names, registry.BitFlipper)
	assert.Contains(t, names, registry.NFAExample)

	w := do(t, h, http.MethodGet, "/automata/"+registry.ContainsOne, nil)
	require.Equal(t, http.StatusOK, w.Code)
	def := decode[map[string]any](t, w)
	assert.Equal(t, "dfa", def["kind"])

	w = do(t, h, http.MethodGet, "/automata/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, h, http.MethodGet, "/automata/"+registry.ContainsOne+"/graph", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "graph LR"))
	assert.NotContains(t, w.Body.String(), "classDef")
}

func TestSessionLifecycle(t *testing.T) {
	h := newHandler(t)

	w := do(t, h, http.MethodPost, "/sessions", api.CreateSessionRequest{Automaton: registry.ContainsOne, Input: "01"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[status](t, w)
	assert.Equal(t, "s1", created.SessionID)
	assert.Equal(t, domain.OutcomeContinue, created.Result.Outcome)
	assert.Equal(t, "current configuration: q0 @0", created.Message)

	ids := decode[[]string](t, do(t, h, http.MethodGet, "/sessions", nil))
	assert.Equal(t, []string{"s1"}, ids)

	next := decode[status](t, do(t, h, http.MethodPost, "/sessions/s1/next", nil))
	assert.Equal(t, 1, next.Result.Config.Position)

	next = decode[status](t, do(t, h, http.MethodPost, "/sessions/s1/next", nil))
	assert.Equal(t, domain.OutcomeAccepted, next.Result.Outcome)
	assert.Equal(t, "accepted: final configuration q1 @2", next.Message)

	back := decode[status](t, do(t, h, http.MethodPost, "/sessions/s1/previous", nil))
	assert.Equal(t, domain.OutcomeContinue, back.Result.Outcome)
	assert.Equal(t, 1, back.Result.Index)

	got := decode[status](t, do(t, h, http.MethodGet, "/sessions/s1", nil))
	assert.Equal(t, 1, got.Result.Index)

	trace := decode[[]domain.StepRecord](t, do(t, h, http.MethodGet, "/sessions/s1/trace", nil))
	assert.Len(t, trace, 3)

	graph := do(t, h, http.MethodGet, "/automata/"+registry.ContainsOne+"/graph?session=s1", nil)
	require.Equal(t, http.StatusOK, graph.Code)
	assert.Contains(t, graph.Body.String(), "class s_q0 current;")

	w = do(t, h, http.MethodGet, "/automata/"+registry.BitFlipper+"/graph?session=s1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodDelete, "/sessions/s1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = do(t, h, http.MethodGet, "/sessions/s1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = do(t, h, http.MethodDelete, "/sessions/s1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateSession_Errors(t *testing.T) {
	h := newHandler(t)

	tests := []struct {
		name string
		body any
		code int
	}{
		{"unknown automaton", api.CreateSessionRequest{Automaton: "nope", Input: "0"}, http.StatusNotFound},
		{"missing automaton", api.CreateSessionRequest{Input: "0"}, http.StatusBadRequest},
		{"cyclic dfa", api.CreateSessionRequest{Automaton: registry.ContainsOne, Input: "0", Cyclic: true}, http.StatusBadRequest},
		{"empty cyclic", api.CreateSessionRequest{Automaton: registry.NFAExample, Cyclic: true}, http.StatusBadRequest},
		{"oversized input", api.CreateSessionRequest{Automaton: registry.ContainsOne, Input: strings.Repeat("0", 5000)}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, http.MethodPost, "/sessions", tt.body)
			assert.Equal(t, tt.code, w.Code, w.Body.String())
		})
	}

	req := httptest.NewRequest(http.MethodPost, "/sessions", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStep_UnknownSession(t *testing.T) {
	w := do(t, newHandler(t), http.MethodPost, "/sessions/ghost/next", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRunSession(t *testing.T) {
	h := newHandler(t)

	do(t, h, http.MethodPost, "/sessions", api.CreateSessionRequest{Automaton: registry.BitFlipper, Input: "0110"})
	done := decode[status](t, do(t, h, http.MethodPost, "/sessions/s1/run", nil))
	assert.Equal(t, domain.OutcomeHalted, done.Result.Outcome)
	assert.Equal(t, "1001_", strings.Join(done.Result.Config.Tape, ""))

	do(t, h, http.MethodPost, "/sessions", api.CreateSessionRequest{Automaton: registry.NFAExample, Input: "0", Cyclic: true})
	w := do(t, h, http.MethodPost, "/sessions/s2/run?max_steps=3", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	partial := decode[status](t, w)
	assert.Equal(t, 4, partial.Steps, "progress is saved")

	w = do(t, h, http.MethodPost, "/sessions/s2/run?max_steps=zero", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewCounter(prometheus.CounterOpts{Name: "automata_test_total", Help: "test"}))
	h := newHandler(t, api.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	w := do(t, h, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "automata_test_total 0")
}

func TestSubscribeEvents(t *testing.T) {
	srv := httptest.NewServer(newHandler(t))
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/sessions", "application/json",
		strings.NewReader(`{"automaton":"contains-one","input":"01"}`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/sessions/s1/events", nil)
	require.NoError(t, err)
	stream, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer stream.Body.Close()
	assert.Equal(t, "text/event-stream", stream.Header.Get("Content-Type"))

	lines := bufio.NewReader(stream.Body)
	readUntil := func(prefix string) string {
		for {
			line, err := lines.ReadString('\n')
			require.NoError(t, err)
			if strings.HasPrefix(line, prefix) {
				return strings.TrimSpace(strings.TrimPrefix(line, prefix))
			}
		}
	}
	assert.Equal(t, "ping", readUntil("event: "))
	assert.Equal(t, "connected", readUntil("data: "))

	step, err := http.Post(srv.URL+"/sessions/s1/next", "application/json", nil)
	require.NoError(t, err)
	step.Body.Close()

	var ev api.Event
	require.NoError(t, json.Unmarshal([]byte(readUntil("data: ")), &ev))
	assert.Equal(t, 1, ev.Index)
	assert.Equal(t, domain.OutcomeContinue, ev.Outcome)
	require.NotNil(t, ev.Diff)
	require.NotNil(t, ev.Diff.Position)
	assert.Equal(t, 1, *ev.Diff.Position)
	assert.Nil(t, ev.Diff.State)
}

func TestSubscribeEvents_UnknownSession(t *testing.T) {
	w := do(t, newHandler(t), http.MethodGet, "/sessions/ghost/events", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
