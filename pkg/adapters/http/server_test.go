package http

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/strata/pkg/adapters/memory"
	"github.com/aretw0/strata/pkg/observability"
)

func newTestServer(t *testing.T, opts ...Option) (*Server, *httptest.Server) {
	t.Helper()
	opts = append([]Option{WithGatherer(prometheus.NewRegistry())}, opts...)
	s := NewServer(opts...)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func call(t *testing.T, method, url string, body any, out any) int {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil && resp.StatusCode != http.StatusNoContent {
		reflect.ValueOf(out).Elem().SetZero()
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func createSession(t *testing.T, ts *httptest.Server) string {
	t.Helper()
	var created SessionResponse
	require.Equal(t, http.StatusCreated, call(t, "POST", ts.URL+"/sessions", nil, &created))
	require.NotEmpty(t, created.ID)
	return created.ID
}

func TestHealthAndInfo(t *testing.T) {
	_, ts := newTestServer(t)

	var health map[string]string
	assert.Equal(t, http.StatusOK, call(t, "GET", ts.URL+"/health", nil, &health))
	assert.Equal(t, "ok", health["status"])

	var info map[string]string
	assert.Equal(t, http.StatusOK, call(t, "GET", ts.URL+"/info", nil, &info))
	assert.Equal(t, "strata-http", info["app"])
	assert.NotEmpty(t, info["version"])
}

func TestSessionLifecycle(t *testing.T) {
	_, ts := newTestServer(t)

	var created SessionResponse
	require.Equal(t, http.StatusCreated, call(t, "POST", ts.URL+"/sessions", nil, &created))
	assert.Len(t, created.View.Pool, 7)
	assert.Len(t, created.View.Slots, 7)
	base := ts.URL + "/sessions/" + created.ID

	var res CommandResponse
	require.Equal(t, http.StatusOK, call(t, "POST", base+"/drop", map[string]any{"piece": "p1", "slot": 0}, &res))
	assert.Equal(t, "place", res.Kind)
	assert.True(t, res.Applied)
	assert.Equal(t, "Placed Fossil A into bottom layer.", res.Message)
	assert.Equal(t, "p1", string(res.View.Slots[0].Piece.ID))

	require.Equal(t, http.StatusOK, call(t, "POST", base+"/drop", map[string]any{"piece": "p1", "slot": 0}, &res))
	assert.Equal(t, "none", res.Kind)
	assert.False(t, res.Applied)

	require.Equal(t, http.StatusOK, call(t, "POST", base+"/select/piece", map[string]any{"piece": "p2"}, &res))
	require.Equal(t, http.StatusOK, call(t, "POST", base+"/select/slot", map[string]any{"slot": 0}, &res))
	assert.Equal(t, "replace", res.Kind)

	require.Equal(t, http.StatusOK, call(t, "POST", base+"/undo", nil, &res))
	assert.True(t, res.Applied)
	assert.Equal(t, "p1", string(res.View.Slots[0].Piece.ID))
	assert.True(t, res.View.CanRedo)

	require.Equal(t, http.StatusOK, call(t, "POST", base+"/redo", nil, &res))
	assert.Equal(t, "p2", string(res.View.Slots[0].Piece.ID))

	var hist HistoryResponse
	require.Equal(t, http.StatusOK, call(t, "GET", base+"/history", nil, &hist))
	assert.Len(t, hist.Entries, 3)
	assert.True(t, hist.CanUndo)
	assert.False(t, hist.CanRedo)

	require.Equal(t, http.StatusOK, call(t, "POST", base+"/check", nil, &res))
	assert.Equal(t, "incomplete", res.Verdict)
	assert.Equal(t, "Place all pieces before checking.", res.Message)

	require.Equal(t, http.StatusOK, call(t, "POST", base+"/resize", nil, &res))
	assert.Equal(t, 1, res.View.Layout)

	require.Equal(t, http.StatusOK, call(t, "POST", base+"/reset", nil, &res))
	assert.Equal(t, "reset", res.Kind)
	assert.Len(t, res.View.Pool, 7)

	var got SessionResponse
	require.Equal(t, http.StatusOK, call(t, "GET", base, nil, &got))
	assert.Equal(t, created.ID, got.ID)

	var list map[string][]string
	require.Equal(t, http.StatusOK, call(t, "GET", ts.URL+"/sessions", nil, &list))
	assert.Equal(t, []string{created.ID}, list["sessions"])

	assert.Equal(t, http.StatusNoContent, call(t, "DELETE", base, nil, nil))
	assert.Equal(t, http.StatusNotFound, call(t, "GET", base, nil, &errorResponse{}))
	assert.Equal(t, http.StatusNotFound, call(t, "DELETE", base, nil, &errorResponse{}))
}

func TestCommandErrors(t *testing.T) {
	_, ts := newTestServer(t)
	base := ts.URL + "/sessions/" + createSession(t, ts)

	tests := []struct {
		name   string
		path   string
		body   any
		status int
	}{
		{"unknown piece", "/drop", map[string]any{"piece": "ghost", "slot": 0}, http.StatusBadRequest},
		{"slot out of range", "/drop", map[string]any{"piece": "p1", "slot": 7}, http.StatusBadRequest},
		{"negative slot", "/select/slot", map[string]any{"slot": -1}, http.StatusBadRequest},
		{"missing slot", "/drop", map[string]any{"piece": "p1"}, http.StatusBadRequest},
		{"missing piece", "/select/piece", map[string]any{}, http.StatusBadRequest},
		{"unknown field", "/drop", map[string]any{"piece": "p1", "slot": 0, "x": 1}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e errorResponse
			assert.Equal(t, tt.status, call(t, "POST", base+tt.path, tt.body, &e))
			assert.NotEmpty(t, e.Error)
		})
	}

	var e errorResponse
	assert.Equal(t, http.StatusNotFound, call(t, "POST", ts.URL+"/sessions/nope/undo", nil, &e))

	var view SessionResponse
	require.Equal(t, http.StatusOK, call(t, "GET", base, nil, &view))
	assert.Len(t, view.View.Pool, 7, "rejected commands must not change the placement")
}

func TestCreateSession_NamedPuzzle(t *testing.T) {
	loader := memory.NewLoader(map[string]string{
		"tiny": "name: tiny\npieces: [{id: a, label: Ay}, {id: b, label: Bee}]\nslots: [down, up]\nsolution: [b, a]\n",
	})
	_, ts := newTestServer(t, WithLoader(loader))

	var puzzles map[string][]string
	require.Equal(t, http.StatusOK, call(t, "GET", ts.URL+"/puzzles", nil, &puzzles))
	assert.Equal(t, []string{"tiny"}, puzzles["puzzles"])

	var created SessionResponse
	require.Equal(t, http.StatusCreated, call(t, "POST", ts.URL+"/sessions", map[string]string{"puzzle": "tiny"}, &created))
	assert.Len(t, created.View.Slots, 2)
	assert.Equal(t, "up", created.View.Slots[1].Name)

	var e errorResponse
	assert.Equal(t, http.StatusNotFound, call(t, "POST", ts.URL+"/sessions", map[string]string{"puzzle": "huge"}, &e))
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	var s *Server
	m := observability.NewMetrics(reg, func() int { return s.Sessions.Count() })
	s = NewServer(WithGatherer(reg), WithLifecycleHooks(m.Hooks()))
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	id := createSession(t, ts)
	call(t, "POST", ts.URL+"/sessions/"+id+"/drop", map[string]any{"piece": "p3", "slot": 2}, nil)

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	assert.Contains(t, string(body), `strata_commits_total{kind="place",source="api"} 1`)
	assert.Contains(t, string(body), "strata_active_sessions 1")
}

func TestSubscribeEvents_Session(t *testing.T) {
	_, ts := newTestServer(t)
	id := createSession(t, ts)

	resp, err := http.Get(ts.URL + "/sessions/" + id + "/events")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	lines := make(chan string, 64)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 64*1024), 1024*1024)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	next := func(match string) string {
		t.Helper()
		timeout := time.After(2 * time.Second)
		for {
			select {
			case line, ok := <-lines:
				if !ok {
					t.Fatalf("stream ended before %q", match)
				}
				if strings.Contains(line, match) {
					return line
				}
			case <-timeout:
				t.Fatalf("timed out waiting for %q", match)
			}
		}
	}

	next("event: ping")
	next(`"status":""`)

	call(t, "POST", ts.URL+"/sessions/"+id+"/drop", map[string]any{"piece": "p2", "slot": 5}, nil)
	line := next("Placed Fossil B into sixth layer.")
	assert.True(t, strings.HasPrefix(line, "data: "))

	call(t, "DELETE", ts.URL+"/sessions/"+id, nil, nil)
	next("event: closed")
}

func TestSubscribeEvents_UnknownSession(t *testing.T) {
	_, ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/sessions/ghost/events")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStreamManager(t *testing.T) {
	sm := NewStreamManager()
	ch, cancel := sm.Subscribe("s")
	assert.Equal(t, 1, sm.Count("s"))

	sm.Broadcast("s", "hello")
	sm.Broadcast("other", "ignored")
	assert.Equal(t, "hello", <-ch)

	for i := 0; i < 100; i++ {
		sm.Broadcast("s", "flood") // never blocks
	}

	sm.Close("s")
	cancel() // after Close: must not panic
	assert.Equal(t, 0, sm.Count("s"))
	for range ch {
	}
}

func TestStreamManager_SlowClientGetsLatest(t *testing.T) {
	sm := NewStreamManager()
	ch, cancel := sm.Subscribe("s")
	defer cancel()

	for i := 0; i < 40; i++ {
		sm.Broadcast("s", fmt.Sprintf("view-%d", i))
	}

	var last string
	for len(ch) > 0 {
		last = <-ch
	}
	assert.Equal(t, "view-39", last)
}
