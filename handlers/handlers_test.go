package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/maze-tournament/brackets"
	"github.com/Dosada05/maze-tournament/handlers"
	"github.com/Dosada05/maze-tournament/models"
	"github.com/Dosada05/maze-tournament/repositories"
	"github.com/Dosada05/maze-tournament/routes"
	"github.com/Dosada05/maze-tournament/services"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv, _ := newTestEnv(t)
	return srv
}

func newTestEnv(t *testing.T) (*httptest.Server, *brackets.Hub) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	hub := brackets.NewHub(logger)
	go hub.Run(ctx)

	history := repositories.NewMemoryRunHistoryRepository(repositories.DefaultHistoryCapacity)
	snapshots := repositories.NewFileSnapshotRepository(filepath.Join(t.TempDir(), "bracket.json"))
	ms := services.NewMazeService(history, snapshots, services.MazeServiceConfig{}, logger)
	bs := services.NewBracketService(snapshots, nil, hub, logger)

	router := chi.NewRouter()
	routes.SetupRoutes(router, logger, []string{"*"},
		handlers.NewMazeHandler(ms),
		handlers.NewBracketHandler(bs),
		handlers.NewWebSocketHandler(hub, bs, []string{"*"}, logger))

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, hub
}

func do(t *testing.T, srv *httptest.Server, method, path, body string) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, srv.URL+path, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func errorKind(t *testing.T, data []byte) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
		Kind  string `json:"kind"`
	}
	require.NoError(t, json.Unmarshal(data, &body), string(data))
	assert.NotEmpty(t, body.Error)
	return body.Kind
}

func openGridJSON(n int) string {
	grid := make(models.Grid, n)
	for i := range grid {
		grid[i] = make([]int, n)
	}
	data, _ := json.Marshal(grid)
	return string(data)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	status, _ := do(t, srv, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, status)
}

func TestGenerateMaze(t *testing.T) {
	srv := newTestServer(t)

	status, data := do(t, srv, http.MethodGet, "/api/maze/generate?size=7&seed=abc", "")
	require.Equal(t, http.StatusOK, status, string(data))

	var first services.GeneratedMaze
	require.NoError(t, json.Unmarshal(data, &first))
	assert.Equal(t, "abc", first.Seed)
	require.Len(t, first.Maze, 7)
	assert.Positive(t, first.Maze[0][0])
	assert.Positive(t, first.Maze[6][6])

	_, again := do(t, srv, http.MethodGet, "/api/maze/generate?size=7&seed=abc", "")
	assert.JSONEq(t, string(data), string(again))
}

func TestGenerateMaze_Errors(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name  string
		query string
		kind  string
	}{
		{"too small", "?size=4", "InvalidSize"},
		{"too large", "?size=21", "InvalidSize"},
		{"not a number", "?size=ten", "BadRequest"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, data := do(t, srv, http.MethodGet, "/api/maze/generate"+tt.query, "")
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, tt.kind, errorKind(t, data))
		})
	}
}

func TestSolveMaze(t *testing.T) {
	srv := newTestServer(t)

	status, data := do(t, srv, http.MethodPost, "/api/maze/solve", `{"maze":`+openGridJSON(5)+`}`)
	require.Equal(t, http.StatusOK, status, string(data))

	var sol struct {
		Path       []models.Position `json:"path"`
		ReachedEnd bool              `json:"reachedEnd"`
	}
	require.NoError(t, json.Unmarshal(data, &sol))
	assert.True(t, sol.ReachedEnd)
	assert.Len(t, sol.Path, 9)

	status, data = do(t, srv, http.MethodPost, "/api/maze/solve", `{"maze":[[0,0],[0]]}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "MalformedGrid", errorKind(t, data))
}

func TestRequestBodyErrors(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"unknown field", `{"maze":[[0]],"extra":1}`},
		{"bad json", `{"maze":`},
		{"wrong type", `{"maze":"grid"}`},
		{"two values", `{"maze":[[0]]}{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, data := do(t, srv, http.MethodPost, "/api/maze/solve", tt.body)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, "BadRequest", errorKind(t, data))
		})
	}
}

func TestRunPlayer(t *testing.T) {
	srv := newTestServer(t)

	body := `{"playerName":"alice","maze":` + openGridJSON(5) + `,"seed":7,"strategy":"bfs"}`
	status, data := do(t, srv, http.MethodPost, "/api/maze/run", body)
	require.Equal(t, http.StatusOK, status, string(data))

	var out services.RunPlayerOutput
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "alice", out.Result.Name)
	assert.Equal(t, "7", out.Result.Seed)
	assert.True(t, out.Result.ReachedEnd)
	assert.Equal(t, 8, out.Result.PathLength)
	assert.Equal(t, 5, out.Record.MazeSize)
	assert.NotEmpty(t, out.Record.ID)

	tests := []struct {
		name string
		body string
		kind string
	}{
		{"unknown strategy", `{"playerName":"a","maze":` + openGridJSON(5) + `,"strategy":"teleport"}`, "UnknownStrategy"},
		{"missing name", `{"maze":` + openGridJSON(5) + `}`, "ValidationFailed"},
		{"small maze", `{"playerName":"a","maze":` + openGridJSON(3) + `}`, "InvalidSize"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, data := do(t, srv, http.MethodPost, "/api/maze/run", tt.body)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, tt.kind, errorKind(t, data))
		})
	}
}

func TestRunTournament_AndHistory(t *testing.T) {
	srv := newTestServer(t)

	status, data := do(t, srv, http.MethodPost, "/api/maze",
		`{"players":["ann","bob","cy"],"size":6,"seed":42,"strategy":"astar"}`)
	require.Equal(t, http.StatusOK, status, string(data))

	var out services.TournamentResult
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "42", out.Seed)
	assert.Equal(t, services.ModeShared, out.Mode)
	assert.Len(t, out.Maze, 6)
	require.Len(t, out.Results, 3)
	for i, res := range out.Results {
		assert.Equal(t, i+1, res.Rank)
	}

	status, data = do(t, srv, http.MethodGet, "/api/maze/history?limit=2", "")
	require.Equal(t, http.StatusOK, status)
	var history struct {
		History []struct {
			PlayerName string `json:"playerName"`
			Ran        string `json:"ran"`
		} `json:"history"`
	}
	require.NoError(t, json.Unmarshal(data, &history))
	require.Len(t, history.History, 2)
	for _, h := range history.History {
		assert.NotEmpty(t, h.Ran)
	}

	status, data = do(t, srv, http.MethodGet, "/api/maze/runs", "")
	require.Equal(t, http.StatusOK, status)
	var runs []models.RunRecord
	require.NoError(t, json.Unmarshal(data, &runs))
	assert.Len(t, runs, 3)

	status, data = do(t, srv, http.MethodGet, "/api/maze/rankings", "")
	require.Equal(t, http.StatusOK, status)
	var rankings []models.RunRecord
	require.NoError(t, json.Unmarshal(data, &rankings))
	require.Len(t, rankings, 3)
	assert.Equal(t, 1, rankings[0].Rank)
}

func TestRunTournament_Errors(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name string
		body string
		kind string
	}{
		{"one player", `{"players":["solo"]}`, "InsufficientPlayers"},
		{"duplicate", `{"players":["a","a"]}`, "DuplicateOrEmptyName"},
		{"blank", `{"players":["a"," "]}`, "DuplicateOrEmptyName"},
		{"mode", `{"players":["a","b"],"mode":"relay"}`, "UnknownMode"},
		{"size", `{"players":["a","b"],"size":50}`, "InvalidSize"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, data := do(t, srv, http.MethodPost, "/api/maze", tt.body)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, tt.kind, errorKind(t, data))
		})
	}
}

func TestBracket_NotFoundBeforeBuild(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/api/bracket", "/api/bracket/tree"} {
		status, data := do(t, srv, http.MethodGet, path, "")
		assert.Equal(t, http.StatusNotFound, status, path)
		assert.Equal(t, "NotFound", errorKind(t, data))
	}

	status, data := do(t, srv, http.MethodPut, "/api/bracket/match", `{"matchPath":"root","winner":"A"}`)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NotFound", errorKind(t, data))
}

func TestBracket_BuildAndOverride(t *testing.T) {
	srv := newTestServer(t)

	status, data := do(t, srv, http.MethodPost, "/api/bracket", `{"players":["A","B","C"]}`)
	require.Equal(t, http.StatusOK, status, string(data))
	var bracket models.Bracket
	require.NoError(t, json.Unmarshal(data, &bracket))
	assert.Equal(t, "A", bracket.Winner)
	assert.Len(t, bracket.Rounds, 2)

	status, data = do(t, srv, http.MethodGet, "/api/bracket/tree", "")
	require.Equal(t, http.StatusOK, status)
	var tree struct {
		Player1 string `json:"player1"`
		Player2 string `json:"player2"`
		Winner  string `json:"winner"`
		Right   struct {
			Player1 string `json:"player1"`
			Player2 string `json:"player2"`
		} `json:"right"`
	}
	require.NoError(t, json.Unmarshal(data, &tree))
	assert.Equal(t, "A", tree.Player1)
	assert.Equal(t, "B", tree.Player2)
	assert.Equal(t, "B", tree.Right.Player1)
	assert.Equal(t, "C", tree.Right.Player2)

	status, data = do(t, srv, http.MethodPut, "/api/bracket/match", `{"matchPath":"root","winner":"B"}`)
	require.Equal(t, http.StatusOK, status, string(data))
	var updated struct {
		Success bool         `json:"success"`
		Match   models.Match `json:"match"`
	}
	require.NoError(t, json.Unmarshal(data, &updated))
	assert.True(t, updated.Success)
	require.NotNil(t, updated.Match.Winner)
	assert.Equal(t, "B", updated.Match.Winner.Name)

	status, data = do(t, srv, http.MethodGet, "/api/bracket", "")
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(data, &bracket))
	assert.Equal(t, "B", bracket.Winner)
}

func TestBracket_Errors(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		kind   string
	}{
		{"one player", http.MethodPost, "/api/bracket", `{"players":["A"]}`, "InsufficientPlayers"},
		{"duplicate", http.MethodPost, "/api/bracket", `{"players":["A","A"]}`, "DuplicateOrEmptyName"},
		{"duplicate after trimming", http.MethodPost, "/api/bracket", `{"players":[" A","A"]}`, "DuplicateOrEmptyName"},
		{"format", http.MethodPost, "/api/bracket", `{"players":["A","B"],"format":"Swiss"}`, "UnknownFormat"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, data := do(t, srv, tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, tt.kind, errorKind(t, data))
		})
	}

	status, _ := do(t, srv, http.MethodPost, "/api/bracket", `{"players":["A","B","C"]}`)
	require.Equal(t, http.StatusOK, status)

	tests = []struct {
		name   string
		method string
		path   string
		body   string
		kind   string
	}{
		{"path below a bye", http.MethodPut, "/api/bracket/match", `{"matchPath":"root.left.left","winner":"A"}`, "InvalidMatchPath"},
		{"bad segment", http.MethodPut, "/api/bracket/match", `{"matchPath":"root.up","winner":"A"}`, "InvalidMatchPath"},
		{"stranger", http.MethodPut, "/api/bracket/match", `{"matchPath":"root","winner":"Z"}`, "WinnerNotInMatch"},
		{"missing winner", http.MethodPut, "/api/bracket/match", `{"matchPath":"root"}`, "ValidationFailed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, data := do(t, srv, tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, tt.kind, errorKind(t, data))
		})
	}
}

func TestWebSocket_SendsCurrentBracketThenUpdates(t *testing.T) {
	srv, hub := newTestEnv(t)

	status, _ := do(t, srv, http.MethodPost, "/api/bracket", `{"players":["A","B"]}`)
	require.Equal(t, http.StatusOK, status)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws/bracket", nil)
	require.NoError(t, err)
	defer conn.Close()

	read := func() brackets.WebSocketMessage {
		t.Helper()
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		_, raw, err := conn.ReadMessage()
		require.NoError(t, err)
		var msg brackets.WebSocketMessage
		require.NoError(t, json.NewDecoder(bytes.NewReader(raw)).Decode(&msg))
		return msg
	}

	assert.Equal(t, brackets.MessageBracketUpdated, read().Type)

	require.Eventually(t, func() bool { return hub.RoomSize(brackets.BracketRoom) == 1 }, time.Second, 10*time.Millisecond)

	status, _ = do(t, srv, http.MethodPut, "/api/bracket/match", `{"matchPath":"root","winner":"B"}`)
	require.Equal(t, http.StatusOK, status)

	msg := read()
	assert.Equal(t, brackets.MessageMatchUpdated, msg.Type)
	payload, ok := msg.Payload.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "B", payload["champion"])
}
