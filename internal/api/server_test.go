package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/MJE43/arena-go/internal/store"
)

func newTestServer(t *testing.T) (*httptest.Server, store.DB) {
	t.Helper()
	db, err := store.NewSQLiteDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.Migrate(); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	ts := httptest.NewServer(NewServer(db, zerolog.Nop()).Routes())
	t.Cleanup(ts.Close)
	return ts, db
}

func getJSON(t *testing.T, url string, wantStatus int, out any) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != wantStatus {
		t.Fatalf("GET %s: status %d, want %d", url, resp.StatusCode, wantStatus)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("GET %s: bad JSON: %v", url, err)
		}
	}
}

func TestHealthEndpoint(t *testing.T) {
	ts, _ := newTestServer(t)

	var body map[string]any
	getJSON(t, ts.URL+"/health", http.StatusOK, &body)
	if body["status"] != "healthy" {
		t.Errorf("status = %v", body["status"])
	}
}

func TestGamesEndpoint(t *testing.T) {
	ts, _ := newTestServer(t)

	var body struct {
		Games []string `json:"games"`
	}
	getJSON(t, ts.URL+"/games", http.StatusOK, &body)
	found := false
	for _, id := range body.Games {
		if id == "connect_four" {
			found = true
		}
	}
	if !found {
		t.Errorf("games list missing connect_four: %v", body.Games)
	}
}

func TestEpisodeEndpoints(t *testing.T) {
	ts, db := newTestServer(t)

	ep := &store.Episode{ID: "ep-1", Game: "wordle", NumPlayers: 1, Seed: 7}
	if err := db.SaveEpisode(ep); err != nil {
		t.Fatalf("SaveEpisode failed: %v", err)
	}
	events := []store.Event{
		{Seq: 1, Kind: store.EventObservation, Player: 0, Sender: -1, Content: "welcome"},
		{Seq: 2, Kind: store.EventAction, Player: 0, Sender: 0, Content: "crane"},
	}
	if err := db.SaveEvents("ep-1", events); err != nil {
		t.Fatalf("SaveEvents failed: %v", err)
	}

	var got store.Episode
	getJSON(t, ts.URL+"/episodes/ep-1", http.StatusOK, &got)
	if got.ID != "ep-1" || got.Game != "wordle" {
		t.Errorf("episode mismatch: %+v", got)
	}

	var list store.EpisodesList
	getJSON(t, ts.URL+"/episodes?game=wordle", http.StatusOK, &list)
	if list.TotalCount != 1 {
		t.Errorf("filtered total = %d, want 1", list.TotalCount)
	}

	var stream struct {
		EpisodeID string        `json:"episode_id"`
		Events    []store.Event `json:"events"`
	}
	getJSON(t, ts.URL+"/episodes/ep-1/events", http.StatusOK, &stream)
	if len(stream.Events) != 2 || stream.Events[1].Content != "crane" {
		t.Errorf("event stream mismatch: %+v", stream.Events)
	}
}

func TestEpisodeNotFound(t *testing.T) {
	ts, _ := newTestServer(t)

	var body struct {
		Error string `json:"error"`
	}
	getJSON(t, ts.URL+"/episodes/missing", http.StatusNotFound, &body)
	if body.Error == "" {
		t.Error("error envelope missing")
	}
}
