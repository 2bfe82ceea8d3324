package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/hatruonggiang/vleague-scheduler/internal/jobrunner"
	"github.com/hatruonggiang/vleague-scheduler/internal/storage/sqlite"
	"github.com/hatruonggiang/vleague-scheduler/pkg/apitypes"

	"github.com/gin-gonic/gin"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.Migrate("../../migrations"); err != nil {
		t.Fatalf("running migrations: %v", err)
	}

	return NewServer(db.Conn())
}

func testCreateLeagueRequest() apitypes.CreateLeagueRequest {
	return apitypes.CreateLeagueRequest{
		Name: "Integration League",
		Teams: []apitypes.TeamInput{
			{ID: 1, Name: "Hanoi FC", ShortName: "HFC", City: "Hanoi", HomeStadium: 1},
			{ID: 2, Name: "Saigon FC", ShortName: "SFC", City: "Saigon", HomeStadium: 2},
			{ID: 3, Name: "Hanoi United", ShortName: "HUN", City: "Hanoi", HomeStadium: 1},
			{ID: 4, Name: "Saigon United", ShortName: "SUN", City: "Saigon", HomeStadium: 2},
		},
		Stadiums: []apitypes.StadiumInput{
			{ID: 1, Name: "North Park", City: "Hanoi", Capacity: 20000, Surface: "natural"},
			{ID: 2, Name: "South Field", City: "Saigon", Capacity: 15000, Surface: "artificial"},
		},
		Distances:  []apitypes.DistanceInput{{CityA: "Hanoi", CityB: "Saigon", Km: 1140}},
		DerbyPairs: []apitypes.DerbyPairInput{{TeamA: 1, TeamB: 3}},
		Regions:    map[string]string{"Hanoi": "North", "Saigon": "South"},
	}
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshaling request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateAndGetLeague(t *testing.T) {
	server := newTestServer(t)
	router := server.GetRouter()

	w := doJSON(t, router, http.MethodPost, "/api/v1/leagues", testCreateLeagueRequest())
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var created apitypes.LeagueResponse
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decoding create response: %v", err)
	}
	if created.TeamCount != 4 {
		t.Errorf("expected 4 teams, got %d", created.TeamCount)
	}
	if created.Rounds != 6 {
		t.Errorf("expected 6 rounds for 4 teams, got %d", created.Rounds)
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/leagues", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 listing leagues, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/leagues/999", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for a missing league, got %d", w.Code)
	}
}

func TestCreateLeagueRejectsInvalidPayload(t *testing.T) {
	server := newTestServer(t)
	router := server.GetRouter()

	req := testCreateLeagueRequest()
	req.Teams = req.Teams[:1] // fewer than the required minimum of 2

	w := doJSON(t, router, http.MethodPost, "/api/v1/leagues", req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for an invalid league payload, got %d: %s", w.Code, w.Body.String())
	}
}

func TestJobLifecycle(t *testing.T) {
	server := newTestServer(t)
	router := server.GetRouter()

	w := doJSON(t, router, http.MethodPost, "/api/v1/leagues", testCreateLeagueRequest())
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating league, got %d", w.Code)
	}
	var league apitypes.LeagueResponse
	if err := json.Unmarshal(w.Body.Bytes(), &league); err != nil {
		t.Fatalf("decoding league: %v", err)
	}

	startReq := apitypes.StartJobRequest{Preset: "quick_test"}
	w = doJSON(t, router, http.MethodPost, "/api/v1/leagues/"+strconv.Itoa(league.ID)+"/jobs", startReq)
	if w.Code != http.StatusAccepted {
		t.Fatalf("expected 202 starting a job, got %d: %s", w.Code, w.Body.String())
	}
	var started apitypes.StartJobResponse
	if err := json.Unmarshal(w.Body.Bytes(), &started); err != nil {
		t.Fatalf("decoding start response: %v", err)
	}
	if started.JobID == "" {
		t.Fatal("expected a non-empty job id")
	}

	var final apitypes.JobResponse
	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		w = doJSON(t, router, http.MethodGet, "/api/v1/jobs/"+started.JobID, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 polling job, got %d", w.Code)
		}
		if err := json.Unmarshal(w.Body.Bytes(), &final); err != nil {
			t.Fatalf("decoding job response: %v", err)
		}
		if final.Status == string(jobrunner.StatusCompleted) || final.Status == string(jobrunner.StatusFailed) {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}
	if final.Status != string(jobrunner.StatusCompleted) {
		t.Fatalf("expected job to complete, last status %q", final.Status)
	}
	if final.Result == nil || len(final.Result.Best.Matches) == 0 {
		t.Fatal("expected a non-empty result schedule")
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/leagues/"+strconv.Itoa(league.ID)+"/jobs", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 listing jobs, got %d", w.Code)
	}
}

func TestCancelUnknownJob(t *testing.T) {
	server := newTestServer(t)
	router := server.GetRouter()

	w := doJSON(t, router, http.MethodPost, "/api/v1/jobs/does-not-exist/cancel", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 cancelling an unknown job, got %d", w.Code)
	}
}
