package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"planbord/internal/config"
	"planbord/internal/domain"
	"planbord/internal/engine"
	"planbord/internal/seed"
	"planbord/internal/store"
)

type testServer struct {
	URL    string
	Engine engine.Engine
	client *http.Client
	close  func()
}

func (s *testServer) Client() *http.Client { return s.client }

func newTestServer(t *testing.T, cfg *config.Config) *testServer {
	t.Helper()
	if cfg == nil {
		cfg = config.Default()
	}
	st := store.New()
	for _, c := range seed.DefaultTypeConfigs() {
		st.PutTypeConfig(c)
	}
	e := engine.New(st, cfg)
	e.Now = func() time.Time { return time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC) }

	handler, err := New(Config{Engine: e, BasePath: "/api/v1"})
	if err != nil {
		t.Fatalf("build handler: %v", err)
	}
	ln, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	srv := &http.Server{Handler: handler}
	go srv.Serve(ln)

	out := &testServer{
		URL:    "http://" + ln.Addr().String(),
		Engine: e,
		client: &http.Client{},
		close: func() {
			srv.Shutdown(context.Background())
			ln.Close()
		},
	}
	t.Cleanup(out.close)
	return out
}

func doJSON(t *testing.T, client *http.Client, method, url string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	res, err := client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()
	data, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return res, data
}

func TestProjectLifecycle(t *testing.T) {
	srv := newTestServer(t, nil)
	client := srv.Client()

	res, data := doJSON(t, client, http.MethodPost, srv.URL+"/api/v1/projects", map[string]any{
		"name": "Paint job for VRT",
		"type": "paint",
	})
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("create project: %d %s", res.StatusCode, string(data))
	}
	var created domain.Project
	if err := json.Unmarshal(data, &created); err != nil {
		t.Fatalf("unmarshal project: %v", err)
	}
	if len(created.Tasks) != 7 {
		t.Fatalf("paint project has %d tasks, want 7", len(created.Tasks))
	}

	res, data = doJSON(t, client, http.MethodPatch, srv.URL+"/api/v1/projects/"+created.ID, map[string]any{
		"status": "active",
	})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("update project: %d %s", res.StatusCode, string(data))
	}
	var updated domain.Project
	_ = json.Unmarshal(data, &updated)
	if updated.Status != domain.ProjectStatusActive {
		t.Fatalf("status = %q", updated.Status)
	}

	res, data = doJSON(t, client, http.MethodDelete, srv.URL+"/api/v1/projects/"+created.ID, nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("delete project: %d %s", res.StatusCode, string(data))
	}
	res, data = doJSON(t, client, http.MethodGet, srv.URL+"/api/v1/projects/"+created.ID, nil)
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("get deleted project: %d %s", res.StatusCode, string(data))
	}
}

func TestMoveAndAssignTask(t *testing.T) {
	srv := newTestServer(t, nil)
	client := srv.Client()

	_, data := doJSON(t, client, http.MethodPost, srv.URL+"/api/v1/projects", map[string]any{
		"name": "Bpost repair",
		"type": "repair",
	})
	var p domain.Project
	_ = json.Unmarshal(data, &p)
	task := p.Tasks[0]

	res, data := doJSON(t, client, http.MethodPost,
		srv.URL+"/api/v1/projects/"+p.ID+"/tasks/"+task.ID+"/move", map[string]any{
			"start_date": "2025-07-02",
			"end_date":   "2025-07-03",
		})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("move: %d %s", res.StatusCode, string(data))
	}
	var moved domain.Task
	_ = json.Unmarshal(data, &moved)
	if moved.StartDate != "2025-07-02" || moved.Status != domain.TaskStatusScheduled {
		t.Fatalf("moved = %+v", moved)
	}

	res, data = doJSON(t, client, http.MethodPost,
		srv.URL+"/api/v1/projects/"+p.ID+"/tasks/"+task.ID+"/assign", map[string]any{
			"user_ids": []string{"u1", "u2"},
		})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("assign: %d %s", res.StatusCode, string(data))
	}
	var assigned domain.Task
	_ = json.Unmarshal(data, &assigned)
	if len(assigned.AssignedTo) != 2 {
		t.Fatalf("assigned = %v", assigned.AssignedTo)
	}

	// Inverted range is a client error, reported in the envelope.
	res, data = doJSON(t, client, http.MethodPost,
		srv.URL+"/api/v1/projects/"+p.ID+"/tasks/"+task.ID+"/move", map[string]any{
			"start_date": "2025-07-09",
			"end_date":   "2025-07-02",
		})
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("inverted move: %d %s", res.StatusCode, string(data))
	}
}

func TestReservationConflictFlag(t *testing.T) {
	srv := newTestServer(t, nil)
	client := srv.Client()

	booth, err := srv.Engine.CreateResource(engine.ResourceOptions{Name: "Paint booth 1", Type: domain.ResourcePaintBooth, Capacity: 1})
	if err != nil {
		t.Fatal(err)
	}

	res, data := doJSON(t, client, http.MethodPost, srv.URL+"/api/v1/reservations", map[string]any{
		"resource_id": booth.ID,
		"date":        "2025-07-01",
		"start_time":  "08:00",
		"end_time":    "12:00",
	})
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("first reservation: %d %s", res.StatusCode, string(data))
	}
	var first ReservationResponse
	_ = json.Unmarshal(data, &first)
	if first.Conflict {
		t.Fatalf("first reservation flagged: %s", string(data))
	}

	res, data = doJSON(t, client, http.MethodPost, srv.URL+"/api/v1/reservations", map[string]any{
		"resource_id": booth.ID,
		"date":        "2025-07-01",
		"start_time":  "10:00",
		"end_time":    "11:00",
	})
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("second reservation: %d %s", res.StatusCode, string(data))
	}
	var second ReservationResponse
	_ = json.Unmarshal(data, &second)
	if !second.Conflict || len(second.Overlaps) != 1 {
		t.Fatalf("conflict not reported: %s", string(data))
	}

	res, data = doJSON(t, client, http.MethodGet, srv.URL+"/api/v1/reservations?date=2025-07-01", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("list: %d %s", res.StatusCode, string(data))
	}
	var listed []domain.ResourceReservation
	_ = json.Unmarshal(data, &listed)
	if len(listed) != 2 {
		t.Fatalf("listed %d reservations, want 2", len(listed))
	}
}

func TestReservationRejectPolicy(t *testing.T) {
	cfg := config.Default()
	cfg.Reservations.ConflictPolicy = config.ConflictReject
	srv := newTestServer(t, cfg)
	client := srv.Client()

	booth, err := srv.Engine.CreateResource(engine.ResourceOptions{Name: "Paint booth 1", Type: domain.ResourcePaintBooth, Capacity: 1})
	if err != nil {
		t.Fatal(err)
	}

	res, data := doJSON(t, client, http.MethodPost, srv.URL+"/api/v1/reservations", map[string]any{
		"resource_id": booth.ID,
		"date":        "2025-07-01",
		"start_time":  "08:00",
		"end_time":    "12:00",
	})
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("first reservation: %d %s", res.StatusCode, string(data))
	}
	res, data = doJSON(t, client, http.MethodPost, srv.URL+"/api/v1/reservations", map[string]any{
		"resource_id": booth.ID,
		"date":        "2025-07-01",
		"start_time":  "10:00",
		"end_time":    "11:00",
	})
	if res.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d %s", res.StatusCode, string(data))
	}
	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	if envelope.Error.Code != "reservation_conflict" {
		t.Fatalf("code = %q: %s", envelope.Error.Code, string(data))
	}
}

func TestNotFoundEnvelope(t *testing.T) {
	srv := newTestServer(t, nil)
	res, data := doJSON(t, srv.Client(), http.MethodGet, srv.URL+"/api/v1/projects/nope", nil)
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d %s", res.StatusCode, string(data))
	}
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	if envelope.Error.Code != "not_found" {
		t.Fatalf("code = %q: %s", envelope.Error.Code, string(data))
	}
}

func TestInvalidProjectTypeIsBadRequest(t *testing.T) {
	srv := newTestServer(t, nil)
	res, data := doJSON(t, srv.Client(), http.MethodPost, srv.URL+"/api/v1/projects", map[string]any{
		"name": "x",
		"type": "welding",
	})
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d %s", res.StatusCode, string(data))
	}
}

func TestSearchAndCalendarQueries(t *testing.T) {
	srv := newTestServer(t, nil)
	client := srv.Client()

	_, data := doJSON(t, client, http.MethodPost, srv.URL+"/api/v1/projects", map[string]any{
		"name": "Ambulance fit-out",
		"type": "medical",
	})
	var p domain.Project
	_ = json.Unmarshal(data, &p)
	if _, err := srv.Engine.MoveTask(p.ID, p.Tasks[0].ID, "2025-07-02", "2025-07-02"); err != nil {
		t.Fatal(err)
	}

	res, data := doJSON(t, client, http.MethodGet, srv.URL+"/api/v1/search?q=ambulance", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("search: %d %s", res.StatusCode, string(data))
	}
	var hits []map[string]any
	_ = json.Unmarshal(data, &hits)
	if len(hits) == 0 || hits[0]["kind"] != "project" {
		t.Fatalf("hits = %s", string(data))
	}

	res, data = doJSON(t, client, http.MethodGet, srv.URL+"/api/v1/calendar/2025-07-02", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("calendar: %d %s", res.StatusCode, string(data))
	}
	var day []map[string]any
	_ = json.Unmarshal(data, &day)
	if len(day) != 1 {
		t.Fatalf("calendar day = %s", string(data))
	}

	res, data = doJSON(t, client, http.MethodGet, srv.URL+"/api/v1/tasks/unscheduled", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("unscheduled: %d %s", res.StatusCode, string(data))
	}
	var unscheduled []map[string]any
	_ = json.Unmarshal(data, &unscheduled)
	if len(unscheduled) != len(p.Tasks)-1 {
		t.Fatalf("unscheduled = %d, want %d", len(unscheduled), len(p.Tasks)-1)
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, nil)
	res, data := doJSON(t, srv.Client(), http.MethodGet, srv.URL+"/api/v1/health", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("health: %d %s", res.StatusCode, string(data))
	}
}
