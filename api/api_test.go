// ABOUTME: Tests for the typed endpoint services
// ABOUTME: Verifies paths, verbs and query params hit the wire as expected

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/caretrack/caretrack-go/client"
)

func newTestClient(baseURL string) *client.Client {
	return client.New(baseURL)
}

type recordedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Body   map[string]any
}

// newRecordingServer serves a success envelope for every request and records
// everything except the CSRF token fetch.
func newRecordingServer(t *testing.T, data string) (*httptest.Server, *[]recordedRequest) {
	t.Helper()
	var recorded []recordedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/api/csrf-token" {
			w.Write([]byte(`{"success":true,"data":{"csrfToken":"tok"}}`))
			return
		}
		var body map[string]any
		if r.Body != nil {
			json.NewDecoder(r.Body).Decode(&body)
		}
		recorded = append(recorded, recordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Body:   body,
		})
		w.Write([]byte(`{"success":true,"data":` + data + `}`))
	}))
	t.Cleanup(srv.Close)
	return srv, &recorded
}

func TestListCarersSendsFilters(t *testing.T) {
	srv, recorded := newRecordingServer(t, `[]`)
	a := New(newTestClient(srv.URL))

	active := true
	_, err := a.Carers.List(context.Background(), ListCarersOptions{Active: &active, Search: "smith"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	req := (*recorded)[0]
	if req.Method != http.MethodGet || req.Path != "/api/carers" {
		t.Errorf("got %s %s, want GET /api/carers", req.Method, req.Path)
	}
	if req.Query.Get("active") != "true" {
		t.Errorf("active = %q, want true", req.Query.Get("active"))
	}
	if req.Query.Get("search") != "smith" {
		t.Errorf("search = %q, want smith", req.Query.Get("search"))
	}
}

func TestCompleteTaskPostsToCompletePath(t *testing.T) {
	srv, recorded := newRecordingServer(t, `{"id":"t1","title":"Meds","status":"completed"}`)
	a := New(newTestClient(srv.URL))

	task, err := a.Tasks.Complete(context.Background(), "t1")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if task.ID != "t1" || task.Status != "completed" {
		t.Errorf("unexpected task %+v", task)
	}

	req := (*recorded)[0]
	if req.Method != http.MethodPost || req.Path != "/api/tasks/t1/complete" {
		t.Errorf("got %s %s, want POST /api/tasks/t1/complete", req.Method, req.Path)
	}
}

func TestAssignShiftSendsCarerID(t *testing.T) {
	srv, recorded := newRecordingServer(t, `{"id":"s1","carer_id":"c9","assigned":true}`)
	a := New(newTestClient(srv.URL))

	shift, err := a.Shifts.Assign(context.Background(), "s1", "c9")
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if !shift.Assigned || shift.CarerID != "c9" {
		t.Errorf("unexpected shift %+v", shift)
	}

	req := (*recorded)[0]
	if req.Method != http.MethodPost || req.Path != "/api/shifts/s1/assign" {
		t.Errorf("got %s %s, want POST /api/shifts/s1/assign", req.Method, req.Path)
	}
	if req.Body["carer_id"] != "c9" {
		t.Errorf("body carer_id = %v, want c9", req.Body["carer_id"])
	}
}

func TestRecycleBinRestoreAndPurge(t *testing.T) {
	srv, recorded := newRecordingServer(t, `null`)
	a := New(newTestClient(srv.URL))

	if err := a.RecycleBin.Restore(context.Background(), "r1"); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if err := a.RecycleBin.Purge(context.Background(), "r1"); err != nil {
		t.Fatalf("Purge: %v", err)
	}

	got := *recorded
	if len(got) != 2 {
		t.Fatalf("recorded %d requests, want 2", len(got))
	}
	if got[0].Method != http.MethodPost || got[0].Path != "/api/recycle-bin/r1/restore" {
		t.Errorf("got %s %s, want POST /api/recycle-bin/r1/restore", got[0].Method, got[0].Path)
	}
	if got[1].Method != http.MethodDelete || got[1].Path != "/api/recycle-bin/r1" {
		t.Errorf("got %s %s, want DELETE /api/recycle-bin/r1", got[1].Method, got[1].Path)
	}
}

func TestUpdateUserPatches(t *testing.T) {
	srv, recorded := newRecordingServer(t, `{"id":"u1","name":"New Name","role":"admin"}`)
	a := New(newTestClient(srv.URL))

	user, err := a.Users.Update(context.Background(), "u1", UserInput{Name: "New Name"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if user.Name != "New Name" {
		t.Errorf("name = %q, want New Name", user.Name)
	}

	req := (*recorded)[0]
	if req.Method != http.MethodPatch || req.Path != "/api/users/u1" {
		t.Errorf("got %s %s, want PATCH /api/users/u1", req.Method, req.Path)
	}
}
