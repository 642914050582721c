package todoist

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/taskomat/taskomat/internal/domain"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	ts := httptest.NewServer(handler)
	c := NewClient(Config{Token: "test-token", BaseURL: ts.URL})
	return c, ts
}

func TestListProjects(t *testing.T) {
	var gotAuth, gotPath string
	c, ts := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"2203306141","name":"Zakupy"},{"id":"2203306142","name":"Dom"}]`))
	})
	defer ts.Close()

	projects, err := c.ListProjects(context.Background())
	if err != nil {
		t.Fatalf("ListProjects: %v", err)
	}
	if gotAuth != "Bearer test-token" {
		t.Errorf("Authorization = %q, want bearer token", gotAuth)
	}
	if gotPath != "/projects" {
		t.Errorf("path = %q, want /projects", gotPath)
	}
	if len(projects) != 2 {
		t.Fatalf("projects = %d, want 2", len(projects))
	}
	if projects[0].ID != "2203306141" || projects[0].Name != "Zakupy" {
		t.Errorf("projects[0] = %+v", projects[0])
	}
}

func TestCreateProject(t *testing.T) {
	c, ts := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["name"] != "Ogród" {
			t.Errorf("name = %q, want %q", body["name"], "Ogród")
		}
		w.Write([]byte(`{"id":"2203306150","name":"Ogród"}`))
	})
	defer ts.Close()

	p, err := c.CreateProject(context.Background(), "Ogród")
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	if p.ID != "2203306150" || p.Name != "Ogród" {
		t.Errorf("project = %+v", p)
	}
}

func TestCreateTask(t *testing.T) {
	var got taskRequest
	c, ts := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tasks" {
			t.Errorf("path = %q, want /tasks", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{"id":"7001","content":"kup mleko","url":"https://todoist.com/showTask?id=7001"}`))
	})
	defer ts.Close()

	created, err := c.CreateTask(context.Background(), domain.NewTask{
		Content:     "kup mleko",
		Priority:    3,
		DueDatetime: "2026-03-05T00:00:00",
		ProjectID:   "2203306141",
		Labels:      []string{"zakupy"},
	})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	if got.Content != "kup mleko" || got.Priority != 3 {
		t.Errorf("request = %+v", got)
	}
	if got.DueDatetime != "2026-03-05T00:00:00" {
		t.Errorf("due_datetime = %q", got.DueDatetime)
	}
	if got.ProjectID != "2203306141" {
		t.Errorf("project_id = %q", got.ProjectID)
	}
	if created.ID != "7001" || created.URL == "" {
		t.Errorf("created = %+v", created)
	}
}

func TestCreateTask_OmitsEmptyFields(t *testing.T) {
	var raw map[string]interface{}
	c, ts := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&raw)
		w.Write([]byte(`{"id":"7002","content":"zadzwoń do mamy"}`))
	})
	defer ts.Close()

	_, err := c.CreateTask(context.Background(), domain.NewTask{Content: "zadzwoń do mamy", Priority: 1})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	for _, field := range []string{"due_datetime", "project_id", "labels"} {
		if _, ok := raw[field]; ok {
			t.Errorf("request carries %q for a bare task", field)
		}
	}
}

func TestErrorKinds(t *testing.T) {
	c, ts := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":"maintenance"}`))
	})
	defer ts.Close()

	_, err := c.ListProjects(context.Background())
	if err == nil {
		t.Fatal("ListProjects: want error on 503")
	}
	if kind := domain.KindOf(err); kind != domain.KindDirectoryQueryFailed {
		t.Errorf("kind = %q, want %q", kind, domain.KindDirectoryQueryFailed)
	}
	if !strings.Contains(err.Error(), "HTTP 503") || !strings.Contains(err.Error(), "maintenance") {
		t.Errorf("error = %q, want status and body", err)
	}

	_, err = c.CreateTask(context.Background(), domain.NewTask{Content: "x", Priority: 1})
	if err == nil {
		t.Fatal("CreateTask: want error on 503")
	}
	if kind := domain.KindOf(err); kind != domain.KindTaskCreationFailed {
		t.Errorf("kind = %q, want %q", kind, domain.KindTaskCreationFailed)
	}
}

func TestTransportFailure(t *testing.T) {
	c, ts := newTestClient(func(w http.ResponseWriter, r *http.Request) {})
	ts.Close() // refuse connections

	_, err := c.ListProjects(context.Background())
	if err == nil {
		t.Fatal("want error when upstream is unreachable")
	}
	if kind := domain.KindOf(err); kind != domain.KindDirectoryQueryFailed {
		t.Errorf("kind = %q, want %q", kind, domain.KindDirectoryQueryFailed)
	}
}
