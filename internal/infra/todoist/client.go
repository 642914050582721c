// Package todoist implements the project directory and task creation
// collaborators over the Todoist REST v2 API.
package todoist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/taskomat/taskomat/internal/domain"
)

// DefaultBaseURL is the production Todoist REST endpoint.
const DefaultBaseURL = "https://api.todoist.com/rest/v2"

// Config carries everything the client needs for external calls. The token
// is injected here at startup; business logic never reads ambient state.
type Config struct {
	Token   string
	BaseURL string        // empty = DefaultBaseURL; tests point this at httptest
	Timeout time.Duration // empty = 15s
}

// Client talks to the Todoist REST API. It implements
// domain.ProjectDirectory and domain.TaskCreator.
type Client struct {
	token   string
	baseURL string
	http    *http.Client
}

// NewClient builds a client from the injected configuration.
func NewClient(cfg Config) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		token:   cfg.Token,
		baseURL: base,
		http:    &http.Client{Timeout: timeout},
	}
}

// ─── Project directory ──────────────────────────────────────────────────────

type projectPayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ListProjects returns every project known upstream.
func (c *Client) ListProjects(ctx context.Context) ([]domain.Project, error) {
	var payload []projectPayload
	if err := c.do(ctx, http.MethodGet, "/projects", nil, &payload, domain.KindDirectoryQueryFailed); err != nil {
		return nil, err
	}

	projects := make([]domain.Project, 0, len(payload))
	for _, p := range payload {
		projects = append(projects, domain.Project{ID: p.ID, Name: p.Name})
	}
	return projects, nil
}

// CreateProject registers a new project and returns it with its assigned id.
func (c *Client) CreateProject(ctx context.Context, name string) (domain.Project, error) {
	var payload projectPayload
	body := map[string]string{"name": name}
	if err := c.do(ctx, http.MethodPost, "/projects", body, &payload, domain.KindDirectoryQueryFailed); err != nil {
		return domain.Project{}, err
	}
	return domain.Project{ID: payload.ID, Name: payload.Name}, nil
}

// ─── Task creation ──────────────────────────────────────────────────────────

type taskRequest struct {
	Content     string   `json:"content"`
	Priority    int      `json:"priority"`
	DueDatetime string   `json:"due_datetime,omitempty"`
	ProjectID   string   `json:"project_id,omitempty"`
	Labels      []string `json:"labels,omitempty"`
}

type taskResponse struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	URL     string `json:"url"`
}

// CreateTask submits one task. Non-2xx responses come back as a kinded error
// carrying the response body as diagnostic.
func (c *Client) CreateTask(ctx context.Context, task domain.NewTask) (domain.CreatedTask, error) {
	req := taskRequest{
		Content:     task.Content,
		Priority:    task.Priority,
		DueDatetime: task.DueDatetime,
		ProjectID:   task.ProjectID,
		Labels:      task.Labels,
	}

	var resp taskResponse
	if err := c.do(ctx, http.MethodPost, "/tasks", req, &resp, domain.KindTaskCreationFailed); err != nil {
		return domain.CreatedTask{}, err
	}
	return domain.CreatedTask{ID: resp.ID, Content: resp.Content, URL: resp.URL}, nil
}

// ─── Transport ──────────────────────────────────────────────────────────────

// do issues one request and decodes a 2xx JSON response into out. Transport
// failures and non-2xx statuses are wrapped with the caller's taxonomy kind.
func (c *Client) do(ctx context.Context, method, path string, payload, out interface{}, kind domain.ErrorKind) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return domain.NewPipelineError(kind, "encode request: "+err.Error())
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return domain.NewPipelineError(kind, "create request: "+err.Error())
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.NewPipelineError(kind, err.Error())
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.NewPipelineError(kind, fmt.Sprintf("HTTP %d: %s", resp.StatusCode, bytes.TrimSpace(raw)))
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return domain.NewPipelineError(kind, "decode response: "+err.Error())
		}
	}
	return nil
}
