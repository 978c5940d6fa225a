package planbordsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client is a minimal Planbord HTTP API client.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// New creates a client with sane defaults. baseURL includes the API base
// path, e.g. "http://localhost:8080/api/v1".
func New(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		Timeout: 10 * time.Second,
	}
}

// Task represents the API task model (partial).
type Task struct {
	ID         string   `json:"id"`
	ProjectID  string   `json:"project_id"`
	Title      string   `json:"title"`
	Status     string   `json:"status"`
	StartDate  string   `json:"start_date,omitempty"`
	EndDate    string   `json:"end_date,omitempty"`
	AssignedTo []string `json:"assigned_to,omitempty"`
	DependsOn  []string `json:"depends_on,omitempty"`
}

// Project represents the API project model (partial).
type Project struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	Status     string `json:"status"`
	ClientID   string `json:"client_id,omitempty"`
	ClientName string `json:"client_name,omitempty"`
	Deadline   string `json:"deadline,omitempty"`
	Tasks      []Task `json:"tasks"`
}

// Reservation represents a resource booking.
type Reservation struct {
	ID         string `json:"id"`
	ResourceID string `json:"resource_id"`
	TaskID     string `json:"task_id,omitempty"`
	Date       string `json:"date"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
}

// ReservationResult is the create-reservation response. Conflict set means
// the booking overlaps the listed reservations; under the server's warn
// policy it was created anyway.
type ReservationResult struct {
	Reservation Reservation   `json:"reservation"`
	Conflict    bool          `json:"conflict"`
	Overlaps    []Reservation `json:"overlaps,omitempty"`
}

// TaskView is a task hit from the calendar and task list queries.
type TaskView struct {
	Task
	ProjectName string `json:"project_name"`
	ProjectType string `json:"project_type"`
}

// SearchResult is one hit from the global search.
type SearchResult struct {
	Kind  string `json:"kind"`
	ID    string `json:"id"`
	Title string `json:"title"`
	Extra string `json:"extra,omitempty"`
}

// Event represents a journal entry.
type Event struct {
	Seq        int64          `json:"seq"`
	TS         string         `json:"ts"`
	Type       string         `json:"type"`
	EntityKind string         `json:"entity_kind"`
	EntityID   string         `json:"entity_id"`
	Payload    map[string]any `json:"payload,omitempty"`
}

// APIError wraps non-2xx responses using the server's error envelope.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status=%d code=%s message=%s", e.StatusCode, e.Code, e.Message)
}

// CreateProject creates a project; its type's templates become tasks.
func (c *Client) CreateProject(ctx context.Context, name, projectType string) (Project, error) {
	body := map[string]any{
		"name": name,
		"type": projectType,
	}
	var resp Project
	err := c.do(ctx, http.MethodPost, "projects", body, &resp)
	return resp, err
}

// GetProject fetches a project with its tasks.
func (c *Client) GetProject(ctx context.Context, id string) (Project, error) {
	var resp Project
	err := c.do(ctx, http.MethodGet, "projects/"+url.PathEscape(id), nil, &resp)
	return resp, err
}

// MoveTask reschedules a task to the given date range.
func (c *Client) MoveTask(ctx context.Context, projectID, taskID, startDate, endDate string) (Task, error) {
	body := map[string]any{
		"start_date": startDate,
		"end_date":   endDate,
	}
	var resp Task
	endpoint := fmt.Sprintf("projects/%s/tasks/%s/move", url.PathEscape(projectID), url.PathEscape(taskID))
	err := c.do(ctx, http.MethodPost, endpoint, body, &resp)
	return resp, err
}

// AssignTask replaces the task's assignee list.
func (c *Client) AssignTask(ctx context.Context, projectID, taskID string, userIDs []string) (Task, error) {
	body := map[string]any{"user_ids": userIDs}
	var resp Task
	endpoint := fmt.Sprintf("projects/%s/tasks/%s/assign", url.PathEscape(projectID), url.PathEscape(taskID))
	err := c.do(ctx, http.MethodPost, endpoint, body, &resp)
	return resp, err
}

// AddReservation books a resource for a date and time range.
func (c *Client) AddReservation(ctx context.Context, resourceID, taskID, date, startTime, endTime string) (ReservationResult, error) {
	body := map[string]any{
		"resource_id": resourceID,
		"task_id":     taskID,
		"date":        date,
		"start_time":  startTime,
		"end_time":    endTime,
	}
	var resp ReservationResult
	err := c.do(ctx, http.MethodPost, "reservations", body, &resp)
	return resp, err
}

// Calendar returns the tasks running on a day.
func (c *Client) Calendar(ctx context.Context, date string) ([]TaskView, error) {
	var resp []TaskView
	err := c.do(ctx, http.MethodGet, "calendar/"+url.PathEscape(date), nil, &resp)
	return resp, err
}

// Unscheduled returns tasks still waiting for a date.
func (c *Client) Unscheduled(ctx context.Context) ([]TaskView, error) {
	var resp []TaskView
	err := c.do(ctx, http.MethodGet, "tasks/unscheduled", nil, &resp)
	return resp, err
}

// Search runs the global substring search.
func (c *Client) Search(ctx context.Context, q string) ([]SearchResult, error) {
	var resp []SearchResult
	err := c.do(ctx, http.MethodGet, "search?q="+url.QueryEscape(q), nil, &resp)
	return resp, err
}

// Events returns recent journal entries, oldest first.
func (c *Client) Events(ctx context.Context, limit int) ([]Event, error) {
	endpoint := "events"
	if limit > 0 {
		endpoint = fmt.Sprintf("events?limit=%d", limit)
	}
	var resp []Event
	err := c.do(ctx, http.MethodGet, endpoint, nil, &resp)
	return resp, err
}

func (c *Client) do(ctx context.Context, method, endpoint string, body any, out any) error {
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: c.Timeout}
	}
	url := c.base() + "/" + strings.TrimLeft(endpoint, "/")
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, url, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		var envelope struct {
			Error struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if json.Unmarshal(b, &envelope) == nil && envelope.Error.Code != "" {
			apiErr.Code = envelope.Error.Code
			apiErr.Message = envelope.Error.Message
		} else {
			apiErr.Message = string(b)
		}
		return apiErr
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func (c *Client) base() string {
	return strings.TrimRight(c.BaseURL, "/")
}
