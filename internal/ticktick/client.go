// Package ticktick is a minimal client for the TickTick Open API v1,
// covering the endpoints the duplication engine needs.
//
// Token acquisition and refresh are out of scope; the client is handed an
// already-valid OAuth access token.
package ticktick

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	"github.com/hay-kot/recur/internal/core/task"
)

// DefaultBaseURL is the production Open API endpoint.
const DefaultBaseURL = "https://api.ticktick.com/open/v1"

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "recur-task-duplicator"

	// statusCompleted is the wire value for a completed task.
	statusCompleted = 2
)

// Client talks to the TickTick Open API with a Bearer token.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint, used by tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// New creates a Client authenticating with the given access token.
func New(accessToken string, opts ...Option) *Client {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})

	c := &Client{
		baseURL: DefaultBaseURL,
		http:    oauth2.NewClient(context.Background(), src),
	}
	c.http.Timeout = defaultTimeout

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// taskDTO mirrors the Open API task object.
type taskDTO struct {
	ID            string    `json:"id"`
	ProjectID     string    `json:"projectId"`
	Title         string    `json:"title"`
	Content       string    `json:"content,omitempty"`
	Desc          string    `json:"desc,omitempty"`
	Priority      int       `json:"priority"`
	Status        int       `json:"status"`
	Tags          []string  `json:"tags,omitempty"`
	Items         []itemDTO `json:"items,omitempty"`
	DueDate       *wireTime `json:"dueDate,omitempty"`
	StartDate     *wireTime `json:"startDate,omitempty"`
	CompletedTime *wireTime `json:"completedTime,omitempty"`
}

// itemDTO mirrors a checklist item. Status 0 is unchecked, 1 checked.
type itemDTO struct {
	ID     string `json:"id,omitempty"`
	Title  string `json:"title"`
	Status int    `json:"status"`
}

// createDTO is the POST /task request body.
type createDTO struct {
	Title     string    `json:"title"`
	ProjectID string    `json:"projectId"`
	Content   string    `json:"content,omitempty"`
	Desc      string    `json:"desc,omitempty"`
	Priority  int       `json:"priority"`
	Tags      []string  `json:"tags,omitempty"`
	Items     []itemDTO `json:"items,omitempty"`
}

// Project is a TickTick project (list).
type Project struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (d taskDTO) toTask() task.Task {
	t := task.Task{
		ID:        d.ID,
		Title:     d.Title,
		Content:   d.Content,
		Desc:      d.Desc,
		ProjectID: d.ProjectID,
		Priority:  d.Priority,
		Tags:      d.Tags,
	}

	for _, item := range d.Items {
		t.Checklist = append(t.Checklist, task.ChecklistItem{
			Title:     item.Title,
			Completed: item.Status != 0,
		})
	}

	if d.CompletedTime != nil && !d.CompletedTime.IsZero() {
		done := d.CompletedTime.Time
		t.CompletedAt = &done
	}
	if d.DueDate != nil && !d.DueDate.IsZero() {
		due := d.DueDate.Time
		t.DueDate = &due
	}

	return t
}

// CompletedTasks returns tasks completed at or after since. The endpoint
// has no reliable server-side cutoff, so the client filters the response.
func (c *Client) CompletedTasks(ctx context.Context, since time.Time) ([]task.Task, error) {
	q := url.Values{}
	if !since.IsZero() {
		q.Set("from", since.UTC().Format(wireTimeLayout))
	}

	var dtos []taskDTO
	if err := c.do(ctx, http.MethodGet, "/task/completed", q, nil, &dtos); err != nil {
		return nil, fmt.Errorf("fetch completed tasks: %w", err)
	}

	tasks := make([]task.Task, 0, len(dtos))
	for _, dto := range dtos {
		if dto.Status != statusCompleted {
			continue
		}
		t := dto.toTask()
		if !t.Completed() || t.CompletedAt.Before(since) {
			continue
		}
		tasks = append(tasks, t)
	}

	return tasks, nil
}

// CreateTask creates a new task from the duplicate payload. On success the
// remote task exists and carries a server-assigned id; anything else is an
// error and nothing is assumed to have been created.
func (c *Client) CreateTask(ctx context.Context, dup task.Duplicate) (task.Task, error) {
	body := createDTO{
		Title:     dup.Title,
		ProjectID: dup.ProjectID,
		Content:   dup.Content,
		Desc:      dup.Desc,
		Priority:  dup.Priority,
		Tags:      dup.Tags,
	}
	for _, item := range dup.Checklist {
		status := 0
		if item.Completed {
			status = 1
		}
		body.Items = append(body.Items, itemDTO{Title: item.Title, Status: status})
	}

	var created taskDTO
	if err := c.do(ctx, http.MethodPost, "/task", nil, body, &created); err != nil {
		return task.Task{}, fmt.Errorf("create task: %w", err)
	}

	if created.ID == "" {
		return task.Task{}, fmt.Errorf("create task: response missing task id")
	}

	return created.toTask(), nil
}

// Projects returns all projects (lists) visible to the token.
func (c *Client) Projects(ctx context.Context) ([]Project, error) {
	var projects []Project
	if err := c.do(ctx, http.MethodGet, "/project", nil, nil, &projects); err != nil {
		return nil, fmt.Errorf("fetch projects: %w", err)
	}
	return projects, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, dest any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Debug().Err(err).Msg("close response body")
		}
	}()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: status %d", ErrAuth, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return &APIError{StatusCode: resp.StatusCode, Body: readBodySnippet(resp.Body)}
	}

	if dest == nil {
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// readBodySnippet captures a bounded amount of an error response body for
// diagnostics.
func readBodySnippet(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 512))
	if err != nil {
		return ""
	}
	return string(bytes.TrimSpace(data))
}
