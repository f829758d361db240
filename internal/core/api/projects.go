package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/utsavm/nexus/internal/core/models"
)

// projectPayload tolerates the backend naming the identifier either "id"
// or "_id" depending on the endpoint. normalize picks one.
type projectPayload struct {
	ID          string `json:"id"`
	AltID       string `json:"_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	GithubRepo  string `json:"github_repo"`
	Status      string `json:"status"`
}

func (p projectPayload) normalize() models.Project {
	id := p.ID
	if id == "" {
		id = p.AltID
	}
	return models.Project{
		ID:          id,
		Name:        p.Name,
		Description: p.Description,
		GithubRepo:  p.GithubRepo,
		Status:      p.Status,
	}
}

type projectCreate struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	GithubRepo  string `json:"github_repo"`
}

// ListProjects returns all active projects
func (c *Client) ListProjects(ctx context.Context) ([]models.Project, error) {
	var payload []projectPayload
	if err := c.get(ctx, "/projects", &payload); err != nil {
		return nil, err
	}
	projects := make([]models.Project, 0, len(payload))
	for _, p := range payload {
		projects = append(projects, p.normalize())
	}
	return projects, nil
}

// CreateProject creates a project and returns the server's authoritative copy
func (c *Client) CreateProject(ctx context.Context, name, description, githubRepo string) (*models.Project, error) {
	var payload projectPayload
	req := projectCreate{Name: name, Description: description, GithubRepo: githubRepo}
	if err := c.post(ctx, "/projects", req, &payload); err != nil {
		return nil, err
	}
	project := payload.normalize()
	return &project, nil
}

// DeleteProject deletes a project by id
func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.delete(ctx, "/projects/"+escape(id))
}

// taskPayload mirrors projectPayload's dual-id tolerance
type taskPayload struct {
	ID          string `json:"id"`
	AltID       string `json:"_id"`
	ProjectID   string `json:"project_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
}

func (t taskPayload) normalize() models.Task {
	id := t.ID
	if id == "" {
		id = t.AltID
	}
	return models.Task{
		ID:          id,
		ProjectID:   t.ProjectID,
		Title:       t.Title,
		Description: t.Description,
		Status:      models.TaskStatus(t.Status),
		Priority:    models.TaskPriority(t.Priority),
	}
}

type taskCreate struct {
	ProjectID   string `json:"project_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

// TaskUpdate carries the mutable task fields; nil means leave unchanged
type TaskUpdate struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Priority    *string `json:"priority,omitempty"`
}

// ListTasks returns all tasks for a project
func (c *Client) ListTasks(ctx context.Context, projectID string) ([]models.Task, error) {
	var payload []taskPayload
	if err := c.get(ctx, "/tasks/"+escape(projectID), &payload); err != nil {
		return nil, err
	}
	tasks := make([]models.Task, 0, len(payload))
	for _, t := range payload {
		tasks = append(tasks, t.normalize())
	}
	return tasks, nil
}

// CreateTask creates a task and returns the server's authoritative copy
func (c *Client) CreateTask(ctx context.Context, task models.Task) (*models.Task, error) {
	var payload taskPayload
	req := taskCreate{
		ProjectID:   task.ProjectID,
		Title:       task.Title,
		Description: task.Description,
		Priority:    string(task.Priority),
	}
	if err := c.post(ctx, "/tasks", req, &payload); err != nil {
		return nil, err
	}
	created := payload.normalize()
	return &created, nil
}

// UpdateTask patches task fields and returns the server's copy
func (c *Client) UpdateTask(ctx context.Context, id string, update TaskUpdate) (*models.Task, error) {
	var payload taskPayload
	if err := c.patch(ctx, "/tasks/"+escape(id), update, &payload); err != nil {
		return nil, err
	}
	updated := payload.normalize()
	return &updated, nil
}

// UpdateTaskStatus moves a task to a new lane
func (c *Client) UpdateTaskStatus(ctx context.Context, id string, status models.TaskStatus) error {
	path := fmt.Sprintf("/tasks/%s/status?status=%s", escape(id), escape(string(status)))
	return c.do(ctx, http.MethodPatch, path, nil, nil)
}

// DeleteTask deletes a task by id
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.delete(ctx, "/tasks/"+escape(id))
}
