package store

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/utsavm/nexus/internal/core/api"
	"github.com/utsavm/nexus/internal/core/models"
)

// BoardAPI is the slice of the backend the board store needs
type BoardAPI interface {
	ListProjects(ctx context.Context) ([]models.Project, error)
	CreateProject(ctx context.Context, name, description, githubRepo string) (*models.Project, error)
	DeleteProject(ctx context.Context, id string) error
	ListTasks(ctx context.Context, projectID string) ([]models.Task, error)
	CreateTask(ctx context.Context, task models.Task) (*models.Task, error)
	UpdateTask(ctx context.Context, id string, update api.TaskUpdate) (*models.Task, error)
	UpdateTaskStatus(ctx context.Context, id string, status models.TaskStatus) error
	DeleteTask(ctx context.Context, id string) error
}

// BoardStore holds projects, the active project selection, and the task
// list for the active project. Lanes are always derived by filtering the
// single task list; there is no per-lane storage to fall out of sync.
type BoardStore struct {
	mu    sync.Mutex
	api   BoardAPI
	queue *Queue
	log   *zap.Logger

	projects        []models.Project
	activeProjectID string
	tasks           []models.Task
}

// NewBoardStore creates an empty board backed by the given API.
// Remote failures are pushed to queue as notifications.
func NewBoardStore(boardAPI BoardAPI, queue *Queue, log *zap.Logger) *BoardStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &BoardStore{api: boardAPI, queue: queue, log: log}
}

func (b *BoardStore) notifyError(title string, err error) {
	b.log.Warn(title, zap.Error(err))
	if b.queue != nil {
		b.queue.Push(models.Notification{
			Level: models.LevelError,
			Title: title,
			Body:  err.Error(),
		})
	}
}

// LoadProjects fetches the project list. When no project is active and
// the list is non-empty, the first project is auto-selected and its
// tasks are loaded. An empty list leaves the selection null.
func (b *BoardStore) LoadProjects(ctx context.Context) error {
	projects, err := b.api.ListProjects(ctx)
	if err != nil {
		b.notifyError("Failed to load projects", err)
		return err
	}

	b.mu.Lock()
	b.projects = projects
	if b.activeProjectID != "" && b.findProjectLocked(b.activeProjectID) < 0 {
		b.activeProjectID = ""
	}
	if b.activeProjectID == "" && len(projects) > 0 {
		b.activeProjectID = projects[0].ID
	}
	active := b.activeProjectID
	b.mu.Unlock()

	if active == "" {
		b.mu.Lock()
		b.tasks = nil
		b.mu.Unlock()
		return nil
	}
	return b.LoadTasks(ctx)
}

// SetActiveProject switches the selection and reloads tasks. The id must
// reference a loaded project.
func (b *BoardStore) SetActiveProject(ctx context.Context, id string) error {
	b.mu.Lock()
	if b.findProjectLocked(id) < 0 {
		b.mu.Unlock()
		return fmt.Errorf("unknown project: %s", id)
	}
	b.activeProjectID = id
	b.mu.Unlock()
	return b.LoadTasks(ctx)
}

// LoadTasks replaces the task list for the active project
func (b *BoardStore) LoadTasks(ctx context.Context) error {
	b.mu.Lock()
	active := b.activeProjectID
	b.mu.Unlock()
	if active == "" {
		return nil
	}

	tasks, err := b.api.ListTasks(ctx, active)
	if err != nil {
		b.notifyError("Failed to load tasks", err)
		return err
	}

	b.mu.Lock()
	// The selection may have moved while the request was in flight
	if b.activeProjectID == active {
		b.tasks = tasks
	}
	b.mu.Unlock()
	return nil
}

// CreateTask is remote-first: the task only appears locally once the
// server returns its authoritative copy. No optimistic insert.
func (b *BoardStore) CreateTask(ctx context.Context, title, description string, priority models.TaskPriority) (*models.Task, error) {
	b.mu.Lock()
	active := b.activeProjectID
	b.mu.Unlock()
	if active == "" {
		return nil, fmt.Errorf("no active project")
	}

	task := models.Task{
		ProjectID:   active,
		Title:       title,
		Description: description,
		Status:      models.StatusTodo,
		Priority:    priority,
	}
	if err := task.Validate(); err != nil {
		return nil, err
	}

	created, err := b.api.CreateTask(ctx, task)
	if err != nil {
		b.notifyError("Failed to create task", err)
		return nil, err
	}

	b.mu.Lock()
	if b.activeProjectID == created.ProjectID {
		b.tasks = append(b.tasks, *created)
	}
	b.mu.Unlock()
	return created, nil
}

// ChangeStatus moves a task between lanes. The local copy is mutated
// immediately; if the remote update fails the mutation is rolled back
// and a warning is raised.
func (b *BoardStore) ChangeStatus(ctx context.Context, taskID string, status models.TaskStatus) error {
	if !status.Valid() {
		return fmt.Errorf("invalid status: %s", status)
	}

	b.mu.Lock()
	idx := b.findTaskLocked(taskID)
	if idx < 0 {
		b.mu.Unlock()
		return fmt.Errorf("unknown task: %s", taskID)
	}
	previous := b.tasks[idx].Status
	b.tasks[idx].Status = status
	b.mu.Unlock()

	if previous == status {
		return nil
	}

	if err := b.api.UpdateTaskStatus(ctx, taskID, status); err != nil {
		b.mu.Lock()
		if idx := b.findTaskLocked(taskID); idx >= 0 {
			b.tasks[idx].Status = previous
		}
		b.mu.Unlock()
		b.log.Warn("task status update failed", zap.String("task", taskID), zap.Error(err))
		if b.queue != nil {
			b.queue.Push(models.Notification{
				Level: models.LevelWarning,
				Title: "Task move reverted",
				Body:  err.Error(),
			})
		}
		return err
	}
	return nil
}

// UpdateTask patches a task remote-first, then reconciles the local copy
// with the server's authoritative entity.
func (b *BoardStore) UpdateTask(ctx context.Context, taskID string, update api.TaskUpdate) error {
	updated, err := b.api.UpdateTask(ctx, taskID, update)
	if err != nil {
		b.notifyError("Failed to update task", err)
		return err
	}

	b.mu.Lock()
	if idx := b.findTaskLocked(taskID); idx >= 0 {
		// Status is owned by ChangeStatus; the update endpoint does not
		// touch it, so keep the local lane.
		status := b.tasks[idx].Status
		b.tasks[idx] = *updated
		if updated.Status == "" {
			b.tasks[idx].Status = status
		}
	}
	b.mu.Unlock()
	return nil
}

// DeleteTask removes a task remote-first, then drops the local copy
func (b *BoardStore) DeleteTask(ctx context.Context, taskID string) error {
	if err := b.api.DeleteTask(ctx, taskID); err != nil {
		b.notifyError("Failed to delete task", err)
		return err
	}

	b.mu.Lock()
	kept := b.tasks[:0]
	for _, t := range b.tasks {
		if t.ID != taskID {
			kept = append(kept, t)
		}
	}
	b.tasks = kept
	b.mu.Unlock()
	return nil
}

// CreateProject creates a project remote-first and appends the server's copy
func (b *BoardStore) CreateProject(ctx context.Context, name, description, githubRepo string) (*models.Project, error) {
	created, err := b.api.CreateProject(ctx, name, description, githubRepo)
	if err != nil {
		b.notifyError("Failed to create project", err)
		return nil, err
	}

	b.mu.Lock()
	b.projects = append(b.projects, *created)
	if b.activeProjectID == "" {
		b.activeProjectID = created.ID
	}
	b.mu.Unlock()
	return created, nil
}

// DeleteProject deletes a project after the user retypes its exact name.
// The confirmation is compared verbatim, without trimming, and checked
// before any network traffic. If the active project was deleted, the
// selection falls back to the first remaining project.
func (b *BoardStore) DeleteProject(ctx context.Context, projectID, confirmName string) error {
	b.mu.Lock()
	idx := b.findProjectLocked(projectID)
	if idx < 0 {
		b.mu.Unlock()
		return fmt.Errorf("unknown project: %s", projectID)
	}
	name := b.projects[idx].Name
	b.mu.Unlock()

	if confirmName != name {
		return fmt.Errorf("confirmation does not match project name")
	}

	if err := b.api.DeleteProject(ctx, projectID); err != nil {
		b.notifyError("Failed to delete project", err)
		return err
	}

	b.mu.Lock()
	kept := b.projects[:0]
	for _, p := range b.projects {
		if p.ID != projectID {
			kept = append(kept, p)
		}
	}
	b.projects = kept
	wasActive := b.activeProjectID == projectID
	if wasActive {
		b.activeProjectID = ""
		b.tasks = nil
		if len(b.projects) > 0 {
			b.activeProjectID = b.projects[0].ID
		}
	}
	active := b.activeProjectID
	b.mu.Unlock()

	if wasActive && active != "" {
		return b.LoadTasks(ctx)
	}
	return nil
}

func (b *BoardStore) findProjectLocked(id string) int {
	for i := range b.projects {
		if b.projects[i].ID == id {
			return i
		}
	}
	return -1
}

func (b *BoardStore) findTaskLocked(id string) int {
	for i := range b.tasks {
		if b.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// Projects returns a snapshot of the loaded projects
func (b *BoardStore) Projects() []models.Project {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]models.Project, len(b.projects))
	copy(out, b.projects)
	return out
}

// ActiveProjectID returns the current selection, or "" when none
func (b *BoardStore) ActiveProjectID() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.activeProjectID
}

// ActiveProject returns the selected project, if any
func (b *BoardStore) ActiveProject() (models.Project, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if idx := b.findProjectLocked(b.activeProjectID); idx >= 0 {
		return b.projects[idx], true
	}
	return models.Project{}, false
}

// Tasks returns a snapshot of the full task list
func (b *BoardStore) Tasks() []models.Task {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]models.Task, len(b.tasks))
	copy(out, b.tasks)
	return out
}

// TasksByStatus filters the task list into one lane
func (b *BoardStore) TasksByStatus(status models.TaskStatus) []models.Task {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []models.Task
	for _, t := range b.tasks {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out
}
