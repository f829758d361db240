package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/utsavm/nexus/internal/core/api"
	"github.com/utsavm/nexus/internal/core/models"
)

type fakeBoardAPI struct {
	mu       sync.Mutex
	projects []models.Project
	tasks    map[string][]models.Task // projectID -> tasks

	failStatus  bool
	failCreate  bool
	blockStatus chan struct{} // if non-nil, UpdateTaskStatus waits until closed

	deletedProjects []string
	deletedTasks    []string
	statusCalls     int
	nextID          int
}

func newFakeBoardAPI() *fakeBoardAPI {
	return &fakeBoardAPI{tasks: make(map[string][]models.Task)}
}

func (f *fakeBoardAPI) ListProjects(ctx context.Context) ([]models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Project(nil), f.projects...), nil
}

func (f *fakeBoardAPI) CreateProject(ctx context.Context, name, description, githubRepo string) (*models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	p := models.Project{ID: newID(f.nextID), Name: name, Description: description, GithubRepo: githubRepo, Status: "active"}
	f.projects = append(f.projects, p)
	return &p, nil
}

func (f *fakeBoardAPI) DeleteProject(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletedProjects = append(f.deletedProjects, id)
	return nil
}

func (f *fakeBoardAPI) ListTasks(ctx context.Context, projectID string) ([]models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Task(nil), f.tasks[projectID]...), nil
}

func (f *fakeBoardAPI) CreateTask(ctx context.Context, task models.Task) (*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreate {
		return nil, errors.New("create rejected")
	}
	f.nextID++
	task.ID = newID(f.nextID)
	f.tasks[task.ProjectID] = append(f.tasks[task.ProjectID], task)
	return &task, nil
}

func (f *fakeBoardAPI) UpdateTask(ctx context.Context, id string, update api.TaskUpdate) (*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for pid, tasks := range f.tasks {
		for i := range tasks {
			if tasks[i].ID == id {
				if update.Title != nil {
					tasks[i].Title = *update.Title
				}
				if update.Description != nil {
					tasks[i].Description = *update.Description
				}
				if update.Priority != nil {
					tasks[i].Priority = models.TaskPriority(*update.Priority)
				}
				f.tasks[pid] = tasks
				t := tasks[i]
				return &t, nil
			}
		}
	}
	return nil, errors.New("task not found")
}

func (f *fakeBoardAPI) UpdateTaskStatus(ctx context.Context, id string, status models.TaskStatus) error {
	if f.blockStatus != nil {
		<-f.blockStatus
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusCalls++
	if f.failStatus {
		return errors.New("status update rejected")
	}
	return nil
}

func (f *fakeBoardAPI) DeleteTask(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletedTasks = append(f.deletedTasks, id)
	return nil
}

func newID(n int) string {
	return fmt.Sprintf("srv-%d", n)
}

func TestLoadProjectsAutoSelectsFirst(t *testing.T) {
	fake := newFakeBoardAPI()
	fake.projects = []models.Project{
		{ID: "p1", Name: "Apollo"},
		{ID: "p2", Name: "Borealis"},
	}
	fake.tasks["p1"] = []models.Task{{ID: "t1", ProjectID: "p1", Title: "first", Status: models.StatusTodo}}

	b := NewBoardStore(fake, nil, nil)
	if err := b.LoadProjects(context.Background()); err != nil {
		t.Fatalf("LoadProjects() error = %v", err)
	}

	if b.ActiveProjectID() != "p1" {
		t.Errorf("ActiveProjectID() = %q, want p1", b.ActiveProjectID())
	}
	if len(b.Tasks()) != 1 {
		t.Errorf("tasks not loaded for auto-selected project")
	}
}

func TestLoadProjectsEmptyListLeavesSelectionNull(t *testing.T) {
	b := NewBoardStore(newFakeBoardAPI(), nil, nil)
	if err := b.LoadProjects(context.Background()); err != nil {
		t.Fatalf("LoadProjects() error = %v", err)
	}
	if b.ActiveProjectID() != "" {
		t.Errorf("ActiveProjectID() = %q, want empty", b.ActiveProjectID())
	}
}

func TestChangeStatusOptimistic(t *testing.T) {
	fake := newFakeBoardAPI()
	fake.projects = []models.Project{{ID: "p1", Name: "Apollo"}}
	fake.tasks["p1"] = []models.Task{{ID: "t1", ProjectID: "p1", Title: "move me", Status: models.StatusTodo}}
	fake.blockStatus = make(chan struct{})

	b := NewBoardStore(fake, nil, nil)
	if err := b.LoadProjects(context.Background()); err != nil {
		t.Fatal(err)
	}

	done := make(chan error)
	go func() { done <- b.ChangeStatus(context.Background(), "t1", models.StatusDone) }()

	// The local copy must flip before the remote call resolves
	waitFor(t, func() bool {
		tasks := b.TasksByStatus(models.StatusDone)
		return len(tasks) == 1 && tasks[0].ID == "t1"
	})

	close(fake.blockStatus)
	if err := <-done; err != nil {
		t.Fatalf("ChangeStatus() error = %v", err)
	}
}

func TestChangeStatusRollbackOnFailure(t *testing.T) {
	fake := newFakeBoardAPI()
	fake.projects = []models.Project{{ID: "p1", Name: "Apollo"}}
	fake.tasks["p1"] = []models.Task{{ID: "t1", ProjectID: "p1", Title: "move me", Status: models.StatusTodo}}
	fake.failStatus = true

	queue := NewQueue(nil)
	b := NewBoardStore(fake, queue, nil)
	if err := b.LoadProjects(context.Background()); err != nil {
		t.Fatal(err)
	}

	if err := b.ChangeStatus(context.Background(), "t1", models.StatusDone); err == nil {
		t.Fatal("expected error")
	}

	tasks := b.Tasks()
	if tasks[0].Status != models.StatusTodo {
		t.Errorf("status = %q, want rollback to todo", tasks[0].Status)
	}
	items := queue.Items()
	if len(items) != 1 || items[0].Level != models.LevelWarning {
		t.Errorf("expected one warning notification, got %+v", items)
	}
}

func TestChangeStatusSameLaneSkipsRemote(t *testing.T) {
	fake := newFakeBoardAPI()
	fake.projects = []models.Project{{ID: "p1", Name: "Apollo"}}
	fake.tasks["p1"] = []models.Task{{ID: "t1", ProjectID: "p1", Title: "stay", Status: models.StatusTodo}}

	b := NewBoardStore(fake, nil, nil)
	if err := b.LoadProjects(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := b.ChangeStatus(context.Background(), "t1", models.StatusTodo); err != nil {
		t.Fatalf("ChangeStatus() error = %v", err)
	}
	if fake.statusCalls != 0 {
		t.Errorf("statusCalls = %d, want 0", fake.statusCalls)
	}
}

func TestCreateTaskRemoteFirst(t *testing.T) {
	fake := newFakeBoardAPI()
	fake.projects = []models.Project{{ID: "p1", Name: "Apollo"}}
	fake.failCreate = true

	queue := NewQueue(nil)
	b := NewBoardStore(fake, queue, nil)
	if err := b.LoadProjects(context.Background()); err != nil {
		t.Fatal(err)
	}

	if _, err := b.CreateTask(context.Background(), "new task", "", models.PriorityMedium); err == nil {
		t.Fatal("expected error")
	}
	if len(b.Tasks()) != 0 {
		t.Error("failed create must not insert locally")
	}

	fake.failCreate = false
	created, err := b.CreateTask(context.Background(), "new task", "desc", models.PriorityHigh)
	if err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}
	if created.ID == "" {
		t.Error("created task missing server id")
	}
	tasks := b.Tasks()
	if len(tasks) != 1 || tasks[0].ID != created.ID {
		t.Errorf("local list = %+v", tasks)
	}
}

func TestDeleteTaskReconciles(t *testing.T) {
	fake := newFakeBoardAPI()
	fake.projects = []models.Project{{ID: "p1", Name: "Apollo"}}
	fake.tasks["p1"] = []models.Task{
		{ID: "t1", ProjectID: "p1", Title: "keep", Status: models.StatusTodo},
		{ID: "t2", ProjectID: "p1", Title: "drop", Status: models.StatusTodo},
	}

	b := NewBoardStore(fake, nil, nil)
	if err := b.LoadProjects(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := b.DeleteTask(context.Background(), "t2"); err != nil {
		t.Fatalf("DeleteTask() error = %v", err)
	}

	tasks := b.Tasks()
	if len(tasks) != 1 || tasks[0].ID != "t1" {
		t.Errorf("tasks = %+v", tasks)
	}
	if len(fake.deletedTasks) != 1 || fake.deletedTasks[0] != "t2" {
		t.Errorf("remote delete calls = %v", fake.deletedTasks)
	}
}

func TestUpdateTaskReconcilesByID(t *testing.T) {
	fake := newFakeBoardAPI()
	fake.projects = []models.Project{{ID: "p1", Name: "Apollo"}}
	fake.tasks["p1"] = []models.Task{
		{ID: "t1", ProjectID: "p1", Title: "old title", Status: models.StatusInProgress, Priority: models.PriorityLow},
	}

	b := NewBoardStore(fake, nil, nil)
	if err := b.LoadProjects(context.Background()); err != nil {
		t.Fatal(err)
	}

	title := "new title"
	if err := b.UpdateTask(context.Background(), "t1", api.TaskUpdate{Title: &title}); err != nil {
		t.Fatalf("UpdateTask() error = %v", err)
	}

	tasks := b.Tasks()
	if tasks[0].Title != "new title" {
		t.Errorf("Title = %q", tasks[0].Title)
	}
	if tasks[0].Status != models.StatusInProgress {
		t.Errorf("Status = %q, lane must survive an update", tasks[0].Status)
	}
}

func TestDeleteProjectRequiresExactName(t *testing.T) {
	fake := newFakeBoardAPI()
	// Trailing space is deliberate: confirmation must not be trimmed
	fake.projects = []models.Project{{ID: "p1", Name: "Apollo "}}

	b := NewBoardStore(fake, nil, nil)
	if err := b.LoadProjects(context.Background()); err != nil {
		t.Fatal(err)
	}

	if err := b.DeleteProject(context.Background(), "p1", "Apollo"); err == nil {
		t.Fatal("expected confirmation mismatch error")
	}
	if len(fake.deletedProjects) != 0 {
		t.Error("remote delete attempted despite failed confirmation")
	}

	if err := b.DeleteProject(context.Background(), "p1", "Apollo "); err != nil {
		t.Fatalf("DeleteProject() error = %v", err)
	}
	if len(fake.deletedProjects) != 1 {
		t.Error("remote delete not called after exact confirmation")
	}
	if len(b.Projects()) != 0 {
		t.Errorf("projects = %+v", b.Projects())
	}
}

func TestDeleteActiveProjectFallsBackToFirstRemaining(t *testing.T) {
	fake := newFakeBoardAPI()
	fake.projects = []models.Project{
		{ID: "p1", Name: "Apollo"},
		{ID: "p2", Name: "Borealis"},
	}
	fake.tasks["p2"] = []models.Task{{ID: "t5", ProjectID: "p2", Title: "other", Status: models.StatusTodo}}

	b := NewBoardStore(fake, nil, nil)
	if err := b.LoadProjects(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := b.DeleteProject(context.Background(), "p1", "Apollo"); err != nil {
		t.Fatalf("DeleteProject() error = %v", err)
	}

	if b.ActiveProjectID() != "p2" {
		t.Errorf("ActiveProjectID() = %q, want p2", b.ActiveProjectID())
	}
	tasks := b.Tasks()
	if len(tasks) != 1 || tasks[0].ID != "t5" {
		t.Errorf("tasks = %+v, want reloaded for p2", tasks)
	}
}

func TestTasksByStatusIsPureFilter(t *testing.T) {
	fake := newFakeBoardAPI()
	fake.projects = []models.Project{{ID: "p1", Name: "Apollo"}}
	fake.tasks["p1"] = []models.Task{
		{ID: "t1", ProjectID: "p1", Title: "a", Status: models.StatusTodo},
		{ID: "t2", ProjectID: "p1", Title: "b", Status: models.StatusDone},
		{ID: "t3", ProjectID: "p1", Title: "c", Status: models.StatusTodo},
	}

	b := NewBoardStore(fake, nil, nil)
	if err := b.LoadProjects(context.Background()); err != nil {
		t.Fatal(err)
	}

	total := 0
	for _, status := range models.TaskStatuses {
		total += len(b.TasksByStatus(status))
	}
	if total != len(b.Tasks()) {
		t.Errorf("lanes hold %d tasks, list holds %d", total, len(b.Tasks()))
	}
	todo := b.TasksByStatus(models.StatusTodo)
	if len(todo) != 2 || todo[0].ID != "t1" || todo[1].ID != "t3" {
		t.Errorf("todo lane = %+v", todo)
	}
}
