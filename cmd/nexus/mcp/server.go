package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/utsavm/nexus/internal/core/api"
	"github.com/utsavm/nexus/internal/core/models"
)

// ListTasksArgs defines arguments for the list_tasks tool
type ListTasksArgs struct {
	ProjectID string `json:"project_id" jsonschema:"description=Project ID to list tasks for,required"`
}

// CreateTaskArgs defines arguments for the create_task tool
type CreateTaskArgs struct {
	ProjectID   string `json:"project_id" jsonschema:"description=Project ID to create the task in,required"`
	Title       string `json:"title" jsonschema:"description=Task title,required"`
	Description string `json:"description,omitempty" jsonschema:"description=Task description"`
	Priority    string `json:"priority,omitempty" jsonschema:"description=Priority: critical high medium or low (default: medium)"`
}

// MoveTaskArgs defines arguments for the update_task_status tool
type MoveTaskArgs struct {
	TaskID string `json:"task_id" jsonschema:"description=Task ID to move,required"`
	Status string `json:"status" jsonschema:"description=Target lane: todo in_progress blocked or done,required"`
}

// AskArgs defines arguments for the ask_nexus tool
type AskArgs struct {
	Message  string `json:"message" jsonschema:"description=Message to send,required"`
	TaskType string `json:"task_type,omitempty" jsonschema:"description=Routing hint"`
}

// ProjectSummary is a project as exposed over MCP
type ProjectSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
}

// TaskSummary is a task as exposed over MCP
type TaskSummary struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Status   string `json:"status"`
	Priority string `json:"priority"`
}

// StartServer serves NEXUS tools over stdio until the client hangs up
func StartServer(apiBaseURL string) error {
	client := api.New(apiBaseURL)

	s := server.NewMCPServer(
		"NEXUS",
		"1.0.0",
	)

	listProjectsTool := mcp.NewTool("list_projects",
		mcp.WithDescription("List all projects on the NEXUS task board"),
	)
	s.AddTool(listProjectsTool, makeListProjectsHandler(client))

	listTasksTool := mcp.NewTool("list_tasks",
		mcp.WithDescription("List a project's tasks with their kanban status"),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("Project ID to list tasks for")),
	)
	s.AddTool(listTasksTool, makeListTasksHandler(client))

	createTaskTool := mcp.NewTool("create_task",
		mcp.WithDescription("Create a task in a project. New tasks start in the todo lane."),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("Project ID to create the task in")),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Task title")),
		mcp.WithString("description",
			mcp.Description("Task description")),
		mcp.WithString("priority",
			mcp.Description("Priority: critical, high, medium, or low (default: medium)")),
	)
	s.AddTool(createTaskTool, makeCreateTaskHandler(client))

	moveTaskTool := mcp.NewTool("update_task_status",
		mcp.WithDescription("Move a task to another kanban lane"),
		mcp.WithString("task_id",
			mcp.Required(),
			mcp.Description("Task ID to move")),
		mcp.WithString("status",
			mcp.Required(),
			mcp.Description("Target lane: todo, in_progress, blocked, or done")),
	)
	s.AddTool(moveTaskTool, makeMoveTaskHandler(client))

	askTool := mcp.NewTool("ask_nexus",
		mcp.WithDescription("Send a message to the NEXUS assistant and return the routed agent's reply"),
		mcp.WithString("message",
			mcp.Required(),
			mcp.Description("Message to send")),
		mcp.WithString("task_type",
			mcp.Description("Routing hint: general, research_heavy, career_analysis, or code_review_deep")),
	)
	s.AddTool(askTool, makeAskHandler(client))

	return server.ServeStdio(s)
}

func decodeArgs(request mcp.CallToolRequest, out any) error {
	argsBytes, _ := json.Marshal(request.Params.Arguments)
	return json.Unmarshal(argsBytes, out)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func makeListProjectsHandler(client *api.Client) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		projects, err := client.ListProjects(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
		}
		out := make([]ProjectSummary, 0, len(projects))
		for _, p := range projects {
			out = append(out, ProjectSummary{
				ID:          p.ID,
				Name:        p.Name,
				Description: p.Description,
				Status:      p.Status,
			})
		}
		return jsonResult(out)
	}
}

func makeListTasksHandler(client *api.Client) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args ListTasksArgs
		if err := decodeArgs(request, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		if args.ProjectID == "" {
			return mcp.NewToolResultError("project_id is required"), nil
		}
		tasks, err := client.ListTasks(ctx, args.ProjectID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
		}
		out := make([]TaskSummary, 0, len(tasks))
		for _, t := range tasks {
			out = append(out, TaskSummary{
				ID:       t.ID,
				Title:    t.Title,
				Status:   string(t.Status),
				Priority: string(t.Priority),
			})
		}
		return jsonResult(out)
	}
}

func makeCreateTaskHandler(client *api.Client) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args CreateTaskArgs
		if err := decodeArgs(request, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		if args.ProjectID == "" || args.Title == "" {
			return mcp.NewToolResultError("project_id and title are required"), nil
		}
		priority := models.TaskPriority(args.Priority)
		if priority == "" {
			priority = models.PriorityMedium
		}
		if !priority.Valid() {
			return mcp.NewToolResultError(fmt.Sprintf("invalid priority %q", priority)), nil
		}

		task, err := client.CreateTask(ctx, models.Task{
			ProjectID:   args.ProjectID,
			Title:       args.Title,
			Description: args.Description,
			Status:      models.StatusTodo,
			Priority:    priority,
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("create failed: %v", err)), nil
		}
		return jsonResult(TaskSummary{
			ID:       task.ID,
			Title:    task.Title,
			Status:   string(task.Status),
			Priority: string(task.Priority),
		})
	}
}

func makeMoveTaskHandler(client *api.Client) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args MoveTaskArgs
		if err := decodeArgs(request, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		status := models.TaskStatus(args.Status)
		if args.TaskID == "" {
			return mcp.NewToolResultError("task_id is required"), nil
		}
		if !status.Valid() {
			return mcp.NewToolResultError(fmt.Sprintf("invalid status %q", status)), nil
		}
		if err := client.UpdateTaskStatus(ctx, args.TaskID, status); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("move failed: %v", err)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("moved %s to %s", args.TaskID, status)), nil
	}
}

func makeAskHandler(client *api.Client) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args AskArgs
		if err := decodeArgs(request, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		if args.Message == "" {
			return mcp.NewToolResultError("message is required"), nil
		}
		result, err := client.Chat(ctx, args.Message, "", args.TaskType)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("chat failed: %v", err)), nil
		}
		return jsonResult(map[string]string{
			"agent":      string(result.Agent),
			"response":   result.Response,
			"session_id": result.SessionID,
		})
	}
}
