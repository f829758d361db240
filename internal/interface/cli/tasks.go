package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/utsavm/nexus/internal/core/models"
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Manage tasks",
}

var tasksListCmd = &cobra.Command{
	Use:   "list [project-id]",
	Short: "List a project's tasks grouped by lane",
	Args:  cobra.ExactArgs(1),
	RunE:  runTasksList,
}

var tasksCreateCmd = &cobra.Command{
	Use:   "create [project-id] [title]",
	Short: "Create a task",
	Args:  cobra.ExactArgs(2),
	RunE:  runTasksCreate,
}

var tasksMoveCmd = &cobra.Command{
	Use:   "move [task-id] [status]",
	Short: "Move a task to another lane",
	Long:  "Move a task to one of: todo, in_progress, blocked, done",
	Args:  cobra.ExactArgs(2),
	RunE:  runTasksMove,
}

var (
	taskDescription string
	taskPriority    string
)

func init() {
	rootCmd.AddCommand(tasksCmd)
	tasksCmd.AddCommand(tasksListCmd)
	tasksCmd.AddCommand(tasksCreateCmd)
	tasksCmd.AddCommand(tasksMoveCmd)

	tasksCreateCmd.Flags().StringVar(&taskDescription, "description", "", "Task description")
	tasksCreateCmd.Flags().StringVar(&taskPriority, "priority", "medium", "Priority (critical, high, medium, low)")
}

func runTasksList(cmd *cobra.Command, args []string) error {
	client, _, err := newClient()
	if err != nil {
		return err
	}

	tasks, err := client.ListTasks(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}

	for _, status := range models.TaskStatuses {
		var lane []models.Task
		for _, t := range tasks {
			if t.Status == status {
				lane = append(lane, t)
			}
		}
		fmt.Printf("%s (%d)\n", status, len(lane))
		for _, t := range lane {
			fmt.Printf("  %s  [%s] %s\n", t.ID, t.Priority, t.Title)
		}
	}
	return nil
}

func runTasksCreate(cmd *cobra.Command, args []string) error {
	client, _, err := newClient()
	if err != nil {
		return err
	}

	priority := models.TaskPriority(taskPriority)
	if !priority.Valid() {
		return fmt.Errorf("invalid priority %q", taskPriority)
	}

	task, err := client.CreateTask(cmd.Context(), models.Task{
		ProjectID:   args[0],
		Title:       args[1],
		Description: taskDescription,
		Status:      models.StatusTodo,
		Priority:    priority,
	})
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	fmt.Printf("Created %s (%s)\n", task.Title, task.ID)
	return nil
}

func runTasksMove(cmd *cobra.Command, args []string) error {
	client, _, err := newClient()
	if err != nil {
		return err
	}

	status := models.TaskStatus(args[1])
	if !status.Valid() {
		return fmt.Errorf("invalid status %q (want todo, in_progress, blocked, or done)", args[1])
	}

	if err := client.UpdateTaskStatus(cmd.Context(), args[0], status); err != nil {
		return fmt.Errorf("failed to move task: %w", err)
	}
	fmt.Printf("Moved %s to %s\n", args[0], status)
	return nil
}
