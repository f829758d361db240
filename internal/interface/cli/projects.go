package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Manage projects",
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all projects",
	RunE:  runProjectsList,
}

var projectsCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a project",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectsCreate,
}

var projectsDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a project and all its tasks",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectsDelete,
}

var (
	projectDescription string
	projectRepo        string
	projectConfirm     string
)

func init() {
	rootCmd.AddCommand(projectsCmd)
	projectsCmd.AddCommand(projectsListCmd)
	projectsCmd.AddCommand(projectsCreateCmd)
	projectsCmd.AddCommand(projectsDeleteCmd)

	projectsCreateCmd.Flags().StringVar(&projectDescription, "description", "", "Project description")
	projectsCreateCmd.Flags().StringVar(&projectRepo, "repo", "", "GitHub repository")
	projectsDeleteCmd.Flags().StringVar(&projectConfirm, "confirm", "", "The project's exact name, required to delete")
}

func runProjectsList(cmd *cobra.Command, args []string) error {
	client, _, err := newClient()
	if err != nil {
		return err
	}

	projects, err := client.ListProjects(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list projects: %w", err)
	}

	if len(projects) == 0 {
		fmt.Println("No projects.")
		return nil
	}
	for _, p := range projects {
		fmt.Printf("%s  %s", p.ID, p.Name)
		if p.Status != "" {
			fmt.Printf("  [%s]", p.Status)
		}
		fmt.Println()
		if p.Description != "" {
			fmt.Printf("    %s\n", p.Description)
		}
	}
	return nil
}

func runProjectsCreate(cmd *cobra.Command, args []string) error {
	client, _, err := newClient()
	if err != nil {
		return err
	}

	project, err := client.CreateProject(cmd.Context(), args[0], projectDescription, projectRepo)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	fmt.Printf("Created %s (%s)\n", project.Name, project.ID)
	return nil
}

func runProjectsDelete(cmd *cobra.Command, args []string) error {
	client, _, err := newClient()
	if err != nil {
		return err
	}

	// Deleting a project takes its tasks with it, so require the exact
	// name back. No trimming: what you type is what is compared.
	projects, err := client.ListProjects(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list projects: %w", err)
	}
	var name string
	for _, p := range projects {
		if p.ID == args[0] {
			name = p.Name
			break
		}
	}
	if name == "" {
		return fmt.Errorf("no project with id %q", args[0])
	}
	if projectConfirm != name {
		return fmt.Errorf("refusing to delete: pass --confirm with the project's exact name (%q)", name)
	}

	if err := client.DeleteProject(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	fmt.Printf("Deleted %s\n", name)
	return nil
}
