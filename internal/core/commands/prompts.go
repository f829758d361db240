package commands

import (
	"fmt"

	"github.com/cbroglie/mustache"

	"github.com/utsavm/nexus/internal/core/models"
)

// Quick-prompt templates, one per persona. {{project}} is the active
// project's name (may be empty).
var quickPrompts = map[models.Agent]string{
	models.AgentAtlas:   "Give me a status update on {{#project}}{{project}}{{/project}}{{^project}}my projects{{/project}}: open tasks, blockers, and the single next step.",
	models.AgentOracle:  "Research this for me and reply with a short brief plus sources: ",
	models.AgentCompass: "Career check-in: look at what I've been working on and tell me what I should be learning next.",
	models.AgentForge:   "Review the following code and suggest concrete improvements: ",
}

// Task types the backend router understands for each persona
var agentTaskTypes = map[models.Agent]string{
	models.AgentAtlas:   "general",
	models.AgentOracle:  "research_heavy",
	models.AgentCompass: "career_analysis",
	models.AgentForge:   "code_review_deep",
}

// QuickPrompt renders the persona's template against the given data
func QuickPrompt(agent models.Agent, data map[string]any) (string, error) {
	tmpl, ok := quickPrompts[agent]
	if !ok {
		return "", fmt.Errorf("no quick prompt for agent %q", agent)
	}
	return mustache.Render(tmpl, data)
}

// TaskType returns the router hint for a persona
func TaskType(agent models.Agent) string {
	if tt, ok := agentTaskTypes[agent]; ok {
		return tt
	}
	return "general"
}

// Bindings are the live store actions the palette commands close over
type Bindings struct {
	Navigate   func(view string)
	NewSession func()
	// Compose prefills the chat composer with a prompt and its task type
	Compose func(prompt, taskType string)
	// Remind opens the reminder input
	Remind func()
}

// Build assembles the full registry: static navigation plus dynamic
// agent and session actions. activeProject feeds the quick prompts.
func Build(b Bindings, activeProject string) *Registry {
	nav := func(view string) func() {
		return func() {
			if b.Navigate != nil {
				b.Navigate(view)
			}
		}
	}

	r := NewRegistry(
		Command{ID: "nav-chat", Label: "Go to Chat", Category: CategoryNavigate, Keywords: []string{"conversation", "talk"}, Run: nav("chat")},
		Command{ID: "nav-board", Label: "Go to Board", Category: CategoryNavigate, Keywords: []string{"kanban", "tasks", "projects"}, Run: nav("board")},
		Command{ID: "nav-sessions", Label: "Go to Sessions", Category: CategoryNavigate, Keywords: []string{"history", "threads"}, Run: nav("sessions")},
		Command{ID: "nav-notifications", Label: "Go to Notifications", Category: CategoryNavigate, Keywords: []string{"inbox", "alerts"}, Run: nav("notifications")},
		Command{ID: "nav-settings", Label: "Go to Settings", Category: CategoryNavigate, Keywords: []string{"preferences", "config"}, Run: nav("settings")},
	)

	agents := []struct {
		agent models.Agent
		label string
		words []string
	}{
		{models.AgentAtlas, "Ask ATLAS for a project status", []string{"pm", "project manager", "atlas"}},
		{models.AgentOracle, "Ask ORACLE to research something", []string{"research", "oracle", "sources"}},
		{models.AgentCompass, "Ask COMPASS for a career check-in", []string{"career", "coach", "compass"}},
		{models.AgentForge, "Ask FORGE to review code", []string{"code", "review", "forge"}},
	}
	for _, a := range agents {
		agent := a.agent
		r.Add(Command{
			ID:       "ask-" + string(agent),
			Label:    a.label,
			Category: CategoryAgents,
			Keywords: a.words,
			Run: func() {
				if b.Compose == nil {
					return
				}
				prompt, err := QuickPrompt(agent, map[string]any{"project": activeProject})
				if err != nil {
					return
				}
				b.Compose(prompt, TaskType(agent))
			},
		})
	}

	r.Add(Command{
		ID: "session-new", Label: "New Session", Category: CategorySession,
		Keywords: []string{"clear", "fresh", "restart"},
		Run: func() {
			if b.NewSession != nil {
				b.NewSession()
			}
		},
	})
	r.Add(Command{
		ID: "tool-remind", Label: "Set Reminder", Category: CategoryTools,
		Keywords: []string{"remind", "later", "schedule"},
		Run: func() {
			if b.Remind != nil {
				b.Remind()
			}
		},
	})

	return r
}
