package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/utsavm/nexus/internal/core/models"
)

// Global styles used across views
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("246"))

	onlineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("green"))

	offlineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("red")).
			Bold(true)

	// Chat view styles
	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("cyan")).
			Bold(true)

	streamingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("246")).
			Italic(true)

	timestampStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("246"))

	// Per-persona colors for the chat transcript and board
	agentStyles = map[models.Agent]lipgloss.Style{
		models.AgentNexus:   lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		models.AgentAtlas:   lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		models.AgentOracle:  lipgloss.NewStyle().Foreground(lipgloss.Color("135")).Bold(true),
		models.AgentCompass: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		models.AgentForge:   lipgloss.NewStyle().Foreground(lipgloss.Color("120")).Bold(true),
	}

	// Board view styles
	laneHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			Underline(true)

	laneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	cardStyle = lipgloss.NewStyle().
			PaddingLeft(1)

	selectedCardStyle = lipgloss.NewStyle().
				PaddingLeft(1).
				Foreground(lipgloss.Color("170")).
				Bold(true)

	priorityStyles = map[models.TaskPriority]lipgloss.Style{
		models.PriorityCritical: lipgloss.NewStyle().Foreground(lipgloss.Color("red")).Bold(true),
		models.PriorityHigh:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		models.PriorityMedium:   lipgloss.NewStyle().Foreground(lipgloss.Color("yellow")),
		models.PriorityLow:      lipgloss.NewStyle().Foreground(lipgloss.Color("246")),
	}

	// Notification styles by level
	levelStyles = map[models.NotificationLevel]lipgloss.Style{
		models.LevelInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		models.LevelSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("green")),
		models.LevelWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		models.LevelError:   lipgloss.NewStyle().Foreground(lipgloss.Color("red")),
		models.LevelAgent:   lipgloss.NewStyle().Foreground(lipgloss.Color("135")),
	}

	toastStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	toastExitingStyle = toastStyle.
				BorderForeground(lipgloss.Color("236")).
				Foreground(lipgloss.Color("240"))

	// Palette styles
	paletteStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("205")).
			Padding(0, 1)

	paletteCategoryStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("246"))

	paletteSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("170")).
				Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("red"))
)
