package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/utsavm/nexus/internal/core/api"
	"github.com/utsavm/nexus/internal/core/models"
	"github.com/utsavm/nexus/internal/core/store"
)

type tickMsg struct{}

type errMsg struct {
	err error
}

// chatDoneMsg fires when a send resolves, success or not. The store
// already holds the outcome; the message only triggers a repaint.
type chatDoneMsg struct{}

// boardChangedMsg fires after any board mutation completes
type boardChangedMsg struct{}

type sessionsLoadedMsg struct {
	sessions []models.Session
}

type sessionAdoptedMsg struct{}

func sendChat(s *store.Store, text, taskType string) tea.Cmd {
	return func() tea.Msg {
		s.Chat.Send(context.Background(), text, taskType)
		return chatDoneMsg{}
	}
}

func loadBoard(s *store.Store) tea.Cmd {
	return func() tea.Msg {
		// Load errors surface as notifications from the store itself
		_ = s.Board.LoadProjects(context.Background())
		return boardChangedMsg{}
	}
}

func selectProject(s *store.Store, projectID string) tea.Cmd {
	return func() tea.Msg {
		_ = s.Board.SetActiveProject(context.Background(), projectID)
		return boardChangedMsg{}
	}
}

func changeStatus(s *store.Store, taskID string, status models.TaskStatus) tea.Cmd {
	return func() tea.Msg {
		_ = s.Board.ChangeStatus(context.Background(), taskID, status)
		return boardChangedMsg{}
	}
}

func createTask(s *store.Store, title, description string) tea.Cmd {
	return func() tea.Msg {
		_, _ = s.Board.CreateTask(context.Background(), title, description, models.PriorityMedium)
		return boardChangedMsg{}
	}
}

func deleteTask(s *store.Store, taskID string) tea.Cmd {
	return func() tea.Msg {
		_ = s.Board.DeleteTask(context.Background(), taskID)
		return boardChangedMsg{}
	}
}

func createProject(s *store.Store, name string) tea.Cmd {
	return func() tea.Msg {
		_, _ = s.Board.CreateProject(context.Background(), name, "", "")
		return boardChangedMsg{}
	}
}

func deleteProject(s *store.Store, projectID, confirmName string) tea.Cmd {
	return func() tea.Msg {
		_ = s.Board.DeleteProject(context.Background(), projectID, confirmName)
		return boardChangedMsg{}
	}
}

func loadSessions(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		sessions, err := client.ListSessions(context.Background())
		if err != nil {
			// Session history is best-effort; an unreachable backend
			// just leaves the list empty.
			return sessionsLoadedMsg{}
		}
		return sessionsLoadedMsg{sessions: sessions}
	}
}

func adoptSession(s *store.Store, client *api.Client, sessionID string) tea.Cmd {
	return func() tea.Msg {
		session, err := client.GetSession(context.Background(), sessionID)
		if err != nil {
			return errMsg{err}
		}
		s.Chat.Adopt(*session)
		return sessionAdoptedMsg{}
	}
}

func deleteSession(client *api.Client, sessionID string) tea.Cmd {
	return func() tea.Msg {
		if err := client.DeleteSession(context.Background(), sessionID); err != nil {
			return errMsg{err}
		}
		sessions, err := client.ListSessions(context.Background())
		if err != nil {
			return sessionsLoadedMsg{}
		}
		return sessionsLoadedMsg{sessions: sessions}
	}
}
