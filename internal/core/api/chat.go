package api

import (
	"context"

	"github.com/utsavm/nexus/internal/core/models"
)

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
	TaskType  string `json:"task_type,omitempty"`
}

// ChatResult is the routed reply from the orchestrator
type ChatResult struct {
	Response  string       `json:"response"`
	Agent     models.Agent `json:"agent"`
	SessionID string       `json:"session_id"`
}

// Chat sends a message through the orchestrator. The backend issues a
// session id on the first exchange; pass it back to continue the thread.
func (c *Client) Chat(ctx context.Context, message, sessionID, taskType string) (*ChatResult, error) {
	var result ChatResult
	req := chatRequest{Message: message, SessionID: sessionID, TaskType: taskType}
	if err := c.post(ctx, "/chat", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// HealthStatus reports backend and model-runtime state
type HealthStatus struct {
	Status string `json:"status"`
	Nexus  string `json:"nexus"`
	Ollama string `json:"ollama"` // "connected" or "disconnected"
}

// ModelRuntimeOnline reports whether the local model runtime is reachable
func (h *HealthStatus) ModelRuntimeOnline() bool {
	return h.Ollama == "connected"
}

// Health runs the backend health check
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var status HealthStatus
	if err := c.get(ctx, "/health", &status); err != nil {
		return nil, err
	}
	return &status, nil
}
