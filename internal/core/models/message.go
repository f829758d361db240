package models

import "time"

// Role identifies who authored a chat message
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Agent is the persona that produced (or will handle) a message
type Agent string

const (
	AgentNexus   Agent = "nexus"   // Orchestrator
	AgentAtlas   Agent = "atlas"   // Project manager
	AgentOracle  Agent = "oracle"  // Researcher
	AgentCompass Agent = "compass" // Career coach
	AgentForge   Agent = "forge"   // Code assistant
)

// Agents lists every persona the backend routes to
var Agents = []Agent{AgentNexus, AgentAtlas, AgentOracle, AgentCompass, AgentForge}

// Valid reports whether a is a known persona
func (a Agent) Valid() bool {
	switch a {
	case AgentNexus, AgentAtlas, AgentOracle, AgentCompass, AgentForge:
		return true
	}
	return false
}

// Message is a single chat message within a session.
//
// Assistant replies are created in two steps: a placeholder with
// Streaming=true and empty content is appended when the request is
// dispatched, then resolved in place (content filled, Streaming cleared)
// when the response arrives or the request fails.
type Message struct {
	ID        string
	Role      Role
	Content   string
	Agent     Agent
	CreatedAt time.Time
	Streaming bool
}
