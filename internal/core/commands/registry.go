// Package commands is the palette action registry. The registry is
// cheap to build and is rebuilt from static definitions plus live store
// bindings every time the palette opens; nothing here persists.
package commands

import "strings"

// Category partitions palette results
type Category string

const (
	CategoryNavigate Category = "Navigate"
	CategoryAgents   Category = "Agents"
	CategorySession  Category = "Session"
	CategoryTools    Category = "Tools"
)

// Command is one user-invocable palette action
type Command struct {
	ID       string
	Label    string
	Category Category
	Keywords []string
	Run      func()
}

// Registry is an ordered command list with substring filtering
type Registry struct {
	commands []Command
}

// NewRegistry creates a registry from the given commands
func NewRegistry(commands ...Command) *Registry {
	return &Registry{commands: commands}
}

// Add appends a command
func (r *Registry) Add(cmd Command) {
	r.commands = append(r.commands, cmd)
}

// All returns every command in registration order
func (r *Registry) All() []Command {
	out := make([]Command, len(r.commands))
	copy(out, r.commands)
	return out
}

// Filter returns commands whose label or any keyword contains the query,
// case-insensitively. Plain substring match, no edit-distance fuzz. An
// empty query matches everything.
func (r *Registry) Filter(query string) []Command {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return r.All()
	}

	var out []Command
	for _, cmd := range r.commands {
		if matches(cmd, query) {
			out = append(out, cmd)
		}
	}
	return out
}

func matches(cmd Command, query string) bool {
	if strings.Contains(strings.ToLower(cmd.Label), query) {
		return true
	}
	for _, kw := range cmd.Keywords {
		if strings.Contains(strings.ToLower(kw), query) {
			return true
		}
	}
	return false
}

// First returns the top filtered result. This is the accept-key target:
// it works even when only a keyword matched, never the label.
func (r *Registry) First(query string) (Command, bool) {
	filtered := r.Filter(query)
	if len(filtered) == 0 {
		return Command{}, false
	}
	return filtered[0], true
}

// Group is one category bucket of filtered results
type Group struct {
	Category Category
	Commands []Command
}

// GroupByCategory partitions commands by category, preserving the order
// in which each category was first seen.
func GroupByCategory(commands []Command) []Group {
	var groups []Group
	index := make(map[Category]int)
	for _, cmd := range commands {
		i, ok := index[cmd.Category]
		if !ok {
			i = len(groups)
			index[cmd.Category] = i
			groups = append(groups, Group{Category: cmd.Category})
		}
		groups[i].Commands = append(groups[i].Commands, cmd)
	}
	return groups
}
