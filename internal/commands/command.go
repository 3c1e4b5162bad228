package commands

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/pixil98/go-rpg/internal/game"
)

// CommandFunc runs one command against the requesting player.
type CommandFunc func(ctx context.Context, req *Request) (game.Status, error)

// Command is one entry in the registry.
type Command struct {
	Name  string
	Usage string
	Help  string

	// Privileged commands are only available in dev mode. To everyone else
	// they do not exist.
	Privileged bool

	Func CommandFunc
}

func (c *Command) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("command name not set")
	}
	if c.Name != strings.ToLower(c.Name) || strings.ContainsAny(c.Name, " \t") {
		return fmt.Errorf("command %q: name must be a single lowercase word", c.Name)
	}
	if c.Func == nil {
		return fmt.Errorf("command %q: func not set", c.Name)
	}
	return nil
}

// Registry maps command names to commands. It is built once and never
// changes afterwards.
type Registry struct {
	cmds  map[string]*Command
	names []string
}

// NewRegistry builds a registry from cmds, rejecting invalid or duplicate
// entries.
func NewRegistry(cmds ...*Command) (*Registry, error) {
	r := &Registry{cmds: make(map[string]*Command, len(cmds))}
	for _, c := range cmds {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if _, exists := r.cmds[c.Name]; exists {
			return nil, fmt.Errorf("command %q already registered", c.Name)
		}
		r.cmds[c.Name] = c
		r.names = append(r.names, c.Name)
	}
	slices.Sort(r.names)
	return r, nil
}

// Lookup returns the named command. Privileged commands are hidden unless
// dev is set.
func (r *Registry) Lookup(name string, dev bool) (*Command, bool) {
	c, ok := r.cmds[name]
	if !ok || (c.Privileged && !dev) {
		return nil, false
	}
	return c, true
}

// Visible returns the commands available in the given mode, sorted by name.
func (r *Registry) Visible(dev bool) []*Command {
	var out []*Command
	for _, name := range r.names {
		if c, ok := r.Lookup(name, dev); ok {
			out = append(out, c)
		}
	}
	return out
}

// Request is the input to a single command and collects its output.
type Request struct {
	Player *game.Player

	// Name is the lowercased command word, Args the remaining tokens and Arg
	// those tokens joined back with single spaces.
	Name string
	Args []string
	Arg  string

	// DevMode is set when privileged commands are enabled.
	DevMode bool

	Messages []string

	// Quit asks the session to end after the reply is sent.
	Quit bool
}

// Notify satisfies game.Notifier.
func (r *Request) Notify(msg string) {
	r.Messages = append(r.Messages, msg)
}

// Printf appends a formatted message to the reply.
func (r *Request) Printf(format string, args ...any) {
	r.Notify(fmt.Sprintf(format, args...))
}

// ParseInput splits raw text into a lowercased command name and the
// argument tokens. Runs of whitespace collapse.
func ParseInput(text string) (name string, args []string) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return "", nil
	}
	return strings.ToLower(fields[0]), fields[1:]
}
