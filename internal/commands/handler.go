package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pixil98/go-rpg/internal/combat"
	"github.com/pixil98/go-rpg/internal/dice"
	"github.com/pixil98/go-rpg/internal/game"
)

// Content is the static data commands read.
type Content interface {
	combat.Content
	Animal(name string) *game.Animal
	AnimalNames() []string
	ItemNames() []string
	RandomItem(r dice.Roller) string
}

// Roster lists the names of joined players. It must not block on the
// session that is running the command.
type Roster interface {
	Names() []string
}

// Saver persists a player snapshot.
type Saver interface {
	SavePlayer(ctx context.Context, p *game.Player) error
}

// Result is the structured outcome of one dispatched command.
type Result struct {
	Status   game.Status
	Command  string
	Messages []string
	Err      error
	Quit     bool
}

// Dispatcher validates command text against the registry and runs it.
type Dispatcher struct {
	registry *Registry
	devMode  bool
}

func NewDispatcher(registry *Registry, devMode bool) *Dispatcher {
	return &Dispatcher{registry: registry, devMode: devMode}
}

// Dispatch runs text as a command for p. Failures are always reported in
// the result; a handler error never escapes.
func (d *Dispatcher) Dispatch(ctx context.Context, p *game.Player, text string) Result {
	name, args := ParseInput(text)
	if name == "" {
		return Result{Err: NewUserError(game.ErrUnknownCommand, "Type 'help' for a list of commands.")}
	}

	cmd, ok := d.registry.Lookup(name, d.devMode)
	if !ok {
		return Result{Command: name, Err: NewUserError(game.ErrUnknownCommand, "Unknown command: %s", name)}
	}

	req := &Request{
		Player:  p,
		Name:    name,
		Args:    args,
		Arg:     strings.Join(args, " "),
		DevMode: d.devMode,
	}

	status, err := d.exec(ctx, cmd, req)
	if err != nil {
		status = game.StatusNoAction
		if _, ok := AsUserError(err); !ok {
			slog.ErrorContext(ctx, "command failed", "command", name, "player", p.Name, "error", err)
		}
	}

	return Result{
		Status:   status,
		Command:  name,
		Messages: req.Messages,
		Err:      err,
		Quit:     req.Quit,
	}
}

func (d *Dispatcher) exec(ctx context.Context, cmd *Command, req *Request) (status game.Status, err error) {
	defer func() {
		if r := recover(); r != nil {
			status, err = game.StatusNoAction, fmt.Errorf("command %q panicked: %v", cmd.Name, r)
		}
	}()
	return cmd.Func(ctx, req)
}

// Handler holds what the built-in commands need.
type Handler struct {
	content Content
	combat  *combat.Resolver
	roller  dice.Roller
	roster  Roster
	saver   Saver
	// set by NewHandler so help can list commands
	registry *Registry
}

func NewHandler(content Content, resolver *combat.Resolver, roller dice.Roller, roster Roster, saver Saver) *Handler {
	return &Handler{
		content: content,
		combat:  resolver,
		roller:  roller,
		roster:  roster,
		saver:   saver,
	}
}

// Registry builds the registry of built-in commands.
func (h *Handler) Registry() (*Registry, error) {
	r, err := NewRegistry(
		&Command{Name: "walk", Usage: "walk [place]", Help: "Walk somewhere. Makes you a little hungry.", Func: h.walk},
		&Command{Name: "run", Usage: "run [place]", Help: "Run somewhere. Makes you hungry.", Func: h.run},
		&Command{Name: "rummage", Usage: "rummage", Help: "Search the area for something useful.", Func: h.rummage},
		&Command{Name: "eat", Usage: "eat [food]", Help: "Eat something to restore hunger.", Func: h.eat},
		&Command{Name: "craft", Usage: "craft <item>", Help: "Craft an item you have seen before.", Func: h.craft},
		&Command{Name: "attack", Usage: "attack [weapon]", Help: "Attack your opponent.", Func: h.attack},
		&Command{Name: "slaughter", Usage: "slaughter [weapon]", Help: "Slaughter your animal companion for its loot.", Func: h.slaughter},
		&Command{Name: "equip", Usage: "equip <item>", Help: "Wear a shield or cloak.", Func: h.equip},
		&Command{Name: "unequip", Usage: "unequip", Help: "Take off what you are wearing.", Func: h.unequip},
		&Command{Name: "drop", Usage: "drop <item>", Help: "Drop an item.", Func: h.drop},
		&Command{Name: "inventory", Usage: "inventory", Help: "List what you are carrying.", Func: h.inventory},
		&Command{Name: "status", Usage: "status", Help: "Show your health, hunger and company.", Func: h.status},
		&Command{Name: "who", Usage: "who", Help: "List who is online.", Func: h.who},
		&Command{Name: "help", Usage: "help", Help: "List the commands.", Func: h.help},
		&Command{Name: "save", Usage: "save", Help: "Save your progress.", Func: h.save},
		&Command{Name: "quit", Usage: "quit", Help: "Leave the game.", Func: h.quit},
		&Command{Name: "give", Usage: "give <item>", Help: "Conjure an item.", Privileged: true, Func: h.give},
		&Command{Name: "spawn", Usage: "spawn <animal>", Help: "Conjure an animal.", Privileged: true, Func: h.spawn},
	)
	if err != nil {
		return nil, err
	}
	h.registry = r
	return r, nil
}

// item resolves a player-typed item name, ignoring case.
func (h *Handler) item(name string) *game.Item {
	if def := h.content.Item(name); def != nil {
		return def
	}
	for _, n := range h.content.ItemNames() {
		if strings.EqualFold(n, name) {
			return h.content.Item(n)
		}
	}
	return nil
}
