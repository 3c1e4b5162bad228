// Package session owns the connection to player mapping and runs every turn
// under a single lock so all connections observe a consistent world.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/pixil98/go-rpg/internal/combat"
	"github.com/pixil98/go-rpg/internal/commands"
	"github.com/pixil98/go-rpg/internal/game"
)

// Publisher delivers an encoded event to one connection.
type Publisher interface {
	Publish(connID string, data []byte) error
}

type connState int

const (
	stateConnected connState = iota
	stateJoined
	stateDead
)

type connection struct {
	id     string
	state  connState
	player *game.Player
}

// Manager tracks every connection, joined or not, and serializes the turns
// they submit.
type Manager struct {
	mu    sync.Mutex
	conns map[string]*connection
	order []string

	dispatcher *commands.Dispatcher
	resolver   *combat.Resolver
	pub        Publisher
	snapshots  *Snapshots
	roster     *Roster
	recorder   Recorder

	slots  int
	resume bool
}

// ManagerOpt configures a Manager.
type ManagerOpt func(*Manager)

// WithInventorySlots sets the slot count for new players.
func WithInventorySlots(n int) ManagerOpt {
	return func(m *Manager) {
		m.slots = n
	}
}

// WithResume restores a stored snapshot when a player joins under a name
// that has one.
func WithResume(resume bool) ManagerOpt {
	return func(m *Manager) {
		m.resume = resume
	}
}

func WithRecorder(r Recorder) ManagerOpt {
	return func(m *Manager) {
		m.recorder = r
	}
}

// WithRoster shares a roster with other readers such as the who command.
func WithRoster(r *Roster) ManagerOpt {
	return func(m *Manager) {
		m.roster = r
	}
}

func NewManager(dispatcher *commands.Dispatcher, resolver *combat.Resolver, pub Publisher, snapshots *Snapshots, opts ...ManagerOpt) *Manager {
	m := &Manager{
		conns:      map[string]*connection{},
		dispatcher: dispatcher,
		resolver:   resolver,
		pub:        pub,
		snapshots:  snapshots,
		roster:     NewRoster(),
		recorder:   nopRecorder{},
		slots:      game.DefaultInventorySlots,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Connect registers a new connection. It receives broadcasts from now on.
func (m *Manager) Connect(ctx context.Context, connID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.conns[connID]; ok {
		return fmt.Errorf("connection %q already registered", connID)
	}
	m.conns[connID] = &connection{id: connID, state: stateConnected}
	m.order = append(m.order, connID)
	m.sessionsChanged()

	slog.InfoContext(ctx, "connection opened", "conn", connID)
	return nil
}

// Join binds a new player named name to the connection. A name held by a
// joined player is rejected without touching the session map. A dead
// player may join again from the same connection.
func (m *Manager) Join(ctx context.Context, connID, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.conns[connID]
	if !ok {
		return fmt.Errorf("join on unknown connection %q", connID)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		m.sendError(ctx, connID, commands.NewUserError(game.ErrInvalidArgument, "A name is required."))
		return game.ErrInvalidArgument
	}
	if c.state == stateJoined {
		m.sendError(ctx, connID, commands.NewUserError(game.ErrInvalidArgument, "You have already joined as %s.", c.player.Name))
		return game.ErrInvalidArgument
	}
	if m.nameTaken(name) {
		slog.InfoContext(ctx, "join rejected", "conn", connID, "name", name)
		m.recorder.JoinRejected()
		m.send(ctx, connID, EventUsernameTaken, UsernameTakenData{Name: name})
		return game.ErrUsernameTaken
	}

	p, resumed := m.newPlayer(connID, name)
	c.player = p
	c.state = stateJoined
	m.updateRoster()
	m.recorder.PlayerJoined(resumed)
	m.sessionsChanged()

	slog.InfoContext(ctx, "player joined", "conn", connID, "name", name, "resumed", resumed)
	m.broadcast(ctx, EventJoin, p.Public())
	return nil
}

func (m *Manager) nameTaken(name string) bool {
	for _, c := range m.conns {
		if c.state == stateJoined && c.player.Name == name {
			return true
		}
	}
	return false
}

// newPlayer builds a fresh player, or restores one from a living snapshot.
// Encounters never survive a restore.
func (m *Manager) newPlayer(connID, name string) (*game.Player, bool) {
	p := game.NewPlayer(connID, name, m.slots)
	if !m.resume || m.snapshots == nil {
		return p, false
	}
	snap := m.snapshots.Load(name)
	if snap == nil || snap.Name != name || snap.Health <= 0 || snap.Hunger <= 0 {
		return p, false
	}

	p.Health = game.ClampVital(snap.Health)
	p.Hunger = game.ClampVital(snap.Hunger)
	p.Inventory = snap.Inventory
	p.MaxInventorySlots = max(snap.MaxInventorySlots, 1)
	p.Discovered = snap.Discovered
	p.Shield = snap.Shield
	if p.Discovered == nil {
		p.Discovered = map[string]bool{}
	}
	return p, true
}

// Command runs one turn for the connection's player: dispatch, combat and
// pet tick, death check. The reply goes to the sender; a death is broadcast.
// It reports whether the connection asked to quit.
func (m *Manager) Command(ctx context.Context, connID, text string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.conns[connID]
	if !ok {
		return false, fmt.Errorf("command on unknown connection %q", connID)
	}
	switch c.state {
	case stateConnected:
		m.sendError(ctx, connID, commands.NewUserError(game.ErrNotJoined, "Join the game first."))
		return false, nil
	case stateDead:
		m.sendError(ctx, connID, commands.NewUserError(game.ErrPlayerDead, "You are dead. Join again to start over."))
		return false, nil
	}

	p := c.player
	res := m.dispatcher.Dispatch(ctx, p, text)

	notices := game.Notices(res.Messages)
	m.resolver.Tick(p, res.Status, &notices)
	reason := m.resolver.CheckDeath(p, &notices)

	resp := CommandResponseData{
		Status:   res.Status,
		Command:  res.Command,
		Messages: notices,
		Player:   p.Public(),
	}
	kind := ""
	if res.Err != nil {
		resp.Error = errorData(res.Err)
		kind = resp.Error.Kind
	}
	if resp.Messages == nil {
		resp.Messages = []string{}
	}
	m.recorder.CommandProcessed(res.Command, res.Status, kind)
	m.send(ctx, connID, EventCommandResponse, resp)

	if reason != game.DeathNone {
		m.kill(ctx, c, reason)
		return false, nil
	}

	if res.Quit {
		m.disconnect(ctx, c, "quit")
		return true, nil
	}
	return false, nil
}

// kill ends the player's turn loop. The connection stays open and the name
// is released.
func (m *Manager) kill(ctx context.Context, c *connection, reason game.DeathReason) {
	c.state = stateDead
	m.updateRoster()
	m.recorder.PlayerDied(reason)
	m.sessionsChanged()
	m.save(ctx, c.player)

	slog.InfoContext(ctx, "player died", "conn", c.id, "name", c.player.Name, "reason", reason)
	m.broadcast(ctx, EventDeath, DeathData{
		Username:     c.player.Name,
		ConnectionID: c.id,
		Reason:       reason,
	})
}

// Chat relays a non-empty message from a joined player to every connection.
func (m *Manager) Chat(ctx context.Context, connID, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.conns[connID]
	if !ok {
		return fmt.Errorf("chat on unknown connection %q", connID)
	}
	if c.state != stateJoined {
		m.send(ctx, connID, EventChatRejected, ChatRejectedData{Error: "Join the game first."})
		return nil
	}
	if strings.TrimSpace(text) == "" {
		m.send(ctx, connID, EventChatRejected, ChatRejectedData{Error: "Message cannot be empty."})
		return nil
	}

	m.recorder.ChatRelayed()
	m.broadcast(ctx, EventChat, ChatData{Message: text, Username: c.player.Name})
	return nil
}

// Disconnect removes the connection. If it had a player, the player is
// saved and every remaining connection is told why it left.
func (m *Manager) Disconnect(ctx context.Context, connID, reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.conns[connID]
	if !ok {
		return
	}
	m.disconnect(ctx, c, reason)
}

func (m *Manager) disconnect(ctx context.Context, c *connection, reason string) {
	delete(m.conns, c.id)
	m.order = slices.DeleteFunc(m.order, func(id string) bool { return id == c.id })
	slog.InfoContext(ctx, "connection closed", "conn", c.id, "reason", reason)

	if c.player == nil {
		m.sessionsChanged()
		return
	}
	if c.state == stateJoined {
		m.save(ctx, c.player)
		m.updateRoster()
	}
	m.sessionsChanged()

	m.broadcast(ctx, EventPlayerDisconnect, DisconnectData{
		Username:     c.player.Name,
		ConnectionID: c.id,
		Reason:       reason,
	})
}

// Players returns the public state of every joined player, in connection
// order.
func (m *Manager) Players() []game.PublicState {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []game.PublicState
	for _, id := range m.order {
		if c := m.conns[id]; c.state == stateJoined {
			out = append(out, c.player.Public())
		}
	}
	return out
}

// Names returns the joined player names without taking the session lock.
func (m *Manager) Names() []string {
	return m.roster.Names()
}

// Tick queues a snapshot of every joined player.
func (m *Manager) Tick(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, id := range m.order {
		if c := m.conns[id]; c.state == stateJoined {
			m.save(ctx, c.player)
		}
	}
	return nil
}

// Start blocks until ctx is done, then disconnects everyone still here.
func (m *Manager) Start(ctx context.Context) error {
	<-ctx.Done()

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range slices.Clone(m.order) {
		m.disconnect(ctx, m.conns[id], "server shutdown")
	}
	return nil
}

func (m *Manager) save(ctx context.Context, p *game.Player) {
	if m.snapshots == nil {
		return
	}
	if err := m.snapshots.SavePlayer(ctx, p); err != nil {
		slog.WarnContext(ctx, "queueing player snapshot", "name", p.Name, "error", err)
	}
}

func (m *Manager) updateRoster() {
	var names []string
	for _, c := range m.conns {
		if c.state == stateJoined {
			names = append(names, c.player.Name)
		}
	}
	m.roster.set(names)
}

func (m *Manager) sessionsChanged() {
	joined := 0
	for _, c := range m.conns {
		if c.state == stateJoined {
			joined++
		}
	}
	m.recorder.SessionsChanged(len(m.conns), joined)
}

func (m *Manager) send(ctx context.Context, connID string, t EventType, data any) {
	b, err := EncodeEvent(t, data)
	if err != nil {
		slog.ErrorContext(ctx, "encoding event", "type", t, "error", err)
		return
	}
	if err := m.pub.Publish(connID, b); err != nil {
		slog.WarnContext(ctx, "publishing event", "conn", connID, "type", t, "error", err)
	}
}

func (m *Manager) sendError(ctx context.Context, connID string, err error) {
	m.send(ctx, connID, EventError, errorData(err))
}

// broadcast sends one event to every connection in the order they connected.
func (m *Manager) broadcast(ctx context.Context, t EventType, data any) {
	b, err := EncodeEvent(t, data)
	if err != nil {
		slog.ErrorContext(ctx, "encoding event", "type", t, "error", err)
		return
	}
	for _, id := range m.order {
		if err := m.pub.Publish(id, b); err != nil {
			slog.WarnContext(ctx, "publishing event", "conn", id, "type", t, "error", err)
		}
	}
}

func errorData(err error) *ErrorData {
	if ue, ok := commands.AsUserError(err); ok {
		return &ErrorData{Kind: game.KindName(ue), Message: ue.Message}
	}
	return &ErrorData{Kind: game.KindName(err), Message: "Something went wrong. Please try again."}
}
