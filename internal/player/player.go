// Package player runs the line based client loop shared by the telnet and
// ssh listeners.
package player

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/pixil98/go-rpg/internal/display"
	"github.com/pixil98/go-rpg/internal/game"
	"github.com/pixil98/go-rpg/internal/session"
)

const namePrompt = "By what name do you wish to be known? "

// replyWait bounds how long a line waits for its answer before the prompt is
// drawn anyway.
const replyWait = time.Second

// Session is the part of the session manager a line client drives.
type Session interface {
	Join(ctx context.Context, connID, name string) error
	Command(ctx context.Context, connID, text string) (bool, error)
	Chat(ctx context.Context, connID, text string) error
}

// Player connects one terminal to one session connection. Events arrive on
// msgs already encoded; input lines are turned into joins, chats and
// commands.
type Player struct {
	connID   string
	conn     io.ReadWriter
	session  Session
	renderer *display.Renderer
	msgs     <-chan []byte

	replyWait time.Duration

	joined bool
	state  *game.PublicState
}

func New(connID string, conn io.ReadWriter, s Session, msgs <-chan []byte, width int) (*Player, error) {
	r, err := display.NewRenderer(connID, width)
	if err != nil {
		return nil, fmt.Errorf("creating renderer: %w", err)
	}
	return &Player{
		connID:   connID,
		conn:     conn,
		session:  s,
		renderer: r,
		msgs:     msgs,

		replyWait: replyWait,
	}, nil
}

// Play runs until the connection closes, the player quits or ctx is done.
func (p *Player) Play(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)

	inputChan := make(chan string)
	inputErrChan := make(chan error, 1)
	go func() {
		defer close(inputChan)
		scanner := bufio.NewScanner(p.conn)
		for scanner.Scan() {
			select {
			case inputChan <- scanner.Text():
			case <-done:
				return
			}
		}
		inputErrChan <- scanner.Err()
	}()

	if err := p.write("Welcome to the wilds!\n" + namePrompt); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case msg := <-p.msgs:
			if err := p.show(msg); err != nil {
				return err
			}
			if err := p.prompt(); err != nil {
				return err
			}

		case line, ok := <-inputChan:
			if !ok {
				select {
				case err := <-inputErrChan:
					return err
				default:
					return nil
				}
			}

			answered, quit, err := p.handle(ctx, strings.TrimSpace(line))
			if err != nil {
				return err
			}
			if err := p.await(ctx, answered); err != nil {
				return err
			}
			if quit {
				return p.write("Goodbye!\n")
			}
			if err := p.prompt(); err != nil {
				return err
			}
		}
	}
}

// answers reports whether an event is the session's reply to the last line.
type answers func(e *session.Event) bool

func (p *Player) handle(ctx context.Context, line string) (answers, bool, error) {
	if line == "" {
		return nil, false, nil
	}

	if !p.joined {
		err := p.session.Join(ctx, p.connID, line)
		switch {
		case err == nil:
			p.joined = true
			p.state = nil
		case errors.Is(err, game.ErrUsernameTaken), errors.Is(err, game.ErrInvalidArgument):
			// Already reported to the connection as an event.
		default:
			return nil, false, fmt.Errorf("joining: %w", err)
		}
		return p.joinAnswer, false, nil
	}

	if msg, ok := chatMessage(line); ok {
		return chatAnswer, false, p.session.Chat(ctx, p.connID, msg)
	}
	quit, err := p.session.Command(ctx, p.connID, line)
	return commandAnswer, quit, err
}

func (p *Player) joinAnswer(e *session.Event) bool {
	switch e.Type {
	case session.EventUsernameTaken, session.EventError:
		return true
	case session.EventJoin:
		var ps game.PublicState
		return json.Unmarshal(e.Data, &ps) == nil && ps.ConnID == p.connID
	}
	return false
}

func chatAnswer(e *session.Event) bool {
	return e.Type == session.EventChat || e.Type == session.EventChatRejected || e.Type == session.EventError
}

func commandAnswer(e *session.Event) bool {
	return e.Type == session.EventCommandResponse || e.Type == session.EventError
}

// chatMessage recognises "say <msg>" and "'<msg>".
func chatMessage(line string) (string, bool) {
	if rest, ok := strings.CutPrefix(line, "'"); ok {
		return strings.TrimSpace(rest), true
	}
	name, rest, _ := strings.Cut(line, " ")
	if strings.EqualFold(name, "say") {
		return strings.TrimSpace(rest), true
	}
	return "", false
}

// await shows events until one answers the last line or the reply wait runs
// out, then shows whatever else is already queued. Events travel through the
// broker, so the answer usually lands after the session call has returned.
func (p *Player) await(ctx context.Context, answered answers) error {
	if answered == nil {
		return p.drain()
	}

	timer := time.NewTimer(p.replyWait)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			slog.DebugContext(ctx, "no reply before prompt", "conn", p.connID)
			return p.drain()
		case msg := <-p.msgs:
			if err := p.show(msg); err != nil {
				return err
			}
			if e, err := session.DecodeEvent(msg); err == nil && answered(e) {
				return p.drain()
			}
		}
	}
}

func (p *Player) drain() error {
	for {
		select {
		case msg := <-p.msgs:
			if err := p.show(msg); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (p *Player) show(msg []byte) error {
	p.track(msg)

	text, state, err := p.renderer.Render(msg)
	if err != nil {
		slog.Warn("rendering event", "conn", p.connID, "error", err)
		return nil
	}
	if state != nil {
		p.state = state
	}
	if text == "" {
		return nil
	}
	return p.write("\n" + text + "\n")
}

// track follows the events that end this connection's life as a player.
func (p *Player) track(msg []byte) {
	e, err := session.DecodeEvent(msg)
	if err != nil || e.Type != session.EventDeath {
		return
	}
	var d session.DeathData
	if err := json.Unmarshal(e.Data, &d); err != nil {
		return
	}
	if d.ConnectionID == p.connID {
		p.joined = false
		p.state = nil
	}
}

func (p *Player) prompt() error {
	if !p.joined {
		return p.write(namePrompt)
	}
	return p.write(display.Prompt(p.state))
}

func (p *Player) write(s string) error {
	_, err := p.conn.Write([]byte(s))
	return err
}
