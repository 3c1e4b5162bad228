// Package display turns session events into text for line based clients.
package display

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/pixil98/go-rpg/internal/game"
	"github.com/pixil98/go-rpg/internal/session"
)

var templateFuncs = func() template.FuncMap {
	fm := sprig.TxtFuncMap()
	fm["capitalize"] = Capitalize
	return fm
}()

var eventTemplates = map[session.EventType]string{
	session.EventJoin: `{{ if .Self }}Welcome, {{ .Data.Name }}! Type 'help' for a list of commands.` +
		`{{ else }}{{ .Data.Name }} has joined the game.{{ end }}`,
	session.EventUsernameTaken: `The name {{ .Data.Name | quote }} is already taken. Choose another name:`,
	session.EventCommandResponse: `{{ .Data.Messages | join "\n" }}` +
		`{{ with .Data.Error }}{{ if $.Data.Messages }}{{ "\n" }}{{ end }}{{ .Message }}{{ end }}`,
	session.EventDeath: `{{ if .Self }}You {{ else }}{{ .Data.Username }} {{ end }}` +
		`{{ if eq (toString .Data.Reason) "starvation" }}starved to death{{ else if .Self }}were killed{{ else }}was killed{{ end }}.` +
		`{{ if .Self }} Enter a name to play again:{{ end }}`,
	session.EventChat:             `[{{ .Data.Username }}] {{ .Data.Message }}`,
	session.EventChatRejected:     `{{ .Data.Error }}`,
	session.EventPlayerDisconnect: `{{ .Data.Username }} left the game ({{ .Data.Reason | default "disconnected" }}).`,
	session.EventError:            `{{ .Data.Message | capitalize }}`,
}

// Renderer formats events from the point of view of one connection.
type Renderer struct {
	self      string
	width     int
	templates map[session.EventType]*template.Template
}

// NewRenderer parses the event templates for the connection self.
func NewRenderer(self string, width int) (*Renderer, error) {
	r := &Renderer{
		self:      self,
		width:     width,
		templates: make(map[session.EventType]*template.Template, len(eventTemplates)),
	}
	for t, text := range eventTemplates {
		tmpl, err := template.New(string(t)).Funcs(templateFuncs).Parse(text)
		if err != nil {
			return nil, fmt.Errorf("parsing %s template: %w", t, err)
		}
		r.templates[t] = tmpl
	}
	return r, nil
}

type view struct {
	Self bool
	Data any
}

// Render decodes an encoded event and returns the wrapped text to show. It
// also returns the player state carried by command responses and by the
// viewer's own join, if any.
func (r *Renderer) Render(b []byte) (string, *game.PublicState, error) {
	e, err := session.DecodeEvent(b)
	if err != nil {
		return "", nil, err
	}
	tmpl, ok := r.templates[e.Type]
	if !ok {
		return "", nil, fmt.Errorf("no template for event %q", e.Type)
	}

	v := view{}
	var state *game.PublicState
	switch e.Type {
	case session.EventJoin:
		var d game.PublicState
		err = json.Unmarshal(e.Data, &d)
		v.Self, v.Data = d.ConnID == r.self, d
		if v.Self {
			state = &d
		}
	case session.EventUsernameTaken:
		var d session.UsernameTakenData
		err = json.Unmarshal(e.Data, &d)
		v.Data = d
	case session.EventCommandResponse:
		var d session.CommandResponseData
		err = json.Unmarshal(e.Data, &d)
		v.Data, state = d, &d.Player
	case session.EventDeath:
		var d session.DeathData
		err = json.Unmarshal(e.Data, &d)
		v.Self, v.Data = d.ConnectionID == r.self, d
	case session.EventChat:
		var d session.ChatData
		err = json.Unmarshal(e.Data, &d)
		v.Data = d
	case session.EventChatRejected:
		var d session.ChatRejectedData
		err = json.Unmarshal(e.Data, &d)
		v.Data = d
	case session.EventPlayerDisconnect:
		var d session.DisconnectData
		err = json.Unmarshal(e.Data, &d)
		v.Data = d
	case session.EventError:
		var d session.ErrorData
		err = json.Unmarshal(e.Data, &d)
		v.Data = d
	}
	if err != nil {
		return "", nil, fmt.Errorf("decoding %s payload: %w", e.Type, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, v); err != nil {
		return "", nil, fmt.Errorf("executing %s template: %w", e.Type, err)
	}
	return Wrap(strings.TrimRight(buf.String(), "\n"), r.width), state, nil
}

// Prompt is the status line shown before each input.
func Prompt(ps *game.PublicState) string {
	if ps == nil {
		return "> "
	}
	prompt := fmt.Sprintf("[%d/%dHP %d/%d hunger", ps.Health, game.MaxVital, ps.Hunger, game.MaxVital)
	if ps.Opponent != nil {
		prompt += fmt.Sprintf(" | %s %dHP", ps.Opponent.Name, ps.Opponent.Health)
	}
	return prompt + "] > "
}
