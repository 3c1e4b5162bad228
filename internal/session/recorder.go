package session

import "github.com/pixil98/go-rpg/internal/game"

// Recorder is told about session activity. It backs the metrics endpoint.
type Recorder interface {
	CommandProcessed(command string, status game.Status, kind string)
	PlayerJoined(resumed bool)
	JoinRejected()
	PlayerDied(reason game.DeathReason)
	ChatRelayed()
	SessionsChanged(connected, joined int)
}

type nopRecorder struct{}

func (nopRecorder) CommandProcessed(string, game.Status, string) {}
func (nopRecorder) PlayerJoined(bool)                            {}
func (nopRecorder) JoinRejected()                                {}
func (nopRecorder) PlayerDied(game.DeathReason)                  {}
func (nopRecorder) ChatRelayed()                                 {}
func (nopRecorder) SessionsChanged(int, int)                     {}
