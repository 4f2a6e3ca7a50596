package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Target frames per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// Phase is the game mode of a session.
type Phase int

const (
	PhaseStart Phase = iota
	PhasePlaying
	PhaseGameOver
	PhaseWin
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "start"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game_over"
	case PhaseWin:
		return "win"
	default:
		return "unknown"
	}
}

// Finished reports whether the phase ends a session.
func (p Phase) Finished() bool {
	return p == PhaseGameOver || p == PhaseWin
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Phase     Phase
	Score     int
	HighScore int
	Paused    bool
}

// GameOver reports whether the session has ended, won or lost.
func (s GameState) GameOver() bool {
	return s.Phase.Finished()
}

// Event is something noteworthy that happened during a step.
// The platform maps events to sounds; games never play audio themselves.
type Event int

const (
	EventStart Event = iota
	EventJump
	EventCoin
	EventStomp
	EventPowerUp
	EventCaught
	EventFell
	EventWin
)

// String returns the event name.
func (e Event) String() string {
	switch e {
	case EventStart:
		return "start"
	case EventJump:
		return "jump"
	case EventCoin:
		return "coin"
	case EventStomp:
		return "stomp"
	case EventPowerUp:
		return "powerup"
	case EventCaught:
		return "caught"
	case EventFell:
		return "fell"
	case EventWin:
		return "win"
	default:
		return "unknown"
	}
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}
