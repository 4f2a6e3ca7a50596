// Package audio plays the game's sound cues and music through beep.
// Every sound is synthesized; there are no sample files to ship or lose.
package audio

import "github.com/vovakirdan/chorpolice/internal/core"

// Cue names a short sound effect.
type Cue string

const (
	CueJump    Cue = "jump"
	CueCoin    Cue = "coin"
	CueStomp   Cue = "stomp"
	CuePowerUp Cue = "powerup"
	CueCaught  Cue = "caught"
	CueWin     Cue = "win"
)

// MusicTheme is the looping background track.
const MusicTheme = "theme"

// Cues lists every known cue.
func Cues() []Cue {
	return []Cue{CueJump, CueCoin, CueStomp, CuePowerUp, CueCaught, CueWin}
}

// CueForEvent maps a game event to the cue it should sound.
func CueForEvent(e core.Event) (Cue, bool) {
	switch e {
	case core.EventJump:
		return CueJump, true
	case core.EventCoin:
		return CueCoin, true
	case core.EventStomp:
		return CueStomp, true
	case core.EventPowerUp:
		return CuePowerUp, true
	case core.EventCaught, core.EventFell:
		return CueCaught, true
	case core.EventWin:
		return CueWin, true
	default:
		return "", false
	}
}

// Player is what the game loop talks to.
type Player interface {
	Play(cue Cue)
	PlayMusic(name string)
	StopMusic()
	Close()
}

// PlayEvents plays the cue of every event that has one.
func PlayEvents(p Player, events []core.Event) {
	for _, e := range events {
		if cue, ok := CueForEvent(e); ok {
			p.Play(cue)
		}
	}
}

// Silent is a Player that does nothing. Used when muted or when no audio
// device is available.
type Silent struct{}

func (Silent) Play(Cue)         {}
func (Silent) PlayMusic(string) {}
func (Silent) StopMusic()       {}
func (Silent) Close()           {}
