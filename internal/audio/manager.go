package audio

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// DefaultSampleRate is used when Options leaves it zero.
const DefaultSampleRate = beep.SampleRate(44100)

// Options configures a SoundManager.
type Options struct {
	SampleRate   beep.SampleRate
	EffectVolume float64
	MusicVolume  float64
}

// DefaultOptions returns moderate volumes at 44.1 kHz.
func DefaultOptions() Options {
	return Options{
		SampleRate:   DefaultSampleRate,
		EffectVolume: 0.5,
		MusicVolume:  0.25,
	}
}

// SoundManager plays synthesized cues and music on the system speaker.
// Every method is safe to call before Initialize or after Cleanup; those
// calls do nothing.
type SoundManager struct {
	opts   Options
	logger *log.Logger

	mu          sync.Mutex
	mixer       *beep.Mixer
	music       *beep.Ctrl
	musicName   string
	initialized bool
	unknown     map[Cue]bool
}

// NewSoundManager creates a manager. Nothing is opened until Initialize.
func NewSoundManager(opts Options, logger *log.Logger) *SoundManager {
	if opts.SampleRate <= 0 {
		opts.SampleRate = DefaultSampleRate
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &SoundManager{
		opts:    opts,
		logger:  logger,
		mixer:   &beep.Mixer{},
		unknown: make(map[Cue]bool),
	}
}

// Initialize opens the speaker and starts the mixer.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	rate := sm.opts.SampleRate
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Play queues cue on the mixer. Unknown cues are logged once and skipped.
func (sm *SoundManager) Play(cue Cue) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	s := Synthesize(cue, sm.opts.SampleRate, sm.opts.EffectVolume)
	if s == nil {
		if !sm.unknown[cue] {
			sm.unknown[cue] = true
			sm.logger.Warn("unknown sound cue", "cue", cue)
		}
		return
	}

	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// PlayMusic starts the named track, replacing any current one. Playing the
// track that is already on is a no-op.
func (sm *SoundManager) PlayMusic(name string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	if sm.music != nil && sm.musicName == name && !sm.music.Paused {
		return
	}
	if name != MusicTheme {
		sm.logger.Warn("unknown music track", "name", name)
		return
	}

	speaker.Lock()
	if sm.music != nil {
		sm.music.Paused = true
		sm.music.Streamer = nil
	}
	sm.music = &beep.Ctrl{Streamer: withVolume(NewTheme(sm.opts.SampleRate), sm.opts.MusicVolume)}
	sm.musicName = name
	sm.mixer.Add(sm.music)
	speaker.Unlock()
}

// StopMusic silences the current track.
func (sm *SoundManager) StopMusic() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.music == nil {
		return
	}
	speaker.Lock()
	sm.music.Paused = true
	sm.music.Streamer = nil
	speaker.Unlock()
	sm.music = nil
	sm.musicName = ""
}

// Cleanup stops everything. The speaker itself stays open; beep offers no
// way to reopen it at another rate anyway.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	if sm.music != nil {
		sm.music.Paused = true
	}
	sm.mixer.Clear()
	speaker.Unlock()

	sm.music = nil
	sm.musicName = ""
	sm.initialized = false
}

// Close implements Player.
func (sm *SoundManager) Close() { sm.Cleanup() }

// Open returns a working speaker-backed Player, or Silent when muted or when
// the device cannot be opened. Failures are logged, never returned.
func Open(muted bool, opts Options, logger *log.Logger) Player {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if muted {
		logger.Debug("audio muted")
		return Silent{}
	}
	sm := NewSoundManager(opts, logger)
	if err := sm.Initialize(); err != nil {
		logger.Warn("audio unavailable, continuing silently", "error", err)
		return Silent{}
	}
	return sm
}
