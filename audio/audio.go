// Package audio plays the short tone that accompanies the stimulus.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"ReactionTest/config"
)

// SampleRate is the speaker sample rate.
const SampleRate beep.SampleRate = 44100

// Player renders the cue into a buffer once and replays it on demand.
type Player struct {
	log *zap.Logger

	mu      sync.Mutex
	enabled bool
	ready   bool
	cue     *beep.Buffer
	volume  float64
}

// NewPlayer initializes the speaker. If that fails the player stays usable
// but silent.
func NewPlayer(cfg config.AudioConfig, log *zap.Logger) *Player {
	p := &Player{log: log}
	if err := speaker.Init(SampleRate, SampleRate.N(time.Second/10)); err != nil {
		log.Warn("Audio disabled: failed to initialize speaker", zap.Error(err))
	} else {
		p.ready = true
	}
	if err := p.Apply(cfg); err != nil {
		log.Warn("Audio disabled: bad cue settings", zap.Error(err))
	}
	return p
}

// Apply rebuilds the cue from cfg. Used at startup and on config reload.
func (p *Player) Apply(cfg config.AudioConfig) error {
	cue, err := NewCue(cfg.FrequencyHz, time.Duration(cfg.DurationMs)*time.Millisecond)

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.enabled = false
		return err
	}
	p.cue = cue
	p.volume = cfg.Volume
	p.enabled = cfg.Enabled
	return nil
}

// SetEnabled mutes or unmutes the cue.
func (p *Player) SetEnabled(enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.enabled = enabled
}

// Enabled reports whether Play will produce sound.
func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled && p.ready && p.cue != nil
}

// Play starts the cue without blocking.
func (p *Player) Play() {
	p.mu.Lock()
	if !p.enabled || !p.ready || p.cue == nil {
		p.mu.Unlock()
		return
	}
	cue := p.cue
	volume := p.volume
	p.mu.Unlock()

	speaker.Play(&effects.Volume{
		Streamer: cue.Streamer(0, cue.Len()),
		Base:     2,
		Volume:   volume,
		Silent:   false,
	})
}

// NewCue synthesizes a sine tone of the given frequency and length.
func NewCue(freq float64, d time.Duration) (*beep.Buffer, error) {
	if d <= 0 {
		return nil, fmt.Errorf("cue duration must be positive, got %v", d)
	}
	tone, err := generators.SineTone(SampleRate, freq)
	if err != nil {
		return nil, fmt.Errorf("could not create tone: %w", err)
	}

	format := beep.Format{SampleRate: SampleRate, NumChannels: 2, Precision: 2}
	buffer := beep.NewBuffer(format)
	buffer.Append(beep.Take(SampleRate.N(d), tone))
	return buffer, nil
}
