package media

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrAutoplayBlocked is returned by SimPlayer.Play when the simulated
// autoplay policy declines to start unmuted playback without a prior user
// gesture. The item stays paused; a later explicit gesture is the recovery.
var ErrAutoplayBlocked = errors.New("autoplay blocked: unmuted playback needs a user gesture")

// SimPlayer is a reference Handle for terminal rendering. It keeps a
// position clock that loops at the item duration and mimics the browser
// autoplay rule: muted playback always starts, unmuted playback is rejected
// until a user gesture has been seen.
//
// Play is called off the event loop while Pause/SetMuted arrive from it, so
// SimPlayer is internally locked.
type SimPlayer struct {
	mu          sync.Mutex
	paused      bool
	muted       bool
	pos         time.Duration // position at lastStart
	lastStart   time.Time
	duration    time.Duration
	buffering   time.Duration // artificial Play latency
	policy      bool          // enforce the unmuted-autoplay rejection
	gestureSeen bool
}

// SimOption configures a SimPlayer.
type SimOption func(*SimPlayer)

// WithBuffering sets an artificial delay before Play resolves.
func WithBuffering(d time.Duration) SimOption {
	return func(p *SimPlayer) { p.buffering = d }
}

// WithAutoplayPolicy enables rejection of unmuted playback until a gesture.
func WithAutoplayPolicy() SimOption {
	return func(p *SimPlayer) { p.policy = true }
}

// NewSimPlayer creates a paused, muted player for an item of the given
// duration. A non-positive duration defaults to 15 seconds.
func NewSimPlayer(duration time.Duration, opts ...SimOption) *SimPlayer {
	if duration <= 0 {
		duration = 15 * time.Second
	}
	p := &SimPlayer{paused: true, muted: true, duration: duration}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Play starts playback after the configured buffering delay. Respects
// context cancellation while buffering.
func (p *SimPlayer) Play(ctx context.Context) error {
	p.mu.Lock()
	delay := p.buffering
	p.mu.Unlock()

	if delay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.policy && !p.muted && !p.gestureSeen {
		return ErrAutoplayBlocked
	}
	if !p.paused {
		return nil
	}
	p.paused = false
	p.lastStart = time.Now()
	return nil
}

// Pause stops playback, freezing the position clock.
func (p *SimPlayer) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.paused {
		return
	}
	p.pos = p.positionLocked()
	p.paused = true
}

// SetMuted sets the mute state.
func (p *SimPlayer) SetMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = muted
}

// Paused reports whether the player is paused.
func (p *SimPlayer) Paused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paused
}

// Muted reports the mute state.
func (p *SimPlayer) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// UserGesture records an explicit user interaction. Latches: once seen, the
// autoplay policy never rejects again, matching browser behaviour.
func (p *SimPlayer) UserGesture() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gestureSeen = true
}

// Position returns the current playback position, looping at the duration.
func (p *SimPlayer) Position() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.positionLocked()
}

// Duration returns the item duration.
func (p *SimPlayer) Duration() time.Duration {
	return p.duration
}

func (p *SimPlayer) positionLocked() time.Duration {
	pos := p.pos
	if !p.paused {
		pos += time.Since(p.lastStart)
	}
	return pos % p.duration
}
