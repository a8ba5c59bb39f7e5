// Package playback decides which single feed item is playing.
//
// The Coordinator is the one owner of the feed-wide playback state: the
// active item, the mute flag, and the user-pause suppression. Individual
// items never enforce any of this themselves. It consumes visibility
// crossings from the viewport observer and explicit user commands, and
// drives the per-item media handles.
//
// All entry points must be called from the UI event loop; the Coordinator
// carries no locks. The only asynchronous edge is Play, which runs off-loop
// and re-enters through a PlayDone message. A generation counter stamps
// every play attempt so completions that resolve after the world has moved
// on are recognised and discarded.
package playback

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/thuanng/reel/internal/feed"
	"github.com/thuanng/reel/internal/media"
	"github.com/thuanng/reel/internal/viewport"
)

// Order resolves feed ordering for keyboard navigation.
type Order interface {
	Neighbor(id string, delta int) (feed.Item, bool)
}

// Options configure a Coordinator.
type Options struct {
	// StartMuted sets the initial feed-wide mute flag.
	StartMuted bool
	// KeepSuppressionOnUnmount keeps the user-pause suppression for an item
	// across unmount/remount. Default false: suppression clears on unmount.
	KeepSuppressionOnUnmount bool
	// Logger receives playback decisions; nil disables logging.
	Logger *log.Logger
}

// Coordinator is the playback state machine.
type Coordinator struct {
	ctx     context.Context
	handles *media.Registry
	order   Order
	send    func(tea.Msg)
	log     *log.Logger

	muted        bool
	activeID     string
	userPausedID string
	gen          uint64

	keepSuppression bool

	// launch runs an asynchronous play attempt. Overridable for tests.
	launch func(fn func())
}

// New creates a Coordinator. send receives PlayDone messages from
// asynchronous play attempts and must deliver them back to HandlePlayDone
// on the event loop (program.Send in the shell).
func New(ctx context.Context, handles *media.Registry, order Order, send func(tea.Msg), opts Options) *Coordinator {
	return &Coordinator{
		ctx:             ctx,
		handles:         handles,
		order:           order,
		send:            send,
		log:             opts.Logger,
		muted:           opts.StartMuted,
		keepSuppression: opts.KeepSuppressionOnUnmount,
		launch:          func(fn func()) { go fn() },
	}
}

// ActiveID returns the id of the single item designated to play, or "".
func (c *Coordinator) ActiveID() string { return c.activeID }

// Muted returns the feed-wide mute flag.
func (c *Coordinator) Muted() bool { return c.muted }

// UserPausedID returns the id the user explicitly paused, or "".
func (c *Coordinator) UserPausedID() string { return c.userPausedID }

// HandleCrossing consumes one visibility event from the viewport observer.
// An item becoming visible claims the active slot unless the user paused
// that specific item; an item leaving the viewport changes nothing, the
// incoming item's own crossing claims the slot.
func (c *Coordinator) HandleCrossing(cr viewport.Crossing) {
	if !cr.Visible {
		return
	}
	if c.userPausedID == cr.ID {
		// Suppressed: the user paused this item and has not re-engaged.
		return
	}
	if c.activeID == cr.ID {
		return
	}
	c.activate(cr.ID)
}

// Select toggles an item like a tap on the video surface: pause it when it
// is the active item, otherwise play it.
func (c *Coordinator) Select(id string) {
	if c.activeID == id {
		c.pauseByUser(id)
		return
	}
	c.playByUser(id)
}

// TogglePlay handles the explicit play/pause control for an item. Same
// semantics as Select.
func (c *Coordinator) TogglePlay(id string) { c.Select(id) }

// ToggleMute flips the feed-wide mute flag and applies it to the active
// handle. Inactive items pick the flag up when they next become active.
func (c *Coordinator) ToggleMute() {
	c.muted = !c.muted
	if c.activeID == "" {
		return
	}
	if h, ok := c.handles.Get(c.activeID); ok {
		h.SetMuted(c.muted)
	}
}

// Next activates the item after the active one. Returns the id the render
// layer should scroll into center view, or "" when nothing changed.
func (c *Coordinator) Next() string { return c.navigate(1) }

// Prev activates the item before the active one. Returns the id to scroll
// to, or "" when nothing changed.
func (c *Coordinator) Prev() string { return c.navigate(-1) }

func (c *Coordinator) navigate(delta int) string {
	if c.activeID == "" {
		return ""
	}
	item, ok := c.order.Neighbor(c.activeID, delta)
	if !ok {
		return ""
	}
	c.playByUser(item.ID)
	return item.ID
}

// HandleUnmount must be called when an item's rendered region is discarded.
// Clears the pause suppression (unless configured to keep it) so an item
// with the same id is not permanently stuck, and releases the active slot
// when the unmounted item held it.
func (c *Coordinator) HandleUnmount(id string) {
	if c.userPausedID == id && !c.keepSuppression {
		c.userPausedID = ""
	}
	if c.activeID != id {
		return
	}
	c.gen++ // invalidate any in-flight play
	if h, ok := c.handles.Get(id); ok {
		h.Pause()
	}
	c.activeID = ""
}

// HandlePlayDone reconciles a resolved play attempt. Stale completions are
// identified by generation and identity, and their effect is compensated:
// if the item started playing but is no longer the intended active item, it
// is paused again immediately.
func (c *Coordinator) HandlePlayDone(msg PlayDone) {
	if msg.Gen != c.gen || msg.ID != c.activeID {
		if msg.Err == nil && msg.ID != c.activeID {
			if h, ok := c.handles.Get(msg.ID); ok {
				h.Pause()
			}
		}
		return
	}
	if msg.Err != nil {
		// Environment declined playback. The item stays paused but keeps
		// the active slot: a later user gesture is the recovery path.
		if c.log != nil {
			c.log.Warn("playback rejected", "id", msg.ID, "err", msg.Err)
		}
	}
}

// pauseByUser records an explicit pause of id. The item loses the active
// slot and automatic visibility-driven activation is suppressed for it
// until the user re-engages.
func (c *Coordinator) pauseByUser(id string) {
	c.userPausedID = id
	if c.activeID == id {
		c.activeID = ""
		c.gen++ // a play still in flight for this item must not undo the pause
	}
	if h, ok := c.handles.Get(id); ok {
		h.Pause()
	}
	if c.log != nil {
		c.log.Debug("user paused", "id", id)
	}
}

// playByUser starts id on the explicit-play path, clearing any suppression.
func (c *Coordinator) playByUser(id string) {
	c.userPausedID = ""
	c.activate(id)
}

// activate makes id the single active item: the previous active handle is
// paused synchronously, the mute flag is carried over, and an asynchronous
// play attempt is launched stamped with a fresh generation.
func (c *Coordinator) activate(id string) {
	h, ok := c.handles.Get(id)
	if !ok {
		if c.log != nil {
			c.log.Warn("no handle for item", "id", id)
		}
		return
	}
	if c.activeID != "" && c.activeID != id {
		if prev, ok := c.handles.Get(c.activeID); ok {
			prev.Pause()
		}
	}
	c.activeID = id
	c.gen++
	gen := c.gen

	h.SetMuted(c.muted)
	c.launch(func() {
		err := h.Play(c.ctx)
		c.send(PlayDone{ID: id, Gen: gen, Err: err})
	})
}
