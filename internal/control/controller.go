// Package control orchestrates the feed store against the paginated data
// source: the initial page load, near-end triggered fetches, dedup append,
// exhaustion, and registration of newly arrived items with the viewport
// observer.
//
// All entry points must be called from the UI event loop. The fetch itself
// runs off-loop and re-enters through a FetchDone message; at most one
// fetch is ever in flight.
package control

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/thuanng/reel/internal/feed"
	"github.com/thuanng/reel/internal/viewport"
)

// FetchDone reports completion of a page fetch. The shell forwards it to
// HandleFetchDone.
type FetchDone struct {
	Cursor string
	Page   feed.Page
	Err    error
}

// RegionFunc returns the rendered region for the item at a feed position.
// Supplied by the render layer so the controller can register new items
// with the viewport observer.
type RegionFunc func(index int) viewport.Region

// Options configure a Controller.
type Options struct {
	// Threshold is the visible fraction items are registered with.
	Threshold float64
	// Logger receives fetch lifecycle events; nil disables logging.
	Logger *log.Logger
}

// DefaultThreshold matches the original feed's intersection threshold: an
// item counts as visible when 60% of it is inside the viewport.
const DefaultThreshold = 0.6

// Controller drives pagination for one feed.
type Controller struct {
	ctx       context.Context
	store     *feed.Store
	source    feed.Source
	observer  *viewport.Observer
	regionFor RegionFunc
	send      func(tea.Msg)
	log       *log.Logger

	threshold float64
	inFlight  bool

	// launch runs an asynchronous fetch. Overridable for tests.
	launch func(fn func())
}

// New creates a Controller. send receives FetchDone messages from
// asynchronous fetches and must deliver them back to HandleFetchDone on the
// event loop.
func New(ctx context.Context, store *feed.Store, source feed.Source, observer *viewport.Observer, regionFor RegionFunc, send func(tea.Msg), opts Options) *Controller {
	threshold := opts.Threshold
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	return &Controller{
		ctx:       ctx,
		store:     store,
		source:    source,
		observer:  observer,
		regionFor: regionFor,
		send:      send,
		log:       opts.Logger,
		threshold: threshold,
		launch:    func(fn func()) { go fn() },
	}
}

// Init fetches the first page unconditionally. Call once at feed mount.
func (c *Controller) Init() {
	c.startFetch()
}

// NearEnd reports that the scroll position crossed into the near-end zone.
// Ignored while a fetch is already in flight or after exhaustion, so a
// burst of scroll events issues at most one fetch; after a failed fetch the
// next crossing retries the same page.
func (c *Controller) NearEnd() {
	if c.inFlight || !c.store.HasMore() {
		return
	}
	c.startFetch()
}

// Loading reports whether a fetch is in flight.
func (c *Controller) Loading() bool { return c.inFlight }

func (c *Controller) startFetch() {
	c.inFlight = true
	cursor := c.store.Cursor()
	if c.log != nil {
		c.log.Debug("fetching page", "cursor", cursor)
	}
	c.launch(func() {
		page, err := c.source.FetchPage(c.ctx, cursor)
		c.send(FetchDone{Cursor: cursor, Page: page, Err: err})
	})
}

// HandleFetchDone folds a completed fetch back into the store and returns
// the items actually appended, in order, so the shell can mount them.
//
// On error the cursor and hasMore are untouched so a later NearEnd retries
// the same page; the error is left on the message for the shell to surface.
// A page with zero net-new items, or an explicit end signal, exhausts the
// feed permanently.
func (c *Controller) HandleFetchDone(msg FetchDone) []feed.Item {
	c.inFlight = false

	if msg.Cursor != c.store.Cursor() {
		// Completion for a superseded cursor. Cannot happen while fetches
		// are serialized, but appending would double-advance the cursor.
		return nil
	}
	if msg.Err != nil {
		if c.log != nil {
			c.log.Warn("page fetch failed", "cursor", msg.Cursor, "err", msg.Err)
		}
		return nil
	}

	before := c.store.Len()
	appended := c.store.Append(msg.Page.Items)
	if appended == 0 || msg.Page.End {
		c.store.Exhaust()
		if c.log != nil {
			c.log.Info("feed exhausted", "items", c.store.Len())
		}
	}
	if appended == 0 {
		return nil
	}
	c.store.AdvanceCursor(msg.Page.NextCursor)

	// Register the new tail with the viewport observer.
	items := make([]feed.Item, 0, appended)
	for i := before; i < c.store.Len(); i++ {
		item, _ := c.store.At(i)
		items = append(items, item)
		c.observer.Register(item.ID, c.regionFor(i), c.threshold)
	}
	if c.log != nil {
		c.log.Debug("page appended", "cursor", msg.Cursor, "new", appended)
	}
	return items
}
