package ui

import (
	"io"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/thuanng/reel/internal/control"
	"github.com/thuanng/reel/internal/feed"
	"github.com/thuanng/reel/internal/media"
	"github.com/thuanng/reel/internal/playback"
	"github.com/thuanng/reel/internal/viewport"
)

// AppConfig wires the app model to the rest of the program. All fields are
// required except Logger.
type AppConfig struct {
	Store       *feed.Store
	Controller  *control.Controller
	Coordinator *playback.Coordinator
	Observer    *viewport.Observer
	Handles     *media.Registry
	NewHandle   func(feed.Item) media.Handle

	// Threshold is the visible-fraction cutoff used when registering
	// cards with the observer.
	Threshold float64

	// DiscardMargin is how many document rows past the visible card a
	// mounted player is kept alive before being torn down.
	DiscardMargin int

	Logger *log.Logger
}

// App is the root bubbletea model. It owns only presentation state; feed
// order, playback and fetching live in the components it delegates to.
type App struct {
	cfg    AppConfig
	layout *Layout
	log    *log.Logger

	cursor int
	width  int
	height int
	ready  bool

	notice    string
	noticeSeq int

	liked    map[string]bool
	disliked map[string]bool
	mounted  map[string]bool

	spin spinner.Model
}

// NewApp builds the root model.
func NewApp(cfg AppConfig, layout *Layout) *App {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &App{
		cfg:      cfg,
		layout:   layout,
		log:      logger,
		liked:    make(map[string]bool),
		disliked: make(map[string]bool),
		mounted:  make(map[string]bool),
		spin:     sp,
	}
}

func (a *App) Init() tea.Cmd {
	a.cfg.Controller.Init()
	return tea.Batch(a.spin.Tick, tick())
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.layout.Resize(msg.Height - 2)
		a.ready = true
		a.reregisterAll()
		a.syncMounts()
		a.applyViewport()
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case playback.PlayDone:
		a.cfg.Coordinator.HandlePlayDone(msg)
		return a, nil

	case control.FetchDone:
		appended := a.cfg.Controller.HandleFetchDone(msg)
		if msg.Err != nil {
			return a, a.showNotice("Couldn't load more videos. Scroll to retry.")
		}
		if len(appended) > 0 {
			a.syncMounts()
			a.applyViewport()
		}
		return a, nil

	case tickMsg:
		return a, tick()

	case noticeExpiredMsg:
		if msg.seq == a.noticeSeq {
			a.notice = ""
		}
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit

	case "j", "down":
		a.navigate(1)
		return a, nil

	case "k", "up":
		a.navigate(-1)
		return a, nil

	case "g":
		a.setCursor(0)
		return a, nil

	case "G":
		a.setCursor(a.cfg.Store.Len() - 1)
		return a, nil

	case " ":
		id := a.focusedID()
		if id != "" {
			a.gesture(id)
			a.cfg.Coordinator.TogglePlay(id)
		}
		return a, nil

	case "enter":
		id := a.focusedID()
		if id != "" {
			a.gesture(id)
			a.cfg.Coordinator.Select(id)
		}
		return a, nil

	case "m":
		id := a.focusedID()
		a.gesture(id)
		a.cfg.Coordinator.ToggleMute()
		return a, nil

	case "l":
		id := a.focusedID()
		if id != "" {
			a.liked[id] = !a.liked[id]
			if a.liked[id] {
				delete(a.disliked, id)
			}
		}
		return a, nil

	case "d":
		id := a.focusedID()
		if id == "" {
			return a, nil
		}
		a.disliked[id] = !a.disliked[id]
		if a.disliked[id] {
			delete(a.liked, id)
			return a, a.showNotice("Thanks for the feedback")
		}
		return a, nil

	case "s":
		item, ok := a.cfg.Store.At(a.cursor)
		if !ok {
			return a, nil
		}
		if err := clipboard.WriteAll(item.MediaRef); err != nil {
			// No clipboard in this terminal; show the link instead.
			a.log.Warn("clipboard write failed", "err", err)
			return a, a.showNotice("Share: " + item.MediaRef)
		}
		return a, a.showNotice("Link copied to clipboard")
	}
	return a, nil
}

// navigate scrolls one card in the given direction. The gesture lands on
// the card being scrolled to, and before the coordinator launches its play
// attempt, so an unmuted target is not rejected by the autoplay gate.
func (a *App) navigate(delta int) {
	if item, ok := a.cfg.Store.At(a.cursor + delta); ok {
		a.gesture(item.ID)
	}
	var id string
	if delta > 0 {
		id = a.cfg.Coordinator.Next()
	} else {
		id = a.cfg.Coordinator.Prev()
	}
	if id != "" {
		a.moveCursorTo(id)
	} else {
		a.moveCursor(delta)
	}
}

// gesture marks a user interaction on a player, which unlocks unmuted
// autoplay on handles that gate it.
func (a *App) gesture(id string) {
	if id == "" {
		return
	}
	h, ok := a.cfg.Handles.Get(id)
	if !ok {
		return
	}
	if g, ok := h.(interface{ UserGesture() }); ok {
		g.UserGesture()
	}
}

func (a *App) focusedID() string {
	item, ok := a.cfg.Store.At(a.cursor)
	if !ok {
		return ""
	}
	return item.ID
}

func (a *App) moveCursorTo(id string) {
	if idx := a.cfg.Store.IndexOf(id); idx >= 0 {
		a.setCursor(idx)
	}
}

func (a *App) moveCursor(delta int) {
	a.setCursor(a.cursor + delta)
}

func (a *App) setCursor(idx int) {
	n := a.cfg.Store.Len()
	if n == 0 {
		// Nothing loaded yet; a scroll attempt still retries the fetch.
		a.cursor = 0
		a.maybeNearEnd()
		return
	}
	if idx < 0 {
		idx = 0
	}
	if idx >= n {
		idx = n - 1
	}
	a.cursor = idx
	a.syncMounts()
	a.applyViewport()
	a.maybeNearEnd()
}

// syncMounts keeps players alive for cards within the discard margin of
// the cursor and tears down the rest.
func (a *App) syncMounts() {
	if !a.ready {
		return
	}
	margin := a.layout.MarginCards(a.cfg.DiscardMargin)
	lo := a.cursor - margin
	hi := a.cursor + margin
	want := make(map[string]bool)
	for i := lo; i <= hi; i++ {
		item, ok := a.cfg.Store.At(i)
		if !ok {
			continue
		}
		want[item.ID] = true
		if !a.mounted[item.ID] {
			a.cfg.Handles.Add(item.ID, a.cfg.NewHandle(item))
			a.cfg.Observer.Register(item.ID, a.layout.RegionFor(i), a.cfg.Threshold)
			a.mounted[item.ID] = true
		}
	}
	for id := range a.mounted {
		if want[id] {
			continue
		}
		a.cfg.Observer.Unregister(id)
		a.cfg.Coordinator.HandleUnmount(id)
		a.cfg.Handles.Remove(id)
		delete(a.mounted, id)
	}
}

// reregisterAll refreshes the geometry of every mounted card after a
// layout change.
func (a *App) reregisterAll() {
	for i, item := range a.cfg.Store.Snapshot() {
		if a.mounted[item.ID] {
			a.cfg.Observer.Register(item.ID, a.layout.RegionFor(i), a.cfg.Threshold)
		}
	}
}

func (a *App) applyViewport() {
	if !a.ready {
		return
	}
	top := a.layout.ScrollTo(a.cursor)
	for _, cr := range a.cfg.Observer.SetViewport(top, a.layout.CardHeight()) {
		a.cfg.Coordinator.HandleCrossing(cr)
	}
}

func (a *App) maybeNearEnd() {
	if a.cursor >= a.cfg.Store.Len()-2 && a.cfg.Store.HasMore() {
		a.cfg.Controller.NearEnd()
	}
}

func (a *App) showNotice(text string) tea.Cmd {
	a.notice = text
	a.noticeSeq++
	return expireNotice(a.noticeSeq)
}
