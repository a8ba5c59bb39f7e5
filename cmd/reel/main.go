package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/thuanng/reel/internal/config"
	"github.com/thuanng/reel/internal/control"
	"github.com/thuanng/reel/internal/feed"
	"github.com/thuanng/reel/internal/fetch"
	"github.com/thuanng/reel/internal/logging"
	"github.com/thuanng/reel/internal/media"
	"github.com/thuanng/reel/internal/playback"
	"github.com/thuanng/reel/internal/ui"
	"github.com/thuanng/reel/internal/viewport"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "reel:", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	dataDir := config.DataDir()
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	if err := logging.Init(dataDir); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer logging.Close()

	clientOpts := []fetch.Option{
		fetch.WithLogger(logging.WithPrefix("fetch")),
	}
	if cfg.API.CacheEnabled {
		cache, err := fetch.OpenCache(filepath.Join(dataDir, "cache.db"))
		if err != nil {
			return fmt.Errorf("open page cache: %w", err)
		}
		defer cache.Close()
		clientOpts = append(clientOpts, fetch.WithCache(cache))
	}
	client := fetch.NewClient(cfg.API.BaseURL, time.Duration(cfg.API.TimeoutSeconds)*time.Second, clientOpts...)

	store := feed.NewStore()
	observer := viewport.NewObserver()
	handles := media.NewRegistry()
	layout := ui.NewLayout()

	// The program does not exist yet when the components are wired, so the
	// send path closes over a pointer filled in below. Nothing sends before
	// program.Run starts the loop.
	var program *tea.Program
	send := func(msg tea.Msg) { program.Send(msg) }

	coordinator := playback.New(ctx, handles, store, send, playback.Options{
		StartMuted:               cfg.Feed.StartMuted,
		KeepSuppressionOnUnmount: cfg.Feed.KeepSuppressionOnUnmount,
		Logger:                   logging.WithPrefix("playback"),
	})
	controller := control.New(ctx, store, client, observer, layout.RegionFor, send, control.Options{
		Threshold: cfg.Feed.VisibilityThreshold,
		Logger:    logging.WithPrefix("control"),
	})

	app := ui.NewApp(ui.AppConfig{
		Store:       store,
		Controller:  controller,
		Coordinator: coordinator,
		Observer:    observer,
		Handles:     handles,
		NewHandle: func(item feed.Item) media.Handle {
			// Simulated player: short variable startup latency and the
			// unmuted-autoplay gate real media environments impose.
			duration := time.Duration(15+rand.Intn(45)) * time.Second
			return media.NewSimPlayer(duration,
				media.WithBuffering(time.Duration(50+rand.Intn(200))*time.Millisecond),
				media.WithAutoplayPolicy(),
			)
		},
		Threshold:     cfg.Feed.VisibilityThreshold,
		DiscardMargin: cfg.UI.DiscardMarginRows,
		Logger:        logging.WithPrefix("ui"),
	}, layout)

	program = tea.NewProgram(app, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
