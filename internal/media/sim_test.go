package media

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestSimPlayerPlayPause(t *testing.T) {
	p := NewSimPlayer(10 * time.Second)

	if !p.Paused() {
		t.Fatal("new player should start paused")
	}

	if err := p.Play(context.Background()); err != nil {
		t.Fatalf("Play failed: %v", err)
	}
	if p.Paused() {
		t.Error("player should be playing after Play")
	}

	p.Pause()
	if !p.Paused() {
		t.Error("player should be paused after Pause")
	}
}

func TestSimPlayerAutoplayPolicy(t *testing.T) {
	p := NewSimPlayer(10*time.Second, WithAutoplayPolicy())

	// Muted autoplay is allowed.
	if err := p.Play(context.Background()); err != nil {
		t.Fatalf("muted Play failed: %v", err)
	}
	p.Pause()

	// Unmuted playback without a gesture is rejected and stays paused.
	p.SetMuted(false)
	err := p.Play(context.Background())
	if !errors.Is(err, ErrAutoplayBlocked) {
		t.Fatalf("unmuted Play = %v, want ErrAutoplayBlocked", err)
	}
	if !p.Paused() {
		t.Error("rejected Play must leave the player paused")
	}

	// A gesture unlocks playback permanently.
	p.UserGesture()
	if err := p.Play(context.Background()); err != nil {
		t.Errorf("Play after gesture failed: %v", err)
	}
}

func TestSimPlayerBufferingCancel(t *testing.T) {
	p := NewSimPlayer(10*time.Second, WithBuffering(5*time.Second))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := p.Play(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Play with cancelled context = %v, want context.Canceled", err)
	}
	if !p.Paused() {
		t.Error("cancelled Play must leave the player paused")
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	p := NewSimPlayer(time.Second)

	r.Add("A", p)
	if got, ok := r.Get("A"); !ok || got != Handle(p) {
		t.Error("Get should return the registered handle")
	}
	if r.Len() != 1 {
		t.Errorf("Len = %d, want 1", r.Len())
	}

	r.Remove("A")
	if _, ok := r.Get("A"); ok {
		t.Error("Get after Remove should report false")
	}
}
