package sound

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
)

const (
	defaultCueName = "cue.wav"
	playTimeout    = 30 * time.Second
)

// Player plays the cue file in the background. At most one cue plays at a time;
// a cue requested while another is playing is dropped.
type Player struct {
	mu       sync.Mutex
	path     string
	fallback string
	gate     *semaphore.Weighted
	play     func(ctx context.Context, path string) error
}

// NewPlayer creates a player for path. fallback is used when path is empty.
func NewPlayer(path, fallback string) *Player {
	return newPlayer(path, fallback, playFile)
}

func newPlayer(path, fallback string, play func(ctx context.Context, path string) error) *Player {
	return &Player{
		path:     path,
		fallback: fallback,
		gate:     semaphore.NewWeighted(1),
		play:     play,
	}
}

// SetPath replaces the configured cue file.
func (player *Player) SetPath(path string) {
	player.mu.Lock()
	defer player.mu.Unlock()
	player.path = path
}

// Path returns the file the next cue will play.
func (player *Player) Path() string {
	player.mu.Lock()
	defer player.mu.Unlock()
	if player.path != "" {
		return player.path
	}
	return player.fallback
}

// PlayCue starts playback and returns immediately. Failures are logged.
func (player *Player) PlayCue() {
	if !player.gate.TryAcquire(1) {
		log.Printf("sound: cue already playing, skipped")
		return
	}
	path := player.Path()

	go func() {
		defer player.gate.Release(1)
		ctx, cancel := context.WithTimeout(context.Background(), playTimeout)
		defer cancel()
		if err := player.play(ctx, path); err != nil {
			log.Printf("sound: %v", err)
		}
	}()
}

// InstallDefault writes the built-in cue into dir unless an identical copy exists,
// and returns its path.
func InstallDefault(dir string, data []byte) (string, error) {
	target := filepath.Join(dir, defaultCueName)
	if existing, err := os.ReadFile(target); err == nil && bytes.Equal(existing, data) {
		return target, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create sound directory: %w", err)
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return "", fmt.Errorf("write default cue: %w", err)
	}
	return target, nil
}

func playFile(ctx context.Context, path string) error {
	if path == "" {
		return fmt.Errorf("no cue file configured")
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("cue file: %w", err)
	}
	return playPlatform(ctx, path)
}
