package sound

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitIdle(t *testing.T, player *Player) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, player.gate.Acquire(ctx, 1))
	player.gate.Release(1)
}

func TestPlayCueDoesNotBlock(t *testing.T) {
	release := make(chan struct{})
	started := make(chan string, 1)
	player := newPlayer("/sounds/bell.wav", "", func(ctx context.Context, path string) error {
		started <- path
		<-release
		return nil
	})

	done := make(chan struct{})
	go func() {
		player.PlayCue()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("PlayCue blocked")
	}
	assert.Equal(t, "/sounds/bell.wav", <-started)
	close(release)
	waitIdle(t, player)
}

func TestOverlappingCueIsDropped(t *testing.T) {
	release := make(chan struct{})
	calls := make(chan struct{}, 4)
	player := newPlayer("a.wav", "", func(ctx context.Context, path string) error {
		calls <- struct{}{}
		<-release
		return nil
	})

	player.PlayCue()
	<-calls
	player.PlayCue()
	player.PlayCue()
	close(release)
	waitIdle(t, player)

	assert.Len(t, calls, 0)

	player.PlayCue()
	waitIdle(t, player)
	assert.Len(t, calls, 1)
}

func TestPlaybackErrorIsSwallowed(t *testing.T) {
	player := newPlayer("missing.wav", "", func(ctx context.Context, path string) error {
		return errors.New("device unavailable")
	})

	assert.NotPanics(t, player.PlayCue)
	waitIdle(t, player)
}

func TestPathFallsBackToDefault(t *testing.T) {
	player := NewPlayer("", "/cache/cue.wav")
	assert.Equal(t, "/cache/cue.wav", player.Path())

	player.SetPath("/home/me/gong.wav")
	assert.Equal(t, "/home/me/gong.wav", player.Path())
}

func TestPlayFileMissing(t *testing.T) {
	err := playFile(context.Background(), filepath.Join(t.TempDir(), "4.wav"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	assert.Error(t, playFile(context.Background(), ""))
}

func TestInstallDefault(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "sounds")
	data := []byte("RIFF....WAVE")

	path, err := InstallDefault(dir, data)
	require.NoError(t, err)
	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, data, written)

	again, err := InstallDefault(dir, data)
	require.NoError(t, err)
	assert.Equal(t, path, again)

	_, err = InstallDefault(dir, []byte("RIFF-new"))
	require.NoError(t, err)
	written, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("RIFF-new"), written)
}
