//go:build linux

package sound

import (
	"context"
	"fmt"
	"os/exec"
)

// playPlatform plays sounds on Linux using paplay (PulseAudio) or aplay (ALSA)
func playPlatform(ctx context.Context, path string) error {
	players := []string{"paplay", "pw-play", "aplay"}

	var lastErr error
	for _, player := range players {
		binary, err := exec.LookPath(player)
		if err != nil {
			continue
		}
		if err := exec.CommandContext(ctx, binary, path).Run(); err != nil {
			lastErr = fmt.Errorf("%s: %w", player, err)
			continue
		}
		return nil
	}
	if lastErr != nil {
		return lastErr
	}
	return fmt.Errorf("no audio player found (tried %v)", players)
}
