//go:build darwin

package sound

import (
	"context"
	"fmt"
	"os/exec"
)

// playPlatform plays sounds on macOS using afplay
func playPlatform(ctx context.Context, path string) error {
	if err := exec.CommandContext(ctx, "afplay", path).Run(); err != nil {
		return fmt.Errorf("afplay: %w", err)
	}
	return nil
}
