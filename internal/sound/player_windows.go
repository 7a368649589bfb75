//go:build windows

package sound

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// playPlatform plays sounds on Windows using PowerShell
func playPlatform(ctx context.Context, path string) error {
	escaped := strings.ReplaceAll(path, "'", "''")
	script := fmt.Sprintf("(New-Object Media.SoundPlayer '%s').PlaySync()", escaped)
	output, err := exec.CommandContext(ctx, "powershell", "-NoProfile", "-NonInteractive", "-c", script).CombinedOutput()
	if err != nil {
		return fmt.Errorf("powershell: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}
