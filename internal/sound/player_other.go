//go:build !linux && !darwin && !windows

package sound

import (
	"context"
	"errors"
)

func playPlatform(context.Context, string) error {
	return errors.New("audio playback unsupported on this platform")
}
