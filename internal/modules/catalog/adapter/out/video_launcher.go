package out

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	catalogout "finpro/internal/modules/catalog/port/out"
)

// BrowserLauncher hands a video URL to the desktop's default handler.
type BrowserLauncher struct{}

func NewBrowserLauncher() catalogout.VideoLauncher {
	return &BrowserLauncher{}
}

func (l *BrowserLauncher) Open(ctx context.Context, videoURL string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(ctx, "open", videoURL)
	case "linux", "freebsd", "openbsd":
		cmd = exec.CommandContext(ctx, "xdg-open", videoURL)
	case "windows":
		cmd = exec.CommandContext(ctx, "rundll32", "url.dll,FileProtocolHandler", videoURL)
	default:
		return fmt.Errorf("opening videos is not supported on %s", runtime.GOOS)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open video: %w", err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
