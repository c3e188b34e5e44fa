// Package launcher hands URLs to the OS for external handling (browser
// windows, tel: dialers).
package launcher

import (
	"os/exec"

	"github.com/nhle/nostlichat/internal/logger"
)

// Launcher opens a URL with the platform handler. Calls are
// fire-and-forget: no result is reported back to the caller.
type Launcher interface {
	OpenURL(url string)
}

// ExecLauncher shells out to xdg-open.
type ExecLauncher struct{}

// OpenURL spawns the handler detached; a spawn failure is logged and
// otherwise ignored.
func (ExecLauncher) OpenURL(url string) {
	cmd := exec.Command("xdg-open", url)
	if err := cmd.Start(); err != nil {
		logger.Debug("launching URL handler failed", "url", url, "error", err)
		return
	}

	// Reap the child so it does not linger as a zombie.
	go func() { _ = cmd.Wait() }()
}
