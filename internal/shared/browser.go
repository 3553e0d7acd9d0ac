package shared

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/charmbracelet/log"
)

var getRuntime = func() string { return runtime.GOOS }

// browserCommand returns the platform launcher invocation for url.
func browserCommand(url string) (*exec.Cmd, error) {
	switch rt := getRuntime(); rt {
	case "darwin":
		return exec.Command("open", url), nil
	case "linux":
		return exec.Command("xdg-open", url), nil
	case "windows":
		return exec.Command("cmd", "/c", "start", url), nil
	default:
		return nil, fmt.Errorf("no browser launcher for platform %s", rt)
	}
}

// OpenBrowser logs the login URL for manual use, then tries to open it in
// the default browser. Launching is fire and forget: a missing launcher or
// a failed start is a warning, not an error, since the printed URL keeps
// the flow usable.
func OpenBrowser(l *log.Logger, url string) {
	l.Infof("logging in (click this link if it doesn't open automatically): %s", url)

	cmd, err := browserCommand(url)
	if err != nil {
		l.Warnf("failed to open browser: %v", err)
		return
	}

	if err := cmd.Start(); err != nil {
		l.Warnf("failed to open browser: %v", err)
	}
}
