// Package open launches frames and articles with the system handler.
package open

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/mapreel/mapreel/log"
)

// runtime.GOOS values with a known opener.
const (
	windows = "windows"
	darwin  = "darwin"
	linux   = "linux"
	android = "android"
)

// Start opens input (URL or file path) with the default handler without waiting for it.
func Start(input string) error {
	return StartWith(input, "")
}

// StartWith opens input with app, or with the default handler when app is empty.
func StartWith(input, app string) error {
	cmd, ok := Command(input, app)
	if !ok {
		return fmt.Errorf("unsupported OS: %s", runtime.GOOS)
	}

	log.Debugf("open %s", strings.Join(cmd.Args, " "))
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %s: %w", input, err)
	}

	// reap the handler once it exits
	go func() { _ = cmd.Wait() }()
	return nil
}

// Command returns the process that opens input on this platform.
func Command(input, app string) (*exec.Cmd, bool) {
	if app == "" {
		return command(input)
	}
	return commandWith(input, app)
}

func command(input string) (*exec.Cmd, bool) {
	switch runtime.GOOS {
	case windows:
		rundll := filepath.Join(os.Getenv("SYSTEMROOT"), "System32", "rundll32.exe")
		return exec.Command(rundll, "url.dll,FileProtocolHandler", input), true
	case darwin:
		return exec.Command("open", input), true
	case linux:
		return exec.Command("xdg-open", input), true
	case android:
		return exec.Command("termux-open", input), true
	default:
		return nil, false
	}
}

func commandWith(input, app string) (*exec.Cmd, bool) {
	switch runtime.GOOS {
	case windows:
		// start treats & as a separator
		escaped := strings.ReplaceAll(input, "&", "^&")
		return exec.Command("cmd", "/C", "start", "", app, escaped), true
	case darwin:
		return exec.Command("open", "-a", app, input), true
	case linux:
		return exec.Command(app, input), true
	case android:
		return exec.Command("termux-open", "--choose", input), true
	default:
		return nil, false
	}
}
