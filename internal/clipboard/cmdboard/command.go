// Package cmdboard implements clipboard operations with the configured
// external tools (wl-copy/xclip for copying, wtype/xdotool for paste
// simulation), matching how the clipse daemon itself integrates with the
// compositor.
package cmdboard

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"
)

// CommandClipboard shells out to the configured copy and paste tools with
// the payload on stdin.
type CommandClipboard struct {
	copyArgs   []string
	pasteArgs  []string
	pasteDelay time.Duration
}

// New builds a CommandClipboard from command strings as they appear in the
// configuration, e.g. "xclip -i -selection clipboard".
func New(copyCmd, pasteCmd string, pasteDelay time.Duration) *CommandClipboard {
	return &CommandClipboard{
		copyArgs:   strings.Fields(copyCmd),
		pasteArgs:  strings.Fields(pasteCmd),
		pasteDelay: pasteDelay,
	}
}

// IsWayland reports whether the session is running under a Wayland
// compositor, which decides between the wayland and x11 tool sets.
func IsWayland() bool {
	return os.Getenv("WAYLAND_DISPLAY") != ""
}

// IsSupported reports whether the configured copy tool exists on PATH.
func (c *CommandClipboard) IsSupported() bool {
	if len(c.copyArgs) == 0 {
		return false
	}
	_, err := exec.LookPath(c.copyArgs[0])
	return err == nil
}

// CopyText pipes text into the copy tool.
func (c *CommandClipboard) CopyText(text string) error {
	return c.runCopy(strings.NewReader(text))
}

// CopyImage pipes the image file's bytes into the copy tool.
func (c *CommandClipboard) CopyImage(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read image %s: %w", path, err)
	}
	return c.runCopy(bytes.NewReader(data))
}

// SimulatePaste waits for the configured delay (so the previous window can
// regain focus) and then runs the paste-keystroke tool.
func (c *CommandClipboard) SimulatePaste() error {
	if len(c.pasteArgs) == 0 {
		return fmt.Errorf("no paste simulation command configured")
	}
	if c.pasteDelay > 0 {
		time.Sleep(c.pasteDelay)
	}
	cmd := exec.Command(c.pasteArgs[0], c.pasteArgs[1:]...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("paste command %q failed: %w (%s)", c.pasteArgs[0], err, bytes.TrimSpace(out))
	}
	return nil
}

func (c *CommandClipboard) runCopy(stdin io.Reader) error {
	if len(c.copyArgs) == 0 {
		return fmt.Errorf("no copy command configured")
	}
	cmd := exec.Command(c.copyArgs[0], c.copyArgs[1:]...)
	cmd.Stdin = stdin
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("copy command %q failed: %w (%s)", c.copyArgs[0], err, bytes.TrimSpace(out))
	}
	return nil
}
