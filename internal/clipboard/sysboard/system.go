// Package sysboard implements clipboard copying in-process via
// golang.design/x/clipboard. It is the fallback when none of the
// configured external copy tools exist on PATH; paste simulation has no
// in-process equivalent and is unsupported here.
package sysboard

import (
	"fmt"
	"os"
	"sync"

	"golang.design/x/clipboard"
)

// SystemClipboard writes to the system clipboard through the display
// server's native protocol.
type SystemClipboard struct{}

var (
	initOnce sync.Once
	initErr  error
)

// New creates a SystemClipboard. Initialization of the underlying display
// connection is deferred to the first copy.
func New() *SystemClipboard {
	return &SystemClipboard{}
}

func ensureInit() error {
	initOnce.Do(func() {
		initErr = clipboard.Init()
	})
	if initErr != nil {
		return fmt.Errorf("clipboard unavailable: %w", initErr)
	}
	return nil
}

// IsSupported reports whether a display connection exists to talk to.
func (s *SystemClipboard) IsSupported() bool {
	return os.Getenv("WAYLAND_DISPLAY") != "" || os.Getenv("DISPLAY") != ""
}

// CopyText places text on the system clipboard.
func (s *SystemClipboard) CopyText(text string) error {
	if err := ensureInit(); err != nil {
		return err
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}

// CopyImage places the image file's bytes on the system clipboard.
func (s *SystemClipboard) CopyImage(path string) error {
	if err := ensureInit(); err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read image %s: %w", path, err)
	}
	clipboard.Write(clipboard.FmtImage, data)
	return nil
}

// SimulatePaste is not possible without an external keystroke tool.
func (s *SystemClipboard) SimulatePaste() error {
	return fmt.Errorf("paste simulation requires an external tool (wtype or xdotool)")
}
