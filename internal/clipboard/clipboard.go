// Package clipboard defines the outbound system-clipboard requests the
// viewer issues: copy an entry's payload, and simulate a paste into the
// previously focused window. Implementations live in the cmdboard (external
// tools), sysboard (in-process fallback), and mockboard (tests)
// subpackages.
package clipboard

// Clipboard abstracts the system clipboard and paste simulation.
type Clipboard interface {
	// CopyText places text content on the system clipboard.
	CopyText(text string) error

	// CopyImage places the image file's bytes on the system clipboard.
	CopyImage(path string) error

	// SimulatePaste sends a paste keystroke to the focused window. Callers
	// invoke this after CopyText/CopyImage and after hiding their own
	// window, so the paste lands in the application the user came from.
	SimulatePaste() error

	// IsSupported reports whether this implementation can run on the
	// current system.
	IsSupported() bool
}
