// Package mockboard provides a mock clipboard implementation for testing.
package mockboard

// MockClipboard records clipboard requests instead of performing them.
type MockClipboard struct {
	Texts      []string
	Images     []string
	PasteCount int
	Err        error // returned from every operation when set
}

// New creates a new MockClipboard instance.
func New() *MockClipboard {
	return &MockClipboard{}
}

// CopyText records the copied text.
func (m *MockClipboard) CopyText(text string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Texts = append(m.Texts, text)
	return nil
}

// CopyImage records the copied image path.
func (m *MockClipboard) CopyImage(path string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Images = append(m.Images, path)
	return nil
}

// SimulatePaste counts paste requests.
func (m *MockClipboard) SimulatePaste() error {
	if m.Err != nil {
		return m.Err
	}
	m.PasteCount++
	return nil
}

// IsSupported always returns true for the mock clipboard.
func (m *MockClipboard) IsSupported() bool {
	return true
}
