package cli

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"clipview/internal/clipboard/mockboard"
	"clipview/internal/config"
	"clipview/internal/history"
)

const testHistory = `{
  "clipboardHistory": [
    {"value": "newest", "recorded": "2024-03-01 12:00:00", "filePath": "null", "pinned": false},
    {"value": "middle", "recorded": "2024-03-01 11:00:00", "filePath": "null", "pinned": true},
    {"value": "oldest", "recorded": "2024-03-01 10:00:00", "filePath": "null", "pinned": false}
  ]
}`

func newTestCLI(t *testing.T) (*CLI, string, *mockboard.MockClipboard) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clipboard_history.json")
	if err := os.WriteFile(path, []byte(testHistory), 0644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	cfg := config.DefaultConfig()
	clip := mockboard.New()
	c := &CLI{
		cfg:       cfg,
		store:     history.NewStore(path, history.Options{}),
		clipboard: clip,
	}
	return c, path, clip
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		args    Args
		wantErr bool
	}{
		{"no subcommand", Args{}, false},
		{"valid copy", Args{Copy: &CopyCmd{Index: 0}}, false},
		{"negative copy index", Args{Copy: &CopyCmd{Index: -1}}, true},
		{"negative pin index", Args{Pin: &PinCmd{Index: -2}}, true},
		{"negative delete index", Args{Delete: &DeleteCmd{Index: -1}}, true},
		{"negative list limit", Args{List: &ListCmd{Limit: -1}}, true},
		{"valid list", Args{List: &ListCmd{Limit: 5}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.args.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestExecuteCopy(t *testing.T) {
	c, _, clip := newTestCLI(t)

	if err := c.Execute(&Args{Copy: &CopyCmd{Index: 0}}); err != nil {
		t.Fatalf("Execute(copy) error: %v", err)
	}
	if len(clip.Texts) != 1 || clip.Texts[0] != "newest" {
		t.Errorf("copied %v, want [newest]", clip.Texts)
	}
}

func TestExecuteCopy_IndexOutOfRange(t *testing.T) {
	c, _, _ := newTestCLI(t)
	if err := c.Execute(&Args{Copy: &CopyCmd{Index: 10}}); err == nil {
		t.Error("Execute(copy 10) returned nil error, want out of range")
	}
}

func TestExecutePin_PersistsImmediately(t *testing.T) {
	c, path, _ := newTestCLI(t)

	if err := c.Execute(&Args{Pin: &PinCmd{Index: 0}}); err != nil {
		t.Fatalf("Execute(pin) error: %v", err)
	}

	// One-shot commands must not rely on the debounce timer.
	fresh := history.NewStore(path, history.Options{})
	if err := fresh.Load(); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !fresh.Items()[0].Pinned {
		t.Error("pin was not persisted to disk")
	}
}

func TestExecuteDelete_ProtectedItem(t *testing.T) {
	c, path, _ := newTestCLI(t)
	c.store = history.NewStore(path, history.Options{ProtectPinned: true})

	// Index 1 is the pinned "middle" entry.
	err := c.Execute(&Args{Delete: &DeleteCmd{Index: 1}})
	if !errors.Is(err, history.ErrProtectedItem) {
		t.Errorf("Execute(delete pinned) error = %v, want ErrProtectedItem", err)
	}

	fresh := history.NewStore(path, history.Options{})
	if err := fresh.Load(); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if fresh.Len() != 3 {
		t.Errorf("Len() = %d, want 3 (nothing deleted)", fresh.Len())
	}
}

func TestExecuteDelete(t *testing.T) {
	c, path, _ := newTestCLI(t)

	if err := c.Execute(&Args{Delete: &DeleteCmd{Index: 2}}); err != nil {
		t.Fatalf("Execute(delete) error: %v", err)
	}

	fresh := history.NewStore(path, history.Options{})
	if err := fresh.Load(); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if fresh.Len() != 2 {
		t.Errorf("Len() = %d, want 2", fresh.Len())
	}
	for _, e := range fresh.Items() {
		if e.Value == "oldest" {
			t.Error("deleted entry still present after flush")
		}
	}
}
