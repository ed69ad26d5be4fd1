package cli

import (
	"fmt"
)

// Args represents the top-level command structure.
type Args struct {
	List   *ListCmd   `arg:"subcommand:list" help:"Print history items"`
	Copy   *CopyCmd   `arg:"subcommand:copy" help:"Copy a history item to the clipboard"`
	Pin    *PinCmd    `arg:"subcommand:pin" help:"Pin a history item"`
	Unpin  *UnpinCmd  `arg:"subcommand:unpin" help:"Unpin a history item"`
	Delete *DeleteCmd `arg:"subcommand:delete" help:"Delete a history item"`

	HistoryFile *string `arg:"--history-file" help:"Path to the clipse history JSON file"`
	ConfigFile  *string `arg:"--config" help:"Path to the clipview config file"`
}

// ListCmd prints history items without opening the TUI.
type ListCmd struct {
	Query  string `arg:"positional" help:"Filter by substring (optional)"`
	Pinned bool   `arg:"-p,--pinned" help:"Show only pinned items"`
	Limit  int    `arg:"-n,--limit" default:"20" help:"Maximum items to print (0 = all)"`
}

// CopyCmd copies an item by list index (0 = newest).
type CopyCmd struct {
	Index int `arg:"positional,required" help:"Item index (0 = newest)"`
}

// PinCmd pins an item by list index.
type PinCmd struct {
	Index int `arg:"positional,required" help:"Item index (0 = newest)"`
}

// UnpinCmd unpins an item by list index.
type UnpinCmd struct {
	Index int `arg:"positional,required" help:"Item index (0 = newest)"`
}

// DeleteCmd deletes an item by list index.
type DeleteCmd struct {
	Index int `arg:"positional,required" help:"Item index (0 = newest)"`
}

// Description returns the program description.
func (Args) Description() string {
	return "clipview - viewer and editor for clipse clipboard history"
}

// Version returns the program version.
func (Args) Version() string {
	return "clipview 0.1.0"
}

// Epilogue returns additional help text.
func (Args) Epilogue() string {
	return `Examples:
  clipview                         # Interactive history browser
  clipview list                    # Print the 20 newest items
  clipview list -p                 # Print pinned items only
  clipview list "error log"        # Print items matching a substring
  clipview copy 0                  # Copy the newest item
  clipview pin 3                   # Pin the fourth item
  clipview delete 3                # Delete the fourth item

The history file is owned by the clipse daemon; clipview edits it in place.`
}

// Validate performs validation on the parsed arguments.
func (args *Args) Validate() error {
	if args.Copy != nil && args.Copy.Index < 0 {
		return fmt.Errorf("copy: index must be non-negative")
	}
	if args.Pin != nil && args.Pin.Index < 0 {
		return fmt.Errorf("pin: index must be non-negative")
	}
	if args.Unpin != nil && args.Unpin.Index < 0 {
		return fmt.Errorf("unpin: index must be non-negative")
	}
	if args.Delete != nil && args.Delete.Index < 0 {
		return fmt.Errorf("delete: index must be non-negative")
	}
	if args.List != nil && args.List.Limit < 0 {
		return fmt.Errorf("list: limit must be non-negative")
	}
	return nil
}
