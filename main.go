package main

import (
	"fmt"
	"os"

	"github.com/alexflint/go-arg"

	"clipview/internal/cli"
)

func main() {
	// Parse command-line arguments
	var args cli.Args
	parser := arg.MustParse(&args)

	// Create CLI instance; config problems fall back to defaults
	cliHandler, err := cli.NewWithArgs(&args)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	// Execute the command (no subcommand launches the TUI)
	if err := cliHandler.Execute(&args); err != nil {
		fmt.Printf("Error: %v\n", err)

		// If it's an argument validation error, show usage
		if args.List != nil || args.Copy != nil || args.Pin != nil || args.Unpin != nil || args.Delete != nil {
			fmt.Println()
			parser.WriteUsage(os.Stderr)
		}
		os.Exit(1)
	}
}
