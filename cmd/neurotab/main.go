// Package main provides the neurotab command-line interface.
//
// neurotab extracts stereotactic brain-activation coordinates from the
// HTML full text of neuroimaging journal articles.
//
// Usage:
//
//	neurotab [command] [flags]
//
// Available Commands:
//
//	extract     Extract activation tables from article HTML files
//	version     Print version information
//
// Use "neurotab [command] --help" for more information about a command.
package main

import (
	"os"

	"github.com/coregx/neurotab/cmd/neurotab/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
