// ABOUTME: CLI entry point for the tafforge tool
// ABOUTME: Registers subcommands and dispatches via go-flags

package main

import (
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/tafforge/tafforge/cmd/tafforge/command"
	"github.com/tafforge/tafforge/internal/version"
)

const name = "tafforge"

func main() {
	parser := flags.NewNamedParser(name, flags.Default)

	parser.AddCommand("convert", command.ConvertDescription, command.ConvertHelp,
		&command.Convert{})

	parser.AddCommand("batch", command.BatchDescription, command.BatchHelp,
		&command.Batch{})

	parser.AddCommand("validate", command.ValidateDescription, command.ValidateHelp,
		&command.Validate{})

	parser.AddCommand("compare", command.CompareDescription, command.CompareHelp,
		&command.Compare{})

	parser.AddCommand("split", command.SplitDescription, command.SplitHelp,
		&command.Split{})

	parser.AddCommand("play", command.PlayDescription, command.PlayHelp,
		&command.Play{})

	parser.AddCommand("version", command.VersionDescription, command.VersionHelp,
		&command.Version{
			Name:    name,
			Version: version.Version,
		})

	_, err := parser.Parse()
	if err != nil {
		if e, ok := err.(*flags.Error); ok && e.Type == flags.ErrCommandRequired {
			parser.WriteHelp(os.Stdout)
		}

		os.Exit(1)
	}
}
