// ABOUTME: The `split` subcommand
// ABOUTME: Extracts every track of a container as an Ogg Opus file

package command

import (
	"fmt"
	"strings"

	"github.com/tafforge/tafforge/internal/convert"
)

const (
	SplitDescription = "Split a container into standalone Ogg Opus tracks"
	SplitHelp        = SplitDescription + "\n\n" +
		"Each track keeps the original Opus packets; no re-encoding takes\n" +
		"place. Files are numbered track01.opus, track02.opus and so on."
)

// Split represents the `split` command of the tafforge cli tool.
type Split struct {
	LoggingOptions

	Output string `short:"o" long:"output" default:"." description:"Directory the tracks are written to"`

	Args struct {
		File string `positional-arg-name:"file" required:"1" description:"Container file to split"`
	} `positional-args:"yes"`
}

// Execute splits the container, it honors the go-flags.Commander interface.
func (c *Split) Execute(args []string) error {
	c.setupLogging()

	container, err := loadContainer(c.Args.File)
	if err != nil {
		return err
	}

	paths, err := convert.Split(container, c.Output)
	if err != nil {
		return err
	}

	fmt.Printf("wrote %d tracks:\n  %s\n", len(paths), strings.Join(paths, "\n  "))
	return nil
}
