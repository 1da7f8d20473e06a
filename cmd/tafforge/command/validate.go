// ABOUTME: The `validate` subcommand
// ABOUTME: Runs the structural checks over one or more containers

package command

import (
	"fmt"

	"github.com/tafforge/tafforge/pkg/taf"
)

const (
	ValidateDescription = "Check containers for structural defects"
	ValidateHelp        = ValidateDescription + "\n\n" +
		"Every check runs even after a failure, so one pass reports all\n" +
		"defects: header consistency, content hash, page sizes, checksums,\n" +
		"sequence numbering and chapter markers."
)

// Validate represents the `validate` command of the tafforge cli tool.
type Validate struct {
	LoggingOptions

	Quiet bool `short:"q" long:"quiet" description:"Suppress the per-check report, only set the exit code"`

	Args struct {
		Files []string `positional-arg-name:"file" required:"1" description:"Container files to check"`
	} `positional-args:"yes"`
}

// Execute validates every file, it honors the go-flags.Commander interface.
func (c *Validate) Execute(args []string) error {
	c.setupLogging()

	failed := 0
	for _, path := range c.Args.Files {
		container, err := loadContainer(path)
		if err != nil {
			failed++
			fmt.Printf("%s: %v\n", path, err)
			continue
		}

		report := taf.Validate(container)
		if !report.OK() {
			failed++
		}
		if !c.Quiet {
			fmt.Printf("%s:\n%s", path, report.String())
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed validation", failed, len(c.Args.Files))
	}
	return nil
}
