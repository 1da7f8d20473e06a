// ABOUTME: The `compare` subcommand
// ABOUTME: Reports semantic differences between two containers

package command

import (
	"fmt"

	"github.com/tafforge/tafforge/pkg/taf"
)

const (
	CompareDescription = "Compare two containers field by field"
	CompareHelp        = CompareDescription + "\n\n" +
		"Reports differing header fields and page counts. With --detailed\n" +
		"every page is compared byte for byte and the first differing\n" +
		"offset is shown."
)

// Compare represents the `compare` command of the tafforge cli tool.
type Compare struct {
	LoggingOptions

	Detailed bool `short:"d" long:"detailed" description:"Compare page contents byte for byte"`

	Args struct {
		A string `positional-arg-name:"first" required:"1"`
		B string `positional-arg-name:"second" required:"1"`
	} `positional-args:"yes"`
}

// Execute compares the two files, it honors the go-flags.Commander
// interface.
func (c *Compare) Execute(args []string) error {
	c.setupLogging()

	a, err := loadContainer(c.Args.A)
	if err != nil {
		return err
	}
	b, err := loadContainer(c.Args.B)
	if err != nil {
		return err
	}

	report := taf.Diff(a, b, c.Detailed)
	if report.Identical() {
		fmt.Println("containers are identical")
		return nil
	}

	fmt.Print(report.String())
	return fmt.Errorf("containers differ in %d fields", len(report.Entries))
}
