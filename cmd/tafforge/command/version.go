// ABOUTME: The `version` subcommand
// ABOUTME: Prints the tool name and release version

package command

import "fmt"

const (
	VersionDescription = "Show the version information"
	VersionHelp        = VersionDescription
)

// Version represents the `version` command of the tafforge cli tool.
type Version struct {
	// Name of the cli binary
	Name string
	// Version of the cli binary
	Version string
}

// Execute prints the version information, it honors the
// go-flags.Commander interface.
func (c *Version) Execute(args []string) error {
	fmt.Printf("%s %s\n", c.Name, c.Version)
	return nil
}
