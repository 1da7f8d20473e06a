// ABOUTME: Version constants for the tafforge tool
// ABOUTME: Embedded in CLI output and written Ogg comment headers

package version

const (
	// Version is the current release version.
	Version = "0.1.0"

	// Product is the tool name reported by the CLI.
	Product = "tafforge"

	// Manufacturer identifies the project in vendor strings.
	Manufacturer = "TAF Forge"
)
