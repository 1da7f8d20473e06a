// ABOUTME: The `convert` subcommand
// ABOUTME: Builds one container from an explicit list of source files

package command

import (
	"fmt"

	"github.com/tafforge/tafforge/internal/convert"
)

const (
	ConvertDescription = "Convert audio files into a single container"
	ConvertHelp        = ConvertDescription + "\n\n" +
		"Each input file becomes one track, in argument order. MP3, FLAC,\n" +
		"WAV and raw PCM sources are re-encoded to Opus; Ogg Opus sources\n" +
		"are repackaged without a lossy round trip."
)

// Convert represents the `convert` command of the tafforge cli tool.
type Convert struct {
	LoggingOptions
	TimestampOptions

	Output  string `short:"o" long:"output" description:"Output file; derived from tags or the source directory when omitted"`
	Bitrate int    `short:"b" long:"bitrate" default:"96000" description:"Opus bitrate in bits per second"`

	Args struct {
		Inputs []string `positional-arg-name:"input" required:"1" description:"Source audio files, one track each"`
	} `positional-args:"yes"`
}

// Execute runs the conversion, it honors the go-flags.Commander interface.
func (c *Convert) Execute(args []string) error {
	c.setupLogging()

	timestamp, err := c.resolve()
	if err != nil {
		return err
	}

	out := c.Output
	if out == "" {
		out = convert.OutputName(c.Args.Inputs)
	}

	opts := convert.Options{
		Bitrate:   c.Bitrate,
		Timestamp: timestamp,
	}
	if err := convert.ToFile(c.Args.Inputs, out, opts); err != nil {
		return err
	}

	fmt.Printf("wrote %s (%d tracks)\n", out, len(c.Args.Inputs))
	return nil
}
