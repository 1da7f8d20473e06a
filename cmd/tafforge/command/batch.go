// ABOUTME: The `batch` subcommand
// ABOUTME: Converts a whole directory tree, one container per folder

package command

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/tafforge/tafforge/internal/batch"
	"github.com/tafforge/tafforge/internal/convert"
)

const (
	BatchDescription = "Convert every folder of a directory tree"
	BatchHelp        = BatchDescription + "\n\n" +
		"Walks the input tree and builds one container per folder that\n" +
		"contains audio files, named after its tags or the folder itself.\n" +
		"Folders are processed concurrently."
)

// Batch represents the `batch` command of the tafforge cli tool.
type Batch struct {
	LoggingOptions
	TimestampOptions

	Output  string `short:"o" long:"output" default:"." description:"Directory the containers are written to"`
	Bitrate int    `short:"b" long:"bitrate" default:"96000" description:"Opus bitrate in bits per second"`
	Jobs    int    `short:"j" long:"jobs" description:"Number of folders converted in parallel; defaults to the CPU count"`

	Args struct {
		Root string `positional-arg-name:"directory" required:"1" description:"Root of the tree to convert"`
	} `positional-args:"yes"`
}

// Execute runs the batch conversion, it honors the go-flags.Commander
// interface.
func (c *Batch) Execute(args []string) error {
	c.setupLogging()

	timestamp, err := c.resolve()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := convert.Options{
		Bitrate:   c.Bitrate,
		Timestamp: timestamp,
	}
	results, err := batch.Process(ctx, c.Args.Root, c.Output, opts, c.Jobs)
	if err != nil {
		return err
	}

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", res.Job.Dir, res.Err)
			continue
		}
		fmt.Printf("ok   %s -> %s\n", res.Job.Dir, res.Job.Output)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d folders failed", failed, len(results))
	}
	return nil
}
