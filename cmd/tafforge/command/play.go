// ABOUTME: The `play` subcommand
// ABOUTME: Plays a container on the local machine with a terminal UI

package command

import (
	"context"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/tafforge/tafforge/internal/player"
	"github.com/tafforge/tafforge/internal/ui"
	"github.com/tafforge/tafforge/pkg/audio/output"
)

const (
	PlayDescription = "Play a container through the speakers"
	PlayHelp        = PlayDescription + "\n\n" +
		"Opens a terminal UI with transport controls: space pauses, n/p\n" +
		"switch tracks, arrow keys change the volume, m mutes, q quits."
)

// Play represents the `play` command of the tafforge cli tool.
type Play struct {
	LoggingOptions

	Args struct {
		File string `positional-arg-name:"file" required:"1" description:"Container file to play"`
	} `positional-args:"yes"`
}

// Execute plays the file, it honors the go-flags.Commander interface.
func (c *Play) Execute(args []string) error {
	c.setupLogging()

	container, err := loadContainer(c.Args.File)
	if err != nil {
		return err
	}
	if err := container.VerifyHash(); err != nil {
		log.WithError(err).Warn("Content hash mismatch, playing anyway")
	}

	p, err := player.New(container, output.NewOto())
	if err != nil {
		return err
	}
	defer p.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runErr := make(chan error, 1)
	go func() { runErr <- p.Run(ctx) }()

	p.Play()
	if err := ui.Run(p, filepath.Base(c.Args.File)); err != nil {
		return err
	}

	cancel()
	if err := <-runErr; err != nil && err != context.Canceled {
		return err
	}
	return nil
}
