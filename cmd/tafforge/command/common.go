// ABOUTME: Shared helpers for CLI commands
// ABOUTME: Logging setup, container loading and timestamp resolution

package command

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/tafforge/tafforge/pkg/taf"
)

// LoggingOptions are embedded by every command.
type LoggingOptions struct {
	Verbose  bool   `short:"v" description:"Activates the verbose mode"`
	LogLevel string `long:"log-level" choice:"info" choice:"debug" choice:"warning" choice:"error" choice:"fatal" default:"warning" description:"logging level"`
}

func (o LoggingOptions) setupLogging() {
	level, err := logrus.ParseLevel(o.LogLevel)
	if err != nil {
		level = logrus.WarnLevel
	}
	if o.Verbose {
		level = logrus.DebugLevel
	}
	logrus.SetLevel(level)
}

// TimestampOptions resolve the header timestamp for build commands.
type TimestampOptions struct {
	Timestamp uint32 `long:"timestamp" description:"Build timestamp (unix seconds); defaults to the current time"`
	Ref       string `long:"ref" description:"Existing container whose timestamp is reused for a byte-identical rebuild"`
}

func (o TimestampOptions) resolve() (uint32, error) {
	if o.Ref != "" {
		data, err := os.ReadFile(o.Ref)
		if err != nil {
			return 0, fmt.Errorf("failed to read reference %s: %w", o.Ref, err)
		}
		return taf.TimestampFrom(data)
	}
	if o.Timestamp != 0 {
		return o.Timestamp, nil
	}
	return taf.TimestampNow(), nil
}

// loadContainer reads and parses one container file.
func loadContainer(path string) (*taf.Container, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	c, err := taf.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}
