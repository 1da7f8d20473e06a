// ABOUTME: Container splitting into standalone Ogg Opus tracks
// ABOUTME: Re-wraps each track's packets with fresh setup headers

package convert

import (
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/tafforge/tafforge/pkg/taf"
)

// Split writes every track of a container as its own Ogg Opus file in
// outDir and returns the written paths. Track files are numbered from 1.
func Split(c *taf.Container, outDir string) ([]string, error) {
	pkts, err := c.AudioPackets()
	if err != nil {
		return nil, err
	}
	if len(pkts) < 2 {
		return nil, fmt.Errorf("no setup packets: %w", taf.ErrUnsupportedStreamFormat)
	}
	ident, comment := pkts[0], pkts[1]

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", outDir, err)
	}

	var paths []string
	for i := 0; i < c.Tracks(); i++ {
		audio, err := c.TrackPackets(i)
		if err != nil {
			return nil, err
		}

		packets := append([][]byte{ident, comment}, audio...)
		stream, err := taf.EncodeOggStream(packets, c.Header.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("track %d: %w", i, err)
		}

		path := filepath.Join(outDir, fmt.Sprintf("track%02d.opus", i+1))
		if err := os.WriteFile(path, stream, 0o644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", path, err)
		}
		paths = append(paths, path)

		log.WithFields(log.Fields{
			"track":   i + 1,
			"path":    path,
			"packets": len(audio),
		}).Debug("Track written")
	}

	return paths, nil
}
