// ABOUTME: Conversion pipeline from source audio files to containers
// ABOUTME: Decode, resample, encode and container assembly per input track

package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/tafforge/tafforge/pkg/audio/decode"
	"github.com/tafforge/tafforge/pkg/audio/encode"
	"github.com/tafforge/tafforge/pkg/audio/resample"
	"github.com/tafforge/tafforge/pkg/taf"
)

// Options control a conversion run.
type Options struct {
	// Bitrate of the encoded Opus stream in bits per second.
	// Zero selects the encoder default.
	Bitrate int

	// Timestamp seeds the container header and bitstream serial.
	// Zero means the current time.
	Timestamp uint32
}

// isOgg reports whether a path carries an already encoded Ogg Opus stream.
func isOgg(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".opus", ".ogg":
		return true
	}
	return false
}

// SupportedInput reports whether a file can serve as a conversion source.
func SupportedInput(path string) bool {
	return isOgg(path) || decode.Supported(path)
}

// Track turns one source file into a standalone Ogg Opus stream.
// Pre-encoded Ogg input is passed through untouched.
func Track(path string, enc *encode.OpusEncoder, serial uint32) ([]byte, error) {
	if isOgg(path) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		return data, nil
	}

	clip, err := decode.File(path)
	if err != nil {
		return nil, err
	}

	stereo := clip.ToStereo()
	if clip.Format.SampleRate != taf.SampleRate {
		r := resample.New(clip.Format.SampleRate, taf.SampleRate, encode.Channels)
		stereo = r.Resample(stereo)
	}

	audio, err := enc.EncodeStream(stereo)
	if err != nil {
		return nil, err
	}

	packets := [][]byte{
		taf.NewIdentificationPacket(encode.Channels, encode.PreSkip),
		taf.NewCommentPacket(vendorString()),
	}
	packets = append(packets, audio...)

	return taf.EncodeOggStream(packets, serial)
}

// Files converts a list of source files, one track each, into a container.
func Files(inputs []string, opts Options) ([]byte, error) {
	if len(inputs) == 0 {
		return nil, taf.ErrEmptyInput
	}

	timestamp := opts.Timestamp
	if timestamp == 0 {
		timestamp = taf.TimestampNow()
	}

	enc, err := encode.NewOpus(opts.Bitrate)
	if err != nil {
		return nil, err
	}
	defer enc.Close()

	tracks := make([][]byte, 0, len(inputs))
	for i, path := range inputs {
		log.WithFields(log.Fields{
			"source": path,
			"track":  i,
		}).Info("Encoding track")

		track, err := Track(path, enc, timestamp)
		if err != nil {
			return nil, fmt.Errorf("track %d (%s): %w", i, path, err)
		}
		tracks = append(tracks, track)
	}

	return taf.Build(tracks, timestamp)
}

// ToFile converts source files and writes the container. The data lands
// in a uniquely named temp file first and is renamed into place, so a
// failed run never leaves a partial artifact behind.
func ToFile(inputs []string, outPath string, opts Options) error {
	data, err := Files(inputs, opts)
	if err != nil {
		return err
	}

	dir := filepath.Dir(outPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	tmp := filepath.Join(dir, "."+uuid.New().String()+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, outPath); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to move output into place: %w", err)
	}

	log.WithFields(log.Fields{
		"output": outPath,
		"tracks": len(inputs),
		"bytes":  len(data),
	}).Info("Container written")

	return nil
}
