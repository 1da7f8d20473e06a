// ABOUTME: Oto-based audio output implementation
// ABOUTME: Handles PCM playback with software volume control using oto library

package output

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ebitengine/oto/v3"
	log "github.com/sirupsen/logrus"

	"github.com/tafforge/tafforge/pkg/audio"
)

// Oto output implementation using the oto library.
type Oto struct {
	otoCtx     *oto.Context
	player     *oto.Player
	pipeReader *io.PipeReader
	pipeWriter *io.PipeWriter
	sampleRate int
	channels   int
	volume     int
	muted      bool
	ready      bool
}

// NewOto creates a new Oto output.
func NewOto() Output {
	return &Oto{volume: 100}
}

// Open initializes the output device.
func (o *Oto) Open(sampleRate, channels int) error {
	// oto allows only one context per process, so a second Open with the
	// same format reuses it and a format change is refused.
	if o.otoCtx != nil {
		if o.sampleRate == sampleRate && o.channels == channels {
			return nil
		}
		return fmt.Errorf("audio output already open at %dHz %dch", o.sampleRate, o.channels)
	}

	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return fmt.Errorf("failed to create oto context: %w", err)
	}
	<-readyChan

	o.otoCtx = ctx
	o.sampleRate = sampleRate
	o.channels = channels

	// A pipe feeds the persistent player so writes stream continuously.
	o.pipeReader, o.pipeWriter = io.Pipe()
	o.player = o.otoCtx.NewPlayer(o.pipeReader)
	o.player.Play()
	o.ready = true

	log.WithFields(log.Fields{
		"sample_rate": sampleRate,
		"channels":    channels,
	}).Debug("Audio output initialized")

	return nil
}

// Write outputs audio samples, blocking until the pipe accepts them.
func (o *Oto) Write(samples []int16) error {
	if !o.ready {
		return fmt.Errorf("output not initialized")
	}

	scaled := applyVolume(samples, o.volume, o.muted)

	buf := make([]byte, len(scaled)*2)
	for i, sample := range scaled {
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(sample))
	}

	if _, err := o.pipeWriter.Write(buf); err != nil {
		return fmt.Errorf("pipe write failed: %w", err)
	}
	return nil
}

// Close releases output resources.
func (o *Oto) Close() error {
	if o.pipeWriter != nil {
		o.pipeWriter.Close()
		o.pipeWriter = nil
	}
	if o.player != nil {
		o.player.Close()
		o.player = nil
	}
	if o.pipeReader != nil {
		o.pipeReader.Close()
		o.pipeReader = nil
	}
	if o.otoCtx != nil {
		o.otoCtx.Suspend()
		o.ready = false
	}
	return nil
}

// SetVolume sets the volume (0-100).
func (o *Oto) SetVolume(volume int) {
	if volume < 0 {
		volume = 0
	}
	if volume > 100 {
		volume = 100
	}
	o.volume = volume
}

// GetVolume returns the current volume.
func (o *Oto) GetVolume() int {
	return o.volume
}

// SetMuted sets the mute state.
func (o *Oto) SetMuted(muted bool) {
	o.muted = muted
}

// IsMuted returns the mute state.
func (o *Oto) IsMuted() bool {
	return o.muted
}

// applyVolume scales samples for volume and mute with clipping protection.
func applyVolume(samples []int16, volume int, muted bool) []int16 {
	multiplier := getVolumeMultiplier(volume, muted)
	if multiplier == 1.0 {
		return samples
	}

	result := make([]int16, len(samples))
	for i, sample := range samples {
		result[i] = audio.Clamp16(int(float64(sample) * multiplier))
	}
	return result
}

// getVolumeMultiplier calculates the volume multiplier.
func getVolumeMultiplier(volume int, muted bool) float64 {
	if muted {
		return 0.0
	}
	return float64(volume) / 100.0
}
