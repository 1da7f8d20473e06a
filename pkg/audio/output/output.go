// ABOUTME: Audio output interface definition
// ABOUTME: Common interface for audio playback backends

package output

// Output represents an audio output device.
type Output interface {
	// Open initializes the output device.
	Open(sampleRate, channels int) error

	// Write outputs interleaved samples, blocking until written.
	Write(samples []int16) error

	// Close releases output resources.
	Close() error

	// SetVolume sets the software volume (0-100).
	SetVolume(volume int)

	// GetVolume returns the current volume.
	GetVolume() int

	// SetMuted sets the mute state.
	SetMuted(muted bool)

	// IsMuted returns the mute state.
	IsMuted() bool
}
