// ABOUTME: Container playback engine
// ABOUTME: Decodes Opus packets track by track and feeds the audio output

package player

import (
	"context"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/hraban/opus.v2"

	"github.com/tafforge/tafforge/pkg/audio/output"
	"github.com/tafforge/tafforge/pkg/taf"
)

// State is the playback state.
type State int

const (
	StateStopped State = iota
	StatePlaying
	StatePaused
)

func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	default:
		return "stopped"
	}
}

// Status is a point-in-time snapshot of the player for display.
type Status struct {
	State      State
	Track      int
	TrackCount int
	Position   time.Duration
	Length     time.Duration
	Total      time.Duration
	Volume     int
	Muted      bool
}

// Player plays one container through an audio output.
type Player struct {
	out     output.Output
	decoder *opus.Decoder

	tracks  [][][]byte
	lengths []time.Duration
	total   time.Duration

	mu       sync.Mutex
	state    State
	track    int
	pkt      int
	position time.Duration
	wake     chan struct{}
}

// New prepares a player for a parsed container. The output is opened at
// the stream's sample rate with a stereo layout.
func New(c *taf.Container, out output.Output) (*Player, error) {
	info, err := c.StreamInfo()
	if err != nil {
		return nil, err
	}

	p := &Player{
		out:  out,
		wake: make(chan struct{}, 1),
	}
	for i := 0; i < c.Tracks(); i++ {
		pkts, err := c.TrackPackets(i)
		if err != nil {
			return nil, err
		}
		length, err := c.TrackDuration(i)
		if err != nil {
			return nil, err
		}
		p.tracks = append(p.tracks, pkts)
		p.lengths = append(p.lengths, length)
		p.total += length
	}

	// The container may carry mono audio, but the decoder always emits
	// stereo so the output is opened once with a fixed layout.
	decoder, err := opus.NewDecoder(taf.SampleRate, 2)
	if err != nil {
		return nil, fmt.Errorf("failed to create opus decoder: %w", err)
	}
	p.decoder = decoder

	if err := out.Open(taf.SampleRate, 2); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"tracks":   len(p.tracks),
		"duration": p.total.Round(time.Second),
		"channels": info.Channels,
	}).Debug("Player ready")

	return p, nil
}

// Run drives the decode loop until the context is cancelled or the last
// track finishes while stopped state is requested.
func (p *Player) Run(ctx context.Context) error {
	// 120 ms is the longest Opus frame; stereo samples.
	pcm := make([]int16, 5760*2)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		p.mu.Lock()
		if p.state != StatePlaying {
			p.mu.Unlock()
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-p.wake:
			}
			continue
		}

		if p.track >= len(p.tracks) {
			p.state = StateStopped
			p.track = 0
			p.pkt = 0
			p.position = 0
			p.mu.Unlock()
			continue
		}
		if p.pkt >= len(p.tracks[p.track]) {
			p.track++
			p.pkt = 0
			p.position = 0
			p.mu.Unlock()
			continue
		}

		packet := p.tracks[p.track][p.pkt]
		p.pkt++
		p.mu.Unlock()

		frames, err := p.decoder.Decode(packet, pcm)
		if err != nil {
			log.WithError(err).Warn("Dropping undecodable packet")
			continue
		}

		if err := p.out.Write(pcm[:frames*2]); err != nil {
			return fmt.Errorf("audio output error: %w", err)
		}

		p.mu.Lock()
		p.position += time.Duration(frames) * time.Second / time.Duration(taf.SampleRate)
		p.mu.Unlock()
	}
}

func (p *Player) signal() {
	select {
	case p.wake <- struct{}{}:
	default:
	}
}

// Play starts or resumes playback.
func (p *Player) Play() {
	p.mu.Lock()
	p.state = StatePlaying
	p.mu.Unlock()
	p.signal()
}

// Pause suspends playback, keeping the position.
func (p *Player) Pause() {
	p.mu.Lock()
	if p.state == StatePlaying {
		p.state = StatePaused
	}
	p.mu.Unlock()
}

// TogglePause flips between playing and paused.
func (p *Player) TogglePause() {
	p.mu.Lock()
	switch p.state {
	case StatePlaying:
		p.state = StatePaused
	default:
		p.state = StatePlaying
	}
	p.mu.Unlock()
	p.signal()
}

// Stop halts playback and rewinds to the first track.
func (p *Player) Stop() {
	p.mu.Lock()
	p.state = StateStopped
	p.track = 0
	p.pkt = 0
	p.position = 0
	p.mu.Unlock()
}

// NextTrack skips to the start of the next track, clamping at the end.
func (p *Player) NextTrack() {
	p.mu.Lock()
	if p.track < len(p.tracks)-1 {
		p.track++
	}
	p.pkt = 0
	p.position = 0
	p.mu.Unlock()
	p.signal()
}

// PrevTrack rewinds to the start of the current track, or jumps to the
// previous one when already near the start.
func (p *Player) PrevTrack() {
	p.mu.Lock()
	if p.position < 2*time.Second && p.track > 0 {
		p.track--
	}
	p.pkt = 0
	p.position = 0
	p.mu.Unlock()
	p.signal()
}

// SetVolume adjusts the output volume (0-100).
func (p *Player) SetVolume(volume int) {
	p.out.SetVolume(volume)
}

// AdjustVolume changes the volume by a delta.
func (p *Player) AdjustVolume(delta int) {
	p.out.SetVolume(p.out.GetVolume() + delta)
}

// ToggleMute flips the mute state.
func (p *Player) ToggleMute() {
	p.out.SetMuted(!p.out.IsMuted())
}

// Status returns a snapshot for display.
func (p *Player) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()

	length := time.Duration(0)
	if p.track < len(p.lengths) {
		length = p.lengths[p.track]
	}
	return Status{
		State:      p.state,
		Track:      p.track,
		TrackCount: len(p.tracks),
		Position:   p.position,
		Length:     length,
		Total:      p.total,
		Volume:     p.out.GetVolume(),
		Muted:      p.out.IsMuted(),
	}
}

// Close releases the audio output.
func (p *Player) Close() error {
	p.Stop()
	return p.out.Close()
}
