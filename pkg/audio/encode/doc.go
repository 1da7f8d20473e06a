// ABOUTME: Opus encoding package for the conversion pipeline
// ABOUTME: Turns 48 kHz stereo PCM into fixed-duration Opus packets

// Package encode turns PCM audio into Opus packets.
//
// The encoder consumes interleaved 16-bit stereo samples at 48 kHz and
// produces one Opus packet per 20 ms frame. Callers are responsible for
// resampling and channel layout; see the resample package and
// audio.Clip.ToStereo.
package encode
