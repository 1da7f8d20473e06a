// ABOUTME: Audio fundamentals package providing core types and utilities
// ABOUTME: Defines Format, Clip types and channel/sample helpers

// Package audio provides the fundamental audio types for the conversion
// pipeline.
//
// This package defines the core types used throughout the tafforge library:
//   - Format: Describes a PCM stream (sample rate, channels, bit depth)
//   - Clip: A fully decoded piece of audio as interleaved int16 samples
//
// It also provides channel-layout helpers for converting decoded audio to
// the stereo layout the Opus encoder consumes.
package audio
