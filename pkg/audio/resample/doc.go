// ABOUTME: Audio resampling package using linear interpolation
// ABOUTME: Converts decoded clips to the 48 kHz rate the encoder needs

// Package resample provides audio sample rate conversion.
//
// Uses linear interpolation for converting between sample rates.
// Handles both upsampling and downsampling.
//
// Example:
//
//	r := resample.New(44100, 48000, 2)
//	out := r.Resample(inputSamples)
package resample
