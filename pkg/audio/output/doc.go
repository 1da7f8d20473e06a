// ABOUTME: Audio output package for local playback
// ABOUTME: Defines the sink interface and the oto speaker backend

// Package output plays PCM audio on the local machine.
//
// The Output interface hides the platform backend. The oto
// implementation streams 16-bit samples through a persistent player
// and applies software volume and mute.
package output
