// ABOUTME: Package documentation for the TAF container codec
// ABOUTME: Describes the container layout and the package's role

// Package taf encodes, decodes, validates and compares TAF containers.
//
// A TAF container is a fixed 4096-byte header block followed by a stream of
// Ogg pages that are each exactly 4096 bytes. The header carries a SHA-1
// over the page payloads, the page stream length, a timestamp that doubles
// as the Ogg bitstream serial number, and the page index of each chapter.
// The payload is a single Opus bitstream: identification packet, comment
// packet, then audio packets in playback order, with all tracks merged into
// one logical stream.
//
// The codec is pure and synchronous: every operation is a function of
// in-memory byte buffers with no I/O, so independent builds and parses may
// run concurrently without locking.
package taf
