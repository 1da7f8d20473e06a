// ABOUTME: Audio decoding package for the conversion pipeline
// ABOUTME: Full-file MP3, FLAC, WAV and raw PCM decoding to clips

// Package decode turns compressed audio files into PCM clips.
//
// Each decoder reads a whole source file and returns an audio.Clip with
// interleaved 16-bit samples at the source rate. ForPath selects a
// decoder from the file extension:
//
//	clip, err := decode.File("story.mp3")
//
// Ogg Opus input needs no decoding and is handled by the conversion
// layer directly.
package decode
