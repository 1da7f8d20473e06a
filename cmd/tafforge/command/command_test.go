// ABOUTME: Tests for the CLI subcommands
// ABOUTME: Convert, validate, compare and split against temp fixtures

package command

import (
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tafforge/tafforge/pkg/taf"
)

func writeWAV(t *testing.T, path string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)

	enc := wav.NewEncoder(f, 48000, 16, 2, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 2, SampleRate: 48000},
		SourceBitDepth: 16,
		Data:           make([]int, 4800),
	}
	require.NoError(t, enc.Write(buf))
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())
}

func convertFixture(t *testing.T, out string, timestamp uint32) {
	t.Helper()
	src := filepath.Join(t.TempDir(), "01.wav")
	writeWAV(t, src)

	cmd := &Convert{Output: out, Bitrate: 64000}
	cmd.Timestamp = timestamp
	cmd.LogLevel = "error"
	cmd.Args.Inputs = []string{src}
	require.NoError(t, cmd.Execute(nil))
}

func TestConvertCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "story.taf")
	convertFixture(t, out, 11)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	c, err := taf.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, uint32(11), c.Header.Timestamp)
	assert.True(t, taf.Validate(c).OK())
}

func TestValidateCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "story.taf")
	convertFixture(t, out, 11)

	cmd := &Validate{Quiet: true}
	cmd.LogLevel = "error"
	cmd.Args.Files = []string{out}
	assert.NoError(t, cmd.Execute(nil))

	// A corrupted copy must fail.
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	data[len(data)-10] ^= 0xFF
	bad := filepath.Join(t.TempDir(), "bad.taf")
	require.NoError(t, os.WriteFile(bad, data, 0o644))

	cmd = &Validate{Quiet: true}
	cmd.LogLevel = "error"
	cmd.Args.Files = []string{bad}
	assert.Error(t, cmd.Execute(nil))
}

func TestCompareCommand(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.taf")
	b := filepath.Join(dir, "b.taf")
	convertFixture(t, a, 11)

	// Identical copy compares clean.
	data, err := os.ReadFile(a)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(b, data, 0o644))

	cmd := &Compare{}
	cmd.LogLevel = "error"
	cmd.Args.A = a
	cmd.Args.B = b
	assert.NoError(t, cmd.Execute(nil))

	// A different timestamp is a reported difference.
	convertFixture(t, b, 12)
	cmd = &Compare{Detailed: true}
	cmd.LogLevel = "error"
	cmd.Args.A = a
	cmd.Args.B = b
	assert.Error(t, cmd.Execute(nil))
}

func TestSplitCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "story.taf")
	convertFixture(t, out, 11)

	splitDir := filepath.Join(t.TempDir(), "tracks")
	cmd := &Split{Output: splitDir}
	cmd.LogLevel = "error"
	cmd.Args.File = out
	require.NoError(t, cmd.Execute(nil))

	entries, err := os.ReadDir(splitDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "track01.opus", entries[0].Name())
}

func TestVersionCommand(t *testing.T) {
	cmd := &Version{Name: "tafforge", Version: "0.1.0"}
	assert.NoError(t, cmd.Execute(nil))
}

func TestTimestampRef(t *testing.T) {
	out := filepath.Join(t.TempDir(), "ref.taf")
	convertFixture(t, out, 99)

	opts := TimestampOptions{Ref: out}
	ts, err := opts.resolve()
	require.NoError(t, err)
	assert.Equal(t, uint32(99), ts)

	opts = TimestampOptions{Timestamp: 5}
	ts, err = opts.resolve()
	require.NoError(t, err)
	assert.Equal(t, uint32(5), ts)

	opts = TimestampOptions{}
	ts, err = opts.resolve()
	require.NoError(t, err)
	assert.NotZero(t, ts)
}
