// ABOUTME: Tests for batch discovery and concurrent conversion
// ABOUTME: Folder grouping, naming and per-job error isolation

package batch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tafforge/tafforge/internal/convert"
	"github.com/tafforge/tafforge/pkg/taf"
)

func writeWAV(t *testing.T, path string, frames int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	f, err := os.Create(path)
	require.NoError(t, err)

	enc := wav.NewEncoder(f, 48000, 16, 2, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 2, SampleRate: 48000},
		SourceBitDepth: 16,
		Data:           make([]int, frames*2),
	}
	require.NoError(t, enc.Write(buf))
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())
}

func TestDiscoverGroupsByFolder(t *testing.T) {
	root := t.TempDir()
	writeWAV(t, filepath.Join(root, "BookA", "02.wav"), 480)
	writeWAV(t, filepath.Join(root, "BookA", "01.wav"), 480)
	writeWAV(t, filepath.Join(root, "BookB", "01.wav"), 480)
	require.NoError(t, os.WriteFile(filepath.Join(root, "BookA", "cover.jpg"), []byte("x"), 0o644))

	jobs, err := Discover(root, filepath.Join(root, "out"))
	require.NoError(t, err)
	require.Len(t, jobs, 2)

	assert.Equal(t, "BookA.taf", filepath.Base(jobs[0].Output))
	require.Len(t, jobs[0].Inputs, 2)
	// Inputs are ordered by name so track order is stable.
	assert.Equal(t, "01.wav", filepath.Base(jobs[0].Inputs[0]))
	assert.Equal(t, "02.wav", filepath.Base(jobs[0].Inputs[1]))

	assert.Equal(t, "BookB.taf", filepath.Base(jobs[1].Output))
}

func TestProcessConvertsEverything(t *testing.T) {
	root := t.TempDir()
	writeWAV(t, filepath.Join(root, "BookA", "01.wav"), 2400)
	writeWAV(t, filepath.Join(root, "BookB", "01.wav"), 2400)

	outDir := filepath.Join(root, "out")
	results, err := Process(context.Background(), root, outDir,
		convert.Options{Bitrate: 64000, Timestamp: 5}, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)

	for _, res := range results {
		require.NoError(t, res.Err, res.Job.Dir)
		data, err := os.ReadFile(res.Job.Output)
		require.NoError(t, err)
		c, err := taf.Parse(data)
		require.NoError(t, err)
		assert.True(t, taf.Validate(c).OK())
	}
}

func TestProcessIsolatesFailures(t *testing.T) {
	root := t.TempDir()
	writeWAV(t, filepath.Join(root, "Good", "01.wav"), 2400)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "Bad"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "Bad", "01.wav"), []byte("junk"), 0o644))

	results, err := Process(context.Background(), root, filepath.Join(root, "out"),
		convert.Options{Bitrate: 64000, Timestamp: 5}, 0)
	require.NoError(t, err)
	require.Len(t, results, 2)

	byDir := map[string]error{}
	for _, res := range results {
		byDir[filepath.Base(res.Job.Dir)] = res.Err
	}
	assert.Error(t, byDir["Bad"])
	assert.NoError(t, byDir["Good"])
}

func TestProcessEmptyTree(t *testing.T) {
	_, err := Process(context.Background(), t.TempDir(), t.TempDir(), convert.Options{}, 1)
	assert.Error(t, err)
}
