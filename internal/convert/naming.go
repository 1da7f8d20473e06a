// ABOUTME: Output naming from audio metadata
// ABOUTME: Tag-derived names with filesystem-safe sanitization

package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"

	"github.com/tafforge/tafforge/internal/version"
)

// Extension is the container file extension.
const Extension = ".taf"

// vendorString identifies the tool in written comment headers.
func vendorString() string {
	return fmt.Sprintf("%s %s", version.Product, version.Version)
}

// Metadata is the subset of audio tags used for naming.
type Metadata struct {
	Artist string
	Album  string
	Title  string
}

// ReadMetadata extracts tags from an audio file. Missing or untagged
// files yield an empty Metadata without error.
func ReadMetadata(path string) Metadata {
	f, err := os.Open(path)
	if err != nil {
		return Metadata{}
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return Metadata{}
	}
	return Metadata{
		Artist: m.AlbumArtist(),
		Album:  m.Album(),
		Title:  m.Title(),
	}
}

// OutputName derives a container file name for a set of source files.
// Tag metadata of the first source wins; the containing directory name
// is the fallback.
func OutputName(inputs []string) string {
	for _, in := range inputs {
		meta := ReadMetadata(in)
		if meta.Artist != "" && meta.Album != "" {
			return Sanitize(meta.Artist+" - "+meta.Album) + Extension
		}
		if meta.Album != "" {
			return Sanitize(meta.Album) + Extension
		}
	}

	if len(inputs) > 0 {
		dir := filepath.Base(filepath.Dir(inputs[0]))
		if dir != "." && dir != string(filepath.Separator) {
			return Sanitize(dir) + Extension
		}
		base := filepath.Base(inputs[0])
		return Sanitize(strings.TrimSuffix(base, filepath.Ext(base))) + Extension
	}
	return "output" + Extension
}

// Sanitize strips characters that FAT filesystems and SD card readers
// reject, collapsing runs of whitespace.
func Sanitize(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			b.WriteRune('_')
		default:
			if r < 0x20 {
				continue
			}
			b.WriteRune(r)
		}
	}
	out := strings.Join(strings.Fields(b.String()), " ")
	out = strings.Trim(out, ". ")
	if out == "" {
		out = "output"
	}
	return out
}
