// Package tags reads embedded audio tags to label log lines and to
// cross-check a file's extension against its content.
package tags

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dhowden/tag"
)

// Info is the subset of tag data the normalizer uses.
type Info struct {
	FileType tag.FileType // content sniff; UnknownFileType when no tags were found
	Format   tag.Format   // tag format, e.g. ID3v2.3, MP4
	Title    string
	Artist   string
	Album    string
}

// Read opens path and parses its tags. A file without any recognizable tag
// block returns an empty Info and a nil error.
func Read(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if errors.Is(err, tag.ErrNoTagsFound) {
		return Info{}, nil
	}
	if err != nil {
		return Info{}, fmt.Errorf("could not read tags: %w", err)
	}
	return Info{
		FileType: m.FileType(),
		Format:   m.Format(),
		Title:    strings.TrimSpace(m.Title()),
		Artist:   strings.TrimSpace(m.Artist()),
		Album:    strings.TrimSpace(m.Album()),
	}, nil
}

// Label returns "Artist - Title", just the title, or "" when neither is set.
func (i Info) Label() string {
	switch {
	case i.Artist != "" && i.Title != "":
		return i.Artist + " - " + i.Title
	case i.Title != "":
		return i.Title
	default:
		return ""
	}
}
