package library

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"

	"github.com/llehouerou/dancefloor/internal/dancetree"
)

// ReadTags reads artist, title and dance from a file's tags.
// The dance comes from the genre tag; a missing title falls back to the
// file name.
func ReadTags(path string) (dancetree.TrackRef, error) {
	f, err := os.Open(path)
	if err != nil {
		return dancetree.TrackRef{}, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return dancetree.TrackRef{}, err
	}

	title := strings.TrimSpace(m.Title())
	if title == "" {
		base := filepath.Base(path)
		title = strings.TrimSuffix(base, filepath.Ext(base))
	}

	return dancetree.TrackRef{
		Dance:  strings.TrimSpace(m.Genre()),
		Artist: strings.TrimSpace(m.Artist()),
		Title:  title,
		Path:   path,
	}, nil
}
