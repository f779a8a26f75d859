package library

import (
	"os"
	"path/filepath"
	"strings"
)

// coverNames lists album art base names in priority order.
var coverNames = []string{"cover", "folder", "album", "front"}

var coverExts = []string{".jpg", ".jpeg", ".png"}

// CoverArt returns the album art image next to trackPath, or "" when the
// directory has none. Names match case-insensitively.
func CoverArt(trackPath string) string {
	entries, err := os.ReadDir(filepath.Dir(trackPath))
	if err != nil {
		return ""
	}

	found := make(map[string]string, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		found[strings.ToLower(e.Name())] = e.Name()
	}

	for _, name := range coverNames {
		for _, ext := range coverExts {
			if actual, ok := found[name+ext]; ok {
				return filepath.Join(filepath.Dir(trackPath), actual)
			}
		}
	}
	return ""
}
