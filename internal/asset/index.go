// Package asset resolves image references to decoded images. The
// motion core never touches this package directly; it only consumes
// the natural pixel dimensions exposed through the scene boundary.
package asset

import (
	"os"
	"path/filepath"
	"strings"
)

// Index maps lowercase image stems to filesystem paths. When the same
// stem exists with several extensions, PNG wins over TGA, TGA over
// JPEG (alpha support).
type Index struct {
	entries map[string]string // stem.lower() → full path
}

var extPriority = map[string]int{
	".png":  3,
	".tga":  2,
	".jpg":  1,
	".jpeg": 1,
}

// BuildIndex walks assetDir recursively and indexes every supported
// image file.
func BuildIndex(assetDir string) *Index {
	idx := &Index{entries: make(map[string]string)}

	filepath.WalkDir(assetDir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		prio, ok := extPriority[ext]
		if !ok {
			return nil
		}
		stem := strings.ToLower(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))

		existing, exists := idx.entries[stem]
		if !exists || prio > extPriority[strings.ToLower(filepath.Ext(existing))] {
			idx.entries[stem] = path
		}
		return nil
	})

	return idx
}

// ResolvePath returns the filesystem path for an image reference, or
// ("", false). References may carry directory prefixes or extensions;
// only the stem matters.
func (idx *Index) ResolvePath(ref string) (string, bool) {
	ref = strings.ReplaceAll(ref, "\\", "/")
	base := filepath.Base(ref)
	stem := strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))

	path, ok := idx.entries[stem]
	return path, ok
}

// Len returns the number of indexed images.
func (idx *Index) Len() int {
	return len(idx.entries)
}
