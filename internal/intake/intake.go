// Package intake turns local image files into batch-upload items for the
// gallery. It walks a directory tree, keeps the supported image files, and
// derives each item's title from its file name.
package intake

import (
	"fmt"
	"io/fs"
	"net/url"
	"path/filepath"
	"sort"
	"strings"

	"mugen/internal/gallery"
)

// DefaultAuthor is used when the caller does not name an uploader.
const DefaultAuthor = "本地收藏"

// IsImage checks whether a file name has a supported image extension.
func IsImage(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp":
		return true
	default:
		return false
	}
}

// TitleFromPath derives a display title from a file path: the base name
// without its extension, with separators softened to spaces.
func TitleFromPath(path string) string {
	base := filepath.Base(path)
	title := strings.TrimSuffix(base, filepath.Ext(base))
	title = strings.ReplaceAll(title, "_", " ")
	title = strings.ReplaceAll(title, "-", " ")
	return strings.TrimSpace(title)
}

// fileURL builds a file URI for an absolute path, the form the gallery
// stores as the record URL.
func fileURL(absPath string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(absPath)}
	return u.String()
}

// ScanDirectory walks dir recursively and returns one upload item per
// non-empty supported image file, sorted by path for a stable upload order.
// author and tags are applied to every item; empty values fall back to
// DefaultAuthor and the store's sentinel tag respectively.
func ScanDirectory(dir string, author string, tags []string) ([]gallery.UploadItem, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", dir, err)
	}
	if author == "" {
		author = DefaultAuthor
	}

	var paths []string
	err = filepath.WalkDir(absDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !IsImage(path) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if info.Size() == 0 {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", absDir, err)
	}
	sort.Strings(paths)

	items := make([]gallery.UploadItem, 0, len(paths))
	for _, p := range paths {
		items = append(items, gallery.UploadItem{
			Title:  TitleFromPath(p),
			Author: author,
			URL:    fileURL(p),
			Tags:   tags,
		})
	}
	return items, nil
}
