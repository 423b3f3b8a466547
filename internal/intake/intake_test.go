package intake

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsImage(t *testing.T) {
	tests := []struct {
		name     string
		expected bool
	}{
		{"image.PNG", true},
		{"image.jpg", true},
		{"image.jpeg", true},
		{"image.gif", true},
		{"image.webp", true},
		{"image.txt", false},
		{"image", false},
		{".jpeg", true},
	}
	for _, test := range tests {
		assert.Equal(t, test.expected, IsImage(test.name), "IsImage(%s)", test.name)
	}
}

func TestTitleFromPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/a/b/sakura_festival.png", "sakura festival"},
		{"/a/neon-city.JPG", "neon city"},
		{"樱花祭.png", "樱花祭"},
		{"/a/plain.webp", "plain"},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, TitleFromPath(test.path), "TitleFromPath(%s)", test.path)
	}
}

func TestScanDirectory(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "sub")
	require.NoError(t, os.Mkdir(sub, 0755))

	write := func(path string, size int) {
		content := make([]byte, size)
		if size > 0 {
			content[0] = 'x'
		}
		require.NoError(t, os.WriteFile(path, content, 0644))
	}
	write(filepath.Join(root, "one.png"), 4)
	write(filepath.Join(root, "two.JPG"), 4)
	write(filepath.Join(root, "notes.txt"), 4)
	write(filepath.Join(root, "empty.gif"), 0) // 0-byte files are skipped
	write(filepath.Join(sub, "three.jpeg"), 4)

	items, err := ScanDirectory(root, "作者", []string{"本地"})
	require.NoError(t, err)
	require.Len(t, items, 3, "text files and empty images are excluded")

	titles := make([]string, len(items))
	for i, item := range items {
		titles[i] = item.Title
		assert.Equal(t, "作者", item.Author)
		assert.Equal(t, []string{"本地"}, item.Tags)
		assert.True(t, strings.HasPrefix(item.URL, "file://"), "URL %q", item.URL)
	}
	assert.ElementsMatch(t, []string{"one", "two", "three"}, titles)
}

func TestScanDirectoryDefaults(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.png"), []byte("x"), 0644))

	items, err := ScanDirectory(root, "", nil)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, DefaultAuthor, items[0].Author)
	assert.Nil(t, items[0].Tags, "tag defaulting belongs to the store")
}

func TestScanDirectoryMissing(t *testing.T) {
	_, err := ScanDirectory(filepath.Join(t.TempDir(), "nope"), "", nil)
	assert.Error(t, err)
}
