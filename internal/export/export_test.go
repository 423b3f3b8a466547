package export

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveFromHTTP(t *testing.T) {
	payload := []byte("fake-png-bytes")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "out.png")
	err := NewExporter().Save(context.Background(), srv.URL, dest)
	require.NoError(t, err)

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestSaveHTTPErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "out.png")
	err := NewExporter().Save(context.Background(), srv.URL, dest)
	require.Error(t, err)

	var ee *Error
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, "下载失败", ee.Message)
	assert.NoFileExists(t, dest)
}

func TestSaveFromDataURL(t *testing.T) {
	payload := []byte{0x89, 'P', 'N', 'G'}
	raw := "data:image/png;base64," + base64.StdEncoding.EncodeToString(payload)

	dest := filepath.Join(t.TempDir(), "gen.png")
	err := NewExporter().Save(context.Background(), raw, dest)
	require.NoError(t, err)

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestFetchMalformedDataURL(t *testing.T) {
	_, err := NewExporter().Fetch(context.Background(), "data:image/png;base64")
	var ee *Error
	require.True(t, errors.As(err, &ee))
}

func TestSaveFromFileURL(t *testing.T) {
	src := filepath.Join(t.TempDir(), "src.jpg")
	require.NoError(t, os.WriteFile(src, []byte("local"), 0o644))

	dest := filepath.Join(t.TempDir(), "copy.jpg")
	err := NewExporter().Save(context.Background(), "file://"+filepath.ToSlash(src), dest)
	require.NoError(t, err)

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, []byte("local"), got)
}

func TestSaveFailureLeavesNoPartialFile(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "missing", "out.png")
	err := NewExporter().Save(context.Background(), "data:image/png;base64,QQ==", dest)
	require.Error(t, err)

	entries, err2 := os.ReadDir(dir)
	require.NoError(t, err2)
	for _, e := range entries {
		assert.False(t, strings.HasSuffix(e.Name(), ".tmp"), "stray temp file %s", e.Name())
	}
}

func TestWriteAtomicReplacesExisting(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, os.WriteFile(dest, []byte("old"), 0o644))
	require.NoError(t, writeAtomic(dest, []byte("new")))

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), got)
}
