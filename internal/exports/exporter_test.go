package exports

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"already safe", "landing.html", "landing.html"},
		{"spaces and punctuation", "My Page! v2.html", "My_Page__v2.html"},
		{"path separators", "a/b\\c.html", "a_b_c.html"},
		{"unicode", "pägé.html", "p_g_.html"},
		{"only unsafe", "???", "___"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeFilename(tt.in)
			assert.Equal(t, tt.want, got)
			// sanitization is idempotent
			assert.Equal(t, got, SanitizeFilename(got))
		})
	}
}

func TestSanitizeFilenameNeutralizesTraversal(t *testing.T) {
	for _, in := range []string{"../escape.html", "../../etc/passwd", "..\\..\\boot.ini"} {
		got := SanitizeFilename(in)
		assert.NotContains(t, got, "/")
		assert.NotContains(t, got, "\\")
		// the joined path must stay inside the export directory
		joined := filepath.Join("exports", got)
		assert.True(t, strings.HasPrefix(joined, "exports"+string(filepath.Separator)), "joined=%s", joined)
	}
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	e := NewExporter(dir, "/exports")

	html := "<html><body><h1>Hi</h1></body></html>"
	publicPath, err := e.Write(html, "landing.html")
	require.NoError(t, err)
	assert.Equal(t, "/exports/landing.html", publicPath)

	data, err := os.ReadFile(filepath.Join(dir, "landing.html"))
	require.NoError(t, err)
	assert.Equal(t, html, string(data))
}

func TestWriteSanitizesName(t *testing.T) {
	dir := t.TempDir()
	e := NewExporter(dir, "/exports")

	publicPath, err := e.Write("<html></html>", "My Page! v2.html")
	require.NoError(t, err)
	assert.Equal(t, "/exports/My_Page__v2.html", publicPath)

	_, err = os.Stat(filepath.Join(dir, "My_Page__v2.html"))
	require.NoError(t, err)
}

func TestWriteOverwritesExisting(t *testing.T) {
	dir := t.TempDir()
	e := NewExporter(dir, "/exports")

	_, err := e.Write("<html>first</html>", "page.html")
	require.NoError(t, err)

	_, err = e.Write("<html>second</html>", "page.html")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "page.html"))
	require.NoError(t, err)
	assert.Equal(t, "<html>second</html>", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestWriteCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "exports")
	e := NewExporter(dir, "/exports")

	_, err := e.Write("<html></html>", "page.html")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "page.html"))
	require.NoError(t, err)
}

func TestWriteValidation(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "untouched")
	e := NewExporter(dir, "/exports")

	_, err := e.Write("", "page.html")
	require.ErrorIs(t, err, ErrValidation)

	_, err = e.Write("<html></html>", "")
	require.ErrorIs(t, err, ErrValidation)

	// validation failures never touch the filesystem
	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestWriteTraversalStaysInside(t *testing.T) {
	parent := t.TempDir()
	dir := filepath.Join(parent, "exports")
	e := NewExporter(dir, "/exports")

	publicPath, err := e.Write("<html></html>", "../escape.html")
	require.NoError(t, err)
	assert.Equal(t, "/exports/.._escape.html", publicPath)

	_, err = os.Stat(filepath.Join(dir, ".._escape.html"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(parent, "escape.html"))
	assert.True(t, os.IsNotExist(err))
}

func TestWriteIOFailure(t *testing.T) {
	// a file where the export directory should be makes MkdirAll fail
	parent := t.TempDir()
	blocker := filepath.Join(parent, "exports")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	e := NewExporter(blocker, "/exports")
	_, err := e.Write("<html></html>", "page.html")
	require.ErrorIs(t, err, ErrIO)
}
