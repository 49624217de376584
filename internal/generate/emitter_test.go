package generate

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	derrors "git.home.luguber.info/inful/sitebuilder/internal/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/metrics"
)

type countingRecorder struct {
	metrics.NoopRecorder
	mu      sync.Mutex
	results map[metrics.ArtifactResult]int
}

func (r *countingRecorder) IncArtifactWrite(res metrics.ArtifactResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.results == nil {
		r.results = map[metrics.ArtifactResult]int{}
	}
	r.results[res]++
}

func TestWriteCreatesParents(t *testing.T) {
	fs := memfs.New()
	e := New(fs)

	changed, err := e.Write("plugin/nested/data.json", []byte(`{}`))
	require.NoError(t, err)
	assert.True(t, changed)

	got, err := util.ReadFile(fs, "plugin/nested/data.json")
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(got))
}

func TestWriteSkipsUnchangedContent(t *testing.T) {
	dir := t.TempDir()
	rec := &countingRecorder{}
	e := NewOS(dir, WithRecorder(rec))

	changed, err := e.Write("routes.js", []byte("a"))
	require.NoError(t, err)
	assert.True(t, changed)

	target := filepath.Join(dir, "routes.js")
	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(target, past, past))

	changed, err = e.Write("routes.js", []byte("a"))
	require.NoError(t, err)
	assert.False(t, changed)

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(past), "unchanged content must not touch the file")

	changed, err = e.Write("routes.js", []byte("b"))
	require.NoError(t, err)
	assert.True(t, changed)

	assert.Equal(t, 2, rec.results[metrics.ArtifactWritten])
	assert.Equal(t, 1, rec.results[metrics.ArtifactUnchanged])
}

func TestWriteSkipsMatchingFileOnDisk(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "registry.js"), []byte("same"), 0o644))

	changed, err := NewOS(dir).Write("registry.js", []byte("same"))
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestWriteAll(t *testing.T) {
	dir := t.TempDir()
	e := NewOS(dir)
	files := map[string][]byte{
		"sitebuilder.config.js": []byte("export default {};\n"),
		"client-modules.js":     []byte("export default [\n];\n"),
		"registry.js":           []byte("export default {\n};\n"),
		"routesChunkNames.json": []byte("{}"),
		"routes.js":             []byte("export default [];\n"),
	}

	written, err := e.WriteAll(context.Background(), files)
	require.NoError(t, err)
	assert.Equal(t, []string{"client-modules.js", "registry.js", "routes.js", "routesChunkNames.json", "sitebuilder.config.js"}, written)

	for name, content := range files {
		got, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Equal(t, content, got)
	}

	written, err = e.WriteAll(context.Background(), files)
	require.NoError(t, err)
	assert.Empty(t, written)
}

func TestWriteAllReportsArtifact(t *testing.T) {
	dir := t.TempDir()
	// A regular file where a directory is needed makes the write fail.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "blocked"), []byte("x"), 0o644))

	_, err := NewOS(dir).WriteAll(context.Background(), map[string][]byte{"blocked/data.json": []byte("{}")})
	require.Error(t, err)
	assert.True(t, derrors.IsKind(err, derrors.KindArtifactWrite))

	se, ok := derrors.As(err)
	require.True(t, ok)
	assert.Equal(t, "blocked/data.json", se.Context["artifact"])
}

func TestWriteAllCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(memfs.New()).WriteAll(ctx, map[string][]byte{"a.js": nil})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPath(t *testing.T) {
	dir := t.TempDir()
	e := NewOS(dir)
	assert.Equal(t, dir, e.Root())
	assert.Equal(t, filepath.Join(dir, "p", "x.json"), e.Path("p/x.json"))
}
