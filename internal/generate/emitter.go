// Package generate writes the virtual files the bundler imports. Writes are
// skipped when the content is unchanged so file watchers stay quiet.
package generate

import (
	"bytes"
	"context"
	"crypto/md5" //nolint:gosec // change detection only
	"errors"
	"fmt"
	"os"
	"path"
	"sort"
	"sync"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"golang.org/x/sync/errgroup"

	derrors "git.home.luguber.info/inful/sitebuilder/internal/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/metrics"
)

// Emitter writes files relative to the generated files directory.
type Emitter struct {
	fs       billy.Filesystem
	recorder metrics.Recorder

	mu     sync.Mutex
	hashes map[string][md5.Size]byte
}

// Option configures an Emitter.
type Option func(*Emitter)

// WithRecorder reports written and unchanged artifacts.
func WithRecorder(r metrics.Recorder) Option {
	return func(e *Emitter) { e.recorder = metrics.OrNoop(r) }
}

// New returns an emitter rooted at the filesystem's root.
func New(fs billy.Filesystem, opts ...Option) *Emitter {
	e := &Emitter{fs: fs, recorder: metrics.NoopRecorder{}, hashes: map[string][md5.Size]byte{}}
	for _, o := range opts {
		o(e)
	}
	return e
}

// NewOS returns an emitter writing below dir on the local disk.
func NewOS(dir string, opts ...Option) *Emitter {
	return New(osfs.New(dir), opts...)
}

// Root returns the directory the emitter writes into.
func (e *Emitter) Root() string { return e.fs.Root() }

// Write stores content at name, creating parent directories. It reports
// whether the file was actually written. Identical content, whether last
// written by this emitter or already on disk, is left untouched.
func (e *Emitter) Write(name string, content []byte) (bool, error) {
	name = path.Clean(name)
	sum := md5.Sum(content) //nolint:gosec // see import

	if e.lastHash(name) == sum {
		e.recorder.IncArtifactWrite(metrics.ArtifactUnchanged)
		return false, nil
	}
	existing, err := util.ReadFile(e.fs, name)
	switch {
	case err == nil:
		if bytes.Equal(existing, content) {
			e.remember(name, sum)
			e.recorder.IncArtifactWrite(metrics.ArtifactUnchanged)
			return false, nil
		}
	case !errors.Is(err, os.ErrNotExist):
		e.recorder.IncArtifactWrite(metrics.ArtifactFailed)
		return false, derrors.ArtifactWrite(name, err)
	}

	if dir := path.Dir(name); dir != "." {
		if err := e.fs.MkdirAll(dir, 0o755); err != nil {
			e.recorder.IncArtifactWrite(metrics.ArtifactFailed)
			return false, derrors.ArtifactWrite(name, err)
		}
	}
	if err := util.WriteFile(e.fs, name, content, 0o644); err != nil {
		e.recorder.IncArtifactWrite(metrics.ArtifactFailed)
		return false, derrors.ArtifactWrite(name, err)
	}
	e.remember(name, sum)
	e.recorder.IncArtifactWrite(metrics.ArtifactWritten)
	return true, nil
}

func (e *Emitter) lastHash(name string) [md5.Size]byte {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hashes[name]
}

func (e *Emitter) remember(name string, sum [md5.Size]byte) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.hashes[name] = sum
}

// WriteAll emits every file concurrently and returns the names written, sorted.
// The first failure cancels the rest.
func (e *Emitter) WriteAll(ctx context.Context, files map[string][]byte) ([]string, error) {
	g, ctx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	written := []string{}
	for name, content := range files {
		name, content := name, content
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return derrors.ArtifactWrite(name, err)
			}
			changed, err := e.Write(name, content)
			if err != nil {
				return err
			}
			if changed {
				mu.Lock()
				written = append(written, name)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	sort.Strings(written)
	return written, nil
}

// Path returns the location of name as seen from outside the emitter.
func (e *Emitter) Path(name string) string {
	return e.fs.Join(e.fs.Root(), name)
}

func (e *Emitter) String() string { return fmt.Sprintf("emitter(%s)", e.fs.Root()) }
