// Package theme resolves @theme/* component aliases from a layered set of
// theme directories.
package theme

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// Prefix is the alias namespace for theme components.
const Prefix = "@theme"

var componentExts = map[string]bool{".js": true, ".jsx": true, ".ts": true, ".tsx": true}

// Alias maps an alias name (e.g. "@theme/Layout") to a component path.
type Alias map[string]string

// SortedNames returns the alias names in lexicographic order.
func (a Alias) SortedNames() []string {
	names := make([]string, 0, len(a))
	for n := range a {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Has reports whether name resolves.
func (a Alias) Has(name string) bool {
	_, ok := a[name]
	return ok
}

// LoadAlias scans themePaths in order, then userThemePaths in order. A
// component found in a later directory replaces the same alias from an
// earlier one, so user components win over plugin themes, which win over
// the fallback. Directories that do not exist are skipped.
func LoadAlias(fs billy.Filesystem, themePaths, userThemePaths []string) (Alias, error) {
	alias := Alias{}
	for _, dir := range append(append([]string{}, themePaths...), userThemePaths...) {
		if err := scan(fs, dir, alias); err != nil {
			return nil, err
		}
	}
	return alias, nil
}

func scan(fs billy.Filesystem, dir string, alias Alias) error {
	if dir == "" {
		return nil
	}
	info, err := fs.Stat(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat theme dir %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil
	}

	return util.Walk(fs, dir, func(p string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() || !componentExts[filepath.Ext(p)] {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		alias[Name(rel)] = p
		return nil
	})
}

// Name converts a component path relative to a theme directory into its
// alias. "Layout/index.js" and "Layout.js" both become "@theme/Layout".
func Name(rel string) string {
	rel = filepath.ToSlash(rel)
	rel = strings.TrimSuffix(rel, path.Ext(rel))
	if rel == "index" {
		return Prefix
	}
	rel = strings.TrimSuffix(rel, "/index")
	return Prefix + "/" + rel
}
