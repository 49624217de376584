package build

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"

	"git.home.luguber.info/inful/sitebuilder/internal/routes"
	"git.home.luguber.info/inful/sitebuilder/internal/theme"
)

// moduleValidator checks route module references against what the build
// can resolve: @theme components must be aliased and absolute paths must
// exist. Bare package references are left to the bundler.
func moduleValidator(fs billy.Filesystem, alias theme.Alias) routes.ModuleValidator {
	return func(ref string) error {
		switch {
		case ref == theme.Prefix || strings.HasPrefix(ref, theme.Prefix+"/"):
			if !alias.Has(ref) {
				return fmt.Errorf("theme component %s is not provided by any theme", ref)
			}
		case filepath.IsAbs(ref):
			if _, err := fs.Stat(ref); err != nil {
				if errors.Is(err, os.ErrNotExist) {
					return fmt.Errorf("module %s does not exist", ref)
				}
				return err
			}
		}
		return nil
	}
}
