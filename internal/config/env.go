package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
)

// readEnvFile reads <siteDir>/.env when present. The process environment is
// left untouched so every load sees the file's current contents. A missing
// file yields an empty map.
func readEnvFile(siteDir string) (map[string]string, error) {
	envPath := filepath.Join(siteDir, EnvFileName)
	if _, err := os.Stat(envPath); errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	vars, err := godotenv.Read(envPath)
	if err != nil {
		return nil, err
	}
	slog.Debug("Read environment file", logfields.Path(envPath), logfields.Count(len(vars)))
	return vars, nil
}

// expandEnv substitutes ${VAR} references. The process environment wins
// over values from the .env file; unknown variables expand to "".
func expandEnv(s string, fileVars map[string]string) string {
	return os.Expand(s, func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return fileVars[key]
	})
}
