// Package iofs manages gazdb files in the user's home directory: the
// config and heuristics templates and the directories they live in.
package iofs

import (
	_ "embed"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gazdb/pkg/config"
	"github.com/gnames/gazdb/pkg/place"
	"github.com/gnames/gn"
	"gopkg.in/yaml.v3"
)

//go:embed config.yaml
var ConfigYAML string

//go:embed heuristics.yaml
var HeuristicsYAML string

func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.CacheDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

func touchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}

	return nil
}

func EnsureConfigFile(homeDir string) error {
	return ensureFile(config.ConfigFilePath(homeDir), ConfigYAML)
}

func EnsureHeuristicsFile(homeDir string) error {
	return ensureFile(config.HeuristicsFilePath(homeDir), HeuristicsYAML)
}

// ensureFile writes content to path unless the file already exists.
func ensureFile(path, content string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return CopyFileError(path, err)
	}

	return nil
}

// LoadHeuristics reads classification and scoring tables from path.
// A missing file yields the built-in tables. Entries that are absent or
// invalid are replaced by built-in values with a warning.
func LoadHeuristics(path string) (place.Tables, error) {
	def := place.DefaultTables()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Info("Heuristics file not found, using defaults", "path", path)
		return def, nil
	}
	if err != nil {
		return def, ReadFileError(path, err)
	}

	res := place.DefaultTables()
	res.Classes = nil
	res.BaseScores = nil
	res.CountySeats = nil
	if err = yaml.Unmarshal(data, &res); err != nil {
		return def, HeuristicsError(path, err)
	}

	res, fixed := res.Merge(def)
	if len(fixed) > 0 {
		slog.Warn("Heuristics entries replaced by defaults",
			"path", path, "fields", fixed)
		gn.Warn(
			"Heuristics <em>%s</em>: using defaults for %s",
			path, strings.Join(fixed, ", "),
		)
	}
	return res, nil
}
