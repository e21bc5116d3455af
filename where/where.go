// Package where implements a cross-platform resolver for application-specific filesystem paths.
package where

import (
	"os"
	"path/filepath"

	"github.com/mapreel/mapreel/constant"
	"github.com/mapreel/mapreel/filesystem"
	"github.com/samber/lo"
)

// EnvConfigPath is the environment variable identifier used to override the default configuration directory.
const EnvConfigPath = "MAPREEL_CONFIG_PATH"

func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config resolves the absolute path to the primary application configuration directory.
// It can be overridden with the MAPREEL_CONFIG_PATH environment variable.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.Mapreel))
}

// Cache resolves the absolute path to the application's persistent cache directory.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(".", "cache")
	}
	return ensureDir(filepath.Join(base, constant.Mapreel))
}

// Frames resolves the directory holding cached copies of remote frames.
func Frames() string {
	return ensureDir(filepath.Join(Cache(), "frames"))
}

// Wiki resolves the directory holding cached encyclopedia responses.
func Wiki() string {
	return ensureDir(filepath.Join(Cache(), "wiki"))
}

// Logs resolves the absolute path to the directory used for application diagnostic logs.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// Scripts resolves the directory containing user Lua frame scripts.
func Scripts() string {
	return ensureDir(filepath.Join(Config(), "scripts"))
}

// Position resolves the file remembering the last displayed frame.
func Position() string {
	return filepath.Join(Config(), "position.json")
}

// Queries resolves the file holding the history of jump queries.
func Queries() string {
	return filepath.Join(Config(), "queries.json")
}
