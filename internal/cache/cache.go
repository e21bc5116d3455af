// Package cache stores opaque blobs on disk under content-addressed names, expiring them after a TTL.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mapreel/mapreel/filesystem"
	"github.com/mapreel/mapreel/log"
)

// TTL is the default lifetime of an entry.
const TTL = 7 * 24 * time.Hour

// Dir is a directory of cached blobs.
type Dir struct {
	path string
	ttl  time.Duration
}

// New returns a cache rooted at path. A zero ttl means TTL.
func New(path string, ttl time.Duration) *Dir {
	if ttl <= 0 {
		ttl = TTL
	}
	return &Dir{path: path, ttl: ttl}
}

// Path returns the root directory.
func (d *Dir) Path() string {
	return d.path
}

// Key derives a deterministic file name from parts.
func Key(parts ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return hex.EncodeToString(hash[:])
}

// Read returns the blob stored under key if it exists and has not expired.
func (d *Dir) Read(key string) ([]byte, bool) {
	path := filepath.Join(d.path, key)

	info, err := filesystem.API().Stat(path)
	if err != nil || time.Since(info.ModTime()) > d.ttl {
		return nil, false
	}

	data, err := filesystem.API().ReadFile(path)
	if err != nil {
		return nil, false
	}

	return data, true
}

// Write stores data under key, replacing the previous entry atomically.
func (d *Dir) Write(key string, data []byte) error {
	if err := filesystem.API().MkdirAll(d.path, os.ModePerm); err != nil {
		return err
	}

	path := filepath.Join(d.path, key)
	tmpPath := path + ".tmp"

	if err := filesystem.API().WriteFile(tmpPath, data, 0o644); err != nil {
		return err
	}

	return filesystem.API().Rename(tmpPath, path)
}

// Delete removes the entry under key, if any.
func (d *Dir) Delete(key string) error {
	err := filesystem.API().Remove(filepath.Join(d.path, key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// CollectGarbage removes expired entries and returns how many were removed.
func (d *Dir) CollectGarbage() int {
	var removed int

	_ = filesystem.API().Walk(d.path, func(path string, info fs.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}

		if time.Since(info.ModTime()) > d.ttl {
			if filesystem.API().Remove(path) == nil {
				removed++
			}
		}
		return nil
	})

	if removed > 0 {
		log.Debugf("removed %d expired entries from %s", removed, d.path)
	}

	return removed
}
