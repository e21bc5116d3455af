// Package filesystem provides a virtualized abstraction layer for all filesystem operations.
//
// Production code talks to the OS filesystem; tests swap in an in-memory afero backend.
package filesystem

import "github.com/spf13/afero"

var backend = afero.Afero{Fs: afero.NewOsFs()}

// API returns the active afero.Afero instance for filesystem interaction.
func API() afero.Afero {
	return backend
}

// SetOsFs restores the filesystem backend to the native operating system implementation.
func SetOsFs() {
	backend = afero.Afero{Fs: afero.NewOsFs()}
}

// SetMemMapFs switches to a volatile in-memory filesystem backend.
func SetMemMapFs() {
	backend = afero.Afero{Fs: afero.NewMemMapFs()}
}

// SetFs installs an arbitrary afero backend, e.g. a read-only or base-path filesystem.
func SetFs(fs afero.Fs) {
	backend = afero.Afero{Fs: fs}
}
