// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

import _ "embed"

const (
	// Mapreel is the canonical application identifier used for filesystem paths and CLI branding.
	Mapreel = "mapreel"

	// Version is the current application semantic version string.
	Version = "0.3.1"

	// Repository is the project home.
	Repository = "https://github.com/mapreel/mapreel"

	// UserAgent identifies mapreel to the Wikimedia API, which asks clients for a descriptive agent.
	UserAgent = "mapreel/" + Version + " (" + Repository + ")"
)

// Build metadata, overwritten through -ldflags at release time.
var (
	BuiltAt  = ""
	BuiltBy  = "unknown"
	Revision = "unknown"
)

// AsciiArtLogo heads the root command help.
//
//go:embed ascii.txt
var AsciiArtLogo string
