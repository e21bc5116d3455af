// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Frame Set - these keys describe where frames live and which indices exist.
const (
	FramesTemplate = "frames.template"
	FramesAssets   = "frames.assets"
	FramesMin      = "frames.min"
	FramesMax      = "frames.max"
	FramesViewer   = "frames.viewer"
)

// Playback - these keys tune the playback controller.
const (
	PlaybackInterval = "playback.interval"
	PlaybackPreload  = "playback.preload"
	PlaybackRemember = "playback.remember"
)

// Overlay - these keys govern the encyclopedia data shown next to each frame.
const (
	OverlayEnable     = "overlay.enable"
	OverlayThumbWidth = "overlay.thumb_width"
	OverlayMaxImages  = "overlay.max_images"
	OverlayEndpoint   = "overlay.endpoint"
)

// Network - these keys guard and shape outgoing requests.
const (
	NetworkAllow       = "network.allow"
	NetworkImpersonate = "network.impersonate"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Terminal User Interface (TUI) - these keys define the interactive view.
const (
	TUIShowURLs    = "tui.show_urls"
	TUIShowImages  = "tui.show_images"
	TUIExtractRows = "tui.extract_rows"
)

// Mini - these keys tune the line mode.
const (
	MiniQuerySuggestions = "mini.query_suggestions"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
