package constant

import "time"

// Frame range of the bundled choropleth set: one frame per presidential election from 1789 to 2012.
const (
	DefaultMinIndex = 1
	DefaultMaxIndex = 57
)

// DefaultInterval is the delay between two frames while playing.
const DefaultInterval = time.Second

// DefaultFrameTemplate renders the relative path of a bundled frame.
const DefaultFrameTemplate = "assets/images/choropleth_{{ .Index }}.png"

// Lua frame template entry points.
const (
	FrameURLFn   = "FrameURL"
	FrameLabelFn = "FrameLabel"
)

// FrameScriptTemplate is a Go text/template for scaffolding new Lua frame scripts.
const FrameScriptTemplate = `{{ $divider := repeat "-" (plus (len .Name) 16) }}{{ $divider }}
-- @name    {{ .Name }}
-- @author  {{ .Author }}
-- @license MIT
{{ $divider }}

--- Returns the URL or relative path of the frame at the given index.
-- @param index number Frame index
-- @return string
function {{ .FrameURLFn }}(index)
	return "assets/images/choropleth_" .. index .. ".png"
end

--- Returns a human readable label for the frame at the given index.
-- @param index number Frame index
-- @return string
function {{ .FrameLabelFn }}(index)
	return tostring(index)
end

-- ex: ts=4 sw=4 et filetype=lua
`
