// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/mapreel/mapreel/color"
	"github.com/mapreel/mapreel/constant"
	"github.com/mapreel/mapreel/key"
	"github.com/mapreel/mapreel/style"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Field represents a configuration field definition.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Pretty renders the field for `config info`.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(fieldTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable name for this field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.Mapreel + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

// MarshalJSON customizes JSON output to include current and default values.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.Type(),
	})
}

// Type names the kind of value the field holds.
func (f *Field) Type() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	case []int:
		return "[]int"
	default:
		return "unknown"
	}
}

// Default holds the map of all configuration fields.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

// DefaultAllowList covers the election articles, the query API and the image host.
var DefaultAllowList = []string{
	"https://en.wikipedia.org/wiki/United_States_presidential_election,_**",
	"https://en.wikipedia.org/w/api.php**",
	"https://upload.wikimedia.org/**",
}

func init() {
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}
		Default[k] = Field{Key: k, Value: v, Description: desc}
		EnvExposed = append(EnvExposed, k)
	}

	register(key.FramesTemplate, constant.DefaultFrameTemplate, "Frame URL template.\nEither a Go template with {{ .Index }} and {{ .Year }} or a path to a .lua script")
	register(key.FramesAssets, ".", "Directory relative frame paths are resolved against")
	register(key.FramesMin, constant.DefaultMinIndex, "First frame index")
	register(key.FramesMax, constant.DefaultMaxIndex, "Last frame index")
	register(key.FramesViewer, "", "Application frames are opened with.\nThe system default handler is used when empty")
	register(key.PlaybackInterval, int(constant.DefaultInterval.Milliseconds()), "Delay between frames while playing, in milliseconds")
	register(key.PlaybackPreload, true, "Preload the next frame whenever the current one changes")
	register(key.PlaybackRemember, true, "Remember the last displayed frame so it can be resumed with --continue")
	register(key.OverlayEnable, true, "Fetch the Wikipedia article and images for the displayed election")
	register(key.OverlayThumbWidth, 100, "Width in pixels of the image thumbnails requested from Wikipedia")
	register(key.OverlayMaxImages, 20, "Maximum number of article images to resolve per election")
	register(key.OverlayEndpoint, "https://en.wikipedia.org/w/api.php", "MediaWiki API queried for articles and images. It must be allowed by network.allow")
	register(key.NetworkAllow, DefaultAllowList, "URL patterns mapreel is allowed to request.\nA trailing ** matches any suffix")
	register(key.NetworkImpersonate, false, "Use a browser TLS fingerprint for outgoing requests")
	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, kaomoji, plain, squares, nerd (nerd-font required)")
	register(key.TUIShowURLs, true, "Show the frame URL under the year")
	register(key.TUIShowImages, true, "List the article image URLs")
	register(key.TUIExtractRows, 12, "Maximum number of article lines to show")
	register(key.MiniQuerySuggestions, true, "Suggest previous jump queries in the line mode")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
	register(key.CliVersionCheck, false, "Enable automatic version check")
}

// highlight colors a value by kind: booleans green or red, strings yellow.
func highlight(v any) string {
	switch value := v.(type) {
	case bool:
		if value {
			return style.Fg(color.Green)("true")
		}
		return style.Fg(color.Red)("false")
	case string:
		if value == "" {
			return style.Faint("(empty)")
		}
		return style.Fg(color.Yellow)(value)
	case []string:
		return style.Fg(color.Yellow)(strings.Join(value, ", "))
	default:
		return fmt.Sprint(value)
	}
}

var fieldTemplate = lo.Must(template.New("field").Funcs(template.FuncMap{
	"faint":     style.Faint,
	"key":       style.Fg(color.Purple),
	"label":     style.Fg(color.Blue),
	"current":   func(k string) any { return viper.Get(k) },
	"highlight": highlight,
}).Parse(`{{ key .Key }} {{ faint (printf "(%s, $%s)" .Type .Env) }}
{{ faint .Description }}
{{ label "current" }} {{ highlight (current .Key) }}
{{ label "default" }} {{ highlight .Value }}`))
