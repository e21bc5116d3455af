package icon

// Icon identifies a UI symbol.
type Icon int

const (
	Fail Icon = iota
	Success
	Progress
	Play
	Pause
	Frame
	Link
	Image
	Warn
	Lua
)

var icons = map[Icon]*glyphs{
	Fail: {
		emoji:   "💀",
		nerd:    "",
		plain:   "x",
		kaomoji: "(×﹏×)",
		squares: "🟥",
	},
	Success: {
		emoji:   "🎉",
		nerd:    "",
		plain:   "+",
		kaomoji: "(ᵔ◡ᵔ)",
		squares: "🟩",
	},
	Progress: {
		emoji:   "👨‍🍳",
		nerd:    "",
		plain:   "...",
		kaomoji: "(・_・)ノ",
		squares: "🟦",
	},
	Play: {
		emoji:   "▶️",
		nerd:    "",
		plain:   ">",
		kaomoji: "(ﾉ◕ヮ◕)ﾉ",
		squares: "🟩",
	},
	Pause: {
		emoji:   "⏸️",
		nerd:    "",
		plain:   "||",
		kaomoji: "(￣o￣)",
		squares: "🟨",
	},
	Frame: {
		emoji:   "🗺️",
		nerd:    "",
		plain:   "#",
		kaomoji: "[ ¬‿¬ ]",
		squares: "🟪",
	},
	Link: {
		emoji:   "🔗",
		nerd:    "",
		plain:   "~",
		kaomoji: "(°ロ°)☝",
		squares: "🟫",
	},
	Image: {
		emoji:   "🖼️",
		nerd:    "",
		plain:   "*",
		kaomoji: "(◕‿◕)",
		squares: "🟧",
	},
	Warn: {
		emoji:   "⚠️",
		nerd:    "",
		plain:   "!",
		kaomoji: "(⊙_⊙)",
		squares: "🟨",
	},
	Lua: {
		emoji:   "🌙",
		nerd:    "",
		plain:   "lua",
		kaomoji: "(◔◡◔)",
		squares: "🟦",
	},
}
