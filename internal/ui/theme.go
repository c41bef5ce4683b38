package ui

import "strings"

// Theme bundles palette + symbols + box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Title, Muted, Accent, Success, Error, Count string
	CornerTL, CornerTR, CornerBL, CornerBR      string
	H, V                                        string
	SymOK, SymFail, Bullet                      string
	BarFull, BarEmpty                           string
	NoColor                                     bool // plain output unless colour is forced
}

var current Theme

func init() { SetTheme("classic") }

// Themes lists the names SetTheme understands.
var Themes = []string{"classic", "neon", "mono"}

func SetTheme(name string) {
	switch strings.ToLower(name) {
	case "neon":
		current = Theme{
			Title: "\033[95m", // bright magenta
			Muted: fgGray, Accent: "\033[96m",
			Success: fgGreen, Error: fgRed, Count: "\033[93m",
			CornerTL: "╭", CornerTR: "╮", CornerBL: "╰", CornerBR: "╯",
			H: "─", V: "│",
			SymOK: "✔", SymFail: "✖", Bullet: "•",
			BarFull: "█", BarEmpty: "░",
		}
	case "mono":
		current = Theme{
			NoColor:  true,
			CornerTL: "+", CornerTR: "+", CornerBL: "+", CornerBR: "+",
			H: "-", V: "|",
			SymOK: "ok", SymFail: "error:", Bullet: "-",
			BarFull: "#", BarEmpty: ".",
		}
	default: // classic
		current = Theme{
			Title: bold, Muted: fgGray, Accent: fgBlue,
			Success: fgGreen, Error: fgRed, Count: fgYellow,
			CornerTL: "┌", CornerTR: "┐", CornerBL: "└", CornerBR: "┘",
			H: "─", V: "│",
			SymOK: "✔", SymFail: "✖", Bullet: "•",
			BarFull: "█", BarEmpty: "░",
		}
	}
}

// Expose what renderers need
func Current() Theme { return current }

// Dim is used for row numbers.
func Dim(s string) string { return C(dim, s) }
