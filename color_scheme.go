package readln

import (
	"fmt"
	"strings"
)

// ColorScheme defines the colors used when rendering the prompt line and the
// reverse history search interface.
type ColorScheme struct {
	Name     string `json:"name"`
	Prefix   Color  `json:"prefix"`
	Input    Color  `json:"input"`
	Selected Color  `json:"selected"` // highlighted entry in history search
	Match    Color  `json:"match"`    // search query echo
}

// Color represents an RGB color with optional bold formatting.
type Color struct {
	R    uint8 `json:"r"`
	G    uint8 `json:"g"`
	B    uint8 `json:"b"`
	Bold bool  `json:"bold"`
}

// ThemeDefault is the default color scheme with green prefix and white text
var ThemeDefault = &ColorScheme{
	Name:     "default",
	Prefix:   Color{R: 0, G: 255, B: 0, Bold: true},
	Input:    Color{R: 255, G: 255, B: 255, Bold: true},
	Selected: Color{R: 0, G: 255, B: 255, Bold: true},
	Match:    Color{R: 255, G: 255, B: 0, Bold: true},
}

// ThemeDark is a dark theme with light blue prefix and off-white text
var ThemeDark = &ColorScheme{
	Name:     "Dark",
	Prefix:   Color{R: 102, G: 217, B: 239, Bold: true},
	Input:    Color{R: 248, G: 248, B: 242, Bold: false},
	Selected: Color{R: 80, G: 250, B: 123, Bold: true},
	Match:    Color{R: 255, G: 184, B: 108, Bold: true},
}

// ThemeLight is a light theme with blue prefix and dark gray text
var ThemeLight = &ColorScheme{
	Name:     "Light",
	Prefix:   Color{R: 0, G: 119, B: 187, Bold: true},
	Input:    Color{R: 36, G: 41, B: 46, Bold: false},
	Selected: Color{R: 40, G: 167, B: 69, Bold: true},
	Match:    Color{R: 215, G: 58, B: 73, Bold: true},
}

// ThemeMonokai is the Monokai color scheme
var ThemeMonokai = &ColorScheme{
	Name:     "Monokai",
	Prefix:   Color{R: 249, G: 38, B: 114, Bold: true},
	Input:    Color{R: 248, G: 248, B: 242, Bold: false},
	Selected: Color{R: 102, G: 217, B: 239, Bold: true},
	Match:    Color{R: 253, G: 151, B: 31, Bold: true},
}

// ToANSI converts a Color to an ANSI escape sequence.
func (c Color) ToANSI() string {
	var codes []string

	if c.Bold {
		codes = append(codes, "1")
	}

	// RGB color (true color support)
	codes = append(codes, fmt.Sprintf("38;2;%d;%d;%d", c.R, c.G, c.B))

	return fmt.Sprintf("\x1b[%sm", strings.Join(codes, ";"))
}

// Reset returns the ANSI reset sequence.
func Reset() string {
	return "\x1b[0m"
}
