package menu

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Theme holds the colors used to paint a menu.
type Theme struct {
	Background   tcell.Color
	Foreground   tcell.Color
	SelectionBg  tcell.Color
	SelectionFg  tcell.Color
	SeparatorFg  tcell.Color
	BorderFg     tcell.Color
}

// DefaultTheme returns a dark menu theme.
func DefaultTheme() Theme {
	return Theme{
		Background:  tcell.NewRGBColor(0x28, 0x2c, 0x34),
		Foreground:  tcell.NewRGBColor(0xab, 0xb2, 0xbf),
		SelectionBg: tcell.NewRGBColor(0x3e, 0x44, 0x51),
		SelectionFg: tcell.NewRGBColor(0xff, 0xff, 0xff),
		SeparatorFg: tcell.NewRGBColor(0x5c, 0x63, 0x70),
		BorderFg:    tcell.NewRGBColor(0x5c, 0x63, 0x70),
	}
}

// ThemeColors is the hex-string form a config file carries.
type ThemeColors struct {
	Background  string
	Foreground  string
	SelectionBg string
	SelectionFg string
	SeparatorFg string
	BorderFg    string
}

// ParseTheme builds a Theme from hex color strings. Empty fields keep
// the default theme's value; malformed colors are an error.
func ParseTheme(colors ThemeColors) (Theme, error) {
	theme := DefaultTheme()

	fields := []struct {
		hex  string
		dest *tcell.Color
	}{
		{colors.Background, &theme.Background},
		{colors.Foreground, &theme.Foreground},
		{colors.SelectionBg, &theme.SelectionBg},
		{colors.SelectionFg, &theme.SelectionFg},
		{colors.SeparatorFg, &theme.SeparatorFg},
		{colors.BorderFg, &theme.BorderFg},
	}
	for _, f := range fields {
		if f.hex == "" {
			continue
		}
		c, err := colorful.Hex(f.hex)
		if err != nil {
			return Theme{}, fmt.Errorf("parsing menu color %q: %w", f.hex, err)
		}
		r, g, b := c.RGB255()
		*f.dest = tcell.NewRGBColor(int32(r), int32(g), int32(b))
	}
	return theme, nil
}
