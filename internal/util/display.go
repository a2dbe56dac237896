package util

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/core/model"
)

// Terminal control sequences
const (
	ColorReset   = "\033[0m"
	ColorBlue    = "\033[34m"
	ColorCyan    = "\033[36m"
	ColorGreen   = "\033[32m"
	ColorYellow  = "\033[33m"
	ColorRed     = "\033[31m"
	ColorMagenta = "\033[35m"
	ColorGray    = "\033[90m"
	ColorBold    = "\033[1m"
	ColorDim     = "\033[2m"
	ColorReverse = "\033[7m"

	ClearScreen       = "\033[2J"
	ClearLine         = "\033[2K"
	ClearScrollback   = "\033[3J"
	MoveCursorHome    = "\033[H"
	HideCursor        = "\033[?25l"
	ShowCursor        = "\033[?25h"
	EnterAltScreen    = "\033[?1049h"
	ExitAltScreen     = "\033[?1049l"
	ResetScrollRegion = "\033[r"
	SaveCursor        = "\0337"
	RestoreCursor     = "\0338"
	ClearToEnd        = "\033[J"
)

// StatusColor maps a job status to its terminal colour.
func StatusColor(status string) string {
	switch status {
	case model.StatusCompleted:
		return ColorGreen
	case model.StatusInProgress:
		return ColorYellow
	case model.StatusUpcoming:
		return ColorBlue
	case model.StatusCancelled:
		return ColorGray
	default:
		return ColorReset
	}
}

// StaffColor maps a roster accent name to a terminal colour.
func StaffColor(accent string) string {
	switch accent {
	case "cyan":
		return ColorCyan
	case "violet", "purple":
		return ColorMagenta
	case "amber", "yellow":
		return ColorYellow
	case "emerald", "green":
		return ColorGreen
	case "rose", "red":
		return ColorRed
	case "sky", "blue":
		return ColorBlue
	default:
		return ColorReset
	}
}

// Colorize wraps text in a colour and a reset.
func Colorize(color, text string) string {
	if color == "" || color == ColorReset {
		return text
	}
	return color + text + ColorReset
}

// GetDisplayWidth calculates the display width of a string, accounting for wide runes
func GetDisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// StripANSI removes escape sequences, leaving the printable text.
func StripANSI(text string) string {
	if !strings.Contains(text, "\033") {
		return text
	}
	var b strings.Builder
	inEscape := false
	for _, r := range text {
		switch {
		case r == '\033':
			inEscape = true
		case inEscape:
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// VisibleWidth is the display width of text once colour codes are removed.
func VisibleWidth(text string) int {
	return runewidth.StringWidth(StripANSI(text))
}

// Truncate shortens text to width cells, marking the cut with an ellipsis.
func Truncate(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(text) <= width {
		return text
	}
	return runewidth.Truncate(text, width, "…")
}

// PadRight truncates or pads text to exactly width cells.
func PadRight(text string, width int) string {
	return runewidth.FillRight(Truncate(text, width), width)
}

// FormatHeaderTitle formats main header titles (Magenta + Bold)
func FormatHeaderTitle(title string) string {
	return fmt.Sprintf("%s%s%s%s", ColorBold, ColorMagenta, title, ColorReset)
}

// FormatDataTitle formats data section titles (Green + Bold)
func FormatDataTitle(title string) string {
	return fmt.Sprintf("%s%s%s%s", ColorBold, ColorGreen, title, ColorReset)
}



// CenterText centers text within the given width
func CenterText(text string, width int) string {
	text = Truncate(text, width)
	textWidth := runewidth.StringWidth(text)
	padding := (width - textWidth) / 2
	return strings.Repeat(" ", padding) + text + strings.Repeat(" ", width-padding-textWidth)
}
