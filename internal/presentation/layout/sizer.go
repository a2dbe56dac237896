package layout

import (
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/util"
)

const (
	defaultWidth  = 100
	defaultHeight = 30
	minWidth      = 60
	maxWidth      = 180
)

// Sizer holds the drawable terminal area.
type Sizer struct {
	Width  int
	Height int
}

func NewSizer(width, height int) *Sizer {
	return &Sizer{Width: width, Height: height}
}

// TerminalSizer measures stdout, falling back to 100x30 when it is not a
// terminal or is too narrow to draw a board.
func TerminalSizer() *Sizer {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width < minWidth {
		width, height = defaultWidth, defaultHeight
	}
	if width > maxWidth {
		width = maxWidth
	}
	util.LogDebugf("Terminal size %dx%d", width, height)
	return NewSizer(width, height)
}

// displayWidth calculates the actual display width of a string containing emojis and Unicode characters
func (s Sizer) displayWidth(str string) int {
	return runewidth.StringWidth(util.StripANSI(str))
}

// PadString pads a string to a specific display width, handling emojis correctly
func (s Sizer) PadString(str string, width int, leftAlign bool) string {
	actualWidth := s.displayWidth(str)
	if actualWidth >= width {
		return str
	}

	padding := strings.Repeat(" ", width-actualWidth)
	if leftAlign {
		return str + padding
	}
	return padding + str
}

// ContentWidth is the space inside "│ " and " │".
func (s Sizer) ContentWidth() int {
	if s.Width < 8 {
		return 4
	}
	return s.Width - 4
}
