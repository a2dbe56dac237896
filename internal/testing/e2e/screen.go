package e2e

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/util"
)

// Screen is a virtual terminal that replays the board's output
type Screen struct {
	rows, cols int
	cells      [][]rune

	x, y         int
	savedX       int
	savedY       int
	altScreen    bool
	reverseVideo bool
}

// NewScreen creates a blank rows x cols screen
func NewScreen(rows, cols int) *Screen {
	s := &Screen{rows: rows, cols: cols}
	s.cells = make([][]rune, rows)
	for i := range s.cells {
		s.cells[i] = blankRow(cols)
	}
	return s
}

func blankRow(cols int) []rune {
	row := make([]rune, cols)
	for i := range row {
		row[i] = ' '
	}
	return row
}

// StripANSI removes escape sequences from captured output
func StripANSI(s string) string {
	return util.StripANSI(s)
}

// Replay feeds raw terminal output into a new screen
func Replay(output string, rows, cols int) *Screen {
	s := NewScreen(rows, cols)
	s.Write(output)
	return s
}

// Write interprets output, including the cursor and erase sequences the
// board uses
func (s *Screen) Write(output string) {
	runes := []rune(output)
	for i := 0; i < len(runes); {
		switch r := runes[i]; {
		case r == '\x1b':
			i = s.escape(runes, i)
		case r == '\r':
			s.x = 0
			i++
		case r == '\n':
			s.lineFeed()
			i++
		default:
			s.put(r)
			i++
		}
	}
}

// escape handles the sequence starting at runes[start] and returns the
// index after it
func (s *Screen) escape(runes []rune, start int) int {
	if start+1 >= len(runes) {
		return start + 1
	}
	switch runes[start+1] {
	case '7':
		s.savedX, s.savedY = s.x, s.y
		return start + 2
	case '8':
		s.x, s.y = s.savedX, s.savedY
		return start + 2
	case '[':
	default:
		return start + 2
	}

	i := start + 2
	private := i < len(runes) && runes[i] == '?'
	if private {
		i++
	}

	var params []int
	current, seen := 0, false
	for ; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r >= '0' && r <= '9':
			current = current*10 + int(r-'0')
			seen = true
		case r == ';':
			params = append(params, current)
			current, seen = 0, false
		default:
			if seen {
				params = append(params, current)
			}
			if private {
				s.mode(r, params)
			} else {
				s.command(r, params)
			}
			return i + 1
		}
	}
	return i
}

func param(params []int, idx, def int) int {
	if idx < len(params) && params[idx] > 0 {
		return params[idx]
	}
	return def
}

func (s *Screen) mode(cmd rune, params []int) {
	if param(params, 0, 0) != 1049 {
		return
	}
	switch cmd {
	case 'h':
		s.altScreen = true
	case 'l':
		s.altScreen = false
	}
}

func (s *Screen) command(cmd rune, params []int) {
	switch cmd {
	case 'H', 'f':
		s.y = min(param(params, 0, 1), s.rows) - 1
		s.x = min(param(params, 1, 1), s.cols) - 1
	case 'J':
		switch param(params, 0, 0) {
		case 0:
			s.eraseLine(s.x, s.cols)
			for y := s.y + 1; y < s.rows; y++ {
				s.cells[y] = blankRow(s.cols)
			}
		case 2, 3:
			for y := range s.cells {
				s.cells[y] = blankRow(s.cols)
			}
		}
	case 'K':
		switch param(params, 0, 0) {
		case 0:
			s.eraseLine(s.x, s.cols)
		case 1:
			s.eraseLine(0, s.x+1)
		case 2:
			s.eraseLine(0, s.cols)
		}
	case 'A':
		s.y = max(0, s.y-param(params, 0, 1))
	case 'B':
		s.y = min(s.rows-1, s.y+param(params, 0, 1))
	case 'C':
		s.x = min(s.cols-1, s.x+param(params, 0, 1))
	case 'D':
		s.x = max(0, s.x-param(params, 0, 1))
	case 'm':
		for _, p := range params {
			switch p {
			case 7:
				s.reverseVideo = true
			case 0, 27:
				s.reverseVideo = false
			}
		}
		if len(params) == 0 {
			s.reverseVideo = false
		}
	}
}

func (s *Screen) eraseLine(from, to int) {
	if s.y < 0 || s.y >= s.rows {
		return
	}
	for x := max(0, from); x < min(to, s.cols); x++ {
		s.cells[s.y][x] = ' '
	}
}

// put writes r at the cursor; wide runes take two cells
func (s *Screen) put(r rune) {
	w := runewidth.RuneWidth(r)
	if w == 0 {
		return
	}
	if s.x+w > s.cols {
		s.x = 0
		s.lineFeed()
	}
	s.cells[s.y][s.x] = r
	for i := 1; i < w; i++ {
		s.cells[s.y][s.x+i] = 0
	}
	s.x += w
}

func (s *Screen) lineFeed() {
	s.x = 0
	if s.y < s.rows-1 {
		s.y++
		return
	}
	copy(s.cells, s.cells[1:])
	s.cells[s.rows-1] = blankRow(s.cols)
}

// Line returns row y with trailing spaces trimmed
func (s *Screen) Line(y int) string {
	if y < 0 || y >= s.rows {
		return ""
	}
	var b strings.Builder
	for _, r := range s.cells[y] {
		if r != 0 {
			b.WriteRune(r)
		}
	}
	return strings.TrimRight(b.String(), " ")
}

// Render returns the visible screen as text
func (s *Screen) Render() string {
	lines := make([]string, s.rows)
	for y := range lines {
		lines[y] = s.Line(y)
	}
	return strings.Join(lines, "\n")
}

// Contains reports whether text is visible anywhere on screen
func (s *Screen) Contains(text string) bool {
	return strings.Contains(s.Render(), text)
}

// AltScreen reports whether the alternate screen is active
func (s *Screen) AltScreen() bool {
	return s.altScreen
}
