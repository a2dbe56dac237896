package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/presentation/formatter"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/presentation/interaction"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/presentation/layout"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/util"
)

// DisplayConfig holds the board's display preferences. A zero Width or
// Height measures the terminal on every draw.
type DisplayConfig struct {
	Timezone   string
	TimeFormat string
	Width      int
	Height     int
}

type TerminalDisplay struct {
	out               io.Writer
	config            *DisplayConfig
	inAlternateScreen bool
	lastLayoutStyle   int
	lastView          string
	isFirstRender     bool                    // Track if this is the first render
	currentMode       interaction.DisplayMode // Track current display mode for proper transitions
}

func NewTerminalDisplay(out io.Writer, config *DisplayConfig) *TerminalDisplay {
	if config == nil {
		config = &DisplayConfig{}
	}
	return &TerminalDisplay{
		out:           out,
		config:        config,
		isFirstRender: true,
		currentMode:   interaction.ModeNormal,
	}
}

// EnterAlternateScreen switches to alternate screen buffer
func (td *TerminalDisplay) EnterAlternateScreen() {
	if td.inAlternateScreen {
		return
	}
	fmt.Fprint(td.out, util.EnterAltScreen)
	fmt.Fprint(td.out, util.ClearScreen)
	fmt.Fprint(td.out, util.MoveCursorHome)
	fmt.Fprint(td.out, util.ClearScrollback)
	fmt.Fprint(td.out, util.ResetScrollRegion)
	fmt.Fprint(td.out, util.HideCursor)
	td.inAlternateScreen = true
	td.isFirstRender = true
}

// ExitAlternateScreen returns to normal screen buffer
func (td *TerminalDisplay) ExitAlternateScreen() {
	if !td.inAlternateScreen {
		return
	}
	fmt.Fprint(td.out, util.ClearScreen)
	fmt.Fprint(td.out, util.MoveCursorHome)
	fmt.Fprint(td.out, util.ShowCursor)
	fmt.Fprint(td.out, util.ExitAltScreen)
	td.inAlternateScreen = false
}

// ClearScreen clears the screen and homes the cursor
func (td *TerminalDisplay) ClearScreen() {
	fmt.Fprint(td.out, util.ClearScreen)
	fmt.Fprint(td.out, util.MoveCursorHome)
}

// ClearForTransition clears the screen and scrollback between modes and views
func (td *TerminalDisplay) ClearForTransition() {
	fmt.Fprint(td.out, util.ClearScreen)
	fmt.Fprint(td.out, util.ClearScrollback)
	fmt.Fprint(td.out, util.MoveCursorHome)
}

func (td *TerminalDisplay) sizer() *layout.Sizer {
	if td.config.Width > 0 {
		return layout.NewSizer(td.config.Width, td.config.Height)
	}
	return layout.TerminalSizer()
}

// RenderWithState draws one frame. A nil report shows the loading screen.
func (td *TerminalDisplay) RenderWithState(report *formatter.Report, state interaction.InteractionState) {
	newMode := state.Mode()
	if report == nil && newMode == interaction.ModeNormal {
		newMode = interaction.ModeLoading
	}
	view := ""
	if report != nil {
		view = report.View
	}

	// Full clear on first render, mode transitions and layout changes;
	// otherwise redraw over the previous frame.
	if td.isFirstRender || newMode != td.currentMode || state.LayoutStyle != td.lastLayoutStyle || view != td.lastView {
		td.ClearForTransition()
		td.isFirstRender = false
		td.currentMode = newMode
		td.lastLayoutStyle = state.LayoutStyle
		td.lastView = view
	} else {
		fmt.Fprint(td.out, util.MoveCursorHome)
	}

	switch newMode {
	case interaction.ModeDialog:
		td.renderConfirmDialog(state.ConfirmDialog)
		return
	case interaction.ModeHelp:
		td.renderHelp()
		return
	case interaction.ModeLoading:
		td.renderLoadingScreen(state.LoadingMessage)
		return
	}

	param := layout.Param{
		Sizer:      td.sizer(),
		TimeFormat: td.config.TimeFormat,
		Timezone:   td.config.Timezone,
		Paused:     state.IsPaused,
	}
	strategy := layout.GetBoardStrategy(report.View, state.LayoutStyle)
	strategy.Render(td.out, report, param)
	fmt.Fprint(td.out, util.ClearToEnd)

	if state.StatusMessage != "" {
		td.renderStatusMessage(state.StatusMessage)
	}
}

func (td *TerminalDisplay) renderHelp() {
	lines := []string{
		"Norfolk Cleaners Board - Help",
		strings.Repeat("═", 80),
		"",
		"Keyboard Shortcuts:",
		"",
		"  q/Esc/Ctrl+C - Quit the board",
		"  d            - Dispatch board for the selected day",
		"  w / f        - Week / fortnight agenda",
		"  m            - Month grid",
		"  [ / ←        - Previous day, week or month",
		"  ] / →        - Next day, week or month",
		"  t            - Jump to today",
		"  1-9          - Show or hide a staff member",
		"  a            - Show all staff",
		"  s            - Sort rows (roster → name → jobs)",
		"  l            - Toggle compact layout",
		"  r            - Reload job files",
		"  c            - Clear cached jobs and reparse every file",
		"  p            - Pause/unpause automatic updates",
		"  h            - Show this help",
		"",
		"Job Colours:",
		"  " + util.Colorize(util.ColorGreen, "✓ Completed") + "   " + util.Colorize(util.ColorYellow, "▶ In progress"),
		"  " + util.Colorize(util.ColorBlue, "◷ Upcoming") + "    " + util.Colorize(util.ColorGray, "✗ Cancelled"),
		"  " + util.Colorize(util.ColorRed, "│") + " marks the current time on the dispatch board",
		"",
		strings.Repeat("═", 80),
		"Press 'h' to return...",
	}
	for _, line := range lines {
		fmt.Fprintln(td.out, line)
	}
	fmt.Fprint(td.out, util.ClearToEnd)
}

func (td *TerminalDisplay) renderConfirmDialog(dialog *interaction.ConfirmDialog) {
	termWidth := td.sizer().Width
	boxWidth := 60
	padding := max((termWidth-boxWidth)/2, 0)
	indent := strings.Repeat(" ", padding)

	fmt.Fprint(td.out, "\n\n\n\n\n")

	fmt.Fprintf(td.out, "%s╔%s╗\n", indent, strings.Repeat("═", boxWidth-2))
	fmt.Fprintf(td.out, "%s║%s║\n", indent, util.CenterText(dialog.Title, boxWidth-2))
	fmt.Fprintf(td.out, "%s╠%s╣\n", indent, strings.Repeat("═", boxWidth-2))
	fmt.Fprintf(td.out, "%s║%s║\n", indent, strings.Repeat(" ", boxWidth-2))

	for _, line := range wrapText(dialog.Message, boxWidth-4) {
		fmt.Fprintf(td.out, "%s║ %s ║\n", indent, util.PadRight(line, boxWidth-4))
	}

	fmt.Fprintf(td.out, "%s║%s║\n", indent, strings.Repeat(" ", boxWidth-2))
	fmt.Fprintf(td.out, "%s║%s║\n", indent, util.CenterText("(Y)es / (N)o", boxWidth-2))
	fmt.Fprintf(td.out, "%s╚%s╝\n", indent, strings.Repeat("═", boxWidth-2))
	fmt.Fprint(td.out, util.ClearToEnd)
}

func (td *TerminalDisplay) renderStatusMessage(message string) {
	fmt.Fprint(td.out, util.SaveCursor)

	// Row 999 stops at the bottom of the screen
	fmt.Fprint(td.out, "\033[999;1H")
	fmt.Fprint(td.out, util.ClearLine)
	fmt.Fprintf(td.out, "  Status: %s", message)

	fmt.Fprint(td.out, util.RestoreCursor)
}

// wrapText wraps text to fit within the specified width
func wrapText(text string, width int) []string {
	if text == "" {
		return []string{}
	}

	if util.GetDisplayWidth(text) <= width {
		return []string{text}
	}

	var lines []string
	currentLine := ""

	for _, word := range strings.Fields(text) {
		if currentLine == "" {
			currentLine = word
		} else if util.GetDisplayWidth(currentLine)+1+util.GetDisplayWidth(word) <= width {
			currentLine += " " + word
		} else {
			lines = append(lines, currentLine)
			currentLine = word
		}
	}

	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return lines
}

var loadingChars = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// renderLoadingScreen displays a boxed loading message with a spinner that
// advances every second
func (td *TerminalDisplay) renderLoadingScreen(message string) {
	sizer := td.sizer()
	boxWidth := 50
	padding := max((sizer.Width-boxWidth)/2, 0)
	indent := strings.Repeat(" ", padding)

	for i := 0; i < sizer.Height/2-5; i++ {
		fmt.Fprintln(td.out)
	}

	if message == "" {
		message = "Loading jobs..."
	}
	frame := loadingChars[int(util.GetTimeProvider().Now().Unix())%len(loadingChars)]

	fmt.Fprintf(td.out, "%s╔%s╗\n", indent, strings.Repeat("═", boxWidth-2))
	fmt.Fprintf(td.out, "%s║%s║\n", indent, util.CenterText("Norfolk Cleaners", boxWidth-2))
	fmt.Fprintf(td.out, "%s╠%s╣\n", indent, strings.Repeat("═", boxWidth-2))
	fmt.Fprintf(td.out, "%s║%s║\n", indent, strings.Repeat(" ", boxWidth-2))
	fmt.Fprintf(td.out, "%s║%s║\n", indent, util.CenterText(frame+" "+message, boxWidth-2))
	fmt.Fprintf(td.out, "%s║%s║\n", indent, strings.Repeat(" ", boxWidth-2))
	fmt.Fprintf(td.out, "%s║%s║\n", indent, util.CenterText("Press 'q' to quit", boxWidth-2))
	fmt.Fprintf(td.out, "%s╚%s╝\n", indent, strings.Repeat("═", boxWidth-2))
	fmt.Fprint(td.out, util.ClearToEnd)
}
