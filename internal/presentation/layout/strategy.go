package layout

import (
	"io"

	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/presentation/formatter"
)

const (
	StyleFull    = 0
	StyleCompact = 1
)

// Param carries the terminal state a strategy draws with.
type Param struct {
	Sizer      *Sizer
	TimeFormat string // "24h" or "12h"
	Timezone   string
	Paused     bool
}

// BoardStrategy draws one view of the board.
type BoardStrategy interface {
	Render(w io.Writer, report *formatter.Report, param Param)
	GetName() string
}

// GetBoardStrategy returns the strategy for a view and layout style.
// The compact style draws a single status line regardless of the view.
func GetBoardStrategy(view string, style int) BoardStrategy {
	if style == StyleCompact {
		return &CompactStrategy{}
	}

	strategies := map[string]BoardStrategy{
		"dispatch": &DispatchStrategy{},
		"day":      &AgendaStrategy{},
		"week":     &AgendaStrategy{},
		"2week":    &AgendaStrategy{},
		"month":    &MonthStrategy{},
	}
	if strategy, exists := strategies[view]; exists {
		return strategy
	}

	// Default to the dispatch board
	return &DispatchStrategy{}
}
