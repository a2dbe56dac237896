package interaction

import (
	"time"

	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/core/model"
)

// DisplayMode is the screen the board is showing
type DisplayMode int

const (
	ModeNormal DisplayMode = iota
	ModeLoading
	ModeHelp
	ModeDialog
)

// ConfirmDialog represents a confirmation dialog
type ConfirmDialog struct {
	Title     string
	Message   string
	OnConfirm func()
	OnCancel  func()
}

// InteractionState represents the current UI interaction state
type InteractionState struct {
	View string
	Date time.Time

	// Selected holds the staff IDs shown on the board. Empty shows everyone.
	Selected map[string]bool
	Sort     SortField

	LayoutStyle    int // 0: full board, 1: compact line
	IsPaused       bool
	ShowHelp       bool
	IsLoading      bool
	LoadingMessage string
	StatusMessage  string
	ConfirmDialog  *ConfirmDialog
}

// Mode picks the screen to draw. Dialog > Help > Loading > Normal.
func (s InteractionState) Mode() DisplayMode {
	switch {
	case s.ConfirmDialog != nil:
		return ModeDialog
	case s.ShowHelp:
		return ModeHelp
	case s.IsLoading:
		return ModeLoading
	default:
		return ModeNormal
	}
}

// SelectedIDs lists the selected staff in roster order.
func (s InteractionState) SelectedIDs(roster []model.Staff) []string {
	if len(s.Selected) == 0 {
		return nil
	}
	var ids []string
	for _, member := range roster {
		if s.Selected[member.ID] {
			ids = append(ids, member.ID)
		}
	}
	return ids
}
