package model

// Rect is the render rectangle of one job.
//
// Offset and Length run along the time axis in pixels. Left and Width are
// fractions (0..1) of the cross axis: the day view column inside the grid,
// or the lane inside a staff row on the dispatch board. LeftInset and
// WidthInset carry the fixed pixel gap between side-by-side jobs so the
// presentation computes left = Left*W + LeftInset and width = Width*W - WidthInset.
type Rect struct {
	EventID    string `json:"event_id"`
	ResourceID string `json:"resource_id"`

	Row int `json:"row"`
	Day int `json:"day"`

	Offset float64 `json:"offset"`
	Length float64 `json:"length"`

	Column       int     `json:"column"`
	TotalColumns int     `json:"total_columns"`
	Left         float64 `json:"left"`
	Width        float64 `json:"width"`
	LeftInset    float64 `json:"left_inset"`
	WidthInset   float64 `json:"width_inset"`

	Orientation Orientation `json:"orientation"`
}

// End returns the far edge of the rectangle along the time axis.
func (r Rect) End() float64 {
	return r.Offset + r.Length
}

// InvalidEvent is a job rejected at the layout boundary.
type InvalidEvent struct {
	EventID string
	Err     error
}

func (e InvalidEvent) Error() string {
	return e.EventID + ": " + e.Err.Error()
}

func (e InvalidEvent) Unwrap() error {
	return e.Err
}
