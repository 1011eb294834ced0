// Package scroll detects when a sentinel row after a list scrolls into view.
//
// Positions are measured in content rows: row 0 is the first row of the
// scrollable content, not of the screen. A list reports the rows it currently
// shows as a Viewport and places a Sentinel on the row after its last item.
package scroll

// Config controls when a sentinel counts as visible.
type Config struct {
	// Threshold is the fraction of the sentinel that must be inside the
	// (margin-extended) viewport.
	Threshold float64 `mapstructure:"threshold"`
	// Margin extends the viewport by this many rows on each side so the next
	// page is requested before the user reaches the bottom.
	Margin int `mapstructure:"margin_rows"`
	// Enabled turns observation off entirely when false.
	Enabled bool `mapstructure:"enabled"`
}

// DefaultConfig returns the default trigger configuration.
func DefaultConfig() Config {
	return Config{
		Threshold: 0.1,
		Margin:    3,
		Enabled:   true,
	}
}

// normalized clamps out-of-range values.
func (c Config) normalized() Config {
	if c.Threshold < 0 {
		c.Threshold = 0
	}
	if c.Threshold > 1 {
		c.Threshold = 1
	}
	if c.Margin < 0 {
		c.Margin = 0
	}
	return c
}

// Sentinel is the marker placed after the last rendered item.
type Sentinel struct {
	Row    int
	Height int // rows; values below 1 are treated as 1
}

func (s Sentinel) height() int {
	if s.Height < 1 {
		return 1
	}
	return s.Height
}

// Viewport is the window of content rows currently on screen.
type Viewport struct {
	Top    int
	Height int
}

// Bottom returns the first row below the viewport.
func (v Viewport) Bottom() int {
	return v.Top + v.Height
}

// Entry describes the visibility of a sentinel against a viewport.
type Entry struct {
	Sentinel Sentinel
	Ratio    float64 // fraction of the sentinel inside the extended viewport
	Visible  bool
}

// Intersect computes the visibility of s inside v extended by cfg.Margin.
// A sentinel is visible when some part of it overlaps and the overlapping
// fraction reaches cfg.Threshold.
func Intersect(s Sentinel, v Viewport, cfg Config) Entry {
	cfg = cfg.normalized()
	if v.Height <= 0 {
		return Entry{Sentinel: s}
	}

	top := v.Top - cfg.Margin
	bottom := v.Bottom() + cfg.Margin
	h := s.height()

	lo := max(s.Row, top)
	hi := min(s.Row+h, bottom)
	overlap := hi - lo
	if overlap <= 0 {
		return Entry{Sentinel: s}
	}

	ratio := float64(overlap) / float64(h)
	return Entry{
		Sentinel: s,
		Ratio:    ratio,
		Visible:  ratio >= cfg.Threshold,
	}
}
