package history

// Reveal-window defaults, used when the configuration leaves them unset.
const (
	DefaultInitialLoadCount    = 30
	DefaultLoadBatchSize       = 20
	DefaultLoadThresholdFactor = 0.95
)

// View windows a filtered sequence for display. Only the first "revealed"
// entries are materialized; scrolling near the bottom grows the window in
// batches. Reset is the only operation that can shrink it.
type View struct {
	entries   []*Entry
	revealed  int
	initial   int
	batch     int
	threshold float64
}

// NewView creates a view with the given batch sizing. Non-positive values
// fall back to the defaults.
func NewView(initialLoadCount, loadBatchSize int, loadThresholdFactor float64) *View {
	if initialLoadCount <= 0 {
		initialLoadCount = DefaultInitialLoadCount
	}
	if loadBatchSize <= 0 {
		loadBatchSize = DefaultLoadBatchSize
	}
	if loadThresholdFactor <= 0 || loadThresholdFactor > 1 {
		loadThresholdFactor = DefaultLoadThresholdFactor
	}
	return &View{
		initial:   initialLoadCount,
		batch:     loadBatchSize,
		threshold: loadThresholdFactor,
	}
}

// Reset replaces the backing sequence and shrinks the window back to the
// initial batch. Called whenever the filter or the underlying collection
// changes.
func (v *View) Reset(entries []*Entry) {
	v.entries = entries
	v.revealed = min(v.initial, len(entries))
}

// Visible returns the revealed prefix of the filtered sequence.
func (v *View) Visible() []*Entry {
	return v.entries[:v.revealed]
}

// LoadMore grows the window by one batch, clamped to the sequence length.
// It returns false when the sequence was already fully revealed.
func (v *View) LoadMore() bool {
	if v.revealed >= len(v.entries) {
		return false
	}
	v.revealed = min(v.revealed+v.batch, len(v.entries))
	return true
}

// Revealed returns the current window size.
func (v *View) Revealed() int {
	return v.revealed
}

// Total returns the length of the backing filtered sequence.
func (v *View) Total() int {
	return len(v.entries)
}

// Exhausted reports whether the whole sequence is revealed.
func (v *View) Exhausted() bool {
	return v.revealed >= len(v.entries)
}

// ShouldLoadMore implements the scroll trigger: pos and extent describe the
// current scroll position and the total scrollable extent in whatever units
// the presentation layer uses. Past the threshold fraction, more entries
// should be revealed.
func (v *View) ShouldLoadMore(pos, extent float64) bool {
	if v.Exhausted() || extent <= 0 {
		return false
	}
	return pos >= extent*v.threshold
}
