// Package window computes which rows of a fixed-row-height list need to be
// materialized for a given scroll position.
//
// The work done per call is proportional to the visible window plus overscan,
// never to the length of the list.
package window

import "math"

// State is the geometry and scroll position of one virtualized list.
type State struct {
	ItemCount       int
	ItemHeight      float64
	ContainerHeight float64
	Overscan        int
	ScrollOffset    float64
}

// Item is a row that should be materialized, positioned at OffsetTop from the
// top of the logical list.
type Item struct {
	Index     int
	OffsetTop float64
}

// Result is the window computed for a State.
//
// EndIndex < StartIndex means there is nothing to render.
type Result struct {
	StartIndex  int
	EndIndex    int
	Items       []Item
	TotalHeight float64
}

// Len reports how many rows are in the window.
func (r Result) Len() int {
	return max(0, r.EndIndex-r.StartIndex+1)
}

// Empty reports whether the window has no rows.
func (r Result) Empty() bool {
	return r.EndIndex < r.StartIndex
}

// Contains reports whether index falls inside [StartIndex, EndIndex].
func (r Result) Contains(index int) bool {
	return index >= r.StartIndex && index <= r.EndIndex
}

// TotalHeight is the height of the whole logical list.
func (s State) TotalHeight() float64 {
	if s.ItemCount <= 0 {
		return 0
	}
	return float64(s.ItemCount) * s.ItemHeight
}

// MaxOffset is the largest scroll offset that still fills the viewport.
func (s State) MaxOffset() float64 {
	return math.Max(0, s.TotalHeight()-s.ContainerHeight)
}

// ClampOffset clamps offset into [0, MaxOffset]. NaN clamps to 0.
func (s State) ClampOffset(offset float64) float64 {
	if math.IsNaN(offset) || offset <= 0 {
		return 0
	}
	return math.Min(offset, s.MaxOffset())
}

// Compute returns the window for s.
//
// Compute is pure. It clamps ScrollOffset itself, so an unclamped offset
// still yields a valid window. Invalid geometry (see Validate) yields the
// empty window rather than a panic.
func Compute(s State) Result {
	if s.ItemCount <= 0 || !heightsValid(s) {
		return Result{StartIndex: 0, EndIndex: -1, Items: []Item{}, TotalHeight: s.TotalHeight()}
	}

	overscan := max(0, s.Overscan)
	last := s.ItemCount - 1
	offset := s.ClampOffset(s.ScrollOffset)

	// Clamp in float space; huge quotients do not fit in an int.
	viewportStart := int(math.Min(float64(last), math.Floor(offset/s.ItemHeight)))
	viewportEnd := int(math.Min(float64(last), math.Floor((offset+s.ContainerHeight)/s.ItemHeight)))

	start := 0
	if overscan < viewportStart {
		start = viewportStart - overscan
	}
	end := last
	if overscan < last-viewportEnd {
		end = viewportEnd + overscan
	}

	items := make([]Item, 0, end-start+1)
	for i := start; i <= end; i++ {
		items = append(items, Item{Index: i, OffsetTop: float64(i) * s.ItemHeight})
	}

	return Result{
		StartIndex:  start,
		EndIndex:    end,
		Items:       items,
		TotalHeight: s.TotalHeight(),
	}
}

func heightsValid(s State) bool {
	return s.ItemHeight > 0 && !math.IsInf(s.ItemHeight, 0) &&
		s.ContainerHeight >= 0 && !math.IsInf(s.ContainerHeight, 0)
}

// Calculator memoizes Compute on its last input.
//
// The returned Result shares its Items slice with the cache and must be
// treated as read-only.
type Calculator struct {
	last   State
	result Result
	valid  bool
}

// Compute returns the window for s, reusing the previous result when s is
// unchanged.
func (c *Calculator) Compute(s State) Result {
	if c.valid && c.last == s {
		return c.result
	}
	c.last = s
	c.result = Compute(s)
	c.valid = true
	return c.result
}

// Reset drops the cached result.
func (c *Calculator) Reset() {
	*c = Calculator{}
}
