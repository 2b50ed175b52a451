package window

import (
	"fmt"
	"math"
)

// Geometry is the host-owned part of a State.
type Geometry struct {
	ItemCount       int
	ItemHeight      float64
	ContainerHeight float64
	Overscan        int
}

// Controller is the single writer of a list's scroll offset.
//
// User scrolling and ScrollToIndex share one update path, so observers cannot
// tell where a position change came from. A Controller is not safe for
// concurrent use; the owning view serializes calls.
type Controller struct {
	state    State
	calc     Calculator
	onScroll func(offset float64)
}

// Option configures a Controller.
type Option func(*Controller)

// WithScrollHandler registers fn to be told the target offset after
// ScrollToIndex, so the host can move its own scrollable surface.
func WithScrollHandler(fn func(offset float64)) Option {
	return func(c *Controller) {
		c.onScroll = fn
	}
}

// WithOffset sets the initial scroll offset. It is clamped like any update.
func WithOffset(offset float64) Option {
	return func(c *Controller) {
		c.state.ScrollOffset = offset
	}
}

// NewController validates g and returns a controller scrolled to the top.
func NewController(g Geometry, opts ...Option) (*Controller, error) {
	state := stateFor(g, 0)
	if err := Validate(state); err != nil {
		return nil, err
	}
	c := &Controller{state: state}
	for _, opt := range opts {
		opt(c)
	}
	c.state.ScrollOffset = c.state.ClampOffset(c.state.ScrollOffset)
	return c, nil
}

func stateFor(g Geometry, offset float64) State {
	return State{
		ItemCount:       g.ItemCount,
		ItemHeight:      g.ItemHeight,
		ContainerHeight: g.ContainerHeight,
		Overscan:        g.Overscan,
		ScrollOffset:    offset,
	}
}

// OnUserScroll applies a raw scroll offset from the host and returns the new
// window.
func (c *Controller) OnUserScroll(rawOffset float64) Result {
	c.state.ScrollOffset = c.state.ClampOffset(rawOffset)
	return c.calc.Compute(c.state)
}

// ScrollBy scrolls relative to the current offset.
func (c *Controller) ScrollBy(delta float64) Result {
	return c.OnUserScroll(c.state.ScrollOffset + delta)
}

// ScrollToIndex brings index into the window. Near the tail the row may not
// end up first, because the offset cannot exceed MaxOffset, but it is always
// inside [StartIndex, EndIndex].
//
// An out-of-range index returns ErrIndexOutOfRange and leaves the state
// unchanged.
func (c *Controller) ScrollToIndex(index int) (Result, error) {
	if index < 0 || index >= c.state.ItemCount {
		return c.CurrentWindow(), fmt.Errorf(
			"%w: %d not in [0, %d)",
			ErrIndexOutOfRange,
			index,
			c.state.ItemCount,
		)
	}
	target := c.state.ClampOffset(float64(index) * c.state.ItemHeight)
	result := c.OnUserScroll(target)
	if c.onScroll != nil {
		c.onScroll(c.state.ScrollOffset)
	}
	return result, nil
}

// CurrentWindow returns the window at the current offset.
func (c *Controller) CurrentWindow() Result {
	return c.calc.Compute(c.state)
}

// SetGeometry replaces the geometry and re-clamps the offset. Invalid
// geometry is rejected and the previous state is kept.
func (c *Controller) SetGeometry(g Geometry) (Result, error) {
	next := stateFor(g, c.state.ScrollOffset)
	if err := Validate(next); err != nil {
		return c.CurrentWindow(), err
	}
	next.ScrollOffset = next.ClampOffset(next.ScrollOffset)
	c.state = next
	return c.calc.Compute(c.state), nil
}

// SetItemCount updates the list length, e.g. after a data refresh.
func (c *Controller) SetItemCount(count int) (Result, error) {
	g := c.Geometry()
	g.ItemCount = count
	return c.SetGeometry(g)
}

// SetContainerHeight updates the viewport height, e.g. after a resize.
func (c *Controller) SetContainerHeight(height float64) (Result, error) {
	g := c.Geometry()
	g.ContainerHeight = height
	return c.SetGeometry(g)
}

// IndexAt maps a position relative to the top of the viewport to the row
// under it. ok is false when the position is outside the list or viewport.
func (c *Controller) IndexAt(viewportY float64) (int, bool) {
	if math.IsNaN(viewportY) || viewportY < 0 || viewportY >= c.state.ContainerHeight {
		return 0, false
	}
	row := math.Floor((c.state.ScrollOffset + viewportY) / c.state.ItemHeight)
	if row < 0 || row >= float64(c.state.ItemCount) {
		return 0, false
	}
	return int(row), true
}

// Offset returns the current scroll offset.
func (c *Controller) Offset() float64 {
	return c.state.ScrollOffset
}

// MaxOffset returns the largest valid scroll offset for the current geometry.
func (c *Controller) MaxOffset() float64 {
	return c.state.MaxOffset()
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	return c.state
}

// Geometry returns the current geometry.
func (c *Controller) Geometry() Geometry {
	return Geometry{
		ItemCount:       c.state.ItemCount,
		ItemHeight:      c.state.ItemHeight,
		ContainerHeight: c.state.ContainerHeight,
		Overscan:        c.state.Overscan,
	}
}
