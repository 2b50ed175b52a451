package window

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGeometry(count int) Geometry {
	return Geometry{
		ItemCount:       count,
		ItemHeight:      testItemHeight,
		ContainerHeight: testContainerHeight,
		Overscan:        testOverscan,
	}
}

func newTestController(t *testing.T, count int, opts ...Option) *Controller {
	t.Helper()
	c, err := NewController(testGeometry(count), opts...)
	require.NoError(t, err)
	return c
}

func TestNewController(t *testing.T) {
	c := newTestController(t, 1000)
	assert.Zero(t, c.Offset())
	assert.Equal(t, 72500.0, c.MaxOffset())
	assert.Equal(t, testGeometry(1000), c.Geometry())

	w := c.CurrentWindow()
	assert.Equal(t, 0, w.StartIndex)
	assert.Equal(t, 9, w.EndIndex)
}

func TestNewController_InitialOffsetClamped(t *testing.T) {
	c := newTestController(t, 1000, WithOffset(1e9))
	assert.Equal(t, c.MaxOffset(), c.Offset())

	c = newTestController(t, 1000, WithOffset(-10))
	assert.Zero(t, c.Offset())
}

func TestNewController_RejectsInvalidGeometry(t *testing.T) {
	for _, g := range []Geometry{
		{ItemCount: 10, ItemHeight: 0, ContainerHeight: 100},
		{ItemCount: 10, ItemHeight: math.NaN(), ContainerHeight: 100},
		{ItemCount: 10, ItemHeight: 10, ContainerHeight: -1},
		{ItemCount: -1, ItemHeight: 10, ContainerHeight: 100},
		{ItemCount: 10, ItemHeight: 10, ContainerHeight: 100, Overscan: -1},
	} {
		c, err := NewController(g)
		assert.ErrorIs(t, err, ErrInvalidGeometry, "%+v", g)
		assert.Nil(t, c)
	}
}

func TestOnUserScroll(t *testing.T) {
	tests := []struct {
		name       string
		raw        float64
		wantOffset float64
		wantStart  int
		wantEnd    int
	}{
		{"row 100", 7300, 7300, 97, 109},
		{"negative", -500, 0, 0, 9},
		{"past end", 1e9, 72500, 990, 999},
		{"nan", math.NaN(), 0, 0, 9},
		{"positive infinity", math.Inf(1), 72500, 990, 999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestController(t, 1000)
			w := c.OnUserScroll(tt.raw)
			assert.Equal(t, tt.wantOffset, c.Offset())
			assert.Equal(t, tt.wantStart, w.StartIndex)
			assert.Equal(t, tt.wantEnd, w.EndIndex)
		})
	}
}

func TestScrollBy(t *testing.T) {
	c := newTestController(t, 1000)
	c.ScrollBy(7300)
	w := c.ScrollBy(73)
	assert.Equal(t, 7373.0, c.Offset())
	assert.Equal(t, 98, w.StartIndex)

	c.ScrollBy(-1e9)
	assert.Zero(t, c.Offset())
}

func TestScrollToIndex_AlwaysContainsIndex(t *testing.T) {
	for _, count := range []int{1, 5, 7, 8, 100, 1000} {
		c := newTestController(t, count)
		for i := range count {
			w, err := c.ScrollToIndex(i)
			require.NoError(t, err)
			require.True(t, w.Contains(i), "count %d index %d window %d..%d", count, i, w.StartIndex, w.EndIndex)
			require.LessOrEqual(t, c.Offset(), c.MaxOffset())
			require.GreaterOrEqual(t, c.Offset(), 0.0)
		}
	}
}

func TestScrollToIndex_Targets(t *testing.T) {
	c := newTestController(t, 1000)

	w, err := c.ScrollToIndex(500)
	require.NoError(t, err)
	assert.Equal(t, 36500.0, c.Offset())
	assert.Equal(t, 497, w.StartIndex)

	w, err = c.ScrollToIndex(999)
	require.NoError(t, err)
	assert.Equal(t, 72500.0, c.Offset())
	assert.Equal(t, 999, w.EndIndex)

	w, err = c.ScrollToIndex(0)
	require.NoError(t, err)
	assert.Zero(t, c.Offset())
	assert.Equal(t, 0, w.StartIndex)
}

func TestScrollToIndex_OutOfRange(t *testing.T) {
	var calls int
	c := newTestController(t, 1000, WithScrollHandler(func(float64) { calls++ }))
	c.OnUserScroll(7300)
	before := c.State()

	for _, i := range []int{-1, 1000, 5000} {
		w, err := c.ScrollToIndex(i)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
		assert.Equal(t, before, c.State())
		assert.Equal(t, 97, w.StartIndex)
	}
	assert.Zero(t, calls)

	empty := newTestController(t, 0)
	_, err := empty.ScrollToIndex(0)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestScrollToIndex_NotifiesHost(t *testing.T) {
	var got []float64
	c := newTestController(t, 1000, WithScrollHandler(func(offset float64) {
		got = append(got, offset)
	}))

	_, err := c.ScrollToIndex(10)
	require.NoError(t, err)
	_, err = c.ScrollToIndex(999)
	require.NoError(t, err)
	c.OnUserScroll(100)

	assert.Equal(t, []float64{730, 72500}, got)
}

func TestSetGeometry(t *testing.T) {
	c := newTestController(t, 1000)
	c.OnUserScroll(72500)

	w, err := c.SetItemCount(100)
	require.NoError(t, err)
	assert.Equal(t, 6800.0, c.Offset())
	assert.Equal(t, 99, w.EndIndex)

	w, err = c.SetContainerHeight(10000)
	require.NoError(t, err)
	assert.Zero(t, c.Offset())
	assert.Equal(t, 0, w.StartIndex)
	assert.Equal(t, 99, w.EndIndex)

	w, err = c.SetItemCount(0)
	require.NoError(t, err)
	assert.True(t, w.Empty())
	assert.Zero(t, c.Offset())
}

func TestSetGeometry_RejectsInvalid(t *testing.T) {
	c := newTestController(t, 1000)
	c.OnUserScroll(7300)
	before := c.State()

	_, err := c.SetContainerHeight(-1)
	assert.ErrorIs(t, err, ErrInvalidGeometry)
	_, err = c.SetItemCount(-5)
	assert.ErrorIs(t, err, ErrInvalidGeometry)
	g := c.Geometry()
	g.ItemHeight = 0
	w, err := c.SetGeometry(g)
	assert.ErrorIs(t, err, ErrInvalidGeometry)

	assert.Equal(t, before, c.State())
	assert.Equal(t, 97, w.StartIndex)
}

func TestIndexAt(t *testing.T) {
	c := newTestController(t, 1000)
	c.OnUserScroll(7300)

	tests := []struct {
		y      float64
		want   int
		wantOK bool
	}{
		{0, 100, true},
		{72.9, 100, true},
		{73, 101, true},
		{499, 106, true},
		{500, 0, false},
		{-1, 0, false},
		{math.NaN(), 0, false},
	}
	for _, tt := range tests {
		got, ok := c.IndexAt(tt.y)
		assert.Equal(t, tt.wantOK, ok, "y=%v", tt.y)
		assert.Equal(t, tt.want, got, "y=%v", tt.y)
	}

	short := newTestController(t, 2)
	_, ok := short.IndexAt(200)
	assert.False(t, ok)
}

func TestController_ExtremeGeometry(t *testing.T) {
	c, err := NewController(Geometry{ItemCount: 10, ItemHeight: 1, ContainerHeight: 1e20, Overscan: 3})
	require.NoError(t, err)

	var got Result
	require.NotPanics(t, func() { got = c.CurrentWindow() })
	assert.Equal(t, 0, got.StartIndex)
	assert.Equal(t, 9, got.EndIndex)

	idx, ok := c.IndexAt(9.5)
	assert.True(t, ok)
	assert.Equal(t, 9, idx)
	_, ok = c.IndexAt(5e19)
	assert.False(t, ok)
}
