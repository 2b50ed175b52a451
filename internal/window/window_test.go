package window

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testItemHeight      = 73
	testContainerHeight = 500
	testOverscan        = 3
)

func testState(count int, offset float64) State {
	return State{
		ItemCount:       count,
		ItemHeight:      testItemHeight,
		ContainerHeight: testContainerHeight,
		Overscan:        testOverscan,
		ScrollOffset:    offset,
	}
}

func TestCompute_Scenarios(t *testing.T) {
	tests := []struct {
		name      string
		state     State
		wantStart int
		wantEnd   int
	}{
		{"top of list", testState(1000, 0), 0, 9},
		{"scrolled to row 100", testState(1000, 7300), 97, 109},
		{"empty list", testState(0, 0), 0, -1},
		{"viewport taller than content", testState(5, 0), 0, 4},
		{"viewport taller than content ignores offset", testState(5, 900), 0, 4},
		{"offset past end shows tail", testState(1000, 1e9), 990, 999},
		{"negative offset clamps to top", testState(1000, -250), 0, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.state)
			assert.Equal(t, tt.wantStart, got.StartIndex)
			assert.Equal(t, tt.wantEnd, got.EndIndex)
			assert.Len(t, got.Items, max(0, tt.wantEnd-tt.wantStart+1))
			assert.Equal(t, float64(tt.state.ItemCount)*testItemHeight, got.TotalHeight)
		})
	}
}

func TestCompute_EmptyWindow(t *testing.T) {
	got := Compute(testState(0, 0))
	assert.True(t, got.Empty())
	assert.Equal(t, 0, got.Len())
	assert.NotNil(t, got.Items)
	assert.Empty(t, got.Items)
	assert.Zero(t, got.TotalHeight)
}

func TestCompute_Invariants(t *testing.T) {
	counts := []int{0, 1, 2, 7, 50, 1000}
	heights := []float64{1, 20, 73, 100.5}
	containers := []float64{0, 1, 73, 500, 10000}
	overscans := []int{0, 1, 3, 10}
	offsets := []float64{-1e6, -1, 0, 0.5, 72.9, 73, 7300, 1e6, math.Inf(1), math.Inf(-1), math.NaN()}

	for _, count := range counts {
		for _, h := range heights {
			for _, c := range containers {
				for _, o := range overscans {
					for _, off := range offsets {
						s := State{
							ItemCount:       count,
							ItemHeight:      h,
							ContainerHeight: c,
							Overscan:        o,
							ScrollOffset:    off,
						}
						got := Compute(s)

						require.GreaterOrEqual(t, got.StartIndex, 0, "%+v", s)
						require.LessOrEqual(t, got.EndIndex, count-1, "%+v", s)
						require.LessOrEqual(t, got.StartIndex, got.EndIndex+1, "%+v", s)
						if count > 0 {
							require.LessOrEqual(t, got.StartIndex, got.EndIndex, "%+v", s)
						}
						require.Len(t, got.Items, max(0, got.EndIndex-got.StartIndex+1), "%+v", s)
						require.Equal(t, float64(count)*h, got.TotalHeight, "%+v", s)

						for i, item := range got.Items {
							require.Equal(t, got.StartIndex+i, item.Index, "%+v", s)
							require.Equal(t, float64(item.Index)*h, item.OffsetTop, "%+v", s)
						}
					}
				}
			}
		}
	}
}

func TestCompute_Idempotent(t *testing.T) {
	s := testState(1000, 4321.5)
	assert.Equal(t, Compute(s), Compute(s))
}

func TestCompute_MonotonicScroll(t *testing.T) {
	prev := Compute(testState(1000, 7300))
	for step := 1; step <= 50; step++ {
		offset := float64(7300 + step*testItemHeight)
		got := Compute(testState(1000, offset))
		assert.Equal(t, prev.StartIndex+1, got.StartIndex, "offset %v", offset)
		assert.Equal(t, prev.EndIndex+1, got.EndIndex, "offset %v", offset)
		prev = got
	}
}

func TestCompute_BoundedWork(t *testing.T) {
	small := Compute(testState(1_000, 7300))
	huge := Compute(testState(100_000_000, 7300))
	assert.Equal(t, len(small.Items), len(huge.Items))

	limit := int(testContainerHeight/testItemHeight) + 2 + 2*testOverscan
	for _, count := range []int{100, 10_000, 1_000_000, 1_000_000_000} {
		for _, offset := range []float64{0, 12345, 1e12} {
			got := Compute(testState(count, offset))
			assert.LessOrEqual(t, len(got.Items), limit, "count %d offset %v", count, offset)
		}
	}
}

func TestCompute_ZeroHeightContainer(t *testing.T) {
	s := State{ItemCount: 100, ItemHeight: 10, ContainerHeight: 0, ScrollOffset: 55}
	got := Compute(s)
	assert.Equal(t, 5, got.StartIndex)
	assert.Equal(t, 5, got.EndIndex)

	s.ScrollOffset = 1e9
	got = Compute(s)
	assert.Equal(t, 99, got.StartIndex)
	assert.Equal(t, 99, got.EndIndex)
}

func TestCompute_InvalidGeometryYieldsEmptyWindow(t *testing.T) {
	for _, s := range []State{
		{ItemCount: 10, ItemHeight: 0, ContainerHeight: 100},
		{ItemCount: 10, ItemHeight: -5, ContainerHeight: 100},
		{ItemCount: 10, ItemHeight: math.NaN(), ContainerHeight: 100},
		{ItemCount: 10, ItemHeight: 10, ContainerHeight: -1},
		{ItemCount: -3, ItemHeight: 10, ContainerHeight: 100},
	} {
		got := Compute(s)
		assert.True(t, got.Empty(), "%+v", s)
		assert.Empty(t, got.Items, "%+v", s)
	}
}

func TestCompute_NegativeOverscanTreatedAsZero(t *testing.T) {
	s := testState(1000, 7300)
	s.Overscan = -4
	got := Compute(s)
	assert.Equal(t, 100, got.StartIndex)
	assert.Equal(t, 106, got.EndIndex)
}

func TestCompute_ExtremeGeometry(t *testing.T) {
	tests := []struct {
		name      string
		state     State
		wantStart int
		wantEnd   int
	}{
		{
			name:      "container taller than max int rows",
			state:     State{ItemCount: 10, ItemHeight: 1, ContainerHeight: 1e20, Overscan: 3},
			wantStart: 0,
			wantEnd:   9,
		},
		{
			name:      "max overscan",
			state:     State{ItemCount: 10, ItemHeight: 1, ContainerHeight: 5, Overscan: math.MaxInt},
			wantStart: 0,
			wantEnd:   9,
		},
		{
			name: "max overscan scrolled to the end",
			state: State{
				ItemCount:       10,
				ItemHeight:      1,
				ContainerHeight: 5,
				Overscan:        math.MaxInt,
				ScrollOffset:    5,
			},
			wantStart: 0,
			wantEnd:   9,
		},
		{
			name:      "tiny item height",
			state:     State{ItemCount: 10, ItemHeight: 1e-300, ContainerHeight: 1, ScrollOffset: 1e300},
			wantStart: 0,
			wantEnd:   9,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, Validate(tt.state))
			var got Result
			require.NotPanics(t, func() { got = Compute(tt.state) })
			assert.Equal(t, tt.wantStart, got.StartIndex)
			assert.Equal(t, tt.wantEnd, got.EndIndex)
			assert.Len(t, got.Items, got.Len())
		})
	}
}

func TestCalculator_Memoizes(t *testing.T) {
	var calc Calculator
	s := testState(1000, 7300)

	first := calc.Compute(s)
	second := calc.Compute(s)
	require.NotEmpty(t, first.Items)
	assert.Same(t, &first.Items[0], &second.Items[0])

	s.ScrollOffset += testItemHeight
	third := calc.Compute(s)
	assert.Equal(t, first.StartIndex+1, third.StartIndex)

	calc.Reset()
	assert.Equal(t, third, calc.Compute(s))
}

func TestResult_Contains(t *testing.T) {
	r := Compute(testState(1000, 7300))
	assert.True(t, r.Contains(97))
	assert.True(t, r.Contains(109))
	assert.False(t, r.Contains(96))
	assert.False(t, r.Contains(110))
	assert.Equal(t, 13, r.Len())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		state   State
		wantErr bool
	}{
		{"valid", testState(10, 0), false},
		{"zero container", State{ItemCount: 1, ItemHeight: 1}, false},
		{"zero item height", State{ItemCount: 1, ItemHeight: 0, ContainerHeight: 1}, true},
		{"negative item height", State{ItemHeight: -1}, true},
		{"negative container", State{ItemHeight: 1, ContainerHeight: -1}, true},
		{"infinite item height", State{ItemHeight: math.Inf(1)}, true},
		{"negative count", State{ItemCount: -1, ItemHeight: 1}, true},
		{"negative overscan", State{ItemHeight: 1, Overscan: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.state)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidGeometry)
				return
			}
			assert.NoError(t, err)
		})
	}
}
