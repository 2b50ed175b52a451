package window

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidGeometry = errors.New("invalid list geometry")
	ErrIndexOutOfRange = errors.New("index out of range")
)

// Validate reports whether the geometry of s can be windowed.
func Validate(s State) error {
	switch {
	case math.IsNaN(s.ItemHeight) || s.ItemHeight <= 0:
		return fmt.Errorf("%w: item height %v must be > 0", ErrInvalidGeometry, s.ItemHeight)
	case math.IsNaN(s.ContainerHeight) || s.ContainerHeight < 0:
		return fmt.Errorf(
			"%w: container height %v must be >= 0",
			ErrInvalidGeometry,
			s.ContainerHeight,
		)
	case math.IsInf(s.ItemHeight, 0) || math.IsInf(s.ContainerHeight, 0):
		return fmt.Errorf("%w: heights must be finite", ErrInvalidGeometry)
	case s.ItemCount < 0:
		return fmt.Errorf("%w: item count %d must be >= 0", ErrInvalidGeometry, s.ItemCount)
	case s.Overscan < 0:
		return fmt.Errorf("%w: overscan %d must be >= 0", ErrInvalidGeometry, s.Overscan)
	}
	return nil
}
