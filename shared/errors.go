package shared

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfBounds     = errors.New("out of bounds")
	ErrInvalidWidth    = errors.New("invalid bit width")
	ErrInvalidArgument = errors.New("invalid argument")
)

// BoundsError reports a position, index or length outside of the range
// permitted by the operation.
type BoundsError struct {
	Op     string
	Index  int
	Length int
	Size   int
}

func (err *BoundsError) Error() string {
	if err.Length != 0 {
		return fmt.Sprintf("%v: position %d with length %d out of bounds; size: %d",
			err.Op, err.Index, err.Length, err.Size)
	}
	return fmt.Sprintf("%v: position %d out of bounds; size: %d", err.Op, err.Index, err.Size)
}

func (err *BoundsError) Is(target error) bool {
	return target == ErrOutOfBounds
}

// WidthError reports a requested bit width outside of [0, Max].
type WidthError struct {
	Op    string
	Width int
	Max   int
}

func (err *WidthError) Error() string {
	return fmt.Sprintf("%v: invalid bit width; expected: 0..%d, given: %d", err.Op, err.Max, err.Width)
}

func (err *WidthError) Is(target error) bool {
	return target == ErrInvalidWidth
}

// ValidateWidth checks that width lies within [0, max].
func ValidateWidth(op string, width, max int) error {
	if width < 0 || width > max {
		return &WidthError{Op: op, Width: width, Max: max}
	}
	return nil
}
