package value

import (
	"fmt"
	"math"
)

// Dimensions is the logical plane size a node produces.
type Dimensions struct {
	X uint16
	Y uint16
}

// NullDims marks scalars and unset sizes.
var NullDims = Dimensions{}

// NewDimensions validates a width and height and returns them as Dimensions.
func NewDimensions(w, h int) (Dimensions, error) {
	if w <= 0 || h <= 0 || w > math.MaxUint16 || h > math.MaxUint16 {
		return NullDims, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, w, h)
	}
	return Dimensions{X: uint16(w), Y: uint16(h)}, nil
}

// IsNull reports whether d is the null dimension.
func (d Dimensions) IsNull() bool {
	return d == NullDims
}

// Width returns X as an int.
func (d Dimensions) Width() int { return int(d.X) }

// Height returns Y as an int.
func (d Dimensions) Height() int { return int(d.Y) }

func (d Dimensions) String() string {
	if d.IsNull() {
		return "null"
	}
	return fmt.Sprintf("%dx%d", d.X, d.Y)
}
