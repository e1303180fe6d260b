package value

import (
	"fmt"
	"reflect"

	"github.com/zclconf/go-cty/cty"
)

// Plane is a single channel of float pixel data in row-major order.
//
// Planes stored in a graph are shared between nodes and must be treated as
// immutable; kernels always allocate a fresh Plane for their result.
type Plane struct {
	Width  int
	Height int
	Pix    []float32
}

// PlaneType is the cty capsule type carrying a Plane.
var PlaneType = cty.Capsule("plane", reflect.TypeOf(Plane{}))

// NewPlane allocates a zeroed plane.
func NewPlane(w, h int) Plane {
	return Plane{Width: w, Height: h, Pix: make([]float32, w*h)}
}

// FilledPlane allocates a plane with every pixel set to v.
func FilledPlane(w, h int, v float32) Plane {
	p := NewPlane(w, h)
	for i := range p.Pix {
		p.Pix[i] = v
	}
	return p
}

// At returns the pixel at column x, row y.
func (p Plane) At(x, y int) float32 {
	return p.Pix[y*p.Width+x]
}

// Dims returns the plane size as Dimensions. Sizes that do not fit are
// reported as NullDims.
func (p Plane) Dims() Dimensions {
	d, err := NewDimensions(p.Width, p.Height)
	if err != nil {
		return NullDims
	}
	return d
}

// SameSize reports whether p and o have identical width and height.
func (p Plane) SameSize(o Plane) bool {
	return p.Width == o.Width && p.Height == o.Height
}

func (p Plane) validate() error {
	if p.Width < 0 || p.Height < 0 || len(p.Pix) != p.Width*p.Height {
		return fmt.Errorf("%w: plane %dx%d with %d pixels", ErrBadValueType, p.Width, p.Height, len(p.Pix))
	}
	return nil
}
