package image

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/planegraph/internal/computed"
	"github.com/specialistvlad/planegraph/internal/registry"
	"github.com/specialistvlad/planegraph/internal/value"
)

// ErrSizeMismatch is returned when a binary operation gets planes of
// different sizes.
var ErrSizeMismatch = errors.New("plane size mismatch")

// Plane is a lazily computed plane.
type Plane struct {
	*computed.Value[value.Plane]
}

// Operand is a *Plane used by reference, or a plane passed with Temp.
type Operand interface {
	plane() *Plane
	arg() any
}

// CreatePlane returns a w×h plane with every pixel set to v.
func CreatePlane(reg *registry.Registry, w, h int, v float32) (*Plane, error) {
	dims, err := value.NewDimensions(w, h)
	if err != nil {
		return nil, err
	}
	return wrap(computed.New[value.Plane](reg, "p.fill", dims, v))
}

// CreatePlaneFrom returns a w×h plane filled with the value of a scalar
// computed elsewhere.
func CreatePlaneFrom(reg *registry.Registry, w, h int, scalar *computed.Value[float64]) (*Plane, error) {
	dims, err := value.NewDimensions(w, h)
	if err != nil {
		return nil, err
	}
	return wrap(computed.New[value.Plane](reg, "p.fill", dims, scalar))
}

// FromData returns a plane holding a copy of p.
func FromData(reg *registry.Registry, p value.Plane) (*Plane, error) {
	return wrap(computed.Constant(reg, p))
}

// Clone returns a second handle on the same plane.
func (p *Plane) Clone() *Plane {
	return &Plane{Value: p.Value.Clone()}
}

func (p *Plane) plane() *Plane { return p }

func (p *Plane) arg() any { return p.handle() }

func (p *Plane) handle() *computed.Value[value.Plane] {
	if p == nil {
		return nil
	}
	return p.Value
}

type temporary struct {
	p *Plane
}

// Temp passes p as a temporary: its node may be moved into the result's
// graph, and p is released.
func Temp(p *Plane) Operand {
	return temporary{p: p}
}

func (t temporary) plane() *Plane { return t.p }

func (t temporary) arg() any {
	if h := t.p.handle(); h != nil {
		return computed.Temp(h)
	}
	return computed.Temp(nil)
}

func wrap(v *computed.Value[value.Plane], err error) (*Plane, error) {
	if err != nil {
		return nil, err
	}
	return &Plane{Value: v}, nil
}

// source returns the registry and dimensions of an operand.
func source(o Operand) (*registry.Registry, value.Dimensions, error) {
	if o == nil {
		return nil, value.NullDims, computed.ErrNoGraph
	}
	h := o.plane().handle()
	if h.Empty() {
		return nil, value.NullDims, computed.ErrNoGraph
	}
	return h.Graph().Registry(), h.Dims(), nil
}

func sameSize(a, b value.Dimensions) error {
	if a != b {
		return fmt.Errorf("%w: %s and %s", ErrSizeMismatch, a, b)
	}
	return nil
}
