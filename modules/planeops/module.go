// Package planeops provides the pixel kernels over value.Plane.
//
// Kernels never modify their inputs: every result is a freshly allocated
// plane, since input planes may be cached by other nodes.
package planeops

import (
	"context"
	_ "embed"
	"fmt"
	"math"

	"github.com/chewxy/math32"
	"github.com/specialistvlad/planegraph/internal/registry"
	"github.com/specialistvlad/planegraph/internal/value"
	"github.com/zclconf/go-cty/cty"
)

//go:embed manifest.hcl
var manifest []byte

// Module implements the registry.Module interface for this package.
type Module struct{}

// Manifest returns the embedded operation manifest.
func (m *Module) Manifest() (string, []byte) {
	return "planeops/manifest.hcl", manifest
}

// Register registers the plane kernels with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterKernel("AssignPlane", unary(func(px float32) float32 { return px }))
	r.RegisterKernel("AbsolutePlane", unary(math32.Abs))
	r.RegisterKernel("SqrtPlane", unary(math32.Sqrt))
	r.RegisterKernel("SquarePlane", unary(func(px float32) float32 { return px * px }))

	r.RegisterKernel("AddPlanePlane", planePlane(func(a, b float32) float32 { return a + b }))
	r.RegisterKernel("SubtractPlanePlane", planePlane(func(a, b float32) float32 { return a - b }))
	r.RegisterKernel("MultiplyPlanePlane", planePlane(func(a, b float32) float32 { return a * b }))

	r.RegisterKernel("AddPlaneNumber", planeNumber(func(a, n float32) float32 { return a + n }))
	r.RegisterKernel("MultiplyPlaneNumber", planeNumber(func(a, n float32) float32 { return a * n }))

	r.RegisterKernel("FillPlane", &registry.RegisteredKernel{
		InputTypes: []cty.Type{cty.Number},
		Fn:         fill,
	})
	r.RegisterKernel("SumPlane", &registry.RegisteredKernel{
		InputTypes: []cty.Type{value.PlaneType},
		Fn:         sum,
	})
}

func unary(fn func(px float32) float32) *registry.RegisteredKernel {
	return &registry.RegisteredKernel{
		InputTypes: []cty.Type{value.PlaneType},
		Fn: func(_ context.Context, call *registry.Call) (value.Value, error) {
			a, err := value.As[value.Plane](call.Inputs[0])
			if err != nil {
				return value.Empty(), err
			}
			out := value.NewPlane(a.Width, a.Height)
			for i, px := range a.Pix {
				out.Pix[i] = fn(px)
			}
			return value.FromPlane(out), nil
		},
	}
}

func planePlane(fn func(a, b float32) float32) *registry.RegisteredKernel {
	return &registry.RegisteredKernel{
		InputTypes: []cty.Type{value.PlaneType, value.PlaneType},
		Fn: func(_ context.Context, call *registry.Call) (value.Value, error) {
			a, err := value.As[value.Plane](call.Inputs[0])
			if err != nil {
				return value.Empty(), err
			}
			b, err := value.As[value.Plane](call.Inputs[1])
			if err != nil {
				return value.Empty(), err
			}
			if !a.SameSize(b) {
				return value.Empty(), fmt.Errorf("plane sizes differ: %s and %s", a.Dims(), b.Dims())
			}
			out := value.NewPlane(a.Width, a.Height)
			for i := range out.Pix {
				out.Pix[i] = fn(a.Pix[i], b.Pix[i])
			}
			return value.FromPlane(out), nil
		},
	}
}

func planeNumber(fn func(a, n float32) float32) *registry.RegisteredKernel {
	return &registry.RegisteredKernel{
		InputTypes: []cty.Type{value.PlaneType, cty.Number},
		Fn: func(_ context.Context, call *registry.Call) (value.Value, error) {
			a, err := value.As[value.Plane](call.Inputs[0])
			if err != nil {
				return value.Empty(), err
			}
			n, err := value.As[float32](call.Inputs[1])
			if err != nil {
				return value.Empty(), err
			}
			out := value.NewPlane(a.Width, a.Height)
			for i, px := range a.Pix {
				out.Pix[i] = fn(px, n)
			}
			return value.FromPlane(out), nil
		},
	}
}

// fill produces a plane of the node's dimensions.
func fill(_ context.Context, call *registry.Call) (value.Value, error) {
	if call.Dims.IsNull() {
		return value.Empty(), fmt.Errorf("%w: fill needs non-null dimensions", value.ErrInvalidDimensions)
	}
	v, err := value.As[float32](call.Inputs[0])
	if err != nil {
		return value.Empty(), err
	}
	return value.FromPlane(value.FilledPlane(call.Dims.Width(), call.Dims.Height(), v)), nil
}

func sum(_ context.Context, call *registry.Call) (value.Value, error) {
	a, err := value.As[value.Plane](call.Inputs[0])
	if err != nil {
		return value.Empty(), err
	}
	var total float64
	for _, px := range a.Pix {
		total += float64(px)
	}
	if math.IsNaN(total) || math.IsInf(total, 0) {
		return value.Empty(), fmt.Errorf("%w: plane sum is %v", value.ErrBadValueType, total)
	}
	return value.Number(total), nil
}
