package image

import (
	"github.com/specialistvlad/planegraph/internal/computed"
	"github.com/specialistvlad/planegraph/internal/value"
)

// Add returns a + b.
func Add(a, b Operand) (*Plane, error) {
	return planePlane("p.add_pp", a, b)
}

// Sub returns a - b.
func Sub(a, b Operand) (*Plane, error) {
	return planePlane("p.sub_pp", a, b)
}

// Mul returns the pixel-wise product a * b.
func Mul(a, b Operand) (*Plane, error) {
	return planePlane("p.mul_pp", a, b)
}

// AddScalar returns a + n.
func AddScalar(a Operand, n float64) (*Plane, error) {
	return planeNumber("p.add_pn", a, n)
}

// MulScalar returns a * n.
func MulScalar(a Operand, n float64) (*Plane, error) {
	return planeNumber("p.mul_pn", a, n)
}

// Neg returns -a.
func Neg(a Operand) (*Plane, error) {
	return MulScalar(a, -1)
}

// Abs returns |a|.
func Abs(a Operand) (*Plane, error) {
	return unary("p.abs", a)
}

// Sqrt returns the pixel-wise square root of a.
func Sqrt(a Operand) (*Plane, error) {
	return unary("p.sqrt", a)
}

// Square returns a * a.
func Square(a Operand) (*Plane, error) {
	return unary("p.square", a)
}

// Assign returns a new handle computing the same pixels as a.
func Assign(a Operand) (*Plane, error) {
	return unary("p.assign", a)
}

// Sum returns the sum of all pixels of a.
func Sum(a Operand) (*computed.Value[float64], error) {
	reg, _, err := source(a)
	if err != nil {
		return nil, err
	}
	return computed.New[float64](reg, "p.sum", value.NullDims, a.arg())
}

func unary(opname string, a Operand) (*Plane, error) {
	reg, dims, err := source(a)
	if err != nil {
		return nil, err
	}
	return wrap(computed.New[value.Plane](reg, opname, dims, a.arg()))
}

func planePlane(opname string, a, b Operand) (*Plane, error) {
	reg, dims, err := source(a)
	if err != nil {
		return nil, err
	}
	_, bdims, err := source(b)
	if err != nil {
		return nil, err
	}
	if err := sameSize(dims, bdims); err != nil {
		return nil, err
	}
	return wrap(computed.New[value.Plane](reg, opname, dims, a.arg(), b.arg()))
}

func planeNumber(opname string, a Operand, n float64) (*Plane, error) {
	reg, dims, err := source(a)
	if err != nil {
		return nil, err
	}
	return wrap(computed.New[value.Plane](reg, opname, dims, a.arg(), n))
}
