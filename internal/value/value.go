package value

import (
	"encoding/binary"
	"fmt"
	"math"
	"slices"

	"github.com/specialistvlad/planegraph/internal/hashing"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// Value is the memoized result slot of a node. The zero Value is empty,
// meaning "not computed yet".
type Value struct {
	v   cty.Value
	set bool
}

// Empty returns the empty Value.
func Empty() Value {
	return Value{}
}

// Of wraps a cty.Value. Null and unknown values are accepted as-is.
func Of(v cty.Value) Value {
	return Value{v: v, set: true}
}

// Number wraps a float64 scalar. f must not be NaN; use Float for numbers
// that were not checked.
func Number(f float64) Value {
	return Of(cty.NumberFloatVal(f))
}

// Float wraps a float64 scalar, rejecting NaN, which has no number value.
func Float(f float64) (Value, error) {
	if math.IsNaN(f) {
		return Empty(), fmt.Errorf("%w: NaN is not a number value", ErrBadValueType)
	}
	return Number(f), nil
}

// String wraps a string.
func String(s string) Value {
	return Of(cty.StringVal(s))
}

// Bool wraps a boolean.
func Bool(b bool) Value {
	return Of(cty.BoolVal(b))
}

// FromPlane wraps a plane in the PlaneType capsule.
func FromPlane(p Plane) Value {
	return Of(cty.CapsuleVal(PlaneType, &p))
}

// FromGo converts a native Go value into a Value. Values and cty values pass
// through. Planes are copied, so the caller may reuse its pixel buffer.
// Anything else must have an implied cty type; NaN floats are rejected.
func FromGo(x any) (Value, error) {
	switch v := x.(type) {
	case Value:
		return v, nil
	case cty.Value:
		return Of(v), nil
	case Plane:
		if err := v.validate(); err != nil {
			return Empty(), err
		}
		v.Pix = slices.Clone(v.Pix)
		return FromPlane(v), nil
	case float64:
		return Float(v)
	case float32:
		return Float(float64(v))
	case *Plane:
		if v == nil {
			return Empty(), fmt.Errorf("%w: nil plane", ErrBadValueType)
		}
		return FromGo(*v)
	case nil:
		return Empty(), fmt.Errorf("%w: nil", ErrBadValueType)
	}

	ty, err := gocty.ImpliedType(x)
	if err != nil {
		return Empty(), fmt.Errorf("%w: %T has no value type: %v", ErrBadValueType, x, err)
	}
	cv, err := gocty.ToCtyValue(x, ty)
	if err != nil {
		return Empty(), fmt.Errorf("%w: converting %T: %v", ErrBadValueType, x, err)
	}
	return Of(cv), nil
}

// IsEmpty reports whether the slot holds no value.
func (v Value) IsEmpty() bool {
	return !v.set
}

// Cty returns the wrapped cty.Value, or cty.NilVal when empty.
func (v Value) Cty() cty.Value {
	if !v.set {
		return cty.NilVal
	}
	return v.v
}

// Type returns the dynamic type of the value, or cty.NilType when empty.
func (v Value) Type() cty.Type {
	if !v.set {
		return cty.NilType
	}
	return v.v.Type()
}

// IsPlane reports whether the value carries a plane.
func (v Value) IsPlane() bool {
	return v.set && v.v.Type().Equals(PlaneType) && !v.v.IsNull()
}

// Plane returns the carried plane, if any.
func (v Value) Plane() (Plane, bool) {
	if !v.IsPlane() {
		return Plane{}, false
	}
	return *v.v.EncapsulatedValue().(*Plane), true
}

// Conforms reports whether the value may be passed where ty is expected.
// cty.DynamicPseudoType accepts any non-empty value.
func (v Value) Conforms(ty cty.Type) bool {
	if !v.set {
		return false
	}
	if ty.Equals(cty.DynamicPseudoType) {
		return true
	}
	return v.v.Type().Equals(ty)
}

func (v Value) String() string {
	if !v.set {
		return "<empty>"
	}
	if p, ok := v.Plane(); ok {
		return fmt.Sprintf("plane(%dx%d)", p.Width, p.Height)
	}
	if v.v.IsNull() || !v.v.IsKnown() {
		return v.v.Type().FriendlyName()
	}
	if v.v.Type().Equals(cty.Number) {
		return v.v.AsBigFloat().Text('g', -1)
	}
	return v.v.GoString()
}

// Fingerprint folds a canonical encoding of the value into h. Planes fold
// their size and raw pixel bits; other values fold their type and JSON form.
func (v Value) Fingerprint(h *hashing.Hasher) error {
	if !v.set {
		h.String("empty")
		return nil
	}
	if p, ok := v.Plane(); ok {
		h.String("plane").Uint32(uint32(p.Width)).Uint32(uint32(p.Height))
		buf := make([]byte, 4*len(p.Pix))
		for i, px := range p.Pix {
			binary.BigEndian.PutUint32(buf[i*4:], math.Float32bits(px))
		}
		h.Bytes(buf)
		return nil
	}

	ty := v.v.Type()
	data, err := ctyjson.Marshal(v.v, ty)
	if err != nil {
		return fmt.Errorf("%w: cannot encode %s: %v", ErrBadValueType, ty.FriendlyName(), err)
	}
	h.String(ty.GoString()).Bytes(data)
	return nil
}

// As extracts the value as a T. Supported targets are Value, cty.Value,
// Plane, and any Go type gocty can decode into (numbers, strings, bools,
// slices, maps).
func As[T any](v Value) (T, error) {
	var out T
	if !v.set {
		return out, fmt.Errorf("%w: no value", ErrBadValueType)
	}

	switch target := any(&out).(type) {
	case *Value:
		*target = v
		return out, nil
	case *cty.Value:
		*target = v.v
		return out, nil
	case *Plane:
		p, ok := v.Plane()
		if !ok {
			return out, fmt.Errorf("%w: want plane, have %s", ErrBadValueType, v.v.Type().FriendlyName())
		}
		*target = p
		return out, nil
	}

	if v.v.Type().IsCapsuleType() {
		return out, fmt.Errorf("%w: cannot decode %s into %T", ErrBadValueType, v.v.Type().FriendlyName(), out)
	}
	if err := gocty.FromCtyValue(v.v, &out); err != nil {
		return out, fmt.Errorf("%w: decoding %s into %T: %v", ErrBadValueType, v.v.Type().FriendlyName(), out, err)
	}
	return out, nil
}
