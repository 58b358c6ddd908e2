package math

import "github.com/chewxy/math32"

// Axis flags select a subset of the X, Y and Z axes.
type Axis uint8

const (
	AxisX Axis = 1 << iota
	AxisY
	AxisZ
)

// Has reports whether every axis in other is set in a.
func (a Axis) Has(other Axis) bool {
	return a&other == other
}

// String returns the set axes as letters, e.g. "XZ".
func (a Axis) String() string {
	if a == 0 {
		return "-"
	}
	s := ""
	if a.Has(AxisX) {
		s += "X"
	}
	if a.Has(AxisY) {
		s += "Y"
	}
	if a.Has(AxisZ) {
		s += "Z"
	}
	return s
}

// Vec3 is a 3D vector.
type Vec3 struct {
	X, Y, Z float32
}

// Add returns v + other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Scale returns v * scalar.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product.
func (v Vec3) Dot(other Vec3) float32 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product.
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		v.Y*other.Z - v.Z*other.Y,
		v.Z*other.X - v.X*other.Z,
		v.X*other.Y - v.Y*other.X,
	}
}

// Length returns the magnitude.
func (v Vec3) Length() float32 {
	return math32.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalize returns a unit vector, or the zero vector if v has no length.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}
}

// Distance returns the distance to another point.
func (v Vec3) Distance(other Vec3) float32 {
	return v.Sub(other).Length()
}

// Lerp returns v + (other - v) * t.
func (v Vec3) Lerp(other Vec3, t float32) Vec3 {
	return Vec3{
		v.X + (other.X-v.X)*t,
		v.Y + (other.Y-v.Y)*t,
		v.Z + (other.Z-v.Z)*t,
	}
}

// Flip negates the components selected by axes.
func (v Vec3) Flip(axes Axis) Vec3 {
	if axes.Has(AxisX) {
		v.X = -v.X
	}
	if axes.Has(AxisY) {
		v.Y = -v.Y
	}
	if axes.Has(AxisZ) {
		v.Z = -v.Z
	}
	return v
}

// At returns component i (0=X, 1=Y, 2=Z).
func (v Vec3) At(i int) float32 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// With returns v with component i replaced by f.
func (v Vec3) With(i int, f float32) Vec3 {
	switch i {
	case 0:
		v.X = f
	case 1:
		v.Y = f
	default:
		v.Z = f
	}
	return v
}

// Array returns the components as an array.
func (v Vec3) Array() [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}
