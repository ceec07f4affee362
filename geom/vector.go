// Package geom holds the small math value types that appear as struct
// fields in inspected data: vectors, rotations and colors.
package geom

import "fmt"

// Vector is a 3D vector.
type Vector struct {
	X, Y, Z float64
}

// Add returns the sum of two vectors.
func (v Vector) Add(o Vector) Vector {
	return Vector{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Scale returns the vector scaled by s.
func (v Vector) Scale(s float64) Vector {
	return Vector{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

func (v Vector) String() string {
	return fmt.Sprintf("X=%.3f Y=%.3f Z=%.3f", v.X, v.Y, v.Z)
}

// Vector2D is a 2D vector.
type Vector2D struct {
	X, Y float64
}

func (v Vector2D) String() string {
	return fmt.Sprintf("X=%.3f Y=%.3f", v.X, v.Y)
}

// Vector4 is a 4D vector.
type Vector4 struct {
	X, Y, Z, W float64
}

func (v Vector4) String() string {
	return fmt.Sprintf("X=%.3f Y=%.3f Z=%.3f W=%.3f", v.X, v.Y, v.Z, v.W)
}

// IntVector is a 3D integer vector, typically a grid cell.
type IntVector struct {
	X, Y, Z int32
}

func (v IntVector) String() string {
	return fmt.Sprintf("X=%d Y=%d Z=%d", v.X, v.Y, v.Z)
}
