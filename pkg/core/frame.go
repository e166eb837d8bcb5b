package core

import (
	"math"

	"golang.org/x/image/math/f64"
)

// NewFrame builds the rotation matrix that takes world-space offsets into a
// plane's local coordinates. Rows are the local x axis, the local y axis and
// the plane normal. xdir is orthogonalized against normal before use, so the
// rows are orthonormal even when the caller's x direction is slightly tilted.
// An xdir with no component in the plane is replaced by Perpendicular(normal).
func NewFrame(xdir, normal Vec3) f64.Mat3 {
	row2 := normal.Normalize()
	row0 := xdir.ProjectOntoPlane(row2)
	if row0.Length() < 1e-9 {
		row0 = Perpendicular(row2)
	}
	row0 = row0.Normalize()
	row1 := row2.Cross(row0)

	return f64.Mat3{
		row0.X, row0.Y, row0.Z,
		row1.X, row1.Y, row1.Z,
		row2.X, row2.Y, row2.Z,
	}
}

// Perpendicular returns a unit vector orthogonal to the unit vector n, taken
// from the world axis least aligned with n
func Perpendicular(n Vec3) Vec3 {
	axis := NewVec3(1, 0, 0)
	ax, ay, az := math.Abs(n.X), math.Abs(n.Y), math.Abs(n.Z)
	if ay < ax && ay <= az {
		axis = NewVec3(0, 1, 0)
	} else if az < ax && az < ay {
		axis = NewVec3(0, 0, 1)
	}
	return axis.ProjectOntoPlane(n).Normalize()
}

// Transform multiplies v by the row-major matrix m
func Transform(m f64.Mat3, v Vec3) Vec3 {
	return Vec3{
		X: m[0]*v.X + m[1]*v.Y + m[2]*v.Z,
		Y: m[3]*v.X + m[4]*v.Y + m[5]*v.Z,
		Z: m[6]*v.X + m[7]*v.Y + m[8]*v.Z,
	}
}

// Row returns row i of m as a vector
func Row(m f64.Mat3, i int) Vec3 {
	return Vec3{m[3*i], m[3*i+1], m[3*i+2]}
}
