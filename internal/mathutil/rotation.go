package mathutil

import "github.com/chewxy/math32"

// RotX returns a 3×3 rotation matrix around the X axis. Angle in radians.
func RotX(a float32) Mat3 {
	s, c := math32.Sincos(a)
	return Mat3{
		1, 0, 0,
		0, c, -s,
		0, s, c,
	}
}

// RotY returns a 3×3 rotation matrix around the Y axis.
func RotY(a float32) Mat3 {
	s, c := math32.Sincos(a)
	return Mat3{
		c, 0, s,
		0, 1, 0,
		-s, 0, c,
	}
}

// RotZ returns a 3×3 rotation matrix around the Z axis.
func RotZ(a float32) Mat3 {
	s, c := math32.Sincos(a)
	return Mat3{
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	}
}

// 2D homogeneous helpers. They share Mat3 but are not rotations in 3D.

// Mat3Translate2D returns
//
//	1 0 x
//	0 1 y
//	0 0 1
func Mat3Translate2D(x, y float32) Mat3 {
	m := Mat3Identity()
	m[2] = x
	m[5] = y
	return m
}

func Mat3Scale2D(x, y float32) Mat3 {
	return Mat3Diag(x, y, 1)
}

func Mat3RotRad2D(angle float32) Mat3 {
	s, c := math32.Sincos(angle)
	return Mat3{
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	}
}

func Mat3RotDeg2D(angle float32) Mat3 {
	return Mat3RotRad2D(Deg2Rad(angle))
}
