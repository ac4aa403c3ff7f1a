package grib

import "math"

// Magnitude is the scalar speed of a (u, v) vector.
func Magnitude(u, v float64) float64 {
	return math.Sqrt(u*u + v*v)
}

// Bearing converts a (u, v) vector to a meteorological bearing: degrees
// clockwise from north, naming the direction the flow comes FROM. The
// vector's compass heading is atan2(u, v); adding 180 and reducing mod
// 360 flips "heading to" into the "coming from" form downstream
// consumers expect. An eastward flow (u=1, v=0) therefore reports 270:
// it comes from the west. Result is always in [0, 360).
func Bearing(u, v float64) float64 {
	deg := math.Atan2(u, v) * 180 / math.Pi
	return math.Mod(deg+180, 360)
}
