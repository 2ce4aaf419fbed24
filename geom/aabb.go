package geom

import "github.com/go-gl/mathgl/mgl32"

type AABB struct {
	Min, Max mgl32.Vec3
}

// Corners lists the eight box corners, x varying fastest.
func (b AABB) Corners() [8]mgl32.Vec3 {
	var out [8]mgl32.Vec3
	for i := range out {
		c := b.Min
		if i&1 != 0 {
			c[0] = b.Max[0]
		}
		if i&2 != 0 {
			c[1] = b.Max[1]
		}
		if i&4 != 0 {
			c[2] = b.Max[2]
		}
		out[i] = c
	}
	return out
}

// Transform maps the box through m and returns the axis-aligned box that
// encloses the result. Rotation therefore grows the box.
func (b AABB) Transform(m mgl32.Mat4) AABB {
	corners := b.Corners()
	first := m.Mul4x1(corners[0].Vec4(1)).Vec3()
	out := AABB{Min: first, Max: first}
	for _, c := range corners[1:] {
		p := m.Mul4x1(c.Vec4(1)).Vec3()
		for axis := range 3 {
			out.Min[axis] = min(out.Min[axis], p[axis])
			out.Max[axis] = max(out.Max[axis], p[axis])
		}
	}
	return out
}

// Rect drops the z extent.
func (b AABB) Rect() Rect {
	return Rect{Min: b.Min.Vec2(), Max: b.Max.Vec2()}
}
