// Package geom holds the small amount of geometry the game needs: 2D
// rectangles for collision, 3D bounding boxes for meshes, and transforms.
package geom

import "github.com/go-gl/mathgl/mgl32"

// Rect is an axis-aligned rectangle. A rect whose Max is not strictly
// greater than Min on both axes is empty.
type Rect struct {
	Min, Max mgl32.Vec2
}

// RectFromCorners builds a rect from any two opposite corners.
func RectFromCorners(a, b mgl32.Vec2) Rect {
	return Rect{
		Min: mgl32.Vec2{min(a[0], b[0]), min(a[1], b[1])},
		Max: mgl32.Vec2{max(a[0], b[0]), max(a[1], b[1])},
	}
}

func RectFromCenterSize(center, size mgl32.Vec2) Rect {
	half := size.Mul(0.5)
	return Rect{Min: center.Sub(half), Max: center.Add(half)}
}

func (r Rect) Width() float32  { return r.Max[0] - r.Min[0] }
func (r Rect) Height() float32 { return r.Max[1] - r.Min[1] }

func (r Rect) Size() mgl32.Vec2 {
	return mgl32.Vec2{r.Width(), r.Height()}
}

func (r Rect) Center() mgl32.Vec2 {
	return r.Min.Add(r.Max).Mul(0.5)
}

func (r Rect) Translate(offset mgl32.Vec2) Rect {
	return Rect{Min: r.Min.Add(offset), Max: r.Max.Add(offset)}
}

func (r Rect) IsEmpty() bool {
	return r.Max[0] <= r.Min[0] || r.Max[1] <= r.Min[1]
}

// Intersect returns the overlapping region. Disjoint rects yield a
// degenerate rect of zero width or height rather than an inverted one.
func (r Rect) Intersect(other Rect) Rect {
	out := Rect{
		Min: mgl32.Vec2{max(r.Min[0], other.Min[0]), max(r.Min[1], other.Min[1])},
		Max: mgl32.Vec2{min(r.Max[0], other.Max[0]), min(r.Max[1], other.Max[1])},
	}
	out.Max[0] = max(out.Max[0], out.Min[0])
	out.Max[1] = max(out.Max[1], out.Min[1])
	return out
}

// Overlaps reports whether the rects share any area. Touching edges do not
// count.
func (r Rect) Overlaps(other Rect) bool {
	return !r.Intersect(other).IsEmpty()
}

func (r Rect) Contains(p mgl32.Vec2) bool {
	return p[0] >= r.Min[0] && p[0] <= r.Max[0] && p[1] >= r.Min[1] && p[1] <= r.Max[1]
}
