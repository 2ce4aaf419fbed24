package geom

import "github.com/go-gl/mathgl/mgl32"

// Mesh is an indexed triangle list in local space.
type Mesh struct {
	Positions []mgl32.Vec3
	Indices   []uint16
}

// NewRectangleMesh returns a w by h quad centred on the origin, wound
// counter-clockwise.
func NewRectangleMesh(w, h float32) *Mesh {
	hw, hh := w/2, h/2
	return &Mesh{
		Positions: []mgl32.Vec3{
			{hw, hh, 0},
			{-hw, hh, 0},
			{-hw, -hh, 0},
			{hw, -hh, 0},
		},
		Indices: []uint16{0, 1, 2, 0, 2, 3},
	}
}

// ComputeAABB bounds the mesh vertices. It reports false for a mesh
// without vertices.
func (m *Mesh) ComputeAABB() (AABB, bool) {
	if m == nil || len(m.Positions) == 0 {
		return AABB{}, false
	}
	out := AABB{Min: m.Positions[0], Max: m.Positions[0]}
	for _, p := range m.Positions[1:] {
		for axis := range 3 {
			out.Min[axis] = min(out.Min[axis], p[axis])
			out.Max[axis] = max(out.Max[axis], p[axis])
		}
	}
	return out, true
}

// WorldRect is the mesh's bounding rectangle after applying t.
func (m *Mesh) WorldRect(t Transform) (Rect, bool) {
	local, ok := m.ComputeAABB()
	if !ok {
		return Rect{}, false
	}
	return local.Transform(t.Matrix()).Rect(), true
}
