package geom

import "github.com/go-gl/mathgl/mgl32"

// Transform places an entity in the world. Rotation is about the z axis in
// radians; the game never rotates anything but the bird sprite.
type Transform struct {
	Translation mgl32.Vec3
	Rotation    float32
	Scale       mgl32.Vec3
}

func FromXYZ(x, y, z float32) Transform {
	return Transform{
		Translation: mgl32.Vec3{x, y, z},
		Scale:       mgl32.Vec3{1, 1, 1},
	}
}

// Matrix composes translation, rotation and scale, applied to a point in
// the reverse order.
func (t Transform) Matrix() mgl32.Mat4 {
	return mgl32.Translate3D(t.Translation[0], t.Translation[1], t.Translation[2]).
		Mul4(mgl32.HomogRotate3DZ(t.Rotation)).
		Mul4(mgl32.Scale3D(t.Scale[0], t.Scale[1], t.Scale[2]))
}

func (t Transform) Translation2D() mgl32.Vec2 {
	return t.Translation.Vec2()
}
