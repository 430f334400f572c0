package scene

import "github.com/go-gl/mathgl/mgl32"

// rhombicFace is one quarter of the solid: four triangles fanning from the
// (0, 0, 1) apex to the edges of the z = 0.5 square.
var rhombicFace = [12]mgl32.Vec3{
	// top
	{0.5, 0.5, 0.5}, {-0.5, 0.5, 0.5}, {0, 0, 1},
	// bottom
	{0.5, -0.5, 0.5}, {0, 0, 1}, {-0.5, -0.5, 0.5},
	// left
	{-0.5, 0.5, 0.5}, {-0.5, -0.5, 0.5}, {0, 0, 1},
	// right
	{0.5, 0.5, 0.5}, {0, 0, 1}, {0.5, -0.5, 0.5},
}

// RhombicDodecahedron builds the unit rhombic dodecahedron as 24 triangles
// (72 vertices) with flat normals.
func RhombicDodecahedron() *Mesh {
	rotations := []mgl32.Quat{
		mgl32.QuatRotate(0, axisY),
		mgl32.QuatRotate(mgl32.DegToRad(90), axisY),
		mgl32.QuatRotate(mgl32.DegToRad(-90), axisY),
		mgl32.QuatRotate(mgl32.DegToRad(-180), axisY),
		mgl32.QuatRotate(mgl32.DegToRad(90), axisX),
		mgl32.QuatRotate(mgl32.DegToRad(-90), axisX),
	}

	positions := make([]mgl32.Vec3, 0, len(rotations)*len(rhombicFace))
	for _, r := range rotations {
		for _, v := range rhombicFace {
			positions = append(positions, r.Rotate(v))
		}
	}

	return &Mesh{
		Label:     "rhombic dodecahedron",
		Positions: positions,
		Normals:   flatNormals(positions),
	}
}

// Plane builds a size x size square in the XZ plane facing +Y.
func Plane(size float32) *Mesh {
	h := size / 2
	positions := []mgl32.Vec3{
		{-h, 0, -h}, {-h, 0, h}, {h, 0, h},
		{h, 0, h}, {h, 0, -h}, {-h, 0, -h},
	}
	return &Mesh{
		Label:     "plane",
		Positions: positions,
		Normals:   flatNormals(positions),
	}
}

// flatNormals gives each triangle's three vertices the face normal.
func flatNormals(positions []mgl32.Vec3) []mgl32.Vec3 {
	normals := make([]mgl32.Vec3, len(positions))
	for i := 0; i+2 < len(positions); i += 3 {
		a, b, c := positions[i], positions[i+1], positions[i+2]
		n := b.Sub(a).Cross(c.Sub(a))
		if n.Len() > 0 {
			n = n.Normalize()
		}
		normals[i], normals[i+1], normals[i+2] = n, n, n
	}
	return normals
}

// Edges returns each triangle's edges as position pairs, shared edges once.
func (m *Mesh) Edges() [][2]mgl32.Vec3 {
	type key [6]float32
	seen := make(map[key]bool)
	var edges [][2]mgl32.Vec3

	add := func(a, b mgl32.Vec3) {
		k := key{a[0], a[1], a[2], b[0], b[1], b[2]}
		rk := key{b[0], b[1], b[2], a[0], a[1], a[2]}
		if seen[k] || seen[rk] {
			return
		}
		seen[k] = true
		edges = append(edges, [2]mgl32.Vec3{a, b})
	}
	for i := 0; i+2 < len(m.Positions); i += 3 {
		a, b, c := m.Positions[i], m.Positions[i+1], m.Positions[i+2]
		add(a, b)
		add(b, c)
		add(c, a)
	}
	return edges
}
