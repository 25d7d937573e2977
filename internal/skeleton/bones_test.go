package skeleton

import (
	"testing"

	"orientation-kit/internal/mathutil"
	"orientation-kit/internal/mesh"
	"orientation-kit/internal/transform"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func near(a, b mathutil.Vec3) bool {
	return mathutil.Vec3Equals(a, b, 1e-4)
}

func TestBuildWorldMatricesChains(t *testing.T) {
	joints := []Joint{
		{Name: "root", Parent: -1, Offset: mathutil.Vec3{0, 1, 0}},
		{Name: "arm", Parent: 0, Offset: mathutil.Vec3{2, 0, 0}, Rest: mathutil.Rotator{Yaw: 90}},
		{Name: "hand", Parent: 1, Offset: mathutil.Vec3{1, 0, 0}},
	}

	worlds := BuildWorldMatrices(joints, nil, 0)
	require.Len(t, worlds, 3)

	origin := mathutil.Vec3{}
	assert.True(t, near(mathutil.Vec3{0, 1, 0}, mathutil.MulPoint(worlds[0], origin)))
	assert.True(t, near(mathutil.Vec3{2, 1, 0}, mathutil.MulPoint(worlds[1], origin)))

	// The hand offset is turned by the arm's rest rotation.
	armRot := mathutil.Rotator{Yaw: 90}.Matrix()
	want := mathutil.Vec3{2, 1, 0}.Add(armRot.MulVec3(mathutil.Vec3{1, 0, 0}))
	got := mathutil.MulPoint(worlds[2], origin)
	assert.True(t, near(want, got), "want %v, got %v", want, got)
}

func TestBuildWorldMatricesRoot(t *testing.T) {
	joints := []Joint{{Name: "root", Parent: -1}}
	root := transform.New()
	root.SetPosition(mathutil.Vec3{5, 0, 0})
	root.SetUniformScale(2)

	worlds := BuildWorldMatrices(joints, root, 0)
	assert.True(t, near(mathutil.Vec3{7, 0, 0}, mathutil.MulPoint(worlds[0], mathutil.Vec3{1, 0, 0})))
}

func TestJointSpin(t *testing.T) {
	j := Joint{Parent: -1, Spin: &Spin{Axis: mathutil.AxisY, Degrees: 90}}

	assert.Equal(t, mathutil.QuatIdentity, j.Local(0).Rotation())

	q := j.Local(1).Rotation()
	want := mathutil.QuatFromAxisAngle(mathutil.AxisY, mathutil.HalfPi)
	assert.True(t, want.Equals(q, 1e-6), "got %v", q)

	zero := Joint{Parent: -1, Spin: &Spin{Degrees: 90}}
	assert.Equal(t, mathutil.QuatIdentity, zero.Local(1).Rotation())
}

func TestApplyTransforms(t *testing.T) {
	joints := []Joint{
		{Parent: -1},
		{Parent: 0, Offset: mathutil.Vec3{0, 10, 0}},
	}
	worlds := BuildWorldMatrices(joints, nil, 0)

	a := mesh.Box("a", mathutil.Vec3{1, 1, 1}, mesh.ColorX)
	a.Bind(1)
	unbound := mesh.Box("b", mathutil.Vec3{1, 1, 1}, mesh.ColorY)

	posed := ApplyTransforms([]mesh.Mesh{a, unbound}, worlds)
	require.Len(t, posed, 2)
	assert.Equal(t, mathutil.Vec3{-1, 9, -1}, posed[0].Verts[0])
	assert.Equal(t, mathutil.Vec3{-1, -1, -1}, a.Verts[0])
	assert.Equal(t, unbound.Verts, posed[1].Verts)
}
