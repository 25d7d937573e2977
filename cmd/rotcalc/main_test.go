package main

import (
	"bytes"
	"strings"
	"testing"

	"orientation-kit/internal/mathutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCommand(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEuler(t *testing.T) {
	out, err := execute(t, "euler", "0", "90", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "rotator: pitch=0.000 yaw=90.000 roll=0.000")
	assert.Contains(t, out, "forward: (0.000, 1.000, 0.000)")
	assert.Contains(t, out, "angle: 90.000")
}

func TestQuat(t *testing.T) {
	_, err := execute(t, "quat", "2", "0", "0", "0")
	assert.ErrorIs(t, err, mathutil.ErrNotNormalized)

	out, err := execute(t, "quat", "--normalize", "2", "0", "0", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "rotator: pitch=0.000 yaw=0.000 roll=0.000")
	assert.Contains(t, out, "quat:    w=1.000 x=0.000 y=0.000 z=0.000")
	assert.Contains(t, out, "forward: (1.000, 0.000, 0.000)")
}

func TestAxis(t *testing.T) {
	out, err := execute(t, "axis", "0", "3", "0", "90")
	require.NoError(t, err)
	assert.Contains(t, out, "forward: (0.000, 1.000, 0.000)")

	_, err = execute(t, "axis", "0", "0", "0", "90")
	assert.ErrorContains(t, err, "axis must not be zero")
}

func TestBetween(t *testing.T) {
	out, err := execute(t, "between", "1", "0", "0", "0", "1", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "forward: (0.000, 1.000, 0.000)")

	out, err = execute(t, "between", "1", "0", "0", "-1", "0", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "forward: (-1.000, 0.000, 0.000)")

	_, err = execute(t, "between", "--strict", "1", "0", "0", "-1", "0", "0")
	assert.ErrorIs(t, err, mathutil.ErrAntiParallel)
}

func TestCombine(t *testing.T) {
	out, err := execute(t, "combine", "30", "0", "0", "0", "60", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "yaw=63.435")
	assert.Contains(t, out, "roll=26.565")
}

func TestSlerp(t *testing.T) {
	out, err := execute(t, "slerp", "0", "0", "0", "0", "90", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "rotator: pitch=0.000 yaw=45.000 roll=0.000")

	out, err = execute(t, "slerp", "0", "0", "0", "0", "90", "0", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "yaw=90.000")

	out, err = execute(t, "slerp", "--steps", "2", "0", "0", "0", "0", "90", "0")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "0.000"))
	assert.Contains(t, lines[1], "yaw=45.000")
	assert.True(t, strings.HasPrefix(lines[2], "1.000"))
}

func TestLeadingNegativeNeedsDashes(t *testing.T) {
	out, err := execute(t, "euler", "--", "-20", "35", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "rotator: pitch=-20.000 yaw=35.000 roll=0.000")

	_, err = execute(t, "euler", "-20", "35", "0")
	assert.Error(t, err)
}

func TestBadArguments(t *testing.T) {
	_, err := execute(t, "euler", "0", "ninety", "0")
	assert.ErrorContains(t, err, "argument 2")

	_, err = execute(t, "euler", "0", "90")
	assert.Error(t, err)
}
