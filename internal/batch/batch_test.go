package batch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"

	"orientation-kit/internal/mathutil"
	"orientation-kit/internal/mesh"
	"orientation-kit/internal/pose"
	"orientation-kit/internal/raster"
	"orientation-kit/internal/skeleton"

	"github.com/ftrvxmtrx/tga"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func turnTrack() pose.Track {
	yaw90 := mathutil.Rotator{Yaw: 90}
	return pose.Track{
		FPS:      2,
		Duration: 1,
		Keys: []pose.Key{
			{Time: 0, Rotation: mathutil.IdentityQuat(), Scale: mathutil.Vec3{1, 1, 1}},
			{Time: 1, Rotation: yaw90.Quaternion(), Rotator: &yaw90, Scale: mathutil.Vec3{1, 1, 1}},
		},
	}
}

func testConfig(t *testing.T, format string) Config {
	joints, scene := BuildScene(nil, 1)
	return Config{
		OutputDir: t.TempDir(),
		Format:    format,
		Track:     turnTrack(),
		Joints:    joints,
		Scene:     scene,
		Camera:    mathutil.Rotator{Pitch: -20, Yaw: 35},
		Render:    raster.Options{Size: 16, Supersample: 2},
		Workers:   2,
	}
}

func TestBuildScene(t *testing.T) {
	joints, scene := BuildScene(nil, 1)
	require.Len(t, joints, 1)
	assert.Equal(t, -1, joints[0].Parent)
	assert.Len(t, scene, len(mesh.Gizmo(1)))
	for _, m := range scene {
		require.Len(t, m.Nodes, len(m.Verts))
		assert.Equal(t, 0, m.Nodes[0])
	}

	in := []skeleton.Joint{{Name: "a", Parent: -1}, {Name: "b", Parent: 0}, {Name: "c", Parent: 1}}
	joints, scene = BuildScene(in, 2)
	assert.Equal(t, in, joints)
	require.Len(t, scene, len(mesh.Gizmo(2))+2)
	last := scene[len(scene)-1]
	assert.Equal(t, "c", last.Name)
	assert.Equal(t, 2, last.Nodes[0])
}

func TestRunTGA(t *testing.T) {
	cfg := testConfig(t, FormatTGA)
	results := Run(context.Background(), cfg)
	require.Len(t, results, 3)

	for i, r := range results {
		require.NoError(t, r.Err, "frame %d", i)
		assert.Equal(t, i, r.Frame)

		f, err := os.Open(filepath.Join(cfg.OutputDir, r.Image))
		require.NoError(t, err)
		img, err := tga.Decode(f)
		f.Close()
		require.NoError(t, err)
		assert.Equal(t, image.Rect(0, 0, 16, 16), img.Bounds())
	}

	assert.Equal(t, "frame_0001.tga", results[1].Image)
	assert.Equal(t, 0.5, results[1].Time)
	assert.Equal(t, mathutil.Rotator{Yaw: 90}, results[2].Rotator, "authored angles reach the result")

	want := mathutil.Rotator{Yaw: 45}.Quaternion().ForwardVector()
	assert.True(t, mathutil.Vec3Equals(want, results[1].Forward, 1e-4), "forward %v", results[1].Forward)
}

func TestRunWebP(t *testing.T) {
	cfg := testConfig(t, FormatWebP)
	cfg.Track.Duration = 0
	results := Run(context.Background(), cfg)
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)

	raw, err := os.ReadFile(filepath.Join(cfg.OutputDir, "frame_0000.webp"))
	require.NoError(t, err)
	require.Greater(t, len(raw), 12)
	assert.Equal(t, "RIFF", string(raw[:4]))
	assert.Equal(t, "WEBP", string(raw[8:12]))
}

func TestRunCancelled(t *testing.T) {
	cfg := testConfig(t, FormatTGA)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := Run(ctx, cfg)
	require.Len(t, results, 3)
	for i, r := range results {
		assert.Equal(t, i, r.Frame)
		if r.Err != nil {
			assert.ErrorIs(t, r.Err, context.Canceled)
			continue
		}
		assert.FileExists(t, filepath.Join(cfg.OutputDir, r.Image))
	}
}

func TestRunLogsFailedFrames(t *testing.T) {
	cfg := testConfig(t, FormatTGA)
	blocker := filepath.Join(cfg.OutputDir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))
	cfg.OutputDir = filepath.Join(blocker, "sub")

	logger, hook := test.NewNullLogger()
	cfg.Log = logger

	results := Run(context.Background(), cfg)
	warned := 0
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			warned++
			assert.Equal(t, "frame failed", e.Message)
		}
	}
	assert.Equal(t, len(results), warned)
	for _, r := range results {
		assert.ErrorContains(t, r.Err, "batch: create dir")
	}
	assert.Empty(t, Manifest(results))
}

func TestManifest(t *testing.T) {
	results := []Result{
		{Frame: 0, Time: 0, Image: "frame_0000.webp", Rotation: mathutil.IdentityQuat(), Forward: mathutil.Vec3{2, 0, 0}},
		{Frame: 1, Err: errors.New("boom")},
		{Frame: 2, Time: 1, Image: "frame_0002.webp", Rotator: mathutil.Rotator{Yaw: 90}, Rotation: mathutil.Rotator{Yaw: 90}.Quaternion()},
	}

	path := filepath.Join(t.TempDir(), "manifest.json")
	require.NoError(t, WriteManifest(path, results))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var got []ManifestEntry
	require.NoError(t, json.Unmarshal(raw, &got))

	require.Len(t, got, 2)
	assert.Equal(t, 0, got[0].Frame)
	assert.Equal(t, [3]float32{1, 0, 0}, got[0].Forward)
	assert.Equal(t, "w=1 x=0 y=0 z=0", got[0].Quat)
	assert.Equal(t, 2, got[1].Frame)
	assert.Equal(t, "p=0 y=90 r=0", got[1].Rotator)
	assert.Equal(t, "frame_0002.webp", got[1].Image)
}

func TestEncodeUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 1, 1)), "bmp")
	assert.ErrorContains(t, err, `unknown format "bmp"`)
	assert.Zero(t, buf.Len())
}
