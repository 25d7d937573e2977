package pose

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"orientation-kit/internal/mathutil"
	"orientation-kit/internal/skeleton"

	"sigs.k8s.io/yaml"
)

// poseFile matches the YAML/JSON schema of a pose file.
type poseFile struct {
	FPS       *float64                   `json:"fps"`
	Duration  *float64                   `json:"duration"`
	Presets   map[string]json.RawMessage `json:"presets"`
	Joints    []jointDef                 `json:"joints"`
	Keyframes []json.RawMessage          `json:"keyframes"`
}

type jointDef struct {
	Name   string     `json:"name"`
	Parent string     `json:"parent"`
	Offset [3]float32 `json:"offset"`
	Rest   rotatorDef `json:"rest"`
	Spin   *axisAngle `json:"spin"`
}

type rotatorDef struct {
	Pitch float32 `json:"pitch"`
	Yaw   float32 `json:"yaw"`
	Roll  float32 `json:"roll"`
}

type axisAngle struct {
	Axis    [3]float32 `json:"axis"`
	Degrees float32    `json:"degrees"`
}

// keyDef is one keyframe entry. Pointer fields distinguish "unset" from
// zero so presets can be merged field by field.
type keyDef struct {
	Preset    *string     `json:"preset"`
	Time      *float64    `json:"time"`
	Rotator   *rotatorDef `json:"rotator"`
	Quat      *[4]float32 `json:"quat"` // w, x, y, z
	AxisAngle *axisAngle  `json:"axis_angle"`
	Position  *[3]float32 `json:"position"`
	Scale     *[3]float32 `json:"scale"`
}

func (k keyDef) hasRotation() bool {
	return k.Rotator != nil || k.Quat != nil || k.AxisAngle != nil
}

// Load reads and parses a pose file.
func Load(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("pose: read %s: %w", path, err)
	}
	doc, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes a YAML or JSON pose document. Unknown fields are errors.
func Parse(data []byte) (*Document, error) {
	var file poseFile
	if err := yaml.UnmarshalStrict(data, &file); err != nil {
		return nil, fmt.Errorf("pose: decode: %w", err)
	}

	fps := DefaultFPS
	if file.FPS != nil {
		fps = *file.FPS
	}
	if fps <= 0 {
		return nil, fmt.Errorf("pose: fps must be positive, got %v", fps)
	}

	joints, err := buildJoints(file.Joints)
	if err != nil {
		return nil, err
	}

	keys := make([]Key, 0, len(file.Keyframes))
	for i, raw := range file.Keyframes {
		k, err := resolveKey(raw, file.Presets)
		if err != nil {
			return nil, fmt.Errorf("pose: keyframe %d: %w", i, err)
		}
		keys = append(keys, k)
	}
	sort.SliceStable(keys, func(i, j int) bool { return keys[i].Time < keys[j].Time })
	for i := 1; i < len(keys); i++ {
		if keys[i].Time == keys[i-1].Time {
			return nil, fmt.Errorf("pose: two keyframes at time %v", keys[i].Time)
		}
	}

	track := Track{FPS: fps, Keys: keys}
	switch {
	case file.Duration != nil:
		track.Duration = *file.Duration
	case len(keys) > 0:
		track.Duration = keys[len(keys)-1].Time
	}
	if track.Duration < 0 {
		return nil, fmt.Errorf("pose: negative duration %v", track.Duration)
	}

	return &Document{Track: track, Joints: joints}, nil
}

func buildJoints(defs []jointDef) ([]skeleton.Joint, error) {
	byName := make(map[string]int, len(defs))
	joints := make([]skeleton.Joint, 0, len(defs))
	for i, d := range defs {
		if d.Name == "" {
			return nil, fmt.Errorf("pose: joint %d has no name", i)
		}
		if _, dup := byName[d.Name]; dup {
			return nil, fmt.Errorf("pose: duplicate joint %q", d.Name)
		}

		parent := -1
		if d.Parent != "" {
			p, ok := byName[d.Parent]
			if !ok {
				return nil, fmt.Errorf("pose: joint %q: parent %q must be declared before it", d.Name, d.Parent)
			}
			parent = p
		}

		j := skeleton.Joint{
			Name:   d.Name,
			Parent: parent,
			Offset: mathutil.Vec3(d.Offset),
			Rest:   mathutil.NewRotator(d.Rest.Pitch, d.Rest.Yaw, d.Rest.Roll),
		}
		if d.Spin != nil {
			j.Spin = &skeleton.Spin{Axis: mathutil.Vec3(d.Spin.Axis), Degrees: d.Spin.Degrees}
		}
		byName[d.Name] = i
		joints = append(joints, j)
	}
	return joints, nil
}

// resolveKey decodes a keyframe and merges it over its preset, if any.
func resolveKey(raw json.RawMessage, presets map[string]json.RawMessage) (Key, error) {
	own, err := decodeKey(raw)
	if err != nil {
		return Key{}, err
	}

	merged := own
	if own.Preset != nil {
		presetRaw, ok := presets[*own.Preset]
		if !ok {
			return Key{}, fmt.Errorf("preset %q not found", *own.Preset)
		}
		base, err := decodeKey(presetRaw)
		if err != nil {
			return Key{}, fmt.Errorf("preset %q: %w", *own.Preset, err)
		}
		if base.Preset != nil || base.Time != nil {
			return Key{}, fmt.Errorf("preset %q may not set preset or time", *own.Preset)
		}
		merged = base
		mergeKeyFields(&merged, own)
	}
	return makeKey(merged)
}

func decodeKey(raw json.RawMessage) (keyDef, error) {
	var k keyDef
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&k); err != nil {
		return keyDef{}, err
	}
	return k, nil
}

// mergeKeyFields overrides the non-nil fields of dst with those of src.
// A rotation in src replaces any rotation form the preset had.
func mergeKeyFields(dst *keyDef, src keyDef) {
	dst.Time = src.Time
	if src.hasRotation() {
		dst.Rotator, dst.Quat, dst.AxisAngle = src.Rotator, src.Quat, src.AxisAngle
	}
	if src.Position != nil {
		dst.Position = src.Position
	}
	if src.Scale != nil {
		dst.Scale = src.Scale
	}
}

func makeKey(d keyDef) (Key, error) {
	if d.Time == nil {
		return Key{}, fmt.Errorf("missing time")
	}
	if *d.Time < 0 {
		return Key{}, fmt.Errorf("negative time %v", *d.Time)
	}

	k := Key{
		Time:     *d.Time,
		Rotation: mathutil.IdentityQuat(),
		Scale:    mathutil.Vec3{1, 1, 1},
	}
	if d.Position != nil {
		k.Position = mathutil.Vec3(*d.Position)
	}
	if d.Scale != nil {
		k.Scale = mathutil.Vec3(*d.Scale)
	}

	forms := 0
	if d.Rotator != nil {
		forms++
		r := mathutil.NewRotator(d.Rotator.Pitch, d.Rotator.Yaw, d.Rotator.Roll)
		k.Rotator = &r
		k.Rotation = r.Quaternion()
	}
	if d.Quat != nil {
		forms++
		q := mathutil.NewQuatWXYZ(d.Quat[0], d.Quat[1], d.Quat[2], d.Quat[3])
		if !q.IsNormalized() {
			return Key{}, fmt.Errorf("quat %v: %w", *d.Quat, mathutil.ErrNotNormalized)
		}
		q.Normalize(mathutil.SmallNumber)
		k.Rotation = q
	}
	if d.AxisAngle != nil {
		forms++
		axis := mathutil.SafeNormalize(mathutil.Vec3(d.AxisAngle.Axis), mathutil.SmallNumber)
		if axis == (mathutil.Vec3{}) {
			return Key{}, fmt.Errorf("axis_angle: zero axis")
		}
		k.Rotation = mathutil.QuatFromAxisAngle(axis, mathutil.Deg2Rad(d.AxisAngle.Degrees))
	}
	if forms > 1 {
		return Key{}, fmt.Errorf("only one of rotator, quat and axis_angle may be set")
	}
	return k, nil
}
