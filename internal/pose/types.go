package pose

import (
	"math"
	"sort"

	"orientation-kit/internal/mathutil"
	"orientation-kit/internal/skeleton"
	"orientation-kit/internal/transform"
)

// DefaultFPS is the frame rate used when a pose file omits fps.
const DefaultFPS = 24.0

// Key is one keyframe of the root track.
type Key struct {
	Time     float64
	Rotation mathutil.Quat
	Rotator  *mathutil.Rotator // set when the key was authored as Euler angles
	Position mathutil.Vec3
	Scale    mathutil.Vec3
}

// Track is a time-sorted list of keys sampled at a fixed frame rate.
type Track struct {
	FPS      float64
	Duration float64
	Keys     []Key
}

// Pose is a sampled root state.
type Pose struct {
	Rotation mathutil.Quat
	Rotator  *mathutil.Rotator // authored angles, only when sampled on such a key
	Position mathutil.Vec3
	Scale    mathutil.Vec3
}

// Document is a parsed pose file.
type Document struct {
	Track  Track
	Joints []skeleton.Joint
}

// Identity is the pose of an empty track.
func Identity() Pose {
	return Pose{
		Rotation: mathutil.IdentityQuat(),
		Scale:    mathutil.Vec3{1, 1, 1},
	}
}

// FrameCount returns how many frames cover [0, Duration] at FPS, including
// both ends when Duration is a whole number of frames.
func (tr *Track) FrameCount() int {
	if tr.FPS <= 0 || tr.Duration < 0 {
		return 0
	}
	return int(math.Floor(tr.Duration*tr.FPS+1e-9)) + 1
}

// FrameTime returns the time of frame i in seconds.
func (tr *Track) FrameTime(i int) float64 {
	if tr.FPS <= 0 {
		return 0
	}
	return float64(i) / tr.FPS
}

// Sample returns the pose at time t. Times outside the keyed range clamp
// to the first or last key. Rotations are slerped, position and scale are
// interpolated linearly.
func (tr *Track) Sample(t float64) Pose {
	keys := tr.Keys
	if len(keys) == 0 {
		return Identity()
	}

	i := sort.Search(len(keys), func(i int) bool { return keys[i].Time >= t })
	switch {
	case i == 0:
		return keys[0].pose()
	case i == len(keys):
		return keys[len(keys)-1].pose()
	case keys[i].Time == t:
		return keys[i].pose()
	}

	a, b := keys[i-1], keys[i]
	alpha := float32((t - a.Time) / (b.Time - a.Time))
	return Pose{
		Rotation: mathutil.Slerp(a.Rotation, b.Rotation, alpha),
		Position: lerpVec(a.Position, b.Position, alpha),
		Scale:    lerpVec(a.Scale, b.Scale, alpha),
	}
}

func (k Key) pose() Pose {
	p := Pose{Rotation: k.Rotation, Position: k.Position, Scale: k.Scale}
	if k.Rotator != nil {
		r := *k.Rotator
		p.Rotator = &r
	}
	return p
}

// Apply writes the pose into tr as a single change, so observers are
// notified once.
func (p Pose) Apply(tr *transform.Transform) {
	next := transform.New()
	next.SetPosition(p.Position)
	next.SetScale(p.Scale)
	if p.Rotator != nil {
		next.SetRotator(*p.Rotator)
	} else {
		next.SetRotation(p.Rotation)
	}
	tr.Assign(next)
}

func lerpVec(a, b mathutil.Vec3, t float32) mathutil.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}
