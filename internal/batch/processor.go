package batch

import (
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"orientation-kit/internal/mathutil"
	"orientation-kit/internal/mesh"
	"orientation-kit/internal/pose"
	"orientation-kit/internal/postprocess"
	"orientation-kit/internal/raster"
	"orientation-kit/internal/skeleton"
	"orientation-kit/internal/texture"
	"orientation-kit/internal/transform"
	"orientation-kit/internal/viewmatrix"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"github.com/sirupsen/logrus"
)

// Output formats understood by Run.
const (
	FormatWebP = "webp"
	FormatTGA  = "tga"
)

var progressInterval = 2 * time.Second

// Config holds all shared resources for a batch run.
type Config struct {
	OutputDir   string
	Format      string
	Track       pose.Track
	Joints      []skeleton.Joint
	Scene       []mesh.Mesh // rest-pose meshes bound to joints
	Camera      mathutil.Rotator
	Render      raster.Options
	TexResolver texture.Resolver
	Workers     int
	Log         logrus.FieldLogger
}

// Result holds the outcome of rendering one frame.
type Result struct {
	Frame    int
	Time     float64
	Image    string // path relative to OutputDir
	Rotator  mathutil.Rotator
	Rotation mathutil.Quat
	Forward  mathutil.Vec3
	Err      error
}

// BuildScene returns the default scene for joints: an axis gizmo on the
// first joint and a small cube on each other joint. Without joints the
// gizmo hangs on a single implicit root.
func BuildScene(joints []skeleton.Joint, gizmoSize float32) ([]skeleton.Joint, []mesh.Mesh) {
	if len(joints) == 0 {
		joints = []skeleton.Joint{{Name: "root", Parent: -1}}
	}
	var scene []mesh.Mesh
	for _, m := range mesh.Gizmo(gizmoSize) {
		m.Bind(0)
		scene = append(scene, m)
	}
	half := gizmoSize * 0.08
	for i := 1; i < len(joints); i++ {
		b := mesh.Box(joints[i].Name, mathutil.Vec3{half, half, half}, mesh.ColorCenter)
		b.Bind(i)
		scene = append(scene, b)
	}
	return joints, scene
}

// Run renders every frame of the track using a worker pool. Frames not
// started before ctx is cancelled report ctx.Err().
func Run(ctx context.Context, cfg Config) []Result {
	log := cfg.Log
	if log == nil {
		l := logrus.New()
		l.Out = io.Discard
		log = l
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	if cfg.Render.Extent <= 0 {
		cfg.Render.Extent = stableExtent(cfg)
	}
	view := viewmatrix.CameraView(cfg.Camera)

	total := cfg.Track.FrameCount()
	results := make([]Result, total)
	var processed atomic.Int64
	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(progressInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					rate := float64(p) / time.Since(start).Seconds()
					log.WithFields(logrus.Fields{
						"done":  p,
						"total": total,
						"rate":  fmt.Sprintf("%.1f/s", rate),
					}).Info("rendering")
				}
			}
		}
	}()

	frames := make(chan int, workers*2)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range frames {
				results[i] = renderFrame(cfg, view, i)
				if results[i].Err != nil {
					log.WithError(results[i].Err).WithField("frame", i).Warn("frame failed")
				}
				processed.Add(1)
			}
		}()
	}

	next := 0
send:
	for ; next < total; next++ {
		select {
		case frames <- next:
		case <-ctx.Done():
			break send
		}
	}
	close(frames)
	wg.Wait()
	close(done)

	for i := next; i < total; i++ {
		results[i] = Result{Frame: i, Time: cfg.Track.FrameTime(i), Err: ctx.Err()}
	}
	return results
}

// posed samples the track at t into a fresh root transform and moves the
// scene meshes onto their joints.
func posed(cfg Config, t float64) (*transform.Transform, []mesh.Mesh) {
	root := transform.New()
	cfg.Track.Sample(t).Apply(root)
	worlds := skeleton.BuildWorldMatrices(cfg.Joints, root, float32(t))
	return root, skeleton.ApplyTransforms(cfg.Scene, worlds)
}

// stableExtent is the framing that holds the scene in every frame, so the
// camera doesn't zoom as the model turns.
func stableExtent(cfg Config) float64 {
	var r float32
	n := cfg.Track.FrameCount()
	for i := 0; i < n; i++ {
		_, meshes := posed(cfg, cfg.Track.FrameTime(i))
		for _, m := range meshes {
			for _, v := range m.Verts {
				if l := v.Len(); l > r {
					r = l
				}
			}
		}
	}
	return float64(2 * r)
}

func renderFrame(cfg Config, view mathutil.Mat3, i int) Result {
	t := cfg.Track.FrameTime(i)
	root, meshes := posed(cfg, t)
	res := Result{
		Frame:    i,
		Time:     t,
		Image:    fmt.Sprintf("frame_%04d.%s", i, cfg.Format),
		Rotator:  root.Rotator(),
		Rotation: root.Rotation(),
		Forward:  root.Forward(),
	}

	img := raster.RenderScene(meshes, view, cfg.TexResolver, cfg.Render)
	if cfg.Render.Supersample > 1 {
		img = postprocess.Downsample(img, cfg.Render.Size)
	}

	if err := writeImage(filepath.Join(cfg.OutputDir, res.Image), img, cfg.Format); err != nil {
		res.Err = err
	}
	return res
}

func writeImage(path string, img *image.NRGBA, format string) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("batch: create dir for %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("batch: create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("batch: close %s: %w", path, cerr)
		}
	}()
	return Encode(f, img, format)
}

// Encode writes img in the given format.
func Encode(w io.Writer, img image.Image, format string) error {
	switch format {
	case FormatWebP:
		if err := nativewebp.Encode(w, img, nil); err != nil {
			return fmt.Errorf("batch: webp encode: %w", err)
		}
	case FormatTGA:
		if err := tga.Encode(w, img); err != nil {
			return fmt.Errorf("batch: tga encode: %w", err)
		}
	default:
		return fmt.Errorf("batch: unknown format %q", format)
	}
	return nil
}
