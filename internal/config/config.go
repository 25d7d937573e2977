package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"orientation-kit/internal/mathutil"
	"orientation-kit/internal/viewmatrix"

	"github.com/spf13/pflag"
	"sigs.k8s.io/yaml"
)

// Output formats.
const (
	FormatWebP = "webp"
	FormatTGA  = "tga"
)

// Default camera, looking slightly down from the front right.
const (
	DefaultCameraPitch = -20
	DefaultCameraYaw   = 35
)

// Camera is the viewing rotation in degrees. Unset angles take defaults.
type Camera struct {
	Pitch *float32 `json:"pitch"`
	Yaw   *float32 `json:"yaw"`
	Roll  *float32 `json:"roll"`
}

// Config holds all configurable paths and render settings.
type Config struct {
	// Paths, relative ones are resolved against BaseDir
	BaseDir    string `json:"base_dir"`
	PoseFile   string `json:"pose_file"`
	TextureDir string `json:"texture_dir"`
	OutputDir  string `json:"output_dir"`

	// Render settings
	RenderSize  int     `json:"render_size"`
	Supersample int     `json:"supersample"`
	Workers     int     `json:"workers"`
	Format      string  `json:"format"`
	Perspective bool    `json:"perspective"`
	FOV         float64 `json:"fov"`
	Extent      float64 `json:"extent"` // fixed framing in world units, 0 frames the whole track
	GizmoSize   float32 `json:"gizmo_size"`
	Camera      Camera  `json:"camera"`
	NaNCheck    *bool   `json:"nan_check"`
}

// Load reads a YAML or JSON config file. Fields not set in the file keep
// their zero values; BaseDir defaults to the file's directory.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if cfg.BaseDir == "" {
		cfg.BaseDir = filepath.Dir(path)
	} else if !filepath.IsAbs(cfg.BaseDir) {
		cfg.BaseDir = filepath.Join(filepath.Dir(path), cfg.BaseDir)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	PoseFile    string
	TextureDir  string
	OutputDir   string
	Format      string
	Size        int
	Supersample int
	Workers     int
	Perspective bool
}

// BindFlags registers the override flags on fs.
func BindFlags(fs *pflag.FlagSet, f *Flags) {
	fs.StringVarP(&f.PoseFile, "pose", "p", "", "pose file (YAML or JSON)")
	fs.StringVar(&f.TextureDir, "textures", "", "directory searched for textures")
	fs.StringVarP(&f.OutputDir, "output", "o", "", "output directory")
	fs.StringVar(&f.Format, "format", "", "image format: webp or tga")
	fs.IntVar(&f.Size, "size", 0, "output image size in pixels")
	fs.IntVar(&f.Supersample, "supersample", 0, "supersampling factor")
	fs.IntVarP(&f.Workers, "workers", "w", 0, "parallel workers (default: NumCPU)")
	fs.BoolVar(&f.Perspective, "perspective", false, "perspective instead of orthographic projection")
}

// Resolve applies flag overrides, then fills empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.PoseFile != "" {
		c.PoseFile = flags.PoseFile
	}
	if flags.TextureDir != "" {
		c.TextureDir = flags.TextureDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Size > 0 {
		c.RenderSize = flags.Size
	}
	if flags.Supersample > 0 {
		c.Supersample = flags.Supersample
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Perspective {
		c.Perspective = true
	}

	// Flag paths are relative to the working directory, file paths to BaseDir.
	if c.BaseDir != "" {
		if flags.PoseFile == "" {
			c.PoseFile = c.rel(c.PoseFile)
		}
		if flags.TextureDir == "" {
			c.TextureDir = c.rel(c.TextureDir)
		}
		if flags.OutputDir == "" {
			c.OutputDir = c.rel(c.OutputDir)
		}
	}
	if c.OutputDir == "" {
		c.OutputDir = c.rel("renders")
	}

	if c.RenderSize <= 0 {
		c.RenderSize = 256
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	c.Format = strings.ToLower(c.Format)
	if c.Format == "" {
		c.Format = FormatWebP
	}
	if c.FOV <= 0 {
		c.FOV = viewmatrix.DefaultFOV
	}
	if c.GizmoSize <= 0 {
		c.GizmoSize = 1
	}
	if c.NaNCheck == nil {
		on := true
		c.NaNCheck = &on
	}
}

func (c *Config) rel(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.BaseDir, p)
}

// Validate reports settings that Resolve cannot default.
func (c *Config) Validate() error {
	if c.PoseFile == "" {
		return fmt.Errorf("config: no pose file")
	}
	if c.Format != FormatWebP && c.Format != FormatTGA {
		return fmt.Errorf("config: unknown format %q (want %s or %s)", c.Format, FormatWebP, FormatTGA)
	}
	if c.FOV >= 180 {
		return fmt.Errorf("config: fov %v out of range", c.FOV)
	}
	return nil
}

// CameraRotator returns the camera rotation with defaults for unset angles.
func (c *Config) CameraRotator() mathutil.Rotator {
	r := mathutil.Rotator{Pitch: DefaultCameraPitch, Yaw: DefaultCameraYaw}
	if c.Camera.Pitch != nil {
		r.Pitch = *c.Camera.Pitch
	}
	if c.Camera.Yaw != nil {
		r.Yaw = *c.Camera.Yaw
	}
	if c.Camera.Roll != nil {
		r.Roll = *c.Camera.Roll
	}
	return r
}

// Projection returns the viewmatrix projection for these settings.
func (c *Config) Projection() viewmatrix.Projection {
	return viewmatrix.Projection{Perspective: c.Perspective, FOV: c.FOV}
}
