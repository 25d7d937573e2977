package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"orientation-kit/internal/batch"
	"orientation-kit/internal/config"
	"orientation-kit/internal/mathutil"
	"orientation-kit/internal/pose"
	"orientation-kit/internal/raster"
	"orientation-kit/internal/texture"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		configFile string
		verbose    bool
		flags      config.Flags
	)
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cmd := &cobra.Command{
		Use:   "render [pose-file]",
		Short: "Render an animated pose track to image frames",
		Long: `Render samples a pose track, poses an axis gizmo on its joints and writes
one image per frame plus a manifest.json describing each frame's rotation.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			}
			if len(args) == 1 {
				flags.PoseFile = args[0]
			}
			err := run(cmd.Context(), log, configFile, flags)
			if err != nil {
				log.WithError(err).Error("render failed")
			}
			return err
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&configFile, "config", "c", "", "config file (YAML or JSON)")
	fs.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	config.BindFlags(fs, &flags)
	return cmd
}

func run(ctx context.Context, log *logrus.Logger, configFile string, flags config.Flags) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	var cfg config.Config
	if configFile != "" {
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return err
		}
	}
	cfg.Resolve(flags)
	if err := cfg.Validate(); err != nil {
		return err
	}

	mathutil.SetNaNCheck(*cfg.NaNCheck)
	mathutil.SetLogger(log)

	doc, err := pose.Load(cfg.PoseFile)
	if err != nil {
		return err
	}

	texIndex := texture.BuildIndex(cfg.TextureDir)
	texCache := texture.NewCache(texIndex, log)
	joints, scene := batch.BuildScene(doc.Joints, cfg.GizmoSize)

	log.WithFields(logrus.Fields{
		"pose":     cfg.PoseFile,
		"frames":   doc.Track.FrameCount(),
		"joints":   len(joints),
		"textures": texIndex.Len(),
		"workers":  cfg.Workers,
		"output":   cfg.OutputDir,
	}).Info("starting render")
	log.WithField("camera", cfg.CameraRotator().String()).Debug("camera")

	start := time.Now()
	results := batch.Run(ctx, batch.Config{
		OutputDir: cfg.OutputDir,
		Format:    cfg.Format,
		Track:     doc.Track,
		Joints:    joints,
		Scene:     scene,
		Camera:    cfg.CameraRotator(),
		Render: raster.Options{
			Size:        cfg.RenderSize,
			Supersample: cfg.Supersample,
			Projection:  cfg.Projection(),
			Extent:      cfg.Extent,
		},
		TexResolver: texCache,
		Workers:     cfg.Workers,
		Log:         log,
	})

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("render: create %s: %w", cfg.OutputDir, err)
	}
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		log.WithError(err).Warn("manifest write failed")
	}

	log.WithFields(logrus.Fields{
		"rendered": len(results) - failed,
		"failed":   failed,
		"elapsed":  time.Since(start).Round(time.Millisecond).String(),
		"manifest": manifestPath,
	}).Info("done")

	if failed > 0 {
		return fmt.Errorf("render: %d of %d frames failed", failed, len(results))
	}
	return nil
}
