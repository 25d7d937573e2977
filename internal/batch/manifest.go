package batch

import (
	"encoding/json"
	"fmt"
	"os"

	"orientation-kit/internal/mathutil"
)

// ManifestEntry represents one rendered frame in the output manifest.
type ManifestEntry struct {
	Frame   int        `json:"frame"`
	Time    float64    `json:"time"`
	Image   string     `json:"image"`
	Rotator string     `json:"rotator"`
	Quat    string     `json:"quat"`
	Forward [3]float32 `json:"forward"`
}

// Manifest lists the frames that rendered successfully, in frame order.
func Manifest(results []Result) []ManifestEntry {
	entries := make([]ManifestEntry, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		entries = append(entries, ManifestEntry{
			Frame:   r.Frame,
			Time:    r.Time,
			Image:   r.Image,
			Rotator: r.Rotator.String(),
			Quat:    r.Rotation.String(),
			Forward: [3]float32(mathutil.SafeNormalize(r.Forward, mathutil.SmallNumber)),
		})
	}
	return entries
}

// WriteManifest writes manifest.json for results to path.
func WriteManifest(path string, results []Result) error {
	data, err := json.MarshalIndent(Manifest(results), "", "  ")
	if err != nil {
		return fmt.Errorf("batch: encode manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("batch: write manifest %s: %w", path, err)
	}
	return nil
}
