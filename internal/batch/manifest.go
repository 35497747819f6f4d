package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"layerstage/internal/scene"
)

// Manifest describes one rendered sequence.
type Manifest struct {
	StageSize  float64         `json:"stage_size"`
	RenderSize int             `json:"render_size"`
	FPS        int             `json:"fps"`
	FrameCount int             `json:"frame_count"`
	Animated   bool            `json:"animated"`
	Layers     []ManifestLayer `json:"layers"`
	Frames     []string        `json:"frames,omitempty"`
}

// ManifestLayer records the identity of one rendered layer.
type ManifestLayer struct {
	ID       string `json:"id"`
	Image    string `json:"image"`
	Renderer string `json:"renderer,omitempty"`
	ZOrder   int    `json:"z"`
	Animated bool   `json:"animated"`
}

// WriteManifest writes manifest.json next to the rendered output.
func WriteManifest(path string, stageSize float64, renderSize, fps int, layers []*scene.Layer, results []Result, animated bool) error {
	m := Manifest{
		StageSize:  stageSize,
		RenderSize: renderSize,
		FPS:        fps,
		FrameCount: len(results),
		Animated:   animated,
	}
	for _, l := range layers {
		m.Layers = append(m.Layers, ManifestLayer{
			ID:       l.Config.ID,
			Image:    l.Config.Image,
			Renderer: l.Config.Renderer,
			ZOrder:   l.Config.ZOrder,
			Animated: l.Config.Animated(),
		})
	}
	if !animated {
		for _, r := range results {
			if r.Success {
				m.Frames = append(m.Frames, filepath.Base(r.Path))
			}
		}
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("batch: write manifest: %w", err)
	}
	return nil
}
