package scene

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"layerstage/internal/anchor"
	"layerstage/internal/geom"
	"layerstage/internal/logging"
	"layerstage/internal/motion"
)

// File is the on-disk scene document.
type File struct {
	StageSize float64        `json:"stage_size,omitempty"`
	Layers    []*LayerConfig `json:"layers"`
}

// DimensionSource resolves an image reference to its natural pixel
// dimensions. Asset loading and decoding live behind this boundary;
// the scene only ever sees sizes.
type DimensionSource interface {
	Dimensions(imageRef string) (geom.Size, bool)
}

// Scene is a fully resolved stage: layers sorted by stacking order,
// each with derived anchor geometry and parsed motion speeds.
type Scene struct {
	StageSize float64
	Layers    []*Layer
}

// LoadFile reads and parses a scene document.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: read %s: %w", path, err)
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("scene: parse %s: %w", path, err)
	}
	return &f, nil
}

// Build resolves a scene document against an image dimension source.
// Layers whose image cannot be resolved are skipped with a diagnostic;
// one bad layer never prevents the rest from rendering. Anchor
// geometry is memoized through the supplied cache.
func Build(f *File, dims DimensionSource, anchors *anchor.Cache) *Scene {
	s := &Scene{StageSize: f.StageSize}
	if s.StageSize <= 0 {
		s.StageSize = DefaultStageSize
	}

	for i, cfg := range f.Layers {
		if cfg == nil {
			continue
		}
		if cfg.ID == "" {
			cfg.ID = fmt.Sprintf("layer-%d", i)
		}
		size, ok := dims.Dimensions(cfg.Image)
		if !ok {
			logging.Logger().Warn("scene: skipping layer with unresolvable image", "layer", cfg.ID, "image", cfg.Image)
			continue
		}

		tip, base := cfg.Anchors()
		l := &Layer{
			Config:  cfg,
			Mapping: anchors.Get(size.Width, size.Height, tip, base),
		}
		if cfg.Spin != nil {
			l.SpinSpeed = motion.Resolve(&cfg.Spin.Spec)
		}
		if cfg.Orbit != nil {
			l.OrbitSpeed = motion.Resolve(&cfg.Orbit.Spec)
		}
		s.Layers = append(s.Layers, l)
	}

	sort.SliceStable(s.Layers, func(a, b int) bool {
		return s.Layers[a].Config.ZOrder < s.Layers[b].Config.ZOrder
	})

	return s
}
