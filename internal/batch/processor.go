// Package batch renders a scene's frame sequence to WebP using a
// worker pool.
package batch

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"layerstage/internal/pipeline"
	"layerstage/internal/render"
)

// Config holds all shared resources for a batch run.
type Config struct {
	Engine      *pipeline.Engine
	Source      render.ImageSource
	OutputDir   string
	RenderSize  int
	Supersample int
	FPS         int
	Duration    time.Duration
	StartMs     int64
	Animated    bool
	Background  color.Color
	Workers     int
}

// Result holds the outcome of processing one frame.
type Result struct {
	Frame   int
	Path    string
	Success bool
	Error   string
}

// Run renders every frame of the sequence. With Animated set, frames
// are collected and written as one animated WebP; otherwise each frame
// becomes its own numbered still.
func Run(cfg Config) ([]Result, error) {
	if cfg.FPS <= 0 {
		cfg.FPS = 30
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	total := int(cfg.Duration.Seconds() * float64(cfg.FPS))
	if total < 1 {
		total = 1
	}
	frameStepMs := 1000.0 / float64(cfg.FPS)

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("batch: create output dir: %w", err)
	}

	// Anchor all numeric motions at the sequence start so parallel,
	// out-of-order frame computation agrees on elapsed time.
	cfg.Engine.Prime(cfg.StartMs)

	comp := &render.Compositor{
		StageSize:   cfg.Engine.StageSize(),
		Size:        cfg.RenderSize,
		Supersample: cfg.Supersample,
		Source:      cfg.Source,
		Background:  cfg.Background,
	}

	results := make([]Result, total)
	frames := make([]*image.NRGBA, total)
	var processed atomic.Int64

	start := time.Now()
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					fmt.Printf("  [%d/%d] %.1f frames/sec\n", p, total, float64(p)/elapsed)
				}
			}
		}
	}()

	frameChan := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup
	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range frameChan {
				ts := cfg.StartMs + int64(float64(idx)*frameStepMs)
				img := comp.Render(cfg.Engine.ComputeFrame(ts))
				if cfg.Animated {
					frames[idx] = img
					results[idx] = Result{Frame: idx, Success: true}
				} else {
					results[idx] = writeFrame(cfg.OutputDir, idx, img)
				}
				processed.Add(1)
			}
		}()
	}

	for i := 0; i < total; i++ {
		frameChan <- i
	}
	close(frameChan)
	wg.Wait()
	close(done)

	if cfg.Animated {
		path := filepath.Join(cfg.OutputDir, "stage.webp")
		if err := writeAnimation(path, frames, int(frameStepMs)); err != nil {
			return results, err
		}
		for i := range results {
			results[i].Path = path
		}
	}

	return results, nil
}

func writeFrame(outputDir string, idx int, img *image.NRGBA) Result {
	path := filepath.Join(outputDir, fmt.Sprintf("frame_%05d.webp", idx))
	f, err := os.Create(path)
	if err != nil {
		return Result{Frame: idx, Error: err.Error()}
	}
	defer f.Close()

	if err := render.EncodeFrame(f, img); err != nil {
		return Result{Frame: idx, Error: err.Error()}
	}
	return Result{Frame: idx, Path: path, Success: true}
}

func writeAnimation(path string, frames []*image.NRGBA, frameDurationMs int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("batch: create %s: %w", path, err)
	}
	defer f.Close()

	if err := render.EncodeAnimation(f, frames, frameDurationMs, 0); err != nil {
		return fmt.Errorf("batch: %w", err)
	}
	return nil
}
