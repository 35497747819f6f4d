package render

import (
	"fmt"
	"image"
	"io"

	"github.com/HugoSmits86/nativewebp"
)

// EncodeFrame writes a single frame as a lossless WebP still.
func EncodeFrame(w io.Writer, img *image.NRGBA) error {
	if err := nativewebp.Encode(w, img, nil); err != nil {
		return fmt.Errorf("render: webp encode: %w", err)
	}
	return nil
}

// EncodeAnimation writes frames as an animated WebP with a uniform
// per-frame duration in milliseconds. loopCount 0 loops forever.
func EncodeAnimation(w io.Writer, frames []*image.NRGBA, frameDurationMs int, loopCount uint16) error {
	if len(frames) == 0 {
		return fmt.Errorf("render: webp animation needs at least one frame")
	}
	if frameDurationMs <= 0 {
		frameDurationMs = 33
	}

	ani := nativewebp.Animation{
		Images:    make([]image.Image, len(frames)),
		Durations: make([]uint, len(frames)),
		Disposals: make([]uint, len(frames)),
		LoopCount: loopCount,
	}
	for i, f := range frames {
		ani.Images[i] = f
		ani.Durations[i] = uint(frameDurationMs)
		ani.Disposals[i] = 1 // clear to background before each frame
	}

	if err := nativewebp.EncodeAll(w, &ani, nil); err != nil {
		return fmt.Errorf("render: webp animation encode: %w", err)
	}
	return nil
}
