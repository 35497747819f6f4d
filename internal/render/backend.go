// Package render turns per-frame layer snapshots into pixels. The
// compositor here is the immediate-mode 2D raster backend; the live
// ebiten backend lives in the live subpackage. Both consume the same
// snapshots and do no geometric computation of their own.
package render

import (
	"image"

	"layerstage/internal/scene"
)

// Backend consumes one frame's worth of layer snapshots. Snapshots
// arrive in stacking order with culled layers flagged not visible.
type Backend interface {
	RenderFrame(snaps []scene.Snapshot) error
}

// FrameProducer is what a backend pulls frames from; the pipeline
// engine satisfies it.
type FrameProducer interface {
	NextFrame()
	Frame(timestampMs int64) []scene.Snapshot
}

// ImageSource resolves snapshot image references to decoded images.
type ImageSource interface {
	Resolve(ref string) *image.NRGBA
}
