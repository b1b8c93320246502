package painter

import "time"

// FrameStats collects per-frame counters and pass timings for the HUD
// and debug logs. A fresh value is built every RenderFrame.
type FrameStats struct {
	AnchorsTotal   int // anchors in the model's set
	AnchorsDropped int // non-finite or behind-camera anchors
	AnchorsCulled  int // anchors failing the occlusion rule
	StrokesDrawn   int // strokes that reached the canvas

	ReferenceTime time.Duration
	ProjectTime   time.Duration
	ExpandTime    time.Duration
	PostTime      time.Duration
	FrameTime     time.Duration
}

// Survivors returns the number of anchors that passed projection and
// occlusion this frame.
func (s FrameStats) Survivors() int {
	return s.AnchorsTotal - s.AnchorsDropped - s.AnchorsCulled
}
