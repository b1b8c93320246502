// Package viewer hosts the interactive window: orbit camera, key
// bindings and the HUD around the painter pipeline.
package viewer

// RunningAverage keeps a fixed-window mean, used to smooth the HUD's
// frame-time readout.
type RunningAverage struct {
	samples []float64
	next    int
	count   int
}

// NewRunningAverage creates an average over the last window samples.
// Panics if window is not positive.
func NewRunningAverage(window int) *RunningAverage {
	if window <= 0 {
		panic("running average window must be positive")
	}
	return &RunningAverage{samples: make([]float64, window)}
}

// Add records one sample, evicting the oldest when the window is full.
func (r *RunningAverage) Add(v float64) {
	r.samples[r.next] = v
	r.next = (r.next + 1) % len(r.samples)
	if r.count < len(r.samples) {
		r.count++
	}
}

// Average returns the mean of the recorded window, 0 when empty.
func (r *RunningAverage) Average() float64 {
	if r.count == 0 {
		return 0
	}
	sum := 0.0
	for i := 0; i < r.count; i++ {
		sum += r.samples[i]
	}
	return sum / float64(r.count)
}
