package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels int           // Total number of pixels rendered
	HitPixels   int           // Pixels whose primary ray hit an object
	Workers     int           // Number of goroutines used
	Strategy    Strategy      // Scheduling strategy used
	Elapsed     time.Duration // Wall-clock render time
}

// Coverage returns the fraction of pixels that hit geometry
func (s RenderStats) Coverage() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.HitPixels) / float64(s.TotalPixels)
}
