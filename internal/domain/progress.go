package domain

import "math"

// ProgressState holds the counters the global progress percentage derives from.
type ProgressState struct {
	LoadedBefore int // Sections loaded before the current reveal began
	Completed    int // Build targets completed in the current section
	Targets      int // Build targets in the current section
	Total        int // Sections in the registry
}

// Percent interpolates linearly from the pre-reveal percentage to the
// post-reveal percentage, one equal step per completed target, rounded
// to the nearest integer.
func (p ProgressState) Percent() int {
	if p.Total <= 0 {
		return 0
	}
	start := 100 * float64(p.LoadedBefore) / float64(p.Total)
	target := 100 * float64(p.LoadedBefore+1) / float64(p.Total)

	ratio := 1.0
	if p.Targets > 0 {
		ratio = float64(p.Completed) / float64(p.Targets)
	}

	return clampPercent(int(math.Round(start + (target-start)*ratio)))
}

// StartPercent is the percentage painted when the reveal begins
func (p ProgressState) StartPercent() int {
	if p.Total <= 0 {
		return 0
	}
	return clampPercent(int(math.Round(100 * float64(p.LoadedBefore) / float64(p.Total))))
}

func clampPercent(v int) int {
	return min(max(v, 0), 100)
}
