package debugui

// PerformanceStatsComponent keeps a rolling frame time history for the
// performance window.
type PerformanceStatsComponent struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
}
