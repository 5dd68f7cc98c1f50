// Package timing measures wall-clock durations of benchmark phases.
package timing

import "time"

// Measure runs fn and returns its wall-clock duration in milliseconds.
func Measure(fn func()) float64 {
	start := time.Now()
	fn()
	return Millis(time.Since(start))
}

// Millis converts d to fractional milliseconds.
func Millis(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1e6
}

// Stopwatch marks consecutive phase boundaries.
type Stopwatch struct {
	last time.Time
}

// Start returns a running Stopwatch whose first boundary is now.
func Start() *Stopwatch {
	return &Stopwatch{last: time.Now()}
}

// Lap returns the milliseconds elapsed since the previous boundary and
// begins the next phase.
func (s *Stopwatch) Lap() float64 {
	now := time.Now()
	elapsed := now.Sub(s.last)
	s.last = now
	return Millis(elapsed)
}
