// Package metrics accumulates training statistics between status reports.
package metrics

import "gonum.org/v1/gonum/stat"

// Window accumulates per-step losses across multiple training steps.
//
// The training loop records one loss per step and takes a Snapshot at
// every reporting interval; the snapshot aggregates everything recorded
// since the previous one. The zero value is ready to use.
type Window struct {
	losses   []float64
	samples  int
	lastLoss float64
}

// Record adds one step's loss to the window.
func (w *Window) Record(batchSize int, loss float64) {
	w.losses = append(w.losses, loss)
	w.samples += batchSize
	w.lastLoss = loss
}

// Steps returns the number of steps recorded since the last snapshot.
func (w *Window) Steps() int {
	return len(w.losses)
}

// Snapshot returns aggregated metrics and resets the window.
func (w *Window) Snapshot() Snapshot {
	snap := Snapshot{
		Steps:    len(w.losses),
		Samples:  w.samples,
		LastLoss: w.lastLoss,
	}
	if len(w.losses) > 0 {
		snap.MeanLoss = stat.Mean(w.losses, nil)
	}
	if len(w.losses) > 1 {
		snap.StdDevLoss = stat.StdDev(w.losses, nil)
	}

	w.losses = w.losses[:0]
	w.samples = 0
	return snap
}

// Snapshot represents loggable metrics for one reporting interval.
type Snapshot struct {
	Steps      int     // training steps in the interval
	Samples    int     // examples processed in the interval
	MeanLoss   float64 // mean of the recorded per-step losses
	StdDevLoss float64 // sample standard deviation of the losses (0 for a single step)
	LastLoss   float64 // most recently recorded loss
}
