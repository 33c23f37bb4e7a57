// Package trainer drives training of the digit classifier.
//
// This package provides:
//   - Step: the per-batch state machine (forward, loss, backward, update)
//   - Run: the bounded epoch loop with periodic status reporting
//   - Evaluate: the forward-only pass over a dataset
//
// Execution is single-threaded and synchronous: each step runs to
// completion before the next begins, and exactly one batch is in flight
// at any time. Training length is bounded by the epoch count; there is
// no cancellation.
package trainer

import (
	"errors"
	"fmt"
	"log"

	"github.com/descent-ml/descent/internal/data"
	"github.com/descent-ml/descent/internal/metrics"
	"github.com/descent-ml/descent/internal/nn"
	"github.com/descent-ml/descent/internal/optim"
)

// Source is the abstract provider of training batches.
//
// The trainer never discovers, downloads, or decodes datasets; it
// consumes whatever sequence of fixed-size batches the Source yields.
// One epoch is one Reset followed by Next calls until the second return
// value is false. data.Loader is the standard implementation.
type Source interface {
	// Reset rewinds the source to the start of a fresh pass.
	Reset()

	// Next returns the next batch, or ok=false at the end of the pass.
	Next() (batch data.Batch, ok bool)
}

var _ Source = (*data.Loader)(nil)

// RunConfig captures the knobs of the training loop.
type RunConfig struct {
	Epochs      int         // number of full passes over the source (required, > 0)
	ReportEvery int         // steps between status lines (0 selects 100)
	Log         *log.Logger // status line destination (nil selects log.Default())
}

// Summary describes a finished training run.
type Summary struct {
	Epochs      int     // epochs completed
	Steps       int     // total batches processed
	InitialLoss float64 // loss of the very first step
	FinalLoss   float64 // mean loss over the final epoch
}

// Run trains the network on the source for a fixed number of epochs.
//
// Per step it drives the full forward -> loss -> backward -> update
// cycle; per reporting interval it logs one status line with the
// current epoch, total epochs, and the running-average loss since the
// last report. The first error aborts the run and is returned wrapped
// with its epoch and step; parameters keep the values of the last
// successful update.
func Run(net *nn.Network, criterion *nn.SoftmaxCrossEntropy, opt optim.Optimizer, source Source, cfg RunConfig) (Summary, error) {
	if cfg.Epochs <= 0 {
		return Summary{}, fmt.Errorf("trainer: epochs must be > 0 (got %d)", cfg.Epochs)
	}
	if cfg.ReportEvery <= 0 {
		cfg.ReportEvery = 100
	}
	logger := cfg.Log
	if logger == nil {
		logger = log.Default()
	}

	step := NewStep(net, criterion, opt)
	var window metrics.Window
	summary := Summary{}

	for epoch := 1; epoch <= cfg.Epochs; epoch++ {
		source.Reset()

		epochLoss := 0.0
		epochSteps := 0

		for {
			batch, ok := source.Next()
			if !ok {
				break
			}

			loss, err := step.Run(batch)
			if err != nil {
				return summary, fmt.Errorf("epoch %d, step %d: %w", epoch, summary.Steps+1, err)
			}

			if summary.Steps == 0 {
				summary.InitialLoss = float64(loss)
			}
			summary.Steps++
			epochLoss += float64(loss)
			epochSteps++

			window.Record(batch.Size(), float64(loss))
			if summary.Steps%cfg.ReportEvery == 0 {
				snap := window.Snapshot()
				logger.Printf("epoch=%d/%d step=%d avg_loss=%.4f",
					epoch, cfg.Epochs, summary.Steps, snap.MeanLoss)
			}
		}

		if epochSteps == 0 {
			return summary, errors.New("trainer: source yielded no batches")
		}

		summary.Epochs = epoch
		summary.FinalLoss = epochLoss / float64(epochSteps)
	}

	return summary, nil
}
