package trainer

import (
	"errors"

	"github.com/descent-ml/descent/internal/nn"
)

// EvalResult describes one evaluation pass.
type EvalResult struct {
	Batches  int     // batches evaluated
	Samples  int     // examples evaluated
	MeanLoss float64 // loss averaged over batches
	Accuracy float64 // fraction of examples classified correctly
}

// Evaluate runs the network over the source without training it.
//
// This is the inference-side consumer of the trained parameters: a
// plain forward pass plus loss bookkeeping, no backward pass and no
// update. Gradients are neither computed nor touched, so Evaluate can
// run between training epochs without disturbing an in-progress run's
// parameters beyond reading them.
func Evaluate(net *nn.Network, criterion *nn.SoftmaxCrossEntropy, source Source) (EvalResult, error) {
	result := EvalResult{}
	totalLoss := 0.0
	correct := 0.0

	source.Reset()
	for {
		batch, ok := source.Next()
		if !ok {
			break
		}

		logits, err := net.Forward(batch.Inputs)
		if err != nil {
			return EvalResult{}, err
		}
		loss, _, err := criterion.Forward(logits, batch.Labels)
		if err != nil {
			return EvalResult{}, err
		}

		totalLoss += float64(loss)
		correct += float64(nn.Accuracy(logits, batch.Labels)) * float64(batch.Size())
		result.Batches++
		result.Samples += batch.Size()
	}

	if result.Batches == 0 {
		return EvalResult{}, errors.New("trainer: source yielded no batches")
	}

	result.MeanLoss = totalLoss / float64(result.Batches)
	result.Accuracy = correct / float64(result.Samples)
	return result, nil
}
