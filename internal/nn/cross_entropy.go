package nn

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/descent-ml/descent/internal/tensor"
)

// SoftmaxCrossEntropy computes softmax cross-entropy loss for
// multi-class classification.
//
// The softmax and the loss are fused: because the gradient of the
// combined expression has the closed form
//
//	dL/dlogits = (softmax(logits) - one_hot(labels)) / batch_size
//
// the forward pass returns both the scalar loss and the full gradient
// in one call, and no separate backward stage exists for the loss.
//
// Mathematical formulation:
//
//	loss = -mean over batch of log_softmax(logits)[label]
//
// The log-softmax uses the log-sum-exp trick: the row maximum is
// subtracted before exponentiating, which prevents overflow when logits
// exceed the float32 exp limit (~88) and underflow when all logits are
// very negative.
type SoftmaxCrossEntropy struct{}

// NewSoftmaxCrossEntropy creates the loss stage.
func NewSoftmaxCrossEntropy() *SoftmaxCrossEntropy {
	return &SoftmaxCrossEntropy{}
}

// Forward computes the mean loss over the batch and the gradient of the
// loss with respect to the logits.
//
// Parameters:
//   - logits: raw unnormalized scores with shape [batch_size, num_classes]
//   - labels: ground-truth class indices, one per batch row
//
// Returns the scalar loss, the [batch_size, num_classes] gradient, and
// an error for malformed inputs: a label count that does not match the
// batch (DimensionError), an empty label list or an out-of-range label
// (InvalidInputError), or non-finite logits or loss
// (NumericalInstabilityError). On error nothing is cached and no
// gradient is produced.
func (c *SoftmaxCrossEntropy) Forward(logits *tensor.Tensor, labels []int) (float32, *tensor.Tensor, error) {
	shape := logits.Shape()
	if len(shape) != 2 {
		return 0, nil, &DimensionError{
			Op:   "SoftmaxCrossEntropy.Forward",
			Want: "2D logits [batch, classes]",
			Got:  fmt.Sprintf("shape %v", []int(shape)),
		}
	}

	batchSize := shape[0]
	numClasses := shape[1]

	if len(labels) == 0 {
		return 0, nil, &InvalidInputError{
			Op:     "SoftmaxCrossEntropy.Forward",
			Reason: "empty label list",
		}
	}
	if len(labels) != batchSize {
		return 0, nil, &DimensionError{
			Op:   "SoftmaxCrossEntropy.Forward",
			Want: fmt.Sprintf("%d labels for %d logit rows", batchSize, batchSize),
			Got:  fmt.Sprintf("%d labels", len(labels)),
		}
	}
	if !logits.AllFinite() {
		return 0, nil, &NumericalInstabilityError{
			Stage:  "logits",
			Detail: "NaN or Inf in model output",
		}
	}

	logitsData := logits.Data()
	grad := tensor.Zeros(tensor.Shape{batchSize, numClasses})
	gradData := grad.Data()

	totalLoss := float32(0)
	for b := 0; b < batchSize; b++ {
		target := labels[b]
		if target < 0 || target >= numClasses {
			return 0, nil, &InvalidInputError{
				Op:     "SoftmaxCrossEntropy.Forward",
				Reason: fmt.Sprintf("label %d at row %d outside [0, %d)", target, b, numClasses),
			}
		}

		sample := logitsData[b*numClasses : (b+1)*numClasses]
		logProbs := logSoftmax(sample)

		// Negative log-likelihood of the true class.
		totalLoss += -logProbs[target]

		// Gradient row: softmax(z) - one_hot(target), averaged over batch.
		for i := 0; i < numClasses; i++ {
			g := math32.Exp(logProbs[i])
			if i == target {
				g -= 1.0
			}
			gradData[b*numClasses+i] = g / float32(batchSize)
		}
	}

	meanLoss := totalLoss / float32(batchSize)
	if math32.IsNaN(meanLoss) || math32.IsInf(meanLoss, 0) {
		return 0, nil, &NumericalInstabilityError{
			Stage:  "loss",
			Detail: fmt.Sprintf("mean batch loss is %v", meanLoss),
		}
	}

	return meanLoss, grad, nil
}

// logSoftmax computes log(softmax(z)) in a numerically stable way.
//
// Formula:
//
//	LogSoftmax(z)[i] = z[i] - LogSumExp(z)
//	                 = z[i] - (max(z) + log(sum exp(z - max(z))))
//
// Subtracting max(z) before exponentiating keeps every exponent at or
// below zero, so nothing overflows.
func logSoftmax(z []float32) []float32 {
	n := len(z)
	result := make([]float32, n)

	maxZ := z[0]
	for i := 1; i < n; i++ {
		if z[i] > maxZ {
			maxZ = z[i]
		}
	}

	sumExp := float32(0)
	for i := 0; i < n; i++ {
		sumExp += math32.Exp(z[i] - maxZ)
	}

	logSumExp := maxZ + math32.Log(sumExp)

	for i := 0; i < n; i++ {
		result[i] = z[i] - logSumExp
	}
	return result
}

// softmax computes softmax(z) = exp(LogSoftmax(z)).
func softmax(z []float32) []float32 {
	logProbs := logSoftmax(z)
	result := make([]float32, len(logProbs))
	for i, lp := range logProbs {
		result[i] = math32.Exp(lp)
	}
	return result
}

// argmax returns the index of the maximum value in the slice.
func argmax(z []float32) int {
	maxIdx := 0
	maxVal := z[0]
	for i := 1; i < len(z); i++ {
		if z[i] > maxVal {
			maxVal = z[i]
			maxIdx = i
		}
	}
	return maxIdx
}

// Accuracy computes classification accuracy for a batch.
//
// Parameters:
//   - logits: model predictions [batch_size, num_classes]
//   - labels: ground-truth class indices, one per batch row
//
// Returns the fraction of rows whose argmax matches the label.
// Panics if the label count does not match the batch.
func Accuracy(logits *tensor.Tensor, labels []int) float32 {
	shape := logits.Shape()
	batchSize := shape[0]
	numClasses := shape[1]

	if len(labels) != batchSize {
		panic(fmt.Sprintf("nn.Accuracy: %d labels for %d logit rows", len(labels), batchSize))
	}

	logitsData := logits.Data()
	correct := 0
	for b := 0; b < batchSize; b++ {
		sample := logitsData[b*numClasses : (b+1)*numClasses]
		if argmax(sample) == labels[b] {
			correct++
		}
	}
	return float32(correct) / float32(batchSize)
}
