package trainer

import (
	"bytes"
	"log"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/descent-ml/descent/internal/data"
	"github.com/descent-ml/descent/internal/nn"
	"github.com/descent-ml/descent/internal/optim"
	"github.com/descent-ml/descent/internal/tensor"
)

// trainingFixture wires a network, loss, optimizer and loader for a
// separable two-feature, two-class problem.
func trainingFixture(t *testing.T, samples, batchSize int) (*nn.Network, *nn.SoftmaxCrossEntropy, *optim.SGD, *data.Loader) {
	t.Helper()

	rng := rand.New(rand.NewSource(42))
	set := data.SyntheticClassification(samples, 2, 2, rng)
	loader, err := data.NewLoader(set, batchSize, true, rng)
	require.NoError(t, err)

	net, err := nn.NewMLP(2, []int{8}, 2, rand.New(rand.NewSource(7)))
	require.NoError(t, err)

	opt := optim.NewSGD(net.Parameters(), optim.SGDConfig{LR: 0.1})
	return net, nn.NewSoftmaxCrossEntropy(), opt, loader
}

// TestRun_LossDecreasesOnSeparableData trains on linearly separable
// clusters and requires the final loss to land below the initial one.
func TestRun_LossDecreasesOnSeparableData(t *testing.T) {
	net, criterion, opt, loader := trainingFixture(t, 100, 10)

	summary, err := Run(net, criterion, opt, loader, RunConfig{
		Epochs:      5,
		ReportEvery: 1000, // keep the test log quiet
		Log:         log.New(&bytes.Buffer{}, "", 0),
	})
	require.NoError(t, err)

	assert.Equal(t, 5, summary.Epochs)
	assert.Equal(t, 50, summary.Steps, "10 full batches per epoch, 5 epochs")
	assert.Less(t, summary.FinalLoss, summary.InitialLoss,
		"training on separable data must reduce the loss")
}

// TestRun_StatusLineCadence checks that exactly one status line appears
// per reporting interval and carries the epoch and running-average loss.
func TestRun_StatusLineCadence(t *testing.T) {
	net, criterion, opt, loader := trainingFixture(t, 60, 10)

	var buf bytes.Buffer
	_, err := Run(net, criterion, opt, loader, RunConfig{
		Epochs:      2,
		ReportEvery: 4,
		Log:         log.New(&buf, "", 0),
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	// 6 steps per epoch, 2 epochs = 12 steps; a line every 4 steps = 3 lines.
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "epoch=1/2")
	assert.Contains(t, lines[0], "step=4")
	assert.Contains(t, lines[1], "step=8")
	assert.Contains(t, lines[2], "epoch=2/2")
	assert.Contains(t, lines[2], "step=12")
	for _, line := range lines {
		assert.Contains(t, line, "avg_loss=")
	}
}

// TestRun_ConfigValidation rejects a run without a positive epoch count.
func TestRun_ConfigValidation(t *testing.T) {
	net, criterion, opt, loader := trainingFixture(t, 20, 5)

	_, err := Run(net, criterion, opt, loader, RunConfig{Epochs: 0})
	assert.Error(t, err)
	_, err = Run(net, criterion, opt, loader, RunConfig{Epochs: -3})
	assert.Error(t, err)
}

// emptySource is a Source that never yields a batch.
type emptySource struct{}

func (emptySource) Reset()                   {}
func (emptySource) Next() (data.Batch, bool) { return data.Batch{}, false }

// TestRun_EmptySource checks that a source with no batches aborts the
// run instead of silently reporting success.
func TestRun_EmptySource(t *testing.T) {
	net, criterion, opt, _ := trainingFixture(t, 20, 5)

	_, err := Run(net, criterion, opt, emptySource{}, RunConfig{
		Epochs: 1,
		Log:    log.New(&bytes.Buffer{}, "", 0),
	})
	assert.Error(t, err)
}

// TestRun_AbortsOnBadBatch checks that a poisoned batch stops the run
// with the typed error and its position attached.
func TestRun_AbortsOnBadBatch(t *testing.T) {
	net, criterion, opt, _ := trainingFixture(t, 20, 5)

	inputs, err := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{1, 3})
	require.NoError(t, err)
	bad := badWidthSource{batch: data.Batch{Inputs: inputs, Labels: []int{0}}}

	_, runErr := Run(net, criterion, opt, &bad, RunConfig{
		Epochs: 1,
		Log:    log.New(&bytes.Buffer{}, "", 0),
	})
	require.Error(t, runErr)

	var dimErr *nn.DimensionError
	assert.ErrorAs(t, runErr, &dimErr)
	assert.Contains(t, runErr.Error(), "epoch 1")
}

// badWidthSource yields one malformed batch.
type badWidthSource struct {
	batch data.Batch
	done  bool
}

func (s *badWidthSource) Reset() { s.done = false }

func (s *badWidthSource) Next() (data.Batch, bool) {
	if s.done {
		return data.Batch{}, false
	}
	s.done = true
	return s.batch, true
}

// TestStep_GradientOverflow triggers a gradient overflow with finite
// logits: huge inputs against a huge second layer produce an Inf weight
// gradient while the forward pass itself stays finite. The step must
// fail with the instability error before any update commits.
func TestStep_GradientOverflow(t *testing.T) {
	net, err := nn.NewMLP(2, []int{2}, 2, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	params := net.Parameters()
	// W1 tiny so the hidden activations stay small, W2 huge so the
	// gradient flowing back to W1 is amplified by 1e30.
	copy(params[0].Tensor().Data(), []float32{1e-10, 1e-10, 1e-10, 1e-10})
	copy(params[1].Tensor().Data(), []float32{0, 0})
	copy(params[2].Tensor().Data(), []float32{1e30, 0, 1e30, 0})
	copy(params[3].Tensor().Data(), []float32{0, 0})

	inputs, err := tensor.FromSlice([]float32{1e10, 1e10}, tensor.Shape{1, 2})
	require.NoError(t, err)

	opt := optim.NewSGD(params, optim.SGDConfig{LR: 0.01})
	step := NewStep(net, nn.NewSoftmaxCrossEntropy(), opt)

	before := snapshotParams(net)
	_, runErr := step.Run(data.Batch{Inputs: inputs, Labels: []int{1}})
	require.Error(t, runErr)

	var numErr *nn.NumericalInstabilityError
	require.ErrorAs(t, runErr, &numErr)
	assert.Equal(t, "gradient", numErr.Stage)
	assert.True(t, paramsEqual(net, before), "aborted step must leave parameters untouched")
}

// TestEvaluate_SeparableAccuracy trains briefly, then checks Evaluate
// reports high accuracy and a sane loss on the training distribution.
func TestEvaluate_SeparableAccuracy(t *testing.T) {
	net, criterion, opt, loader := trainingFixture(t, 100, 10)

	_, err := Run(net, criterion, opt, loader, RunConfig{
		Epochs:      10,
		ReportEvery: 1000,
		Log:         log.New(&bytes.Buffer{}, "", 0),
	})
	require.NoError(t, err)

	result, err := Evaluate(net, criterion, loader)
	require.NoError(t, err)

	assert.Equal(t, 10, result.Batches)
	assert.Equal(t, 100, result.Samples)
	assert.Greater(t, result.Accuracy, 0.9, "clusters this far apart should be fully separable")
	assert.Greater(t, result.MeanLoss, 0.0)
}

// TestEvaluate_DoesNotTouchGradientsOrParameters pins the inference
// contract: evaluation reads the network and changes nothing.
func TestEvaluate_DoesNotTouchGradientsOrParameters(t *testing.T) {
	net, criterion, _, loader := trainingFixture(t, 20, 5)
	before := snapshotParams(net)

	_, err := Evaluate(net, criterion, loader)
	require.NoError(t, err)

	assert.True(t, paramsEqual(net, before))
	for _, p := range net.Parameters() {
		assert.Nil(t, p.Grad(), "Evaluate must not produce gradients")
	}
}

// TestEvaluate_EmptySource mirrors the Run contract for evaluation.
func TestEvaluate_EmptySource(t *testing.T) {
	net, criterion, _, _ := trainingFixture(t, 20, 5)

	_, err := Evaluate(net, criterion, emptySource{})
	assert.Error(t, err)
}
