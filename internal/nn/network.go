package nn

import (
	"fmt"
	"math/rand"

	"github.com/descent-ml/descent/internal/tensor"
)

// Network is the feed-forward digit classifier.
//
// The architecture is fixed in form: an input layer, a configurable
// list of hidden Linear+ReLU blocks, and a final Linear projection to
// class logits. The default configuration is
//
//	input(784) -> Linear(128) -> ReLU -> Linear(64) -> ReLU -> Linear(10)
//
// Layer widths are configurable; the topology is not.
//
// Example:
//
//	rng := rand.New(rand.NewSource(42))
//	net, err := nn.NewMLP(784, []int{128, 64}, 10, rng)
//	logits, err := net.Forward(batch)
type Network struct {
	inputDim   int
	hiddenDims []int
	numClasses int
	layers     []Layer
}

// NewMLP creates the multi-layer perceptron.
//
// Parameters:
//   - inputDim: width of a flattened input sample (784 for 28x28 digits)
//   - hiddenDims: widths of the hidden layers, in order
//   - numClasses: number of output classes
//   - rng: random source for weight initialization
//
// Every width must be positive; hiddenDims may be empty, which yields a
// single linear projection. Returns an error for invalid widths so that
// a bad configuration is rejected before any training starts.
func NewMLP(inputDim int, hiddenDims []int, numClasses int, rng *rand.Rand) (*Network, error) {
	if inputDim <= 0 {
		return nil, fmt.Errorf("input dimension must be > 0 (got %d)", inputDim)
	}
	if numClasses <= 0 {
		return nil, fmt.Errorf("number of classes must be > 0 (got %d)", numClasses)
	}
	for i, h := range hiddenDims {
		if h <= 0 {
			return nil, fmt.Errorf("hidden layer %d width must be > 0 (got %d)", i, h)
		}
	}

	var layers []Layer
	prev := inputDim
	for _, h := range hiddenDims {
		layers = append(layers, NewLinear(prev, h, rng), NewReLU())
		prev = h
	}
	layers = append(layers, NewLinear(prev, numClasses, rng))

	return &Network{
		inputDim:   inputDim,
		hiddenDims: append([]int(nil), hiddenDims...),
		numClasses: numClasses,
		layers:     layers,
	}, nil
}

// Forward runs the batch through every layer in order and returns the
// class logits with shape [batch_size, num_classes].
//
// Forward mutates no parameters and can be called repeatedly; each call
// refreshes the activation caches used by Backward.
func (n *Network) Forward(input *tensor.Tensor) (*tensor.Tensor, error) {
	out := input
	var err error
	for _, layer := range n.layers {
		out, err = layer.Forward(out)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Backward propagates the loss gradient through the layers in reverse
// order, storing weight and bias gradients on the parameters.
//
// lossGrad is the gradient of the loss with respect to the logits, as
// produced by SoftmaxCrossEntropy.Forward. The gradient with respect to
// the network input has no consumer and is discarded.
func (n *Network) Backward(lossGrad *tensor.Tensor) {
	grad := lossGrad
	for i := len(n.layers) - 1; i >= 0; i-- {
		grad = n.layers[i].Backward(grad)
	}
}

// Parameters returns all trainable parameters in layer order.
func (n *Network) Parameters() []*Parameter {
	var params []*Parameter
	for _, layer := range n.layers {
		params = append(params, layer.Parameters()...)
	}
	return params
}

// Predict returns the predicted class index for every row of the batch.
//
// This is the inference path: a plain forward pass with no gradient
// bookkeeping, usable on a trained network at any time.
func (n *Network) Predict(input *tensor.Tensor) ([]int, error) {
	logits, err := n.Forward(input)
	if err != nil {
		return nil, err
	}

	batchSize := logits.Rows()
	numClasses := logits.Cols()
	data := logits.Data()

	preds := make([]int, batchSize)
	for b := 0; b < batchSize; b++ {
		preds[b] = argmax(data[b*numClasses : (b+1)*numClasses])
	}
	return preds, nil
}

// Probabilities returns the softmax of the logits for every row,
// shape [batch_size, num_classes]. Rows sum to 1.
func (n *Network) Probabilities(input *tensor.Tensor) (*tensor.Tensor, error) {
	logits, err := n.Forward(input)
	if err != nil {
		return nil, err
	}

	batchSize := logits.Rows()
	numClasses := logits.Cols()
	data := logits.Data()

	probs := tensor.Zeros(tensor.Shape{batchSize, numClasses})
	probsData := probs.Data()
	for b := 0; b < batchSize; b++ {
		copy(probsData[b*numClasses:(b+1)*numClasses], softmax(data[b*numClasses:(b+1)*numClasses]))
	}
	return probs, nil
}

// InputDim returns the expected width of a flattened input sample.
func (n *Network) InputDim() int {
	return n.inputDim
}

// HiddenDims returns the hidden layer widths.
func (n *Network) HiddenDims() []int {
	return append([]int(nil), n.hiddenDims...)
}

// NumClasses returns the number of output classes.
func (n *Network) NumClasses() int {
	return n.numClasses
}

// StateDict returns a map of qualified parameter names to their live
// tensors. Keys follow the layer position: "layers.0.weight",
// "layers.0.bias", "layers.2.weight", and so on (activation layers
// occupy positions but contribute no entries). The tensors are not
// copied.
func (n *Network) StateDict() map[string]*tensor.Tensor {
	stateDict := make(map[string]*tensor.Tensor)
	for i, layer := range n.layers {
		for _, p := range layer.Parameters() {
			stateDict[fmt.Sprintf("layers.%d.%s", i, p.Name())] = p.Tensor()
		}
	}
	return stateDict
}

// LoadStateDict copies parameter values from a state dictionary
// produced by StateDict on a network of identical architecture.
//
// Returns an error if a parameter is missing or has the wrong shape.
// Values are copied, so the caller keeps ownership of the dictionary.
func (n *Network) LoadStateDict(stateDict map[string]*tensor.Tensor) error {
	for i, layer := range n.layers {
		for _, p := range layer.Parameters() {
			key := fmt.Sprintf("layers.%d.%s", i, p.Name())
			src, ok := stateDict[key]
			if !ok {
				return fmt.Errorf("missing parameter %q in state dict", key)
			}
			if !src.Shape().Equal(p.Tensor().Shape()) {
				return fmt.Errorf("parameter %q shape mismatch: expected %v, got %v",
					key, p.Tensor().Shape(), src.Shape())
			}
			copy(p.Tensor().Data(), src.Data())
		}
	}
	return nil
}
