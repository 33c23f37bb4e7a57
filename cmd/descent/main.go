// Package main provides the Descent CLI.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"

	"github.com/descent-ml/descent/internal/config"
	"github.com/descent-ml/descent/internal/data"
	"github.com/descent-ml/descent/internal/nn"
	"github.com/descent-ml/descent/internal/optim"
	"github.com/descent-ml/descent/internal/serialization"
	"github.com/descent-ml/descent/internal/trainer"
)

const version = "v0.1.0"

// Demo dataset dimensions: flattened 28x28 digit images, ten classes.
const (
	inputDim    = 784
	numClasses  = 10
	datasetSize = 5000
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "version":
		fmt.Printf("Descent %s\n", version)
	case "train":
		if err := runTrain(os.Args[2:]); err != nil {
			log.Fatal(err)
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("Descent - hand-derived gradient training for digit classifiers")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version    Show version")
	fmt.Println("  train      Train a classifier on a synthetic dataset")
	fmt.Println("")
	fmt.Println("Run 'descent train -h' for training flags.")
}

// runTrain wires config, data, trainer, and serialization into one
// training run over a synthetic digit-shaped dataset. No files are
// downloaded; the dataset is generated from the configured seed.
func runTrain(args []string) error {
	fs := flag.NewFlagSet("train", flag.ExitOnError)
	configPath := fs.String("config", "", "path to YAML config (defaults apply when empty)")
	epochs := fs.Int("epochs", 0, "override: number of training epochs")
	lr := fs.Float64("lr", 0, "override: SGD learning rate")
	batch := fs.Int("batch", 0, "override: batch size")
	report := fs.Int("report", 0, "override: steps between status lines")
	seed := fs.Int64("seed", 0, "override: rng seed")
	checkpoint := fs.String("checkpoint", "", "override: path to save the trained parameters")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	cfg.ApplyOverrides(config.Overrides{
		LearningRate: *lr,
		Epochs:       *epochs,
		BatchSize:    *batch,
		ReportEvery:  *report,
		Seed:         *seed,
		Checkpoint:   *checkpoint,
	})
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))

	log.Printf("dataset: synthetic, samples=%d features=%d classes=%d seed=%d",
		datasetSize, inputDim, numClasses, cfg.Seed)
	set := data.SyntheticClassification(datasetSize, inputDim, numClasses, rng)
	trainSet, testSet, err := set.Split(0.1)
	if err != nil {
		return err
	}

	loader, err := data.NewLoader(trainSet, cfg.BatchSize, true, rng)
	if err != nil {
		return err
	}

	net, err := nn.NewMLP(inputDim, cfg.HiddenSizes, numClasses, rng)
	if err != nil {
		return err
	}
	criterion := nn.NewSoftmaxCrossEntropy()
	opt := optim.NewSGD(net.Parameters(), optim.SGDConfig{LR: float32(cfg.LearningRate)})

	log.Printf("model: %d-%v-%d lr=%g epochs=%d batch_size=%d",
		inputDim, cfg.HiddenSizes, numClasses, cfg.LearningRate, cfg.Epochs, cfg.BatchSize)
	summary, err := trainer.Run(net, criterion, opt, loader, trainer.RunConfig{
		Epochs:      cfg.Epochs,
		ReportEvery: cfg.ReportEvery,
	})
	if err != nil {
		return fmt.Errorf("training failed: %w", err)
	}
	log.Printf("training done: steps=%d loss %.4f -> %.4f",
		summary.Steps, summary.InitialLoss, summary.FinalLoss)

	testLoader, err := data.NewLoader(testSet, min(cfg.BatchSize, testSet.Len()), false, nil)
	if err != nil {
		return err
	}
	result, err := trainer.Evaluate(net, criterion, testLoader)
	if err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}
	log.Printf("test: samples=%d loss=%.4f accuracy=%.2f%%",
		result.Samples, result.MeanLoss, result.Accuracy*100)

	if err := showSamplePredictions(net, testSet); err != nil {
		return err
	}

	if cfg.Checkpoint != "" {
		if err := serialization.SaveNetwork(cfg.Checkpoint, net); err != nil {
			return fmt.Errorf("save checkpoint: %w", err)
		}
		log.Printf("checkpoint saved: %s", cfg.Checkpoint)
	}
	return nil
}

// showSamplePredictions prints predicted vs actual labels, with the
// softmax confidence, for the first few held-out samples.
func showSamplePredictions(net *nn.Network, testSet *data.Set) error {
	n := 8
	if testSet.Len() < n {
		n = testSet.Len()
	}
	loader, err := data.NewLoader(testSet, n, false, nil)
	if err != nil {
		return err
	}
	batch, ok := loader.Next()
	if !ok {
		return errors.New("test set yielded no batch")
	}

	probs, err := net.Probabilities(batch.Inputs)
	if err != nil {
		return err
	}

	fmt.Println("sample predictions:")
	for i := 0; i < batch.Size(); i++ {
		pred, conf := 0, float32(0)
		for c := 0; c < probs.Cols(); c++ {
			if p := probs.At(i, c); p > conf {
				pred, conf = c, p
			}
		}
		status := "ok"
		if pred != batch.Labels[i] {
			status = "MISS"
		}
		fmt.Printf("  sample %d: predicted=%d actual=%d confidence=%.1f%% %s\n",
			i, pred, batch.Labels[i], conf*100, status)
	}
	return nil
}
