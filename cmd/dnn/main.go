// Package main provides the dnn command: it trains a dense ReLU classifier
// on MNIST and reports per-epoch accuracy.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"strings"

	"github.com/born-ml/dnn/internal/config"
	"github.com/born-ml/dnn/internal/dnn"
	"github.com/born-ml/dnn/internal/metrics"
	"github.com/born-ml/dnn/internal/mnist"
	"github.com/born-ml/dnn/internal/nn"
	"github.com/born-ml/dnn/internal/parallel"
)

const version = "v0.1.0-dev"

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, stdout io.Writer) error {
	if len(args) > 0 && args[0] == "version" {
		fmt.Fprintf(stdout, "dnn %s\n", version)
		return nil
	}
	if len(args) > 0 && args[0] == "train" {
		args = args[1:]
	}

	cfg, err := parseConfig(args)
	if err != nil {
		return err
	}

	train, val, err := loadData(cfg)
	if err != nil {
		return err
	}
	log.Printf("train: %d samples, validation: %d samples", train.NumSamples(), val.NumSamples())

	model, err := buildModel(cfg, train.NumFeatures())
	if err != nil {
		return err
	}
	log.Printf("model: %d layers, %d trainable parameters", model.Layers(), model.NumParameters())

	err = model.Train(train.Images, train.Labels, cfg.Epochs, cfg.BatchSize, cfg.LearningRate,
		func(s dnn.EpochStats, m dnn.Inferer) error {
			trainAcc, err := accuracy(m, train)
			if err != nil {
				return err
			}
			line := fmt.Sprintf("epoch %d/%d: loss=%.4f samples/s=%.0f train_acc=%.2f%%",
				s.Epoch, cfg.Epochs, s.Loss, s.SamplesPerSec, trainAcc*100)
			if val.NumSamples() > 0 {
				valAcc, err := accuracy(m, val)
				if err != nil {
					return err
				}
				line += fmt.Sprintf(" val_acc=%.2f%%", valAcc*100)
			}
			log.Print(line)
			return nil
		})
	if err != nil {
		return err
	}
	log.Printf("training complete")
	return nil
}

func parseConfig(args []string) (*config.Config, error) {
	fset := flag.NewFlagSet("dnn", flag.ContinueOnError)
	var (
		o       config.Overrides
		envFile string
		hidden  string
	)
	fset.StringVar(&envFile, "env", "", "Env file with DNN_* settings (default: nearest .env)")
	fset.StringVar(&o.DataDir, "data", "", "Directory containing MNIST IDX files")
	fset.BoolVar(&o.Synthetic, "synthetic", false, "Use synthetic data (for testing without MNIST files)")
	fset.IntVar(&o.MaxSamples, "samples", 0, "Max samples to load (0 = all)")
	fset.StringVar(&hidden, "hidden", "", "Comma-separated hidden layer widths (default 60,30)")
	fset.IntVar(&o.Epochs, "epochs", 0, "Number of training epochs (default 10)")
	fset.IntVar(&o.BatchSize, "batch", 0, "Batch size for training (default 64)")
	fset.Float64Var(&o.LearningRate, "lr", 0, "Learning rate (default 0.01)")
	fset.Uint64Var(&o.Seed, "seed", 0, "Random seed (0 = time based)")
	fset.Float64Var(&o.Validation, "val", 0, "Fraction of samples held out for validation (default 0.2)")
	fset.IntVar(&o.Workers, "workers", 0, "Goroutines for row-wise work (0 = one per CPU)")
	if err := fset.Parse(args); err != nil {
		return nil, err
	}

	if strings.TrimSpace(hidden) != "" {
		widths, err := config.ParseHidden(hidden)
		if err != nil {
			return nil, err
		}
		o.Hidden = widths
	}

	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}
	cfg.ApplyOverrides(o)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func loadData(cfg *config.Config) (train, val *mnist.Dataset, err error) {
	var all *mnist.Dataset
	if cfg.Synthetic {
		n := cfg.MaxSamples
		if n == 0 {
			n = 1000
		}
		log.Printf("using %d synthetic samples", n)
		all = mnist.Synthetic(n, cfg.Seed)
	} else {
		log.Printf("loading MNIST from %s", cfg.DataDir)
		all, err = mnist.Load(cfg.DataDir, true, cfg.MaxSamples)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, fmt.Errorf("%w\n\nDownload train-images-idx3-ubyte.gz and train-labels-idx1-ubyte.gz "+
				"into %s, or run with -synthetic", err, cfg.DataDir)
		}
		if err != nil {
			return nil, nil, fmt.Errorf("load MNIST: %w", err)
		}
	}

	train, val = all.Split(cfg.Validation)
	return train, val, nil
}

// buildModel stacks in -> hidden... (activation) -> 10.
func buildModel(cfg *config.Config, in int) (*dnn.Classifier, error) {
	model := dnn.New(dnn.Config{
		Seed:     cfg.Seed,
		Init:     cfg.Init,
		Parallel: workers(cfg.Workers),
	})
	for _, width := range cfg.Hidden {
		if err := model.AddDense(in, width, cfg.Activation); err != nil {
			return nil, err
		}
		in = width
	}
	if err := model.AddDense(in, mnist.NumClasses, nn.NoActivation); err != nil {
		return nil, err
	}
	return model, model.Validate()
}

func workers(n int) parallel.Config {
	if n == 0 {
		return parallel.DefaultConfig()
	}
	return parallel.DefaultConfig().WithWorkers(n)
}

func accuracy(m dnn.Inferer, d *mnist.Dataset) (float64, error) {
	pred, err := m.Infer(d.Images)
	if err != nil {
		return 0, err
	}
	return metrics.Accuracy(pred, d.Labels)
}
