// Package config resolves the settings of a training run from defaults,
// an optional env file, DNN_* environment variables and CLI overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/born-ml/dnn/internal/nn"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "DNN_"

// Config captures the runtime knobs for a training run.
type Config struct {
	DataDir      string
	Synthetic    bool
	MaxSamples   int
	Hidden       []int
	Activation   nn.Activation
	Init         nn.Initializer
	Epochs       int
	BatchSize    int
	LearningRate float64
	Seed         uint64
	Validation   float64
	Workers      int
}

// Overrides captures CLI supplied values.
type Overrides struct {
	DataDir      string
	Synthetic    bool
	MaxSamples   int
	Hidden       []int
	Epochs       int
	BatchSize    int
	LearningRate float64
	Seed         uint64
	Validation   float64
	Workers      int
}

// Default returns the settings of the reference MNIST run: two ReLU
// hidden layers of 60 and 30 units, 10 epochs of batch 64 at rate 0.01.
func Default() *Config {
	return &Config{
		DataDir:      "./data",
		Hidden:       []int{60, 30},
		Activation:   nn.ReLU,
		Init:         nn.InitXavier,
		Epochs:       10,
		BatchSize:    64,
		LearningRate: 0.01,
		Validation:   0.2,
	}
}

// Load returns the default config updated from the env file at path and
// then from DNN_* environment variables, which take precedence. With an
// empty path the nearest .env in the working directory or up to five
// parents is used, if any.
func Load(path string) (*Config, error) {
	var (
		file map[string]string
		err  error
	)
	if path != "" {
		file, err = godotenv.Read(path)
		if err != nil {
			return nil, fmt.Errorf("read env file: %w", err)
		}
	} else if found := findEnvFile(); found != "" {
		file, err = godotenv.Read(found)
		if err != nil {
			return nil, fmt.Errorf("read env file %s: %w", found, err)
		}
	}

	cfg := Default()
	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := file[key]
		return v, ok
	}
	if err := cfg.apply(lookup); err != nil {
		return nil, err
	}
	return cfg, nil
}

// findEnvFile looks up to 5 levels for a .env file.
func findEnvFile() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for i := 0; i < 5; i++ {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

func (c *Config) apply(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(EnvPrefix + key); ok && v != "" {
			*dst = v
		}
	}
	num := func(key string, parse func(string) error) error {
		v, ok := lookup(EnvPrefix + key)
		if !ok || strings.TrimSpace(v) == "" {
			return nil
		}
		if err := parse(strings.TrimSpace(v)); err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
		}
		return nil
	}

	str("DATA_DIR", &c.DataDir)
	return errors.Join(
		num("SYNTHETIC", boolVar(&c.Synthetic)),
		num("MAX_SAMPLES", intVar(&c.MaxSamples)),
		num("HIDDEN", func(v string) (err error) {
			c.Hidden, err = ParseHidden(v)
			return err
		}),
		num("ACTIVATION", func(v string) (err error) {
			c.Activation, err = nn.ParseActivation(v)
			return err
		}),
		num("INIT", func(v string) (err error) {
			c.Init, err = nn.ParseInitializer(v)
			return err
		}),
		num("EPOCHS", intVar(&c.Epochs)),
		num("BATCH_SIZE", intVar(&c.BatchSize)),
		num("LEARNING_RATE", floatVar(&c.LearningRate)),
		num("SEED", func(v string) (err error) {
			c.Seed, err = strconv.ParseUint(v, 10, 64)
			return err
		}),
		num("VALIDATION", floatVar(&c.Validation)),
		num("WORKERS", intVar(&c.Workers)),
	)
}

func intVar(p *int) func(string) error {
	return func(v string) (err error) {
		*p, err = strconv.Atoi(v)
		return err
	}
}

func floatVar(p *float64) func(string) error {
	return func(v string) (err error) {
		*p, err = strconv.ParseFloat(v, 64)
		return err
	}
}

func boolVar(p *bool) func(string) error {
	return func(v string) (err error) {
		*p, err = strconv.ParseBool(v)
		return err
	}
}

// ParseHidden parses a comma-separated list of hidden layer widths such
// as "60,30". An empty string yields no hidden layers.
func ParseHidden(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return []int{}, nil
	}
	parts := strings.Split(s, ",")
	widths := make([]int, 0, len(parts))
	for _, p := range parts {
		w, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("hidden width %q: %w", p, err)
		}
		widths = append(widths, w)
	}
	return widths, nil
}

// ApplyOverrides updates c using any non-zero override.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.DataDir != "" {
		c.DataDir = o.DataDir
	}
	if o.Synthetic {
		c.Synthetic = true
	}
	if o.MaxSamples > 0 {
		c.MaxSamples = o.MaxSamples
	}
	if o.Hidden != nil {
		c.Hidden = o.Hidden
	}
	if o.Epochs > 0 {
		c.Epochs = o.Epochs
	}
	if o.BatchSize > 0 {
		c.BatchSize = o.BatchSize
	}
	if o.LearningRate > 0 {
		c.LearningRate = o.LearningRate
	}
	if o.Seed != 0 {
		c.Seed = o.Seed
	}
	if o.Validation > 0 {
		c.Validation = o.Validation
	}
	if o.Workers > 0 {
		c.Workers = o.Workers
	}
}

// Validate verifies the config is runnable.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if !c.Synthetic && c.DataDir == "" {
		return errors.New("data dir must be set unless synthetic data is used")
	}
	for i, w := range c.Hidden {
		if w <= 0 {
			return fmt.Errorf("hidden[%d] must be > 0 (got %d)", i, w)
		}
	}
	if c.MaxSamples < 0 {
		return fmt.Errorf("max_samples must be >= 0 (got %d)", c.MaxSamples)
	}
	if c.Epochs < 0 {
		return fmt.Errorf("epochs must be >= 0 (got %d)", c.Epochs)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be > 0 (got %d)", c.BatchSize)
	}
	if !(c.LearningRate > 0) {
		return fmt.Errorf("learning_rate must be > 0 (got %v)", c.LearningRate)
	}
	if c.Validation < 0 || c.Validation >= 1 {
		return fmt.Errorf("validation must be in [0, 1) (got %v)", c.Validation)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0 (got %d)", c.Workers)
	}
	return nil
}
