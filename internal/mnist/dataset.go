// Package mnist loads the MNIST handwritten digit dataset from its IDX
// files and provides a synthetic stand-in for runs without the files.
package mnist

import (
	"bufio"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math/rand/v2"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/mat"
)

// Image geometry and class count of MNIST.
const (
	ImageSide  = 28
	NumPixels  = ImageSide * ImageSide
	NumClasses = 10
)

// Dataset holds images as rows of a matrix, scaled to [0, 1], and their
// labels.
type Dataset struct {
	Images *mat.Dense // [num_samples, num_pixels]
	Labels []int      // [num_samples]
}

// NumSamples returns the total number of samples in the dataset.
func (d *Dataset) NumSamples() int {
	return len(d.Labels)
}

// NumFeatures returns the number of values per sample.
func (d *Dataset) NumFeatures() int {
	if d.Images == nil || d.Images.IsEmpty() {
		return 0
	}
	_, c := d.Images.Dims()
	return c
}

// Split splits the dataset into train and validation sets.
//
// The last validationRatio fraction of samples becomes the validation set.
// Both halves are views sharing d's storage.
func (d *Dataset) Split(validationRatio float64) (train, validation *Dataset) {
	validationRatio = max(0, min(1, validationRatio))
	n := d.NumSamples()
	splitIdx := int(float64(n) * (1.0 - validationRatio))

	return &Dataset{
			Images: d.rows(0, splitIdx),
			Labels: d.Labels[:splitIdx],
		}, &Dataset{
			Images: d.rows(splitIdx, n),
			Labels: d.Labels[splitIdx:],
		}
}

// rows returns a view of rows [lo, hi). gonum rejects zero-length views,
// so an empty range yields an empty matrix.
func (d *Dataset) rows(lo, hi int) *mat.Dense {
	if lo >= hi {
		return &mat.Dense{}
	}
	_, c := d.Images.Dims()
	return d.Images.Slice(lo, hi, 0, c).(*mat.Dense)
}

// Load loads MNIST data from the official IDX files in dataDir.
//
// Expected files in dataDir, optionally gzipped with a .gz suffix:
//   - train-images-idx3-ubyte (or t10k-images-idx3-ubyte for test)
//   - train-labels-idx1-ubyte (or t10k-labels-idx1-ubyte for test)
//
// maxSamples limits the number of samples kept (0 = all).
func Load(dataDir string, train bool, maxSamples int) (*Dataset, error) {
	prefix := "t10k"
	if train {
		prefix = "train"
	}

	var images *Images
	err := readFile(filepath.Join(dataDir, prefix+"-images-idx3-ubyte"), func(r io.Reader) (err error) {
		images, err = ReadImages(r)
		return err
	})
	if err != nil {
		return nil, err
	}
	var labels []byte
	err = readFile(filepath.Join(dataDir, prefix+"-labels-idx1-ubyte"), func(r io.Reader) (err error) {
		labels, err = ReadLabels(r)
		return err
	})
	if err != nil {
		return nil, err
	}

	return FromIDX(images, labels, maxSamples)
}

// FromIDX builds a normalized dataset from decoded IDX content.
func FromIDX(images *Images, labels []byte, maxSamples int) (*Dataset, error) {
	if len(images.Pixels) != len(labels) {
		return nil, fmt.Errorf("mnist: image count (%d) != label count (%d)", len(images.Pixels), len(labels))
	}
	n := len(labels)
	if maxSamples > 0 && n > maxSamples {
		n = maxSamples
	}
	if n == 0 {
		return nil, errors.New("mnist: dataset is empty")
	}

	features := images.Rows * images.Cols
	data := make([]float64, n*features)
	out := make([]int, n)
	for i := 0; i < n; i++ {
		row := data[i*features : (i+1)*features]
		for j, px := range images.Pixels[i] {
			row[j] = float64(px) / 255.0
		}
		out[i] = int(labels[i])
	}

	return &Dataset{
		Images: mat.NewDense(n, features, data),
		Labels: out,
	}, nil
}

// readFile opens name, or name.gz when only the compressed file exists,
// and hands a buffered reader to fn.
func readFile(name string, fn func(io.Reader) error) error {
	f, err := os.Open(name)
	gzipped := false
	if errors.Is(err, fs.ErrNotExist) {
		var gzErr error
		if f, gzErr = os.Open(name + ".gz"); gzErr == nil {
			err, gzipped = nil, true
		}
	}
	if err != nil {
		return err
	}
	defer f.Close()

	var r io.Reader = bufio.NewReader(f)
	if gzipped {
		zr, err := gzip.NewReader(r)
		if err != nil {
			return fmt.Errorf("%s: %w", f.Name(), err)
		}
		defer zr.Close()
		r = zr
	}
	if err := fn(r); err != nil {
		return fmt.Errorf("%s: %w", f.Name(), err)
	}
	return nil
}

// Synthetic generates n samples of 10 simple patterns, one per digit.
//
// Digit k lights a horizontal band starting at row 2k; low-amplitude noise
// is added to every pixel. This is NOT realistic MNIST data, just enough
// for exercising the training pipeline.
func Synthetic(n int, seed uint64) *Dataset {
	if n <= 0 {
		return &Dataset{Images: &mat.Dense{}}
	}
	rng := rand.New(rand.NewPCG(seed, seed+1))
	data := make([]float64, n*NumPixels)
	labels := make([]int, n)

	for i := 0; i < n; i++ {
		digit := i % NumClasses
		labels[i] = digit
		img := data[i*NumPixels : (i+1)*NumPixels]
		for j := range img {
			img[j] = 0.1 * rng.Float64()
		}
		startRow := digit * 2 // 0, 2, 4, ..., 18
		for row := startRow; row < startRow+8 && row < ImageSide; row++ {
			for col := 5; col < 23; col++ {
				img[row*ImageSide+col] += 0.8
			}
		}
	}

	return &Dataset{
		Images: mat.NewDense(n, NumPixels, data),
		Labels: labels,
	}
}
