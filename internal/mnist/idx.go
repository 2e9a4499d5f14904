package mnist

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// IDX magic numbers.
const (
	imageMagic = 2051 // 0x00000803
	labelMagic = 2049 // 0x00000801
)

// maxItems bounds the item count read from a header before allocating.
const maxItems = 1 << 24

// ErrInvalidMagic is returned when an IDX header does not carry the
// expected magic number.
var ErrInvalidMagic = errors.New("mnist: invalid IDX magic number")

// Images is the content of an IDX image file.
type Images struct {
	Rows   int
	Cols   int
	Pixels [][]byte // one Rows*Cols slice per image, 0-255
}

// ReadImages reads an IDX image file.
//
// IDX file format for images:
//
//	magic number: 0x00000803 (2051)
//	number of images: 4 bytes
//	number of rows: 4 bytes (28)
//	number of cols: 4 bytes (28)
//	pixel data: unsigned bytes (0-255)
//
// All integers are big-endian.
func ReadImages(r io.Reader) (*Images, error) {
	var header [4]uint32
	if err := binary.Read(r, binary.BigEndian, &header); err != nil {
		return nil, fmt.Errorf("read image header: %w", err)
	}
	if header[0] != imageMagic {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidMagic, header[0], imageMagic)
	}
	count, rows, cols := header[1], header[2], header[3]
	if count > maxItems || rows == 0 || cols == 0 || rows > 1<<12 || cols > 1<<12 {
		return nil, fmt.Errorf("mnist: implausible image header %d×%d×%d", count, rows, cols)
	}

	imageSize := int(rows * cols)
	images := &Images{
		Rows:   int(rows),
		Cols:   int(cols),
		Pixels: make([][]byte, count),
	}
	for i := range images.Pixels {
		images.Pixels[i] = make([]byte, imageSize)
		if _, err := io.ReadFull(r, images.Pixels[i]); err != nil {
			return nil, fmt.Errorf("read image %d: %w", i, err)
		}
	}
	return images, nil
}

// ReadLabels reads an IDX label file.
//
// IDX file format for labels:
//
//	magic number: 0x00000801 (2049)
//	number of labels: 4 bytes
//	label data: unsigned bytes (0-9)
func ReadLabels(r io.Reader) ([]byte, error) {
	var header [2]uint32
	if err := binary.Read(r, binary.BigEndian, &header); err != nil {
		return nil, fmt.Errorf("read label header: %w", err)
	}
	if header[0] != labelMagic {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidMagic, header[0], labelMagic)
	}
	if header[1] > maxItems {
		return nil, fmt.Errorf("mnist: implausible label count %d", header[1])
	}

	labels := make([]byte, header[1])
	if _, err := io.ReadFull(r, labels); err != nil {
		return nil, fmt.Errorf("read labels: %w", err)
	}
	return labels, nil
}
