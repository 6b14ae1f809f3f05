package clipio

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strings"

	"facesynth/internal/pipeline"

	"github.com/sbinet/npyio/npy"
)

// ReadNPY decodes a float64 .npy array of shape [frames, markers, 3].
func ReadNPY(r io.Reader) (pipeline.Clip, error) {
	rd, err := npy.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("npy header: %w", err)
	}
	if rd.Header.Descr.Fortran {
		return nil, fmt.Errorf("fortran-ordered array: %w", ErrShape)
	}
	shape := rd.Header.Descr.Shape
	if len(shape) != 3 || shape[2] != 3 {
		return nil, fmt.Errorf("shape %v: %w", shape, ErrShape)
	}

	var data []float64
	if err := rd.Read(&data); err != nil {
		return nil, fmt.Errorf("npy data: %w", err)
	}
	return fromFlat(shape, data)
}

// npyAlign is the alignment numpy uses for the end of the header.
const npyAlign = 64

// WriteNPY encodes clip as a little-endian float64 .npy (format 1.0) array
// of shape [frames, markers, 3]. npyio's writer only emits one and two
// dimensional arrays, so the header is written here.
func WriteNPY(w io.Writer, clip pipeline.Clip) error {
	shape, data, err := flatten(clip)
	if err != nil {
		return err
	}

	dict := fmt.Sprintf("{'descr': '<f8', 'fortran_order': False, 'shape': (%d, %d, %d), }",
		shape[0], shape[1], shape[2])
	// magic(6) + version(2) + header length(2) + dict + padding + '\n'
	pre := 10
	pad := npyAlign - (pre+len(dict)+1)%npyAlign
	if pad == npyAlign {
		pad = 0
	}
	header := dict + strings.Repeat(" ", pad) + "\n"
	if len(header) > math.MaxUint16 {
		return fmt.Errorf("npy header of %d bytes: %w", len(header), ErrShape)
	}

	bw := bufio.NewWriter(w)
	bw.WriteString("\x93NUMPY")
	bw.Write([]byte{1, 0})
	var hlen [2]byte
	binary.LittleEndian.PutUint16(hlen[:], uint16(len(header)))
	bw.Write(hlen[:])
	bw.WriteString(header)

	var buf [8]byte
	for _, v := range data {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		if _, err := bw.Write(buf[:]); err != nil {
			return err
		}
	}
	return bw.Flush()
}
