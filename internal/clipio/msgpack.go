package clipio

import (
	"fmt"
	"io"

	"facesynth/internal/pipeline"

	"github.com/vmihailenco/msgpack/v5"
)

// clipDoc is the msgpack layout of a clip: the array shape and its values in
// row-major order.
type clipDoc struct {
	Shape []int     `msgpack:"shape"`
	Data  []float64 `msgpack:"data"`
}

// ReadMsgpack decodes a clip written by WriteMsgpack.
func ReadMsgpack(r io.Reader) (pipeline.Clip, error) {
	var doc clipDoc
	if err := msgpack.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("msgpack decode: %w", err)
	}
	return fromFlat(doc.Shape, doc.Data)
}

// WriteMsgpack encodes clip as a {shape, data} msgpack map.
func WriteMsgpack(w io.Writer, clip pipeline.Clip) error {
	shape, data, err := flatten(clip)
	if err != nil {
		return err
	}
	return msgpack.NewEncoder(w).Encode(clipDoc{Shape: shape, Data: data})
}
