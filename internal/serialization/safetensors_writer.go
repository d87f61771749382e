package serialization

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"sort"

	"github.com/born-ml/einsum/internal/tensor"
)

// WriteSafeTensors writes arrays to w in SafeTensors format.
// Tensors are written in alphabetical order by name. The SHA-256 of the
// data section is stored in the metadata under "sha256".
func WriteSafeTensors[T tensor.Numeric](w io.Writer, tensors map[string]*tensor.Dense[T], metadata map[string]string) error {
	names := make([]string, 0, len(tensors))
	for name := range tensors {
		if err := validateTensorName(name); err != nil {
			return err
		}
		names = append(names, name)
	}
	sort.Strings(names)

	hdr := make(map[string]any, len(tensors)+1)

	dtype := dtypeToSafeTensors(tensor.DataTypeOf[T]())
	var data bytes.Buffer
	for _, name := range names {
		d := tensors[name]
		start := int64(data.Len())
		if err := binary.Write(&data, binary.LittleEndian, d.Values()); err != nil {
			return fmt.Errorf("failed to encode tensor %s: %w", name, err)
		}

		shape := d.Shape()
		shape64 := make([]int64, len(shape))
		for i, dim := range shape {
			shape64[i] = int64(dim)
		}
		hdr[name] = TensorInfo{
			DType:       dtype,
			Shape:       shape64,
			DataOffsets: [2]int64{start, int64(data.Len())},
		}
	}

	meta := make(map[string]string, len(metadata)+1)
	maps.Copy(meta, metadata)
	meta[checksumKey] = computeChecksum(data.Bytes())
	hdr[metadataKey] = meta

	headerJSON, err := json.Marshal(hdr)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}

	if err := binary.Write(w, binary.LittleEndian, uint64(len(headerJSON))); err != nil {
		return fmt.Errorf("failed to write header size: %w", err)
	}
	if _, err := w.Write(headerJSON); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if _, err := data.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write tensor data: %w", err)
	}
	return nil
}

// SaveSafeTensors writes arrays to a SafeTensors file at path.
func SaveSafeTensors[T tensor.Numeric](path string, tensors map[string]*tensor.Dense[T], metadata map[string]string) (err error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for saving results
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	return WriteSafeTensors(file, tensors, metadata)
}
