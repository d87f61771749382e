package serialization

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/edsrzf/mmap-go"

	"github.com/born-ml/einsum/internal/tensor"
)

// File is a parsed SafeTensors file. Its data section is either read into
// memory (ReadSafeTensors) or memory-mapped (OpenSafeTensors).
type File struct {
	header  header
	data    []byte
	mapping mmap.MMap
	closed  bool
}

// ReadSafeTensors parses a SafeTensors stream.
// Every tensor entry is validated against the data section, and the data
// checksum verified when present, before returning.
func ReadSafeTensors(r io.Reader) (*File, error) {
	var headerSize uint64
	if err := binary.Read(r, binary.LittleEndian, &headerSize); err != nil {
		return nil, fmt.Errorf("failed to read header size: %w", err)
	}
	if headerSize > maxHeaderSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrHeaderTooLarge, headerSize)
	}

	headerBytes := make([]byte, headerSize)
	if _, err := io.ReadFull(r, headerBytes); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read tensor data: %w", err)
	}
	return newFile(headerBytes, data)
}

// OpenSafeTensors memory-maps a SafeTensors file. The caller must Close it;
// arrays returned by Load are copies and stay valid afterwards.
func OpenSafeTensors(path string) (*File, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for loading operands
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		_ = file.Close() // The mapping outlives the descriptor
	}()

	stat, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if stat.Size() < 8 {
		return nil, fmt.Errorf("%w: file too small: %d bytes", ErrInvalidHeader, stat.Size())
	}

	m, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("mmap failed: %w", err)
	}

	headerSize := binary.LittleEndian.Uint64(m[:8])
	if headerSize > maxHeaderSize {
		_ = m.Unmap()
		return nil, fmt.Errorf("%w: %d bytes", ErrHeaderTooLarge, headerSize)
	}
	if 8+headerSize > uint64(len(m)) {
		_ = m.Unmap()
		return nil, fmt.Errorf("%w: header extends beyond file: header_end=%d, file_size=%d",
			ErrInvalidHeader, 8+headerSize, len(m))
	}

	f, err := newFile(m[8:8+headerSize], m[8+headerSize:])
	if err != nil {
		_ = m.Unmap()
		return nil, err
	}
	f.mapping = m
	return f, nil
}

func newFile(headerBytes, data []byte) (*File, error) {
	var h header
	if err := json.Unmarshal(headerBytes, &h); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidHeader, err)
	}

	f := &File{header: h, data: data}
	for _, name := range f.Names() {
		if err := f.validate(name); err != nil {
			return nil, err
		}
	}
	if err := verifyChecksum(h.Metadata, data); err != nil {
		return nil, err
	}
	return f, nil
}

// Close releases the memory mapping, if any. It is safe to call twice.
func (f *File) Close() error {
	if f.mapping == nil {
		return nil
	}
	err := f.mapping.Unmap()
	f.mapping = nil
	f.data = nil
	f.closed = true
	return err
}

// Names returns the tensor names in alphabetical order.
func (f *File) Names() []string {
	names := make([]string, 0, len(f.header.Tensors))
	for name := range f.header.Tensors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Metadata returns the "__metadata__" entries, or nil.
func (f *File) Metadata() map[string]string {
	return f.header.Metadata
}

// Info returns the header entry of a tensor.
func (f *File) Info(name string) (TensorInfo, error) {
	info, ok := f.header.Tensors[name]
	if !ok {
		return TensorInfo{}, fmt.Errorf("%w: %q", ErrTensorNotFound, name)
	}
	return info, nil
}

func (f *File) validate(name string) error {
	if err := validateTensorName(name); err != nil {
		return err
	}
	info := f.header.Tensors[name]

	dtype, err := dtypeFromSafeTensors(info.DType)
	if err != nil {
		return fmt.Errorf("tensor %q: %w", name, err)
	}

	elements := int64(1)
	for _, dim := range info.Shape {
		if dim <= 0 {
			return fmt.Errorf("%w: tensor %q has dimension %d", ErrInvalidHeader, name, dim)
		}
		// Every element takes at least one byte, so a larger count cannot fit.
		if dim > int64(len(f.data))/elements {
			return fmt.Errorf("%w: tensor %q shape %v exceeds data section of %d bytes",
				ErrOutOfBounds, name, info.Shape, len(f.data))
		}
		elements *= dim
	}

	start, end := info.DataOffsets[0], info.DataOffsets[1]
	if start < 0 || end < start || end > int64(len(f.data)) {
		return fmt.Errorf("%w: tensor %q spans [%d, %d), data section has %d bytes",
			ErrOutOfBounds, name, start, end, len(f.data))
	}
	if end-start != elements*int64(dtype.Size()) {
		return fmt.Errorf("%w: tensor %q has %d bytes for %d %s elements",
			ErrInvalidHeader, name, end-start, elements, dtype)
	}
	return nil
}

// Load decodes the named tensor as an array of T.
// It fails with ErrDTypeMismatch if the stored dtype is not T's.
func Load[T tensor.Numeric](f *File, name string) (*tensor.Dense[T], error) {
	if f.closed {
		return nil, ErrClosed
	}
	info, err := f.Info(name)
	if err != nil {
		return nil, err
	}

	want := tensor.DataTypeOf[T]()
	if got := dtypeToSafeTensors(want); got != info.DType {
		return nil, fmt.Errorf("%w: tensor %q is %s, requested %s", ErrDTypeMismatch, name, info.DType, want)
	}

	shape := make(tensor.Shape, len(info.Shape))
	for i, dim := range info.Shape {
		shape[i] = int(dim)
	}

	values := make([]T, shape.NumElements())
	raw := f.data[info.DataOffsets[0]:info.DataOffsets[1]]
	if err := binary.Read(bytes.NewReader(raw), binary.LittleEndian, values); err != nil {
		return nil, fmt.Errorf("failed to decode tensor %q: %w", name, err)
	}
	return tensor.FromSlice(values, shape)
}
