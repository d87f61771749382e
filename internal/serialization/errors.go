package serialization

import "errors"

// Common errors.
var (
	ErrHeaderTooLarge   = errors.New("safetensors: header exceeds maximum size")
	ErrInvalidHeader    = errors.New("safetensors: invalid header")
	ErrOutOfBounds      = errors.New("safetensors: tensor extends beyond data section")
	ErrDTypeMismatch    = errors.New("safetensors: dtype mismatch")
	ErrUnknownDType     = errors.New("safetensors: unsupported dtype")
	ErrTensorNotFound   = errors.New("safetensors: tensor not found")
	ErrChecksumMismatch = errors.New("safetensors: checksum mismatch")
	ErrInvalidName      = errors.New("safetensors: invalid tensor name")
	ErrClosed           = errors.New("safetensors: file is closed")
)
