package serialization

import (
	"fmt"
	"strings"
)

// maxTensorNameLen bounds tensor names read from or written to a file.
const maxTensorNameLen = 256

// ValidationError describes a rejected tensor name.
type ValidationError struct {
	Type    string // "empty_name", "name_too_long", "invalid_name"
	Tensor  string
	Details string
}

func (e *ValidationError) Error() string {
	if e.Details == "" {
		return fmt.Sprintf("safetensors: %s: tensor %q", e.Type, e.Tensor)
	}
	return fmt.Sprintf("safetensors: %s: tensor %q: %s", e.Type, e.Tensor, e.Details)
}

// Unwrap makes every ValidationError match ErrInvalidName.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidName
}

// validateTensorName rejects names that collide with the metadata key or
// could be misused as paths by tools that extract tensors to files.
func validateTensorName(name string) error {
	switch {
	case name == "":
		return &ValidationError{Type: "empty_name", Tensor: name}
	case len(name) > maxTensorNameLen:
		return &ValidationError{
			Type:    "name_too_long",
			Tensor:  name[:32] + "...",
			Details: fmt.Sprintf("length %d > max %d", len(name), maxTensorNameLen),
		}
	case name == metadataKey:
		return &ValidationError{Type: "invalid_name", Tensor: name, Details: "reserved for metadata"}
	case strings.Contains(name, ".."):
		return &ValidationError{Type: "invalid_name", Tensor: name, Details: "contains '..'"}
	case strings.ContainsAny(name, "/\\"):
		return &ValidationError{Type: "invalid_name", Tensor: name, Details: "contains path separator"}
	case strings.ContainsRune(name, 0):
		return &ValidationError{Type: "invalid_name", Tensor: name, Details: "contains null byte"}
	}
	return nil
}
