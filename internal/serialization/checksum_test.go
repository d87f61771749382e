package serialization

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/einsum/internal/tensor"
)

func TestComputeChecksum(t *testing.T) {
	a := computeChecksum([]byte("test data"))
	assert.Equal(t, a, computeChecksum([]byte("test data")))
	assert.NotEqual(t, a, computeChecksum([]byte("different data")))
	assert.Len(t, a, 64)
}

func TestVerifyChecksum(t *testing.T) {
	data := []byte{1, 2, 3}
	assert.NoError(t, verifyChecksum(nil, data))
	assert.NoError(t, verifyChecksum(map[string]string{checksumKey: computeChecksum(data)}, data))
	assert.ErrorIs(t, verifyChecksum(map[string]string{checksumKey: "00"}, data), ErrChecksumMismatch)
}

func TestReadSafeTensors_DetectsCorruption(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSafeTensors(&buf, map[string]*tensor.Dense[int32]{
		"x": mustDense(t, []int32{1, 2, 3, 4}, 4),
	}, nil))

	raw := buf.Bytes()
	raw[len(raw)-1] ^= 0xff

	_, err := ReadSafeTensors(bytes.NewReader(raw))
	assert.ErrorIs(t, err, ErrChecksumMismatch)
}

func TestValidateTensorName(t *testing.T) {
	valid := []string{"A", "weights.0", "layer_1.bias"}
	for _, name := range valid {
		assert.NoError(t, validateTensorName(name), name)
	}

	invalid := map[string]string{
		"":                       "empty_name",
		strings.Repeat("a", 300): "name_too_long",
		metadataKey:              "invalid_name",
		"../etc/passwd":          "invalid_name",
		"dir/file":               "invalid_name",
		`dir\file`:               "invalid_name",
		"null\x00byte":           "invalid_name",
	}
	for name, kind := range invalid {
		err := validateTensorName(name)
		require.ErrorIs(t, err, ErrInvalidName)
		var ve *ValidationError
		require.True(t, errors.As(err, &ve))
		assert.Equal(t, kind, ve.Type)
	}
}

func TestWriteSafeTensors_RejectsInvalidName(t *testing.T) {
	var buf bytes.Buffer
	err := WriteSafeTensors(&buf, map[string]*tensor.Dense[float32]{
		"../x": tensor.Scalar[float32](1),
	}, nil)
	assert.ErrorIs(t, err, ErrInvalidName)
	assert.Zero(t, buf.Len())
}
