// Package serialization reads and writes dense arrays in the SafeTensors format.
//
// Format:
//
//	[8 bytes: header_size (uint64 LE)]
//	[header_size bytes: JSON header]
//	[tensor data: raw little-endian bytes]
//
// The header maps tensor names to dtype, shape and data offsets, plus an
// optional "__metadata__" object of string pairs. This lets einsum operands be
// exchanged with numpy, PyTorch and the HuggingFace tooling.
package serialization
