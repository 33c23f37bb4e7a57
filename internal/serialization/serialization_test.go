package serialization

import (
	"encoding/binary"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/descent-ml/descent/internal/nn"
	"github.com/descent-ml/descent/internal/tensor"
)

func newTestNetwork(t *testing.T, seed int64) *nn.Network {
	t.Helper()
	net, err := nn.NewMLP(4, []int{3}, 2, rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatalf("Failed to create network: %v", err)
	}
	return net
}

// retamper mutates an encoded file in place and recomputes the trailing
// checksum, so tests can reach the checks that come after checksum
// validation.
func retamper(data []byte, mutate func([]byte)) []byte {
	tampered := make([]byte, len(data))
	copy(tampered, data)
	mutate(tampered)
	checksum := ComputeChecksum(tampered[:len(tampered)-ChecksumSize])
	copy(tampered[len(tampered)-ChecksumSize:], checksum[:])
	return tampered
}

// TestSaveLoadRoundTrip verifies that a saved network loads back with
// identical architecture and parameters.
func TestSaveLoadRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "model.dsnt")

	net := newTestNetwork(t, 42)
	if err := SaveNetwork(path, net); err != nil {
		t.Fatalf("Failed to save network: %v", err)
	}

	loaded, err := LoadNetwork(path)
	if err != nil {
		t.Fatalf("Failed to load network: %v", err)
	}

	if loaded.InputDim() != net.InputDim() {
		t.Errorf("InputDim: expected %d, got %d", net.InputDim(), loaded.InputDim())
	}
	if loaded.NumClasses() != net.NumClasses() {
		t.Errorf("NumClasses: expected %d, got %d", net.NumClasses(), loaded.NumClasses())
	}
	wantHidden := net.HiddenDims()
	gotHidden := loaded.HiddenDims()
	if len(wantHidden) != len(gotHidden) {
		t.Fatalf("HiddenDims: expected %v, got %v", wantHidden, gotHidden)
	}
	for i := range wantHidden {
		if wantHidden[i] != gotHidden[i] {
			t.Errorf("HiddenDims[%d]: expected %d, got %d", i, wantHidden[i], gotHidden[i])
		}
	}

	want := net.StateDict()
	got := loaded.StateDict()
	if len(want) != len(got) {
		t.Fatalf("StateDict size: expected %d, got %d", len(want), len(got))
	}
	for name, wantTensor := range want {
		gotTensor, ok := got[name]
		if !ok {
			t.Errorf("Parameter %q missing after load", name)
			continue
		}
		if !wantTensor.Equal(gotTensor) {
			t.Errorf("Parameter %q differs after load", name)
		}
	}
}

// TestLoadPredictionParity verifies that a loaded network predicts the
// same classes as the one that was saved.
func TestLoadPredictionParity(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "model.dsnt")

	net := newTestNetwork(t, 7)
	input, err := tensor.FromSlice([]float32{
		0.5, -1.2, 0.3, 2.0,
		-0.7, 0.1, 1.5, -0.4,
		1.1, 1.1, -2.2, 0.0,
	}, tensor.Shape{3, 4})
	if err != nil {
		t.Fatalf("Failed to create input: %v", err)
	}

	before, err := net.Predict(input)
	if err != nil {
		t.Fatalf("Predict before save failed: %v", err)
	}

	if err := SaveNetwork(path, net); err != nil {
		t.Fatalf("Failed to save network: %v", err)
	}
	loaded, err := LoadNetwork(path)
	if err != nil {
		t.Fatalf("Failed to load network: %v", err)
	}

	after, err := loaded.Predict(input)
	if err != nil {
		t.Fatalf("Predict after load failed: %v", err)
	}

	for i := range before {
		if before[i] != after[i] {
			t.Errorf("Sample %d: predicted %d before save, %d after load", i, before[i], after[i])
		}
	}
}

// TestCorruptionDetection verifies that a flipped byte anywhere in the
// file is caught by the trailing checksum.
func TestCorruptionDetection(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "model.dsnt")

	net := newTestNetwork(t, 1)
	if err := SaveNetwork(path, net); err != nil {
		t.Fatalf("Failed to save network: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Failed to stat file: %v", err)
	}

	file, err := os.OpenFile(path, os.O_RDWR, 0o644)
	if err != nil {
		t.Fatalf("Failed to open file for corruption: %v", err)
	}
	// Flip a byte in the data section, just before the checksum.
	if _, err := file.Seek(info.Size()-int64(ChecksumSize)-1, 0); err != nil {
		t.Fatalf("Failed to seek: %v", err)
	}
	if _, err := file.Write([]byte{0xFF}); err != nil {
		t.Fatalf("Failed to corrupt file: %v", err)
	}
	if err := file.Close(); err != nil {
		t.Fatalf("Failed to close file: %v", err)
	}

	_, err = LoadNetwork(path)
	if err == nil {
		t.Fatal("Expected checksum validation to fail, but load succeeded")
	}
	if !errors.Is(err, ErrChecksumMismatch) {
		t.Errorf("Expected ErrChecksumMismatch, got: %v", err)
	}
}

// TestInvalidMagic verifies that a file with the wrong magic bytes is
// rejected even when its checksum is internally consistent.
func TestInvalidMagic(t *testing.T) {
	net := newTestNetwork(t, 2)
	data, err := EncodeNetwork(net)
	if err != nil {
		t.Fatalf("Failed to encode network: %v", err)
	}

	tampered := retamper(data, func(b []byte) {
		copy(b[:4], "XXXX")
	})

	_, err = DecodeNetwork(tampered)
	if !errors.Is(err, ErrInvalidMagic) {
		t.Errorf("Expected ErrInvalidMagic, got: %v", err)
	}
}

// TestUnsupportedVersion verifies that future format versions are
// rejected with a helpful error.
func TestUnsupportedVersion(t *testing.T) {
	net := newTestNetwork(t, 3)
	data, err := EncodeNetwork(net)
	if err != nil {
		t.Fatalf("Failed to encode network: %v", err)
	}

	tampered := retamper(data, func(b []byte) {
		binary.LittleEndian.PutUint32(b[4:8], 99)
	})

	_, err = DecodeNetwork(tampered)
	if !errors.Is(err, ErrUnsupportedVersion) {
		t.Errorf("Expected ErrUnsupportedVersion, got: %v", err)
	}
}

// TestTruncatedFile verifies that short inputs fail cleanly.
func TestTruncatedFile(t *testing.T) {
	cases := [][]byte{
		nil,
		[]byte("DSNT"),
		make([]byte, fixedPrefixSize),
		make([]byte, fixedPrefixSize+ChecksumSize-1),
	}
	for i, data := range cases {
		if _, err := DecodeNetwork(data); !errors.Is(err, ErrTruncated) {
			t.Errorf("Case %d: expected ErrTruncated, got: %v", i, err)
		}
	}
}

// TestTruncatedHeader verifies that a header length pointing past the
// end of the file is rejected.
func TestTruncatedHeader(t *testing.T) {
	net := newTestNetwork(t, 4)
	data, err := EncodeNetwork(net)
	if err != nil {
		t.Fatalf("Failed to encode network: %v", err)
	}

	tampered := retamper(data, func(b []byte) {
		binary.LittleEndian.PutUint32(b[8:12], uint32(len(b)))
	})

	_, err = DecodeNetwork(tampered)
	if !errors.Is(err, ErrTruncated) {
		t.Errorf("Expected ErrTruncated, got: %v", err)
	}
}

// TestLoadNetwork_MissingFile verifies the error path for a path that
// does not exist.
func TestLoadNetwork_MissingFile(t *testing.T) {
	_, err := LoadNetwork(filepath.Join(t.TempDir(), "nope.dsnt"))
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
}

// TestValidateHeader exercises the header checks with hand-built
// malformed headers.
func TestValidateHeader(t *testing.T) {
	validArch := Architecture{InputDim: 4, HiddenSizes: []int{3}, NumClasses: 2}

	tests := []struct {
		name     string
		header   Header
		dataSize int64
		wantType string
	}{
		{
			name: "too many tensors",
			header: Header{
				Architecture: validArch,
				Tensors:      make([]TensorMeta, MaxTensorCount+1),
			},
			dataSize: 1 << 30,
			wantType: "too_many_tensors",
		},
		{
			name: "invalid architecture",
			header: Header{
				Architecture: Architecture{InputDim: 0, NumClasses: 2},
			},
			dataSize: 0,
			wantType: "invalid_architecture",
		},
		{
			name: "negative hidden size",
			header: Header{
				Architecture: Architecture{InputDim: 4, HiddenSizes: []int{-3}, NumClasses: 2},
			},
			dataSize: 0,
			wantType: "invalid_architecture",
		},
		{
			name: "name too long",
			header: Header{
				Architecture: validArch,
				Tensors: []TensorMeta{
					{Name: string(make([]byte, MaxTensorNameLen+1)), Shape: []int{1}, Offset: 0, Size: 4},
				},
			},
			dataSize: 4,
			wantType: "name_too_long",
		},
		{
			name: "path traversal name",
			header: Header{
				Architecture: validArch,
				Tensors: []TensorMeta{
					{Name: "../weights", Shape: []int{1}, Offset: 0, Size: 4},
				},
			},
			dataSize: 4,
			wantType: "invalid_name",
		},
		{
			name: "shape size mismatch",
			header: Header{
				Architecture: validArch,
				Tensors: []TensorMeta{
					{Name: "w", Shape: []int{2, 2}, Offset: 0, Size: 4},
				},
			},
			dataSize: 16,
			wantType: "shape_size_mismatch",
		},
		{
			name: "invalid shape rank",
			header: Header{
				Architecture: validArch,
				Tensors: []TensorMeta{
					{Name: "w", Shape: []int{1, 1, 1}, Offset: 0, Size: 4},
				},
			},
			dataSize: 4,
			wantType: "invalid_shape",
		},
		{
			name: "negative offset",
			header: Header{
				Architecture: validArch,
				Tensors: []TensorMeta{
					{Name: "w", Shape: []int{1}, Offset: -8, Size: 4},
				},
			},
			dataSize: 4,
			wantType: "negative_offset",
		},
		{
			name: "out of bounds",
			header: Header{
				Architecture: validArch,
				Tensors: []TensorMeta{
					{Name: "w", Shape: []int{4}, Offset: 0, Size: 16},
				},
			},
			dataSize: 8,
			wantType: "out_of_bounds",
		},
		{
			name: "overlapping tensors",
			header: Header{
				Architecture: validArch,
				Tensors: []TensorMeta{
					{Name: "a", Shape: []int{2}, Offset: 0, Size: 8},
					{Name: "b", Shape: []int{2}, Offset: 4, Size: 8},
				},
			},
			dataSize: 16,
			wantType: "offset_overlap",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateHeader(&tt.header, tt.dataSize)
			if err == nil {
				t.Fatal("Expected validation to fail")
			}
			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("Expected ValidationError, got %T: %v", err, err)
			}
			if validationErr.Type != tt.wantType {
				t.Errorf("Expected type %q, got %q", tt.wantType, validationErr.Type)
			}
		})
	}
}

// TestValidationError_ErrorMessages verifies error message formatting.
func TestValidationError_ErrorMessages(t *testing.T) {
	tests := []struct {
		name     string
		err      *ValidationError
		expected string
	}{
		{
			name: "single tensor error",
			err: &ValidationError{
				Type:    "out_of_bounds",
				Tensor:  "layers.0.weight",
				Details: "offset 100 + size 200 > data_size 250",
			},
			expected: `out_of_bounds: tensor "layers.0.weight": offset 100 + size 200 > data_size 250`,
		},
		{
			name: "two tensor error (overlap)",
			err: &ValidationError{
				Type:    "offset_overlap",
				Tensor:  "layers.0.weight",
				Tensor2: "layers.0.bias",
				Details: "regions [0-100] and [50-150] overlap",
			},
			expected: `offset_overlap: tensors "layers.0.weight" and "layers.0.bias": regions [0-100] and [50-150] overlap`,
		},
		{
			name: "general error (no tensor)",
			err: &ValidationError{
				Type:    "too_many_tensors",
				Details: "got 2000, max 1024",
			},
			expected: "too_many_tensors: got 2000, max 1024",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual := tt.err.Error()
			if actual != tt.expected {
				t.Errorf("Error message mismatch\nExpected: %s\nGot:      %s", tt.expected, actual)
			}
		})
	}
}

// TestChecksum verifies the checksum helpers directly.
func TestChecksum(t *testing.T) {
	a := ComputeChecksum([]byte("hello"))
	b := ComputeChecksum([]byte("hello"))
	if a != b {
		t.Error("Checksum is not deterministic")
	}

	c := ComputeChecksum([]byte("hellp"))
	if a == c {
		t.Error("Different inputs produced the same checksum")
	}

	if err := ValidateChecksum(a, b); err != nil {
		t.Errorf("Expected matching checksums to validate, got: %v", err)
	}
	if err := ValidateChecksum(a, c); !errors.Is(err, ErrChecksumMismatch) {
		t.Errorf("Expected ErrChecksumMismatch, got: %v", err)
	}
}
