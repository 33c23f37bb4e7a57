package serialization

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"os"

	"github.com/descent-ml/descent/internal/nn"
	"github.com/descent-ml/descent/internal/tensor"
)

// LoadNetwork reads a .dsnt file and reconstructs the trained network.
func LoadNetwork(path string) (*nn.Network, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read checkpoint: %w", err)
	}
	net, err := DecodeNetwork(data)
	if err != nil {
		return nil, fmt.Errorf("decode checkpoint %s: %w", path, err)
	}
	return net, nil
}

// DecodeNetwork parses the .dsnt byte layout and rebuilds the network
// it describes.
//
// The checksum is validated before anything else is interpreted, so a
// corrupted file never partially constructs a network.
func DecodeNetwork(data []byte) (*nn.Network, error) {
	if len(data) < fixedPrefixSize+ChecksumSize {
		return nil, ErrTruncated
	}

	var stored [ChecksumSize]byte
	copy(stored[:], data[len(data)-ChecksumSize:])
	if err := ValidateChecksum(ComputeChecksum(data[:len(data)-ChecksumSize]), stored); err != nil {
		return nil, err
	}

	if string(data[:4]) != MagicBytes {
		return nil, ErrInvalidMagic
	}

	version := binary.LittleEndian.Uint32(data[4:8])
	if version != FormatVersion {
		return nil, fmt.Errorf("%w: got %d, expected %d", ErrUnsupportedVersion, version, FormatVersion)
	}

	headerSize := binary.LittleEndian.Uint32(data[8:12])
	if headerSize > MaxHeaderSize {
		return nil, ErrHeaderTooLarge
	}
	headerEnd := fixedPrefixSize + int(headerSize)
	if headerEnd > len(data)-ChecksumSize {
		return nil, ErrTruncated
	}

	var header Header
	if err := json.Unmarshal(data[fixedPrefixSize:headerEnd], &header); err != nil {
		return nil, fmt.Errorf("parse header JSON: %w", err)
	}

	payload := data[headerEnd : len(data)-ChecksumSize]
	if err := validateHeader(&header, int64(len(payload))); err != nil {
		return nil, err
	}

	arch := header.Architecture
	// The initializer's random values are overwritten below; the seed
	// is irrelevant.
	net, err := nn.NewMLP(arch.InputDim, arch.HiddenSizes, arch.NumClasses, rand.New(rand.NewSource(0)))
	if err != nil {
		return nil, fmt.Errorf("invalid architecture in header: %w", err)
	}

	stateDict := make(map[string]*tensor.Tensor, len(header.Tensors))
	for _, meta := range header.Tensors {
		values := make([]float32, meta.Size/4)
		for i := range values {
			bits := binary.LittleEndian.Uint32(payload[meta.Offset+int64(i)*4:])
			values[i] = math.Float32frombits(bits)
		}
		t, err := tensor.FromSlice(values, tensor.Shape(meta.Shape))
		if err != nil {
			return nil, fmt.Errorf("tensor %q: %w", meta.Name, err)
		}
		stateDict[meta.Name] = t
	}

	if err := net.LoadStateDict(stateDict); err != nil {
		return nil, fmt.Errorf("restore parameters: %w", err)
	}
	return net, nil
}
