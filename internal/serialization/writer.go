package serialization

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
	"time"

	"github.com/descent-ml/descent/internal/nn"
)

// SaveNetwork writes the network's architecture and parameters to a
// .dsnt file at path, replacing any existing file.
func SaveNetwork(path string, net *nn.Network) error {
	data, err := EncodeNetwork(net)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write checkpoint: %w", err)
	}
	return nil
}

// EncodeNetwork serializes the network into the .dsnt byte layout.
//
// Tensors are written in sorted state-dict-key order, so encoding the
// same network twice produces byte-identical data sections.
func EncodeNetwork(net *nn.Network) ([]byte, error) {
	stateDict := net.StateDict()

	names := make([]string, 0, len(stateDict))
	for name := range stateDict {
		names = append(names, name)
	}
	sort.Strings(names)

	header := Header{
		FormatVersion: FormatVersion,
		CreatedAt:     time.Now().UTC(),
		Architecture: Architecture{
			InputDim:    net.InputDim(),
			HiddenSizes: net.HiddenDims(),
			NumClasses:  net.NumClasses(),
		},
		Tensors: make([]TensorMeta, 0, len(names)),
	}

	var dataBuf bytes.Buffer
	var offset int64
	for _, name := range names {
		t := stateDict[name]
		size := int64(t.NumElements() * 4)

		header.Tensors = append(header.Tensors, TensorMeta{
			Name:   name,
			Shape:  []int(t.Shape()),
			Offset: offset,
			Size:   size,
		})
		offset += size

		var scratch [4]byte
		for _, v := range t.Data() {
			binary.LittleEndian.PutUint32(scratch[:], math.Float32bits(v))
			dataBuf.Write(scratch[:])
		}
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return nil, fmt.Errorf("marshal header: %w", err)
	}
	if len(headerJSON) > MaxHeaderSize {
		return nil, ErrHeaderTooLarge
	}

	out := bytes.NewBuffer(make([]byte, 0, fixedPrefixSize+len(headerJSON)+dataBuf.Len()+ChecksumSize))
	out.WriteString(MagicBytes)

	var u32 [4]byte
	binary.LittleEndian.PutUint32(u32[:], FormatVersion)
	out.Write(u32[:])
	binary.LittleEndian.PutUint32(u32[:], uint32(len(headerJSON)))
	out.Write(u32[:])

	out.Write(headerJSON)
	out.Write(dataBuf.Bytes())

	// Trailing checksum covers everything written so far: prefix,
	// header, and data.
	checksum := ComputeChecksum(out.Bytes())
	out.Write(checksum[:])

	return out.Bytes(), nil
}
