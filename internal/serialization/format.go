package serialization

import "time"

// Format constants.
const (
	MagicBytes    = "DSNT"
	FormatVersion = 1
	ChecksumSize  = 32 // SHA-256
	// fixedPrefixSize is magic + version + header size.
	fixedPrefixSize = 4 + 4 + 4
)

// Validation limits.
const (
	MaxHeaderSize    = 1 << 20 // 1MB: headers describe a handful of tensors
	MaxTensorCount   = 1024
	MaxTensorNameLen = 256
)

// Header is the JSON metadata block of a .dsnt file.
type Header struct {
	FormatVersion int          `json:"format_version"` // version of the .dsnt format
	CreatedAt     time.Time    `json:"created_at"`     // when the file was written
	Architecture  Architecture `json:"architecture"`   // network topology
	Tensors       []TensorMeta `json:"tensors"`        // parameter layout in the data section
}

// Architecture describes the network topology so a loader can rebuild
// the full model before filling in the parameters.
type Architecture struct {
	InputDim    int   `json:"input_dim"`    // flattened input width
	HiddenSizes []int `json:"hidden_sizes"` // hidden layer widths, in order
	NumClasses  int   `json:"num_classes"`  // output classes
}

// TensorMeta describes one parameter tensor in the data section.
type TensorMeta struct {
	Name   string `json:"name"`   // state-dict key (e.g., "layers.0.weight")
	Shape  []int  `json:"shape"`  // tensor shape
	Offset int64  `json:"offset"` // bytes from the start of the data section
	Size   int64  `json:"size"`   // bytes (4 per element)
}
