// Package serialization persists trained networks in the .dsnt format.
//
// The .dsnt format is a small binary container for the parameter set of
// one trained classifier:
//
//	Format Structure:
//	  [4 bytes:  Magic "DSNT"]
//	  [4 bytes:  Version (uint32 LE)]
//	  [4 bytes:  Header Size (uint32 LE)]
//	  [Header:   JSON metadata incl. architecture and tensor layout]
//	  [Data:     raw float32 values, little endian, in header order]
//	  [32 bytes: SHA-256 checksum of every preceding byte]
//
// The header records the network architecture (input width, hidden
// widths, class count), so loading reconstructs the full network, not
// just a bag of tensors. The trailing checksum covers the header as
// well as the data: any corruption surfaces as ErrChecksumMismatch
// before a single value reaches a parameter.
//
// Example usage:
//
//	// Save a trained network
//	if err := serialization.SaveNetwork("model.dsnt", net); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Load it back for inference
//	restored, err := serialization.LoadNetwork("model.dsnt")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	preds, err := restored.Predict(inputs)
package serialization
