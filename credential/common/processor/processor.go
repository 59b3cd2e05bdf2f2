package processor

import (
	"crypto/sha256"
	"fmt"

	"github.com/piprate/json-gold/ld"
)

// Canonicalize normalizes a document to URDNA2015 n-quads using the supplied
// document loader. The loader is required: canonicalization must never reach
// for the network implicitly.
func Canonicalize(doc map[string]interface{}, loader ld.DocumentLoader) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("failed to canonicalize document: document is nil")
	}
	if loader == nil {
		return nil, fmt.Errorf("failed to canonicalize document: document loader is nil")
	}

	proc := ld.NewJsonLdProcessor()
	options := ld.NewJsonLdOptions("")
	options.Format = "application/n-quads"
	options.Algorithm = ld.AlgorithmURDNA2015
	options.DocumentLoader = loader

	canonicalized, err := proc.Normalize(doc, options)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize document: %w", err)
	}

	nquads, ok := canonicalized.(string)
	if !ok {
		return nil, fmt.Errorf("failed to normalize document: unexpected result type %T", canonicalized)
	}
	return []byte(nquads), nil
}

// Digest computes the SHA-256 digest of the canonicalized input.
func Digest(data []byte) []byte {
	hash := sha256.Sum256(data)
	return hash[:]
}
