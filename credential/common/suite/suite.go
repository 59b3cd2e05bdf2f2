package suite

import (
	"context"

	"github.com/piprate/json-gold/ld"

	"github.com/credentio/vc-go/credential/common/dto"
	"github.com/credentio/vc-go/credential/common/jsonmap"
	"github.com/credentio/vc-go/credential/common/purpose"
)

// SignOptions configures a signing delegation.
type SignOptions struct {
	// Purpose supplies the proof-purpose term recorded on the proof, plus
	// any purpose-specific proof fields (challenge, domain).
	Purpose purpose.Purpose
	// DocumentLoader resolves context URLs during canonicalization.
	DocumentLoader ld.DocumentLoader
}

// VerifyOptions configures a verification delegation.
type VerifyOptions struct {
	Purpose        purpose.Purpose
	DocumentLoader ld.DocumentLoader
}

// ProofResult is the outcome of checking a single proof.
type ProofResult struct {
	Verified bool
	Proof    *dto.Proof
	Error    error
}

// VerifyResult is the outcome of a suite verification over a document.
type VerifyResult struct {
	Verified bool
	// Controller is the confirmed controller of the verification method the
	// proof was created with, if the suite could establish one.
	Controller *purpose.Controller
	Results    []ProofResult
	Error      error
}

// Suite is the cryptographic capability the pipelines delegate to. A suite
// owns canonicalization of documents into byte sequences and the signature
// primitives over them; the core never inspects either. Callers needing
// multi-suite selection compose it outside the core.
type Suite interface {
	// Sign returns the document with a proof attached.
	Sign(ctx context.Context, doc jsonmap.JSONMap, opts *SignOptions) (jsonmap.JSONMap, error)

	// Verify checks the document's proof and reports the confirmed
	// controller. Cryptographic failures are reported through the result;
	// the error return is reserved for delegation failures such as an
	// unreachable key resolver.
	Verify(ctx context.Context, doc jsonmap.JSONMap, opts *VerifyOptions) (*VerifyResult, error)
}
