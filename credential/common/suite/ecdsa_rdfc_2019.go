package suite

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/piprate/json-gold/ld"

	"github.com/credentio/vc-go/credential/common/crypto"
	"github.com/credentio/vc-go/credential/common/dto"
	"github.com/credentio/vc-go/credential/common/jsonmap"
	"github.com/credentio/vc-go/credential/common/processor"
	"github.com/credentio/vc-go/credential/common/purpose"
	verificationmethod "github.com/credentio/vc-go/credential/common/verification-method"
)

const ecdsaRDFC2019 = "ecdsa-rdfc-2019"

// PublicKeyResolver looks up the hex public key behind a verification method
// URL.
type PublicKeyResolver interface {
	GetPublicKey(ctx context.Context, verificationMethod string) (string, error)
}

// ECDSARDFC2019 is a DataIntegrityProof suite using the ecdsa-rdfc-2019
// cryptosuite: URDNA2015 canonicalization, SHA-256 digest, secp256k1 ECDSA.
type ECDSARDFC2019 struct {
	privateKeyHex      string
	verificationMethod string
	resolver           PublicKeyResolver
}

// ECDSAOption configures an ECDSARDFC2019 suite.
type ECDSAOption func(*ECDSARDFC2019)

// WithSigningKey supplies the hex private key and the verification method URL
// recorded on produced proofs. Required for signing.
func WithSigningKey(privateKeyHex, verificationMethod string) ECDSAOption {
	return func(s *ECDSARDFC2019) {
		s.privateKeyHex = privateKeyHex
		s.verificationMethod = verificationMethod
	}
}

// WithKeyResolver supplies the public key resolver used during verification.
func WithKeyResolver(r PublicKeyResolver) ECDSAOption {
	return func(s *ECDSARDFC2019) {
		s.resolver = r
	}
}

// WithResolverBaseURL configures verification against a DID resolver
// endpoint.
func WithResolverBaseURL(baseURL string) ECDSAOption {
	return func(s *ECDSARDFC2019) {
		s.resolver = verificationmethod.NewResolver(baseURL)
	}
}

// NewECDSARDFC2019 builds the suite.
func NewECDSARDFC2019(opts ...ECDSAOption) *ECDSARDFC2019 {
	s := &ECDSARDFC2019{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sign implements Suite.
func (s *ECDSARDFC2019) Sign(ctx context.Context, doc jsonmap.JSONMap, opts *SignOptions) (jsonmap.JSONMap, error) {
	if doc == nil {
		return nil, fmt.Errorf("document is required")
	}
	if opts == nil || opts.Purpose == nil {
		return nil, fmt.Errorf("proof purpose is required")
	}
	if s.privateKeyHex == "" || s.verificationMethod == "" {
		return nil, fmt.Errorf("signing key and verification method are required")
	}

	digest, err := s.signingInput(doc, opts.DocumentLoader)
	if err != nil {
		return nil, err
	}

	signature, err := crypto.Sign(digest, s.privateKeyHex)
	if err != nil {
		return nil, fmt.Errorf("failed to sign document: %w", err)
	}

	proof := &dto.Proof{
		Type:               "DataIntegrityProof",
		Created:            time.Now().UTC().Format(time.RFC3339),
		VerificationMethod: s.verificationMethod,
		ProofPurpose:       opts.Purpose.Term(),
		ProofValue:         hex.EncodeToString(signature),
		Cryptosuite:        ecdsaRDFC2019,
	}
	if auth, ok := opts.Purpose.(*purpose.Authentication); ok {
		proof.Challenge = auth.Challenge
		proof.Domain = auth.Domain
	}

	signed := doc.Clone()
	signed["proof"] = proof.ToRaw()
	return signed, nil
}

// Verify implements Suite.
func (s *ECDSARDFC2019) Verify(ctx context.Context, doc jsonmap.JSONMap, opts *VerifyOptions) (*VerifyResult, error) {
	if doc == nil {
		return nil, fmt.Errorf("document is required")
	}
	if s.resolver == nil {
		return nil, fmt.Errorf("public key resolver is required")
	}

	var loader ld.DocumentLoader
	if opts != nil {
		loader = opts.DocumentLoader
	}

	proof, err := dto.FirstFromDocument(doc)
	if err != nil {
		return failedResult(nil, fmt.Errorf("failed to parse proof: %w", err)), nil
	}
	if proof.Cryptosuite != "" && proof.Cryptosuite != ecdsaRDFC2019 {
		return failedResult(proof, fmt.Errorf("unsupported cryptosuite %q", proof.Cryptosuite)), nil
	}

	digest, err := s.signingInput(doc, loader)
	if err != nil {
		return nil, err
	}

	publicKeyHex, err := s.resolver.GetPublicKey(ctx, proof.VerificationMethod)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve public key: %w", err)
	}

	verified, err := crypto.VerifySignature(publicKeyHex, proof.ProofValue, digest)
	if err != nil {
		return failedResult(proof, fmt.Errorf("failed to verify signature: %w", err)), nil
	}
	if !verified {
		return failedResult(proof, fmt.Errorf("invalid signature")), nil
	}

	controllerID, _, _ := strings.Cut(proof.VerificationMethod, "#")
	return &VerifyResult{
		Verified:   true,
		Controller: &purpose.Controller{ID: controllerID},
		Results:    []ProofResult{{Verified: true, Proof: proof}},
	}, nil
}

// signingInput canonicalizes the document without its proof and digests it.
func (s *ECDSARDFC2019) signingInput(doc jsonmap.JSONMap, loader ld.DocumentLoader) ([]byte, error) {
	canonical, err := processor.Canonicalize(doc.WithoutProof(), loader)
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalize document: %w", err)
	}
	return processor.Digest(canonical), nil
}

func failedResult(proof *dto.Proof, err error) *VerifyResult {
	return &VerifyResult{
		Verified: false,
		Results:  []ProofResult{{Verified: false, Proof: proof, Error: err}},
		Error:    err,
	}
}
