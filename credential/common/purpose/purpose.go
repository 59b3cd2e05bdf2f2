package purpose

import (
	"context"
	"fmt"

	"github.com/piprate/json-gold/ld"

	"github.com/credentio/vc-go/credential/common/dto"
	"github.com/credentio/vc-go/credential/common/jsonmap"
)

// Controller identifies the party confirmed to control the verification
// method a proof was created with.
type Controller struct {
	ID string
}

// AuthorizationError reports a proof whose cryptographic verification
// succeeded but whose semantic authorization did not: a purpose-term
// mismatch, a missing issuer, an issuer/controller mismatch, or a missing
// challenge.
type AuthorizationError struct {
	Msg string
}

func (e *AuthorizationError) Error() string {
	return e.Msg
}

// Options carries the material a purpose evaluator inspects alongside the
// proof itself.
type Options struct {
	// Document is the credential or presentation the proof is attached to.
	Document jsonmap.JSONMap
	// Controller is the verification-method controller confirmed by the
	// signature suite, or nil if the suite reported none.
	Controller *Controller
	// DocumentLoader resolves context URLs for evaluators that need them.
	DocumentLoader ld.DocumentLoader
}

// Purpose decides whether a cryptographically-verified proof is semantically
// authorized for its declared use.
type Purpose interface {
	// Term is the proof-purpose term the evaluator accepts, e.g.
	// "assertionMethod" or "authentication".
	Term() string

	// Validate returns nil when the proof is authorized, or an
	// AuthorizationError describing the violation.
	Validate(ctx context.Context, proof *dto.Proof, opts *Options) error
}

// assertTerm is the base check shared by all evaluators: the proof's declared
// purpose term must match the evaluator's.
func assertTerm(p Purpose, proof *dto.Proof) error {
	if proof == nil {
		return &AuthorizationError{Msg: "proof is missing"}
	}
	if proof.ProofPurpose != p.Term() {
		return &AuthorizationError{Msg: fmt.Sprintf(
			"proof purpose %q does not match expected purpose %q",
			proof.ProofPurpose, p.Term())}
	}
	return nil
}
