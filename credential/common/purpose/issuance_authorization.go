package purpose

import (
	"context"
	"fmt"

	"github.com/credentio/vc-go/credential/common/dto"
)

// IssuanceAuthorization authorizes a credential proof: beyond the base
// assertionMethod term check, the confirmed controller of the verification
// method must be the credential's declared issuer. This binds "who signed"
// to "who claims to be the issuer", so a third party's valid signature cannot
// be accepted as an issuer's.
type IssuanceAuthorization struct{}

// NewIssuanceAuthorization returns the evaluator for credential proofs.
func NewIssuanceAuthorization() *IssuanceAuthorization {
	return &IssuanceAuthorization{}
}

// Term implements Purpose.
func (p *IssuanceAuthorization) Term() string {
	return "assertionMethod"
}

// Validate implements Purpose.
func (p *IssuanceAuthorization) Validate(_ context.Context, proof *dto.Proof, opts *Options) error {
	if err := assertTerm(p, proof); err != nil {
		return err
	}
	if opts == nil || opts.Document == nil {
		return &AuthorizationError{Msg: "document is required to evaluate issuance authorization"}
	}

	issuer := opts.Document.IssuerID()
	if issuer == "" {
		return &AuthorizationError{Msg: "credential issuer is required"}
	}

	if opts.Controller == nil || opts.Controller.ID == "" {
		return &AuthorizationError{Msg: "proof controller could not be established"}
	}
	if opts.Controller.ID != issuer {
		return &AuthorizationError{Msg: fmt.Sprintf(
			"credential issuer %q must match the verification method controller %q",
			issuer, opts.Controller.ID)}
	}
	return nil
}
