package purpose

import (
	"context"
	"fmt"

	"github.com/credentio/vc-go/credential/common/dto"
)

// Authentication authorizes a presentation proof. A challenge is always
// required for replay protection; a domain binds the proof to an audience and
// a controller pins the expected signer, both optional.
type Authentication struct {
	Challenge  string
	Domain     string
	Controller string
}

// NewAuthentication returns an evaluator expecting the given challenge.
func NewAuthentication(challenge string) (*Authentication, error) {
	if challenge == "" {
		return nil, fmt.Errorf("challenge is required for the authentication purpose")
	}
	return &Authentication{Challenge: challenge}, nil
}

// Term implements Purpose.
func (p *Authentication) Term() string {
	return "authentication"
}

// Validate implements Purpose.
func (p *Authentication) Validate(_ context.Context, proof *dto.Proof, opts *Options) error {
	if err := assertTerm(p, proof); err != nil {
		return err
	}

	if p.Challenge == "" {
		return &AuthorizationError{Msg: "challenge is required for the authentication purpose"}
	}
	if proof.Challenge != p.Challenge {
		return &AuthorizationError{Msg: fmt.Sprintf(
			"proof challenge %q does not match expected challenge %q",
			proof.Challenge, p.Challenge)}
	}

	if p.Domain != "" && proof.Domain != p.Domain {
		return &AuthorizationError{Msg: fmt.Sprintf(
			"proof domain %q does not match expected domain %q",
			proof.Domain, p.Domain)}
	}

	if p.Controller != "" {
		if opts == nil || opts.Controller == nil || opts.Controller.ID != p.Controller {
			return &AuthorizationError{Msg: fmt.Sprintf(
				"proof controller does not match expected controller %q", p.Controller)}
		}
	}
	return nil
}
