package vp

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/credentio/vc-go/credential/common/dto"
	"github.com/credentio/vc-go/credential/common/jsonmap"
	"github.com/credentio/vc-go/credential/common/purpose"
	"github.com/credentio/vc-go/credential/common/suite"
	"github.com/credentio/vc-go/credential/vc"
)

// Result is the aggregated outcome of verifying a presentation. Overall
// Verified is the conjunction of the embedded-credential results and the
// presentation proof result; per-credential sub-results are retained even
// when the overall flag is false.
type Result struct {
	Verified           bool
	PresentationResult *suite.VerifyResult
	CredentialResults  []*vc.CredentialResult
	Error              error
}

// Verify runs the presentation verification pipeline: structural validation
// of the shell, independent concurrent verification of every embedded
// credential, and — unless the presentation is declared unsigned — proof
// verification with an authentication purpose.
//
// Credential results are re-associated with their originating credential by
// positional index; callers may rely on CredentialResults[i] belonging to the
// i-th entry of verifiableCredential. A credential failure never aborts
// presentation-proof verification: both phases always run for a signed
// presentation and both must pass.
func Verify(ctx context.Context, presentation jsonmap.JSONMap, opts ...Option) (*Result, error) {
	o := resolveOptions(opts...)
	if presentation == nil {
		return nil, fmt.Errorf("a presentation is required")
	}
	if !o.unsigned && o.suite == nil {
		return nil, fmt.Errorf("a signature suite is required to verify a signed presentation")
	}

	result := &Result{}

	if err := CheckPresentation(presentation); err != nil {
		result.Error = err
		return result, nil
	}

	credentials := credentialsOf(presentation)
	credentialsVerified := true
	if len(credentials) > 0 {
		results, err := verifyCredentialBatch(ctx, credentials, o)
		if err != nil {
			return nil, err
		}
		result.CredentialResults = results
		for _, r := range results {
			credentialsVerified = credentialsVerified && r.Verified
		}
	}

	if o.unsigned {
		result.Verified = credentialsVerified
		return result, nil
	}

	p := o.purpose
	if p == nil {
		if o.challenge == "" {
			return nil, fmt.Errorf("a challenge is required to verify a signed presentation")
		}
		auth, err := purpose.NewAuthentication(o.challenge)
		if err != nil {
			return nil, err
		}
		auth.Domain = o.domain
		p = auth
	}

	suiteResult, presentationVerified, err := verifyPresentationProof(ctx, presentation, p, o)
	if err != nil {
		result.Error = err
	}
	result.PresentationResult = suiteResult
	result.Verified = credentialsVerified && presentationVerified
	return result, nil
}

// verifyCredentialBatch verifies every embedded credential independently and
// concurrently, gathering results by input index so completion order never
// leaks into the output.
func verifyCredentialBatch(ctx context.Context, credentials []jsonmap.JSONMap, o *options) ([]*vc.CredentialResult, error) {
	results := make([]*vc.CredentialResult, len(credentials))

	credOpts := []vc.Option{
		vc.WithSuite(o.suite),
		vc.WithDocumentLoader(o.documentLoader),
		vc.WithNow(o.now),
	}
	if o.statusChecker != nil {
		credOpts = append(credOpts, vc.WithStatusChecker(o.statusChecker))
	}
	if o.validateSchema {
		credOpts = append(credOpts, vc.WithSchemaValidation())
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, credential := range credentials {
		g.Go(func() error {
			r, err := vc.VerifyCredential(gctx, credential, credOpts...)
			if err != nil {
				// Contract violations abort the whole batch.
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// verifyPresentationProof delegates the presentation's own proof to the suite
// and evaluates the authentication purpose over the outcome.
func verifyPresentationProof(ctx context.Context, presentation jsonmap.JSONMap, p purpose.Purpose, o *options) (*suite.VerifyResult, bool, error) {
	suiteResult, err := o.suite.Verify(ctx, presentation, &suite.VerifyOptions{
		Purpose:        p,
		DocumentLoader: o.documentLoader,
	})
	if err != nil {
		return nil, false, err
	}

	if !suiteResult.Verified {
		if suiteResult.Error != nil {
			return suiteResult, false, suiteResult.Error
		}
		return suiteResult, false, fmt.Errorf("presentation proof verification failed")
	}

	proof, err := dto.FirstFromDocument(presentation)
	if err != nil {
		return suiteResult, false, err
	}
	if err := p.Validate(ctx, proof, &purpose.Options{
		Document:       presentation,
		Controller:     suiteResult.Controller,
		DocumentLoader: o.documentLoader,
	}); err != nil {
		return suiteResult, false, err
	}
	return suiteResult, true, nil
}
