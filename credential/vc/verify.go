package vc

import (
	"context"
	"fmt"

	"github.com/credentio/vc-go/credential/common/check"
	credentialstatus "github.com/credentio/vc-go/credential/common/credential-status"
	"github.com/credentio/vc-go/credential/common/dto"
	"github.com/credentio/vc-go/credential/common/jsonmap"
	"github.com/credentio/vc-go/credential/common/purpose"
	"github.com/credentio/vc-go/credential/common/suite"
)

// CredentialResult is the aggregated outcome of verifying one credential.
// Sub-results are retained for diagnostics even when the overall flag is
// false.
type CredentialResult struct {
	Verified     bool
	CredentialID string
	Results      []suite.ProofResult
	StatusResult *credentialstatus.Result
	Error        error
}

// VerifyCredential runs the full credential verification pipeline: schema and
// temporal validation in verify mode, delegated proof verification, purpose
// evaluation, and the status check.
//
// Validation, cryptographic and status failures are reported through the
// result with Verified=false; the error return is reserved for contract
// violations such as a missing suite, or a credential carrying
// credentialStatus with no status checker configured.
func VerifyCredential(ctx context.Context, credential jsonmap.JSONMap, opts ...Option) (*CredentialResult, error) {
	o := resolveOptions(opts...)
	if o.suite == nil {
		return nil, fmt.Errorf("a signature suite is required to verify a credential")
	}
	if credential == nil {
		return nil, fmt.Errorf("a credential is required")
	}

	result := &CredentialResult{CredentialID: credential.ID()}

	if err := CheckCredential(credential, check.ModeVerify, o.now); err != nil {
		result.Error = err
		return result, nil
	}
	if o.validateSchema {
		if err := validateCredentialSchema(credential); err != nil {
			result.Error = err
			return result, nil
		}
	}

	// A status oracle missing while the credential declares a status is a
	// configuration error, not a verification failure.
	_, hasStatus := credential["credentialStatus"]
	if hasStatus && o.statusChecker == nil {
		return nil, fmt.Errorf("credential has a credentialStatus but no status checker is configured")
	}

	p := o.purpose
	if p == nil {
		p = purpose.NewIssuanceAuthorization()
	}

	suiteResult, err := o.suite.Verify(ctx, credential, &suite.VerifyOptions{
		Purpose:        p,
		DocumentLoader: o.documentLoader,
	})
	if err != nil {
		result.Error = err
		return result, nil
	}
	result.Results = suiteResult.Results

	// The status of an already-invalid credential is never consulted.
	if !suiteResult.Verified {
		result.Error = suiteResult.Error
		if result.Error == nil {
			result.Error = fmt.Errorf("credential proof verification failed")
		}
		return result, nil
	}

	proof, err := dto.FirstFromDocument(credential)
	if err != nil {
		result.Error = err
		return result, nil
	}
	if err := p.Validate(ctx, proof, &purpose.Options{
		Document:       credential,
		Controller:     suiteResult.Controller,
		DocumentLoader: o.documentLoader,
	}); err != nil {
		result.Error = err
		return result, nil
	}

	if hasStatus {
		statusResult, err := o.statusChecker.CheckStatus(ctx, credential)
		if err != nil {
			result.Error = err
			return result, nil
		}
		result.StatusResult = statusResult
		if !statusResult.Verified {
			result.Error = fmt.Errorf("credential status check failed: %s", statusResult.Message)
			return result, nil
		}
	}

	result.Verified = true
	return result, nil
}
