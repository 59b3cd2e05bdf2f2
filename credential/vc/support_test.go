package vc

import (
	"context"
	"fmt"
	"time"

	credentialstatus "github.com/credentio/vc-go/credential/common/credential-status"
	"github.com/credentio/vc-go/credential/common/dto"
	"github.com/credentio/vc-go/credential/common/jsonmap"
	"github.com/credentio/vc-go/credential/common/purpose"
	"github.com/credentio/vc-go/credential/common/suite"
)

// fakeSuite is a stand-in signature suite with a fixed verdict.
type fakeSuite struct {
	verified    bool
	controller  string
	verifyErr   error
	verifyCalls int
	signCalls   int
}

func (s *fakeSuite) Sign(_ context.Context, doc jsonmap.JSONMap, opts *suite.SignOptions) (jsonmap.JSONMap, error) {
	s.signCalls++
	proof := &dto.Proof{
		Type:               "DataIntegrityProof",
		Created:            time.Now().UTC().Format(time.RFC3339),
		VerificationMethod: "did:example:issuer#key-1",
		ProofPurpose:       opts.Purpose.Term(),
		ProofValue:         "2af3",
		Cryptosuite:        "ecdsa-rdfc-2019",
	}
	signed := doc.Clone()
	signed["proof"] = proof.ToRaw()
	return signed, nil
}

func (s *fakeSuite) Verify(_ context.Context, doc jsonmap.JSONMap, _ *suite.VerifyOptions) (*suite.VerifyResult, error) {
	s.verifyCalls++
	if s.verifyErr != nil {
		return nil, s.verifyErr
	}

	proof, _ := dto.FirstFromDocument(doc)
	if !s.verified {
		err := fmt.Errorf("invalid signature")
		return &suite.VerifyResult{
			Verified: false,
			Results:  []suite.ProofResult{{Verified: false, Proof: proof, Error: err}},
			Error:    err,
		}, nil
	}
	return &suite.VerifyResult{
		Verified:   true,
		Controller: &purpose.Controller{ID: s.controller},
		Results:    []suite.ProofResult{{Verified: true, Proof: proof}},
	}, nil
}

// fakeStatusChecker is a stand-in status oracle with a fixed verdict.
type fakeStatusChecker struct {
	result *credentialstatus.Result
	err    error
	calls  int
}

func (c *fakeStatusChecker) CheckStatus(_ context.Context, _ jsonmap.JSONMap) (*credentialstatus.Result, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return c.result, nil
}
