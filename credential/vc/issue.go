package vc

import (
	"context"
	"fmt"
	"time"

	"github.com/credentio/vc-go/credential/common/check"
	"github.com/credentio/vc-go/credential/common/contexts"
	"github.com/credentio/vc-go/credential/common/jsonmap"
	"github.com/credentio/vc-go/credential/common/purpose"
	"github.com/credentio/vc-go/credential/common/suite"
)

// issuanceDateLayout renders the defaulted issuanceDate truncated to whole
// seconds with a Z suffix.
const issuanceDateLayout = "2006-01-02T15:04:05Z"

// Issue validates a credential in issue mode and delegates signing to the
// configured suite. For 1.0 credentials a missing issuanceDate is defaulted
// to the current instant before validation; this is the only mutation applied
// to the input. Temporal bounds are never enforced at issuance.
func Issue(ctx context.Context, credential jsonmap.JSONMap, opts ...Option) (jsonmap.JSONMap, error) {
	o := resolveOptions(opts...)
	if o.suite == nil {
		return nil, fmt.Errorf("a signature suite is required to issue a credential")
	}
	if credential == nil {
		return nil, fmt.Errorf("a credential is required")
	}

	if version, ok := versionOf(credential); ok && version == contexts.V1 {
		if _, present := credential["issuanceDate"]; !present {
			credential["issuanceDate"] = o.now.UTC().Truncate(time.Second).Format(issuanceDateLayout)
		}
	}

	if err := CheckCredential(credential, check.ModeIssue, o.now); err != nil {
		return nil, fmt.Errorf("failed to validate credential: %w", err)
	}
	if o.validateSchema {
		if err := validateCredentialSchema(credential); err != nil {
			return nil, fmt.Errorf("failed to validate credential schema: %w", err)
		}
	}

	p := o.purpose
	if p == nil {
		p = purpose.NewIssuanceAuthorization()
	}

	signed, err := o.suite.Sign(ctx, credential, &suite.SignOptions{
		Purpose:        p,
		DocumentLoader: o.documentLoader,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to sign credential: %w", err)
	}
	return signed, nil
}
