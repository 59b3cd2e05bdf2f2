package vp

import (
	"time"

	"github.com/piprate/json-gold/ld"

	"github.com/credentio/vc-go/credential/common/check"
	"github.com/credentio/vc-go/credential/common/contexts"
	credentialstatus "github.com/credentio/vc-go/credential/common/credential-status"
	"github.com/credentio/vc-go/credential/common/jsonmap"
	"github.com/credentio/vc-go/credential/common/purpose"
	"github.com/credentio/vc-go/credential/common/suite"
)

// PresentationType is the sentinel type every presentation must declare.
const PresentationType = "VerifiablePresentation"

// Option configures presentation verification.
type Option func(*options)

type options struct {
	suite          suite.Suite
	purpose        purpose.Purpose
	documentLoader ld.DocumentLoader
	statusChecker  credentialstatus.Checker
	now            time.Time
	challenge      string
	domain         string
	unsigned       bool
	validateSchema bool
}

// WithSuite sets the signature suite used for the presentation proof and the
// embedded credentials.
func WithSuite(s suite.Suite) Option {
	return func(o *options) {
		o.suite = s
	}
}

// WithPurpose overrides the proof purpose evaluator for the presentation
// proof (default: an authentication purpose built from the challenge and
// domain).
func WithPurpose(p purpose.Purpose) Option {
	return func(o *options) {
		o.purpose = p
	}
}

// WithDocumentLoader overrides the context document loader (default: the
// embedded closed-set loader).
func WithDocumentLoader(l ld.DocumentLoader) Option {
	return func(o *options) {
		o.documentLoader = l
	}
}

// WithStatusChecker sets the status oracle passed through to embedded
// credential verification.
func WithStatusChecker(c credentialstatus.Checker) Option {
	return func(o *options) {
		o.statusChecker = c
	}
}

// WithNow pins the instant used for temporal checks (default: current time).
func WithNow(now time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithChallenge sets the expected replay-protection challenge. Required for
// signed presentations unless an explicit purpose is supplied.
func WithChallenge(challenge string) Option {
	return func(o *options) {
		o.challenge = challenge
	}
}

// WithDomain sets the expected audience binding of the presentation proof.
func WithDomain(domain string) Option {
	return func(o *options) {
		o.domain = domain
	}
}

// WithUnsignedPresentation skips proof verification of the presentation
// itself; the overall result is then the conjunction of the embedded
// credential results alone.
func WithUnsignedPresentation() Option {
	return func(o *options) {
		o.unsigned = true
	}
}

// WithSchemaValidation enables credentialSchema validation on embedded
// credentials.
func WithSchemaValidation() Option {
	return func(o *options) {
		o.validateSchema = true
	}
}

func resolveOptions(opts ...Option) *options {
	o := &options{
		documentLoader: contexts.DefaultDocumentLoader(),
		now:            time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// CheckPresentation asserts the structural validity of a presentation shell.
// Embedded credentials are only shape-checked here; their full validation
// happens per credential during verification.
func CheckPresentation(presentation jsonmap.JSONMap) error {
	if presentation == nil {
		return check.NewStructuralErrorf("presentation", "is required")
	}

	if _, ok := contexts.ExtractVersion(presentation["@context"]); !ok {
		return check.NewStructuralErrorf("presentation.@context",
			"first entry must be a recognized credential context")
	}

	if err := check.AssertType("presentation.type", presentation["type"], PresentationType); err != nil {
		return err
	}

	if id, present := presentation["id"]; present {
		if err := check.AssertURI("presentation.id", id); err != nil {
			return err
		}
	}

	if holder, present := presentation["holder"]; present {
		switch v := holder.(type) {
		case string:
			if err := check.AssertURI("presentation.holder", v); err != nil {
				return err
			}
		case map[string]interface{}:
			if err := check.AssertURI("presentation.holder.id", v["id"]); err != nil {
				return err
			}
		default:
			return check.NewStructuralErrorf("presentation.holder",
				"must be a URI or an object with a URI id, got %T", v)
		}
	}

	if vcs, present := presentation["verifiableCredential"]; present {
		if err := check.AssertAllowMultiple("presentation.verifiableCredential", vcs,
			func(path string, item interface{}) error {
				_, err := check.AssertRecord(path, item, false)
				return err
			}); err != nil {
			return err
		}
	}
	return nil
}

// credentialsOf returns the embedded credentials as raw documents. Shape is
// guaranteed by CheckPresentation.
func credentialsOf(presentation jsonmap.JSONMap) []jsonmap.JSONMap {
	raw := jsonmap.AsArray(presentation["verifiableCredential"])
	if len(raw) == 0 {
		return nil
	}
	creds := make([]jsonmap.JSONMap, 0, len(raw))
	for _, item := range raw {
		if m, ok := item.(map[string]interface{}); ok {
			creds = append(creds, jsonmap.JSONMap(m))
		}
	}
	return creds
}
