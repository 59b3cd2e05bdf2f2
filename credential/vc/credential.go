package vc

import (
	"time"

	"github.com/piprate/json-gold/ld"

	"github.com/credentio/vc-go/credential/common/contexts"
	credentialstatus "github.com/credentio/vc-go/credential/common/credential-status"
	"github.com/credentio/vc-go/credential/common/purpose"
	"github.com/credentio/vc-go/credential/common/suite"
)

// CredentialType is the sentinel type every credential must declare.
const CredentialType = "VerifiableCredential"

// Option configures credential issuance and verification.
type Option func(*options)

// options holds the resolved configuration for one operation.
type options struct {
	suite          suite.Suite
	purpose        purpose.Purpose
	documentLoader ld.DocumentLoader
	statusChecker  credentialstatus.Checker
	now            time.Time
	validateSchema bool
}

// WithSuite sets the signature suite delegated to for signing and proof
// verification. Required for Issue and VerifyCredential.
func WithSuite(s suite.Suite) Option {
	return func(o *options) {
		o.suite = s
	}
}

// WithPurpose overrides the proof purpose evaluator
// (default: issuance authorization).
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

// WithStatusChecker sets the status oracle. Mandatory whenever the credential
// being verified carries a credentialStatus field.
func WithStatusChecker(c credentialstatus.Checker) Option {
	return func(o *options) {
		o.statusChecker = c
	}
}

// WithNow pins the instant used for temporal checks and the issuanceDate
// default (default: current time).
func WithNow(now time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithSchemaValidation enables validation against any credentialSchema
// entries the credential declares.
func WithSchemaValidation() Option {
	return func(o *options) {
		o.validateSchema = true
	}
}

// resolveOptions applies defaults and the caller's options.
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

// versionOf extracts the data-model version a credential declares.
func versionOf(credential map[string]interface{}) (contexts.Version, bool) {
	return contexts.ExtractVersion(credential["@context"])
}
