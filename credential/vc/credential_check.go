package vc

import (
	"time"

	"github.com/credentio/vc-go/credential/common/check"
	"github.com/credentio/vc-go/credential/common/contexts"
	"github.com/credentio/vc-go/credential/common/jsonmap"
)

// CheckCredential asserts the structural and temporal validity of a raw
// credential. Checks run in a fixed order and fail on the first violation.
// In issue mode date fields are checked for format only; in verify mode the
// validity window around now is enforced as well.
func CheckCredential(credential jsonmap.JSONMap, mode check.Mode, now time.Time) error {
	if credential == nil {
		return check.NewStructuralErrorf("credential", "is required")
	}

	version, ok := versionOf(credential)
	if !ok {
		return check.NewStructuralErrorf("credential.@context",
			"first entry must be a recognized credential context")
	}

	if err := check.AssertType("credential.type", credential["type"], CredentialType); err != nil {
		return err
	}

	if id, present := credential["id"]; present {
		if err := check.AssertURI("credential.id", id); err != nil {
			return err
		}
	}

	if err := checkSubject(credential); err != nil {
		return err
	}
	if err := checkIssuer(credential); err != nil {
		return err
	}
	if err := checkValidityDates(credential, version, mode, now); err != nil {
		return err
	}
	if err := checkStatusEntries(credential); err != nil {
		return err
	}
	if err := checkEvidence(credential); err != nil {
		return err
	}
	if err := checkTypedEntries("credential.termsOfUse", credential["termsOfUse"]); err != nil {
		return err
	}
	if err := checkTypedEntries("credential.proof", credential["proof"]); err != nil {
		return err
	}
	return nil
}

// checkSubject requires one or more non-empty subject objects, each with an
// optional URI id.
func checkSubject(credential jsonmap.JSONMap) error {
	subject, present := credential["credentialSubject"]
	if !present {
		return check.NewStructuralErrorf("credential.credentialSubject", "is required")
	}
	return check.AssertAllowMultiple("credential.credentialSubject", subject,
		func(path string, item interface{}) error {
			rec, err := check.AssertRecord(path, item, false)
			if err != nil {
				return err
			}
			if id, ok := rec["id"]; ok {
				return check.AssertURI(path+".id", id)
			}
			return nil
		})
}

// checkIssuer requires a URI issuer, given either directly or as the id of an
// issuer object.
func checkIssuer(credential jsonmap.JSONMap) error {
	issuer, present := credential["issuer"]
	if !present {
		return check.NewStructuralErrorf("credential.issuer", "is required")
	}
	switch v := issuer.(type) {
	case string:
		return check.AssertURI("credential.issuer", v)
	case map[string]interface{}:
		id, ok := v["id"]
		if !ok {
			return check.NewStructuralErrorf("credential.issuer.id", "is required")
		}
		return check.AssertURI("credential.issuer.id", id)
	default:
		return check.NewStructuralErrorf("credential.issuer",
			"must be a URI or an object with a URI id, got %T", v)
	}
}

// checkValidityDates applies the version-specific temporal fields. Bounds are
// enforced only in verify mode: issuance checks formats, never whether the
// credential is currently valid.
func checkValidityDates(credential jsonmap.JSONMap, version contexts.Version, mode check.Mode, now time.Time) error {
	verify := mode == check.ModeVerify

	switch version {
	case contexts.V1:
		issuanceDate, present := credential["issuanceDate"]
		if !present {
			return check.NewStructuralErrorf("credential.issuanceDate", "is required")
		}
		var b check.Bounds
		if verify {
			b = check.Bounds{Max: now, MaxMsg: "credential is not yet valid"}
		}
		if err := check.AssertValidDate("credential.issuanceDate", issuanceDate, b); err != nil {
			return err
		}

		if expirationDate, ok := credential["expirationDate"]; ok {
			var b check.Bounds
			if verify {
				b = check.Bounds{Min: now, MinMsg: "credential has expired"}
			}
			if err := check.AssertValidDate("credential.expirationDate", expirationDate, b); err != nil {
				return err
			}
		}

	case contexts.V2:
		if validFrom, ok := credential["validFrom"]; ok {
			var b check.Bounds
			if verify {
				b = check.Bounds{Max: now, MaxMsg: "credential is not yet valid"}
			}
			if err := check.AssertValidDate("credential.validFrom", validFrom, b); err != nil {
				return err
			}
		}
		if validUntil, ok := credential["validUntil"]; ok {
			var b check.Bounds
			if verify {
				b = check.Bounds{Min: now, MinMsg: "credential has expired"}
			}
			if err := check.AssertValidDate("credential.validUntil", validUntil, b); err != nil {
				return err
			}
		}
	}
	return nil
}

// checkStatusEntries requires each credentialStatus entry to be an object
// carrying a type, with an optional URI id.
func checkStatusEntries(credential jsonmap.JSONMap) error {
	status, present := credential["credentialStatus"]
	if !present {
		return nil
	}
	return check.AssertAllowMultiple("credential.credentialStatus", status,
		func(path string, item interface{}) error {
			rec, err := check.AssertRecord(path, item, false)
			if err != nil {
				return err
			}
			if err := check.AssertTypePresent(path+".type", rec["type"]); err != nil {
				return err
			}
			if id, ok := rec["id"]; ok {
				return check.AssertURI(path+".id", id)
			}
			return nil
		})
}

// checkEvidence requires each evidence entry to resolve to a URI, either
// directly or through an id field.
func checkEvidence(credential jsonmap.JSONMap) error {
	evidence, present := credential["evidence"]
	if !present {
		return nil
	}
	return check.AssertAllowMultiple("credential.evidence", evidence,
		func(path string, item interface{}) error {
			if _, ok := item.(string); ok {
				return check.AssertURI(path, item)
			}
			rec, err := check.AssertRecord(path, item, false)
			if err != nil {
				return err
			}
			id, ok := rec["id"]
			if !ok {
				return check.NewStructuralErrorf(path+".id", "is required")
			}
			return check.AssertURI(path+".id", id)
		})
}

// checkTypedEntries requires each entry of a single-or-array field to be an
// object carrying a type.
func checkTypedEntries(path string, v interface{}) error {
	if v == nil {
		return nil
	}
	return check.AssertAllowMultiple(path, v,
		func(path string, item interface{}) error {
			rec, err := check.AssertRecord(path, item, false)
			if err != nil {
				return err
			}
			return check.AssertTypePresent(path+".type", rec["type"])
		})
}
