package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstFromDocument(t *testing.T) {
	proofObject := map[string]interface{}{
		"type":               "DataIntegrityProof",
		"created":            "2024-01-01T00:00:00Z",
		"verificationMethod": "did:example:issuer#key-1",
		"proofPurpose":       "assertionMethod",
		"proofValue":         "2af3",
		"cryptosuite":        "ecdsa-rdfc-2019",
	}

	t.Run("Single proof object", func(t *testing.T) {
		doc := map[string]interface{}{"proof": proofObject}
		proof, err := FirstFromDocument(doc)
		require.NoError(t, err)
		assert.Equal(t, "DataIntegrityProof", proof.Type)
		assert.Equal(t, "did:example:issuer#key-1", proof.VerificationMethod)
		assert.Equal(t, "assertionMethod", proof.ProofPurpose)
		assert.Equal(t, "ecdsa-rdfc-2019", proof.Cryptosuite)
	})

	t.Run("Array takes the first proof", func(t *testing.T) {
		second := map[string]interface{}{
			"type":         "DataIntegrityProof",
			"proofPurpose": "authentication",
		}
		doc := map[string]interface{}{"proof": []interface{}{proofObject, second}}
		proof, err := FirstFromDocument(doc)
		require.NoError(t, err)
		assert.Equal(t, "assertionMethod", proof.ProofPurpose)
	})

	t.Run("Missing proof", func(t *testing.T) {
		_, err := FirstFromDocument(map[string]interface{}{"id": "urn:cred:1"})
		require.Error(t, err)
	})

	t.Run("Empty proof array", func(t *testing.T) {
		_, err := FirstFromDocument(map[string]interface{}{"proof": []interface{}{}})
		require.Error(t, err)
	})

	t.Run("Proof is not an object", func(t *testing.T) {
		_, err := FirstFromDocument(map[string]interface{}{"proof": "not-an-object"})
		require.Error(t, err)
	})
}

func TestProofRoundTrip(t *testing.T) {
	p := &Proof{
		Type:               "DataIntegrityProof",
		Created:            "2024-01-01T00:00:00Z",
		VerificationMethod: "did:example:holder#key-1",
		ProofPurpose:       "authentication",
		ProofValue:         "2af3",
		Cryptosuite:        "ecdsa-rdfc-2019",
		Challenge:          "nonce-1",
		Domain:             "https://verifier.example.com",
	}

	raw := p.ToRaw()
	assert.Equal(t, "nonce-1", raw["challenge"])
	_, hasEmpty := raw[""]
	assert.False(t, hasEmpty)

	back, err := FromRaw(raw)
	require.NoError(t, err)
	assert.Equal(t, p, back)
}

func TestToRawOmitsEmptyFields(t *testing.T) {
	p := &Proof{Type: "DataIntegrityProof", ProofPurpose: "assertionMethod"}
	raw := p.ToRaw()
	assert.Len(t, raw, 2)
	_, hasChallenge := raw["challenge"]
	assert.False(t, hasChallenge)
}
