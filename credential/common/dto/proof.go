package dto

import (
	"fmt"
)

// Proof represents a Linked Data Proof embedded in a credential or presentation.
type Proof struct {
	Type               string `json:"type"`
	Created            string `json:"created"`
	VerificationMethod string `json:"verificationMethod"`
	ProofPurpose       string `json:"proofPurpose"`
	ProofValue         string `json:"proofValue,omitempty"`
	Cryptosuite        string `json:"cryptosuite,omitempty"`
	Challenge          string `json:"challenge,omitempty"`
	Domain             string `json:"domain,omitempty"`
}

// FromRaw converts a decoded JSON proof value into a Proof struct.
func FromRaw(raw interface{}) (*Proof, error) {
	proofMap, ok := raw.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("invalid proof format: expected map[string]interface{}, got %T", raw)
	}

	p := &Proof{}
	if t, ok := proofMap["type"].(string); ok {
		p.Type = t
	}
	if created, ok := proofMap["created"].(string); ok {
		p.Created = created
	}
	if vm, ok := proofMap["verificationMethod"].(string); ok {
		p.VerificationMethod = vm
	}
	if pp, ok := proofMap["proofPurpose"].(string); ok {
		p.ProofPurpose = pp
	}
	if pv, ok := proofMap["proofValue"].(string); ok {
		p.ProofValue = pv
	}
	if cs, ok := proofMap["cryptosuite"].(string); ok {
		p.Cryptosuite = cs
	}
	if ch, ok := proofMap["challenge"].(string); ok {
		p.Challenge = ch
	}
	if dm, ok := proofMap["domain"].(string); ok {
		p.Domain = dm
	}
	return p, nil
}

// FirstFromDocument extracts the first proof from a document's proof field.
// The proof field may hold a single proof object or an array of them.
func FirstFromDocument(doc map[string]interface{}) (*Proof, error) {
	raw, ok := doc["proof"]
	if !ok || raw == nil {
		return nil, fmt.Errorf("document has no proof")
	}

	if arr, ok := raw.([]interface{}); ok {
		if len(arr) == 0 {
			return nil, fmt.Errorf("document proof array is empty")
		}
		return FromRaw(arr[0])
	}
	return FromRaw(raw)
}

// ToRaw converts a Proof struct back into a JSON-compatible map, omitting
// empty fields.
func (p *Proof) ToRaw() map[string]interface{} {
	proofMap := make(map[string]interface{})
	if p.Type != "" {
		proofMap["type"] = p.Type
	}
	if p.Created != "" {
		proofMap["created"] = p.Created
	}
	if p.VerificationMethod != "" {
		proofMap["verificationMethod"] = p.VerificationMethod
	}
	if p.ProofPurpose != "" {
		proofMap["proofPurpose"] = p.ProofPurpose
	}
	if p.ProofValue != "" {
		proofMap["proofValue"] = p.ProofValue
	}
	if p.Cryptosuite != "" {
		proofMap["cryptosuite"] = p.Cryptosuite
	}
	if p.Challenge != "" {
		proofMap["challenge"] = p.Challenge
	}
	if p.Domain != "" {
		proofMap["domain"] = p.Domain
	}
	return proofMap
}
