package credentialstatus

// StatusListCredential models the Verifiable Credential published at a
// statusListCredential URL. Only the fields the checker needs are typed.
type StatusListCredential struct {
	Context           []string                    `json:"@context"`
	ID                string                      `json:"id"`
	Type              []string                    `json:"type"`
	Issuer            string                      `json:"issuer"`
	ValidFrom         string                      `json:"validFrom,omitempty"`
	ValidUntil        string                      `json:"validUntil,omitempty"`
	CredentialSubject StatusListCredentialSubject `json:"credentialSubject"`
	Proof             map[string]interface{}      `json:"proof,omitempty"`
}

// StatusListCredentialSubject carries the encoded bitstring list.
type StatusListCredentialSubject struct {
	ID            string `json:"id"`
	Type          string `json:"type"`
	StatusPurpose string `json:"statusPurpose"`
	EncodedList   string `json:"encodedList"`
}
