package verificationmethod

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// VerificationMethodEntry represents a single verification method in a DID
// Document.
type VerificationMethodEntry struct {
	ID           string `json:"id"`
	Type         string `json:"type"`
	Controller   string `json:"controller"`
	PublicKeyHex string `json:"publicKeyHex"`
}

// DIDDocument represents the structure of a resolved DID Document.
type DIDDocument struct {
	Context            []string                  `json:"@context"`
	ID                 string                    `json:"id"`
	VerificationMethod []VerificationMethodEntry `json:"verificationMethod"`
	Authentication     []string                  `json:"authentication"`
	AssertionMethod    []string                  `json:"assertionMethod"`
	Controller         string                    `json:"controller"`
}

// Resolver fetches DID documents from a resolver endpoint and looks up the
// public keys behind verification method URLs.
type Resolver struct {
	baseURL string
	client  *http.Client
}

// NewResolver creates a resolver against the given base URL. Outbound
// requests carry otelhttp instrumentation.
func NewResolver(baseURL string) *Resolver {
	return &Resolver{
		baseURL: baseURL,
		client: &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// GetPublicKey retrieves the hex public key for a verification method URL.
func (r *Resolver) GetPublicKey(ctx context.Context, verificationMethodURL string) (string, error) {
	didPart, _, _ := strings.Cut(verificationMethodURL, "#")
	if didPart == "" {
		return "", fmt.Errorf("invalid verification method URL, could not extract DID: %s", verificationMethodURL)
	}

	doc, err := r.ResolveDocument(ctx, didPart)
	if err != nil {
		return "", fmt.Errorf("failed to resolve DID %q: %w", didPart, err)
	}

	for _, vm := range doc.VerificationMethod {
		if vm.ID == verificationMethodURL {
			return strings.TrimPrefix(vm.PublicKeyHex, "0x"), nil
		}
	}
	return "", fmt.Errorf("verification method %q not found in DID document", verificationMethodURL)
}

// ResolveDocument fetches and parses a DID document from the resolver
// endpoint.
func (r *Resolver) ResolveDocument(ctx context.Context, did string) (*DIDDocument, error) {
	apiURL := r.baseURL + "/" + url.PathEscape(did)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build DID resolver request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make HTTP request to DID resolver: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("DID resolver API returned non-200 status: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body from DID resolver: %w", err)
	}

	var doc DIDDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal DID document JSON: %w", err)
	}
	return &doc, nil
}

// ControllerOf extracts the DID controlling a verification method URL by
// stripping the key fragment.
func ControllerOf(verificationMethodURL string) (string, error) {
	if verificationMethodURL == "" {
		return "", fmt.Errorf("verification method is empty")
	}
	didPart, _, found := strings.Cut(verificationMethodURL, "#")
	if !found || didPart == "" {
		return "", fmt.Errorf("invalid verification method URL, could not extract DID: %s", verificationMethodURL)
	}
	return didPart, nil
}
