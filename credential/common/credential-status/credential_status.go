package credentialstatus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/credentio/vc-go/credential/common/jsonmap"
	"github.com/credentio/vc-go/credential/common/util"
)

// Result is the outcome of a status check.
type Result struct {
	Verified bool
	// Message explains a negative result, e.g. which entry was revoked.
	Message string
}

// Checker is the external status oracle the verification pipeline consults
// whenever a credential carries a credentialStatus field.
type Checker interface {
	CheckStatus(ctx context.Context, credential jsonmap.JSONMap) (*Result, error)
}

// ListChecker checks bitstring status-list entries by fetching the published
// status list credential and inspecting the bit at the entry's index.
type ListChecker struct {
	client *http.Client
}

// NewListChecker creates a checker with a sensible default timeout and
// otelhttp-instrumented transport.
func NewListChecker() *ListChecker {
	return &ListChecker{
		client: &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// CheckStatus implements Checker. Every revocation entry on the credential is
// consulted; the first revoked entry yields a negative result.
func (c *ListChecker) CheckStatus(ctx context.Context, credential jsonmap.JSONMap) (*Result, error) {
	entries := jsonmap.AsArray(credential["credentialStatus"])
	if len(entries) == 0 {
		return nil, fmt.Errorf("credential has no credentialStatus")
	}

	for _, raw := range entries {
		entry, ok := raw.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("invalid credentialStatus entry: expected object, got %T", raw)
		}

		purpose, _ := entry["statusPurpose"].(string)
		if purpose != "" && purpose != "revocation" {
			continue
		}

		listURL, _ := entry["statusListCredential"].(string)
		if listURL == "" {
			return nil, fmt.Errorf("credentialStatus entry has no statusListCredential")
		}
		indexStr, _ := entry["statusListIndex"].(string)
		index, err := strconv.Atoi(indexStr)
		if err != nil {
			return nil, fmt.Errorf("invalid statusListIndex %q: %w", indexStr, err)
		}

		list, err := c.FetchStatusListCredential(ctx, listURL)
		if err != nil {
			return nil, err
		}

		revoked, err := IsRevoked(index, list.CredentialSubject)
		if err != nil {
			return nil, err
		}
		if revoked {
			return &Result{
				Verified: false,
				Message:  fmt.Sprintf("credential is revoked at index %d of %s", index, listURL),
			}, nil
		}
	}

	return &Result{Verified: true}, nil
}

// FetchStatusListCredential fetches and parses the status list credential at
// the given URL.
func (c *ListChecker) FetchStatusListCredential(ctx context.Context, listURL string) (*StatusListCredential, error) {
	if listURL == "" {
		return nil, fmt.Errorf("statusListCredential URL is empty")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, listURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build status list request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call status list credential endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status list credential API returned non-200 status: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read status list credential response body: %w", err)
	}

	var result StatusListCredential
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal status list credential JSON: %w", err)
	}
	return &result, nil
}

// IsRevoked checks the bit at the given position of the subject's encoded
// list. Non-revocation lists always report not revoked.
func IsRevoked(position int, subject StatusListCredentialSubject) (bool, error) {
	if subject.StatusPurpose != "revocation" {
		return false, nil
	}

	bits, err := util.DecompressFromBase64URL(subject.EncodedList)
	if err != nil {
		return false, fmt.Errorf("failed to decode encodedList: %w", err)
	}

	byteIndex := position / 8
	bitIndex := position % 8
	if byteIndex < 0 || byteIndex >= len(bits) {
		return false, fmt.Errorf("status position %d is outside the list", position)
	}

	return (bits[byteIndex]>>bitIndex)&1 == 1, nil
}
