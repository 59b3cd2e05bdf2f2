package contexts

import (
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/piprate/json-gold/ld"
)

//go:embed data/credentials-v1.jsonld data/credentials-v2.jsonld
var contextFS embed.FS

var embeddedDocs = map[string]string{
	CredentialsV1: "data/credentials-v1.jsonld",
	CredentialsV2: "data/credentials-v2.jsonld",
}

// DocumentLoader resolves a closed set of embedded, locally-known context
// identifiers. Any other URL fails with a loading error: the loader never
// falls back to a network fetch.
type DocumentLoader struct {
	docs map[string]*ld.RemoteDocument
}

var (
	defaultLoader     *DocumentLoader
	defaultLoaderOnce sync.Once
)

// NewDocumentLoader builds a loader over the embedded context documents.
func NewDocumentLoader() *DocumentLoader {
	docs := make(map[string]*ld.RemoteDocument, len(embeddedDocs))
	for u, path := range embeddedDocs {
		raw, err := contextFS.ReadFile(path)
		if err != nil {
			panic(fmt.Sprintf("embedded context %s missing: %v", u, err))
		}
		var doc interface{}
		if err := json.Unmarshal(raw, &doc); err != nil {
			panic(fmt.Sprintf("embedded context %s malformed: %v", u, err))
		}
		docs[u] = &ld.RemoteDocument{DocumentURL: u, Document: doc}
	}
	return &DocumentLoader{docs: docs}
}

// DefaultDocumentLoader returns the shared embedded-context loader.
func DefaultDocumentLoader() *DocumentLoader {
	defaultLoaderOnce.Do(func() {
		defaultLoader = NewDocumentLoader()
	})
	return defaultLoader
}

// LoadDocument implements ld.DocumentLoader over the embedded set.
func (l *DocumentLoader) LoadDocument(u string) (*ld.RemoteDocument, error) {
	if doc, ok := l.docs[u]; ok {
		return doc, nil
	}
	return nil, ld.NewJsonLdError(ld.LoadingDocumentFailed,
		fmt.Sprintf("context document not found: %s", u))
}
