package vc

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"github.com/credentio/vc-go/credential/common/jsonmap"
)

// validateCredentialSchema validates the credential against every
// credentialSchema entry it declares. Entries without a resolvable id fail;
// a credential without credentialSchema passes vacuously.
func validateCredentialSchema(credential jsonmap.JSONMap) error {
	for _, raw := range jsonmap.AsArray(credential["credentialSchema"]) {
		schemaMap, ok := raw.(map[string]interface{})
		if !ok {
			return fmt.Errorf("credentialSchema entry must be an object, got %T", raw)
		}
		schemaID, ok := schemaMap["id"].(string)
		if !ok || schemaID == "" {
			return fmt.Errorf("credentialSchema.id must be a non-empty string")
		}

		schemaLoader := gojsonschema.NewReferenceLoader(schemaID)
		credentialLoader := gojsonschema.NewGoLoader(credential)

		result, err := gojsonschema.Validate(schemaLoader, credentialLoader)
		if err != nil {
			return fmt.Errorf("failed to validate against schema %q: %w", schemaID, err)
		}
		if !result.Valid() {
			return fmt.Errorf("credential does not satisfy schema %q: %v", schemaID, result.Errors())
		}
	}
	return nil
}
