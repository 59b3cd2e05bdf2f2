package contexts

// Version identifies the credential data-model version a document declares
// through the first entry of its @context array.
type Version string

const (
	// V1 is the 1.0 data model: issuanceDate required, expirationDate optional.
	V1 Version = "1.0"
	// V2 is the 2.0 data model: validFrom and validUntil, both optional.
	V2 Version = "2.0"
)

// Recognized credential context identifiers.
const (
	CredentialsV1 = "https://www.w3.org/2018/credentials/v1"
	CredentialsV2 = "https://www.w3.org/ns/credentials/v2"
)

var versionByContext = map[string]Version{
	CredentialsV1: V1,
	CredentialsV2: V2,
}

var contextByVersion = map[Version]string{
	V1: CredentialsV1,
	V2: CredentialsV2,
}

// ExtractVersion maps a document's @context value to a data-model version.
// The context must be a non-empty array whose first entry is a recognized
// credential context identifier; anything else yields ok=false, which callers
// must treat as a structural failure rather than defaulting a version.
func ExtractVersion(context interface{}) (Version, bool) {
	arr, ok := context.([]interface{})
	if !ok || len(arr) == 0 {
		return "", false
	}
	first, ok := arr[0].(string)
	if !ok {
		return "", false
	}
	version, ok := versionByContext[first]
	return version, ok
}

// URLForVersion returns the context identifier for a data-model version.
func URLForVersion(v Version) (string, bool) {
	u, ok := contextByVersion[v]
	return u, ok
}
