package feed

import (
	"crypto/md5" //nolint:gosec // the upstream API demands md5, not used for security
	"crypto/sha1" //nolint:gosec // same, sha1 is part of the wire contract
	"encoding/hex"
	"fmt"
	"strings"
)

// signedParamOrder is the canonical key order the upstream hashes. The order
// is part of the wire contract and must never be re-sorted.
var signedParamOrder = []string{"app", "last_time", "os", "rn", "sv"}

// BuildQuery serializes params in the canonical key order as key=value pairs
// joined by "&". Keys outside the canonical set are ignored.
func BuildQuery(params map[string]string) string {
	pairs := make([]string, 0, len(signedParamOrder))
	for _, key := range signedParamOrder {
		if v, ok := params[key]; ok {
			pairs = append(pairs, key+"="+v)
		}
	}
	return strings.Join(pairs, "&")
}

// Sign produces the tamper-evident signature over the canonical query string:
// hex(md5(hex(sha1(query)))). Pure function, byte-identical output for
// byte-identical input.
func Sign(query string) string {
	sha := sha1.Sum([]byte(query)) //nolint:gosec // wire contract
	shaHex := hex.EncodeToString(sha[:])
	sum := md5.Sum([]byte(shaHex)) //nolint:gosec // wire contract
	return hex.EncodeToString(sum[:])
}

// SignedURL builds the full request URL for the given endpoint and params.
func SignedURL(endpoint string, params map[string]string) string {
	query := BuildQuery(params)
	return fmt.Sprintf("%s?%s&sign=%s", endpoint, query, Sign(query))
}
