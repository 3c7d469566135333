// Package b64 handles the two base64 dialects found in player links.
//
// Older links use standard base64; newer ones use the URL-safe alphabet with
// padding stripped. Decode accepts both, trying the URL-safe form first.
package b64

import (
	"encoding/base64"
	"fmt"
)

// Encode produces the URL-safe, unpadded form used for all newly minted links.
func Encode(s string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(s))
}

// Decode decodes a payload in any of the accepted dialects. The URL-safe
// variant is tried first since both forms appear in circulating links.
func Decode(s string) (string, error) {
	for _, enc := range []*base64.Encoding{
		base64.RawURLEncoding,
		base64.URLEncoding,
		base64.RawStdEncoding,
		base64.StdEncoding,
	} {
		if out, err := enc.DecodeString(s); err == nil {
			return string(out), nil
		}
	}
	return "", fmt.Errorf("b64: payload is not valid base64")
}
