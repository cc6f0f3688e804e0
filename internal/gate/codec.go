package gate

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// EncodeCredential packs a username/password pair into the opaque token
// carried by both the Authorization header and the session cookie.
func EncodeCredential(username string, password string) string {
	return base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
}

// DecodeCredential reverses EncodeCredential. A token that is not valid
// standard base64 is an error. A decoded token without a colon is a bare
// username with an empty password; everything after the first colon is the
// password, colons included.
func DecodeCredential(token string) (string, string, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return "", "", fmt.Errorf("failed to decode credential token: %w", err)
	}

	decoded := string(raw)
	if i := strings.IndexByte(decoded, ':'); i >= 0 {
		return decoded[:i], decoded[i+1:], nil
	}

	return decoded, "", nil
}
