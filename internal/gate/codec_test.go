package gate_test

import (
	"testing"

	"gatehouse/internal/gate"

	"github.com/stretchr/testify/require"
)

func TestEncodeCredential(t *testing.T) {
	t.Parallel()

	require.Equal(t, "YWRtaW46c2VjcmV0", gate.EncodeCredential("admin", "secret"), "expected standard base64 of username:password")
}

func TestDecodeCredential(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"Simple", "admin", "secret"},
		{"EmptyPassword", "admin", ""},
		{"EmptyBoth", "", ""},
		{"PasswordWithColons", "admin", "se:cr:et"},
		{"PasswordWithSpace", "admin", "open sesame"},
		{"NonASCII", "ädmin", "pässword"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := gate.EncodeCredential(tt.username, tt.password)

			username, password, err := gate.DecodeCredential(token)
			require.NoError(t, err, "expected token to decode")
			require.Equal(t, tt.username, username, "expected username to survive the round trip")
			require.Equal(t, tt.password, password, "expected password to survive the round trip")
		})
	}
}

func TestDecodeCredential_NoColon(t *testing.T) {
	t.Parallel()

	// base64("justuser")
	username, password, err := gate.DecodeCredential("anVzdHVzZXI=")
	require.NoError(t, err, "expected token without a colon to decode")
	require.Equal(t, "justuser", username, "expected the whole decode to be the username")
	require.Equal(t, "", password, "expected an empty password")
}

func TestDecodeCredential_InvalidBase64(t *testing.T) {
	t.Parallel()

	for _, token := range []string{"!!!", "YWJj$", "YQ="} {
		_, _, err := gate.DecodeCredential(token)
		require.Error(t, err, "expected %q to be rejected", token)
	}
}
