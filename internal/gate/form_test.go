package gate_test

import (
	"testing"

	"gatehouse/internal/gate"

	"github.com/stretchr/testify/require"
)

func TestDecodeForm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want map[string]string
	}{
		{"Empty", "", map[string]string{}},
		{"Single", "username=admin", map[string]string{"username": "admin"}},
		{"Multiple", "username=admin&password=secret", map[string]string{"username": "admin", "password": "secret"}},
		{"PlusBecomesSpace", "password=open+sesame", map[string]string{"password": "open sesame"}},
		{"PercentDecoded", "password=open%20sesame", map[string]string{"password": "open sesame"}},
		{"EscapedPlusSurvives", "v=a%2Bb", map[string]string{"v": "a+b"}},
		{"EscapedAmpersand", "v=a%26b", map[string]string{"v": "a&b"}},
		{"EscapedEquals", "v=a%3Db", map[string]string{"v": "a=b"}},
		{"PlusInNameUntouched", "user+name=x", map[string]string{"user+name": "x"}},
		{"EscapeInNameUntouched", "user%20name=x", map[string]string{"user%20name": "x"}},
		{"MalformedEscapeKept", "v=50%", map[string]string{"v": "50%"}},
		{"MalformedEscapeKeptWithPlus", "v=a+b%zz", map[string]string{"v": "a b%zz"}},
		{"SegmentWithoutEquals", "justakey", map[string]string{}},
		{"MixedSegments", "justakey&a=1", map[string]string{"a": "1"}},
		{"TrailingAmpersand", "a=1&", map[string]string{"a": "1"}},
		{"EmptySegments", "&&a=1", map[string]string{"a": "1"}},
		{"DuplicateNameLastWins", "a=1&a=2", map[string]string{"a": "2"}},
		{"ValueWithEquals", "a=b=c", map[string]string{"a": "b=c"}},
		{"EmptyValue", "a=", map[string]string{"a": ""}},
		{"EmptyName", "=v", map[string]string{"": "v"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, gate.DecodeForm([]byte(tt.body)), "decoding %q", tt.body)
		})
	}
}
