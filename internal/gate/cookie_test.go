package gate_test

import (
	"testing"

	"gatehouse/internal/gate"

	"github.com/stretchr/testify/require"
)

func TestCookieValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header string
		want   string
		found  bool
	}{
		{"EmptyHeader", "", "", false},
		{"OnlyCookie", "session=tok", "tok", true},
		{"FirstOfMany", "session=tok; other=1", "tok", true},
		{"LastOfMany", "a=1; b=2; session=tok", "tok", true},
		{"MiddleOfMany", "a=1; session=tok; b=2", "tok", true},
		{"ExtraSpaces", "a=1;   session=tok", "tok", true},
		{"NoSpaceSeparator", "a=1;session=tok", "tok", true},
		{"FirstMatchWins", "session=first; session=second", "first", true},
		{"LongerNameSkipped", "session2=x", "", false},
		{"PrefixedNameSkipped", "xsession=x", "", false},
		{"NameOnlyNoEquals", "session", "", false},
		{"EmptyValue", "session=", "", true},
		{"EmptyValueBeforeOthers", "session=; b=2", "", true},
		{"ValueWithEquals", "session=a=b", "a=b", true},
		{"ValueStopsAtSemicolon", "session=tok;b=2", "tok", true},
		{"OtherCookiesOnly", "a=1; b=2", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := gate.CookieValue(tt.header, "session")
			require.Equal(t, tt.found, found, "lookup in %q", tt.header)
			require.Equal(t, tt.want, got, "value in %q", tt.header)
		})
	}
}
