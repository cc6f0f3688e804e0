package gate

import (
	"net/url"
	"strings"
)

// DecodeForm parses an application/x-www-form-urlencoded body into a
// field-name to value map. Pairs are separated by '&' and split on the first
// '='; a segment with no '=' is skipped. Field names are used verbatim. In
// values '+' becomes a space before percent-decoding, and a value whose
// percent-escapes do not decode is kept in its plus-replaced form instead of
// being rejected. A repeated field name keeps the last value.
func DecodeForm(body []byte) map[string]string {
	fields := make(map[string]string)

	for _, segment := range strings.Split(string(body), "&") {
		eq := strings.IndexByte(segment, '=')
		if eq < 0 {
			continue
		}

		value := strings.ReplaceAll(segment[eq+1:], "+", " ")
		if decoded, err := url.PathUnescape(value); err == nil {
			value = decoded
		}

		fields[segment[:eq]] = value
	}

	return fields
}
