package gate

import "strings"

// CookieValue extracts the named cookie's value from a raw Cookie header.
// Pairs are scanned left to right with spaces after each ';' skipped; the
// name match is exact and the first match wins. The boolean reports whether
// the header held such a cookie at all, so an empty value is distinguishable
// from an absent one.
func CookieValue(header string, name string) (string, bool) {
	search := name + "="

	for pos := 0; pos < len(header); {
		for pos < len(header) && header[pos] == ' ' {
			pos++
		}

		if strings.HasPrefix(header[pos:], search) {
			value := header[pos+len(search):]
			if semi := strings.IndexByte(value, ';'); semi >= 0 {
				value = value[:semi]
			}
			return value, true
		}

		semi := strings.IndexByte(header[pos:], ';')
		if semi < 0 {
			break
		}
		pos += semi + 1
	}

	return "", false
}
