package manifest

import "strings"

// parseAttributes tokenizes a directive attribute list: KEY=VALUE pairs
// separated by commas. A value is either a double-quoted span (taken
// verbatim between the quotes, embedded commas preserved) or an unquoted
// span terminated by the next comma or end of line. Tokens without an
// '=' are skipped. Duplicate keys: last occurrence wins.
func parseAttributes(s string) Attributes {
	attrs := make(Attributes)

	for i := 0; i < len(s); {
		eq := strings.IndexByte(s[i:], '=')
		if eq < 0 {
			break
		}
		if comma := strings.IndexByte(s[i:], ','); comma >= 0 && comma < eq {
			// Token with no '=' before the next comma: skip it.
			i += comma + 1
			continue
		}
		key := strings.TrimSpace(s[i : i+eq])
		i += eq + 1

		var value string
		if i < len(s) && s[i] == '"' {
			i++
			end := strings.IndexByte(s[i:], '"')
			if end < 0 {
				// Unterminated quote: consume the rest of the line.
				end = len(s) - i
			}
			value = s[i : i+end]
			i += end
			if i < len(s) && s[i] == '"' {
				i++
			}
			// Skip to the comma that ends this token.
			if next := strings.IndexByte(s[i:], ','); next >= 0 {
				i += next + 1
			} else {
				i = len(s)
			}
		} else {
			end := strings.IndexByte(s[i:], ',')
			if end < 0 {
				end = len(s) - i
			}
			value = strings.TrimSpace(s[i : i+end])
			i += end
			if i < len(s) {
				i++ // consume the comma
			}
		}

		if key != "" {
			attrs[key] = value
		}
	}

	return attrs
}
