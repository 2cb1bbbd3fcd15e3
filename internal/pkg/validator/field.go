package validator

import (
	"strings"
	"unicode"
)

// snakeKey turns a Go field name into the key used in V10ValidationError.
// Initialisms stay together: NewPassword -> new_password, EmailHash -> email_hash,
// HTTPRoute -> http_route, EventID -> event_id.
func snakeKey(field string) string {
	rs := []rune(field)

	var sb strings.Builder
	sb.Grow(len(field) + 4)

	for i, r := range rs {
		if i > 0 && unicode.IsUpper(r) {
			prev := rs[i-1]
			endsAcronym := unicode.IsUpper(prev) && i+1 < len(rs) && unicode.IsLower(rs[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || endsAcronym {
				sb.WriteByte('_')
			}
		}
		sb.WriteRune(unicode.ToLower(r))
	}

	return sb.String()
}
