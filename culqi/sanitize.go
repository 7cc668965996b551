package culqi

import "strings"

// Field-length limits enforced by the upstream API.
const (
	maxNameLen    = 50
	maxPhoneLen   = 15
	maxAddressLen = 100
	maxCityLen    = 30
)

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}

// sanitizePhone strips every non-digit character and truncates the rest.
func sanitizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return truncate(b.String(), maxPhoneLen)
}

// taggedEmail inserts the environment tag before the @ so sandbox traffic
// stays identifiable and separated per environment.
func taggedEmail(email, env string) string {
	return strings.Replace(email, "@", "_"+env+"@", 1)
}
