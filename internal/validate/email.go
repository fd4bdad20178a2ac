package validate

import (
	"regexp"
	"strings"
)

const (
	emailMaxLength      = 254 // RFC 5321
	emailLocalMaxLength = 64  // RFC 5321
)

var (
	emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

	strictEmailRe = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)
)

// Email checks the address shape. The default rule is a permissive
// local@domain.tld match; strict switches to an RFC-flavored pattern.
func Email(email string, strict bool) (bool, string) {
	if strings.TrimSpace(email) == "" {
		return false, "email is required"
	}
	if len(email) > emailMaxLength {
		return false, "email is too long"
	}

	re := emailRe
	if strict {
		re = strictEmailRe
	}
	if !re.MatchString(email) {
		return false, "invalid email format"
	}

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false, "email must contain exactly one @"
	}

	local, domain := parts[0], parts[1]
	if len(local) > emailLocalMaxLength {
		return false, "email local part is too long"
	}
	if len(domain) < 3 || !strings.Contains(domain, ".") {
		return false, "invalid email domain"
	}

	return true, ""
}
