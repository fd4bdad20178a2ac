// Package validate holds the input validation rules applied at the gateway
// boundary before any upstream call is made. All validators are pure and
// return a verdict together with a human-readable message.
package validate

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	usernameMinLength = 3
	usernameMaxLength = 50
)

// Latin and Cyrillic letters, digits, hyphen and underscore.
var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_\-а-яА-ЯёЁ]+$`)

// Username checks the login against the registration rules: 3-50 characters
// from the Latin/Cyrillic letter, digit, hyphen and underscore set, not
// starting or ending with a hyphen or underscore.
func Username(username string) (bool, string) {
	if strings.TrimSpace(username) == "" {
		return false, "login is required"
	}

	length := utf8.RuneCountInString(username)
	if length < usernameMinLength {
		return false, "login must be at least 3 characters"
	}
	if length > usernameMaxLength {
		return false, "login must be at most 50 characters"
	}

	if !usernameRe.MatchString(username) {
		return false, "login may only contain letters, digits, hyphen and underscore"
	}

	if strings.HasPrefix(username, "-") || strings.HasPrefix(username, "_") ||
		strings.HasSuffix(username, "-") || strings.HasSuffix(username, "_") {
		return false, "login must not start or end with a hyphen or underscore"
	}

	return true, ""
}
