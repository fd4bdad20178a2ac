package validate

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	passwordMinLength = 6
	passwordMaxLength = 100
)

var (
	letterRe  = regexp.MustCompile(`[a-zA-Zа-яА-ЯёЁ]`)
	digitRe   = regexp.MustCompile(`\d`)
	lowerRe   = regexp.MustCompile(`[a-z]`)
	upperRe   = regexp.MustCompile(`[A-Z]`)
	specialRe = regexp.MustCompile(`[!@#$%^&*(),.?"':{}|<>]`)
)

// Password strength labels produced by Strength.
const (
	StrengthWeak       = "weak"
	StrengthMedium     = "medium"
	StrengthStrong     = "strong"
	StrengthVeryStrong = "very strong"
)

// Password checks the basic password rules: 6-100 characters with at least
// one letter (Latin or Cyrillic) and one digit.
func Password(password string) (bool, string) {
	if strings.TrimSpace(password) == "" {
		return false, "password is required"
	}

	length := utf8.RuneCountInString(password)
	if length < passwordMinLength {
		return false, "password must be at least 6 characters"
	}
	if length > passwordMaxLength {
		return false, "password must be at most 100 characters"
	}
	if !letterRe.MatchString(password) {
		return false, "password must contain at least one letter"
	}
	if !digitRe.MatchString(password) {
		return false, "password must contain at least one digit"
	}
	return true, ""
}

// IsStrongPassword reports whether the password is at least 8 characters and
// contains all four character classes. Independent of the Strength score.
func IsStrongPassword(password string) bool {
	if strings.TrimSpace(password) == "" || utf8.RuneCountInString(password) < 8 {
		return false
	}
	return upperRe.MatchString(password) &&
		lowerRe.MatchString(password) &&
		digitRe.MatchString(password) &&
		specialRe.MatchString(password)
}

// Strength classifies the password on a 0-6 point scale built from length
// thresholds and character-class presence.
func Strength(password string) string {
	if strings.TrimSpace(password) == "" {
		return StrengthWeak
	}

	score := 0
	length := utf8.RuneCountInString(password)
	if length >= 8 {
		score++
	}
	if length >= 12 {
		score++
	}
	if lowerRe.MatchString(password) {
		score++
	}
	if upperRe.MatchString(password) {
		score++
	}
	if digitRe.MatchString(password) {
		score++
	}
	if specialRe.MatchString(password) {
		score++
	}

	switch {
	case score <= 2:
		return StrengthWeak
	case score <= 4:
		return StrengthMedium
	case score == 5:
		return StrengthStrong
	default:
		return StrengthVeryStrong
	}
}
