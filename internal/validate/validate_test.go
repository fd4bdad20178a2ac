package validate_test

import (
	"strings"
	"testing"

	"github.com/icutech/auth-gateway/internal/validate"
)

func TestUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		valid    bool
	}{
		{"simple", "alice", true},
		{"with digits", "user42", true},
		{"with hyphen inside", "my-name", true},
		{"with underscore inside", "my_name", true},
		{"cyrillic", "Пользователь", true},
		{"mixed scripts", "userИван", true},
		{"min length", "abc", true},
		{"max length", strings.Repeat("a", 50), true},

		{"empty", "", false},
		{"whitespace", "   ", false},
		{"too short", "ab", false},
		{"too long", strings.Repeat("a", 51), false},
		{"leading hyphen", "-user", false},
		{"trailing hyphen", "user-", false},
		{"leading underscore", "_user", false},
		{"trailing underscore", "user_", false},
		{"spaces inside", "a user", false},
		{"special chars", "user!", false},
		{"at sign", "user@host", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, msg := validate.Username(tt.username)
			if valid != tt.valid {
				t.Errorf("Username(%q) = %v (%q), want %v", tt.username, valid, msg, tt.valid)
			}
			if !valid && msg == "" {
				t.Error("invalid verdict must carry a message")
			}
		})
	}
}

func TestPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		valid    bool
		msgPart  string
	}{
		{"letters and digit", "abc123", true, ""},
		{"cyrillic letter and digit", "пароль1", true, ""},
		{"no digit", "abcdef", false, "digit"},
		{"no letter", "123456", false, "letter"},
		{"too short", "12345", false, "at least 6"},
		{"empty", "", false, "required"},
		{"too long", strings.Repeat("a1", 51), false, "at most 100"},

		// Length counts characters, not bytes: Cyrillic letters are two
		// bytes each in UTF-8.
		{"cyrillic 4 chars is too short", "абв1", false, "at least 6"},
		{"cyrillic 6 chars is long enough", "абвгд1", true, ""},
		{"cyrillic 100 chars fits", strings.Repeat("ф", 99) + "1", true, ""},
		{"cyrillic 101 chars is too long", strings.Repeat("ф", 100) + "1", false, "at most 100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, msg := validate.Password(tt.password)
			if valid != tt.valid {
				t.Errorf("Password(%q) = %v (%q), want %v", tt.password, valid, msg, tt.valid)
			}
			if tt.msgPart != "" && !strings.Contains(msg, tt.msgPart) {
				t.Errorf("message %q should mention %q", msg, tt.msgPart)
			}
		})
	}
}

func TestStrength(t *testing.T) {
	tests := []struct {
		password string
		expected string
	}{
		{"", validate.StrengthWeak},
		{"abc", validate.StrengthWeak},
		{"abc123", validate.StrengthWeak},
		{"abcdefg1", validate.StrengthMedium},
		{"Abcdefg1", validate.StrengthMedium},
		{"Abcdefghijk1", validate.StrengthStrong},
		{"Abc123!@#LongPassword", validate.StrengthVeryStrong},
		// 6 characters in 10 bytes: the length bonus must not apply.
		{"абвг1!", validate.StrengthWeak},
	}

	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			if got := validate.Strength(tt.password); got != tt.expected {
				t.Errorf("Strength(%q) = %q, want %q", tt.password, got, tt.expected)
			}
		})
	}
}

func TestIsStrongPassword(t *testing.T) {
	tests := []struct {
		password string
		strong   bool
	}{
		{"Abc123!@", true},
		{"Abc123!@#LongPassword", true},
		{"abc123!@", false}, // no uppercase
		{"ABC123!@", false}, // no lowercase
		{"Abcdef!@", false}, // no digit
		{"Abc12345", false}, // no special
		{"Ab1!", false},     // too short
		{"Aа1!bв", false},   // 6 characters in 8 bytes, still too short
		{"", false},
	}

	for _, tt := range tests {
		if got := validate.IsStrongPassword(tt.password); got != tt.strong {
			t.Errorf("IsStrongPassword(%q) = %v, want %v", tt.password, got, tt.strong)
		}
	}
}

func TestEmail(t *testing.T) {
	longLocal := strings.Repeat("a", 65) + "@example.com"
	longEmail := strings.Repeat("a", 250) + "@x.io"

	tests := []struct {
		name   string
		email  string
		strict bool
		valid  bool
	}{
		{"simple", "user@example.com", false, true},
		{"subdomain", "user@mail.example.co.uk", false, true},
		{"plus tag", "user+tag@example.com", false, true},
		{"strict ok", "user.name@example.com", true, true},

		{"empty", "", false, false},
		{"no at", "userexample.com", false, false},
		{"no dot in domain", "user@localhost", false, false},
		{"two ats", "a@b@c.com", false, false},
		{"spaces", "us er@example.com", false, false},
		{"local too long", longLocal, false, false},
		{"whole too long", longEmail, false, false},
		{"strict rejects leading dash domain", "user@-bad.com", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, msg := validate.Email(tt.email, tt.strict)
			if valid != tt.valid {
				t.Errorf("Email(%q, strict=%v) = %v (%q), want %v", tt.email, tt.strict, valid, msg, tt.valid)
			}
		})
	}
}
