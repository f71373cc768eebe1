package utils

import (
	"regexp"
	"strings"
	"unicode"
)

var htmlTag = regexp.MustCompile(`<[^>]*>`)

// SanitizeString trims, strips HTML tags and drops control characters.
func SanitizeString(input string) string {
	return removeControlChars(stripHTML(strings.TrimSpace(input)), false)
}

// SanitizeOptional applies SanitizeString to an optional field.
func SanitizeOptional(input *string) *string {
	if input == nil {
		return nil
	}
	s := SanitizeString(*input)
	return &s
}

// SanitizeEmail sanitizes email input
func SanitizeEmail(email string) string {
	return strings.ToLower(SanitizeString(email))
}

// SanitizePhone keeps digits and the usual separators only.
func SanitizePhone(phone string) string {
	phone = stripHTML(strings.TrimSpace(phone))

	var result strings.Builder
	for _, r := range phone {
		if unicode.IsDigit(r) || r == '+' || r == '-' || r == ' ' || r == '(' || r == ')' {
			result.WriteRune(r)
		}
	}

	return result.String()
}

// SanitizeText sanitizes multi-line text input, keeping newlines and tabs.
func SanitizeText(input string) string {
	return removeControlChars(stripHTML(strings.TrimSpace(input)), true)
}

// SanitizeList sanitizes every entry and drops the empty ones.
func SanitizeList(items []string) []string {
	if items == nil {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := SanitizeString(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func stripHTML(input string) string {
	return htmlTag.ReplaceAllString(input, "")
}

func removeControlChars(input string, keepLayout bool) string {
	var result strings.Builder
	for _, r := range input {
		switch {
		case keepLayout && (r == '\n' || r == '\t' || r == '\r'):
			result.WriteRune(r)
		case unicode.IsPrint(r):
			result.WriteRune(r)
		case r == ' ':
			result.WriteRune(r)
		}
	}
	return result.String()
}
