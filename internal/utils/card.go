package utils

import (
	"strings"
)

// MaskCardNumber hides the middle digits of a card number, keeping the 6-digit BIN and the last 4
func MaskCardNumber(cardNumber string) string {
	n := []rune(strings.TrimSpace(cardNumber))
	if len(n) < 11 {
		return strings.Repeat("*", len(n))
	}

	var builder strings.Builder
	builder.WriteString(string(n[:6]))
	builder.WriteString(strings.Repeat("*", len(n)-10))
	builder.WriteString(string(n[len(n)-4:]))
	return builder.String()
}

// MaskID keeps only the last 3 characters of a customer identifier
func MaskID(id string) string {
	r := []rune(id)
	if len(r) <= 3 {
		return strings.Repeat("*", len(r))
	}
	return strings.Repeat("*", len(r)-3) + string(r[len(r)-3:])
}
