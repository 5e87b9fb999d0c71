package identity

import "regexp"

var nonDigits = regexp.MustCompile(`\D+`)

// NormalizePhone brings a phone number to the canonical +7XXXXXXXXXX form.
// Brackets, spaces and dashes are discarded; the last 10 digits are kept.
// Returns "" if the input does not yield exactly 10 digits.
func NormalizePhone(phone string) string {
	if phone == "" {
		return ""
	}

	digits := nonDigits.ReplaceAllString(phone, "")
	if len(digits) > 10 {
		digits = digits[len(digits)-10:]
	}
	if len(digits) != 10 {
		return ""
	}

	return "+7" + digits
}
