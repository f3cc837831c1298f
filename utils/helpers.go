package utils

import (
	"regexp"
	"strings"

	"github.com/check-scam/api-go/models"
)

var (
	phonePattern       = regexp.MustCompile(`^(0[35789])[0-9]{8}$`)
	bankAccountPattern = regexp.MustCompile(`^[0-9]{9,16}$`)
)

// ValidatePhoneNumber checks a Vietnamese mobile number (10 digits, leading
// 03/05/07/08/09).
func ValidatePhoneNumber(phone string) bool {
	return phonePattern.MatchString(phone)
}

// ValidateBankAccount checks a bank account number (9-16 digits).
func ValidateBankAccount(account string) bool {
	return bankAccountPattern.MatchString(account)
}

// mask keeps the first and last 3 runes and stars out the rest. Values of 6
// runes or fewer are starred entirely so short accounts never leak.
func mask(value string) string {
	runes := []rune(value)
	if len(runes) <= 6 {
		return strings.Repeat("*", len(runes))
	}
	return string(runes[:3]) + strings.Repeat("*", len(runes)-6) + string(runes[len(runes)-3:])
}

// MaskBankAccount masks a bank account for public display.
func MaskBankAccount(account string) string {
	return mask(account)
}

// MaskPhoneNumber masks a phone number for public display.
func MaskPhoneNumber(phone string) string {
	return mask(phone)
}

// MaskName keeps the family name and reduces given names to an initial.
func MaskName(name string) string {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return ""
	}
	if len(parts) == 1 {
		r := []rune(parts[0])
		return string(r[0]) + strings.Repeat("*", len(r)-1)
	}
	masked := make([]string, len(parts))
	masked[0] = parts[0]
	for i := 1; i < len(parts); i++ {
		r := []rune(parts[i])
		masked[i] = string(r[0]) + strings.Repeat("*", len(r)-1)
	}
	return strings.Join(masked, " ")
}

// CredibilityScore rates a warning from 0 to 100 based on the evidence it
// carries and how many approved warnings share its identity.
func CredibilityScore(w *models.Warning) int {
	score := 0
	if len(w.EvidenceImages) > 0 {
		score += 20
	}
	if w.BankAccount != "" {
		score += 15
	}
	if w.FacebookLink != "" {
		score += 10
	}
	if w.Status == models.StatusApproved {
		score += 25
	}
	dup := w.WarningCount * 5
	if dup > 30 {
		dup = 30
	}
	score += dup
	if score > 100 {
		score = 100
	}
	return score
}
