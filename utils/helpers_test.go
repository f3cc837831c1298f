package utils

import (
	"strings"
	"testing"

	"github.com/check-scam/api-go/models"
	"github.com/stretchr/testify/assert"
)

func TestValidatePhoneNumber(t *testing.T) {
	valid := []string{"0351234567", "0912345678", "0787654321", "0598765432"}
	for _, phone := range valid {
		assert.True(t, ValidatePhoneNumber(phone), phone)
	}

	invalid := []string{
		"",
		"0112345678",  // bad prefix
		"091234567",   // too short
		"09123456789", // too long
		"0912345a78",
		"+84912345678",
	}
	for _, phone := range invalid {
		assert.False(t, ValidatePhoneNumber(phone), phone)
	}
}

func TestValidateBankAccount(t *testing.T) {
	assert.True(t, ValidateBankAccount("123456789"))
	assert.True(t, ValidateBankAccount("1234567890123456"))

	assert.False(t, ValidateBankAccount("12345678"))          // 8 digits
	assert.False(t, ValidateBankAccount("12345678901234567")) // 17 digits
	assert.False(t, ValidateBankAccount("12345abc9"))
	assert.False(t, ValidateBankAccount(""))
}

func TestMaskBankAccount(t *testing.T) {
	masked := MaskBankAccount("1234567890")
	assert.Equal(t, "123****890", masked)
	assert.True(t, strings.HasPrefix(masked, "123"))
	assert.True(t, strings.HasSuffix(masked, "890"))

	// Short values are starred out entirely.
	assert.Equal(t, "******", MaskBankAccount("123456"))
	assert.Equal(t, "***", MaskBankAccount("123"))
	assert.Equal(t, "", MaskBankAccount(""))
}

func TestMaskPhoneNumber(t *testing.T) {
	assert.Equal(t, "091****678", MaskPhoneNumber("0912345678"))
}

func TestMaskName(t *testing.T) {
	assert.Equal(t, "Nguyen V** A*", MaskName("Nguyen Van An"))
	assert.Equal(t, "T****", MaskName("Trang"))
	assert.Equal(t, "", MaskName(""))
}

func TestCredibilityScore(t *testing.T) {
	bare := &models.Warning{Status: models.StatusPending, WarningCount: 1}
	assert.Equal(t, 5, CredibilityScore(bare))

	full := &models.Warning{
		EvidenceImages: models.StringList{"https://cdn.example.com/a.jpg"},
		BankAccount:    "1234567890",
		FacebookLink:   "https://facebook.com/scammer",
		Status:         models.StatusApproved,
		WarningCount:   3,
	}
	assert.Equal(t, 20+15+10+25+15, CredibilityScore(full))

	// The duplicate bonus caps at 30 and the total at 100.
	full.WarningCount = 50
	assert.Equal(t, 100, CredibilityScore(full))
}
