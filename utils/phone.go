package utils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ttacon/libphonenumber"
)

var CountryCode = "MG"

// Madagascar numbers in international format: +261 followed by 9 digits.
var madagascarPhonePattern = regexp.MustCompile(`^\+261[0-9]{9}$`)

func ValidatePhoneNumber(phoneNumber, countryCode string) error {
	p, err := libphonenumber.Parse(phoneNumber, countryCode)
	if err != nil {
		return err // Phone number is invalid
	}

	if !libphonenumber.IsValidNumber(p) {
		return fmt.Errorf("phone number is not valid")
	}

	return nil // Phone number is valid for the specified country code
}

// ValidateMadagascarPhone accepts only international-format Madagascar
// numbers, then double-checks plausibility with libphonenumber.
func ValidateMadagascarPhone(phoneNumber string) error {
	phoneNumber = strings.TrimSpace(phoneNumber)
	if !madagascarPhonePattern.MatchString(phoneNumber) {
		return fmt.Errorf("phone number must match +261XXXXXXXXX")
	}
	return ValidatePhoneNumber(phoneNumber, CountryCode)
}

// NormalizeMadagascarPhone converts local formats (03X XX XXX XX) to the
// international +261 form. Returns the input unchanged when it cannot help.
func NormalizeMadagascarPhone(phoneNumber string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' || r == '.' {
			return -1
		}
		return r
	}, strings.TrimSpace(phoneNumber))

	if strings.HasPrefix(cleaned, "+261") {
		return cleaned
	}
	if strings.HasPrefix(cleaned, "261") {
		return "+" + cleaned
	}
	if strings.HasPrefix(cleaned, "0") && len(cleaned) == 10 {
		return "+261" + cleaned[1:]
	}
	return cleaned
}
