package utils

import "testing"

func TestValidateMadagascarPhone(t *testing.T) {
	tests := []struct {
		name    string
		phone   string
		wantErr bool
	}{
		{"valid mobile", "+261341234567", false},
		{"valid mobile 032", "+261321234567", false},
		{"local format rejected", "0341234567", true},
		{"too short", "+26134123456", true},
		{"too long", "+2613412345678", true},
		{"wrong country", "+33612345678", true},
		{"letters", "+261abc234567", true},
		{"empty", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMadagascarPhone(tt.phone)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateMadagascarPhone(%q) error = %v, wantErr %v", tt.phone, err, tt.wantErr)
			}
		})
	}
}

func TestNormalizeMadagascarPhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0341234567", "+261341234567"},
		{"034 12 345 67", "+261341234567"},
		{"261341234567", "+261341234567"},
		{"+261341234567", "+261341234567"},
		{"+261 34 12 345 67", "+261341234567"},
	}
	for _, tt := range tests {
		if got := NormalizeMadagascarPhone(tt.in); got != tt.want {
			t.Errorf("NormalizeMadagascarPhone(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
