package mailer

import (
	"testing"

	"github.com/miharina-tech/miharina_backend/models"
)

func TestPickLanguageDefaultsToFrench(t *testing.T) {
	tests := []struct {
		in   models.Language
		want models.Language
	}{
		{models.LanguageFrench, models.LanguageFrench},
		{models.LanguageMalagasy, models.LanguageMalagasy},
		{models.LanguageEnglish, models.LanguageEnglish},
		{"", models.LanguageFrench},
		{"de", models.LanguageFrench},
	}
	for _, tt := range tests {
		if got := pickLanguage(tt.in); got != tt.want {
			t.Errorf("pickLanguage(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSendersFailWithoutTransport(t *testing.T) {
	// no SMTP_HOST in the test env
	if Ready() {
		t.Skip("SMTP configured in environment")
	}

	if err := SendWelcomeEmail("a@example.com", "A", models.LanguageFrench); err != ErrNotConfigured {
		t.Errorf("welcome err = %v, want ErrNotConfigured", err)
	}
	if err := SendMatchNotificationEmail("a@example.com", "B", 80, models.LanguageEnglish); err != ErrNotConfigured {
		t.Errorf("match err = %v, want ErrNotConfigured", err)
	}
	if err := SendVerificationEmail("a@example.com", "B", true, models.LanguageMalagasy); err != ErrNotConfigured {
		t.Errorf("verify err = %v, want ErrNotConfigured", err)
	}
}
