package mailer

import (
	"fmt"

	"github.com/miharina-tech/miharina_backend/models"
)

// Mail copy in the three platform languages; French is the default.

func pickLanguage(lang models.Language) models.Language {
	if lang.Valid() {
		return lang
	}
	return models.LanguageFrench
}

// SendWelcomeEmail greets a newly registered user.
func SendWelcomeEmail(to string, displayName string, lang models.Language) error {
	var subject, body string
	switch pickLanguage(lang) {
	case models.LanguageMalagasy:
		subject = "Tongasoa eto amin'ny Miharina!"
		body = fmt.Sprintf(
			"<h2>Tongasoa, %s!</h2><p>Voasoratra ny kaontinao. Fenoy ny mombamomba ny orinasanao mba hahitana mpiara-miasa.</p>",
			displayName)
	case models.LanguageEnglish:
		subject = "Welcome to Miharina!"
		body = fmt.Sprintf(
			"<h2>Welcome, %s!</h2><p>Your account is ready. Complete your business profile to start finding partners.</p>",
			displayName)
	default:
		subject = "Bienvenue sur Miharina !"
		body = fmt.Sprintf(
			"<h2>Bienvenue, %s !</h2><p>Votre compte est prêt. Complétez votre profil d'entreprise pour trouver des partenaires.</p>",
			displayName)
	}
	return send(to, subject, body)
}

// SendMatchNotificationEmail tells a business owner someone matched with
// them.
func SendMatchNotificationEmail(to string, businessName string, score int, lang models.Language) error {
	var subject, body string
	switch pickLanguage(lang) {
	case models.LanguageMalagasy:
		subject = "Fifanarahana vaovao ao amin'ny Miharina"
		body = fmt.Sprintf(
			"<h2>Fifanarahana vaovao!</h2><p>Nahita fifanarahana tamin'ny <strong>%s</strong> ianao (isa: %d/100). Midira mba hamaly.</p>",
			businessName, score)
	case models.LanguageEnglish:
		subject = "New match on Miharina"
		body = fmt.Sprintf(
			"<h2>New match!</h2><p>You have a new match with <strong>%s</strong> (score: %d/100). Sign in to respond.</p>",
			businessName, score)
	default:
		subject = "Nouveau match sur Miharina"
		body = fmt.Sprintf(
			"<h2>Nouveau match !</h2><p>Vous avez un nouveau match avec <strong>%s</strong> (score : %d/100). Connectez-vous pour répondre.</p>",
			businessName, score)
	}
	return send(to, subject, body)
}

// SendVerificationEmail notifies the owner of the admin review outcome.
func SendVerificationEmail(to string, businessName string, approved bool, lang models.Language) error {
	var subject, body string
	switch pickLanguage(lang) {
	case models.LanguageMalagasy:
		if approved {
			subject = "Nankatoavina ny orinasanao"
			body = fmt.Sprintf("<p>Nankatoavina ny orinasa <strong>%s</strong>. Afaka mampiasa ny sehatra feno ianao izao.</p>", businessName)
		} else {
			subject = "Tsy nankatoavina ny orinasanao"
			body = fmt.Sprintf("<p>Tsy nankatoavina ny orinasa <strong>%s</strong>. Hamarino ny mombamomba dia andramo indray.</p>", businessName)
		}
	case models.LanguageEnglish:
		if approved {
			subject = "Your business has been verified"
			body = fmt.Sprintf("<p>Your business <strong>%s</strong> has been approved. You now have full access to the platform.</p>", businessName)
		} else {
			subject = "Your business verification was declined"
			body = fmt.Sprintf("<p>Your business <strong>%s</strong> was not approved. Please review your details and try again.</p>", businessName)
		}
	default:
		if approved {
			subject = "Votre entreprise a été vérifiée"
			body = fmt.Sprintf("<p>Votre entreprise <strong>%s</strong> a été approuvée. Vous avez maintenant accès à toute la plateforme.</p>", businessName)
		} else {
			subject = "Vérification de votre entreprise refusée"
			body = fmt.Sprintf("<p>Votre entreprise <strong>%s</strong> n'a pas été approuvée. Vérifiez vos informations puis réessayez.</p>", businessName)
		}
	}
	return send(to, subject, body)
}
