package utils

// Message is a user-facing string in the three platform languages.
// French is the platform default; English doubles as the `error` field.
type Message struct {
	En string `json:"en"`
	Fr string `json:"fr"`
	Mg string `json:"mg"`
}

func (m Message) ForLanguage(lang string) string {
	switch lang {
	case "mg":
		return m.Mg
	case "en":
		return m.En
	default:
		return m.Fr
	}
}

var (
	MsgTokenRequired = Message{
		En: "Access token required",
		Fr: "Jeton d'accès requis",
		Mg: "Mila fanalahidy fidirana",
	}
	MsgInvalidToken = Message{
		En: "Invalid or expired token",
		Fr: "Jeton invalide ou expiré",
		Mg: "Fanalahidy tsy mety na lany daty",
	}
	MsgUserNotFound = Message{
		En: "User not found",
		Fr: "Utilisateur non trouvé",
		Mg: "Tsy hita ny mpampiasa",
	}
	MsgBusinessProfileRequired = Message{
		En: "Business profile required",
		Fr: "Profil d'entreprise requis",
		Mg: "Mila mombamomba ny orinasa",
	}
	MsgBusinessProfileNotFound = Message{
		En: "Business profile not found",
		Fr: "Profil d'entreprise non trouvé",
		Mg: "Tsy hita ny mombamomba ny orinasa",
	}
	MsgBusinessProfileExists = Message{
		En: "Business profile already exists",
		Fr: "Le profil d'entreprise existe déjà",
		Mg: "Efa misy ny mombamomba ny orinasa",
	}
	MsgVerifiedBusinessRequired = Message{
		En: "Verified business required",
		Fr: "Entreprise vérifiée requise",
		Mg: "Mila orinasa voamarina",
	}
	MsgAdminRequired = Message{
		En: "Administrator access required",
		Fr: "Accès administrateur requis",
		Mg: "Mila alalana mpitantana",
	}
	MsgTooManyRequests = Message{
		En: "Too many requests",
		Fr: "Trop de demandes",
		Mg: "Fangatahana be loatra",
	}
	MsgValidationFailed = Message{
		En: "Validation failed",
		Fr: "Échec de la validation",
		Mg: "Tsy nahomby ny fanamarinana",
	}
	MsgEmailAlreadyExists = Message{
		En: "Email already registered",
		Fr: "Email déjà enregistré",
		Mg: "Efa voasoratra io mailaka io",
	}
	MsgWeakPassword = Message{
		En: "Password is too weak",
		Fr: "Mot de passe trop faible",
		Mg: "Malemy loatra ny teny miafina",
	}
	MsgEmailServiceUnavailable = Message{
		En: "Email service unavailable",
		Fr: "Service de messagerie indisponible",
		Mg: "Tsy misy ny serivisy mailaka",
	}
	MsgInvalidRole = Message{
		En: "Invalid role",
		Fr: "Rôle invalide",
		Mg: "Anjara asa tsy mety",
	}
	MsgRegistrationFailed = Message{
		En: "Registration failed",
		Fr: "Échec de l'inscription",
		Mg: "Tsy nahomby ny fisoratana anarana",
	}
	MsgOpportunityNotFound = Message{
		En: "Opportunity not found",
		Fr: "Opportunité non trouvée",
		Mg: "Tsy hita ny fahafahana",
	}
	MsgMatchNotFound = Message{
		En: "Match not found",
		Fr: "Correspondance non trouvée",
		Mg: "Tsy hita ny fifanarahana",
	}
	MsgMatchExists = Message{
		En: "Match already exists",
		Fr: "La correspondance existe déjà",
		Mg: "Efa misy ny fifanarahana",
	}
	MsgInvalidMatchStatus = Message{
		En: "Status must be accepted or rejected",
		Fr: "Le statut doit être accepté ou rejeté",
		Mg: "Tsy maintsy ekena na lavina ny sata",
	}
	MsgMessageNotFound = Message{
		En: "Message not found",
		Fr: "Message non trouvé",
		Mg: "Tsy hita ny hafatra",
	}
	MsgConversationNotFound = Message{
		En: "Conversation not found",
		Fr: "Conversation non trouvée",
		Mg: "Tsy hita ny resaka",
	}
	MsgSuccessStoryNotFound = Message{
		En: "Success story not found",
		Fr: "Témoignage non trouvé",
		Mg: "Tsy hita ny tantaram-pahombiazana",
	}
	MsgUploadNotFound = Message{
		En: "File not found",
		Fr: "Fichier non trouvé",
		Mg: "Tsy hita ny rakitra",
	}
	MsgFileTooLarge = Message{
		En: "File exceeds the 10MB limit",
		Fr: "Le fichier dépasse la limite de 10 Mo",
		Mg: "Mihoatra ny 10Mo ny rakitra",
	}
	MsgUnsupportedFileType = Message{
		En: "Unsupported file type",
		Fr: "Type de fichier non pris en charge",
		Mg: "Karazana rakitra tsy raisina",
	}
	MsgForbidden = Message{
		En: "Not authorized to perform this action",
		Fr: "Non autorisé à effectuer cette action",
		Mg: "Tsy manana alalana hanao izany",
	}
	MsgRouteNotFound = Message{
		En: "Route not found",
		Fr: "Route non trouvée",
		Mg: "Tsy hita ny lalana",
	}
	MsgInternalError = Message{
		En: "Internal server error",
		Fr: "Erreur interne du serveur",
		Mg: "Hadisoana anatiny amin'ny mpizara",
	}
	MsgServiceUnavailable = Message{
		En: "Service temporarily unavailable",
		Fr: "Service temporairement indisponible",
		Mg: "Tsy misy vetivety ny serivisy",
	}
	MsgInvalidPhoneNumber = Message{
		En: "Phone number must be a Madagascar number (+261XXXXXXXXX)",
		Fr: "Le numéro doit être un numéro malgache (+261XXXXXXXXX)",
		Mg: "Tsy maintsy laharana malagasy (+261XXXXXXXXX)",
	}
	MsgInvalidLanguage = Message{
		En: "Language must be fr, mg or en",
		Fr: "La langue doit être fr, mg ou en",
		Mg: "Tsy maintsy fr, mg na en ny fiteny",
	}
)
