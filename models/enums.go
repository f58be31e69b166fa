package models

type BusinessType string

const (
	BusinessTypeAgricultural    BusinessType = "agricultural"
	BusinessTypeArtisan         BusinessType = "artisan"
	BusinessTypeDigitalServices BusinessType = "digital_services"
	BusinessTypeManufacturing   BusinessType = "manufacturing"
	BusinessTypeRetail          BusinessType = "retail"
	BusinessTypeTourism         BusinessType = "tourism"
	BusinessTypeFoodProcessing  BusinessType = "food_processing"
	BusinessTypeTextile         BusinessType = "textile"
)

func (t BusinessType) Valid() bool {
	switch t {
	case BusinessTypeAgricultural, BusinessTypeArtisan, BusinessTypeDigitalServices,
		BusinessTypeManufacturing, BusinessTypeRetail, BusinessTypeTourism,
		BusinessTypeFoodProcessing, BusinessTypeTextile:
		return true
	}
	return false
}

type Region string

const (
	RegionAntananarivo Region = "Antananarivo"
	RegionFianarantsoa Region = "Fianarantsoa"
	RegionToamasina    Region = "Toamasina"
	RegionMahajanga    Region = "Mahajanga"
	RegionToliara      Region = "Toliara"
	RegionAntsiranana  Region = "Antsiranana"
)

func (r Region) Valid() bool {
	switch r {
	case RegionAntananarivo, RegionFianarantsoa, RegionToamasina,
		RegionMahajanga, RegionToliara, RegionAntsiranana:
		return true
	}
	return false
}

type Language string

const (
	LanguageFrench   Language = "fr"
	LanguageMalagasy Language = "mg"
	LanguageEnglish  Language = "en"
)

func (l Language) Valid() bool {
	switch l {
	case LanguageFrench, LanguageMalagasy, LanguageEnglish:
		return true
	}
	return false
}

type Currency string

const (
	CurrencyAriary Currency = "MGA"
	CurrencyDollar Currency = "USD"
	CurrencyEuro   Currency = "EUR"
)

func (c Currency) Valid() bool {
	switch c {
	case CurrencyAriary, CurrencyDollar, CurrencyEuro:
		return true
	}
	return false
}

// DecimalPlaces returns the minor-unit count used when rounding amounts.
// The ariary has no minor unit in practice.
func (c Currency) DecimalPlaces() int32 {
	if c == CurrencyAriary {
		return 0
	}
	return 2
}

type VerificationStatus string

const (
	VerificationStatusPending  VerificationStatus = "pending"
	VerificationStatusApproved VerificationStatus = "approved"
	VerificationStatusRejected VerificationStatus = "rejected"
)

func (s VerificationStatus) Valid() bool {
	switch s {
	case VerificationStatusPending, VerificationStatusApproved, VerificationStatusRejected:
		return true
	}
	return false
}

type OpportunityStatus string

const (
	OpportunityStatusActive  OpportunityStatus = "active"
	OpportunityStatusExpired OpportunityStatus = "expired"
	OpportunityStatusClosed  OpportunityStatus = "closed"
)

func (s OpportunityStatus) Valid() bool {
	switch s {
	case OpportunityStatusActive, OpportunityStatusExpired, OpportunityStatusClosed:
		return true
	}
	return false
}

type MatchStatus string

const (
	MatchStatusPending  MatchStatus = "pending"
	MatchStatusAccepted MatchStatus = "accepted"
	MatchStatusRejected MatchStatus = "rejected"
)

func (s MatchStatus) Valid() bool {
	switch s {
	case MatchStatusPending, MatchStatusAccepted, MatchStatusRejected:
		return true
	}
	return false
}

type MatchTargetType string

const (
	MatchTargetBusiness    MatchTargetType = "business"
	MatchTargetOpportunity MatchTargetType = "opportunity"
)

func (t MatchTargetType) Valid() bool {
	return t == MatchTargetBusiness || t == MatchTargetOpportunity
}

type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

func (r UserRole) Valid() bool {
	return r == UserRoleUser || r == UserRoleAdmin
}
