package models

// Reference data for the Madagascar platform: the six historical provinces
// used as matching regions and the supported business types, with display
// labels in the three platform languages.

type RegionInfo struct {
	Code    Region `json:"code"`
	LabelFr string `json:"label_fr"`
	LabelMg string `json:"label_mg"`
	LabelEn string `json:"label_en"`
}

type BusinessTypeInfo struct {
	Code    BusinessType `json:"code"`
	LabelFr string       `json:"label_fr"`
	LabelMg string       `json:"label_mg"`
	LabelEn string       `json:"label_en"`
}

var MadagascarRegions = []RegionInfo{
	{RegionAntananarivo, "Antananarivo", "Antananarivo", "Antananarivo"},
	{RegionFianarantsoa, "Fianarantsoa", "Fianarantsoa", "Fianarantsoa"},
	{RegionToamasina, "Toamasina", "Toamasina", "Toamasina"},
	{RegionMahajanga, "Mahajanga", "Mahajanga", "Mahajanga"},
	{RegionToliara, "Toliara", "Toliara", "Toliara"},
	{RegionAntsiranana, "Antsiranana", "Antsiranana", "Antsiranana"},
}

var MadagascarBusinessTypes = []BusinessTypeInfo{
	{BusinessTypeAgricultural, "Agriculture", "Fambolena", "Agriculture"},
	{BusinessTypeArtisan, "Artisanat", "Asa tanana", "Handicraft"},
	{BusinessTypeDigitalServices, "Services numériques", "Serivisy nomerika", "Digital services"},
	{BusinessTypeManufacturing, "Industrie", "Indostria", "Manufacturing"},
	{BusinessTypeRetail, "Commerce de détail", "Varotra madinika", "Retail"},
	{BusinessTypeTourism, "Tourisme", "Fizahan-tany", "Tourism"},
	{BusinessTypeFoodProcessing, "Transformation alimentaire", "Fanodinana sakafo", "Food processing"},
	{BusinessTypeTextile, "Textile", "Lamba", "Textile"},
}

const (
	// MaxUploadSizeBytes caps user uploads at 10 MB.
	MaxUploadSizeBytes = 10 << 20

	// DefaultPageSize / MaxPageSize bound list endpoints.
	DefaultPageSize = 20
	MaxPageSize     = 100

	// CandidatePoolLimit bounds the pre-filtered pool fed to the scoring
	// engine; candidates beyond this are never considered.
	CandidatePoolLimit = 50

	// MatchResultLimit is the top-N truncation of ranked matches.
	MatchResultLimit = 10
)
