package matching

import (
	"sort"
	"strings"
	"time"

	"github.com/miharina-tech/miharina_backend/models"
	"github.com/shopspring/decimal"
)

// Scoring weights. The total is clamped to MaxScore.
const (
	WeightBusinessType = 25
	WeightRegion       = 20
	WeightPerSector    = 15
	WeightPerLanguage  = 10
	WeightInvestment   = 15
	WeightRecency      = 5

	MaxScore = 100

	// RecencyWindow is how recent a candidate must be for the recency bonus.
	RecencyWindow = 30 * 24 * time.Hour
)

// Candidate is the scoring view of either a business profile or an
// opportunity. Missing attributes (empty sets, absent range) contribute
// nothing.
type Candidate struct {
	ID            string
	BusinessType  models.BusinessType
	Region        models.Region
	Sectors       []string
	Languages     []string
	InvestmentMin decimal.Decimal
	InvestmentMax decimal.Decimal
	HasInvestment bool
	CreatedAt     time.Time
}

// Result is one scored candidate. MatchedCriteria carries machine-readable
// tags; Reasons the display strings.
type Result struct {
	Candidate       Candidate
	Score           int
	Reasons         []string
	MatchedCriteria []string
}

func CandidateFromProfile(p *models.BusinessProfile) Candidate {
	return Candidate{
		ID:            p.ID.String(),
		BusinessType:  p.BusinessType,
		Region:        p.Region,
		Sectors:       p.Sectors,
		Languages:     p.Languages,
		InvestmentMin: p.InvestmentMin,
		InvestmentMax: p.InvestmentMax,
		HasInvestment: p.InvestmentMax.IsPositive(),
		CreatedAt:     p.CreatedAt,
	}
}

// CandidateFromOpportunity maps an opportunity onto the profile shape: the
// industry becomes a one-element sector set and the estimated value a
// degenerate [v, v] range. The region comes from the creator's profile when
// known.
func CandidateFromOpportunity(o *models.Opportunity, creatorRegion models.Region) Candidate {
	var sectors []string
	if o.Industry != "" {
		sectors = []string{o.Industry}
	}
	return Candidate{
		ID:            o.ID.String(),
		BusinessType:  o.BusinessType,
		Region:        creatorRegion,
		Sectors:       sectors,
		InvestmentMin: o.EstimatedValue,
		InvestmentMax: o.EstimatedValue,
		HasInvestment: o.EstimatedValue.IsPositive(),
		CreatedAt:     o.CreatedAt,
	}
}

// Score computes the additive compatibility score of a candidate against
// the source. Pure: the clock is an argument.
func Score(source, candidate Candidate, now time.Time) Result {
	result := Result{Candidate: candidate}
	score := 0

	if source.BusinessType != "" && source.BusinessType == candidate.BusinessType {
		score += WeightBusinessType
		result.Reasons = append(result.Reasons, "Same business type")
		result.MatchedCriteria = append(result.MatchedCriteria, "business_type")
	}

	if source.Region != "" && source.Region == candidate.Region {
		score += WeightRegion
		result.Reasons = append(result.Reasons, "Same region")
		result.MatchedCriteria = append(result.MatchedCriteria, "region")
	}

	if common := intersect(source.Sectors, candidate.Sectors); len(common) > 0 {
		score += WeightPerSector * len(common)
		result.Reasons = append(result.Reasons, "Common sectors: "+strings.Join(common, ", "))
		result.MatchedCriteria = append(result.MatchedCriteria, "sectors")
	}

	if common := intersect(source.Languages, candidate.Languages); len(common) > 0 {
		score += WeightPerLanguage * len(common)
		result.Reasons = append(result.Reasons, "Common languages: "+strings.Join(common, ", "))
		result.MatchedCriteria = append(result.MatchedCriteria, "languages")
	}

	if rangesOverlap(source, candidate) {
		score += WeightInvestment
		result.Reasons = append(result.Reasons, "Compatible investment ranges")
		result.MatchedCriteria = append(result.MatchedCriteria, "investment_capacity")
	}

	// recency adds no criteria tag
	if !candidate.CreatedAt.IsZero() && now.Sub(candidate.CreatedAt) < RecencyWindow {
		score += WeightRecency
		result.Reasons = append(result.Reasons, "Recently created profile")
	}

	if score > MaxScore {
		score = MaxScore
	}
	if score < 0 {
		score = 0
	}
	result.Score = score
	return result
}

// Rank scores the pool and returns the top results, highest score first,
// ties broken by candidate id ascending so output is deterministic. limit
// <= 0 falls back to models.MatchResultLimit.
func Rank(source Candidate, pool []Candidate, now time.Time, limit int) []Result {
	if limit <= 0 || limit > models.MatchResultLimit {
		limit = models.MatchResultLimit
	}

	results := make([]Result, 0, len(pool))
	for _, candidate := range pool {
		results = append(results, Score(source, candidate, now))
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Candidate.ID < results[j].Candidate.ID
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// intersect returns the elements of a also present in b, in a's order.
// Membership only; duplicates collapse.
func intersect(a, b []string) []string {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	set := make(map[string]bool, len(b))
	for _, v := range b {
		set[v] = true
	}
	var common []string
	seen := make(map[string]bool, len(a))
	for _, v := range a {
		if set[v] && !seen[v] {
			common = append(common, v)
			seen[v] = true
		}
	}
	return common
}

// rangesOverlap: strictly positive overlap of the two investment ranges.
// Touching endpoints do not count.
func rangesOverlap(a, b Candidate) bool {
	if !a.HasInvestment || !b.HasInvestment {
		return false
	}
	low := decimal.Max(a.InvestmentMin, b.InvestmentMin)
	high := decimal.Min(a.InvestmentMax, b.InvestmentMax)
	return high.Sub(low).IsPositive()
}
