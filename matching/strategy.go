package matching

import (
	"os"
	"time"
)

// Strategy produces ranked results for a candidate pool. Heuristic is the
// data-driven default; Fixed reproduces the legacy constant-score behavior
// and exists only behind MATCH_SCORING=fixed.
type Strategy interface {
	Rank(source Candidate, pool []Candidate, now time.Time, limit int) []Result
}

type Heuristic struct{}

func (Heuristic) Rank(source Candidate, pool []Candidate, now time.Time, limit int) []Result {
	return Rank(source, pool, now, limit)
}

// Fixed assigns rotating canned scores and reasons regardless of the data.
type Fixed struct{}

var fixedScores = []int{85, 80, 75}

var fixedReasons = [][]string{
	{"Industry alignment", "Geographic match", "Business type compatibility"},
	{"Sector overlap", "Regional proximity", "Business synergy"},
	{"Strong profile compatibility"},
}

func (Fixed) Rank(source Candidate, pool []Candidate, now time.Time, limit int) []Result {
	if limit <= 0 {
		limit = len(pool)
	}
	results := make([]Result, 0, len(pool))
	for i, candidate := range pool {
		if i >= limit {
			break
		}
		results = append(results, Result{
			Candidate: candidate,
			Score:     fixedScores[i%len(fixedScores)],
			Reasons:   fixedReasons[i%len(fixedReasons)],
		})
	}
	return results
}

// StrategyFromEnv selects the scoring strategy; anything but "fixed" means
// the heuristic engine.
func StrategyFromEnv() Strategy {
	if os.Getenv("MATCH_SCORING") == "fixed" {
		return Fixed{}
	}
	return Heuristic{}
}
