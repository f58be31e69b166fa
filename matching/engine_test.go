package matching

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/miharina-tech/miharina_backend/models"
	"github.com/shopspring/decimal"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func profileCandidate(id string, mutate func(*Candidate)) Candidate {
	c := Candidate{
		ID:            id,
		BusinessType:  models.BusinessTypeAgricultural,
		Region:        models.RegionAntananarivo,
		Sectors:       []string{"vanilla", "coffee"},
		Languages:     []string{"fr", "mg"},
		InvestmentMin: decimal.NewFromInt(1000),
		InvestmentMax: decimal.NewFromInt(5000),
		HasInvestment: true,
		CreatedAt:     testNow.AddDate(0, -6, 0),
	}
	if mutate != nil {
		mutate(&c)
	}
	return c
}

func TestScoreScenarios(t *testing.T) {
	source := profileCandidate("source", nil)

	tests := []struct {
		name         string
		candidate    Candidate
		wantScore    int
		wantReasons  []string
		wantCriteria []string
	}{
		{
			name: "type sector language range recency",
			candidate: profileCandidate("c1", func(c *Candidate) {
				c.Region = models.RegionToliara
				c.Sectors = []string{"vanilla", "cacao"}
				c.Languages = []string{"fr", "en"}
				c.InvestmentMin = decimal.NewFromInt(2000)
				c.InvestmentMax = decimal.NewFromInt(8000)
				c.CreatedAt = testNow.AddDate(0, 0, -10)
			}),
			wantScore: 70,
			wantReasons: []string{
				"Same business type",
				"Common sectors: vanilla",
				"Common languages: fr",
				"Compatible investment ranges",
				"Recently created profile",
			},
			wantCriteria: []string{"business_type", "sectors", "languages", "investment_capacity"},
		},
		{
			name: "same region added",
			candidate: profileCandidate("c2", func(c *Candidate) {
				c.Sectors = []string{"vanilla", "cacao"}
				c.Languages = []string{"fr", "en"}
				c.InvestmentMin = decimal.NewFromInt(2000)
				c.InvestmentMax = decimal.NewFromInt(8000)
				c.CreatedAt = testNow.AddDate(0, 0, -10)
			}),
			wantScore: 90,
			wantReasons: []string{
				"Same business type",
				"Same region",
				"Common sectors: vanilla",
				"Common languages: fr",
				"Compatible investment ranges",
				"Recently created profile",
			},
			wantCriteria: []string{"business_type", "region", "sectors", "languages", "investment_capacity"},
		},
		{
			name: "nothing in common",
			candidate: profileCandidate("c3", func(c *Candidate) {
				c.BusinessType = models.BusinessTypeTourism
				c.Region = models.RegionAntsiranana
				c.Sectors = []string{"hotels"}
				c.Languages = []string{"en"}
				c.InvestmentMin = decimal.NewFromInt(50000)
				c.InvestmentMax = decimal.NewFromInt(90000)
				c.CreatedAt = testNow.AddDate(0, 0, -400)
			}),
			wantScore:    0,
			wantReasons:  nil,
			wantCriteria: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(source, tt.candidate, testNow)
			if got.Score != tt.wantScore {
				t.Errorf("score = %d, want %d", got.Score, tt.wantScore)
			}
			if !reflect.DeepEqual(got.Reasons, tt.wantReasons) {
				t.Errorf("reasons = %v, want %v", got.Reasons, tt.wantReasons)
			}
			if !reflect.DeepEqual(got.MatchedCriteria, tt.wantCriteria) {
				t.Errorf("criteria = %v, want %v", got.MatchedCriteria, tt.wantCriteria)
			}
		})
	}
}

// Adding a shared attribute must never lower the score.
func TestScoreMonotonicity(t *testing.T) {
	source := profileCandidate("source", nil)
	base := profileCandidate("c", func(c *Candidate) {
		c.BusinessType = models.BusinessTypeTourism
		c.Region = models.RegionToliara
		c.Sectors = []string{"hotels"}
		c.Languages = []string{"en"}
		c.HasInvestment = false
		c.CreatedAt = testNow.AddDate(-2, 0, 0)
	})
	before := Score(source, base, testNow).Score

	improved := base
	improved.Region = source.Region
	after := Score(source, improved, testNow).Score
	if after < before {
		t.Errorf("score dropped after adding shared region: %d -> %d", before, after)
	}

	improved.Sectors = append([]string{"vanilla"}, improved.Sectors...)
	after2 := Score(source, improved, testNow).Score
	if after2 < after {
		t.Errorf("score dropped after adding shared sector: %d -> %d", after, after2)
	}
}

func TestScoreCappedAt100(t *testing.T) {
	many := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	source := profileCandidate("source", func(c *Candidate) {
		c.Sectors = many
		c.Languages = []string{"fr", "mg", "en"}
	})
	candidate := profileCandidate("c", func(c *Candidate) {
		c.Sectors = many
		c.Languages = []string{"fr", "mg", "en"}
		c.CreatedAt = testNow.AddDate(0, 0, -1)
	})

	got := Score(source, candidate, testNow)
	if got.Score != 100 {
		t.Errorf("score = %d, want capped 100", got.Score)
	}
}

// Overlap terms depend on set membership, not element order.
func TestScoreOverlapOrderInsensitive(t *testing.T) {
	source := profileCandidate("source", nil)
	a := profileCandidate("c", func(c *Candidate) {
		c.Sectors = []string{"coffee", "vanilla"}
		c.Languages = []string{"mg", "fr"}
	})
	b := profileCandidate("c", func(c *Candidate) {
		c.Sectors = []string{"vanilla", "coffee"}
		c.Languages = []string{"fr", "mg"}
	})

	if Score(source, a, testNow).Score != Score(source, b, testNow).Score {
		t.Error("score changed with element order")
	}
}

func TestInvestmentOverlapSymmetric(t *testing.T) {
	a := profileCandidate("a", func(c *Candidate) {
		c.InvestmentMin = decimal.NewFromInt(1000)
		c.InvestmentMax = decimal.NewFromInt(3000)
	})
	b := profileCandidate("b", func(c *Candidate) {
		c.InvestmentMin = decimal.NewFromInt(2000)
		c.InvestmentMax = decimal.NewFromInt(6000)
	})

	if rangesOverlap(a, b) != rangesOverlap(b, a) {
		t.Error("range overlap is not symmetric")
	}

	// touching endpoints do not overlap
	b.InvestmentMin = decimal.NewFromInt(3000)
	if rangesOverlap(a, b) {
		t.Error("touching ranges should not overlap")
	}
}

func TestScoreMissingAttributesContributeZero(t *testing.T) {
	source := profileCandidate("source", nil)
	empty := Candidate{
		ID:           "c",
		BusinessType: models.BusinessTypeTourism,
		Region:       models.RegionToliara,
		CreatedAt:    testNow.AddDate(-1, 0, 0),
	}
	if got := Score(source, empty, testNow).Score; got != 0 {
		t.Errorf("score = %d, want 0 for empty candidate", got)
	}
}

func TestRankDeterministicAndTruncated(t *testing.T) {
	source := profileCandidate("source", nil)

	var pool []Candidate
	for i := 0; i < 15; i++ {
		pool = append(pool, profileCandidate(fmt.Sprintf("c%02d", i), func(c *Candidate) {
			c.Region = models.RegionToliara
			c.Sectors = nil
			c.Languages = nil
			c.HasInvestment = false
			c.CreatedAt = testNow.AddDate(-1, 0, 0)
		}))
	}

	got := Rank(source, pool, testNow, 0)
	if len(got) != models.MatchResultLimit {
		t.Fatalf("len = %d, want %d", len(got), models.MatchResultLimit)
	}

	// equal scores: id ascending
	for i := 1; i < len(got); i++ {
		if got[i-1].Score == got[i].Score && got[i-1].Candidate.ID > got[i].Candidate.ID {
			t.Errorf("tie not broken by id: %s before %s", got[i-1].Candidate.ID, got[i].Candidate.ID)
		}
	}

	// same input, same output
	again := Rank(source, pool, testNow, 0)
	if !reflect.DeepEqual(got, again) {
		t.Error("ranking is not deterministic")
	}
}

func TestRankOrdersByScoreDesc(t *testing.T) {
	source := profileCandidate("source", nil)
	pool := []Candidate{
		profileCandidate("low", func(c *Candidate) {
			c.BusinessType = models.BusinessTypeTourism
			c.Region = models.RegionToliara
			c.Sectors = nil
			c.Languages = nil
			c.HasInvestment = false
			c.CreatedAt = testNow.AddDate(-1, 0, 0)
		}),
		profileCandidate("high", nil),
	}

	got := Rank(source, pool, testNow, 10)
	if got[0].Candidate.ID != "high" {
		t.Errorf("first = %s, want high", got[0].Candidate.ID)
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].Score < got[i].Score {
			t.Errorf("not sorted descending at %d", i)
		}
	}
}

func TestRankEmptyPool(t *testing.T) {
	source := profileCandidate("source", nil)
	if got := Rank(source, nil, testNow, 10); len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}

func TestCandidateFromOpportunity(t *testing.T) {
	source := profileCandidate("source", nil)

	opp := &models.Opportunity{
		BusinessType:   models.BusinessTypeAgricultural,
		Industry:       "vanilla",
		EstimatedValue: decimal.NewFromInt(2000),
		CreatedAt:      testNow.AddDate(0, 0, -5),
	}
	candidate := CandidateFromOpportunity(opp, models.RegionAntananarivo)

	got := Score(source, candidate, testNow)
	// type 25 + region 20 + sector 15 + recency 5; the degenerate value
	// range has no strictly positive overlap
	if got.Score != 65 {
		t.Errorf("score = %d, want 65", got.Score)
	}
}

func TestFixedStrategy(t *testing.T) {
	source := profileCandidate("source", nil)
	pool := []Candidate{
		profileCandidate("a", nil),
		profileCandidate("b", nil),
		profileCandidate("c", nil),
		profileCandidate("d", nil),
	}

	got := Fixed{}.Rank(source, pool, testNow, 10)
	if len(got) != 4 {
		t.Fatalf("len = %d, want 4", len(got))
	}
	wantScores := []int{85, 80, 75, 85}
	for i, r := range got {
		if r.Score != wantScores[i] {
			t.Errorf("score[%d] = %d, want %d", i, r.Score, wantScores[i])
		}
	}
}
