// internal/match/score.go
package match

import (
	"fmt"
	"math"
	"sort"
	"time"

	"estate-match-backend/internal/common/config"
	"estate-match-backend/internal/common/logger"
	"estate-match-backend/internal/common/metrics"
	"estate-match-backend/internal/models"
)

// maxScore caps the additive score so stacked bonuses stay comparable.
const maxScore = 100

// Weights holds every tunable scoring constant. The defaults are the
// production values; operators can override individual weights through
// the scoring config section.
type Weights struct {
	BudgetInRange       int
	BudgetUnder         int
	BudgetStretch       int
	BudgetStretchFactor float64
	BedroomExact        int
	BedroomAdjacent     int
	BathExact           int
	BathClose           int
	SizeStrong          int
	SizePartial         int
	SizeDefault         int
	PriorityBonus       int
}

func DefaultWeights() Weights {
	return Weights{
		BudgetInRange:       35,
		BudgetUnder:         25,
		BudgetStretch:       15,
		BudgetStretchFactor: 1.15,
		BedroomExact:        20,
		BedroomAdjacent:     12,
		BathExact:           15,
		BathClose:           10,
		SizeStrong:          15,
		SizePartial:         8,
		SizeDefault:         12,
		PriorityBonus:       8,
	}
}

// WeightsFromConfig starts from the defaults and applies any non-zero
// override from the scoring config section.
func WeightsFromConfig(cfg config.ScoringConfig) Weights {
	w := DefaultWeights()
	if cfg.BudgetInRange != 0 {
		w.BudgetInRange = cfg.BudgetInRange
	}
	if cfg.BudgetUnder != 0 {
		w.BudgetUnder = cfg.BudgetUnder
	}
	if cfg.BudgetStretch != 0 {
		w.BudgetStretch = cfg.BudgetStretch
	}
	if cfg.BudgetStretchFactor != 0 {
		w.BudgetStretchFactor = cfg.BudgetStretchFactor
	}
	if cfg.BedroomExact != 0 {
		w.BedroomExact = cfg.BedroomExact
	}
	if cfg.BedroomAdjacent != 0 {
		w.BedroomAdjacent = cfg.BedroomAdjacent
	}
	if cfg.BathExact != 0 {
		w.BathExact = cfg.BathExact
	}
	if cfg.BathClose != 0 {
		w.BathClose = cfg.BathClose
	}
	if cfg.SizeStrong != 0 {
		w.SizeStrong = cfg.SizeStrong
	}
	if cfg.SizePartial != 0 {
		w.SizePartial = cfg.SizePartial
	}
	if cfg.SizeDefault != 0 {
		w.SizeDefault = cfg.SizeDefault
	}
	if cfg.PriorityBonus != 0 {
		w.PriorityBonus = cfg.PriorityBonus
	}
	return w
}

// Engine scores a catalog against a single buyer's preferences. It is
// stateless and safe for concurrent use.
type Engine struct {
	weights Weights
	logger  logger.Logger
}

func NewEngine(weights Weights, log logger.Logger) *Engine {
	return &Engine{
		weights: weights,
		logger:  log.WithFields(map[string]interface{}{"component": "match-engine"}),
	}
}

// Match scores every for-sale property and returns the ranked result.
// Sold listings never appear. Ranking is score descending; ties break on
// ascending price, then on feed order. An empty catalog yields an empty
// slice, never an error.
func (e *Engine) Match(properties []models.Property, prefs models.Preferences) []models.ScoredProperty {
	start := time.Now()
	metrics.MatchRequests.Inc()

	scored := []models.ScoredProperty{}
	for _, p := range properties {
		if p.Status != models.StatusForSale {
			continue
		}

		score, reasons := e.score(p, prefs)
		monthly, down := Financing(p.Price)
		scored = append(scored, models.ScoredProperty{
			Property:       p,
			Score:          score,
			Reasons:        reasons,
			MonthlyPayment: monthly,
			DownPayment:    down,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Property.Price < scored[j].Property.Price
	})

	metrics.MatchDuration.Observe(time.Since(start).Seconds())
	e.logger.Debug("match computed", map[string]interface{}{
		"candidates": len(properties),
		"scored":     len(scored),
	})
	return scored
}

func (e *Engine) score(p models.Property, prefs models.Preferences) (int, []string) {
	w := e.weights
	score := 0
	reasons := []string{}

	minBudget, maxBudget := prefs.Budget[0], prefs.Budget[1]
	switch {
	case p.Price >= minBudget && p.Price <= maxBudget:
		score += w.BudgetInRange
		reasons = append(reasons, "Within your budget range")
	case p.Price < minBudget:
		score += w.BudgetUnder
		reasons = append(reasons, "Under budget with room for upgrades")
	case float64(p.Price) <= float64(maxBudget)*w.BudgetStretchFactor:
		score += w.BudgetStretch
		reasons = append(reasons, "Slightly above budget but worth considering")
	}

	// Partial-credit tiers add points but surface no reason; only
	// exact and strong tiers are explained to the buyer.
	bedroomDiff := absInt(p.Rooms - BedroomCount(prefs.Bedrooms))
	if bedroomDiff == 0 {
		score += w.BedroomExact
		reasons = append(reasons, fmt.Sprintf("Exact %s match", prefs.Bedrooms))
	} else if bedroomDiff == 1 {
		score += w.BedroomAdjacent
	}

	bathDiff := math.Abs(float64(p.Baths) - BathCount(prefs.Bathrooms))
	if bathDiff == 0 {
		score += w.BathExact
		reasons = append(reasons, "Perfect bathroom count")
	} else if bathDiff <= 0.5 {
		score += w.BathClose
	}

	switch prefs.Style {
	case "Compact & Affordable", "Tiny Home Style":
		if p.Size <= 1000 {
			score += w.SizeStrong
			reasons = append(reasons, "Compact footprint you prefer")
		} else if p.Size <= 1400 {
			score += w.SizePartial
		}
	case "Modern Luxury", "High-End Designer":
		if p.Size >= 1800 {
			score += w.SizeStrong
			reasons = append(reasons, "Spacious luxury layout")
		} else if p.Size >= 1400 {
			score += w.SizePartial
		}
	default:
		if p.Size >= 1000 && p.Size <= 2000 {
			score += w.SizeDefault
			reasons = append(reasons, "Great size for your needs")
		}
	}

	for _, priority := range prefs.Priorities {
		switch priority {
		case "Lowest Price":
			if float64(p.Price) <= float64(minBudget)+0.3*float64(maxBudget-minBudget) {
				score += w.PriorityBonus
				reasons = append(reasons, "Among the most affordable options")
			}
		case "Largest Space":
			if p.Size >= 1600 {
				score += w.PriorityBonus
				reasons = append(reasons, "Extra spacious living area")
			}
		case "Best Value":
			if p.Price > 0 && p.Size > 0 && float64(p.Price)/float64(p.Size) < 80 {
				score += w.PriorityBonus
				reasons = append(reasons, "Excellent price per square foot")
			}
		}
	}

	if score > maxScore {
		score = maxScore
	}
	return score, reasons
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
