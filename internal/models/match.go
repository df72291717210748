package models

// Preferences is one buyer's intent snapshot from the match wizard.
// Budget is an inclusive [min, max] dollar range; bedrooms/bathrooms hold
// the wizard display labels and are converted to counts once before
// scoring.
type Preferences struct {
	Budget     [2]int   `json:"budget"`
	Use        string   `json:"use"`
	Bedrooms   string   `json:"bedrooms"`
	Bathrooms  string   `json:"bathrooms"`
	Climate    string   `json:"climate"`
	Style      string   `json:"style"`
	Priorities []string `json:"priorities"`
}

// ScoredProperty is a catalog record annotated with a fit score, the
// reasons it scored, and a financing estimate. Built fresh per scoring
// call, never persisted.
type ScoredProperty struct {
	Property       Property `json:"property"`
	Score          int      `json:"score"`
	Reasons        []string `json:"reasons"`
	MonthlyPayment int      `json:"monthlyPayment"`
	DownPayment    int      `json:"downPayment"`
}
