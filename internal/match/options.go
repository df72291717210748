// internal/match/options.go

// Package match scores catalog properties against buyer preferences
// collected by the guided wizard.
package match

import (
	"strconv"
	"strings"
)

// BudgetOption pairs a wizard label with its dollar range.
type BudgetOption struct {
	Label string `json:"label"`
	Min   int    `json:"min"`
	Max   int    `json:"max"`
}

// The option sets below are the only values the wizard offers; free-form
// preference input is not supported.
var (
	BudgetOptions = []BudgetOption{
		{Label: "Under $50K", Min: 20000, Max: 50000},
		{Label: "$50K - $100K", Min: 50000, Max: 100000},
		{Label: "$100K - $150K", Min: 100000, Max: 150000},
		{Label: "$150K - $250K", Min: 150000, Max: 250000},
		{Label: "$250K+", Min: 250000, Max: 500000},
	}

	UseOptions = []string{
		"Primary Residence",
		"Vacation Home",
		"Rental Investment",
		"Guest House / Backyard Unit",
		"Retirement Living",
	}

	BedroomOptions = []string{
		"Studio",
		"1 Bedroom",
		"2 Bedrooms",
		"3 Bedrooms",
		"4+ Bedrooms",
	}

	BathroomOptions = []string{"1", "1.5", "2", "2+"}

	ClimateOptions = []string{
		"Warm Climate (FL, TX, AZ)",
		"Moderate Climate",
		"Cold / Snow Areas",
		"Coastal",
		"Rural Land",
		"Mobile Home Park",
	}

	StyleOptions = []string{
		"Modern Luxury",
		"Family Friendly",
		"Compact & Affordable",
		"Eco-Friendly",
		"Tiny Home Style",
		"High-End Designer",
	}

	PriorityOptions = []string{
		"Lowest Price",
		"Best Value",
		"Largest Space",
		"Energy Efficiency",
		"Fast Delivery",
		"Premium Materials",
		"Smart Home Features",
	}
)

// Options is the full wizard option catalog returned to clients.
type Options struct {
	Budgets    []BudgetOption `json:"budgets"`
	Uses       []string       `json:"uses"`
	Bedrooms   []string       `json:"bedrooms"`
	Bathrooms  []string       `json:"bathrooms"`
	Climates   []string       `json:"climates"`
	Styles     []string       `json:"styles"`
	Priorities []string       `json:"priorities"`
}

func AllOptions() Options {
	return Options{
		Budgets:    BudgetOptions,
		Uses:       UseOptions,
		Bedrooms:   BedroomOptions,
		Bathrooms:  BathroomOptions,
		Climates:   ClimateOptions,
		Styles:     StyleOptions,
		Priorities: PriorityOptions,
	}
}

// BedroomCount maps a wizard bedroom label to a comparable number.
// "Studio" counts as zero and "4+ Bedrooms" as four; anything else parses
// its leading integer, defaulting to zero.
func BedroomCount(label string) int {
	if label == "Studio" {
		return 0
	}
	if strings.HasPrefix(label, "4+") {
		return 4
	}

	digits := label
	for i, r := range label {
		if r < '0' || r > '9' {
			digits = label[:i]
			break
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}

// BathCount maps a wizard bathroom label to a comparable number. "2+"
// counts as two; an unparseable label defaults to one.
func BathCount(label string) float64 {
	if label == "2+" {
		return 2
	}
	f, err := strconv.ParseFloat(label, 64)
	if err != nil {
		return 1
	}
	return f
}
