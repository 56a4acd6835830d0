package cart

import (
	"math"
	"math/rand/v2"
	"strings"
)

// RandSource picks uniformly in [0, n).
type RandSource interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// PriceRange is an inclusive price band in whole rupees.
type PriceRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// DefaultRanges prices each meal category.
var DefaultRanges = map[string]PriceRange{
	"breakfast":   {Min: 80, Max: 180},
	"main course": {Min: 150, Max: 300},
	"snack":       {Min: 60, Max: 150},
	"dessert":     {Min: 90, Max: 200},
	"drink":       {Min: 50, Max: 120},
}

// FallbackRange prices categories missing from the range table.
var FallbackRange = PriceRange{Min: 100, Max: 250}

// PricingConfig controls premium pricing.
type PricingConfig struct {
	PremiumKeyword    string
	PremiumMultiplier float64
}

// Pricer assigns a price to a meal added to the cart.
type Pricer struct {
	ranges   map[string]PriceRange
	fallback PriceRange
	cfg      PricingConfig
	rand     RandSource
}

// NewPricer creates a Pricer using DefaultRanges. A nil src uses the
// process-wide generator.
func NewPricer(cfg PricingConfig, src RandSource) *Pricer {
	if src == nil {
		src = globalRand{}
	}
	return &Pricer{
		ranges:   DefaultRanges,
		fallback: FallbackRange,
		cfg:      cfg,
		rand:     src,
	}
}

// Range returns the price band used for category.
func (p *Pricer) Range(category string) PriceRange {
	if r, ok := p.ranges[strings.ToLower(category)]; ok {
		return r
	}
	return p.fallback
}

// IsPremium reports whether the meal name carries the premium keyword.
func (p *Pricer) IsPremium(meal string) bool {
	kw := strings.ToLower(p.cfg.PremiumKeyword)
	return kw != "" && strings.Contains(strings.ToLower(meal), kw)
}

// Price draws a price from the category band, applies the premium
// multiplier when it matches and rounds to the nearest rupee.
func (p *Pricer) Price(meal, category string) int {
	r := p.Range(category)
	base := float64(r.Min + p.rand.IntN(r.Max-r.Min+1))
	if p.IsPremium(meal) && p.cfg.PremiumMultiplier > 0 {
		base *= p.cfg.PremiumMultiplier
	}
	return int(math.Round(base))
}
