package pricing

import (
	"maps"
	"slices"

	"github.com/shopspring/decimal"
)

// Tier maps an inclusive quantity range to a per-unit retail price.
// MaxQty == 0 means the tier is open-ended.
type Tier struct {
	MinQty int
	MaxQty int
	Price  decimal.Decimal
}

// Contains reports whether qty falls inside the tier.
func (t Tier) Contains(qty int) bool {
	if qty < t.MinQty {
		return false
	}
	return t.MaxQty == 0 || qty <= t.MaxQty
}

// MarkupBand is a legacy markup multiplier applied to wholesale prices up to MaxWholesale.
// A zero MaxWholesale marks the catch-all band.
type MarkupBand struct {
	Name         string
	MaxWholesale decimal.Decimal
	Multiplier   decimal.Decimal
}

// RushTier identifies an expedited turnaround option.
type RushTier string

const (
	RushNone     RushTier = ""
	RushFiveDay  RushTier = "5day"
	RushFourDay  RushTier = "4day"
	RushThreeDay RushTier = "3day"
	RushTwoDay   RushTier = "2day"
)

// Config holds every table the quote engine reads. Values returned by DefaultConfig
// are shared and must be treated as read-only.
type Config struct {
	PremiumTiers []Tier
	QualityTiers []Tier
	MarkupBands  []MarkupBand

	SizeSurcharges map[string]decimal.Decimal
	SizeOrder      []string

	SetupFeePerScreen       decimal.Decimal
	FirstColorWithUnderbase decimal.Decimal
	FirstColorNoUnderbase   decimal.Decimal
	AdditionalColorStandard decimal.Decimal
	AdditionalColorPremium  decimal.Decimal
	MinimumQuantities       map[int]int
	RushPremiums            map[RushTier]decimal.Decimal
	TaxRate                 decimal.Decimal
	FallbackGarmentPrice    decimal.Decimal
	PremiumWholesaleFloor   decimal.Decimal
	QualityWholesaleFloor   decimal.Decimal
	MaxScreens              int
	LightGarmentColors      []string
	PremiumBrands           []string
	PolyesterUnderbasePct   int
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var defaultConfig = Config{
	PremiumTiers: []Tier{
		{MinQty: 1, MaxQty: 11, Price: d("20.95")},
		{MinQty: 12, MaxQty: 23, Price: d("17.95")},
		{MinQty: 24, MaxQty: 47, Price: d("15.33")},
		{MinQty: 48, MaxQty: 71, Price: d("14.33")},
		{MinQty: 72, MaxQty: 143, Price: d("13.33")},
		{MinQty: 144, MaxQty: 287, Price: d("12.83")},
		{MinQty: 288, Price: d("12.33")},
	},
	QualityTiers: []Tier{
		{MinQty: 1, MaxQty: 11, Price: d("16.95")},
		{MinQty: 12, MaxQty: 23, Price: d("14.45")},
		{MinQty: 24, MaxQty: 47, Price: d("12.33")},
		{MinQty: 48, MaxQty: 71, Price: d("11.33")},
		{MinQty: 72, MaxQty: 143, Price: d("10.33")},
		{MinQty: 144, MaxQty: 287, Price: d("9.83")},
		{MinQty: 288, Price: d("9.33")},
	},
	MarkupBands: []MarkupBand{
		{Name: "low-cost", MaxWholesale: d("4.25"), Multiplier: d("2.5")},
		{Name: "mid-range", MaxWholesale: d("6.99"), Multiplier: d("2.2")},
		{Name: "premium", Multiplier: d("2.0")},
	},
	SizeSurcharges: map[string]decimal.Decimal{
		"XS":  decimal.Zero,
		"S":   decimal.Zero,
		"M":   decimal.Zero,
		"L":   decimal.Zero,
		"XL":  decimal.Zero,
		"2XL": d("2.00"),
		"3XL": d("3.00"),
		"4XL": d("4.00"),
		"5XL": d("5.00"),
		"6XL": d("6.00"),
	},
	SizeOrder: []string{"XS", "S", "M", "L", "XL", "2XL", "3XL", "4XL", "5XL", "6XL"},

	SetupFeePerScreen:       d("30.00"),
	FirstColorWithUnderbase: d("2.00"),
	FirstColorNoUnderbase:   d("1.00"),
	AdditionalColorStandard: d("1.50"),
	AdditionalColorPremium:  d("1.75"),
	MinimumQuantities: map[int]int{
		1: 15,
		2: 20,
		3: 30,
		4: 40,
		5: 50,
		6: 60,
	},
	RushPremiums: map[RushTier]decimal.Decimal{
		RushFiveDay:  d("0.20"),
		RushFourDay:  d("0.30"),
		RushThreeDay: d("0.40"),
		RushTwoDay:   d("0.50"),
	},
	TaxRate:               d("0.13"),
	FallbackGarmentPrice:  d("25.00"),
	PremiumWholesaleFloor: d("7.00"),
	QualityWholesaleFloor: d("4.30"),
	MaxScreens:            6,
	LightGarmentColors:    []string{"white", "yellow", "light grey", "light gray", "light-grey", "light-gray", "natural", "cream", "beige"},
	PremiumBrands:         []string{"comfort colors", "bella", "canvas", "next level", "american apparel", "independent trading", "champion", "carhartt"},
	PolyesterUnderbasePct: 50,
}

// DefaultConfig returns a fresh copy of the shop's pricing tables.
func DefaultConfig() *Config {
	return defaultConfig.Clone()
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	out := *c
	out.PremiumTiers = slices.Clone(c.PremiumTiers)
	out.QualityTiers = slices.Clone(c.QualityTiers)
	out.MarkupBands = slices.Clone(c.MarkupBands)
	out.SizeSurcharges = maps.Clone(c.SizeSurcharges)
	out.SizeOrder = slices.Clone(c.SizeOrder)
	out.MinimumQuantities = maps.Clone(c.MinimumQuantities)
	out.RushPremiums = maps.Clone(c.RushPremiums)
	out.LightGarmentColors = slices.Clone(c.LightGarmentColors)
	out.PremiumBrands = slices.Clone(c.PremiumBrands)
	return &out
}

// RushPremium returns the premium fraction for tier and whether the tier is recognized.
func (c *Config) RushPremium(tier RushTier) (decimal.Decimal, bool) {
	p, ok := c.RushPremiums[tier]
	if !ok {
		return decimal.Zero, false
	}
	return p, true
}
