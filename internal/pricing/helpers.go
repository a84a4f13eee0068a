package pricing

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// BlankClass is the pricing classification of a blank garment.
type BlankClass string

const (
	BlankPremium BlankClass = "premium"
	BlankQuality BlankClass = "quality"
	BlankBasic   BlankClass = "basic"
)

// Money converts a float price into a decimal. NaN and infinities map to zero so that
// callers fall through to the fallback garment price instead of propagating garbage.
func Money(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}

// ClassifyBlank decides which price table a blank is sold from.
func (c *Config) ClassifyBlank(wholesale decimal.Decimal, brand string) BlankClass {
	if wholesale.GreaterThanOrEqual(c.PremiumWholesaleFloor) || c.IsPremiumBrand(brand) {
		return BlankPremium
	}
	if wholesale.GreaterThanOrEqual(c.QualityWholesaleFloor) {
		return BlankQuality
	}
	return BlankBasic
}

// IsPremiumBrand reports whether brand contains one of the premium brand names,
// ignoring case.
func (c *Config) IsPremiumBrand(brand string) bool {
	b := strings.ToLower(brand)
	if b == "" {
		return false
	}
	for _, p := range c.PremiumBrands {
		if strings.Contains(b, p) {
			return true
		}
	}
	return false
}

// QuantityTieredPrice returns the per-unit retail price of a blank at the given order
// quantity.
func (c *Config) QuantityTieredPrice(wholesale decimal.Decimal, qty int, brand string) decimal.Decimal {
	switch c.ClassifyBlank(wholesale, brand) {
	case BlankPremium:
		return tierPrice(c.PremiumTiers, qty)
	case BlankQuality:
		return tierPrice(c.QualityTiers, qty)
	default:
		return c.LegacyMarkupPrice(wholesale)
	}
}

func tierPrice(tiers []Tier, qty int) decimal.Decimal {
	for _, t := range tiers {
		if t.Contains(qty) {
			return t.Price.Round(2)
		}
	}
	// qty below the first tier: price as the smallest order.
	return tiers[0].Price.Round(2)
}

// LegacyMarkupPrice multiplies wholesale by its markup band. Missing or non-positive
// wholesale prices use the fallback garment price.
func (c *Config) LegacyMarkupPrice(wholesale decimal.Decimal) decimal.Decimal {
	if !wholesale.IsPositive() {
		wholesale = c.FallbackGarmentPrice
	}
	for _, band := range c.MarkupBands {
		if band.MaxWholesale.IsZero() || wholesale.LessThanOrEqual(band.MaxWholesale) {
			return wholesale.Mul(band.Multiplier).Round(2)
		}
	}
	return wholesale.Round(2)
}

// NormalizeSize maps common size spellings onto the canonical labels.
func NormalizeSize(size string) string {
	s := strings.ToUpper(strings.TrimSpace(size))
	switch s {
	case "XXL":
		return "2XL"
	case "XXXL":
		return "3XL"
	case "XXXXL":
		return "4XL"
	case "SM", "SMALL":
		return "S"
	case "MD", "MED", "MEDIUM":
		return "M"
	case "LG", "LARGE":
		return "L"
	}
	return s
}

// SizeAdjustedWholesale adds the size surcharge to a base wholesale price.
// Unknown sizes carry no surcharge.
func (c *Config) SizeAdjustedWholesale(base decimal.Decimal, size string) decimal.Decimal {
	return base.Add(c.SizeSurcharges[NormalizeSize(size)])
}

// SizeAdjustedRetail prices one size of a blank: size surcharge first, then the
// quantity tier.
func (c *Config) SizeAdjustedRetail(base decimal.Decimal, size string, qty int, brand string) decimal.Decimal {
	return c.QuantityTieredPrice(c.SizeAdjustedWholesale(base, size), qty, brand)
}

// SortSizesByOrder returns entries ordered by canonical size. Entries whose size is not
// a canonical label follow in their original order.
func SortSizesByOrder[T any](c *Config, entries []T, size func(T) string) []T {
	rank := make(map[string]int, len(c.SizeOrder))
	for i, s := range c.SizeOrder {
		rank[s] = i
	}

	buckets := make([][]T, len(c.SizeOrder))
	var extra []T
	for _, e := range entries {
		if i, ok := rank[NormalizeSize(size(e))]; ok {
			buckets[i] = append(buckets[i], e)
			continue
		}
		extra = append(extra, e)
	}

	out := make([]T, 0, len(entries))
	for _, b := range buckets {
		out = append(out, b...)
	}
	return append(out, extra...)
}

// MinimumQuantity is the smallest order accepted for colorCount ink colors.
func (c *Config) MinimumQuantity(colorCount int) int {
	if m, ok := c.MinimumQuantities[colorCount]; ok {
		return m
	}
	return c.MinimumQuantities[1]
}
