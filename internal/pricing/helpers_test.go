package pricing

import (
	"math"
	"reflect"
	"testing"

	"github.com/shopspring/decimal"
)

func TestQuantityTieredPrice_PremiumBlankIsMonotonic(t *testing.T) {
	c := DefaultConfig()
	wholesale := decimal.RequireFromString("8.00")

	equalMoney(t, "qty 1", c.QuantityTieredPrice(wholesale, 1, ""), "20.95")
	equalMoney(t, "qty 24", c.QuantityTieredPrice(wholesale, 24, ""), "15.33")
	equalMoney(t, "qty 288", c.QuantityTieredPrice(wholesale, 288, ""), "12.33")

	for _, w := range []string{"8.00", "5.00", "2.00"} {
		prev := c.QuantityTieredPrice(decimal.RequireFromString(w), 1, "")
		for qty := 2; qty <= 1000; qty++ {
			p := c.QuantityTieredPrice(decimal.RequireFromString(w), qty, "")
			if p.GreaterThan(prev) {
				t.Fatalf("wholesale %s: price rose from %s to %s at qty %d", w, prev, p, qty)
			}
			prev = p
		}
	}
}

func TestTiers_ContiguousAndExhaustive(t *testing.T) {
	c := DefaultConfig()
	for name, tiers := range map[string][]Tier{"premium": c.PremiumTiers, "quality": c.QualityTiers} {
		if tiers[0].MinQty != 1 {
			t.Fatalf("%s: first tier starts at %d", name, tiers[0].MinQty)
		}
		for i := 1; i < len(tiers); i++ {
			if tiers[i].MinQty != tiers[i-1].MaxQty+1 {
				t.Fatalf("%s: gap between tier %d and %d", name, i-1, i)
			}
			if tiers[i].Price.GreaterThan(tiers[i-1].Price) {
				t.Fatalf("%s: tier %d is pricier than tier %d", name, i, i-1)
			}
		}
		if last := tiers[len(tiers)-1]; last.MaxQty != 0 {
			t.Fatalf("%s: last tier is capped at %d", name, last.MaxQty)
		}
		for qty := 1; qty <= 2000; qty++ {
			matches := 0
			for _, tier := range tiers {
				if tier.Contains(qty) {
					matches++
				}
			}
			if matches != 1 {
				t.Fatalf("%s: qty %d matches %d tiers", name, qty, matches)
			}
		}
	}
}

func TestClassifyBlank(t *testing.T) {
	c := DefaultConfig()
	tests := []struct {
		wholesale string
		brand     string
		want      BlankClass
	}{
		{"7.00", "", BlankPremium},
		{"6.99", "Gildan", BlankQuality},
		{"4.30", "", BlankQuality},
		{"4.29", "Gildan", BlankBasic},
		{"3.10", "COMFORT COLORS", BlankPremium},
		{"3.10", "Bella + Canvas", BlankPremium},
		{"3.10", "Next Level Apparel", BlankPremium},
		{"0", "", BlankBasic},
	}
	for _, tt := range tests {
		if got := c.ClassifyBlank(decimal.RequireFromString(tt.wholesale), tt.brand); got != tt.want {
			t.Fatalf("ClassifyBlank(%s, %q) = %s, want %s", tt.wholesale, tt.brand, got, tt.want)
		}
	}
}

func TestLegacyMarkupPrice(t *testing.T) {
	c := DefaultConfig()
	tests := []struct {
		wholesale decimal.Decimal
		want      string
	}{
		{decimal.RequireFromString("3.00"), "7.50"},
		{decimal.RequireFromString("4.25"), "10.63"},
		{decimal.RequireFromString("5.00"), "11.00"},
		{decimal.RequireFromString("9.00"), "18.00"},
		{decimal.Zero, "50.00"},
		{decimal.RequireFromString("-1"), "50.00"},
		{Money(math.NaN()), "50.00"},
	}
	for _, tt := range tests {
		equalMoney(t, "legacy "+tt.wholesale.String(), c.LegacyMarkupPrice(tt.wholesale), tt.want)
	}
}

func TestSizeAdjustedPrices(t *testing.T) {
	c := DefaultConfig()
	base := decimal.RequireFromString("3.00")

	equalMoney(t, "M wholesale", c.SizeAdjustedWholesale(base, "M"), "3.00")
	equalMoney(t, "2XL wholesale", c.SizeAdjustedWholesale(base, "2XL"), "5.00")
	equalMoney(t, "xxl wholesale", c.SizeAdjustedWholesale(base, "xxl"), "5.00")
	equalMoney(t, "youth wholesale", c.SizeAdjustedWholesale(base, "YXL"), "3.00")

	equalMoney(t, "M retail", c.SizeAdjustedRetail(base, "M", 24, ""), "7.50")
	// The 2XL surcharge moves the blank into the quality tier table.
	equalMoney(t, "2XL retail", c.SizeAdjustedRetail(base, "2XL", 24, ""), "12.33")
}

func TestSortSizesByOrder_KeepsEveryEntry(t *testing.T) {
	type sizePrice struct {
		size  string
		price int
	}
	in := []sizePrice{{"XL", 1}, {"Youth M", 2}, {"S", 3}, {"2XL", 4}, {"OSFA", 5}, {"M", 6}, {"xs", 7}}

	got := SortSizesByOrder(DefaultConfig(), in, func(s sizePrice) string { return s.size })
	want := []sizePrice{{"xs", 7}, {"S", 3}, {"M", 6}, {"XL", 1}, {"2XL", 4}, {"Youth M", 2}, {"OSFA", 5}}

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SortSizesByOrder = %v, want %v", got, want)
	}
}

func TestMinimumQuantity(t *testing.T) {
	c := DefaultConfig()
	for colors, want := range map[int]int{0: 15, 1: 15, 2: 20, 3: 30, 4: 40, 5: 50, 6: 60, 7: 15, -2: 15} {
		if got := c.MinimumQuantity(colors); got != want {
			t.Fatalf("MinimumQuantity(%d) = %d, want %d", colors, got, want)
		}
	}
}

func TestParseUnderbaseOverride(t *testing.T) {
	for in, want := range map[string]UnderbaseOverride{"": UnderbaseUnset, "auto": UnderbaseUnset, "ON": UnderbaseForceOn, "false": UnderbaseForceOff} {
		got, err := ParseUnderbaseOverride(in)
		if err != nil {
			t.Fatalf("ParseUnderbaseOverride(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseUnderbaseOverride(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := ParseUnderbaseOverride("maybe"); err == nil {
		t.Fatalf("expected error for unknown override")
	}
}
