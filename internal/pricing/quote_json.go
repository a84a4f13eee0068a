package pricing

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// money encodes as a JSON number with exactly two decimals.
type money decimal.Decimal

func (m money) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(m).StringFixed(2)), nil
}

func (m *money) UnmarshalJSON(b []byte) error {
	return (*decimal.Decimal)(m).UnmarshalJSON(b)
}

type quoteJSON struct {
	Valid   bool        `json:"valid"`
	Message string      `json:"message,omitempty"`
	Failure FailureKind `json:"failure,omitempty"`

	GarmentQty    int `json:"garment_qty,omitempty"`
	ColorCount    int `json:"color_count,omitempty"`
	LocationCount int `json:"location_count,omitempty"`

	GarmentCostPerShirt   money           `json:"garment_cost_per_shirt"`
	SetupTotal            money           `json:"setup_total"`
	FirstColorCharge      money           `json:"first_color_charge"`
	AdditionalColorCharge money           `json:"additional_color_charge"`
	ColorChargesPerShirt  money           `json:"color_charges_per_shirt"`
	PrintingCostPerShirt  money           `json:"printing_cost_per_shirt"`
	PrintingTotal         money           `json:"printing_total"`
	Subtotal              money           `json:"subtotal"`
	RushTier              RushTier        `json:"rush_tier,omitempty"`
	RushPremium           decimal.Decimal `json:"rush_premium"`
	RushFee               money           `json:"rush_fee"`
	PreTaxTotal           money           `json:"pre_tax_total"`
	Tax                   money           `json:"tax"`
	Total                 money           `json:"total"`

	NeedsUnderbase  bool   `json:"needs_underbase"`
	TotalScreens    int    `json:"total_screens,omitempty"`
	ScreenBreakdown string `json:"screen_breakdown,omitempty"`
}

// MarshalJSON renders money fields with two decimals.
func (q Quote) MarshalJSON() ([]byte, error) {
	return json.Marshal(quoteJSON{
		Valid:                 q.Valid,
		Message:               q.Message,
		Failure:               q.Failure,
		GarmentQty:            q.GarmentQty,
		ColorCount:            q.ColorCount,
		LocationCount:         q.LocationCount,
		GarmentCostPerShirt:   money(q.GarmentCostPerShirt),
		SetupTotal:            money(q.SetupTotal),
		FirstColorCharge:      money(q.FirstColorCharge),
		AdditionalColorCharge: money(q.AdditionalColorCharge),
		ColorChargesPerShirt:  money(q.ColorChargesPerShirt),
		PrintingCostPerShirt:  money(q.PrintingCostPerShirt),
		PrintingTotal:         money(q.PrintingTotal),
		Subtotal:              money(q.Subtotal),
		RushTier:              q.RushTier,
		RushPremium:           q.RushPremium,
		RushFee:               money(q.RushFee),
		PreTaxTotal:           money(q.PreTaxTotal),
		Tax:                   money(q.Tax),
		Total:                 money(q.Total),
		NeedsUnderbase:        q.NeedsUnderbase,
		TotalScreens:          q.TotalScreens,
		ScreenBreakdown:       q.ScreenBreakdown,
	})
}

// UnmarshalJSON reads a quote written by MarshalJSON.
func (q *Quote) UnmarshalJSON(b []byte) error {
	var w quoteJSON
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*q = Quote{
		Valid:                 w.Valid,
		Message:               w.Message,
		Failure:               w.Failure,
		GarmentQty:            w.GarmentQty,
		ColorCount:            w.ColorCount,
		LocationCount:         w.LocationCount,
		GarmentCostPerShirt:   decimal.Decimal(w.GarmentCostPerShirt),
		SetupTotal:            decimal.Decimal(w.SetupTotal),
		FirstColorCharge:      decimal.Decimal(w.FirstColorCharge),
		AdditionalColorCharge: decimal.Decimal(w.AdditionalColorCharge),
		ColorChargesPerShirt:  decimal.Decimal(w.ColorChargesPerShirt),
		PrintingCostPerShirt:  decimal.Decimal(w.PrintingCostPerShirt),
		PrintingTotal:         decimal.Decimal(w.PrintingTotal),
		Subtotal:              decimal.Decimal(w.Subtotal),
		RushTier:              w.RushTier,
		RushPremium:           w.RushPremium,
		RushFee:               decimal.Decimal(w.RushFee),
		PreTaxTotal:           decimal.Decimal(w.PreTaxTotal),
		Tax:                   decimal.Decimal(w.Tax),
		Total:                 decimal.Decimal(w.Total),
		NeedsUnderbase:        w.NeedsUnderbase,
		TotalScreens:          w.TotalScreens,
		ScreenBreakdown:       w.ScreenBreakdown,
	}
	return nil
}

// Equal reports whether two quotes carry the same figures.
func (q Quote) Equal(o Quote) bool {
	return q.Valid == o.Valid &&
		q.Failure == o.Failure &&
		q.GarmentQty == o.GarmentQty &&
		q.ColorCount == o.ColorCount &&
		q.LocationCount == o.LocationCount &&
		q.TotalScreens == o.TotalScreens &&
		q.NeedsUnderbase == o.NeedsUnderbase &&
		q.RushTier == o.RushTier &&
		q.ScreenBreakdown == o.ScreenBreakdown &&
		q.GarmentCostPerShirt.Equal(o.GarmentCostPerShirt) &&
		q.FirstColorCharge.Equal(o.FirstColorCharge) &&
		q.AdditionalColorCharge.Equal(o.AdditionalColorCharge) &&
		q.SetupTotal.Equal(o.SetupTotal) &&
		q.PrintingCostPerShirt.Equal(o.PrintingCostPerShirt) &&
		q.Subtotal.Equal(o.Subtotal) &&
		q.RushFee.Equal(o.RushFee) &&
		q.Tax.Equal(o.Tax) &&
		q.Total.Equal(o.Total)
}
