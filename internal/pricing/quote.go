package pricing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidInput  = errors.New("invalid quote input")
	ErrMinimumNotMet = errors.New("minimum order quantity not met")
	ErrScreenLimit   = errors.New("screen limit exceeded")
)

// FailureKind tags why a quote is invalid.
type FailureKind string

const (
	FailureNone          FailureKind = ""
	FailureInput         FailureKind = "input"
	FailureMinimumNotMet FailureKind = "minimum_not_met"
	FailureScreenLimit   FailureKind = "screen_limit_exceeded"
)

// QuoteRequest holds the order parameters of a single print quote.
type QuoteRequest struct {
	GarmentQty    int      `json:"garment_qty"`
	ColorCount    int      `json:"color_count"`
	LocationCount int      `json:"location_count,omitempty"`
	GarmentColor  string   `json:"garment_color"`
	InkColors     []string `json:"ink_colors,omitempty"`
	// GarmentPrice is the per-shirt blank price; zero means not provided.
	GarmentPrice     float64           `json:"garment_price,omitempty"`
	NeedsUnderbase   UnderbaseOverride `json:"needs_underbase"`
	PolyesterPercent int               `json:"polyester_percent,omitempty"`
	PremiumInk       bool              `json:"premium_ink,omitempty"`
	Rush             RushTier          `json:"rush,omitempty"`
	Brand            string            `json:"brand,omitempty"`
	Style            string            `json:"style,omitempty"`
}

// Quote is the result of pricing a QuoteRequest. Money fields are rounded to cents.
type Quote struct {
	Valid   bool
	Message string
	Failure FailureKind

	GarmentQty    int
	ColorCount    int
	LocationCount int

	GarmentCostPerShirt   decimal.Decimal
	SetupTotal            decimal.Decimal
	FirstColorCharge      decimal.Decimal
	AdditionalColorCharge decimal.Decimal
	ColorChargesPerShirt  decimal.Decimal
	PrintingCostPerShirt  decimal.Decimal
	PrintingTotal         decimal.Decimal
	Subtotal              decimal.Decimal
	RushTier              RushTier
	RushPremium           decimal.Decimal
	RushFee               decimal.Decimal
	PreTaxTotal           decimal.Decimal
	Tax                   decimal.Decimal
	Total                 decimal.Decimal

	NeedsUnderbase  bool
	TotalScreens    int
	ScreenBreakdown string
}

// Err returns the validation failure as an error wrapping one of the package
// sentinels, or nil for a valid quote.
func (q Quote) Err() error {
	switch q.Failure {
	case FailureInput:
		return fmt.Errorf("%w: %s", ErrInvalidInput, q.Message)
	case FailureMinimumNotMet:
		return fmt.Errorf("%w: %s", ErrMinimumNotMet, q.Message)
	case FailureScreenLimit:
		return fmt.Errorf("%w: %s", ErrScreenLimit, q.Message)
	}
	return nil
}

func invalid(kind FailureKind, msg string) Quote {
	return Quote{Failure: kind, Message: msg, Total: decimal.Zero}
}

// CalculatePrintQuote prices req with the default tables.
func CalculatePrintQuote(req QuoteRequest) Quote {
	return DefaultConfig().Quote(req)
}

// screenPlan is the resolved screen and underbase layout of an order.
type screenPlan struct {
	screens   int
	underbase bool
	// whiteOnDark marks a single white ink on a dark blank: one screen, no separate
	// underbase, but billed at the underbase first-color rate.
	whiteOnDark bool
}

// Quote validates req and computes its price.
func (c *Config) Quote(req QuoteRequest) Quote {
	if req.GarmentQty < 1 || req.ColorCount < 1 {
		return invalid(FailureInput, "Please select at least 1 garment and 1 color.")
	}

	minQty := c.MinimumQuantity(req.ColorCount)
	if req.GarmentQty < minQty {
		return invalid(FailureMinimumNotMet, fmt.Sprintf("Minimum order for %s is %d pieces.",
			plural(req.ColorCount, "color"), minQty))
	}

	if req.ColorCount > c.MaxScreens {
		return invalid(FailureScreenLimit, fmt.Sprintf("%s exceeds the %d-screen press limit.",
			plural(req.ColorCount, "color"), c.MaxScreens))
	}

	locations := req.LocationCount
	if locations < 1 {
		locations = 1
	}

	plan := c.planScreens(req)
	if plan.screens > c.MaxScreens {
		return invalid(FailureScreenLimit, fmt.Sprintf(
			"%s = %s, which exceeds the %d-screen press limit.",
			composition(req.ColorCount, plan), plural(plan.screens, "screen"), c.MaxScreens))
	}

	qty := decimal.NewFromInt(int64(req.GarmentQty))
	locs := decimal.NewFromInt(int64(locations))

	setupTotal := c.SetupFeePerScreen.Mul(decimal.NewFromInt(int64(plan.screens))).Mul(locs)

	garmentCost := Money(req.GarmentPrice)
	if !garmentCost.IsPositive() {
		garmentCost = c.FallbackGarmentPrice
	}

	firstColor := c.FirstColorNoUnderbase
	if plan.whiteOnDark || plan.underbase {
		firstColor = c.FirstColorWithUnderbase
	}
	perColor := c.AdditionalColorStandard
	if req.PremiumInk {
		perColor = c.AdditionalColorPremium
	}
	additional := perColor.Mul(decimal.NewFromInt(int64(req.ColorCount - 1)))
	colorCharges := firstColor.Add(additional).Mul(locs)

	printingPerShirt := garmentCost.Add(colorCharges)
	printingTotal := printingPerShirt.Mul(qty)
	subtotal := printingTotal.Add(setupTotal)

	rushPct, ok := c.RushPremium(req.Rush)
	rushTier := req.Rush
	if !ok {
		rushTier = RushNone
	}
	rushFee := subtotal.Mul(rushPct)
	preTax := subtotal.Add(rushFee)
	total := preTax.Mul(decimal.NewFromInt(1).Add(c.TaxRate))

	breakdown := fmt.Sprintf("%s = %s × %s",
		composition(req.ColorCount, plan), plural(plan.screens, "screen"), plural(locations, "location"))

	q := Quote{
		Valid:         true,
		GarmentQty:    req.GarmentQty,
		ColorCount:    req.ColorCount,
		LocationCount: locations,

		GarmentCostPerShirt:   garmentCost.Round(2),
		SetupTotal:            setupTotal.Round(2),
		FirstColorCharge:      firstColor.Round(2),
		AdditionalColorCharge: additional.Round(2),
		ColorChargesPerShirt:  colorCharges.Round(2),
		PrintingCostPerShirt:  printingPerShirt.Round(2),
		PrintingTotal:         printingTotal.Round(2),
		Subtotal:              subtotal.Round(2),
		RushTier:              rushTier,
		RushPremium:           rushPct,
		RushFee:               rushFee.Round(2),
		PreTaxTotal:           preTax.Round(2),
		Total:                 total.Round(2),

		NeedsUnderbase:  plan.underbase,
		TotalScreens:    plan.screens,
		ScreenBreakdown: breakdown,
	}
	// Tax is the difference of the rounded lines so the quote always adds up.
	q.Tax = q.Total.Sub(q.PreTaxTotal)
	return q
}

func (c *Config) planScreens(req QuoteRequest) screenPlan {
	colors := req.ColorCount
	garment := strings.ToLower(strings.TrimSpace(req.GarmentColor))
	override := req.NeedsUnderbase

	if garment == "" || garment == "unknown" {
		// Customer-supplied blanks: assume an underbase unless told otherwise.
		underbase := override != UnderbaseForceOff
		return screenPlan{screens: colors + boolInt(underbase), underbase: underbase}
	}

	dark := !c.isLightGarment(garment)
	if override.Set() {
		dark = override == UnderbaseForceOn
	}
	onlyWhite, anyWhite := whiteInk(req.InkColors)

	var plan screenPlan
	switch {
	case dark || req.PolyesterPercent >= c.PolyesterUnderbasePct:
		switch {
		case onlyWhite && colors == 1:
			// The override does not apply: white ink is its own base.
			return screenPlan{screens: 1, underbase: false, whiteOnDark: dark}
		case anyWhite:
			// White ink and the underbase share a screen.
			plan = screenPlan{screens: colors, underbase: true}
		default:
			plan = screenPlan{screens: colors + 1, underbase: true}
		}
	default:
		plan = screenPlan{screens: colors, underbase: false}
	}

	if override.Set() {
		on := override == UnderbaseForceOn
		plan = screenPlan{screens: colors + boolInt(on), underbase: on}
	}
	return plan
}

func (c *Config) isLightGarment(color string) bool {
	for _, l := range c.LightGarmentColors {
		if color == l {
			return true
		}
	}
	return false
}

// whiteInk reports whether every ink is a white and whether any ink is.
func whiteInk(inks []string) (only, some bool) {
	if len(inks) == 0 {
		return false, false
	}
	only = true
	for _, ink := range inks {
		if strings.Contains(strings.ToLower(ink), "white") {
			some = true
		} else {
			only = false
		}
	}
	return only, some
}

func composition(colors int, plan screenPlan) string {
	s := plural(colors, "color")
	if plan.screens > colors {
		s += " + underbase"
	}
	return s
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
