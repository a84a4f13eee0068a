package inventory

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Simplici0/printquote/internal/pricing"
)

// ErrColorNotFound is returned when a style is not sold in the requested color.
var ErrColorNotFound = errors.New("color not found")

// SizePrice is the price of one size of a blank.
type SizePrice struct {
	Size      string          `json:"size"`
	SKU       string          `json:"sku"`
	Wholesale decimal.Decimal `json:"wholesale"`
	Retail    decimal.Decimal `json:"retail"`
	InStock   int             `json:"in_stock"`
}

// PriceSheet lists the retail price of every size of a style in one color.
type PriceSheet struct {
	StyleID  string             `json:"style_id"`
	Brand    string             `json:"brand"`
	Style    string             `json:"style"`
	Color    string             `json:"color"`
	Quantity int                `json:"quantity"`
	Class    pricing.BlankClass `json:"class"`
	Sizes    []SizePrice        `json:"sizes"`
}

// Service resolves blank prices through a TTL cache in front of a Source.
type Service struct {
	source  Source
	cache   *Cache
	pricing *pricing.Config
}

// NewService creates a Service.
func NewService(source Source, cache *Cache, cfg *pricing.Config) *Service {
	return &Service{source: source, cache: cache, pricing: cfg}
}

// Products returns the products of styleID, from cache when fresh.
func (s *Service) Products(ctx context.Context, styleID string) ([]Product, error) {
	styleID = strings.TrimSpace(styleID)
	if products, ok := s.cache.Get(styleID); ok {
		return products, nil
	}

	products, err := s.source.Products(ctx, styleID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(styleID, products)
	log.Printf("inventory: cached %d products for style %s", len(products), styleID)
	return products, nil
}

// PriceSheet prices every size of styleID in color for an order of qty pieces.
// An empty color selects the first color the vendor lists.
func (s *Service) PriceSheet(ctx context.Context, styleID, color string, qty int) (PriceSheet, error) {
	products, err := s.Products(ctx, styleID)
	if err != nil {
		return PriceSheet{}, err
	}

	if color == "" {
		color = products[0].ColorName
	}
	var matched []Product
	for _, p := range products {
		if strings.EqualFold(p.ColorName, color) {
			matched = append(matched, p)
		}
	}
	if len(matched) == 0 {
		return PriceSheet{}, fmt.Errorf("style %s in %q: %w", styleID, color, ErrColorNotFound)
	}

	base := baseWholesale(matched)
	brand := matched[0].BrandName
	sheet := PriceSheet{
		StyleID:  styleID,
		Brand:    brand,
		Style:    matched[0].StyleName,
		Color:    matched[0].ColorName,
		Quantity: qty,
		Class:    s.pricing.ClassifyBlank(base, brand),
	}

	matched = pricing.SortSizesByOrder(s.pricing, matched, func(p Product) string { return p.SizeName })
	for _, p := range matched {
		sheet.Sizes = append(sheet.Sizes, SizePrice{
			Size:      p.SizeName,
			SKU:       p.SKU,
			Wholesale: s.pricing.SizeAdjustedWholesale(base, p.SizeName),
			Retail:    s.pricing.SizeAdjustedRetail(base, p.SizeName, qty, brand),
			InStock:   p.Quantity,
		})
	}
	return sheet, nil
}

// baseWholesale is the lowest positive wholesale price among products, zero when none
// is usable.
func baseWholesale(products []Product) decimal.Decimal {
	base := decimal.Zero
	for _, p := range products {
		w := pricing.Money(p.WholesalePrice)
		if !w.IsPositive() {
			continue
		}
		if base.IsZero() || w.LessThan(base) {
			base = w
		}
	}
	return base
}
