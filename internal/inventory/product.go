package inventory

import (
	"context"
	"errors"
)

// ErrStyleNotFound is returned when the vendor has no products for a style.
var ErrStyleNotFound = errors.New("style not found")

// Product is one vendor SKU: a style in a single color and size.
type Product struct {
	SKU            string  `json:"sku"`
	StyleID        int     `json:"styleID"`
	BrandName      string  `json:"brandName"`
	StyleName      string  `json:"styleName"`
	ColorName      string  `json:"colorName"`
	SizeName       string  `json:"sizeName"`
	WholesalePrice float64 `json:"customerPrice"`
	PiecePrice     float64 `json:"piecePrice"`
	Quantity       int     `json:"qty"`
}

// Source returns every product of a style.
type Source interface {
	Products(ctx context.Context, styleID string) ([]Product, error)
}
