// Command printquote prices screen-print orders from the command line.
//
// Usage:
//
//	printquote quote --qty 50 --colors 2 --garment-color red --ink white --ink yellow --price 6.25
//	printquote price --wholesale 3.10 --qty 48 --size 2XL
//	printquote minimums
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	"github.com/Simplici0/printquote/internal/pricing"
)

var version = "dev"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "printquote",
		Usage:   "Screen-print order pricing",
		Version: version,

		Commands: []*cli.Command{
			quoteCommand(),
			priceCommand(),
			minimumsCommand(),
		},
	}
}

func quoteCommand() *cli.Command {
	return &cli.Command{
		Name:  "quote",
		Usage: "Price a print order",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "qty", Aliases: []string{"q"}, Usage: "Number of garments", Required: true},
			&cli.IntFlag{Name: "colors", Aliases: []string{"c"}, Usage: "Ink colors per location", Required: true},
			&cli.IntFlag{Name: "locations", Aliases: []string{"l"}, Value: 1, Usage: "Print locations"},
			&cli.StringFlag{Name: "garment-color", Aliases: []string{"g"}, Usage: "Garment color; empty means unknown"},
			&cli.StringSliceFlag{Name: "ink", Usage: "Ink color (repeatable)"},
			&cli.Float64Flag{Name: "price", Usage: "Blank price per shirt; unset uses the fallback"},
			&cli.StringFlag{Name: "underbase", Value: "auto", Usage: "Underbase override (auto, on, off)"},
			&cli.IntFlag{Name: "polyester", Usage: "Polyester content percentage"},
			&cli.BoolFlag{Name: "premium-ink", Usage: "Bill additional colors at the premium ink rate"},
			&cli.StringFlag{Name: "rush", Usage: "Rush turnaround (5day, 4day, 3day, 2day)"},
			&cli.StringFlag{Name: "brand", Usage: "Garment brand"},
			&cli.StringFlag{Name: "style", Usage: "Garment style"},
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: "text", Usage: "Output format (text, json)"},
		},
		Action: runQuote,
	}
}

func runQuote(c *cli.Context) error {
	underbase, err := pricing.ParseUnderbaseOverride(c.String("underbase"))
	if err != nil {
		return err
	}

	req := pricing.QuoteRequest{
		GarmentQty:       c.Int("qty"),
		ColorCount:       c.Int("colors"),
		LocationCount:    c.Int("locations"),
		GarmentColor:     c.String("garment-color"),
		InkColors:        c.StringSlice("ink"),
		GarmentPrice:     c.Float64("price"),
		NeedsUnderbase:   underbase,
		PolyesterPercent: c.Int("polyester"),
		PremiumInk:       c.Bool("premium-ink"),
		Rush:             pricing.RushTier(c.String("rush")),
		Brand:            c.String("brand"),
		Style:            c.String("style"),
	}
	q := pricing.CalculatePrintQuote(req)

	switch c.String("format") {
	case "json":
		enc := json.NewEncoder(c.App.Writer)
		enc.SetIndent("", "  ")
		if err := enc.Encode(q); err != nil {
			return fmt.Errorf("encode quote: %w", err)
		}
	case "text":
		if q.Valid {
			writeQuote(c.App.Writer, q)
		}
	default:
		return fmt.Errorf("unknown format %q", c.String("format"))
	}

	if !q.Valid {
		return q.Err()
	}
	return nil
}

func writeQuote(w io.Writer, q pricing.Quote) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Screens\t%s\n", q.ScreenBreakdown)
	fmt.Fprintf(tw, "Underbase\t%t\n", q.NeedsUnderbase)
	fmt.Fprintf(tw, "Garment per shirt\t%s\n", q.GarmentCostPerShirt.StringFixed(2))
	fmt.Fprintf(tw, "Colors per shirt\t%s\n", q.ColorChargesPerShirt.StringFixed(2))
	fmt.Fprintf(tw, "Printing per shirt\t%s\n", q.PrintingCostPerShirt.StringFixed(2))
	fmt.Fprintf(tw, "Printing total\t%s\n", q.PrintingTotal.StringFixed(2))
	fmt.Fprintf(tw, "Setup\t%s\n", q.SetupTotal.StringFixed(2))
	fmt.Fprintf(tw, "Subtotal\t%s\n", q.Subtotal.StringFixed(2))
	if q.RushTier != pricing.RushNone {
		fmt.Fprintf(tw, "Rush (%s)\t%s\n", q.RushTier, q.RushFee.StringFixed(2))
	}
	fmt.Fprintf(tw, "Tax\t%s\n", q.Tax.StringFixed(2))
	fmt.Fprintf(tw, "Total\t%s\n", q.Total.StringFixed(2))
	_ = tw.Flush()
}

func priceCommand() *cli.Command {
	return &cli.Command{
		Name:  "price",
		Usage: "Show the retail price of a blank garment",
		Flags: []cli.Flag{
			&cli.Float64Flag{Name: "wholesale", Aliases: []string{"w"}, Usage: "Wholesale price per piece", Required: true},
			&cli.IntFlag{Name: "qty", Aliases: []string{"q"}, Value: 1, Usage: "Order quantity"},
			&cli.StringFlag{Name: "brand", Usage: "Garment brand"},
			&cli.StringFlag{Name: "size", Value: "M", Usage: "Garment size"},
		},
		Action: func(c *cli.Context) error {
			cfg := pricing.DefaultConfig()
			wholesale := pricing.Money(c.Float64("wholesale"))
			brand := c.String("brand")
			size := c.String("size")

			tw := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "Class\t%s\n", cfg.ClassifyBlank(wholesale, brand))
			fmt.Fprintf(tw, "Retail (%d pcs)\t%s\n", c.Int("qty"), cfg.QuantityTieredPrice(wholesale, c.Int("qty"), brand).StringFixed(2))
			fmt.Fprintf(tw, "Retail %s\t%s\n", pricing.NormalizeSize(size), cfg.SizeAdjustedRetail(wholesale, size, c.Int("qty"), brand).StringFixed(2))
			fmt.Fprintf(tw, "Legacy markup\t%s\n", cfg.LegacyMarkupPrice(wholesale).StringFixed(2))
			return tw.Flush()
		},
	}
}

func minimumsCommand() *cli.Command {
	return &cli.Command{
		Name:   "minimums",
		Usage:  "List minimum quantities and rush premiums",
		Action: func(c *cli.Context) error {
			cfg := pricing.DefaultConfig()
			tw := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "Colors\tMinimum")
			for colors := 1; colors <= cfg.MaxScreens; colors++ {
				fmt.Fprintf(tw, "%d\t%d\n", colors, cfg.MinimumQuantity(colors))
			}
			fmt.Fprintln(tw, "\nRush\tPremium")
			for _, tier := range []pricing.RushTier{pricing.RushFiveDay, pricing.RushFourDay, pricing.RushThreeDay, pricing.RushTwoDay} {
				pct, _ := cfg.RushPremium(tier)
				fmt.Fprintf(tw, "%s\t%s%%\n", tier, pct.Mul(decimal.NewFromInt(100)).StringFixed(0))
			}
			return tw.Flush()
		},
	}
}
