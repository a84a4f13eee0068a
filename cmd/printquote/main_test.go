package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/Simplici0/printquote/internal/pricing"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	err := app.Run(append([]string{"printquote"}, args...))
	return out.String(), err
}

func TestQuoteText(t *testing.T) {
	out, err := run(t, "quote", "--qty", "50", "--colors", "2", "--garment-color", "red",
		"--ink", "white", "--ink", "yellow", "--price", "6.25", "--underbase", "on")
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	for _, want := range []string{"2 colors + underbase = 3 screens × 1 location", "Tax", "75.08", "652.58"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Rush") {
		t.Fatalf("did not expect a rush line:\n%s", out)
	}
}

func TestQuoteJSONWithRush(t *testing.T) {
	out, err := run(t, "quote", "-q", "50", "-c", "2", "-g", "red", "--ink", "white", "--ink", "yellow",
		"--price", "6.25", "--underbase", "on", "--rush", "2day", "--format", "json")
	if err != nil {
		t.Fatalf("quote: %v", err)
	}

	var q pricing.Quote
	if err := json.Unmarshal([]byte(out), &q); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if q.RushTier != pricing.RushTwoDay || q.Total.StringFixed(2) != "978.86" {
		t.Fatalf("unexpected rush quote: tier=%s total=%s", q.RushTier, q.Total)
	}
}

func TestQuoteInvalidReturnsSentinel(t *testing.T) {
	_, err := run(t, "quote", "--qty", "10", "--colors", "3")
	if !errors.Is(err, pricing.ErrMinimumNotMet) {
		t.Fatalf("expected ErrMinimumNotMet, got %v", err)
	}

	_, err = run(t, "quote", "--qty", "100", "--colors", "6", "--garment-color", "black")
	if !errors.Is(err, pricing.ErrScreenLimit) {
		t.Fatalf("expected ErrScreenLimit, got %v", err)
	}
}

func TestQuoteRejectsBadFlags(t *testing.T) {
	if _, err := run(t, "quote", "--qty", "50", "--colors", "1", "--underbase", "maybe"); err == nil {
		t.Fatalf("expected error for bad underbase override")
	}
	if _, err := run(t, "quote", "--qty", "50", "--colors", "1", "--format", "xml"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
	if _, err := run(t, "quote", "--colors", "1"); err == nil {
		t.Fatalf("expected error for missing qty")
	}
}

func TestPrice(t *testing.T) {
	out, err := run(t, "price", "--wholesale", "3.00", "--qty", "24", "--size", "xxl")
	if err != nil {
		t.Fatalf("price: %v", err)
	}
	for _, want := range []string{"basic", "7.50", "Retail 2XL", "12.33"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestMinimums(t *testing.T) {
	out, err := run(t, "minimums")
	if err != nil {
		t.Fatalf("minimums: %v", err)
	}
	for _, want := range []string{"60", "2day", "50%", "5day", "20%"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}
