package orders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Simplici0/printquote/internal/db"
	"github.com/Simplici0/printquote/internal/pricing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	database, err := db.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close()
	})

	return NewStore(database, pricing.DefaultConfig())
}

func sampleRequest() pricing.QuoteRequest {
	return pricing.QuoteRequest{
		GarmentQty:     50,
		ColorCount:     2,
		GarmentColor:   "red",
		InkColors:      []string{"white", "yellow"},
		GarmentPrice:   6.25,
		NeedsUnderbase: pricing.UnderbaseForceOn,
	}
}

func TestSubmit_PersistsServerQuote(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	order, err := store.Submit(ctx, Submission{
		CustomerName:  " Ana ",
		CustomerEmail: "ana@example.com",
		Title:         "Team shirts",
		Request:       sampleRequest(),
		ExpectedTotal: decimal.NewNullDecimal(decimal.RequireFromString("652.58")),
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if order.ID == "" || order.CustomerName != "Ana" {
		t.Fatalf("unexpected order %+v", order)
	}

	got, err := store.Get(ctx, order.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Quote.Total.StringFixed(2) != "652.58" || got.Quote.TotalScreens != 3 {
		t.Fatalf("unexpected stored quote %+v", got.Quote)
	}
	if got.Request.NeedsUnderbase != pricing.UnderbaseForceOn || len(got.Request.InkColors) != 2 {
		t.Fatalf("unexpected stored request %+v", got.Request)
	}
	if !got.CreatedAt.Equal(order.CreatedAt) {
		t.Fatalf("created_at %v, want %v", got.CreatedAt, order.CreatedAt)
	}
}

func TestSubmit_RejectsTamperedTotal(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Submit(context.Background(), Submission{
		CustomerName:  "Ana",
		CustomerEmail: "ana@example.com",
		Request:       sampleRequest(),
		ExpectedTotal: decimal.NewNullDecimal(decimal.RequireFromString("100.00")),
	})
	if !errors.Is(err, ErrQuoteMismatch) {
		t.Fatalf("expected ErrQuoteMismatch, got %v", err)
	}

	list, err := store.List(context.Background(), "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("tampered order was stored: %+v", list)
	}
}

func TestSubmit_RejectsInvalidQuoteAndMissingContact(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	req := sampleRequest()
	req.GarmentQty = 10
	_, err := store.Submit(ctx, Submission{CustomerName: "Ana", CustomerEmail: "ana@example.com", Request: req})
	if !errors.Is(err, ErrInvalidQuote) || !errors.Is(err, pricing.ErrMinimumNotMet) {
		t.Fatalf("expected invalid quote wrapping minimum error, got %v", err)
	}

	if _, err := store.Submit(ctx, Submission{CustomerName: "Ana", Request: sampleRequest()}); !errors.Is(err, ErrMissingContact) {
		t.Fatalf("expected ErrMissingContact, got %v", err)
	}
}

func TestList_OrdersNewestFirstAndFilters(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	for _, sub := range []Submission{
		{CustomerName: "Ana", CustomerEmail: "a@x.co", Title: "Primera", Notes: "nota uno"},
		{CustomerName: "Luis", CustomerEmail: "l@x.co", Title: "Llaveros", Notes: "cliente vip"},
		{CustomerName: "Casa Verde", CustomerEmail: "c@x.co", Title: "Prototipo", Notes: "urgente"},
	} {
		sub.Request = sampleRequest()
		if _, err := store.Submit(ctx, sub); err != nil {
			t.Fatalf("Submit %s: %v", sub.Title, err)
		}
		now = now.Add(24 * time.Hour)
	}

	all, err := store.List(ctx, "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 || all[0].Title != "Prototipo" || all[2].Title != "Primera" {
		t.Fatalf("orders are not sorted desc by created_at: %+v", all)
	}
	if all[0].Total.StringFixed(2) != "652.58" {
		t.Fatalf("unexpected total %s", all[0].Total)
	}

	byTitle, err := store.List(ctx, "llave")
	if err != nil {
		t.Fatalf("List title filter: %v", err)
	}
	if len(byTitle) != 1 || byTitle[0].Title != "Llaveros" {
		t.Fatalf("expected 1 order filtered by title, got %+v", byTitle)
	}

	byCustomer, err := store.List(ctx, "casa")
	if err != nil {
		t.Fatalf("List customer filter: %v", err)
	}
	if len(byCustomer) != 1 || byCustomer[0].CustomerName != "Casa Verde" {
		t.Fatalf("expected 1 order filtered by customer, got %+v", byCustomer)
	}
}

func TestVerify_DetectsTamperedStoredQuote(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	order, err := store.Submit(ctx, Submission{CustomerName: "Ana", CustomerEmail: "a@x.co", Request: sampleRequest()})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	v, err := store.Verify(ctx, order.ID)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !v.Matches {
		t.Fatalf("fresh order should verify: %+v", v)
	}

	if _, err := store.db.Exec(`UPDATE orders SET quote_json = REPLACE(quote_json, '"total":652.58', '"total":1.00') WHERE id = ?`, order.ID); err != nil {
		t.Fatalf("tamper: %v", err)
	}

	v, err = store.Verify(ctx, order.ID)
	if err != nil {
		t.Fatalf("Verify after tamper: %v", err)
	}
	if v.Matches {
		t.Fatalf("tampered order should not verify")
	}
	if v.Recomputed.Total.StringFixed(2) != "652.58" {
		t.Fatalf("recomputed total %s", v.Recomputed.Total)
	}
}

func TestGet_NotFound(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := store.Verify(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound from Verify, got %v", err)
	}
}
