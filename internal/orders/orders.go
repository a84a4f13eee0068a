package orders

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Simplici0/printquote/internal/pricing"
)

const timeLayout = "2006-01-02 15:04:05"

var (
	ErrNotFound       = errors.New("order not found")
	ErrMissingContact = errors.New("customer name and email are required")
	ErrInvalidQuote   = errors.New("order quote is invalid")
	ErrQuoteMismatch  = errors.New("quoted total does not match recomputed total")
)

// Submission is an order as sent by a customer, including the total they were shown.
type Submission struct {
	CustomerName  string               `json:"customer_name"`
	CustomerEmail string               `json:"customer_email"`
	Title         string               `json:"title"`
	Notes         string               `json:"notes"`
	Request       pricing.QuoteRequest `json:"request"`
	ExpectedTotal decimal.NullDecimal  `json:"expected_total"`
}

// Order is a persisted submission with the server-side quote.
type Order struct {
	ID            string               `json:"id"`
	CreatedAt     time.Time            `json:"created_at"`
	CustomerName  string               `json:"customer_name"`
	CustomerEmail string               `json:"customer_email"`
	Title         string               `json:"title,omitempty"`
	Notes         string               `json:"notes,omitempty"`
	Request       pricing.QuoteRequest `json:"request"`
	Quote         pricing.Quote        `json:"quote"`
}

// Summary is one row of an order listing.
type Summary struct {
	ID           string          `json:"id"`
	CreatedAt    time.Time       `json:"created_at"`
	Title        string          `json:"title"`
	CustomerName string          `json:"customer_name"`
	Total        decimal.Decimal `json:"total"`
}

// Verification compares a stored quote with a fresh computation.
type Verification struct {
	Order      Order         `json:"order"`
	Recomputed pricing.Quote `json:"recomputed"`
	Matches    bool          `json:"matches"`
}

// Store persists orders in SQL.
type Store struct {
	db      *sql.DB
	pricing *pricing.Config
	now     func() time.Time
}

// NewStore creates a Store pricing with cfg.
func NewStore(db *sql.DB, cfg *pricing.Config) *Store {
	return &Store{db: db, pricing: cfg, now: time.Now}
}

// Submit prices sub on the server and saves it. The submission is rejected when its
// quote is invalid or when ExpectedTotal disagrees with the recomputed total.
func (s *Store) Submit(ctx context.Context, sub Submission) (Order, error) {
	name := strings.TrimSpace(sub.CustomerName)
	email := strings.TrimSpace(sub.CustomerEmail)
	if name == "" || email == "" {
		return Order{}, ErrMissingContact
	}

	quote := s.pricing.Quote(sub.Request)
	if !quote.Valid {
		return Order{}, fmt.Errorf("%w: %w", ErrInvalidQuote, quote.Err())
	}
	if sub.ExpectedTotal.Valid && !sub.ExpectedTotal.Decimal.Round(2).Equal(quote.Total) {
		return Order{}, fmt.Errorf("%w: expected %s, computed %s",
			ErrQuoteMismatch, sub.ExpectedTotal.Decimal.StringFixed(2), quote.Total.StringFixed(2))
	}

	order := Order{
		ID:            uuid.NewString(),
		CreatedAt:     s.now().UTC().Truncate(time.Second),
		CustomerName:  name,
		CustomerEmail: email,
		Title:         strings.TrimSpace(sub.Title),
		Notes:         strings.TrimSpace(sub.Notes),
		Request:       sub.Request,
		Quote:         quote,
	}

	requestJSON, err := json.Marshal(order.Request)
	if err != nil {
		return Order{}, fmt.Errorf("encode quote request: %w", err)
	}
	quoteJSON, err := json.Marshal(order.Quote)
	if err != nil {
		return Order{}, fmt.Errorf("encode quote: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO orders (id, created_at, customer_name, customer_email, title, notes, request_json, quote_json, total)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, order.ID, order.CreatedAt.Format(timeLayout), order.CustomerName, order.CustomerEmail,
		order.Title, order.Notes, string(requestJSON), string(quoteJSON), quote.Total.StringFixed(2))
	if err != nil {
		return Order{}, fmt.Errorf("insert order: %w", err)
	}

	return order, nil
}

// Get loads one order.
func (s *Store) Get(ctx context.Context, id string) (Order, error) {
	var (
		order       Order
		createdAt   string
		requestJSON string
		quoteJSON   string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, customer_name, customer_email, COALESCE(title, ''), COALESCE(notes, ''), request_json, quote_json
		FROM orders
		WHERE id = ?
	`, id).Scan(&order.ID, &createdAt, &order.CustomerName, &order.CustomerEmail, &order.Title, &order.Notes, &requestJSON, &quoteJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, fmt.Errorf("query order: %w", err)
	}

	if order.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return Order{}, fmt.Errorf("parse order created_at: %w", err)
	}
	if err := json.Unmarshal([]byte(requestJSON), &order.Request); err != nil {
		return Order{}, fmt.Errorf("decode order request: %w", err)
	}
	if err := json.Unmarshal([]byte(quoteJSON), &order.Quote); err != nil {
		return Order{}, fmt.Errorf("decode order quote: %w", err)
	}
	return order, nil
}

// List returns orders newest first. A non-empty query filters by title, customer name
// or notes.
func (s *Store) List(ctx context.Context, query string) ([]Summary, error) {
	query = strings.TrimSpace(query)
	search := "%" + query + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, COALESCE(title, ''), customer_name, total
		FROM orders
		WHERE (? = '' OR COALESCE(title, '') LIKE ? OR customer_name LIKE ? OR COALESCE(notes, '') LIKE ?)
		ORDER BY created_at DESC, rowid DESC
	`, query, search, search, search)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	summaries := make([]Summary, 0)
	for rows.Next() {
		var (
			sum       Summary
			createdAt string
		)
		if err := rows.Scan(&sum.ID, &createdAt, &sum.Title, &sum.CustomerName, &sum.Total); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		if sum.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
			return nil, fmt.Errorf("parse order created_at: %w", err)
		}
		summaries = append(summaries, sum)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}

	return summaries, nil
}

// Verify reprices a stored order and reports whether the stored quote still holds.
func (s *Store) Verify(ctx context.Context, id string) (Verification, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return Verification{}, err
	}

	recomputed := s.pricing.Quote(order.Request)
	return Verification{
		Order:      order,
		Recomputed: recomputed,
		Matches:    recomputed.Equal(order.Quote),
	}, nil
}
