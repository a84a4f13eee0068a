package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/Simplici0/printquote/internal/inventory"
	"github.com/Simplici0/printquote/internal/orders"
	"github.com/Simplici0/printquote/internal/pricing"
)

const maxBodyBytes = 1 << 20

func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("encode json response: %v", err)
	}
}

func errorResponse(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid json body: %w", err)
	}
	return nil
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"inventory": s.inventory != nil,
	})
}

type pricingTablesView struct {
	MinimumQuantities map[int]int                          `json:"minimum_quantities"`
	RushPremiums      map[pricing.RushTier]decimal.Decimal `json:"rush_premiums"`
	TaxRate           decimal.Decimal                      `json:"tax_rate"`
	SetupFeePerScreen decimal.Decimal                      `json:"setup_fee_per_screen"`
	MaxScreens        int                                  `json:"max_screens"`
	SizeOrder         []string                             `json:"size_order"`
}

func (s *server) handlePricingTables(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, pricingTablesView{
		MinimumQuantities: s.pricing.MinimumQuantities,
		RushPremiums:      s.pricing.RushPremiums,
		TaxRate:           s.pricing.TaxRate,
		SetupFeePerScreen: s.pricing.SetupFeePerScreen,
		MaxScreens:        s.pricing.MaxScreens,
		SizeOrder:         s.pricing.SizeOrder,
	})
}

func (s *server) handleQuote(w http.ResponseWriter, r *http.Request) {
	var req pricing.QuoteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	jsonResponse(w, http.StatusOK, s.pricing.Quote(req))
}

func (s *server) handleGarmentPrices(w http.ResponseWriter, r *http.Request) {
	if s.inventory == nil {
		errorResponse(w, http.StatusServiceUnavailable, "garment lookups are not configured")
		return
	}

	qty := 1
	if raw := strings.TrimSpace(r.URL.Query().Get("qty")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			errorResponse(w, http.StatusBadRequest, "qty must be a positive integer")
			return
		}
		qty = v
	}

	styleID := chi.URLParam(r, "styleID")
	sheet, err := s.inventory.PriceSheet(r.Context(), styleID, r.URL.Query().Get("color"), qty)
	switch {
	case errors.Is(err, inventory.ErrStyleNotFound), errors.Is(err, inventory.ErrColorNotFound):
		errorResponse(w, http.StatusNotFound, err.Error())
		return
	case err != nil:
		log.Printf("garment price sheet for style %s: %v", styleID, err)
		errorResponse(w, http.StatusBadGateway, "failed to load garment prices")
		return
	}

	jsonResponse(w, http.StatusOK, sheet)
}

func (s *server) handleOrderSubmit(w http.ResponseWriter, r *http.Request) {
	var sub orders.Submission
	if err := decodeJSON(w, r, &sub); err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	order, err := s.orders.Submit(r.Context(), sub)
	switch {
	case errors.Is(err, orders.ErrMissingContact):
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, orders.ErrInvalidQuote):
		errorResponse(w, http.StatusUnprocessableEntity, err.Error())
		return
	case errors.Is(err, orders.ErrQuoteMismatch):
		errorResponse(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		log.Printf("submit order: %v", err)
		errorResponse(w, http.StatusInternalServerError, "failed to save order")
		return
	}

	log.Printf("order %s submitted: %s", order.ID, order.Quote.Total.StringFixed(2))
	jsonResponse(w, http.StatusCreated, order)
}

func (s *server) handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		errorResponse(w, http.StatusBadRequest, "invalid form")
		return
	}

	email := r.FormValue("email")
	valid, err := s.auth.validateCredentials(r.Context(), email, r.FormValue("password"))
	if err != nil {
		log.Printf("login: %v", err)
		errorResponse(w, http.StatusInternalServerError, "authentication error")
		return
	}
	if !valid {
		errorResponse(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	s.auth.setSessionCookie(w, email)
	jsonResponse(w, http.StatusOK, map[string]string{"email": email})
}

func (s *server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.auth.clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleOrdersList(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	list, err := s.orders.List(r.Context(), query)
	if err != nil {
		log.Printf("list orders: %v", err)
		errorResponse(w, http.StatusInternalServerError, "failed to load orders")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]any{
		"query":  query,
		"orders": list,
	})
}

func (s *server) handleOrderDetail(w http.ResponseWriter, r *http.Request) {
	order, err := s.orders.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, orders.ErrNotFound) {
		errorResponse(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		log.Printf("get order: %v", err)
		errorResponse(w, http.StatusInternalServerError, "failed to load order")
		return
	}

	jsonResponse(w, http.StatusOK, order)
}

func (s *server) handleOrderVerify(w http.ResponseWriter, r *http.Request) {
	v, err := s.orders.Verify(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, orders.ErrNotFound) {
		errorResponse(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		log.Printf("verify order: %v", err)
		errorResponse(w, http.StatusInternalServerError, "failed to verify order")
		return
	}

	if !v.Matches {
		log.Printf("order %s: stored quote %s does not match recomputed %s",
			v.Order.ID, v.Order.Quote.Total.StringFixed(2), v.Recomputed.Total.StringFixed(2))
	}
	jsonResponse(w, http.StatusOK, v)
}
