package pricing

import (
	"fmt"
	"math"

	"sciencehub-backend/internal/models"
)

// Config carries an event's pricing configuration.
type Config struct {
	PaymentMode    string
	UnitPrice      float64
	Currency       string
	CoupleDiscount float64 // percent off per adult pair, 0 = none
	ChildHalfPrice bool
	AdultsOnly     bool
}

// ConfigFromEvent extracts the pricing configuration from an event record.
func ConfigFromEvent(ev models.Event) Config {
	return Config{
		PaymentMode:    ev.PaymentMode,
		UnitPrice:      ev.Price,
		Currency:       ev.Currency,
		CoupleDiscount: ev.CoupleDiscount,
		ChildHalfPrice: ev.ChildHalfPrice,
		AdultsOnly:     ev.AdultsOnly,
	}
}

type LineItem struct {
	Label    string  `json:"label"`
	Quantity int     `json:"quantity"`
	Amount   float64 `json:"amount"`
}

type Quote struct {
	Total     float64    `json:"total"`
	Currency  string     `json:"currency"`
	LineItems []LineItem `json:"line_items"`
}

// Calculate computes the total charge and line-item breakdown for the
// requested ticket counts. Callers clamp adults to [1,10] and children
// to [0,10] before invoking; no bounds are re-checked here.
func Calculate(cfg Config, adults, children int) Quote {
	quote := Quote{Currency: cfg.Currency, LineItems: []LineItem{}}

	if cfg.PaymentMode == models.PaymentFree || cfg.PaymentMode == models.PaymentDonation {
		return quote
	}

	// Adults: with a couple discount, pairs are charged a discounted
	// pair price rounded up to the next multiple of 100; an odd adult
	// pays the full unit price.
	if cfg.CoupleDiscount > 0 && adults >= 2 {
		pairs := adults / 2
		pairPrice := CouplePrice(cfg.UnitPrice, cfg.CoupleDiscount)
		quote.LineItems = append(quote.LineItems, LineItem{
			Label:    fmt.Sprintf("Adult pair (-%g%%)", cfg.CoupleDiscount),
			Quantity: pairs,
			Amount:   float64(pairs) * pairPrice,
		})
		if adults%2 == 1 {
			quote.LineItems = append(quote.LineItems, LineItem{
				Label:    "Adult",
				Quantity: 1,
				Amount:   cfg.UnitPrice,
			})
		}
	} else if adults > 0 {
		quote.LineItems = append(quote.LineItems, LineItem{
			Label:    "Adult",
			Quantity: adults,
			Amount:   float64(adults) * cfg.UnitPrice,
		})
	}

	// Children contribute nothing on adults-only events.
	if !cfg.AdultsOnly && children > 0 {
		childPrice := cfg.UnitPrice
		if cfg.ChildHalfPrice {
			childPrice = cfg.UnitPrice / 2
		}
		quote.LineItems = append(quote.LineItems, LineItem{
			Label:    "Child",
			Quantity: children,
			Amount:   float64(children) * childPrice,
		})
	}

	for _, item := range quote.LineItems {
		quote.Total += item.Amount
	}
	return quote
}

// CouplePrice is the charge for one adult pair under a couple
// discount: the discounted pair price, always rounded up to the next
// multiple of 100.
func CouplePrice(unitPrice, discountPercent float64) float64 {
	raw := unitPrice * 2 * (1 - discountPercent/100)
	return math.Ceil(raw/100) * 100
}
