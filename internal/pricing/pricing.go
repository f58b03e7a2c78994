// Package pricing turns a unit price, a party size and an optional promo code
// into the amounts charged for a booking. Everything here is pure; the promo
// preview endpoint and the booking transaction share it so both always quote
// the same numbers.
package pricing

import (
	"github.com/Eursukkul/experience-booking/internal/models"
	"github.com/shopspring/decimal"
)

// Places is the fixed-point precision of every amount.
const Places = 2

var hundred = decimal.NewFromInt(100)

type Quote struct {
	BasePrice  decimal.Decimal
	Discount   decimal.Decimal
	TotalPrice decimal.Decimal
}

// Discount returns the amount promo takes off basePrice. Percentage values
// are read as 0-100. The result is not capped at basePrice.
func Discount(promo *models.PromoCode, basePrice decimal.Decimal) decimal.Decimal {
	if promo == nil {
		return decimal.Zero
	}
	switch promo.DiscountType {
	case models.DiscountPercentage:
		return basePrice.Mul(promo.DiscountValue).Div(hundred).Round(Places)
	case models.DiscountFixed:
		return promo.DiscountValue.Round(Places)
	default:
		return decimal.Zero
	}
}

// Price computes base and total for numberOfPeople at unitPrice minus discount.
func Price(unitPrice decimal.Decimal, numberOfPeople int, discount decimal.Decimal) Quote {
	base := unitPrice.Mul(decimal.NewFromInt(int64(numberOfPeople))).Round(Places)
	discount = discount.Round(Places)
	return Quote{
		BasePrice:  base,
		Discount:   discount,
		TotalPrice: base.Sub(discount),
	}
}

// Calculator applies promo codes on top of Price.
type Calculator struct {
	// ClampDiscount caps the discount at the base price, so TotalPrice
	// bottoms out at zero instead of going negative.
	ClampDiscount bool
}

func (c Calculator) Quote(unitPrice decimal.Decimal, numberOfPeople int, promo *models.PromoCode) Quote {
	base := Price(unitPrice, numberOfPeople, decimal.Zero).BasePrice
	discount := Discount(promo, base)
	if c.ClampDiscount && discount.GreaterThan(base) {
		discount = base
	}
	return Price(unitPrice, numberOfPeople, discount)
}
