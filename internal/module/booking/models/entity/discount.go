package entity

import (
	"database/sql"
	"time"

	"training-booking-service/internal/pkg/errors"

	"github.com/shopspring/decimal"
)

const (
	DiscountTypePercent = "percent"
	DiscountTypeFixed   = "fixed"
)

type DiscountCode struct {
	ID            int64           `db:"id"`
	Code          string          `db:"code"`
	DiscountType  string          `db:"discount_type"`
	DiscountValue decimal.Decimal `db:"discount_value"`
	MaxUses       sql.NullInt32   `db:"max_uses"`
	UsedCount     int             `db:"used_count"`
	ValidFrom     time.Time       `db:"valid_from"`
	ValidUntil    sql.NullTime    `db:"valid_until"`
	IsActive      bool            `db:"is_active"`
}

// Discount returns the amount taken off subtotal, never more than subtotal.
func (d DiscountCode) Discount(subtotal decimal.Decimal, now time.Time) (decimal.Decimal, error) {
	if !d.IsActive {
		return decimal.Zero, errors.InvalidDiscount("discount code is not active")
	}
	if now.Before(d.ValidFrom) || (d.ValidUntil.Valid && !now.Before(d.ValidUntil.Time)) {
		return decimal.Zero, errors.InvalidDiscount("discount code is not valid at this time")
	}
	if d.MaxUses.Valid && d.UsedCount >= int(d.MaxUses.Int32) {
		return decimal.Zero, errors.InvalidDiscount("discount code has been used up")
	}

	var discount decimal.Decimal
	switch d.DiscountType {
	case DiscountTypePercent:
		if d.DiscountValue.IsNegative() || d.DiscountValue.GreaterThan(decimal.NewFromInt(100)) {
			return decimal.Zero, errors.InvalidDiscount("discount code is misconfigured")
		}
		discount = subtotal.Mul(d.DiscountValue).Div(decimal.NewFromInt(100)).Round(2)
	case DiscountTypeFixed:
		if d.DiscountValue.IsNegative() {
			return decimal.Zero, errors.InvalidDiscount("discount code is misconfigured")
		}
		discount = d.DiscountValue
	default:
		return decimal.Zero, errors.InvalidDiscount("discount code is misconfigured")
	}

	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}
	return discount, nil
}
