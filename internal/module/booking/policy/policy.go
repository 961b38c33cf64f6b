// Package policy decides how much of a booking's payment is returned when it
// is cancelled.
package policy

import (
	"time"

	"github.com/shopspring/decimal"
)

type Tier string

const (
	TierFull       Tier = "full"
	TierPartial    Tier = "partial"
	TierNone       Tier = "none"
	TierCaseByCase Tier = "case_by_case"
)

// Rule grants RefundPercent when the cancellation happens at least MinNotice
// before the course starts. Rules are checked in order.
type Rule struct {
	Tier          Tier
	MinNotice     time.Duration
	RefundPercent int64
}

const day = 24 * time.Hour

var DefaultRules = []Rule{
	{Tier: TierFull, MinNotice: 7 * day, RefundPercent: 100},
	{Tier: TierPartial, MinNotice: 3 * day, RefundPercent: 50},
	{Tier: TierNone, MinNotice: 0, RefundPercent: 0},
}

type Decision struct {
	Tier           Tier
	RefundPercent  int64
	RefundAmount   decimal.Decimal
	ReviewRequired bool
}

type Policy struct {
	rules []Rule
}

func New(rules []Rule) *Policy {
	if len(rules) == 0 {
		rules = DefaultRules
	}
	return &Policy{rules: rules}
}

// Evaluate returns the refund for paid given the time left until start.
// Emergency cancellations that would not get a full refund are sent to
// manual review with nothing refunded automatically.
func (p *Policy) Evaluate(paid decimal.Decimal, start, now time.Time, emergency bool) Decision {
	notice := start.Sub(now)

	d := Decision{Tier: TierNone}
	for _, rule := range p.rules {
		if notice >= rule.MinNotice {
			d.Tier = rule.Tier
			d.RefundPercent = rule.RefundPercent
			break
		}
	}

	if emergency && d.RefundPercent < 100 {
		return Decision{Tier: TierCaseByCase, ReviewRequired: true, RefundAmount: decimal.Zero}
	}

	d.RefundAmount = paid.Mul(decimal.NewFromInt(d.RefundPercent)).Div(decimal.NewFromInt(100)).Round(2)
	return d
}
