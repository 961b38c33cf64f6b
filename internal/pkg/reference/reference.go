// Package reference builds the human-readable identifiers handed to customers:
// booking, payment and refund references and certificate numbers.
//
// Sequential kinds draw their number from a Counter scoped by the kind's
// calendar period (month for bookings and payments, year for certificates).
// Refund references carry a random suffix; callers insert them under a unique
// constraint and draw again on collision.
package reference

import (
	"context"
	goerrors "errors"
	"fmt"
	"math/rand/v2"
	"regexp"
	"strconv"
	"strings"
	"time"

	"training-booking-service/internal/pkg/errors"
)

type Kind string

const (
	KindBooking     Kind = "booking"
	KindPayment     Kind = "payment"
	KindRefund      Kind = "refund"
	KindCertificate Kind = "certificate"
)

// MaxAttempts bounds how many references are drawn for one insert.
const MaxAttempts = 3

// ErrTaken is returned by an insert callback when the reference already exists.
var ErrTaken = goerrors.New("reference already taken")

type format struct {
	code       string
	dateLayout string
	digits     int
	random     bool
	pattern    *regexp.Regexp
}

var formats = map[Kind]format{
	KindBooking:     {code: "BKG", dateLayout: "0601", digits: 5, pattern: regexp.MustCompile(`^BKG-\d{4}-\d{5}$`)},
	KindPayment:     {code: "PAY", dateLayout: "0601", digits: 5, pattern: regexp.MustCompile(`^PAY-\d{4}-\d{5}$`)},
	KindRefund:      {code: "RFD", dateLayout: "060102", digits: 4, random: true, pattern: regexp.MustCompile(`^RFD-\d{6}-\d{4}$`)},
	KindCertificate: {code: "CERT", dateLayout: "2006", digits: 6, pattern: regexp.MustCompile(`^CERT-\d{4}-\d{6}$`)},
}

func lookup(kind Kind) (format, error) {
	f, ok := formats[kind]
	if !ok {
		return format{}, errors.BadRequest(fmt.Sprintf("unknown reference kind %q", kind))
	}
	return f, nil
}

// Prefix is the period scope of a reference, e.g. "PAY-2610-".
func Prefix(kind Kind, period time.Time) (string, error) {
	f, err := lookup(kind)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s-", f.code, period.Format(f.dateLayout)), nil
}

// Format renders the reference with number n in period.
func Format(kind Kind, period time.Time, n int64) (string, error) {
	f, err := lookup(kind)
	if err != nil {
		return "", err
	}
	if n < 0 || n >= pow10(f.digits) {
		return "", errors.AllocationConflict(fmt.Sprintf("%s sequence exhausted for %s", kind, period.Format(f.dateLayout)))
	}
	prefix, _ := Prefix(kind, period)
	return fmt.Sprintf("%s%0*d", prefix, f.digits, n), nil
}

// Validate checks the fixed-width shape of ref. It does not check existence.
func Validate(kind Kind, ref string) bool {
	f, ok := formats[kind]
	if !ok {
		return false
	}
	return f.pattern.MatchString(ref)
}

// Sequence extracts the trailing number of ref.
func Sequence(kind Kind, ref string) (int64, error) {
	if !Validate(kind, ref) {
		return 0, errors.BadRequest(fmt.Sprintf("malformed %s reference %q", kind, ref))
	}
	return strconv.ParseInt(ref[strings.LastIndex(ref, "-")+1:], 10, 64)
}

// NextFromLatest derives the next reference from the greatest existing one in
// the period. It is only safe under a lock; Generator does not use it for
// allocation, the counter table is seeded from it during backfills.
func NextFromLatest(kind Kind, period time.Time, latest string) (string, error) {
	if latest == "" {
		return Format(kind, period, 1)
	}
	prefix, err := Prefix(kind, period)
	if err != nil {
		return "", err
	}
	if !strings.HasPrefix(latest, prefix) {
		return "", errors.BadRequest(fmt.Sprintf("reference %q is outside period %s", latest, prefix))
	}
	seq, err := Sequence(kind, latest)
	if err != nil {
		return "", err
	}
	return Format(kind, period, seq+1)
}

// Counter hands out increasing numbers per prefix. Implementations must be
// atomic: two calls for the same prefix never return the same number.
type Counter interface {
	Next(ctx context.Context, prefix string) (int64, error)
}

type Generator struct {
	counter Counter
	intn    func(n int) int
}

func NewGenerator(counter Counter) *Generator {
	return &Generator{
		counter: counter,
		intn:    rand.IntN,
	}
}

// WithRandom replaces the random source used for refund suffixes.
func (g *Generator) WithRandom(intn func(n int) int) *Generator {
	g.intn = intn
	return g
}

// Generate returns a reference for kind in period. Sequential kinds are unique
// within (kind, period) as long as the counter is; refund references are not
// and must go through Allocate.
func (g *Generator) Generate(ctx context.Context, kind Kind, period time.Time) (string, error) {
	f, err := lookup(kind)
	if err != nil {
		return "", err
	}

	if f.random {
		return Format(kind, period, int64(g.intn(int(pow10(f.digits)))))
	}

	prefix, _ := Prefix(kind, period)
	n, err := g.counter.Next(ctx, prefix)
	if err != nil {
		return "", err
	}
	return Format(kind, period, n)
}

// Allocate generates references until insert accepts one. insert returns
// ErrTaken when the reference collides with an existing row.
func (g *Generator) Allocate(ctx context.Context, kind Kind, period time.Time, insert func(ref string) error) (string, error) {
	for attempt := 0; attempt < MaxAttempts; attempt++ {
		ref, err := g.Generate(ctx, kind, period)
		if err != nil {
			return "", err
		}

		err = insert(ref)
		if err == nil {
			return ref, nil
		}
		if !goerrors.Is(err, ErrTaken) {
			return "", err
		}
	}
	return "", errors.AllocationConflict(fmt.Sprintf("could not allocate a unique %s reference", kind))
}

// RefundCollisionProbability is the chance that n refund references issued on
// the same day contain at least one duplicate suffix.
func RefundCollisionProbability(n int) float64 {
	space := float64(pow10(formats[KindRefund].digits))
	distinct := 1.0
	for i := 0; i < n; i++ {
		distinct *= (space - float64(i)) / space
		if distinct <= 0 {
			return 1
		}
	}
	return 1 - distinct
}

func pow10(n int) int64 {
	p := int64(1)
	for i := 0; i < n; i++ {
		p *= 10
	}
	return p
}
