package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Kind discriminates which alert family a transaction was extracted from.
// It drives the record type label in the store and the role labeling in
// user-facing notifications.
type Kind int

const (
	Expense Kind = iota
	Income
	CardCharge
)

func (k Kind) String() string {
	switch k {
	case Income:
		return "INCOME"
	case CardCharge:
		return "CARD_CHARGE"
	default:
		return "EXPENSE"
	}
}

// RoleLabel names the counterparty's role in user-facing output: the party we
// paid for debits, the party that paid us for credits.
func (k Kind) RoleLabel() string {
	if k == Income {
		return "PAYEE"
	}
	return "RECIPIENT"
}

// Transaction is one bank transaction extracted from an alert. It is an
// immutable value object: constructed fully populated by the alert parser and
// never mutated afterwards.
type Transaction struct {
	Kind         Kind
	OccurredAt   time.Time       // minute precision, zone-aware
	Amount       decimal.Decimal // non-negative, 2dp, SGD
	Counterparty string          // merchant, payer or payee, whitespace-trimmed only
	SourceRef    string          // id of the raw alert this came from; traceability, not identity
}

// Equal reports whether two transactions carry the same values.
func (t Transaction) Equal(other Transaction) bool {
	return t.Kind == other.Kind &&
		t.OccurredAt.Equal(other.OccurredAt) &&
		t.Amount.Equal(other.Amount) &&
		t.Counterparty == other.Counterparty &&
		t.SourceRef == other.SourceRef
}

// Key returns the identity triple used for duplicate detection.
func (t Transaction) Key() Key {
	return keyOf(t.OccurredAt, t.Amount, t.Counterparty)
}

// Record is the minimal projection of a stored transaction that the record
// store hands back for duplicate comparison.
type Record struct {
	OccurredAt   time.Time
	Amount       decimal.Decimal
	Counterparty string
}

// Key returns the identity triple used for duplicate detection.
func (r Record) Key() Key {
	return keyOf(r.OccurredAt, r.Amount, r.Counterparty)
}

// Key identifies a transaction for duplicate detection: the occurrence minute
// normalized to UTC, the canonical two-decimal amount form, and the
// counterparty text verbatim. Comparable, so it can be a map key.
type Key struct {
	UnixMinute   int64
	Amount       string
	Counterparty string
}

func keyOf(at time.Time, amount decimal.Decimal, counterparty string) Key {
	return Key{
		UnixMinute:   at.UTC().Truncate(time.Minute).Unix() / 60,
		Amount:       amount.Round(2).StringFixed(2),
		Counterparty: strings.TrimSpace(counterparty),
	}
}

// RawAlert is one inbound mailbox item: an opaque markup body plus the source
// identifier used in logs when the body cannot be parsed.
type RawAlert struct {
	ID   string
	Body string
}
