package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestKey_NormalizesToUTCMinute(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Singapore")
	if err != nil {
		t.Fatalf("LoadLocation failed: %v", err)
	}

	local := Transaction{
		OccurredAt:   time.Date(2025, 9, 26, 11, 56, 30, 0, loc), // seconds dropped
		Amount:       decimal.RequireFromString("12.3"),
		Counterparty: "Merchant A",
	}
	utc := Record{
		OccurredAt:   time.Date(2025, 9, 26, 3, 56, 0, 0, time.UTC),
		Amount:       decimal.RequireFromString("12.30"),
		Counterparty: "Merchant A",
	}

	if local.Key() != utc.Key() {
		t.Errorf("keys differ: %+v vs %+v", local.Key(), utc.Key())
	}
}

func TestKey_CanonicalAmountForm(t *testing.T) {
	at := time.Date(2025, 9, 26, 11, 56, 0, 0, time.UTC)

	a := Record{OccurredAt: at, Amount: decimal.RequireFromString("12.3"), Counterparty: "X"}
	b := Record{OccurredAt: at, Amount: decimal.RequireFromString("12.30"), Counterparty: "X"}
	c := Record{OccurredAt: at, Amount: decimal.RequireFromString("12.31"), Counterparty: "X"}

	if a.Key() != b.Key() {
		t.Error("12.3 and 12.30 must share a key")
	}
	if a.Key() == c.Key() {
		t.Error("12.3 and 12.31 must not share a key")
	}
}

func TestKindLabels(t *testing.T) {
	tests := []struct {
		kind Kind
		str  string
		role string
	}{
		{Expense, "EXPENSE", "RECIPIENT"},
		{Income, "INCOME", "PAYEE"},
		{CardCharge, "CARD_CHARGE", "RECIPIENT"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.str {
			t.Errorf("%v.String() = %q, want %q", tt.kind, got, tt.str)
		}
		if got := tt.kind.RoleLabel(); got != tt.role {
			t.Errorf("%v.RoleLabel() = %q, want %q", tt.kind, got, tt.role)
		}
	}
}

func TestTransactionEqual(t *testing.T) {
	at := time.Date(2025, 9, 26, 11, 56, 0, 0, time.UTC)
	base := Transaction{
		Kind:         Expense,
		OccurredAt:   at,
		Amount:       decimal.RequireFromString("12.30"),
		Counterparty: "Merchant A",
		SourceRef:    "m1",
	}

	same := base
	if !base.Equal(same) {
		t.Error("identical transactions must be equal")
	}

	differentAmount := base
	differentAmount.Amount = decimal.RequireFromString("12.31")
	if base.Equal(differentAmount) {
		t.Error("different amounts must not be equal")
	}
}
