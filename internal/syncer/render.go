package syncer

import (
	"fmt"

	"github.com/dvloznov/alertsync/internal/domain"
)

const messageTimeLayout = "2 Jan 2006 15:04"

// RenderMessage formats one new transaction into the notification text for
// its kind. Every kind carries the date, the amount and the role-labeled
// counterparty; emoji and labels vary per kind.
func RenderMessage(tx domain.Transaction) string {
	date := tx.OccurredAt.Format(messageTimeLayout)
	amount := tx.Amount.StringFixed(2)

	switch tx.Kind {
	case domain.Income:
		return fmt.Sprintf("⬆️ New INCOME:\n🗓️DATE: %s\n💰AMOUNT: SGD %s\n%s: %s",
			date, amount, tx.Kind.RoleLabel(), tx.Counterparty)
	case domain.CardCharge:
		return fmt.Sprintf("💳️ New expense:\n🗓️DATE: %s\n💵AMOUNT: SGD %s\n🧍%s: %s",
			date, amount, tx.Kind.RoleLabel(), tx.Counterparty)
	default:
		return fmt.Sprintf("⬇️ New expense:\n🗓️DATE: %s\n💵AMOUNT: SGD %s\n🧍%s: %s",
			date, amount, tx.Kind.RoleLabel(), tx.Counterparty)
	}
}
