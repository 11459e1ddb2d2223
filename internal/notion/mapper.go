package notion

import (
	"strings"
	"time"

	"github.com/jomei/notionapi"
	"github.com/shopspring/decimal"

	"github.com/dvloznov/alertsync/internal/domain"
)

// titlePropertyName is the title column of the tracker database.
const titlePropertyName = "Expense Record"

// recordProperties maps a transaction onto the tracker database schema:
// the title holds the counterparty, Amount and Date hold the identity fields,
// and Type carries the kind's record type label. The date is stored as the
// UTC instant at minute precision so later window fetches compare cleanly
// against freshly parsed candidates.
func recordProperties(tx domain.Transaction) notionapi.Properties {
	amount, _ := tx.Amount.Round(2).Float64()
	start := notionapi.Date(tx.OccurredAt.UTC().Truncate(time.Minute))

	return notionapi.Properties{
		titlePropertyName: notionapi.TitleProperty{
			Title: []notionapi.RichText{
				{
					Type: notionapi.ObjectTypeText,
					Text: &notionapi.Text{
						Content: tx.Counterparty,
					},
				},
			},
		},
		"Amount": notionapi.NumberProperty{
			Number: amount,
		},
		"Date": notionapi.DateProperty{
			Date: &notionapi.DateObject{
				Start: &start,
			},
		},
		"Type": notionapi.SelectProperty{
			Select: notionapi.Option{
				Name: tx.Kind.String(),
			},
		},
	}
}

// plainText joins the rendered text of a rich-text value.
func plainText(parts []notionapi.RichText) string {
	var b strings.Builder
	for _, part := range parts {
		b.WriteString(part.PlainText)
	}
	return strings.TrimSpace(b.String())
}

// amountFromFloat converts a stored number property to the canonical
// two-decimal amount form.
func amountFromFloat(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f).Round(2)
}
