package notion

import (
	"testing"
	"time"

	"github.com/jomei/notionapi"
	"github.com/shopspring/decimal"

	"github.com/dvloznov/alertsync/internal/domain"
)

func TestRecordProperties(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Singapore")
	if err != nil {
		t.Fatalf("LoadLocation failed: %v", err)
	}

	tx := domain.Transaction{
		Kind:         domain.CardCharge,
		OccurredAt:   time.Date(2025, 9, 26, 11, 56, 0, 0, loc),
		Amount:       decimal.RequireFromString("9.90"),
		Counterparty: "Merchant C",
		SourceRef:    "m1",
	}

	props := recordProperties(tx)

	title, ok := props[titlePropertyName].(notionapi.TitleProperty)
	if !ok {
		t.Fatalf("missing title property %q", titlePropertyName)
	}
	if len(title.Title) != 1 || title.Title[0].Text.Content != "Merchant C" {
		t.Errorf("title = %+v, want counterparty", title.Title)
	}

	amount, ok := props["Amount"].(notionapi.NumberProperty)
	if !ok {
		t.Fatal("missing Amount property")
	}
	if amount.Number != 9.9 {
		t.Errorf("Amount = %v, want 9.9", amount.Number)
	}

	date, ok := props["Date"].(notionapi.DateProperty)
	if !ok || date.Date == nil || date.Date.Start == nil {
		t.Fatal("missing Date property")
	}
	// stored as the UTC instant: 11:56 SGT is 03:56 UTC
	want := time.Date(2025, 9, 26, 3, 56, 0, 0, time.UTC)
	if got := time.Time(*date.Date.Start); !got.Equal(want) {
		t.Errorf("Date = %v, want %v", got, want)
	}

	kind, ok := props["Type"].(notionapi.SelectProperty)
	if !ok {
		t.Fatal("missing Type property")
	}
	if kind.Select.Name != "CARD_CHARGE" {
		t.Errorf("Type = %q, want %q", kind.Select.Name, "CARD_CHARGE")
	}
}

func TestRecordFromPage(t *testing.T) {
	start := notionapi.Date(time.Date(2025, 9, 26, 3, 56, 0, 0, time.UTC))

	page := notionapi.Page{
		Properties: notionapi.Properties{
			"Expense Record": &notionapi.TitleProperty{
				Title: []notionapi.RichText{{PlainText: "Merchant A"}},
			},
			"Amount": &notionapi.NumberProperty{Number: 12.3},
			"Date": &notionapi.DateProperty{
				Date: &notionapi.DateObject{Start: &start},
			},
		},
	}

	rec, ok := recordFromPage(page)
	if !ok {
		t.Fatal("recordFromPage() ok = false, want true")
	}
	if rec.Counterparty != "Merchant A" {
		t.Errorf("Counterparty = %q, want %q", rec.Counterparty, "Merchant A")
	}
	if !rec.Amount.Equal(decimal.RequireFromString("12.3")) {
		t.Errorf("Amount = %s, want 12.3", rec.Amount)
	}
	if !rec.OccurredAt.Equal(time.Time(start)) {
		t.Errorf("OccurredAt = %v, want %v", rec.OccurredAt, time.Time(start))
	}
}

func TestRecordFromPage_MissingFields(t *testing.T) {
	tests := []struct {
		name  string
		props notionapi.Properties
	}{
		{
			name: "no date",
			props: notionapi.Properties{
				"Expense Record": &notionapi.TitleProperty{Title: []notionapi.RichText{{PlainText: "X"}}},
				"Amount":         &notionapi.NumberProperty{Number: 1},
			},
		},
		{
			name: "no amount",
			props: notionapi.Properties{
				"Date": &notionapi.DateProperty{Date: &notionapi.DateObject{}},
			},
		},
		{
			name:  "empty page",
			props: notionapi.Properties{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := recordFromPage(notionapi.Page{Properties: tt.props}); ok {
				t.Error("recordFromPage() ok = true, want false")
			}
		})
	}
}

func TestRecordRoundTrip(t *testing.T) {
	// A transaction written through recordProperties and read back through
	// recordFromPage must keep its dedupe identity.
	loc, _ := time.LoadLocation("Asia/Singapore")
	tx := domain.Transaction{
		Kind:         domain.Expense,
		OccurredAt:   time.Date(2025, 9, 26, 11, 56, 0, 0, loc),
		Amount:       decimal.RequireFromString("12.30"),
		Counterparty: "Merchant A",
	}

	props := recordProperties(tx)
	page := notionapi.Page{Properties: notionapi.Properties{}}
	title := props[titlePropertyName].(notionapi.TitleProperty)
	page.Properties[titlePropertyName] = &notionapi.TitleProperty{
		Title: []notionapi.RichText{{PlainText: title.Title[0].Text.Content}},
	}
	amount := props["Amount"].(notionapi.NumberProperty)
	page.Properties["Amount"] = &notionapi.NumberProperty{Number: amount.Number}
	date := props["Date"].(notionapi.DateProperty)
	page.Properties["Date"] = &notionapi.DateProperty{Date: date.Date}

	rec, ok := recordFromPage(page)
	if !ok {
		t.Fatal("recordFromPage() ok = false")
	}
	if rec.Key() != tx.Key() {
		t.Errorf("round-tripped key %+v != original key %+v", rec.Key(), tx.Key())
	}
}
