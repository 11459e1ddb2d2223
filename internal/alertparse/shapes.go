package alertparse

import (
	"regexp"

	"golang.org/x/net/html"

	"github.com/dvloznov/alertsync/internal/domain"
)

const (
	shapeWalletExpense = "wallet-expense"
	shapeIncome        = "income-received"
	shapeCardCharge    = "card-charge"
)

var (
	// "Amount: SGD 12.30", currency code kept in the capture and stripped later.
	amountRe = regexp.MustCompile(`Amount:(\s*[A-Z]{3}\s*-?\d[\d,]*(?:\.\d+)?)`)

	// "You have received SGD 150.00 ..."
	receivedAmountRe = regexp.MustCompile(`received(\s*[A-Z]{3}\s*-?\d[\d,]*(?:\.\d+)?)`)

	// "... on 24 Sep 2025 18:09 SGT"
	incomeDateRe = regexp.MustCompile(`(?i)\bon\s+(\d{1,2}\s+\w{3}\s+\d{4}\s+\d{2}:\d{2}\s+SGT)\b`)

	// "Date & Time: 26 Sep 11:56 (SGT)", year-less with a parenthesized zone.
	cardTimeRe = regexp.MustCompile(`Date\s*&?\s*Time:\s*([0-9]{1,2}\s+[A-Za-z]{3}\s+\d{2}:\d{2}\s*\([A-Z]+\))`)

	// Runs against the raw markup: recipient text up to the next tag.
	cardRecipientRe = regexp.MustCompile(`To\s*:\s*([^<]+?)\s*<`)
)

// walletExpenseFields matches the wallet debit layout: table rows whose first
// cell is the label and second cell the value, for Date & Time / Amount / To.
func walletExpenseFields(doc *html.Node) (rawFields, bool) {
	fields := tableFields(doc)
	f := rawFields{
		shape:        shapeWalletExpense,
		kind:         domain.Expense,
		date:         fields["date & time"],
		amount:       fields["amount"],
		counterparty: fields["to"],
	}
	return f, f.date != "" && f.amount != "" && f.counterparty != ""
}

// incomeFields matches the credit-received layout: a payer in a <strong>
// tail, a credit amount, and a "on <timestamp> SGT" sentence.
func incomeFields(doc *html.Node, text string) (rawFields, bool) {
	f := rawFields{
		shape:        shapeIncome,
		kind:         domain.Income,
		counterparty: strongTail(doc, "From:"),
	}
	if m := amountRe.FindStringSubmatch(text); m != nil {
		f.amount = cleanText(m[1])
	} else if m := receivedAmountRe.FindStringSubmatch(text); m != nil {
		f.amount = cleanText(m[1])
	}
	if m := incomeDateRe.FindStringSubmatch(text); m != nil {
		f.date = cleanText(m[1])
	}
	return f, f.date != "" && f.amount != "" && f.counterparty != ""
}

// cardChargeFields matches the card transaction layout: a year-less timestamp
// with a parenthesized zone token, a charge amount, and a recipient. The
// recipient is pulled from the raw markup because it sits between tags rather
// than behind a structural label.
func cardChargeFields(rawBody, text string) (rawFields, bool) {
	f := rawFields{
		shape: shapeCardCharge,
		kind:  domain.CardCharge,
	}
	if m := cardTimeRe.FindStringSubmatch(text); m != nil {
		f.date = cleanText(m[1])
	}
	if m := amountRe.FindStringSubmatch(text); m != nil {
		f.amount = cleanText(m[1])
	}
	if m := cardRecipientRe.FindStringSubmatch(rawBody); m != nil {
		f.counterparty = cleanText(m[1])
	}
	return f, f.date != "" && f.amount != "" && f.counterparty != ""
}
