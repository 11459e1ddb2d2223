package alertparse

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// timeLayouts are the literal timestamp forms observed across the three alert
// families, tried in order after the zone token is stripped.
var timeLayouts = []string{
	"2 Jan 2006 15:04", // 26 Sep 2025 11:56
	"2 Jan 15:04 2006", // 26 Sep 11:56 2025
	"2 Jan 15:04",      // 26 Sep 11:56 (card alerts omit the year)
}

// zoneTokens must strip "(SGT)" before "SGT" so the parentheses go with it.
var zoneTokens = strings.NewReplacer("(SGT)", "", "SGT", "")

var nonNumericRe = regexp.MustCompile(`[^\d.\-]`)

// parseAmount parses an amount value such as "SGD 12.30" or "SGD1,234.50":
// everything that is not a digit, dot or minus is stripped, the rest must be
// a decimal number. Sign is dropped; debit and credit are carried by Kind.
func parseAmount(raw string) (decimal.Decimal, error) {
	num := nonNumericRe.ReplaceAllString(raw, "")
	if num == "" {
		return decimal.Decimal{}, fmt.Errorf("no numeric content in %q", raw)
	}
	d, err := decimal.NewFromString(num)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("amount %q: %w", raw, err)
	}
	return d.Abs().Round(2), nil
}

// parseAlertTime parses a timestamp value against the known layouts. A zone
// token is stripped and the result is interpreted in the parser's configured
// zone: the token is assumed to name that same zone and never overrides it,
// so a mismatched zone configuration misreads explicitly stamped alerts by
// the offset. Year-less layouts are filled with the current year.
func (p *Parser) parseAlertTime(raw string) (time.Time, error) {
	clean := cleanText(zoneTokens.Replace(raw))
	for _, layout := range timeLayouts {
		t, err := time.ParseInLocation(layout, clean, p.loc)
		if err != nil {
			continue
		}
		if t.Year() == 0 {
			t = t.AddDate(p.now().Year(), 0, 0)
		}
		return t, nil
	}
	return time.Time{}, fmt.Errorf("timestamp %q matches no known format", raw)
}
