// Package alertparse extracts typed transactions from semi-structured bank
// alert bodies. Three alert families are recognized: wallet expenses laid out
// as labeled table rows, income notices phrased as a "received ... on ..."
// sentence, and card charges with a timezone-suffixed timestamp. An alert that
// matches none of them is not an error; an alert that matches one but carries
// an unparseable value is.
package alertparse

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/dvloznov/alertsync/internal/domain"
)

// ErrAmbiguousShape is returned when an alert body satisfies more than one
// shape's required fields. The three alert families use disjoint label sets,
// so this indicates a defect rather than a valid alert.
var ErrAmbiguousShape = errors.New("alert matches more than one shape")

// MalformedAlertError reports an alert whose shape matched but whose field
// content failed to parse. It signals format drift in the upstream alerts and
// should reach the operator rather than be dropped silently.
type MalformedAlertError struct {
	Shape     string
	Field     string
	SourceRef string
	Err       error
}

func (e *MalformedAlertError) Error() string {
	return fmt.Sprintf("malformed %s alert %s: field %q: %v", e.Shape, e.SourceRef, e.Field, e.Err)
}

func (e *MalformedAlertError) Unwrap() error {
	return e.Err
}

// Parser turns raw alert bodies into transactions. Timestamps without an
// explicit timezone token are interpreted in loc.
type Parser struct {
	loc *time.Location
	now func() time.Time // year fill for year-less timestamps; stubbed in tests
}

// New creates a parser that resolves implicit timezones to loc.
func New(loc *time.Location) *Parser {
	return &Parser{loc: loc, now: time.Now}
}

// rawFields is one shape's extracted-but-unparsed field set.
type rawFields struct {
	shape        string
	kind         domain.Kind
	date         string
	amount       string
	counterparty string
}

// Parse extracts a transaction from one raw alert.
//
// Returns (nil, nil) when no shape's required fields are all present, the
// expected outcome for non-transaction emails. Returns a *MalformedAlertError
// when a shape matched but a value failed to parse.
func (p *Parser) Parse(alert domain.RawAlert) (*domain.Transaction, error) {
	doc, err := html.Parse(strings.NewReader(alert.Body))
	if err != nil {
		return nil, fmt.Errorf("Parse: alert %s: %w", alert.ID, err)
	}
	text := textContent(doc)

	var matched []rawFields
	if f, ok := walletExpenseFields(doc); ok {
		matched = append(matched, f)
	}
	if f, ok := incomeFields(doc, text); ok {
		matched = append(matched, f)
	}
	if f, ok := cardChargeFields(alert.Body, text); ok {
		matched = append(matched, f)
	}

	switch len(matched) {
	case 0:
		return nil, nil
	case 1:
	default:
		shapes := make([]string, 0, len(matched))
		for _, f := range matched {
			shapes = append(shapes, f.shape)
		}
		return nil, fmt.Errorf("Parse: alert %s: %w: %s", alert.ID, ErrAmbiguousShape, strings.Join(shapes, ", "))
	}

	f := matched[0]

	amount, err := parseAmount(f.amount)
	if err != nil {
		return nil, &MalformedAlertError{Shape: f.shape, Field: "amount", SourceRef: alert.ID, Err: err}
	}
	occurred, err := p.parseAlertTime(f.date)
	if err != nil {
		return nil, &MalformedAlertError{Shape: f.shape, Field: "date", SourceRef: alert.ID, Err: err}
	}

	return &domain.Transaction{
		Kind:         f.kind,
		OccurredAt:   occurred,
		Amount:       amount,
		Counterparty: f.counterparty,
		SourceRef:    alert.ID,
	}, nil
}
