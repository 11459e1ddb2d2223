// Package notion adapts a Notion database to the syncer's RecordStore
// contract: recent records out, new transaction pages in.
package notion

import (
	"context"
	"fmt"
	"time"

	"github.com/jomei/notionapi"

	"github.com/dvloznov/alertsync/internal/domain"
	"github.com/dvloznov/alertsync/internal/logger"
)

// datePropertyName is the column the recent-records query filters and sorts
// on; rows without it are never part of the dedupe window.
const datePropertyName = "Date"

// Store reads and writes transaction records in a Notion database.
type Store struct {
	client *notionapi.Client
	dbID   notionapi.DatabaseID
}

// NewStore creates a Store for the given integration token and database ID.
func NewStore(token, databaseID string) *Store {
	return &Store{
		client: notionapi.NewClient(notionapi.Token(token)),
		dbID:   notionapi.DatabaseID(databaseID),
	}
}

// ListRecent returns up to pageSize stored records, newest first, restricted
// to rows with a non-empty date. Rows missing an amount or date value are
// logged and left out rather than failing the fetch.
func (s *Store) ListRecent(ctx context.Context, pageSize int) ([]domain.Record, error) {
	log := logger.FromContext(ctx)

	req := &notionapi.DatabaseQueryRequest{
		PageSize: pageSize,
		Filter: &notionapi.PropertyFilter{
			Property: datePropertyName,
			Date:     &notionapi.DateFilterCondition{IsNotEmpty: true},
		},
		Sorts: []notionapi.SortObject{
			{Property: datePropertyName, Direction: notionapi.SortOrderDESC},
		},
	}

	resp, err := s.client.Database.Query(ctx, s.dbID, req)
	if err != nil {
		return nil, fmt.Errorf("ListRecent: %w", err)
	}

	records := make([]domain.Record, 0, len(resp.Results))
	for _, page := range resp.Results {
		rec, ok := recordFromPage(page)
		if !ok {
			log.Warn().Str("page_id", string(page.ID)).Msg("Skipping record page with unreadable fields")
			continue
		}
		records = append(records, rec)
	}

	return records, nil
}

// Insert creates one record page for a new transaction.
func (s *Store) Insert(ctx context.Context, tx domain.Transaction) error {
	req := &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: s.dbID,
		},
		Properties: recordProperties(tx),
	}

	if _, err := s.client.Page.Create(ctx, req); err != nil {
		return fmt.Errorf("Insert: %w", err)
	}
	return nil
}

// recordFromPage coerces a page's properties into the stored-record
// projection. Coercion is type-driven rather than name-driven: the title
// property carries the counterparty, the number property the
// amount, the date property the occurrence instant. Returns ok=false when
// the date or amount is missing or unreadable.
func recordFromPage(page notionapi.Page) (domain.Record, bool) {
	var rec domain.Record
	var haveDate, haveAmount bool

	for _, prop := range page.Properties {
		switch p := prop.(type) {
		case *notionapi.TitleProperty:
			rec.Counterparty = plainText(p.Title)
		case *notionapi.NumberProperty:
			rec.Amount = amountFromFloat(p.Number)
			haveAmount = true
		case *notionapi.DateProperty:
			if p.Date != nil && p.Date.Start != nil {
				rec.OccurredAt = time.Time(*p.Date.Start)
				haveDate = true
			}
		}
	}

	return rec, haveDate && haveAmount
}
