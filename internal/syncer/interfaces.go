package syncer

import (
	"context"
	"time"

	"github.com/dvloznov/alertsync/internal/domain"
)

// MailboxSource lists raw alert bodies from the mailbox. since and until
// bound the lookback window relative to now (since=48h, until=0 is "the last
// two days up through now").
type MailboxSource interface {
	ListRawAlerts(ctx context.Context, since, until time.Duration) ([]domain.RawAlert, error)
}

// RecordStore is the durable transaction record collaborator.
// ListRecent returns up to pageSize stored records, newest first, restricted
// to entries with a non-empty date.
type RecordStore interface {
	ListRecent(ctx context.Context, pageSize int) ([]domain.Record, error)
	Insert(ctx context.Context, tx domain.Transaction) error
}

// Notifier delivers one rendered user-facing message.
type Notifier interface {
	Send(ctx context.Context, text string) error
}
