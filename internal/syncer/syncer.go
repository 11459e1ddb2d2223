// Package syncer drives one full sync run: fetch the recent-records window,
// fetch raw alerts, parse, gate against the window, and insert + notify each
// new transaction.
package syncer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dvloznov/alertsync/internal/alertparse"
	"github.com/dvloznov/alertsync/internal/dedupe"
	"github.com/dvloznov/alertsync/internal/domain"
	"github.com/dvloznov/alertsync/internal/logger"
)

// Config holds the per-run tunables.
type Config struct {
	Lookback   time.Duration // how far back to query the mailbox
	Until      time.Duration // near edge of the mailbox window, usually 0
	WindowSize int           // recent-records page size; bounds duplicate detection
	DryRun     bool          // preview new transactions without inserting or notifying
}

// Syncer sequences one run against the three external collaborators.
type Syncer struct {
	mailbox  MailboxSource
	store    RecordStore
	notifier Notifier
	parser   *alertparse.Parser
	cfg      Config
}

// New wires a syncer from its collaborators.
func New(mailbox MailboxSource, store RecordStore, notifier Notifier, parser *alertparse.Parser, cfg Config) *Syncer {
	return &Syncer{
		mailbox:  mailbox,
		store:    store,
		notifier: notifier,
		parser:   parser,
		cfg:      cfg,
	}
}

// RunReport summarizes one completed run.
type RunReport struct {
	RunID      string
	Fetched    int // raw alerts returned by the mailbox
	Parsed     int // candidates extracted
	Malformed  int // alerts skipped for unparseable fields
	Duplicates int // candidates already in the window
	Inserted   int
	Notified   int
}

// Run executes one sync pass. The recent-records window is snapshotted before
// parsing and never refreshed mid-run, so identical candidates within a single
// run do not see each other. A failed window or mailbox fetch aborts the run;
// a failed insert or send affects only its candidate. Zero new transactions is
// a successful run.
func (s *Syncer) Run(ctx context.Context) (*RunReport, error) {
	report := &RunReport{RunID: uuid.NewString()}
	log := logger.FromContext(ctx).With().Str("run_id", report.RunID).Logger()

	log.Info().
		Dur("lookback", s.cfg.Lookback).
		Int("window_size", s.cfg.WindowSize).
		Bool("dry_run", s.cfg.DryRun).
		Msg("Starting sync run")

	window, err := s.store.ListRecent(ctx, s.cfg.WindowSize)
	if err != nil {
		return nil, fmt.Errorf("Run: fetching recent records: %w", err)
	}
	log.Info().Int("record_count", len(window)).Msg("Fetched recent records window")

	alerts, err := s.mailbox.ListRawAlerts(ctx, s.cfg.Lookback, s.cfg.Until)
	if err != nil {
		return nil, fmt.Errorf("Run: fetching raw alerts: %w", err)
	}
	report.Fetched = len(alerts)
	log.Info().Int("alert_count", len(alerts)).Msg("Fetched raw alerts")

	var candidates []domain.Transaction
	for _, alert := range alerts {
		tx, err := s.parser.Parse(alert)
		if err != nil {
			report.Malformed++
			log.Warn().Err(err).Str("source_ref", alert.ID).Msg("Skipping unparseable alert")
			continue
		}
		if tx == nil {
			continue
		}
		candidates = append(candidates, *tx)
	}
	report.Parsed = len(candidates)

	ix := dedupe.NewIndex(window)
	for _, tx := range candidates {
		candidateLog := log.With().
			Str("kind", tx.Kind.String()).
			Str("counterparty", tx.Counterparty).
			Str("amount", tx.Amount.StringFixed(2)).
			Time("occurred_at", tx.OccurredAt).
			Str("source_ref", tx.SourceRef).
			Logger()

		if ix.IsDuplicate(tx) {
			report.Duplicates++
			candidateLog.Info().Msg("Skipping duplicate transaction")
			continue
		}

		if s.cfg.DryRun {
			candidateLog.Info().Msg("[DRY RUN] Would insert and notify")
			report.Inserted++
			report.Notified++
			continue
		}

		// Insert and notify are independent side effects: a failure in one
		// must not block the other, nor the remaining candidates.
		if err := s.store.Insert(ctx, tx); err != nil {
			candidateLog.Warn().Err(err).Msg("Failed to insert transaction record")
		} else {
			report.Inserted++
			candidateLog.Info().Msg("Inserted transaction record")
		}

		if err := s.notifier.Send(ctx, RenderMessage(tx)); err != nil {
			candidateLog.Warn().Err(err).Msg("Failed to send notification")
		} else {
			report.Notified++
		}
	}

	log.Info().
		Int("fetched", report.Fetched).
		Int("parsed", report.Parsed).
		Int("malformed", report.Malformed).
		Int("duplicates", report.Duplicates).
		Int("inserted", report.Inserted).
		Int("notified", report.Notified).
		Msg("Sync run completed")

	return report, nil
}
