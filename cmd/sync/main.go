// Command sync runs one bank-alert sync pass: recent records are fetched from
// Notion, alert emails from Gmail, and every new transaction is recorded and
// announced on Telegram. It is meant to be triggered by an external schedule
// with at most one run in flight at a time.
package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/dvloznov/alertsync/internal/alertparse"
	"github.com/dvloznov/alertsync/internal/config"
	"github.com/dvloznov/alertsync/internal/gmail"
	"github.com/dvloznov/alertsync/internal/logger"
	"github.com/dvloznov/alertsync/internal/notion"
	"github.com/dvloznov/alertsync/internal/syncer"
	"github.com/dvloznov/alertsync/internal/telegram"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "Preview new transactions without inserting or notifying")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fallback := logger.New("info")
		fallback.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(cfg.LogLevel)

	loc, err := cfg.Location()
	if err != nil {
		log.Fatal().Err(err).Str("timezone", cfg.Sync.Timezone).Msg("Failed to resolve alert timezone")
	}

	// Bound the whole run so a scheduled invocation can't hang past its slot.
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Sync.RunTimeout)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	mailbox, err := gmail.NewSource(ctx, cfg.Gmail.CredentialsPath, cfg.Gmail.TokenPath, cfg.Gmail.Senders, cfg.Gmail.Subjects)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize Gmail source")
	}

	store := notion.NewStore(cfg.Notion.Token, cfg.Notion.DatabaseID)

	notifier, err := telegram.NewNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize Telegram notifier")
	}

	s := syncer.New(mailbox, store, notifier, alertparse.New(loc), syncer.Config{
		Lookback:   cfg.Sync.Lookback,
		Until:      cfg.Sync.Until,
		WindowSize: cfg.Notion.PageSize,
		DryRun:     *dryRun,
	})

	report, err := s.Run(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Sync run failed")
	}

	fmt.Printf("Sync completed successfully: %d new, %d duplicates, %d malformed.\n",
		report.Inserted, report.Duplicates, report.Malformed)
}
