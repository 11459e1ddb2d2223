// Package gmail adapts the Gmail REST API to the syncer's MailboxSource
// contract: it lists bank alert emails within a lookback window and extracts
// an HTML body from each.
package gmail

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	stdhtml "html"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gmailapi "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/dvloznov/alertsync/internal/domain"
	"github.com/dvloznov/alertsync/internal/logger"
)

const maxResultsPerQuery = 100

// Source lists bank alert emails through the Gmail API. One search query is
// issued per configured subject filter, all restricted to the alert senders.
type Source struct {
	svc      *gmailapi.Service
	senders  string // Gmail from:(...) expression, e.g. "a@bank.com OR b@bank.com"
	subjects []string
}

// NewSource builds a Gmail client from an installed-app credentials file and
// a previously minted token file (see cmd/reauth-gmail).
func NewSource(ctx context.Context, credsPath, tokenPath, senders string, subjects []string) (*Source, error) {
	credsJSON, err := os.ReadFile(credsPath)
	if err != nil {
		return nil, fmt.Errorf("NewSource: reading credentials file: %w", err)
	}
	oauthCfg, err := google.ConfigFromJSON(credsJSON, gmailapi.GmailReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("NewSource: parsing credentials: %w", err)
	}

	tokJSON, err := os.ReadFile(tokenPath)
	if err != nil {
		return nil, fmt.Errorf("NewSource: reading token file: %w", err)
	}
	var tok oauth2.Token
	if err := json.Unmarshal(tokJSON, &tok); err != nil {
		return nil, fmt.Errorf("NewSource: parsing token file: %w", err)
	}

	svc, err := gmailapi.NewService(ctx, option.WithHTTPClient(oauthCfg.Client(ctx, &tok)))
	if err != nil {
		return nil, fmt.Errorf("NewSource: building gmail service: %w", err)
	}

	return &Source{svc: svc, senders: senders, subjects: subjects}, nil
}

// ListRawAlerts runs the configured queries over the [since, until] lookback
// window and fetches each matched message's body. Messages matched by more
// than one query are fetched once. Messages with no readable body are logged
// and skipped; any API failure aborts the listing.
func (s *Source) ListRawAlerts(ctx context.Context, since, until time.Duration) ([]domain.RawAlert, error) {
	log := logger.FromContext(ctx)

	seen := make(map[string]bool)
	var ids []string
	for _, subject := range s.subjects {
		q := fmt.Sprintf("newer_than:%s older_than:%s from:(%s) subject:(%s)",
			windowToken(since), windowToken(until), s.senders, subject)
		resp, err := s.svc.Users.Messages.List("me").Q(q).MaxResults(maxResultsPerQuery).Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("ListRawAlerts: listing messages for %q: %w", q, err)
		}
		for _, m := range resp.Messages {
			if seen[m.Id] {
				continue
			}
			seen[m.Id] = true
			ids = append(ids, m.Id)
		}
	}

	alerts := make([]domain.RawAlert, 0, len(ids))
	for _, id := range ids {
		msg, err := s.svc.Users.Messages.Get("me", id).Format("full").Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("ListRawAlerts: fetching message %s: %w", id, err)
		}
		body := htmlFromPayload(msg.Payload)
		if body == "" {
			log.Warn().Str("message_id", id).Msg("Message has no readable body part")
			continue
		}
		alerts = append(alerts, domain.RawAlert{ID: id, Body: body})
	}

	return alerts, nil
}

// windowToken renders a lookback duration as the whole-day token Gmail search
// expects ("2d"). Sub-day non-zero durations round up to one day so they are
// never silently widened to "0d" (everything).
func windowToken(d time.Duration) string {
	days := int(d.Hours() / 24)
	if days == 0 && d > 0 {
		days = 1
	}
	return fmt.Sprintf("%dd", days)
}

// htmlFromPayload walks a message's MIME tree for a text/html part,
// depth-first. A text/plain part is the fallback, wrapped in <pre> so the
// downstream parser still sees markup.
func htmlFromPayload(p *gmailapi.MessagePart) string {
	if p == nil {
		return ""
	}
	mime := strings.ToLower(p.MimeType)
	if mime == "text/html" && p.Body != nil && p.Body.Data != "" {
		if s, err := decodeBody(p.Body.Data); err == nil {
			return s
		}
	}
	for _, part := range p.Parts {
		if s := htmlFromPayload(part); s != "" {
			return s
		}
	}
	if mime == "text/plain" && p.Body != nil && p.Body.Data != "" {
		if s, err := decodeBody(p.Body.Data); err == nil {
			return "<pre>" + stdhtml.EscapeString(s) + "</pre>"
		}
	}
	return ""
}

// decodeBody decodes Gmail's base64url body data, padded or not.
func decodeBody(data string) (string, error) {
	b, err := base64.RawURLEncoding.DecodeString(data)
	if err != nil {
		b, err = base64.URLEncoding.DecodeString(data)
		if err != nil {
			return "", err
		}
	}
	return string(b), nil
}
