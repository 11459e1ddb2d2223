// Command reauth-gmail mints the Gmail OAuth token file used by cmd/sync.
// Run it locally, authorize in the browser, paste the code, and deploy the
// resulting token file alongside the credentials file.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gmailapi "google.golang.org/api/gmail/v1"

	"github.com/dvloznov/alertsync/internal/logger"
)

func main() {
	credsPath := flag.String("credentials", "secrets/credentials.json", "Path to the OAuth client credentials JSON")
	tokenPath := flag.String("token", "secrets/gmail_token.json", "Path to write the minted token JSON")
	flag.Parse()

	log := logger.New("info")

	credsJSON, err := os.ReadFile(*credsPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *credsPath).Msg("Failed to read credentials file")
	}

	cfg, err := google.ConfigFromJSON(credsJSON, gmailapi.GmailReadonlyScope)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to parse credentials file")
	}

	// offline access so the sync binary can refresh without re-prompting
	authURL := cfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("Open this URL in your browser, authorize, then paste the code here:\n%v\n\nCode: ", authURL)

	var code string
	if _, err := fmt.Scan(&code); err != nil {
		log.Fatal().Err(err).Msg("Failed to read authorization code")
	}

	tok, err := cfg.Exchange(context.Background(), code)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to exchange authorization code")
	}

	tokJSON, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to encode token")
	}
	if err := os.WriteFile(*tokenPath, tokJSON, 0o600); err != nil {
		log.Fatal().Err(err).Str("path", *tokenPath).Msg("Failed to write token file")
	}

	fmt.Printf("Token written to %s\n", *tokenPath)
}
