// Package dedupe decides whether an extracted transaction already exists in
// the recently stored window. Matching is exact on the
// (minute, amount, counterparty) triple: no tolerance on amount, no fuzzy
// matching on names. Timestamps are normalized to UTC before comparison, so a
// candidate parsed in the account's local zone matches a record stored as the
// equivalent UTC instant.
//
// The window is bounded: a true duplicate older than the window's cutoff is
// judged new and recorded again. That false negative is an accepted operating
// boundary; the window size trades it against fetch cost.
package dedupe

import "github.com/dvloznov/alertsync/internal/domain"

// Index is a point-in-time lookup over one run's recent-records window.
// It is built once per run from the snapshot fetched before parsing and is
// never updated as the run inserts, so two identical candidates in one run are
// both judged new.
type Index struct {
	keys map[domain.Key]struct{}
}

// NewIndex builds the lookup from a recent-records window.
func NewIndex(window []domain.Record) *Index {
	keys := make(map[domain.Key]struct{}, len(window))
	for _, rec := range window {
		keys[rec.Key()] = struct{}{}
	}
	return &Index{keys: keys}
}

// IsDuplicate reports whether the window holds a record with the candidate's
// exact identity triple.
func (ix *Index) IsDuplicate(candidate domain.Transaction) bool {
	_, ok := ix.keys[candidate.Key()]
	return ok
}

// IsDuplicate is the one-shot form of Index.IsDuplicate.
func IsDuplicate(candidate domain.Transaction, window []domain.Record) bool {
	return NewIndex(window).IsDuplicate(candidate)
}
