package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"tempmon_dashboard/internal/models"
	"tempmon_dashboard/internal/repository"
)

var (
	errInvalidTimeRange = errors.New("invalid time range: From must be <= To")
	ErrUnknownOutcome   = errors.New("unknown action outcome")
)

// journalOutcomes are the outcomes Dispatch records, in display order.
var journalOutcomes = []string{journalSuccess, journalFailure, journalPreview, journalRejected}

// ActionLogPage is one filtered listing of the journal.
type ActionLogPage struct {
	Count    int                  `json:"count"`
	Events   []models.ActionEvent `json:"events"`
	Outcomes map[string]int       `json:"outcomes"`
}

type ActionLogService struct {
	journal  repository.ActionRepo
	registry Registry
}

// NewActionLogService lists the journal. Type filters are checked against
// registry; a nil registry accepts any name.
func NewActionLogService(journal repository.ActionRepo, registry Registry) *ActionLogService {
	return &ActionLogService{journal: journal, registry: registry}
}

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// query turns f into a journal query, rejecting names and outcomes that
// Dispatch can never have written.
func (s *ActionLogService) query(f LogFilter) (repository.ActionQuery, error) {
	q := repository.ActionQuery{
		From:    normalizeToUTC(f.From),
		To:      normalizeToUTC(f.To),
		Type:    strings.ToLower(strings.TrimSpace(f.Type)),
		Outcome: strings.ToUpper(strings.TrimSpace(f.Outcome)),
	}
	if !q.From.IsZero() && !q.To.IsZero() && q.From.After(q.To) {
		return repository.ActionQuery{}, errInvalidTimeRange
	}
	if q.Type != "" && s.registry != nil {
		if _, ok := s.registry[q.Type]; !ok {
			return repository.ActionQuery{}, fmt.Errorf("%w: %q", ErrUnknownAction, f.Type)
		}
	}
	if q.Outcome != "" && !slices.Contains(journalOutcomes, q.Outcome) {
		return repository.ActionQuery{}, fmt.Errorf("%w: %q", ErrUnknownOutcome, f.Outcome)
	}
	return q, nil
}

// List returns journal entries, newest first, with a per-outcome tally.
func (s *ActionLogService) List(ctx context.Context, f LogFilter) (*ActionLogPage, error) {
	q, err := s.query(f)
	if err != nil {
		return nil, err
	}
	events, err := s.journal.List(ctx, q)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []models.ActionEvent{}
	}
	return &ActionLogPage{Count: len(events), Events: events, Outcomes: tallyOutcomes(events)}, nil
}

// tallyOutcomes counts events per outcome. Every known outcome is present.
func tallyOutcomes(events []models.ActionEvent) map[string]int {
	out := make(map[string]int, len(journalOutcomes))
	for _, o := range journalOutcomes {
		out[o] = 0
	}
	for _, e := range events {
		out[strings.ToUpper(e.Outcome)]++
	}
	return out
}
