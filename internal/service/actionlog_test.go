package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"tempmon_dashboard/internal/models"
	"tempmon_dashboard/internal/repository"

	"github.com/google/go-cmp/cmp"
)

// fakeJournal satisfies repository.ActionRepo and records what it was given.
type fakeJournal struct {
	mu sync.Mutex

	got repository.ActionQuery

	events   []models.ActionEvent
	appended []models.ActionEvent
	err      error

	calls int
}

func (f *fakeJournal) List(_ context.Context, q repository.ActionQuery) ([]models.ActionEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.got = q
	return f.events, f.err
}

func (f *fakeJournal) Append(_ context.Context, e models.ActionEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.appended = append(f.appended, e)
	return nil
}

func (f *fakeJournal) last() models.ActionEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.appended) == 0 {
		return models.ActionEvent{}
	}
	return f.appended[len(f.appended)-1]
}

func mustTimeIn(loc *time.Location, y int, m time.Month, d, hh, mm, ss int) time.Time {
	return time.Date(y, m, d, hh, mm, ss, 0, loc)
}

func Test_normalizeToUTC(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   time.Time
		want func(time.Time) bool
	}{
		{
			name: "zero time remains zero",
			in:   time.Time{},
			want: func(out time.Time) bool { return out.IsZero() },
		},
		{
			name: "non-UTC converted to UTC preserving instant",
			in:   mustTimeIn(time.FixedZone("UTC+3", 3*3600), 2025, time.August, 1, 12, 34, 56),
			want: func(out time.Time) bool {
				exp := time.Date(2025, time.August, 1, 9, 34, 56, 0, time.UTC)
				return out.Location() == time.UTC && out.Equal(exp)
			},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := normalizeToUTC(tc.in)
			if !tc.want(got) {
				t.Fatalf("unexpected normalizeToUTC result: %v (loc=%v)", got, got.Location())
			}
		})
	}
}

func TestActionLogService_query(t *testing.T) {
	t.Parallel()

	svc := NewActionLogService(&fakeJournal{}, DefaultRegistry())

	cases := []struct {
		name    string
		in      LogFilter
		want    repository.ActionQuery
		wantErr error
	}{
		{name: "zero filter", in: LogFilter{}, want: repository.ActionQuery{}},
		{
			name: "type and outcome normalized",
			in:   LogFilter{Type: "  TOKEN.Revoke ", Outcome: " failure"},
			want: repository.ActionQuery{Type: "token.revoke", Outcome: "FAILURE"},
		},
		{
			name: "inverted range",
			in: LogFilter{
				From: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
				To:   time.Date(2025, 1, 1, 23, 0, 0, 0, time.UTC),
			},
			wantErr: errInvalidTimeRange,
		},
		{name: "unregistered action", in: LogFilter{Type: "unit.reboot"}, wantErr: ErrUnknownAction},
		{name: "unknown outcome", in: LogFilter{Outcome: "partial"}, wantErr: ErrUnknownOutcome},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			got, err := svc.query(c.in)
			if c.wantErr != nil {
				if !errors.Is(err, c.wantErr) {
					t.Fatalf("query(%+v) err = %v; want %v", c.in, err, c.wantErr)
				}
				return
			}
			if err != nil || got != c.want {
				t.Fatalf("query(%+v) = %+v, %v; want %+v", c.in, got, err, c.want)
			}
		})
	}
}

func TestActionLogService_query_NilRegistryAcceptsAnyName(t *testing.T) {
	t.Parallel()

	q, err := NewActionLogService(&fakeJournal{}, nil).query(LogFilter{Type: "Legacy.Action"})
	if err != nil || q.Type != "legacy.action" {
		t.Fatalf("q=%+v err=%v", q, err)
	}
}

func TestActionLogService_List_DelegatesNormalizedParams(t *testing.T) {
	t.Parallel()

	journal := &fakeJournal{events: []models.ActionEvent{
		{EventID: "1", Outcome: journalSuccess},
		{EventID: "2", Outcome: journalFailure},
		{EventID: "3", Outcome: journalFailure},
	}}
	svc := NewActionLogService(journal, DefaultRegistry())

	fromLocal := mustTimeIn(time.FixedZone("UTC+5", 5*3600), 2025, time.October, 1, 10, 0, 0)
	toLocal := mustTimeIn(time.FixedZone("UTC-2", -2*3600), 2025, time.October, 1, 12, 30, 0)

	out, err := svc.List(context.Background(), LogFilter{From: fromLocal, To: toLocal, Type: " token.revoke "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Count != 3 || out.Events[0].EventID != "1" {
		t.Fatalf("unexpected page: %+v", out)
	}
	want := map[string]int{journalSuccess: 1, journalFailure: 2, journalPreview: 0, journalRejected: 0}
	if diff := cmp.Diff(want, out.Outcomes); diff != "" {
		t.Fatalf("outcome tally mismatch (-want +got):\n%s", diff)
	}
	if !journal.got.From.Equal(time.Date(2025, time.October, 1, 5, 0, 0, 0, time.UTC)) {
		t.Fatalf("got.From=%v", journal.got.From)
	}
	if !journal.got.To.Equal(time.Date(2025, time.October, 1, 14, 30, 0, 0, time.UTC)) {
		t.Fatalf("got.To=%v", journal.got.To)
	}
	if journal.got.Type != "token.revoke" {
		t.Fatalf("got.Type=%q", journal.got.Type)
	}
}

func TestActionLogService_List_EmptyJournal(t *testing.T) {
	t.Parallel()

	out, err := NewActionLogService(&fakeJournal{}, nil).List(context.Background(), LogFilter{Outcome: "rejected"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Count != 0 || out.Events == nil || len(out.Outcomes) != len(journalOutcomes) {
		t.Fatalf("unexpected page: %+v", out)
	}
}

func TestActionLogService_List_Errors(t *testing.T) {
	t.Parallel()

	t.Run("validation error skips the journal", func(t *testing.T) {
		journal := &fakeJournal{}
		_, err := NewActionLogService(journal, nil).List(context.Background(), LogFilter{
			From: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
			To:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		})
		if !errors.Is(err, errInvalidTimeRange) || journal.calls != 0 {
			t.Fatalf("err=%v calls=%d", err, journal.calls)
		}
	})

	t.Run("journal error propagates", func(t *testing.T) {
		journal := &fakeJournal{err: errors.New("db down")}
		_, err := NewActionLogService(journal, nil).List(context.Background(), LogFilter{})
		if !errors.Is(err, journal.err) || journal.calls != 1 {
			t.Fatalf("err=%v calls=%d", err, journal.calls)
		}
	})
}
