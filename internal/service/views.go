package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"tempmon_dashboard/internal/models"
	"tempmon_dashboard/internal/render"
	"tempmon_dashboard/internal/repository"
)

// ErrStaleRefresh is returned for a refresh that finished after a newer
// one was issued for the same view. Its result is discarded.
var ErrStaleRefresh = errors.New("refresh superseded by a newer request")

// ChartSlot owns one chart of one view. Every Replace drops the previous
// chart and bumps the generation, so nothing accumulates across redraws.
type ChartSlot struct {
	mu         sync.Mutex
	id         string
	generation uint64
	data       *render.ChartData
}

// Replace destroys the current chart and installs data under a new
// generation.
func (s *ChartSlot) Replace(data render.ChartData) render.ChartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.data = &data
	return render.ChartView{ID: s.id, Generation: s.generation, Data: data}
}

// Current returns the live chart, if any.
func (s *ChartSlot) Current() (render.ChartView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return render.ChartView{}, false
	}
	return render.ChartView{ID: s.id, Generation: s.generation, Data: *s.data}, true
}

// Destroy drops the chart without drawing a new one.
func (s *ChartSlot) Destroy() {
	s.mu.Lock()
	s.data = nil
	s.mu.Unlock()
}

// View is the dashboard state of one viewer session: its selection, the
// last committed refresh, and its charts.
type View struct {
	mu        sync.Mutex
	sessionID string
	selection models.Selection
	latest    uint64
	snapshot  *Snapshot
	charts    map[string]*ChartSlot
	lastSeen  time.Time
	busy      int // refreshes in flight
}

func newView(sessionID string, sel models.Selection) *View {
	return &View{
		sessionID: sessionID,
		selection: sel.Normalize(),
		charts:    make(map[string]*ChartSlot),
		lastSeen:  time.Now(),
	}
}

func (v *View) SessionID() string { return v.sessionID }

// Selection is the most recently requested selection.
func (v *View) Selection() models.Selection {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.selection
}

// Snapshot returns the last committed refresh, nil before the first one.
func (v *View) Snapshot() *Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshot
}

// Chart returns the slot for a canvas id, creating it on first use.
func (v *View) Chart(id string) *ChartSlot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.chart(id)
}

func (v *View) chart(id string) *ChartSlot {
	slot, ok := v.charts[id]
	if !ok {
		slot = &ChartSlot{id: id}
		v.charts[id] = slot
	}
	return slot
}

// Unit finds a unit in the last committed refresh.
func (v *View) Unit(unitID string) (models.TemperatureUnit, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.snapshot == nil {
		return models.TemperatureUnit{}, false
	}
	for _, u := range v.snapshot.Units {
		if u.UnitID.String() == unitID {
			return u, true
		}
	}
	return models.TemperatureUnit{}, false
}

// begin issues the next refresh token and records the requested selection.
// Every begin must be paired with a finish.
func (v *View) begin(sel models.Selection) uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.latest++
	v.busy++
	v.selection = sel
	v.lastSeen = time.Now()
	return v.latest
}

// finish ends a refresh started by begin.
func (v *View) finish() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.busy--
	v.lastSeen = time.Now()
}

func (v *View) isLatest(token uint64) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return token == v.latest
}

// commit installs snap if token is still the latest issued one and redraws
// the overview chart from it.
func (v *View) commit(token uint64, snap *Snapshot) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if token != v.latest {
		return ErrStaleRefresh
	}
	snap.Token = token
	v.snapshot = snap
	v.selection = snap.Selection
	v.chart(render.TemperatureChartID).Replace(render.OverviewChart(snap.Units))
	return nil
}

// evictable reports whether the view has no refresh in flight and was
// last seen before cutoff.
func (v *View) evictable(cutoff time.Time) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.busy == 0 && v.lastSeen.Before(cutoff)
}

func (v *View) touch() {
	v.mu.Lock()
	v.lastSeen = time.Now()
	v.mu.Unlock()
}

// ViewStore keeps one View per session and persists their selections.
type ViewStore struct {
	mu    sync.Mutex
	views map[string]*View
	repo  repository.ViewRepo
}

func NewViewStore(repo repository.ViewRepo) *ViewStore {
	return &ViewStore{views: make(map[string]*View), repo: repo}
}

// Get returns the session's view, restoring its stored selection when the
// view is not in memory yet.
func (s *ViewStore) Get(ctx context.Context, sessionID string) (*View, error) {
	s.mu.Lock()
	if v, ok := s.views[sessionID]; ok {
		s.mu.Unlock()
		v.touch()
		return v, nil
	}
	s.mu.Unlock()

	state, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("restore view %q: %w", sessionID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.views[sessionID]; ok {
		return v, nil
	}
	v := newView(sessionID, state.Selection())
	s.views[sessionID] = v
	return v, nil
}

// Save persists the view's current selection.
func (s *ViewStore) Save(ctx context.Context, v *View) error {
	sel := v.Selection()
	return s.repo.Save(ctx, models.ViewState{
		SessionID:  v.SessionID(),
		FacilityID: sel.FacilityID,
		Hours:      sel.Hours,
		UpdatedAt:  time.Now().UTC(),
	})
}

// Evict forgets views untouched for longer than idle. A view with a
// refresh in flight is kept. Selections stay in the repository.
func (s *ViewStore) Evict(idle time.Duration) int {
	if idle <= 0 {
		return 0
	}
	cutoff := time.Now().Add(-idle)

	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for sid, v := range s.views {
		if v.evictable(cutoff) {
			delete(s.views, sid)
			n++
		}
	}
	return n
}

// Len reports how many views are in memory.
func (s *ViewStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.views)
}
