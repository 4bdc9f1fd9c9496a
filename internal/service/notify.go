package service

import (
	"sync"
	"time"

	"tempmon_dashboard/internal/models"

	"github.com/google/uuid"
)

// DefaultBannerTimeout is how long a banner stays on screen.
const DefaultBannerTimeout = 5 * time.Second

// Board keeps the banners of every viewer session. Banners expire after a
// fixed timeout whether or not they are dismissible.
type Board struct {
	mu      sync.Mutex
	timeout time.Duration
	now     func() time.Time
	notices map[string][]models.Notice
}

func NewBoard(timeout time.Duration) *Board {
	if timeout <= 0 {
		timeout = DefaultBannerTimeout
	}
	return &Board{
		timeout: timeout,
		now:     time.Now,
		notices: make(map[string][]models.Notice),
	}
}

// Post appends a banner to the session's container and returns it.
func (b *Board) Post(sessionID, level, message string, dismissible bool) models.Notice {
	now := b.now().UTC()
	n := models.Notice{
		ID:          uuid.NewString(),
		Level:       level,
		Message:     message,
		Dismissible: dismissible,
		CreatedAt:   now,
		ExpiresAt:   now.Add(b.timeout),
	}

	b.mu.Lock()
	b.notices[sessionID] = append(b.notices[sessionID], n)
	b.mu.Unlock()
	return n
}

// Active returns the unexpired banners of a session, oldest first.
func (b *Board) Active(sessionID string) []models.Notice {
	now := b.now()

	b.mu.Lock()
	defer b.mu.Unlock()

	kept := b.live(b.notices[sessionID], now)
	if len(kept) == 0 {
		delete(b.notices, sessionID)
		return nil
	}
	b.notices[sessionID] = kept
	out := make([]models.Notice, len(kept))
	copy(out, kept)
	return out
}

// Dismiss removes a dismissible banner. Permanent banners stay until they
// expire.
func (b *Board) Dismiss(sessionID, noticeID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	list := b.notices[sessionID]
	for i, n := range list {
		if n.ID != noticeID {
			continue
		}
		if !n.Dismissible {
			return false
		}
		b.notices[sessionID] = append(list[:i:i], list[i+1:]...)
		return true
	}
	return false
}

// Prune drops expired banners of every session and returns how many went.
func (b *Board) Prune() int {
	now := b.now()

	b.mu.Lock()
	defer b.mu.Unlock()

	removed := 0
	for sid, list := range b.notices {
		kept := b.live(list, now)
		removed += len(list) - len(kept)
		if len(kept) == 0 {
			delete(b.notices, sid)
			continue
		}
		b.notices[sid] = kept
	}
	return removed
}

func (b *Board) live(list []models.Notice, now time.Time) []models.Notice {
	kept := list[:0]
	for _, n := range list {
		if !n.Expired(now) {
			kept = append(kept, n)
		}
	}
	return kept
}
