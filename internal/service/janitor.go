package service

import (
	"context"
	"time"
)

// DefaultViewIdleTTL is how long a view may go unrequested before it is
// dropped from memory. Its selection survives in the view repository.
const DefaultViewIdleTTL = 30 * time.Minute

// Sweeper drops expired banners and idle views.
type Sweeper struct {
	board *Board
	views *ViewStore
	idle  time.Duration
}

func NewSweeper(board *Board, views *ViewStore, idle time.Duration) *Sweeper {
	if idle <= 0 {
		idle = DefaultViewIdleTTL
	}
	return &Sweeper{board: board, views: views, idle: idle}
}

// Sweep runs one pass and reports how many banners and views it dropped.
func (s *Sweeper) Sweep() (notices, views int) {
	return s.board.Prune(), s.views.Evict(s.idle)
}

// Run ticks at the given interval until ctx is canceled.
func (s *Sweeper) Run(ctx context.Context, tick time.Duration) {
	if tick <= 0 {
		tick = time.Second
	}
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.Sweep()
		}
	}
}
