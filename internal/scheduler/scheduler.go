package scheduler

import (
	"context"
	"time"

	"auction-platform/internal/allocation"
	"auction-platform/internal/repository"
	"auction-platform/internal/room"
	"auction-platform/utils"
)

// Publisher is the slice of the room hub the scheduler needs.
type Publisher interface {
	Publish(auctionID string, event room.Event)
}

// Scheduler drives auction lifecycle transitions on a fixed interval:
// UPCOMING -> LIVE when the window opens, LIVE -> COMPLETED when it
// closes. Completion triggers the allocation engine once per auction and
// announces the close to the auction room.
type Scheduler struct {
	directory repository.AuctionDirectory
	engine    *allocation.Engine
	rooms     Publisher
	interval  time.Duration
	now       func() time.Time
}

// NewScheduler creates a new Scheduler instance
func NewScheduler(directory repository.AuctionDirectory, engine *allocation.Engine, rooms Publisher, interval time.Duration) *Scheduler {
	return &Scheduler{
		directory: directory,
		engine:    engine,
		rooms:     rooms,
		interval:  interval,
		now:       time.Now,
	}
}

// Start runs the periodic tick loop until the context is cancelled.
// Run in a goroutine.
func (s *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Tick performs one lifecycle pass. The directory's conditional updates
// make overlapping ticks harmless: an auction already transitioned is
// excluded by the status predicate and is never returned twice.
func (s *Scheduler) Tick(ctx context.Context) {
	now := s.now()

	promoted, err := s.directory.PromoteDueAuctions(now)
	if err != nil {
		utils.Error("scheduler: failed to promote auctions", map[string]any{"error": err.Error()})
	}
	for _, a := range promoted {
		utils.Info("auction live", map[string]any{"auction_id": a.ID})
	}

	completed, err := s.directory.CompleteDueAuctions(now)
	if err != nil {
		utils.Error("scheduler: failed to complete auctions", map[string]any{"error": err.Error()})
	}
	for _, a := range completed {
		s.finalize(ctx, a.ID)
	}

	// recovery: the status write may have committed while allocation
	// failed; allocation is idempotent, so just run it again
	unallocated, err := s.directory.CompletedUnallocated()
	if err != nil {
		utils.Error("scheduler: failed to find unallocated auctions", map[string]any{"error": err.Error()})
		return
	}
	for _, auctionID := range unallocated {
		utils.Warn("scheduler: retrying allocation", map[string]any{"auction_id": auctionID})
		s.finalize(ctx, auctionID)
	}
}

// finalize runs allocation for a freshly completed auction and announces
// the close. A failed allocation is left for the next tick's recovery
// pass; the status is already COMPLETED and never regresses.
func (s *Scheduler) finalize(ctx context.Context, auctionID string) {
	if _, err := s.engine.Run(ctx, auctionID); err != nil {
		utils.Error("scheduler: allocation failed", map[string]any{
			"auction_id": auctionID,
			"error":      err.Error(),
		})
		return
	}

	s.rooms.Publish(auctionID, room.AuctionCompleteEvent())
	utils.Info("auction completed", map[string]any{"auction_id": auctionID})
}
