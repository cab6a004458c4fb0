package repository

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"auction-platform/internal/auctionerrors"
	model "auction-platform/internal/models"
)

// AuctionFilter narrows and orders auction listings.
type AuctionFilter struct {
	Status     model.AuctionStatus // empty matches any status
	StartAfter *time.Time
	EndBefore  *time.Time
	SortBy     string // "start_time" (default) or "end_time"
	SortDesc   bool
}

// AuctionDirectory is the source of truth consumed by every component:
// auction records with conditional status updates, the append-only bid
// ledger, and single-write allocation results.
type AuctionDirectory interface {
	CreateAuction(auction model.Auction) error
	GetAuction(auctionID string) (model.Auction, error)
	ListAuctions(filter AuctionFilter) ([]model.Auction, error)

	AppendBid(bid model.Bid) error
	BidsByAuction(auctionID string) ([]model.Bid, error)
	BidsByUser(auctionID, userID string) ([]model.Bid, error)

	PromoteDueAuctions(now time.Time) ([]model.Auction, error)
	CompleteDueAuctions(now time.Time) ([]model.Auction, error)

	StoreAllocation(auctionID string, results []model.AllocationResult) error
	AllocationResults(auctionID string) ([]model.AllocationResult, error)
	CompletedUnallocated() ([]string, error)
}

// MemoryDirectory is a concurrency-safe in-memory implementation of
// AuctionDirectory. Bids are pure appends; the auction status field is the
// only contended mutable state and every transition happens under the
// write lock with its predicate re-checked (compare-and-update semantics).
type MemoryDirectory struct {
	mu          sync.RWMutex
	auctions    map[string]model.Auction            // key: auctionID
	bids        map[string][]model.Bid              // key: auctionID -> ledger, append order
	allocations map[string][]model.AllocationResult // key: auctionID, written at most once
}

// NewMemoryDirectory creates a new in-memory directory instance
func NewMemoryDirectory() *MemoryDirectory {
	return &MemoryDirectory{
		auctions:    make(map[string]model.Auction),
		bids:        make(map[string][]model.Bid),
		allocations: make(map[string][]model.AllocationResult),
	}
}

// CreateAuction registers a new auction record
func (d *MemoryDirectory) CreateAuction(auction model.Auction) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.auctions[auction.ID]; ok {
		return fmt.Errorf("create auction %s: %w - id already exists", auction.ID, auctionerrors.ErrInvalidAuctionParameters)
	}
	d.auctions[auction.ID] = auction
	return nil
}

// GetAuction returns the auction record for an id
func (d *MemoryDirectory) GetAuction(auctionID string) (model.Auction, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	auction, ok := d.auctions[auctionID]
	if !ok {
		return model.Auction{}, fmt.Errorf("get auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	return auction, nil
}

// ListAuctions returns auctions matching the filter, ordered by the
// requested time field.
func (d *MemoryDirectory) ListAuctions(filter AuctionFilter) ([]model.Auction, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	auctions := make([]model.Auction, 0, len(d.auctions))
	for _, a := range d.auctions {
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		if filter.StartAfter != nil && a.StartTime.Before(*filter.StartAfter) {
			continue
		}
		if filter.EndBefore != nil && a.EndTime.After(*filter.EndBefore) {
			continue
		}
		auctions = append(auctions, a)
	}

	key := func(a model.Auction) time.Time { return a.StartTime }
	if filter.SortBy == "end_time" {
		key = func(a model.Auction) time.Time { return a.EndTime }
	}
	sort.Slice(auctions, func(i, j int) bool {
		if filter.SortDesc {
			i, j = j, i
		}
		if !key(auctions[i]).Equal(key(auctions[j])) {
			return key(auctions[i]).Before(key(auctions[j]))
		}
		return auctions[i].ID < auctions[j].ID
	})
	return auctions, nil
}

// AppendBid appends an accepted bid to the auction's ledger. Bids are
// never updated or deleted afterwards.
func (d *MemoryDirectory) AppendBid(bid model.Bid) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.auctions[bid.AuctionID]; !ok {
		return fmt.Errorf("append bid for auction %s: %w", bid.AuctionID, auctionerrors.ErrAuctionNotFound)
	}
	d.bids[bid.AuctionID] = append(d.bids[bid.AuctionID], bid)
	return nil
}

// BidsByAuction returns a snapshot of the full ledger for an auction
func (d *MemoryDirectory) BidsByAuction(auctionID string) ([]model.Bid, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if _, ok := d.auctions[auctionID]; !ok {
		return nil, fmt.Errorf("bids for auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	return append([]model.Bid(nil), d.bids[auctionID]...), nil
}

// BidsByUser returns one user's bids for an auction, most recent first
func (d *MemoryDirectory) BidsByUser(auctionID, userID string) ([]model.Bid, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if _, ok := d.auctions[auctionID]; !ok {
		return nil, fmt.Errorf("bids for auction %s user %s: %w", auctionID, userID, auctionerrors.ErrAuctionNotFound)
	}

	var bids []model.Bid
	for _, b := range d.bids[auctionID] {
		if b.UserID == userID {
			bids = append(bids, b)
		}
	}
	sort.SliceStable(bids, func(i, j int) bool {
		return bids[i].Timestamp.After(bids[j].Timestamp)
	})
	return bids, nil
}

// PromoteDueAuctions transitions every auction with status UPCOMING and
// startTime <= now to LIVE, returning those that transitioned. The
// predicate and write happen under one lock, so overlapping ticks cannot
// both promote the same auction.
func (d *MemoryDirectory) PromoteDueAuctions(now time.Time) ([]model.Auction, error) {
	return d.transition(model.StatusUpcoming, model.StatusLive, func(a model.Auction) bool {
		return !a.StartTime.After(now)
	})
}

// CompleteDueAuctions transitions every auction with status LIVE and
// endTime <= now to COMPLETED, returning only those that transitioned in
// this call, never auctions that were already COMPLETED.
func (d *MemoryDirectory) CompleteDueAuctions(now time.Time) ([]model.Auction, error) {
	return d.transition(model.StatusLive, model.StatusCompleted, func(a model.Auction) bool {
		return !a.EndTime.After(now)
	})
}

// transition applies a conditional status update. Auctions not in `from`
// are skipped, which makes retried ticks no-ops for already-transitioned
// rows and keeps the lifecycle monotonic.
func (d *MemoryDirectory) transition(from, to model.AuctionStatus, due func(model.Auction) bool) ([]model.Auction, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var transitioned []model.Auction
	for id, a := range d.auctions {
		if a.Status != from || !due(a) {
			continue
		}
		a.Status = to
		d.auctions[id] = a
		transitioned = append(transitioned, a)
	}
	sort.Slice(transitioned, func(i, j int) bool { return transitioned[i].ID < transitioned[j].ID })
	return transitioned, nil
}

// StoreAllocation records the allocation results for an auction. The
// write is single-shot: results already stored for the auction are kept
// untouched and the call is a no-op, so a retried trigger cannot
// double-allocate.
func (d *MemoryDirectory) StoreAllocation(auctionID string, results []model.AllocationResult) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.auctions[auctionID]; !ok {
		return fmt.Errorf("store allocation for auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	if _, ok := d.allocations[auctionID]; ok {
		return nil
	}
	d.allocations[auctionID] = append([]model.AllocationResult(nil), results...)
	return nil
}

// AllocationResults returns the stored allocation for a completed
// auction, or ErrAuctionNotCompleted when no results have been stored yet.
func (d *MemoryDirectory) AllocationResults(auctionID string) ([]model.AllocationResult, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if _, ok := d.auctions[auctionID]; !ok {
		return nil, fmt.Errorf("allocation results for auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	results, ok := d.allocations[auctionID]
	if !ok {
		return nil, fmt.Errorf("allocation results for auction %s: %w", auctionID, auctionerrors.ErrAuctionNotCompleted)
	}
	return append([]model.AllocationResult(nil), results...), nil
}

// CompletedUnallocated returns ids of auctions that reached COMPLETED but
// have no stored allocation. This is the scheduler's recovery predicate
// for allocations that failed after the status write committed.
func (d *MemoryDirectory) CompletedUnallocated() ([]string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var ids []string
	for id, a := range d.auctions {
		if a.Status != model.StatusCompleted {
			continue
		}
		if _, ok := d.allocations[id]; !ok {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}
