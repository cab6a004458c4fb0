package allocation

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"auction-platform/internal/auctionerrors"
	model "auction-platform/internal/models"
	"auction-platform/internal/repository"
	"auction-platform/utils"
)

// Engine computes final allocations when an auction completes. Allocate
// is a pure function of the ledger, so the scheduler may safely invoke it
// again after a partial failure; Run makes the stored results single-shot.
type Engine struct {
	directory repository.AuctionDirectory
}

// NewEngine creates a new allocation Engine instance
func NewEngine(directory repository.AuctionDirectory) *Engine {
	return &Engine{directory: directory}
}

// SortBids orders bids for consumption: price descending, ties broken by
// earliest timestamp, then bid id. The final tiebreak makes the order a
// total one, so identical ledgers always produce identical allocations.
// The competitiveness estimator uses the same order to preview the cutoff.
func SortBids(bids []model.Bid) {
	sort.Slice(bids, func(i, j int) bool {
		if !bids[i].Price.Equal(bids[j].Price) {
			return bids[i].Price.GreaterThan(bids[j].Price)
		}
		if !bids[i].Timestamp.Equal(bids[j].Timestamp) {
			return bids[i].Timestamp.Before(bids[j].Timestamp)
		}
		return bids[i].BidID < bids[j].BidID
	})
}

// Allocate walks the sorted ledger allocating min(bid.quantity, remaining)
// per bid until supply is exhausted. Each bid is allocated in its own
// sorted position, so a user may win against more than one of their own
// bids; results are grouped per user with itemized lines. Results are
// ordered by user id so reruns are byte-identical.
func (e *Engine) Allocate(_ context.Context, auctionID string) ([]model.AllocationResult, error) {
	auction, err := e.directory.GetAuction(auctionID)
	if err != nil {
		return nil, fmt.Errorf("allocate: %w - auction %s: %v", auctionerrors.ErrAllocationInconsistency, auctionID, err)
	}

	bids, err := e.directory.BidsByAuction(auctionID)
	if err != nil {
		return nil, fmt.Errorf("allocate: %w - ledger for auction %s: %v", auctionerrors.ErrAllocationInconsistency, auctionID, err)
	}

	SortBids(bids)

	remaining := auction.TotalQuantity
	byUser := make(map[string]*model.AllocationResult)
	var order []string

	for _, bid := range bids {
		if remaining == 0 {
			break
		}
		granted := bid.Quantity
		if granted > remaining {
			granted = remaining
		}
		remaining -= granted

		result, ok := byUser[bid.UserID]
		if !ok {
			result = &model.AllocationResult{
				AuctionID:   auctionID,
				UserID:      bid.UserID,
				TotalAmount: decimal.Zero,
			}
			byUser[bid.UserID] = result
			order = append(order, bid.UserID)
		}
		result.Quantity += granted
		result.Lines = append(result.Lines, model.AllocationLine{Quantity: granted, Price: bid.Price})
		result.TotalAmount = result.TotalAmount.Add(bid.Price.Mul(decimal.NewFromInt(int64(granted))))
	}

	sort.Strings(order)
	results := make([]model.AllocationResult, 0, len(order))
	for _, userID := range order {
		results = append(results, *byUser[userID])
	}
	return results, nil
}

// Run computes the allocation and stores it. The directory write is
// single-shot, so invoking Run more than once for the same auction leaves
// the first stored results untouched.
func (e *Engine) Run(ctx context.Context, auctionID string) ([]model.AllocationResult, error) {
	results, err := e.Allocate(ctx, auctionID)
	if err != nil {
		return nil, err
	}

	if err := e.directory.StoreAllocation(auctionID, results); err != nil {
		return nil, fmt.Errorf("allocate: failed to store results for auction %s: %w", auctionID, err)
	}

	utils.Info("allocation stored", map[string]any{
		"auction_id": auctionID,
		"winners":    len(results),
	})
	return results, nil
}
