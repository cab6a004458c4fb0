package allocation

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"auction-platform/internal/auctionerrors"
	model "auction-platform/internal/models"
)

// UserResults is the allocation-query payload for one requesting user:
// their own result (if they won) plus the auction-wide summary.
type UserResults struct {
	Won        bool                    `json:"won"`
	Allocation *model.AllocationResult `json:"allocation,omitempty"`
	Summary    model.AllocationSummary `json:"summary"`
}

// Results answers the allocation query for a completed auction. Available
// only once the auction reached COMPLETED and results were stored.
func (e *Engine) Results(_ context.Context, auctionID, userID string) (UserResults, error) {
	auction, err := e.directory.GetAuction(auctionID)
	if err != nil {
		return UserResults{}, fmt.Errorf("results: failed to load auction %s: %w", auctionID, err)
	}
	if auction.Status != model.StatusCompleted {
		return UserResults{}, fmt.Errorf("results: %w - auction %s is %s", auctionerrors.ErrAuctionNotCompleted, auctionID, auction.Status)
	}

	stored, err := e.directory.AllocationResults(auctionID)
	if err != nil {
		return UserResults{}, fmt.Errorf("results: failed to load allocation for auction %s: %w", auctionID, err)
	}

	bids, err := e.directory.BidsByAuction(auctionID)
	if err != nil {
		return UserResults{}, fmt.Errorf("results: failed to read ledger for auction %s: %w", auctionID, err)
	}

	out := UserResults{Summary: summarize(len(bids), stored)}
	for i := range stored {
		if stored[i].UserID == userID {
			out.Won = stored[i].Quantity > 0
			out.Allocation = &stored[i]
			break
		}
	}
	return out, nil
}

// summarize aggregates stored results into the auction-wide summary.
// Average price is quantity-weighted across winning lines.
func summarize(totalBids int, results []model.AllocationResult) model.AllocationSummary {
	summary := model.AllocationSummary{TotalBids: totalBids}

	totalAmount := decimal.Zero
	first := true
	for _, r := range results {
		summary.TotalQuantityAllocated += r.Quantity
		totalAmount = totalAmount.Add(r.TotalAmount)
		for _, line := range r.Lines {
			if first {
				summary.MinWinningPrice = line.Price
				summary.MaxWinningPrice = line.Price
				first = false
				continue
			}
			if line.Price.LessThan(summary.MinWinningPrice) {
				summary.MinWinningPrice = line.Price
			}
			if line.Price.GreaterThan(summary.MaxWinningPrice) {
				summary.MaxWinningPrice = line.Price
			}
		}
	}

	if summary.TotalQuantityAllocated > 0 {
		summary.AveragePrice = totalAmount.Div(decimal.NewFromInt(int64(summary.TotalQuantityAllocated))).Round(2)
	}
	return summary
}
