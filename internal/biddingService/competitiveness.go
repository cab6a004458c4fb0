package bidding

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"auction-platform/internal/allocation"
	model "auction-platform/internal/models"
)

// Estimate derives the coarse standing signal for a reference price from
// a point-in-time snapshot of the ledger. Bids are consumed in descending
// price order (earliest timestamp first on equal price) until cumulative
// quantity reaches the auction's supply; the bid at that point is the
// cutoff. A reference price at or above the cutoff price would currently
// clear (HIGH), below it would not (MEDIUM). If demand never exhausts
// supply, any price currently allocates (LOW).
//
// The snapshot may be stale by the time the caller reads the result.
// Only the allocation engine's final run is authoritative.
func (s *Service) Estimate(_ context.Context, auctionID string, referencePrice decimal.Decimal) (model.CompetitivenessLevel, error) {
	auction, err := s.directory.GetAuction(auctionID)
	if err != nil {
		return "", fmt.Errorf("estimate: failed to load auction %s: %w", auctionID, err)
	}

	bids, err := s.directory.BidsByAuction(auctionID)
	if err != nil {
		return "", fmt.Errorf("estimate: failed to read ledger for auction %s: %w", auctionID, err)
	}

	allocation.SortBids(bids)

	cumulative := 0
	for _, bid := range bids {
		cumulative += bid.Quantity
		if cumulative >= auction.TotalQuantity {
			if referencePrice.GreaterThanOrEqual(bid.Price) {
				return model.CompetitivenessHigh, nil
			}
			return model.CompetitivenessMedium, nil
		}
	}
	return model.CompetitivenessLow, nil
}
