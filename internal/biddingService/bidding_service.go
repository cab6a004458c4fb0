package bidding

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"auction-platform/internal/auctionerrors"
	model "auction-platform/internal/models"
	"auction-platform/internal/ratelimit"
	"auction-platform/internal/repository"
	"auction-platform/internal/room"
	"auction-platform/utils"
)

// Broadcaster is the slice of the room hub the bidding service needs.
type Broadcaster interface {
	Publish(auctionID string, event room.Event)
	ActiveBidders(auctionID string) int
}

// Service is the bid admission gate: it validates a bid against limiter
// policy and current auction state, appends it to the ledger, and pushes
// the refreshed competitiveness signal to the auction room.
type Service struct {
	directory repository.AuctionDirectory
	limiter   *ratelimit.Limiter
	rooms     Broadcaster
	now       func() time.Time
}

// NewService creates a new bidding Service instance
func NewService(directory repository.AuctionDirectory, limiter *ratelimit.Limiter, rooms Broadcaster) *Service {
	return &Service{
		directory: directory,
		limiter:   limiter,
		rooms:     rooms,
		now:       time.Now,
	}
}

// RoomState is the per-user view of a live auction room.
type RoomState struct {
	MyBids          []model.Bid                `json:"my_bids"`
	Competitiveness model.CompetitivenessLevel `json:"competitiveness"`
	ActiveBidders   int                        `json:"active_bidders"`
}

// SubmitBid validates and records a single bid. Preconditions fail fast
// in order: identity, rate limit, auction live, bid bounds. An accepted
// bid is a pure append; it never supersedes the user's earlier bids.
func (s *Service) SubmitBid(ctx context.Context, auctionID, userID string, quantity int, price decimal.Decimal) (model.Bid, error) {
	if userID == "" {
		return model.Bid{}, fmt.Errorf("service: %w - missing user identity", auctionerrors.ErrUnauthorized)
	}

	if !s.limiter.Allow(ctx, userID, ratelimit.BidPolicy) {
		return model.Bid{}, fmt.Errorf("service: %w - bid policy exhausted for user %s", auctionerrors.ErrRateLimited, userID)
	}

	auction, err := s.directory.GetAuction(auctionID)
	if err != nil {
		return model.Bid{}, fmt.Errorf("service: failed to load auction %s: %w", auctionID, err)
	}
	if auction.Status != model.StatusLive {
		return model.Bid{}, fmt.Errorf("service: %w - auction %s is %s", auctionerrors.ErrAuctionNotLive, auctionID, auction.Status)
	}

	if quantity < 1 || quantity > auction.MaxQuantityPerBidder {
		return model.Bid{}, fmt.Errorf("service: %w - quantity %d outside [1, %d]", auctionerrors.ErrInvalidBidParameters, quantity, auction.MaxQuantityPerBidder)
	}
	if price.LessThan(auction.MinPrice) || price.GreaterThan(auction.MaxPrice) {
		return model.Bid{}, fmt.Errorf("service: %w - price %s outside [%s, %s]", auctionerrors.ErrInvalidBidParameters, price, auction.MinPrice, auction.MaxPrice)
	}

	bid := model.Bid{
		BidID:     utils.GenerateID(),
		AuctionID: auctionID,
		UserID:    userID,
		Quantity:  quantity,
		Price:     price,
		Timestamp: s.now().UTC(),
	}

	if err := s.directory.AppendBid(bid); err != nil {
		return model.Bid{}, fmt.Errorf("service: failed to record bid for auction %s by user %s: %w", auctionID, userID, err)
	}

	// feedback is best effort: a failed estimate never fails the bid
	if level, err := s.Estimate(ctx, auctionID, bid.Price); err != nil {
		utils.Warn("competitiveness estimate failed after bid", map[string]any{
			"auction_id": auctionID,
			"bid_id":     bid.BidID,
			"error":      err.Error(),
		})
	} else {
		s.rooms.Publish(auctionID, room.CompetitivenessEvent(level))
	}

	return bid, nil
}

// RoomState returns the caller's bids (most recent first), their current
// competitiveness relative to their latest bid, and the live presence
// count for the auction.
func (s *Service) RoomState(ctx context.Context, auctionID, userID string) (RoomState, error) {
	if userID == "" {
		return RoomState{}, fmt.Errorf("service: %w - missing user identity", auctionerrors.ErrUnauthorized)
	}

	myBids, err := s.directory.BidsByUser(auctionID, userID)
	if err != nil {
		return RoomState{}, fmt.Errorf("service: failed to get bids for auction %s user %s: %w", auctionID, userID, err)
	}

	level := model.CompetitivenessLow
	if len(myBids) > 0 {
		level, err = s.Estimate(ctx, auctionID, myBids[0].Price)
		if err != nil {
			return RoomState{}, fmt.Errorf("service: failed to estimate competitiveness for auction %s: %w", auctionID, err)
		}
	}

	if myBids == nil {
		myBids = []model.Bid{}
	}

	return RoomState{
		MyBids:          myBids,
		Competitiveness: level,
		ActiveBidders:   s.rooms.ActiveBidders(auctionID),
	}, nil
}
