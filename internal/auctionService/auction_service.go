package auctions

import (
	"fmt"
	"time"

	"auction-platform/internal/auctionerrors"
	model "auction-platform/internal/models"
	"auction-platform/internal/repository"
	"auction-platform/utils"
)

// Service covers the auction-record side of the platform: admin creation
// plus listing and detail reads. Status is never mutated here; only the
// lifecycle scheduler transitions it.
type Service struct {
	directory repository.AuctionDirectory
	now       func() time.Time
}

// NewService creates a new auctions Service instance
func NewService(directory repository.AuctionDirectory) *Service {
	return &Service{
		directory: directory,
		now:       time.Now,
	}
}

// Create validates and registers a new auction. Requires the ADMIN role;
// identity itself comes from the external auth collaborator. New auctions
// always start UPCOMING and go live via the scheduler.
func (s *Service) Create(user model.User, auction model.Auction) (model.Auction, error) {
	if user.UserID == "" {
		return model.Auction{}, fmt.Errorf("service: %w - missing user identity", auctionerrors.ErrUnauthorized)
	}
	if user.Role != model.RoleAdmin {
		return model.Auction{}, fmt.Errorf("service: %w - role %s cannot create auctions", auctionerrors.ErrUnauthorized, user.Role)
	}

	if err := validateAuction(auction); err != nil {
		return model.Auction{}, err
	}

	auction.ID = utils.GenerateID()
	auction.Status = model.StatusUpcoming
	auction.CreatedAt = s.now().UTC()

	if err := s.directory.CreateAuction(auction); err != nil {
		return model.Auction{}, fmt.Errorf("service: failed to create auction: %w", err)
	}
	return auction, nil
}

// Get returns a single auction record
func (s *Service) Get(auctionID string) (model.Auction, error) {
	auction, err := s.directory.GetAuction(auctionID)
	if err != nil {
		return model.Auction{}, fmt.Errorf("service: failed to get auction %s: %w", auctionID, err)
	}
	return auction, nil
}

// List returns auctions matching the filter
func (s *Service) List(filter repository.AuctionFilter) ([]model.Auction, error) {
	auctions, err := s.directory.ListAuctions(filter)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list auctions: %w", err)
	}
	return auctions, nil
}

// validateAuction checks the admin-supplied bounds and window
func validateAuction(a model.Auction) error {
	if a.Title == "" {
		return fmt.Errorf("service: %w - missing title", auctionerrors.ErrInvalidAuctionParameters)
	}
	if !a.StartTime.Before(a.EndTime) {
		return fmt.Errorf("service: %w - start time must precede end time", auctionerrors.ErrInvalidAuctionParameters)
	}
	if a.TotalQuantity < 1 {
		return fmt.Errorf("service: %w - non-positive total quantity", auctionerrors.ErrInvalidAuctionParameters)
	}
	if a.MaxQuantityPerBidder < 1 || a.MaxQuantityPerBidder > a.TotalQuantity {
		return fmt.Errorf("service: %w - per-bidder quantity %d outside [1, %d]", auctionerrors.ErrInvalidAuctionParameters, a.MaxQuantityPerBidder, a.TotalQuantity)
	}
	if a.MinPrice.IsNegative() || a.MinIncrement.IsNegative() {
		return fmt.Errorf("service: %w - negative price bounds", auctionerrors.ErrInvalidAuctionParameters)
	}
	if a.MinPrice.GreaterThan(a.MaxPrice) {
		return fmt.Errorf("service: %w - min price exceeds max price", auctionerrors.ErrInvalidAuctionParameters)
	}
	return nil
}
