package helpers

import (
	"time"

	"github.com/shopspring/decimal"

	model "auction-platform/internal/models"
)

// Request/Response DTOs
type SubmitBidRequest struct {
	Quantity int             `json:"quantity" binding:"required,gt=0"`
	Price    decimal.Decimal `json:"price"`
}

type CreateAuctionRequest struct {
	Title                string          `json:"title" binding:"required"`
	Description          string          `json:"description"`
	StartTime            time.Time       `json:"start_time" binding:"required"`
	EndTime              time.Time       `json:"end_time" binding:"required"`
	TotalQuantity        int             `json:"total_quantity" binding:"required,gt=0"`
	MaxQuantityPerBidder int             `json:"max_quantity_per_bidder" binding:"required,gt=0"`
	MinPrice             decimal.Decimal `json:"min_price"`
	MaxPrice             decimal.Decimal `json:"max_price"`
	MinIncrement         decimal.Decimal `json:"min_increment"`
	TermsURL             string          `json:"terms_url"`
}

type BidResponse struct {
	BidID     string `json:"bid_id"`
	AuctionID string `json:"auction_id"`
	UserID    string `json:"user_id"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price"`
	Timestamp string `json:"timestamp"`
}

// NewBidResponse converts a bid record to its wire form
func NewBidResponse(bid model.Bid) BidResponse {
	return BidResponse{
		BidID:     bid.BidID,
		AuctionID: bid.AuctionID,
		UserID:    bid.UserID,
		Quantity:  bid.Quantity,
		Price:     bid.Price.String(),
		Timestamp: bid.Timestamp.UTC().Format(time.RFC3339),
	}
}
