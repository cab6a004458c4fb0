package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuctionStatus is the lifecycle state of an auction. Transitions are
// monotonic: UPCOMING -> LIVE -> COMPLETED, never backwards.
type AuctionStatus string

const (
	StatusUpcoming  AuctionStatus = "UPCOMING"
	StatusLive      AuctionStatus = "LIVE"
	StatusCompleted AuctionStatus = "COMPLETED"
)

// CompetitivenessLevel is the coarse standing signal reported to bidders.
type CompetitivenessLevel string

const (
	CompetitivenessLow    CompetitivenessLevel = "LOW"
	CompetitivenessMedium CompetitivenessLevel = "MEDIUM"
	CompetitivenessHigh   CompetitivenessLevel = "HIGH"
)

// Role identifies what an authenticated user is allowed to do. Identity
// itself is issued by an external collaborator; the core only consumes it.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleBidder Role = "BIDDER"
)

// User is the opaque authenticated identity attached to each request.
type User struct {
	UserID string `json:"user_id"`
	Role   Role   `json:"role"`
}

// Auction is a sealed-style multi-unit auction record. Created by the
// admin workflow; only the lifecycle scheduler mutates Status afterwards.
type Auction struct {
	ID                   string          `json:"id"`
	Title                string          `json:"title"`
	Description          string          `json:"description"`
	StartTime            time.Time       `json:"start_time"`
	EndTime              time.Time       `json:"end_time"`
	Status               AuctionStatus   `json:"status"`
	TotalQuantity        int             `json:"total_quantity"`
	MaxQuantityPerBidder int             `json:"max_quantity_per_bidder"`
	MinPrice             decimal.Decimal `json:"min_price"`
	MaxPrice             decimal.Decimal `json:"max_price"`
	MinIncrement         decimal.Decimal `json:"min_increment"`
	TermsURL             string          `json:"terms_url,omitempty"`
	CreatedAt            time.Time       `json:"created_at"`
}

// Bid is a single (quantity, price) offer. Immutable once appended to the
// ledger; a user's newer bids never supersede older ones.
type Bid struct {
	BidID     string          `json:"bid_id"`
	AuctionID string          `json:"auction_id"`
	UserID    string          `json:"user_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Timestamp time.Time       `json:"timestamp"`
}

// AllocationLine is one winning bid's share of the allocation.
type AllocationLine struct {
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// AllocationResult is the final outcome for one user in one auction,
// keyed by (AuctionID, UserID). A user with several winning bids gets one
// result with itemized lines.
type AllocationResult struct {
	AuctionID   string           `json:"auction_id"`
	UserID      string           `json:"user_id"`
	Quantity    int              `json:"quantity"`
	Lines       []AllocationLine `json:"lines"`
	TotalAmount decimal.Decimal  `json:"total_amount"`
}

// Price returns the representative price and true when exactly one bid
// won; multi-line results have no single price and return false.
func (r AllocationResult) Price() (decimal.Decimal, bool) {
	if len(r.Lines) == 1 {
		return r.Lines[0].Price, true
	}
	return decimal.Zero, false
}

// AllocationSummary aggregates a completed auction's outcome.
type AllocationSummary struct {
	TotalBids              int             `json:"total_bids"`
	TotalQuantityAllocated int             `json:"total_quantity_allocated"`
	AveragePrice           decimal.Decimal `json:"average_price"`
	MinWinningPrice        decimal.Decimal `json:"min_winning_price"`
	MaxWinningPrice        decimal.Decimal `json:"max_winning_price"`
}
