package auctionerrors

import "errors"

// Admission errors, checked in order by the bid admission gate
var (
	ErrUnauthorized         = errors.New("unauthorized")
	ErrRateLimited          = errors.New("rate limited")
	ErrAuctionNotFound      = errors.New("auction not found")
	ErrAuctionNotLive       = errors.New("auction is not live")
	ErrInvalidBidParameters = errors.New("invalid bid parameters")
)

// Query and lifecycle errors
var (
	ErrAuctionNotCompleted      = errors.New("auction not completed")
	ErrPersistence              = errors.New("persistence failure")
	ErrAllocationInconsistency  = errors.New("allocation inconsistency")
	ErrInvalidAuctionParameters = errors.New("invalid auction parameters")
)
