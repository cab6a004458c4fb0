package bidding

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"auction-platform/internal/auctionerrors"
	model "auction-platform/internal/models"
	"auction-platform/internal/ratelimit"
	"auction-platform/internal/repository"
	"auction-platform/internal/room"
)

// fakeRooms records published events and reports a fixed presence count
type fakeRooms struct {
	mu      sync.Mutex
	events  []room.Event
	bidders int
}

func (f *fakeRooms) Publish(_ string, event room.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
}

func (f *fakeRooms) ActiveBidders(string) int { return f.bidders }

func (f *fakeRooms) published() []room.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]room.Event(nil), f.events...)
}

func liveAuction() model.Auction {
	now := time.Now().UTC()
	return model.Auction{
		ID:                   "a1",
		Status:               model.StatusLive,
		StartTime:            now.Add(-time.Hour),
		EndTime:              now.Add(time.Hour),
		TotalQuantity:        100,
		MaxQuantityPerBidder: 60,
		MinPrice:             decimal.NewFromInt(5),
		MaxPrice:             decimal.NewFromInt(15),
		MinIncrement:         decimal.NewFromInt(1),
	}
}

// Tests SubmitBid
func TestService_SubmitBid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDir := repository.NewMockAuctionDirectory(ctrl)
	rooms := &fakeRooms{}
	service := NewService(mockDir, ratelimit.NewLimiter(ratelimit.NewMemoryStore()), rooms)

	auction := liveAuction()
	upcoming := auction
	upcoming.Status = model.StatusUpcoming

	// Table-driven test cases
	tests := []struct {
		name          string
		userID        string
		quantity      int
		price         decimal.Decimal
		mockSetup     func()
		expectedError error
	}{
		{
			name:     "valid_first_bid",
			userID:   "user1",
			quantity: 30,
			price:    decimal.NewFromInt(10),
			mockSetup: func() {
				mockDir.EXPECT().GetAuction("a1").Return(auction, nil)
				mockDir.EXPECT().AppendBid(gomock.Any()).Return(nil)
				// competitiveness snapshot after the append
				mockDir.EXPECT().GetAuction("a1").Return(auction, nil)
				mockDir.EXPECT().BidsByAuction("a1").Return(nil, nil)
			},
		},
		{
			name:          "empty_user_id",
			userID:        "",
			quantity:      30,
			price:         decimal.NewFromInt(10),
			mockSetup:     func() {},
			expectedError: auctionerrors.ErrUnauthorized,
		},
		{
			name:     "auction_not_found",
			userID:   "user2",
			quantity: 30,
			price:    decimal.NewFromInt(10),
			mockSetup: func() {
				mockDir.EXPECT().GetAuction("a1").Return(model.Auction{}, auctionerrors.ErrAuctionNotFound)
			},
			expectedError: auctionerrors.ErrAuctionNotFound,
		},
		{
			name:     "auction_not_live",
			userID:   "user3",
			quantity: 30,
			price:    decimal.NewFromInt(10),
			mockSetup: func() {
				mockDir.EXPECT().GetAuction("a1").Return(upcoming, nil)
			},
			expectedError: auctionerrors.ErrAuctionNotLive,
		},
		{
			name:     "zero_quantity",
			userID:   "user4",
			quantity: 0,
			price:    decimal.NewFromInt(10),
			mockSetup: func() {
				mockDir.EXPECT().GetAuction("a1").Return(auction, nil)
			},
			expectedError: auctionerrors.ErrInvalidBidParameters,
		},
		{
			name:     "quantity_above_per_bidder_cap",
			userID:   "user5",
			quantity: 61,
			price:    decimal.NewFromInt(10),
			mockSetup: func() {
				mockDir.EXPECT().GetAuction("a1").Return(auction, nil)
			},
			expectedError: auctionerrors.ErrInvalidBidParameters,
		},
		{
			name:     "price_below_min",
			userID:   "user6",
			quantity: 30,
			price:    decimal.NewFromInt(4),
			mockSetup: func() {
				mockDir.EXPECT().GetAuction("a1").Return(auction, nil)
			},
			expectedError: auctionerrors.ErrInvalidBidParameters,
		},
		{
			name:     "price_above_max",
			userID:   "user7",
			quantity: 30,
			price:    decimal.NewFromInt(16),
			mockSetup: func() {
				mockDir.EXPECT().GetAuction("a1").Return(auction, nil)
			},
			expectedError: auctionerrors.ErrInvalidBidParameters,
		},
		{
			name:     "ledger_append_fails",
			userID:   "user8",
			quantity: 30,
			price:    decimal.NewFromInt(10),
			mockSetup: func() {
				mockDir.EXPECT().GetAuction("a1").Return(auction, nil)
				mockDir.EXPECT().AppendBid(gomock.Any()).Return(errors.New("store unavailable"))
			},
			expectedError: nil, // wrapped store error, no sentinel to match
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.mockSetup()

			bid, err := service.SubmitBid(context.Background(), "a1", tc.userID, tc.quantity, tc.price)

			if tc.name == "valid_first_bid" {
				require.NoError(t, err)
				require.NotEmpty(t, bid.BidID)
				require.Equal(t, "a1", bid.AuctionID)
				require.Equal(t, tc.userID, bid.UserID)
				require.Equal(t, tc.quantity, bid.Quantity)
				require.True(t, bid.Price.Equal(tc.price))
				require.False(t, bid.Timestamp.IsZero())
				return
			}

			require.Error(t, err)
			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
			}
		})
	}
}

// Test that an admitted bid triggers a competitiveness broadcast
func TestService_SubmitBid_Broadcasts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDir := repository.NewMockAuctionDirectory(ctrl)
	rooms := &fakeRooms{}
	service := NewService(mockDir, ratelimit.NewLimiter(ratelimit.NewMemoryStore()), rooms)

	auction := liveAuction()
	mockDir.EXPECT().GetAuction("a1").Return(auction, nil).Times(2)
	mockDir.EXPECT().AppendBid(gomock.Any()).Return(nil)
	mockDir.EXPECT().BidsByAuction("a1").Return(nil, nil)

	_, err := service.SubmitBid(context.Background(), "a1", "user1", 10, decimal.NewFromInt(10))
	require.NoError(t, err)

	events := rooms.published()
	require.Len(t, events, 1)
	require.Equal(t, "competitiveness", events[0].Type)
	require.Equal(t, model.CompetitivenessLow, events[0].Data, "demand below supply reports LOW")
}

// Test the rate limiter precondition: one admission per user per second
func TestService_SubmitBid_RateLimited(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDir := repository.NewMockAuctionDirectory(ctrl)
	rooms := &fakeRooms{}
	service := NewService(mockDir, ratelimit.NewLimiter(ratelimit.NewMemoryStore()), rooms)

	auction := liveAuction()
	mockDir.EXPECT().GetAuction("a1").Return(auction, nil).Times(2)
	mockDir.EXPECT().AppendBid(gomock.Any()).Return(nil)
	mockDir.EXPECT().BidsByAuction("a1").Return(nil, nil)

	_, err := service.SubmitBid(context.Background(), "a1", "user1", 10, decimal.NewFromInt(10))
	require.NoError(t, err)

	// the second rapid submission never reaches the directory
	_, err = service.SubmitBid(context.Background(), "a1", "user1", 10, decimal.NewFromInt(10))
	require.ErrorIs(t, err, auctionerrors.ErrRateLimited)

	// an unrelated user is unaffected
	mockDir.EXPECT().GetAuction("a1").Return(auction, nil).Times(2)
	mockDir.EXPECT().AppendBid(gomock.Any()).Return(nil)
	mockDir.EXPECT().BidsByAuction("a1").Return(nil, nil)
	_, err = service.SubmitBid(context.Background(), "a1", "user2", 10, decimal.NewFromInt(10))
	require.NoError(t, err)
}

// Tests RoomState
func TestService_RoomState(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDir := repository.NewMockAuctionDirectory(ctrl)
	rooms := &fakeRooms{bidders: 7}
	service := NewService(mockDir, ratelimit.NewLimiter(ratelimit.NewMemoryStore()), rooms)

	now := time.Now().UTC()
	auction := liveAuction()

	t.Run("no_bids_reports_low", func(t *testing.T) {
		mockDir.EXPECT().BidsByUser("a1", "user1").Return(nil, nil)

		state, err := service.RoomState(context.Background(), "a1", "user1")
		require.NoError(t, err)
		require.Empty(t, state.MyBids)
		require.Equal(t, model.CompetitivenessLow, state.Competitiveness)
		require.Equal(t, 7, state.ActiveBidders)
	})

	t.Run("latest_bid_drives_estimate", func(t *testing.T) {
		myBids := []model.Bid{
			{BidID: "bid2", AuctionID: "a1", UserID: "user1", Quantity: 10, Price: decimal.NewFromInt(9), Timestamp: now},
			{BidID: "bid1", AuctionID: "a1", UserID: "user1", Quantity: 10, Price: decimal.NewFromInt(6), Timestamp: now.Add(-time.Minute)},
		}
		// supply of 100 is exhausted at the cutoff bid priced 8
		ledger := []model.Bid{
			{BidID: "bid3", AuctionID: "a1", UserID: "user2", Quantity: 60, Price: decimal.NewFromInt(10), Timestamp: now},
			{BidID: "bid4", AuctionID: "a1", UserID: "user3", Quantity: 60, Price: decimal.NewFromInt(8), Timestamp: now},
		}

		mockDir.EXPECT().BidsByUser("a1", "user1").Return(myBids, nil)
		mockDir.EXPECT().GetAuction("a1").Return(auction, nil)
		mockDir.EXPECT().BidsByAuction("a1").Return(ledger, nil)

		state, err := service.RoomState(context.Background(), "a1", "user1")
		require.NoError(t, err)
		require.Len(t, state.MyBids, 2)
		require.Equal(t, "bid2", state.MyBids[0].BidID)
		require.Equal(t, model.CompetitivenessHigh, state.Competitiveness, "latest bid at 9 clears the cutoff at 8")
	})

	t.Run("missing_identity", func(t *testing.T) {
		_, err := service.RoomState(context.Background(), "a1", "")
		require.ErrorIs(t, err, auctionerrors.ErrUnauthorized)
	})
}
