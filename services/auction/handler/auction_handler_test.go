package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"auction-platform/internal/allocation"
	"auction-platform/internal/auctionerrors"
	model "auction-platform/internal/models"
	"auction-platform/services/auction/helpers"
)

// newTestRouter wires a gin router with an inline identity middleware
// mirroring the one in internal/server.
func newTestRouter(h *AuctionHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(helpers.ContextUserID, c.GetHeader("X-User-ID"))
		c.Set(helpers.ContextRole, model.Role(c.GetHeader("X-User-Role")))
		c.Next()
	})
	router.POST("/auctions/:auction_id/bids", h.SubmitBidHandler)
	router.GET("/auctions/:auction_id/results", h.ResultsHandler)
	return router
}

func doRequest(t *testing.T, router *gin.Engine, method, url, userID string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody []byte
	switch v := body.(type) {
	case nil:
	case string:
		reqBody = []byte(v)
	default:
		b, err := json.Marshal(v)
		require.NoError(t, err)
		reqBody = b
	}

	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// Test SubmitBidHandler
func TestSubmitBidHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockBidding := NewMockBiddingServiceInterface(ctrl)
	h := NewAuctionHandler(nil, mockBidding, nil, nil)
	router := newTestRouter(h)

	now := time.Now().UTC()

	tests := []struct {
		name           string
		userID         string
		requestBody    any
		mockSetup      func()
		expectedStatus int
	}{
		{
			name:        "success_valid_bid",
			userID:      "user1",
			requestBody: helpers.SubmitBidRequest{Quantity: 30, Price: decimal.NewFromInt(10)},
			mockSetup: func() {
				mockBidding.EXPECT().
					SubmitBid(gomock.Any(), "a1", "user1", 30, gomock.Any()).
					Return(model.Bid{
						BidID:     uuid.NewString(),
						AuctionID: "a1",
						UserID:    "user1",
						Quantity:  30,
						Price:     decimal.NewFromInt(10),
						Timestamp: now,
					}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "invalid_json",
			userID:         "user1",
			requestBody:    `{invalid json}`,
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing_quantity",
			userID:         "user1",
			requestBody:    map[string]any{"price": "10"},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "unauthenticated",
			userID:      "",
			requestBody: helpers.SubmitBidRequest{Quantity: 30, Price: decimal.NewFromInt(10)},
			mockSetup: func() {
				mockBidding.EXPECT().
					SubmitBid(gomock.Any(), "a1", "", 30, gomock.Any()).
					Return(model.Bid{}, fmt.Errorf("service: %w", auctionerrors.ErrUnauthorized))
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:        "rate_limited",
			userID:      "user1",
			requestBody: helpers.SubmitBidRequest{Quantity: 30, Price: decimal.NewFromInt(10)},
			mockSetup: func() {
				mockBidding.EXPECT().
					SubmitBid(gomock.Any(), "a1", "user1", 30, gomock.Any()).
					Return(model.Bid{}, fmt.Errorf("service: %w", auctionerrors.ErrRateLimited))
			},
			expectedStatus: http.StatusTooManyRequests,
		},
		{
			name:        "auction_not_live",
			userID:      "user1",
			requestBody: helpers.SubmitBidRequest{Quantity: 30, Price: decimal.NewFromInt(10)},
			mockSetup: func() {
				mockBidding.EXPECT().
					SubmitBid(gomock.Any(), "a1", "user1", 30, gomock.Any()).
					Return(model.Bid{}, fmt.Errorf("service: %w", auctionerrors.ErrAuctionNotLive))
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "auction_not_found",
			userID:      "user1",
			requestBody: helpers.SubmitBidRequest{Quantity: 30, Price: decimal.NewFromInt(10)},
			mockSetup: func() {
				mockBidding.EXPECT().
					SubmitBid(gomock.Any(), "a1", "user1", 30, gomock.Any()).
					Return(model.Bid{}, fmt.Errorf("service: %w", auctionerrors.ErrAuctionNotFound))
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.mockSetup()

			w := doRequest(t, router, http.MethodPost, "/auctions/a1/bids", tc.userID, tc.requestBody)
			require.Equal(t, tc.expectedStatus, w.Code)

			if tc.expectedStatus == http.StatusCreated {
				var resp map[string]any
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				data := resp["data"].(map[string]any)
				require.Equal(t, "a1", data["auction_id"])
				require.Equal(t, "user1", data["user_id"])
				require.Equal(t, float64(30), data["quantity"])
				require.Equal(t, "10", data["price"])
			}
		})
	}
}

// Test ResultsHandler
func TestResultsHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockResults := NewMockResultsServiceInterface(ctrl)
	h := NewAuctionHandler(nil, nil, mockResults, nil)
	router := newTestRouter(h)

	t.Run("completed_auction", func(t *testing.T) {
		mockResults.EXPECT().
			Results(gomock.Any(), "a1", "user1").
			Return(allocation.UserResults{
				Won: true,
				Allocation: &model.AllocationResult{
					AuctionID:   "a1",
					UserID:      "user1",
					Quantity:    60,
					Lines:       []model.AllocationLine{{Quantity: 60, Price: decimal.NewFromInt(10)}},
					TotalAmount: decimal.NewFromInt(600),
				},
				Summary: model.AllocationSummary{TotalBids: 2, TotalQuantityAllocated: 100},
			}, nil)

		w := doRequest(t, router, http.MethodGet, "/auctions/a1/results", "user1", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		data := resp["data"].(map[string]any)
		require.Equal(t, true, data["won"])
	})

	t.Run("not_completed", func(t *testing.T) {
		mockResults.EXPECT().
			Results(gomock.Any(), "a1", "user1").
			Return(allocation.UserResults{}, fmt.Errorf("results: %w", auctionerrors.ErrAuctionNotCompleted))

		w := doRequest(t, router, http.MethodGet, "/auctions/a1/results", "user1", nil)
		require.Equal(t, http.StatusConflict, w.Code)
	})
}
