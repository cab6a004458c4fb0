package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"

	"auction-platform/internal/allocation"
	bidding "auction-platform/internal/biddingService"
	model "auction-platform/internal/models"
	"auction-platform/internal/repository"
	"auction-platform/internal/room"
	"auction-platform/services/auction/helpers"
	"auction-platform/utils"
)

type AuctionServiceInterface interface {
	Create(user model.User, auction model.Auction) (model.Auction, error)
	Get(auctionID string) (model.Auction, error)
	List(filter repository.AuctionFilter) ([]model.Auction, error)
}

type BiddingServiceInterface interface {
	SubmitBid(ctx context.Context, auctionID, userID string, quantity int, price decimal.Decimal) (model.Bid, error)
	RoomState(ctx context.Context, auctionID, userID string) (bidding.RoomState, error)
}

type ResultsServiceInterface interface {
	Results(ctx context.Context, auctionID, userID string) (allocation.UserResults, error)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// origin enforcement belongs to the fronting proxy
		return true
	},
}

type AuctionHandler struct {
	auctions AuctionServiceInterface
	bidding  BiddingServiceInterface
	results  ResultsServiceInterface
	hub      *room.Hub
}

func NewAuctionHandler(auctions AuctionServiceInterface, biddingSvc BiddingServiceInterface, results ResultsServiceInterface, hub *room.Hub) *AuctionHandler {
	return &AuctionHandler{
		auctions: auctions,
		bidding:  biddingSvc,
		results:  results,
		hub:      hub,
	}
}

// SubmitBidHandler handles POST /auctions/:auction_id/bids
func (h *AuctionHandler) SubmitBidHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	user := helpers.CurrentUser(c)

	var req helpers.SubmitBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "SubmitBidHandler", err)
		return
	}

	bid, err := h.bidding.SubmitBid(c.Request.Context(), auctionID, user.UserID, req.Quantity, req.Price)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("SubmitBidHandler: failed to record bid", map[string]any{
			"handler":    "SubmitBidHandler",
			"auction_id": auctionID,
			"user_id":    user.UserID,
			"error":      err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.NewBidResponse(bid), "bid recorded successfully")
	helpers.LogSuccess("SubmitBidHandler", "bid recorded successfully", map[string]any{
		"bid_id":     bid.BidID,
		"auction_id": auctionID,
		"user_id":    user.UserID,
		"quantity":   bid.Quantity,
		"price":      bid.Price.String(),
	})
}

// RoomStateHandler handles GET /auctions/:auction_id/room
func (h *AuctionHandler) RoomStateHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	user := helpers.CurrentUser(c)

	state, err := h.bidding.RoomState(c.Request.Context(), auctionID, user.UserID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("RoomStateHandler: error retrieving room state", map[string]any{
			"auction_id": auctionID,
			"user_id":    user.UserID,
			"error":      err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, state, "room state retrieved successfully")
}

// ResultsHandler handles GET /auctions/:auction_id/results
func (h *AuctionHandler) ResultsHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	user := helpers.CurrentUser(c)

	results, err := h.results.Results(c.Request.Context(), auctionID, user.UserID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("ResultsHandler: error retrieving results", map[string]any{
			"auction_id": auctionID,
			"user_id":    user.UserID,
			"error":      err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, results, "results retrieved successfully")
}

// CreateAuctionHandler handles POST /auctions
func (h *AuctionHandler) CreateAuctionHandler(c *gin.Context) {
	user := helpers.CurrentUser(c)

	var req helpers.CreateAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateAuctionHandler", err)
		return
	}

	auction, err := h.auctions.Create(user, model.Auction{
		Title:                req.Title,
		Description:          req.Description,
		StartTime:            req.StartTime,
		EndTime:              req.EndTime,
		TotalQuantity:        req.TotalQuantity,
		MaxQuantityPerBidder: req.MaxQuantityPerBidder,
		MinPrice:             req.MinPrice,
		MaxPrice:             req.MaxPrice,
		MinIncrement:         req.MinIncrement,
		TermsURL:             req.TermsURL,
	})
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("CreateAuctionHandler: failed to create auction", map[string]any{
			"user_id": user.UserID,
			"error":   err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, auction, "auction created successfully")
	helpers.LogSuccess("CreateAuctionHandler", "auction created successfully", map[string]any{
		"auction_id": auction.ID,
		"user_id":    user.UserID,
	})
}

// GetAuctionHandler handles GET /auctions/:auction_id
func (h *AuctionHandler) GetAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")

	auction, err := h.auctions.Get(auctionID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		return
	}

	utils.JSONResponse(c, http.StatusOK, auction, "auction retrieved successfully")
}

// ListAuctionsHandler handles GET /auctions
func (h *AuctionHandler) ListAuctionsHandler(c *gin.Context) {
	filter := repository.AuctionFilter{
		Status:   model.AuctionStatus(c.Query("status")),
		SortBy:   c.DefaultQuery("sort_by", "start_time"),
		SortDesc: c.Query("sort_order") == "desc",
	}
	if v := c.Query("start_date"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			helpers.HandleBindError(c, "ListAuctionsHandler", fmt.Errorf("invalid start_date: %w", err))
			return
		}
		filter.StartAfter = &t
	}
	if v := c.Query("end_date"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			helpers.HandleBindError(c, "ListAuctionsHandler", fmt.Errorf("invalid end_date: %w", err))
			return
		}
		filter.EndBefore = &t
	}

	auctions, err := h.auctions.List(filter)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		return
	}
	if auctions == nil {
		auctions = []model.Auction{}
	}

	utils.JSONResponse(c, http.StatusOK, auctions, "auctions retrieved successfully")
}

// RoomChannelHandler handles GET /ws/auctions/:auction_id: it upgrades
// the connection, joins the auction room, and blocks reading until the
// client disconnects. A dropped connection leaves the room immediately.
func (h *AuctionHandler) RoomChannelHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	user := helpers.CurrentUser(c)
	if user.UserID == "" {
		utils.JSONError(c, http.StatusUnauthorized, fmt.Errorf("unauthorized: missing user identity"), "unauthorized")
		return
	}

	if _, err := h.auctions.Get(auctionID); err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.Warn("RoomChannelHandler: upgrade failed", map[string]any{
			"auction_id": auctionID,
			"user_id":    user.UserID,
			"error":      err.Error(),
		})
		return
	}

	client := room.NewClient(utils.GenerateID(), auctionID, user.UserID, conn)
	h.hub.Join(client)
	client.ReadLoop(h.hub)
}
