package server

import (
	"auction-platform/internal/allocation"
	auctions "auction-platform/internal/auctionService"
	bidding "auction-platform/internal/biddingService"
	"auction-platform/internal/room"
	handler "auction-platform/services/auction/handler"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures all Gin routes for the application. The room hub
// is constructed by the caller and injected here, so it always exists
// before the first request handler runs.
func SetupRouter(auctionSvc *auctions.Service, biddingSvc *bidding.Service, engine *allocation.Engine, hub *room.Hub) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging
	router.Use(IdentityMiddleware)      // opaque identity from the external auth collaborator

	auctionHandler := handler.NewAuctionHandler(auctionSvc, biddingSvc, engine, hub)

	auctionRoutes := router.Group("/auctions")
	{
		auctionRoutes.POST("", auctionHandler.CreateAuctionHandler)
		auctionRoutes.GET("", auctionHandler.ListAuctionsHandler)
		auctionRoutes.GET("/:auction_id", auctionHandler.GetAuctionHandler)
		auctionRoutes.POST("/:auction_id/bids", auctionHandler.SubmitBidHandler)
		auctionRoutes.GET("/:auction_id/room", auctionHandler.RoomStateHandler)
		auctionRoutes.GET("/:auction_id/results", auctionHandler.ResultsHandler)
	}

	ws := router.Group("/ws")
	{
		ws.GET("/auctions/:auction_id", auctionHandler.RoomChannelHandler)
	}

	return router
}
