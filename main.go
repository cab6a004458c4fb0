package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"auction-platform/internal/allocation"
	auctions "auction-platform/internal/auctionService"
	bidding "auction-platform/internal/biddingService"
	"auction-platform/internal/ratelimit"
	"auction-platform/internal/repository"
	"auction-platform/internal/room"
	"auction-platform/internal/scheduler"
	"auction-platform/internal/server"
	"auction-platform/utils"
)

func main() {
	directory := repository.NewMemoryDirectory()

	limiter := ratelimit.NewLimiter(newLimiterStore())
	hub := room.NewHub()
	engine := allocation.NewEngine(directory)

	auctionSvc := auctions.NewService(directory)
	biddingSvc := bidding.NewService(directory, limiter, hub)
	lifecycle := scheduler.NewScheduler(directory, engine, hub, tickInterval())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// the hub must be running before the router accepts connections
	go hub.Run(ctx)
	go lifecycle.Start(ctx)

	router := server.SetupRouter(auctionSvc, biddingSvc, engine, hub)

	port := getPort()
	fmt.Printf("Starting auction server on %s...\n", port)
	if err := router.Run(port); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start server: %v\n", err)
		os.Exit(1)
	}
}

// newLimiterStore selects the rate-limit backend: Redis when REDIS_ADDR
// is set (limits shared across replicas), process-local memory otherwise.
func newLimiterStore() ratelimit.Store {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return ratelimit.NewMemoryStore()
	}

	store, err := ratelimit.NewRedisStore(addr, os.Getenv("REDIS_PASSWORD"), 0)
	if err != nil {
		utils.Fatal("failed to connect rate-limit store", map[string]any{
			"addr":  addr,
			"error": err.Error(),
		})
	}
	return store
}

// tickInterval returns the scheduler interval from env or defaults to 10s
func tickInterval() time.Duration {
	if v := os.Getenv("TICK_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
		fmt.Fprintf(os.Stderr, "Invalid TICK_INTERVAL %q, using default\n", v)
	}
	return 10 * time.Second
}

// getPort returns the server port from env or defaults to ":8080"
func getPort() string {
	if p := os.Getenv("PORT"); p != "" {
		return fmt.Sprintf(":%s", p)
	}
	return ":8080"
}
