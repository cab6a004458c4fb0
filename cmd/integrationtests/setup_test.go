package integrationtests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"auction-platform/internal/allocation"
	auctions "auction-platform/internal/auctionService"
	bidding "auction-platform/internal/biddingService"
	model "auction-platform/internal/models"
	"auction-platform/internal/ratelimit"
	"auction-platform/internal/repository"
	"auction-platform/internal/room"
	"auction-platform/internal/scheduler"
	"auction-platform/internal/server"
)

// TestEnv bundles the wired application pieces so individual tests can
// drive the HTTP surface and the scheduler side by side.
type TestEnv struct {
	Router    *gin.Engine
	Directory *repository.MemoryDirectory
	Scheduler *scheduler.Scheduler
	Hub       *room.Hub
}

// SetupTestEnv wires the full stack against an in-memory directory and
// seeds it with the given auctions. The hub runs until the test ends.
func SetupTestEnv(t *testing.T, seed ...model.Auction) *TestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	directory := repository.NewMemoryDirectory()
	for _, auction := range seed {
		if err := directory.CreateAuction(auction); err != nil {
			t.Fatalf("failed to seed auction %s: %v", auction.ID, err)
		}
	}

	hub := room.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	limiter := ratelimit.NewLimiter(ratelimit.NewMemoryStore())
	engine := allocation.NewEngine(directory)
	auctionSvc := auctions.NewService(directory)
	biddingSvc := bidding.NewService(directory, limiter, hub)
	lifecycle := scheduler.NewScheduler(directory, engine, hub, time.Minute)

	return &TestEnv{
		Router:    server.SetupRouter(auctionSvc, biddingSvc, engine, hub),
		Directory: directory,
		Scheduler: lifecycle,
		Hub:       hub,
	}
}

// ExecuteRequest executes an HTTP request as the given user and returns
// the response recorder.
func ExecuteRequest(t *testing.T, router *gin.Engine, method, url string, user model.User, body []byte) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if user.UserID != "" {
		req.Header.Set("X-User-ID", user.UserID)
	}
	if user.Role != "" {
		req.Header.Set("X-User-Role", string(user.Role))
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// ExecuteRequestAndParse executes an HTTP request and parses the JSON
// envelope, returning the data payload for successful responses.
func ExecuteRequestAndParse(t *testing.T, router *gin.Engine, method, url string, user model.User, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	var reqBody []byte
	var err error

	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	default:
		reqBody, err = json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}

	w := ExecuteRequest(t, router, method, url, user, reqBody)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
		if w.Code >= 200 && w.Code < 300 {
			if data, ok := resp["data"].(map[string]any); ok {
				resp = data
			}
		}
	}
	return resp, w
}
