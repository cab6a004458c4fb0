package helpers

import (
	"errors"
	"fmt"
	"net/http"

	"auction-platform/internal/auctionerrors"
	model "auction-platform/internal/models"
	"auction-platform/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by the identity middleware.
const (
	ContextUserID = "user_id"
	ContextRole   = "user_role"
)

// CurrentUser extracts the authenticated identity attached by the
// middleware. An empty UserID means the request is unauthenticated.
func CurrentUser(c *gin.Context) model.User {
	user := model.User{Role: model.RoleBidder}
	if v, ok := c.Get(ContextUserID); ok {
		user.UserID, _ = v.(string)
	}
	if v, ok := c.Get(ContextRole); ok {
		if role, ok := v.(model.Role); ok && role != "" {
			user.Role = role
		}
	}
	return user
}

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, auctionerrors.ErrUnauthorized):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, auctionerrors.ErrRateLimited):
		return http.StatusTooManyRequests, "too many bids, please wait"
	case errors.Is(err, auctionerrors.ErrAuctionNotFound):
		return http.StatusNotFound, "auction not found"
	case errors.Is(err, auctionerrors.ErrAuctionNotLive):
		return http.StatusBadRequest, "auction is not live"
	case errors.Is(err, auctionerrors.ErrInvalidBidParameters):
		return http.StatusBadRequest, "invalid bid parameters"
	case errors.Is(err, auctionerrors.ErrInvalidAuctionParameters):
		return http.StatusBadRequest, "invalid auction parameters"
	case errors.Is(err, auctionerrors.ErrAuctionNotCompleted):
		return http.StatusConflict, "auction results not available yet"
	case errors.Is(err, auctionerrors.ErrPersistence):
		return http.StatusServiceUnavailable, "storage unavailable"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
