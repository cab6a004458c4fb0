package room

import model "auction-platform/internal/models"

// Event is a server-pushed message to every subscriber of an auction room.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// MemberCountEvent reports the number of distinct users present in a room
func MemberCountEvent(count int) Event {
	return Event{Type: "memberCount", Data: count}
}

// CompetitivenessEvent pushes the latest standing signal for an auction
func CompetitivenessEvent(level model.CompetitivenessLevel) Event {
	return Event{Type: "competitiveness", Data: level}
}

// AuctionCompleteEvent announces that allocation has run
func AuctionCompleteEvent() Event {
	return Event{Type: "auctionComplete"}
}
