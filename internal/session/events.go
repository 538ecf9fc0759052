// internal/session/events.go
package session

import (
	"github.com/google/uuid"
	"github.com/jason-s-yu/modernart/internal/game"
)

// EventType names a broadcast event. Action records sent to the historian
// use the same names.
type EventType string

const (
	EventGameStart      EventType = "game_start"
	EventCardPlayed     EventType = "card_played"
	EventSecondCard     EventType = "second_card_offered"
	EventAuctionAction  EventType = "auction_action"
	EventAuctionSettled EventType = "auction_settled"
	EventRoundEnd       EventType = "round_end"
	EventRoundStart     EventType = "round_start"
	EventPlayerTurn     EventType = "player_turn"
	EventGameEnd        EventType = "game_end"
	EventPrivateSync    EventType = "private_sync_state"
	EventPrivateError   EventType = "private_action_error"
)

// EventUser identifies the acting player of an event.
type EventUser struct {
	ID uuid.UUID `json:"id"`
}

// Event is the payload handed to the broadcast hooks.
type Event struct {
	Type    EventType              `json:"type"`
	User    *EventUser             `json:"user,omitempty"`
	Payload map[string]interface{} `json:"payload,omitempty"`
	// State is set on private sync events only.
	State *game.View `json:"state,omitempty"`
}
