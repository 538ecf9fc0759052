package models

// GameAction captures a player's move as it arrives from a host layer,
// e.g. {"action_type": "auction_bid", "payload": {"amount": 12}}.
type GameAction struct {
	ActionType string                 `json:"action_type"`
	Payload    map[string]interface{} `json:"payload"`
}
