// internal/models/player.go
package models

import "github.com/google/uuid"

// Player is one seat at the table. Money never drops below zero.
type Player struct {
	ID                 uuid.UUID  `json:"id"`
	Name               string     `json:"name"`
	Money              int        `json:"money"`
	Hand               []Card     `json:"hand"`
	Purchases          []Painting `json:"purchases"`
	PurchasedThisRound []Painting `json:"purchasedThisRound"`
	IsAI               bool       `json:"isAI"`
}

// Clone returns a deep copy so callers can derive a new snapshot without
// touching the original.
func (p Player) Clone() Player {
	c := p
	c.Hand = append([]Card(nil), p.Hand...)
	c.Purchases = append([]Painting(nil), p.Purchases...)
	c.PurchasedThisRound = append([]Painting(nil), p.PurchasedThisRound...)
	return c
}

// PaintingCount is the number of paintings the player owns across rounds.
func (p Player) PaintingCount() int {
	return len(p.Purchases) + len(p.PurchasedThisRound)
}

// ClonePlayers deep-copies a player list.
func ClonePlayers(players []Player) []Player {
	out := make([]Player, len(players))
	for i, p := range players {
		out[i] = p.Clone()
	}
	return out
}

// FindPlayer returns the seat index of id, or -1.
func FindPlayer(players []Player, id uuid.UUID) int {
	for i, p := range players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// TotalMoney sums the money held by every player.
func TotalMoney(players []Player) int {
	total := 0
	for _, p := range players {
		total += p.Money
	}
	return total
}
