// internal/game/state.go
package game

import (
	"github.com/google/uuid"
	"github.com/jason-s-yu/modernart/internal/auction"
	"github.com/jason-s-yu/modernart/internal/config"
	"github.com/jason-s-yu/modernart/internal/deck"
	"github.com/jason-s-yu/modernart/internal/models"
	"github.com/jason-s-yu/modernart/internal/selling"
	"github.com/jason-s-yu/modernart/internal/valuation"
)

// PhaseKind names a round phase.
type PhaseKind string

const (
	PhaseAwaitingCardPlay PhaseKind = "awaiting_card_play"
	PhaseAuction          PhaseKind = "auction"
	PhaseRoundEnding      PhaseKind = "round_ending"
	PhaseSellingToBank    PhaseKind = "selling_to_bank"
	PhaseGameOver         PhaseKind = "game_over"
)

// Phase is the round's current step. The concrete types are
// AwaitingCardPlay, AuctionInProgress, RoundEnding, SellingToBank and GameOver.
type Phase interface {
	Kind() PhaseKind
	phase()
}

// AwaitingCardPlay waits for the current auctioneer to play a card.
type AwaitingCardPlay struct{}

// AuctionInProgress holds the one live auction of the round.
type AuctionInProgress struct {
	Auction auction.State
}

// RoundEnding holds the cards that ended the round. They are never
// auctioned and only count toward the ranking.
type RoundEnding struct {
	Trigger []models.Card
	// EndedBy is the seat of the player who ended the round.
	EndedBy int
}

// SellingToBank holds the finished round's ranking and the paintings sold.
type SellingToBank struct {
	Ranking valuation.Ranking
	Sales   []selling.Sale
}

// GameOver is terminal.
type GameOver struct {
	Winners []uuid.UUID
}

func (AwaitingCardPlay) Kind() PhaseKind  { return PhaseAwaitingCardPlay }
func (AuctionInProgress) Kind() PhaseKind { return PhaseAuction }
func (RoundEnding) Kind() PhaseKind       { return PhaseRoundEnding }
func (SellingToBank) Kind() PhaseKind     { return PhaseSellingToBank }
func (GameOver) Kind() PhaseKind          { return PhaseGameOver }

func (AwaitingCardPlay) phase()  {}
func (AuctionInProgress) phase() {}
func (RoundEnding) phase()       {}
func (SellingToBank) phase()     {}
func (GameOver) phase()          {}

// RoundState tracks the active round.
type RoundState struct {
	Number          int
	CardsPlayed     valuation.Counts
	AuctioneerIndex int
	Phase           Phase
}

// GameState is an immutable snapshot of a whole game. Functions in this
// package return new snapshots and never modify their input.
type GameState struct {
	ID      uuid.UUID
	Rules   config.Rules
	Players []models.Player
	Deck    deck.Deck
	Discard []models.Card
	Board   valuation.Board
	Round   RoundState

	// TotalCards is the number of cards the game started with.
	TotalCards int
	// LastResult is the most recently concluded auction, if any.
	LastResult *auction.Result
	Winners    []uuid.UUID
	Over       bool
}

// clone copies every slice the round controller may modify.
func (s GameState) clone() GameState {
	c := s
	c.Players = models.ClonePlayers(s.Players)
	c.Discard = append([]models.Card(nil), s.Discard...)
	c.Winners = append([]uuid.UUID(nil), s.Winners...)
	return c
}

// Phase returns the current phase kind.
func (s GameState) Phase() PhaseKind {
	if s.Round.Phase == nil {
		return PhaseAwaitingCardPlay
	}
	return s.Round.Phase.Kind()
}

// CurrentAuction returns the live auction, if any.
func (s GameState) CurrentAuction() (auction.State, bool) {
	if p, ok := s.Round.Phase.(AuctionInProgress); ok {
		return p.Auction, true
	}
	return nil, false
}

// CurrentPlayer is the auctioneer due to play a card, or uuid.Nil outside
// of the card-play phase.
func (s GameState) CurrentPlayer() uuid.UUID {
	if s.Phase() != PhaseAwaitingCardPlay || len(s.Players) == 0 {
		return uuid.Nil
	}
	return s.Players[s.Round.AuctioneerIndex].ID
}

// CountCards totals every card the game tracks: deck, discard, hands,
// purchases and purchases of this round, plus any card held by a live
// auction or by a round-ending phase. It equals TotalCards in every
// reachable state.
func CountCards(s GameState) int {
	n := s.Deck.Remaining() + len(s.Discard)
	for _, p := range s.Players {
		n += len(p.Hand) + len(p.Purchases) + len(p.PurchasedThisRound)
	}
	switch p := s.Round.Phase.(type) {
	case AuctionInProgress:
		n += len(p.Auction.Cards())
	case RoundEnding:
		n += len(p.Trigger)
	}
	return n
}
