// internal/game/decision.go
package game

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jason-s-yu/modernart/internal/auction"
	"github.com/jason-s-yu/modernart/internal/models"
)

// DecisionKind says which move a Decision makes.
type DecisionKind string

const (
	DecisionPlayCard   DecisionKind = "play_card"
	DecisionSecondCard DecisionKind = "second_card"
	DecisionAuction    DecisionKind = "auction"
)

// Decision is a move chosen by a player, human or AI. CardIndex and Price
// apply to card plays; Price is the asking price of a Fixed Price card and is
// ignored for other cards. Action applies to auction moves.
type Decision struct {
	Kind      DecisionKind   `json:"kind" mapstructure:"kind"`
	CardIndex int            `json:"cardIndex,omitempty" mapstructure:"card_index"`
	Price     int            `json:"price,omitempty" mapstructure:"price"`
	Action    auction.Action `json:"action" mapstructure:"action"`
}

// Decider chooses the next move of one player from that player's view.
type Decider interface {
	Decide(ctx context.Context, view View) (Decision, error)
}

// DeciderFunc adapts a function to Decider.
type DeciderFunc func(ctx context.Context, view View) (Decision, error)

// Decide calls f.
func (f DeciderFunc) Decide(ctx context.Context, view View) (Decision, error) { return f(ctx, view) }

// Apply performs d on behalf of playerID.
func Apply(s GameState, playerID uuid.UUID, d Decision) (GameState, error) {
	seat := models.FindPlayer(s.Players, playerID)
	if seat < 0 {
		return s, models.Violationf("player %s is not in this game", playerID)
	}
	switch d.Kind {
	case DecisionPlayCard:
		hand := s.Players[seat].Hand
		if d.CardIndex >= 0 && d.CardIndex < len(hand) && hand[d.CardIndex].AuctionType == models.AuctionFixedPrice {
			return PlayCardAtPrice(s, seat, d.CardIndex, d.Price)
		}
		return PlayCard(s, seat, d.CardIndex)
	case DecisionSecondCard:
		return OfferSecondCard(s, seat, d.CardIndex, d.Price)
	case DecisionAuction:
		act := d.Action
		act.PlayerID = playerID
		return ApplyAuctionAction(s, act)
	}
	return s, models.Violationf("unknown decision %q", d.Kind)
}

// Pending returns the player whose decision the game needs next, or
// uuid.Nil when the next step is automatic (ending a round, dealing the next
// one) or the game is over. In an Open auction the first player still
// expected to pass or bid is returned.
func Pending(s GameState) uuid.UUID {
	switch p := s.Round.Phase.(type) {
	case AwaitingCardPlay:
		if ShouldRoundEnd(s) {
			return uuid.Nil
		}
		return s.Players[s.Round.AuctioneerIndex].ID
	case AuctionInProgress:
		if waiting := auction.Awaiting(p.Auction); len(waiting) > 0 {
			return waiting[0]
		}
	}
	return uuid.Nil
}

// Advance performs the next automatic step: ending a round that is over, or
// moving on from a sold round. It reports false when a player must decide
// first or the game is over.
func Advance(s GameState) (GameState, bool, error) {
	if s.Over {
		return s, false, nil
	}
	if ShouldRoundEnd(s) {
		next, err := EndRound(s)
		return next, err == nil, err
	}
	if s.Phase() == PhaseSellingToBank {
		next, err := NextRound(s)
		return next, err == nil, err
	}
	return s, false, nil
}

// Step advances s by one transition, asking the pending player's Decider
// when a decision is needed.
func Step(ctx context.Context, s GameState, deciders map[uuid.UUID]Decider) (GameState, error) {
	next, advanced, err := Advance(s)
	if err != nil || advanced {
		return next, err
	}
	id := Pending(s)
	if id == uuid.Nil {
		return s, models.Preconditionf("no player is due to act during %s", s.Phase())
	}
	decider, ok := deciders[id]
	if !ok {
		return s, fmt.Errorf("no decider for player %s", id)
	}
	d, err := decider.Decide(ctx, ViewFor(s, id))
	if err != nil {
		return s, fmt.Errorf("player %s: %w", id, err)
	}
	return Apply(s, id, d)
}

// Play runs the game to the end. It stops with ctx's error when ctx is
// cancelled between steps, and with the first rejected decision.
func Play(ctx context.Context, s GameState, deciders map[uuid.UUID]Decider) (GameState, error) {
	for !s.Over {
		if err := ctx.Err(); err != nil {
			return s, err
		}
		next, err := Step(ctx, s, deciders)
		if err != nil {
			return s, err
		}
		s = next
	}
	return s, nil
}
