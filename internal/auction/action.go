package auction

import (
	"github.com/google/uuid"
	"github.com/jason-s-yu/modernart/internal/models"
)

// ActionKind names an auction move.
type ActionKind string

const (
	ActionBid       ActionKind = "bid"        // Open: raise; Hidden: seal a bid
	ActionPass      ActionKind = "pass"       // Open, Fixed Price, One Offer
	ActionBuy       ActionKind = "buy"        // Fixed Price
	ActionOffer     ActionKind = "offer"      // One Offer
	ActionAccept    ActionKind = "accept"     // One Offer, auctioneer only
	ActionOfferCard ActionKind = "offer_card" // Double: put up the second card
	ActionDecline   ActionKind = "decline"    // Double: refuse to add a card
)

// Action is a single move by one player. Amount carries a bid, offer, or the
// fixed price of an offered second card. Card is only used by ActionOfferCard.
type Action struct {
	Kind     ActionKind  `json:"kind"`
	PlayerID uuid.UUID   `json:"playerId"`
	Amount   int         `json:"amount,omitempty"`
	Card     models.Card `json:"card,omitempty"`
}

// Apply dispatches act to the live auction s and returns the next state.
func Apply(s State, players []models.Player, act Action) (State, error) {
	switch a := s.(type) {
	case OpenAuction:
		switch act.Kind {
		case ActionBid:
			return a.Bid(players, act.PlayerID, act.Amount)
		case ActionPass:
			return a.Pass(act.PlayerID)
		}
	case HiddenAuction:
		if act.Kind == ActionBid {
			return a.SubmitBid(players, act.PlayerID, act.Amount)
		}
	case FixedPriceAuction:
		switch act.Kind {
		case ActionBuy:
			return a.Buy(players, act.PlayerID)
		case ActionPass:
			return a.Pass(act.PlayerID)
		}
	case OneOfferAuction:
		switch act.Kind {
		case ActionOffer:
			return a.Offer(players, act.PlayerID, act.Amount)
		case ActionPass:
			return a.Pass(act.PlayerID)
		case ActionAccept:
			return a.Accept(act.PlayerID)
		}
	case DoubleAuction:
		if a.Nested != nil {
			next, err := Apply(a.Nested, players, act)
			if err != nil {
				return a, err
			}
			return a.withNested(next), nil
		}
		switch act.Kind {
		case ActionOfferCard:
			return a.OfferSecondCard(players, act.PlayerID, act.Card, act.Amount)
		case ActionDecline:
			return a.Decline(act.PlayerID)
		}
	default:
		return s, models.Preconditionf("unknown auction state %T", s)
	}
	return s, models.Violationf("action %q is not valid in a %s auction", act.Kind, s.Kind())
}

// Awaiting lists the players the auction is waiting on. Open auctions list
// everyone whose pass is still needed; any of them may act.
func Awaiting(s State) []uuid.UUID {
	switch a := s.(type) {
	case OpenAuction:
		return a.awaiting()
	case HiddenAuction:
		return a.awaiting()
	case FixedPriceAuction:
		return a.awaiting()
	case OneOfferAuction:
		return a.awaiting()
	case DoubleAuction:
		return a.awaiting()
	}
	return nil
}

// ValidActions answers which moves playerID may make right now. Amount
// limits are not checked beyond whether any legal amount exists.
func ValidActions(s State, players []models.Player, playerID uuid.UUID) []ActionKind {
	if s.Done() {
		return nil
	}
	money, err := moneyOf(players, playerID)
	if err != nil {
		return nil
	}
	switch a := s.(type) {
	case OpenAuction:
		var out []ActionKind
		if playerID != a.HighBidderID && money > a.HighBid {
			out = append(out, ActionBid)
		}
		if playerID != a.HighBidderID && !a.hasPassed(playerID) {
			out = append(out, ActionPass)
		}
		return out
	case HiddenAuction:
		if a.seated(playerID) && !a.Submitted(playerID) {
			return []ActionKind{ActionBid}
		}
	case FixedPriceAuction:
		if a.Current() == playerID {
			if money >= a.Price {
				return []ActionKind{ActionBuy, ActionPass}
			}
			return []ActionKind{ActionPass}
		}
	case OneOfferAuction:
		if a.Current() != playerID {
			return nil
		}
		var out []ActionKind
		if money > a.HighOffer {
			out = append(out, ActionOffer)
		}
		out = append(out, ActionPass)
		if playerID == a.AuctioneerID {
			out = append(out, ActionAccept)
		}
		return out
	case DoubleAuction:
		if a.Nested != nil {
			return ValidActions(a.Nested, players, playerID)
		}
		if a.Current() != playerID {
			return nil
		}
		for _, c := range players[models.FindPlayer(players, playerID)].Hand {
			if a.Eligible(c) {
				return []ActionKind{ActionOfferCard, ActionDecline}
			}
		}
		return []ActionKind{ActionDecline}
	}
	return nil
}
