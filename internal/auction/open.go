package auction

import (
	"github.com/google/uuid"
	"github.com/jason-s-yu/modernart/internal/models"
)

// Bid is one accepted bid.
type Bid struct {
	PlayerID uuid.UUID `json:"playerId"`
	Amount   int       `json:"amount"`
}

// OpenAuction is an ascending auction with no turn order. It ends once every
// player but the high bidder (or everyone but one, with no bid) has passed
// since the last bid.
type OpenAuction struct {
	base
	HighBid      int
	HighBidderID uuid.UUID
	// Passers are the players who passed since the last bid.
	Passers []uuid.UUID
	History []Bid
}

// NewOpen starts an open auction for card.
func NewOpen(card models.Card, auctioneer uuid.UUID, players []models.Player) (OpenAuction, error) {
	b, err := newBase(card, auctioneer, players)
	if err != nil {
		return OpenAuction{}, err
	}
	return OpenAuction{base: b}, nil
}

func (a OpenAuction) Kind() models.AuctionType { return models.AuctionOpen }
func (a OpenAuction) Cards() []models.Card     { return []models.Card{a.Lot} }
func (a OpenAuction) sealed()                  {}

// Done reports whether enough consecutive passes accumulated.
func (a OpenAuction) Done() bool {
	return len(a.Passers) >= len(a.Seats)-1
}

// Bid raises the high bid. Any seated player other than the standing high
// bidder may bid at any time as long as the amount is strictly above the
// current high bid and within their money.
func (a OpenAuction) Bid(players []models.Player, playerID uuid.UUID, amount int) (OpenAuction, error) {
	if err := a.checkActive(); err != nil {
		return a, err
	}
	if !a.seated(playerID) {
		return a, models.Violationf("player %s is not in this auction", playerID)
	}
	if playerID == a.HighBidderID {
		return a, models.Violationf("player %s already holds the high bid", playerID)
	}
	if amount <= a.HighBid {
		return a, models.Violationf("bid %d must exceed the high bid %d", amount, a.HighBid)
	}
	if err := checkAffordable(players, playerID, amount); err != nil {
		return a, err
	}
	a.HighBid = amount
	a.HighBidderID = playerID
	a.Passers = nil
	a.History = append(append([]Bid(nil), a.History...), Bid{PlayerID: playerID, Amount: amount})
	return a, nil
}

// Pass records that playerID will not bid above the current high bid.
func (a OpenAuction) Pass(playerID uuid.UUID) (OpenAuction, error) {
	if err := a.checkActive(); err != nil {
		return a, err
	}
	if !a.seated(playerID) {
		return a, models.Violationf("player %s is not in this auction", playerID)
	}
	if playerID == a.HighBidderID {
		return a, models.Violationf("player %s holds the high bid and cannot pass", playerID)
	}
	if a.hasPassed(playerID) {
		return a, models.Violationf("player %s already passed since the last bid", playerID)
	}
	a.Passers = append(append([]uuid.UUID(nil), a.Passers...), playerID)
	a.Active = !a.Done()
	return a, nil
}

func (a OpenAuction) hasPassed(id uuid.UUID) bool {
	for _, p := range a.Passers {
		if p == id {
			return true
		}
	}
	return false
}

// awaiting lists the players whose pass is still needed to close the auction.
func (a OpenAuction) awaiting() []uuid.UUID {
	if !a.Active {
		return nil
	}
	var out []uuid.UUID
	for _, s := range a.Seats {
		if s != a.HighBidderID && !a.hasPassed(s) {
			out = append(out, s)
		}
	}
	return out
}

func (a OpenAuction) result() Result {
	return settle(models.AuctionOpen, a.Lot, a.AuctioneerID, a.HighBidderID, a.HighBid)
}
