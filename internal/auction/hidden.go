package auction

import (
	"sort"

	"github.com/google/uuid"
	"github.com/jason-s-yu/modernart/internal/models"
)

// HiddenAuction is a sealed-bid auction. Every player, auctioneer included,
// submits exactly one bid. The last submission reveals the bids.
//
// Ties on the highest amount go to the auctioneer when they are among the
// tied bidders, otherwise to the tied bidder seated closest to the
// auctioneer's left.
type HiddenAuction struct {
	base
	// Sealed holds submissions in arrival order.
	Sealed []Bid
	// Ranking is empty until reveal, then holds every bid best first.
	Ranking  []Bid
	Revealed bool
}

// NewHidden starts a sealed-bid auction for card.
func NewHidden(card models.Card, auctioneer uuid.UUID, players []models.Player) (HiddenAuction, error) {
	b, err := newBase(card, auctioneer, players)
	if err != nil {
		return HiddenAuction{}, err
	}
	return HiddenAuction{base: b}, nil
}

func (a HiddenAuction) Kind() models.AuctionType { return models.AuctionHidden }
func (a HiddenAuction) Cards() []models.Card     { return []models.Card{a.Lot} }
func (a HiddenAuction) Done() bool               { return a.Revealed }
func (a HiddenAuction) sealed()                  {}

// Submitted reports whether playerID has already handed in a bid.
func (a HiddenAuction) Submitted(playerID uuid.UUID) bool {
	for _, b := range a.Sealed {
		if b.PlayerID == playerID {
			return true
		}
	}
	return false
}

// SubmitBid seals playerID's bid. Zero is a valid bid.
func (a HiddenAuction) SubmitBid(players []models.Player, playerID uuid.UUID, amount int) (HiddenAuction, error) {
	if err := a.checkActive(); err != nil {
		return a, err
	}
	if !a.seated(playerID) {
		return a, models.Violationf("player %s is not in this auction", playerID)
	}
	if a.Submitted(playerID) {
		return a, models.Violationf("player %s already submitted a bid", playerID)
	}
	if err := checkAffordable(players, playerID, amount); err != nil {
		return a, err
	}
	a.Sealed = append(append([]Bid(nil), a.Sealed...), Bid{PlayerID: playerID, Amount: amount})
	if len(a.Sealed) == len(a.Seats) {
		a = a.reveal()
	}
	return a, nil
}

func (a HiddenAuction) reveal() HiddenAuction {
	ranking := append([]Bid(nil), a.Sealed...)
	sort.SliceStable(ranking, func(i, j int) bool {
		if ranking[i].Amount != ranking[j].Amount {
			return ranking[i].Amount > ranking[j].Amount
		}
		// The auctioneer is at distance 0, so they win any tie they are part of.
		return seatDistance(a.Seats, a.AuctioneerID, ranking[i].PlayerID) <
			seatDistance(a.Seats, a.AuctioneerID, ranking[j].PlayerID)
	})
	a.Ranking = ranking
	a.Revealed = true
	a.Active = false
	return a
}

func (a HiddenAuction) awaiting() []uuid.UUID {
	if !a.Active {
		return nil
	}
	var out []uuid.UUID
	for _, s := range a.Seats {
		if !a.Submitted(s) {
			out = append(out, s)
		}
	}
	return out
}

func (a HiddenAuction) result() Result {
	top := a.Ranking[0]
	return Result{
		Kind:         models.AuctionHidden,
		WinnerID:     top.PlayerID,
		AuctioneerID: a.AuctioneerID,
		Price:        top.Amount,
		Cards:        []models.Card{a.Lot},
	}
}
