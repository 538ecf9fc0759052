package auction

import (
	"github.com/google/uuid"
	"github.com/jason-s-yu/modernart/internal/models"
)

// OneOfferAuction goes once around the table clockwise from the auctioneer's
// left, auctioneer last. Each player acts exactly once: offer more than the
// standing offer, or pass. The auctioneer then either outbids (buying from
// the bank) or accepts the standing offer; with no offer they keep the card
// for free.
type OneOfferAuction struct {
	base
	Order         []uuid.UUID
	Turn          int
	HighOffer     int
	HighOffererID uuid.UUID
}

// NewOneOffer starts a one-offer auction for card.
func NewOneOffer(card models.Card, auctioneer uuid.UUID, players []models.Player) (OneOfferAuction, error) {
	b, err := newBase(card, auctioneer, players)
	if err != nil {
		return OneOfferAuction{}, err
	}
	return OneOfferAuction{base: b, Order: clockwiseAfter(b.Seats, auctioneer)}, nil
}

func (a OneOfferAuction) Kind() models.AuctionType { return models.AuctionOneOffer }
func (a OneOfferAuction) Cards() []models.Card     { return []models.Card{a.Lot} }
func (a OneOfferAuction) Done() bool               { return a.Turn >= len(a.Order) }
func (a OneOfferAuction) sealed()                  {}

// Current is the player due to act, or uuid.Nil.
func (a OneOfferAuction) Current() uuid.UUID {
	if a.Done() {
		return uuid.Nil
	}
	return a.Order[a.Turn]
}

// Offer places playerID's single offer. It must beat the standing offer.
func (a OneOfferAuction) Offer(players []models.Player, playerID uuid.UUID, amount int) (OneOfferAuction, error) {
	if err := a.checkActive(); err != nil {
		return a, err
	}
	if err := turnCheck(a.Order, a.Turn, playerID); err != nil {
		return a, err
	}
	if amount <= a.HighOffer {
		return a, models.Violationf("offer %d must exceed the standing offer %d", amount, a.HighOffer)
	}
	if err := checkAffordable(players, playerID, amount); err != nil {
		return a, err
	}
	a.HighOffer = amount
	a.HighOffererID = playerID
	return a.advance(), nil
}

// Pass gives up playerID's single action. For the auctioneer this is the
// same as Accept.
func (a OneOfferAuction) Pass(playerID uuid.UUID) (OneOfferAuction, error) {
	if err := a.checkActive(); err != nil {
		return a, err
	}
	if err := turnCheck(a.Order, a.Turn, playerID); err != nil {
		return a, err
	}
	return a.advance(), nil
}

// Accept is the auctioneer's terminal decision to sell to the standing
// offer, or keep the card for free when nobody offered.
func (a OneOfferAuction) Accept(playerID uuid.UUID) (OneOfferAuction, error) {
	if playerID != a.AuctioneerID {
		return a, models.Violationf("only the auctioneer may accept an offer")
	}
	return a.Pass(playerID)
}

func (a OneOfferAuction) advance() OneOfferAuction {
	a.Turn++
	a.Active = !a.Done()
	return a
}

func (a OneOfferAuction) awaiting() []uuid.UUID {
	if cur := a.Current(); cur != uuid.Nil {
		return []uuid.UUID{cur}
	}
	return nil
}

func (a OneOfferAuction) result() Result {
	return settle(models.AuctionOneOffer, a.Lot, a.AuctioneerID, a.HighOffererID, a.HighOffer)
}
