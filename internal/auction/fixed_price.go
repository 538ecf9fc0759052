package auction

import (
	"github.com/google/uuid"
	"github.com/jason-s-yu/modernart/internal/models"
)

// FixedPriceAuction offers the card at a price set by the auctioneer. The
// other players, clockwise from the auctioneer's left, each buy or pass once.
// If all pass the auctioneer must buy it from the bank at that price.
type FixedPriceAuction struct {
	base
	Price   int
	Order   []uuid.UUID
	Turn    int
	BuyerID uuid.UUID
}

// NewFixedPrice starts a fixed-price auction. The auctioneer must be able to
// pay price themselves.
func NewFixedPrice(card models.Card, auctioneer uuid.UUID, players []models.Player, price int) (FixedPriceAuction, error) {
	b, err := newBase(card, auctioneer, players)
	if err != nil {
		return FixedPriceAuction{}, err
	}
	if err := checkAffordable(players, auctioneer, price); err != nil {
		return FixedPriceAuction{}, err
	}
	order := clockwiseAfter(b.Seats, auctioneer)
	return FixedPriceAuction{base: b, Price: price, Order: order[:len(order)-1]}, nil
}

func (a FixedPriceAuction) Kind() models.AuctionType { return models.AuctionFixedPrice }
func (a FixedPriceAuction) Cards() []models.Card     { return []models.Card{a.Lot} }
func (a FixedPriceAuction) sealed()                  {}

// Done reports whether someone bought the card or everyone passed.
func (a FixedPriceAuction) Done() bool {
	return a.BuyerID != uuid.Nil || a.Turn >= len(a.Order)
}

// Current is the player due to act, or uuid.Nil.
func (a FixedPriceAuction) Current() uuid.UUID {
	if a.Done() {
		return uuid.Nil
	}
	return a.Order[a.Turn]
}

// Buy purchases the card at the fixed price, ending the auction.
func (a FixedPriceAuction) Buy(players []models.Player, playerID uuid.UUID) (FixedPriceAuction, error) {
	if err := a.checkActive(); err != nil {
		return a, err
	}
	if err := turnCheck(a.Order, a.Turn, playerID); err != nil {
		return a, err
	}
	if err := checkAffordable(players, playerID, a.Price); err != nil {
		return a, err
	}
	a.BuyerID = playerID
	a.Active = false
	return a, nil
}

// Pass declines the card and hands the turn on.
func (a FixedPriceAuction) Pass(playerID uuid.UUID) (FixedPriceAuction, error) {
	if err := a.checkActive(); err != nil {
		return a, err
	}
	if err := turnCheck(a.Order, a.Turn, playerID); err != nil {
		return a, err
	}
	a.Turn++
	a.Active = !a.Done()
	return a, nil
}

func (a FixedPriceAuction) awaiting() []uuid.UUID {
	if cur := a.Current(); cur != uuid.Nil {
		return []uuid.UUID{cur}
	}
	return nil
}

func (a FixedPriceAuction) result() Result {
	winner := a.BuyerID
	if winner == uuid.Nil {
		winner = a.AuctioneerID
	}
	return Result{
		Kind:         models.AuctionFixedPrice,
		WinnerID:     winner,
		AuctioneerID: a.AuctioneerID,
		Price:        a.Price,
		Cards:        []models.Card{a.Lot},
	}
}
