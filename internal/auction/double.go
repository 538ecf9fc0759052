package auction

import (
	"github.com/google/uuid"
	"github.com/jason-s-yu/modernart/internal/models"
)

// DoubleAuction sells a Double card together with a second card of the same
// artist. Starting with the original auctioneer and going clockwise, each
// player may offer the second card or decline. The first player to offer
// becomes the current auctioneer and a nested auction of the second card's
// type runs; its winner takes both cards and pays the current auctioneer.
// If everyone declines, the original auctioneer keeps the Double card for free.
type DoubleAuction struct {
	base
	CurrentAuctioneerID uuid.UUID
	Order               []uuid.UUID
	Turn                int
	SecondCard          *models.Card
	Nested              State
}

// NewDouble starts a double auction for card, which must be a Double card.
func NewDouble(card models.Card, auctioneer uuid.UUID, players []models.Player) (DoubleAuction, error) {
	if card.AuctionType != models.AuctionDouble {
		return DoubleAuction{}, models.Violationf("card %s is not a double card", card)
	}
	b, err := newBase(card, auctioneer, players)
	if err != nil {
		return DoubleAuction{}, err
	}
	after := clockwiseAfter(b.Seats, auctioneer)
	order := append([]uuid.UUID{auctioneer}, after[:len(after)-1]...)
	return DoubleAuction{base: b, CurrentAuctioneerID: auctioneer, Order: order}, nil
}

func (a DoubleAuction) sealed() {}

// Kind is AuctionDouble until a second card is offered, then that card's type.
func (a DoubleAuction) Kind() models.AuctionType {
	if a.Nested != nil {
		return a.Nested.Kind()
	}
	return models.AuctionDouble
}

// Cards is the Double card plus the second card once offered.
func (a DoubleAuction) Cards() []models.Card {
	cards := []models.Card{a.Lot}
	if a.SecondCard != nil {
		cards = append(cards, *a.SecondCard)
	}
	return cards
}

// Auctioneer is the current auctioneer, who receives the sale price.
func (a DoubleAuction) Auctioneer() uuid.UUID { return a.CurrentAuctioneerID }

// OriginalAuctioneer is the player who played the Double card.
func (a DoubleAuction) OriginalAuctioneer() uuid.UUID { return a.AuctioneerID }

// Offering reports whether the auction is still looking for a second card.
func (a DoubleAuction) Offering() bool {
	return a.Nested == nil && a.Turn < len(a.Order)
}

func (a DoubleAuction) Done() bool {
	if a.Nested != nil {
		return a.Nested.Done()
	}
	return a.Turn >= len(a.Order)
}

// Current is the player who may offer a second card, or uuid.Nil.
func (a DoubleAuction) Current() uuid.UUID {
	if !a.Offering() {
		return uuid.Nil
	}
	return a.Order[a.Turn]
}

// Eligible reports whether card may be offered as the second card.
func (a DoubleAuction) Eligible(card models.Card) bool {
	return card.Artist == a.Lot.Artist && card.AuctionType != models.AuctionDouble && card.ID != a.Lot.ID
}

// OfferSecondCard puts card up alongside the Double card. It must be the same
// artist and must not itself be a Double card. price is the asking price
// when card is a Fixed Price card and is ignored otherwise.
func (a DoubleAuction) OfferSecondCard(players []models.Player, playerID uuid.UUID, card models.Card, price int) (DoubleAuction, error) {
	if err := a.checkActive(); err != nil {
		return a, err
	}
	if !a.Offering() {
		return a, models.Violationf("a second card has already been offered")
	}
	if err := turnCheck(a.Order, a.Turn, playerID); err != nil {
		return a, err
	}
	if card.AuctionType == models.AuctionDouble {
		return a, models.Violationf("a double card cannot be offered as the second card")
	}
	if card.Artist != a.Lot.Artist {
		return a, models.Violationf("second card must be by %s, got %s", a.Lot.Artist, card.Artist)
	}
	if card.ID == a.Lot.ID {
		return a, models.Violationf("card %s is already in this auction", card)
	}
	nested, err := New(card, playerID, players, price)
	if err != nil {
		return a, err
	}
	second := card
	a.SecondCard = &second
	a.CurrentAuctioneerID = playerID
	a.Nested = nested
	return a, nil
}

// Decline passes the chance to offer a second card.
func (a DoubleAuction) Decline(playerID uuid.UUID) (DoubleAuction, error) {
	if err := a.checkActive(); err != nil {
		return a, err
	}
	if !a.Offering() {
		return a, models.Violationf("no second card is being sought")
	}
	if err := turnCheck(a.Order, a.Turn, playerID); err != nil {
		return a, err
	}
	a.Turn++
	a.Active = !a.Done()
	return a, nil
}

// withNested replaces the nested auction after it advanced.
func (a DoubleAuction) withNested(s State) DoubleAuction {
	a.Nested = s
	a.Active = !s.Done()
	return a
}

func (a DoubleAuction) awaiting() []uuid.UUID {
	if a.Nested != nil {
		return Awaiting(a.Nested)
	}
	if cur := a.Current(); cur != uuid.Nil {
		return []uuid.UUID{cur}
	}
	return nil
}

func (a DoubleAuction) result() (Result, error) {
	if a.Nested == nil {
		return Result{
			Kind:         models.AuctionDouble,
			WinnerID:     a.AuctioneerID,
			AuctioneerID: a.AuctioneerID,
			Price:        0,
			Cards:        []models.Card{a.Lot},
		}, nil
	}
	r, err := Conclude(a.Nested)
	if err != nil {
		return Result{}, err
	}
	r.AuctioneerID = a.CurrentAuctioneerID
	r.Cards = a.Cards()
	return r, nil
}
