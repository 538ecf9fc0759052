// Package auction implements the five auction mechanisms as immutable state
// machines. Every action takes a state value and returns a new one; the input
// is never modified.
package auction

import (
	"github.com/google/uuid"
	"github.com/jason-s-yu/modernart/internal/models"
)

// State is one live auction. The concrete types are OpenAuction,
// HiddenAuction, FixedPriceAuction, OneOfferAuction and DoubleAuction;
// callers switch on them exhaustively.
type State interface {
	// Kind is the effective auction type. For a Double auction with a second
	// card on offer this is the second card's type.
	Kind() models.AuctionType
	// Cards are every card held by the auction.
	Cards() []models.Card
	// Auctioneer is the player who receives the sale price.
	Auctioneer() uuid.UUID
	// Done reports whether the auction reached a terminal condition.
	Done() bool

	sealed()
}

// Result is the immutable summary of a concluded auction.
type Result struct {
	Kind         models.AuctionType `json:"kind"`
	WinnerID     uuid.UUID          `json:"winnerId"`
	AuctioneerID uuid.UUID          `json:"auctioneerId"`
	Price        int                `json:"price"`
	Cards        []models.Card      `json:"cards"`

	// Profit is true when the price goes to another player and false when
	// the winner pays the bank (or nothing).
	Profit bool `json:"profit"`
}

// base holds what every auction variant shares.
type base struct {
	Lot          models.Card
	AuctioneerID uuid.UUID
	Seats        []uuid.UUID // every player in seat order; never modified
	Active       bool
}

func newBase(card models.Card, auctioneer uuid.UUID, players []models.Player) (base, error) {
	if models.FindPlayer(players, auctioneer) < 0 {
		return base{}, models.Preconditionf("auctioneer %s is not seated", auctioneer)
	}
	seats := make([]uuid.UUID, len(players))
	for i, p := range players {
		seats[i] = p.ID
	}
	return base{Lot: card, AuctioneerID: auctioneer, Seats: seats, Active: true}, nil
}

func (b base) Auctioneer() uuid.UUID { return b.AuctioneerID }

func (b base) seated(id uuid.UUID) bool {
	for _, s := range b.Seats {
		if s == id {
			return true
		}
	}
	return false
}

func (b base) checkActive() error {
	if !b.Active {
		return models.Violationf("auction for card %s is no longer active", b.Lot)
	}
	return nil
}

// New starts the auction matching card's type. price is only used by Fixed
// Price auctions.
func New(card models.Card, auctioneer uuid.UUID, players []models.Player, price int) (State, error) {
	switch card.AuctionType {
	case models.AuctionOpen:
		return NewOpen(card, auctioneer, players)
	case models.AuctionHidden:
		return NewHidden(card, auctioneer, players)
	case models.AuctionFixedPrice:
		return NewFixedPrice(card, auctioneer, players, price)
	case models.AuctionOneOffer:
		return NewOneOffer(card, auctioneer, players)
	case models.AuctionDouble:
		return NewDouble(card, auctioneer, players)
	}
	return nil, models.Violationf("unknown auction type %q", card.AuctionType)
}

// Conclude summarises a finished auction. It fails with ErrPreconditionFailed
// while the auction is still running.
func Conclude(s State) (Result, error) {
	if !s.Done() {
		return Result{}, models.Preconditionf("%s auction has not finished", s.Kind())
	}
	var r Result
	switch a := s.(type) {
	case OpenAuction:
		r = a.result()
	case HiddenAuction:
		r = a.result()
	case FixedPriceAuction:
		r = a.result()
	case OneOfferAuction:
		r = a.result()
	case DoubleAuction:
		nr, err := a.result()
		if err != nil {
			return Result{}, err
		}
		r = nr
	default:
		return Result{}, models.Preconditionf("unknown auction state %T", s)
	}
	r.Profit = r.WinnerID != r.AuctioneerID
	return r, nil
}

// settle builds the result shared by the ascending variants: the standing
// high bidder wins, or the auctioneer keeps the card for free.
func settle(kind models.AuctionType, lot models.Card, auctioneer, high uuid.UUID, price int) Result {
	if high == uuid.Nil {
		return Result{Kind: kind, WinnerID: auctioneer, AuctioneerID: auctioneer, Price: 0, Cards: []models.Card{lot}}
	}
	return Result{Kind: kind, WinnerID: high, AuctioneerID: auctioneer, Price: price, Cards: []models.Card{lot}}
}

func moneyOf(players []models.Player, id uuid.UUID) (int, error) {
	i := models.FindPlayer(players, id)
	if i < 0 {
		return 0, models.Violationf("player %s is not seated", id)
	}
	return players[i].Money, nil
}

func checkAffordable(players []models.Player, id uuid.UUID, amount int) error {
	if amount < 0 {
		return models.Violationf("amount %d is negative", amount)
	}
	money, err := moneyOf(players, id)
	if err != nil {
		return err
	}
	if amount > money {
		return models.InsufficientFundsf("player %s has %d, cannot commit %d", id, money, amount)
	}
	return nil
}

// clockwiseAfter returns every seat starting left of id and ending with id.
func clockwiseAfter(seats []uuid.UUID, id uuid.UUID) []uuid.UUID {
	start := 0
	for i, s := range seats {
		if s == id {
			start = i
			break
		}
	}
	out := make([]uuid.UUID, 0, len(seats))
	for k := 1; k <= len(seats); k++ {
		out = append(out, seats[(start+k)%len(seats)])
	}
	return out
}

// seatDistance is how many seats clockwise from `from` one must move to reach `to`.
func seatDistance(seats []uuid.UUID, from, to uuid.UUID) int {
	fi, ti := -1, -1
	for i, s := range seats {
		if s == from {
			fi = i
		}
		if s == to {
			ti = i
		}
	}
	if fi < 0 || ti < 0 {
		return len(seats)
	}
	return (ti - fi + len(seats)) % len(seats)
}

func turnCheck(order []uuid.UUID, turn int, id uuid.UUID) error {
	if turn >= len(order) {
		return models.Violationf("no player is due to act")
	}
	if order[turn] != id {
		return models.Violationf("not player %s's turn, waiting on %s", id, order[turn])
	}
	return nil
}
