// internal/deck/deck.go
package deck

import (
	"math/rand"

	"github.com/jason-s-yu/modernart/internal/models"
)

// distribution is the number of cards of each auction type printed per
// artist, in models.AuctionTypes order (open, hidden, fixed, one-offer, double).
var distribution = [models.NumArtists][5]int{
	models.ManuelCarvalho: {3, 2, 2, 3, 2},
	models.SigridThaler:   {3, 3, 2, 3, 2},
	models.DanielMelim:    {3, 3, 3, 3, 2},
	models.RamonMartins:   {3, 3, 3, 3, 3},
	models.RafaelSilveira: {4, 3, 3, 3, 3},
}

// Size is the number of cards in a standard deck.
const Size = 70

// Shuffler permutes n elements through swap. *rand.Rand satisfies it, so a
// seeded source gives a reproducible deck.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// NewSeededShuffler returns a deterministic Shuffler.
func NewSeededShuffler(seed int64) Shuffler {
	return rand.New(rand.NewSource(seed))
}

// NewStandardCards builds the 70 cards in a fixed order. Card IDs are the
// card's position in that order.
func NewStandardCards() []models.Card {
	cards := make([]models.Card, 0, Size)
	for _, artist := range models.Artists {
		for t, n := range distribution[artist] {
			for i := 0; i < n; i++ {
				cards = append(cards, models.Card{
					ID:          len(cards),
					Artist:      artist,
					AuctionType: models.AuctionTypes[t],
				})
			}
		}
	}
	return cards
}

// Deck is an ordered card arena. Drawing advances an offset instead of
// removing cards, and every operation returns a new Deck value.
type Deck struct {
	cards []models.Card
	next  int
}

// New wraps cards in a Deck. The slice is copied.
func New(cards []models.Card) Deck {
	return Deck{cards: append([]models.Card(nil), cards...)}
}

// NewShuffled builds a standard deck shuffled by s.
func NewShuffled(s Shuffler) Deck {
	cards := NewStandardCards()
	s.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
	return Deck{cards: cards}
}

// Remaining is the number of undrawn cards.
func (d Deck) Remaining() int {
	return len(d.cards) - d.next
}

// Peek returns the undrawn cards in draw order. The result must not be modified.
func (d Deck) Peek() []models.Card {
	return d.cards[d.next:]
}

// Draw takes up to n cards from the top. Fewer are returned when the deck
// runs out.
func (d Deck) Draw(n int) (Deck, []models.Card) {
	if n > d.Remaining() {
		n = d.Remaining()
	}
	if n <= 0 {
		return d, nil
	}
	drawn := append([]models.Card(nil), d.cards[d.next:d.next+n]...)
	d.next += n
	return d, drawn
}

// Deal gives each player count cards, one at a time in seat order, appending
// them to the existing hands. It stops early if the deck runs out. The input
// players are not modified.
func Deal(d Deck, players []models.Player, count int) (Deck, []models.Player) {
	out := models.ClonePlayers(players)
	for i := 0; i < count; i++ {
		for p := range out {
			var drawn []models.Card
			d, drawn = d.Draw(1)
			if len(drawn) == 0 {
				return d, out
			}
			out[p].Hand = append(out[p].Hand, drawn[0])
		}
	}
	return d, out
}
