// internal/game/lifecycle.go
package game

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/jason-s-yu/modernart/internal/config"
	"github.com/jason-s-yu/modernart/internal/deck"
	"github.com/jason-s-yu/modernart/internal/models"
	"github.com/jason-s-yu/modernart/internal/valuation"
)

// Seat describes one player joining a game.
type Seat struct {
	ID   uuid.UUID // generated when zero
	Name string
	IsAI bool
}

// Setup configures a new game.
type Setup struct {
	ID    uuid.UUID // generated when zero
	Seats []Seat

	// Rules defaults to config.DefaultRules().
	Rules *config.Rules

	// Deck, when set, is used as is. Otherwise a standard deck is shuffled
	// by Shuffler, or by a shuffler seeded with Seed.
	Deck     *deck.Deck
	Shuffler deck.Shuffler
	Seed     int64
}

// StartGame seats the players, shuffles the deck and deals the first round.
func StartGame(setup Setup) (GameState, error) {
	rules := config.DefaultRules()
	if setup.Rules != nil {
		rules = setup.Rules.Clone()
	}
	if err := rules.Validate(); err != nil {
		return GameState{}, fmt.Errorf("invalid rules: %w", err)
	}
	n := len(setup.Seats)
	if n < config.MinPlayers || n > config.MaxPlayers {
		return GameState{}, models.Violationf("a game needs %d to %d players, got %d", config.MinPlayers, config.MaxPlayers, n)
	}

	players := make([]models.Player, n)
	seen := make(map[uuid.UUID]bool, n)
	for i, seat := range setup.Seats {
		id := seat.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		if seen[id] {
			return GameState{}, models.Violationf("player %s is seated twice", id)
		}
		seen[id] = true
		players[i] = models.Player{ID: id, Name: seat.Name, Money: rules.StartingMoney, IsAI: seat.IsAI}
	}

	var d deck.Deck
	switch {
	case setup.Deck != nil:
		d = *setup.Deck
	case setup.Shuffler != nil:
		d = deck.NewShuffled(setup.Shuffler)
	default:
		d = deck.NewShuffled(deck.NewSeededShuffler(setup.Seed))
	}

	id := setup.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	s := GameState{
		ID:         id,
		Rules:      rules,
		Players:    players,
		Deck:       d,
		Board:      valuation.NewBoard(rules.Rounds),
		TotalCards: d.Remaining(),
	}
	return beginRound(s, 1, 0)
}

// NextRound moves on from a finished round. After the last round, or when
// dealing leaves every hand empty, the game ends instead.
func NextRound(s GameState) (GameState, error) {
	if s.Phase() != PhaseSellingToBank {
		return s, models.Preconditionf("round %d has not been sold (%s)", s.Round.Number, s.Phase())
	}
	if s.Round.Number >= s.Rules.Rounds {
		return EndGame(s)
	}
	return beginRound(s, s.Round.Number+1, s.Round.AuctioneerIndex)
}

// beginRound deals round number and hands the first play to the seat at or
// after starter that holds cards.
func beginRound(s GameState, number, starter int) (GameState, error) {
	count, err := s.Rules.DealCount(len(s.Players), number)
	if err != nil {
		return s, err
	}
	next := s.clone()
	next.Deck, next.Players = deck.Deal(s.Deck, s.Players, count)
	next.LastResult = nil
	next.Round = RoundState{Number: number, Phase: AwaitingCardPlay{}}

	seat, ok := nextSeatWithCards(next.Players, starter-1+len(next.Players))
	if !ok {
		return EndGame(next)
	}
	next.Round.AuctioneerIndex = seat
	return next, nil
}

// EndGame finishes the game and names the winners: most money, then most
// paintings. Players still tied share the victory. It fails while an
// auction is running or a round waits to be ended.
func EndGame(s GameState) (GameState, error) {
	if s.Over {
		return s, models.Preconditionf("game is already over")
	}
	switch s.Phase() {
	case PhaseAuction, PhaseRoundEnding:
		return s, models.Preconditionf("cannot end the game during %s", s.Phase())
	}
	next := s.clone()
	next.Winners = Winners(s.Players)
	next.Over = true
	next.Round.Phase = GameOver{Winners: next.Winners}
	return next, nil
}

// Winners returns every player sharing first place in Standings, in seat
// order.
func Winners(players []models.Player) []uuid.UUID {
	first := make(map[uuid.UUID]bool)
	for _, st := range Standings(players) {
		if st.Place == 1 {
			first[st.Player.ID] = true
		}
	}
	var out []uuid.UUID
	for _, p := range players {
		if first[p.ID] {
			out = append(out, p.ID)
		}
	}
	return out
}

// Standing is one line of the final scoreboard.
type Standing struct {
	Player    models.Player
	Place     int
	Paintings int
}

// Standings orders players by money, then painting count. Tied players share
// a place.
func Standings(players []models.Player) []Standing {
	out := make([]Standing, len(players))
	for i, p := range players {
		out[i] = Standing{Player: p.Clone(), Paintings: p.PaintingCount()}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Player.Money != out[j].Player.Money {
			return out[i].Player.Money > out[j].Player.Money
		}
		return out[i].Paintings > out[j].Paintings
	})
	for i := range out {
		out[i].Place = i + 1
		if i > 0 && out[i].Player.Money == out[i-1].Player.Money && out[i].Paintings == out[i-1].Paintings {
			out[i].Place = out[i-1].Place
		}
	}
	return out
}
