// internal/game/lifecycle_test.go
package game

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jason-s-yu/modernart/internal/config"
	"github.com/jason-s-yu/modernart/internal/deck"
	"github.com/jason-s-yu/modernart/internal/models"
	"github.com/jason-s-yu/modernart/internal/valuation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seats(n int) []Seat {
	out := make([]Seat, n)
	for i := range out {
		out[i] = Seat{Name: fmt.Sprintf("P%d", i+1), IsAI: true}
	}
	return out
}

func TestStartGameDealsFirstRound(t *testing.T) {
	for _, tc := range []struct {
		players int
		hand    int
	}{
		{3, 10},
		{4, 9},
		{5, 8},
	} {
		t.Run(fmt.Sprintf("%d players", tc.players), func(t *testing.T) {
			s, err := StartGame(Setup{Seats: seats(tc.players), Seed: 42})
			require.NoError(t, err)

			assert.NotEqual(t, uuid.Nil, s.ID)
			assert.Equal(t, 1, s.Round.Number)
			assert.Equal(t, PhaseAwaitingCardPlay, s.Phase())
			assert.Equal(t, 0, s.Round.AuctioneerIndex)
			assert.Equal(t, deck.Size, s.TotalCards)
			assert.Equal(t, deck.Size-tc.players*tc.hand, s.Deck.Remaining())
			for _, p := range s.Players {
				assert.Len(t, p.Hand, tc.hand)
				assert.Equal(t, 100, p.Money)
				assert.NotEqual(t, uuid.Nil, p.ID)
			}
			assert.Equal(t, deck.Size, CountCards(s))
		})
	}
}

func TestStartGameValidatesSeats(t *testing.T) {
	_, err := StartGame(Setup{Seats: seats(2)})
	assert.ErrorIs(t, err, models.ErrRuleViolation)

	_, err = StartGame(Setup{Seats: seats(6)})
	assert.ErrorIs(t, err, models.ErrRuleViolation)

	id := uuid.New()
	dup := []Seat{{ID: id}, {ID: id}, {}}
	_, err = StartGame(Setup{Seats: dup})
	assert.ErrorIs(t, err, models.ErrRuleViolation)
}

func TestStartGameRejectsInvalidRules(t *testing.T) {
	rules := config.DefaultRules()
	rules.Rounds = 0
	_, err := StartGame(Setup{Seats: seats(3), Rules: &rules})
	assert.Error(t, err)
}

func TestStartGameIsDeterministicForSeed(t *testing.T) {
	ids := seats(4)
	for i := range ids {
		ids[i].ID = uuid.New()
	}
	a, err := StartGame(Setup{Seats: ids, Seed: 7})
	require.NoError(t, err)
	b, err := StartGame(Setup{Seats: ids, Seed: 7})
	require.NoError(t, err)

	for i := range a.Players {
		assert.Equal(t, a.Players[i].Hand, b.Players[i].Hand)
	}
	assert.Equal(t, a.Deck.Peek(), b.Deck.Peek())
}

func TestNextRoundDealsOntoExistingHands(t *testing.T) {
	s, err := StartGame(Setup{Seats: seats(4), Seed: 3})
	require.NoError(t, err)
	s.Round.Phase = RoundEnding{EndedBy: 1}

	s, err = EndRound(s)
	require.NoError(t, err)
	_, err = EndRound(s)
	assert.ErrorIs(t, err, models.ErrPreconditionFailed)

	s, err = NextRound(s)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Round.Number)
	assert.Equal(t, 2, s.Round.AuctioneerIndex)
	assert.Equal(t, valuation.Counts{}, s.Round.CardsPlayed)
	for _, p := range s.Players {
		assert.Len(t, p.Hand, 13)
	}
	assert.Equal(t, deck.Size-4*13, s.Deck.Remaining())
	assert.Equal(t, deck.Size, CountCards(s))
}

func TestNextRoundRequiresSoldRound(t *testing.T) {
	s, err := StartGame(Setup{Seats: seats(3), Seed: 3})
	require.NoError(t, err)

	_, err = NextRound(s)
	assert.ErrorIs(t, err, models.ErrPreconditionFailed)
}

func TestNextRoundAfterLastRoundEndsGame(t *testing.T) {
	s, err := StartGame(Setup{Seats: seats(3), Seed: 3})
	require.NoError(t, err)
	s.Round.Number = 4
	s.Round.Phase = SellingToBank{}

	s, err = NextRound(s)
	require.NoError(t, err)
	assert.True(t, s.Over)
	assert.Equal(t, PhaseGameOver, s.Phase())
	assert.Len(t, s.Winners, 3, "identical players share the win")

	_, err = EndGame(s)
	assert.ErrorIs(t, err, models.ErrPreconditionFailed)
}

func TestEmptyHandsAfterDealEndGame(t *testing.T) {
	s, err := StartGame(Setup{Seats: seats(3), Seed: 3})
	require.NoError(t, err)
	for i := range s.Players {
		s.Players[i].Hand = nil
	}
	s.Round.Number = 3
	s.Round.Phase = SellingToBank{}

	s, err = NextRound(s)
	require.NoError(t, err)
	assert.True(t, s.Over)
	assert.Equal(t, 4, s.Round.Number)
}

func TestRoundFourStartsWithLeftoverCards(t *testing.T) {
	s, err := StartGame(Setup{Seats: seats(3), Seed: 3})
	require.NoError(t, err)
	for i := range s.Players {
		s.Players[i].Hand = nil
	}
	s.Players[2].Hand = filler(1)
	s.Round.Number = 3
	s.Round.AuctioneerIndex = 0
	s.Round.Phase = SellingToBank{}

	s, err = NextRound(s)
	require.NoError(t, err)
	assert.False(t, s.Over)
	assert.Equal(t, 4, s.Round.Number)
	assert.Equal(t, 2, s.Round.AuctioneerIndex, "seats without cards are skipped")
}

func TestEndGameDuringAuctionFails(t *testing.T) {
	s := setupTestGame(t, filler(1), filler(1), filler(1))
	s, err := PlayCard(s, 0, 0)
	require.NoError(t, err)

	_, err = EndGame(s)
	assert.ErrorIs(t, err, models.ErrPreconditionFailed)
}

func TestWinnersTieBreaks(t *testing.T) {
	painting := models.Painting{Card: card(1, models.ManuelCarvalho, models.AuctionOpen)}
	a := models.Player{ID: uuid.New(), Money: 120}
	b := models.Player{ID: uuid.New(), Money: 120, Purchases: []models.Painting{painting}}
	c := models.Player{ID: uuid.New(), Money: 90}

	assert.Equal(t, []uuid.UUID{b.ID}, Winners([]models.Player{a, b, c}))

	a.Purchases = []models.Painting{painting}
	assert.Equal(t, []uuid.UUID{a.ID, b.ID}, Winners([]models.Player{a, b, c}))

	standings := Standings([]models.Player{c, a, b})
	assert.Equal(t, 1, standings[0].Place)
	assert.Equal(t, 1, standings[1].Place)
	assert.Equal(t, 3, standings[2].Place)
	assert.Equal(t, c.ID, standings[2].Player.ID)
}

func TestPlayFullGameConservesCardsAndMoney(t *testing.T) {
	for players := config.MinPlayers; players <= config.MaxPlayers; players++ {
		for seed := int64(1); seed <= 4; seed++ {
			t.Run(fmt.Sprintf("%dp seed %d", players, seed), func(t *testing.T) {
				s, err := StartGame(Setup{Seats: seats(players), Seed: seed})
				require.NoError(t, err)
				deciders := make(map[uuid.UUID]Decider)
				for _, p := range s.Players {
					deciders[p.ID] = Baseline{}
				}

				ctx := context.Background()
				for steps := 0; !s.Over; steps++ {
					require.Less(t, steps, 5000, "game did not finish")
					next, err := Step(ctx, s, deciders)
					require.NoError(t, err)

					require.Equal(t, s.TotalCards, CountCards(next))
					for _, p := range next.Players {
						require.GreaterOrEqual(t, p.Money, 0)
					}
					before, after := models.TotalMoney(s.Players), models.TotalMoney(next.Players)
					switch {
					case next.Phase() == PhaseSellingToBank && s.Phase() != PhaseSellingToBank:
						require.GreaterOrEqual(t, after, before)
					case next.LastResult != nil && next.LastResult != s.LastResult:
						if next.LastResult.Profit {
							require.Equal(t, before, after)
						} else {
							require.Equal(t, before-next.LastResult.Price, after)
						}
					default:
						require.Equal(t, before, after)
					}
					s = next
				}

				assert.LessOrEqual(t, s.Round.Number, s.Rules.Rounds)
				assert.NotEmpty(t, s.Winners)
				assert.LessOrEqual(t, s.Board.Round, s.Round.Number)
			})
		}
	}
}

func TestPlayRunsToCompletion(t *testing.T) {
	s, err := StartGame(Setup{Seats: seats(4), Seed: 11})
	require.NoError(t, err)
	deciders := make(map[uuid.UUID]Decider)
	for _, p := range s.Players {
		deciders[p.ID] = Baseline{Limit: 20}
	}

	final, err := Play(context.Background(), s, deciders)
	require.NoError(t, err)
	assert.True(t, final.Over)
	assert.Equal(t, final.Winners, Winners(final.Players))
}

func TestPlayStopsOnCancelledContext(t *testing.T) {
	s, err := StartGame(Setup{Seats: seats(3), Seed: 1})
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = Play(ctx, s, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStepNeedsDecider(t *testing.T) {
	s, err := StartGame(Setup{Seats: seats(3), Seed: 1})
	require.NoError(t, err)

	_, err = Step(context.Background(), s, map[uuid.UUID]Decider{})
	assert.Error(t, err)
}
