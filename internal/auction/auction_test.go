package auction

import (
	"testing"

	"github.com/google/uuid"
	"github.com/jason-s-yu/modernart/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupPlayers seats n players with the same money, in seat order A, B, C...
func setupPlayers(n, money int) []models.Player {
	players := make([]models.Player, n)
	for i := range players {
		players[i] = models.Player{ID: uuid.New(), Name: string(rune('A' + i)), Money: money}
	}
	return players
}

func card(id int, artist models.Artist, t models.AuctionType) models.Card {
	return models.Card{ID: id, Artist: artist, AuctionType: t}
}

func mustApply(t *testing.T, s State, players []models.Player, act Action) State {
	t.Helper()
	next, err := Apply(s, players, act)
	require.NoError(t, err, "action %+v", act)
	return next
}

func TestOpenAuctionScenario(t *testing.T) {
	players := setupPlayers(4, 100)
	a, b, c, d := players[0].ID, players[1].ID, players[2].ID, players[3].ID

	var s State
	s, err := NewOpen(card(1, models.ManuelCarvalho, models.AuctionOpen), a, players)
	require.NoError(t, err)

	s = mustApply(t, s, players, Action{Kind: ActionBid, PlayerID: b, Amount: 5})
	s = mustApply(t, s, players, Action{Kind: ActionBid, PlayerID: c, Amount: 8})
	s = mustApply(t, s, players, Action{Kind: ActionBid, PlayerID: d, Amount: 10})

	_, err = Conclude(s)
	assert.ErrorIs(t, err, models.ErrPreconditionFailed)

	s = mustApply(t, s, players, Action{Kind: ActionPass, PlayerID: a})
	s = mustApply(t, s, players, Action{Kind: ActionPass, PlayerID: b})
	require.False(t, s.Done())
	s = mustApply(t, s, players, Action{Kind: ActionPass, PlayerID: c})
	require.True(t, s.Done())

	r, err := Conclude(s)
	require.NoError(t, err)
	assert.Equal(t, d, r.WinnerID)
	assert.Equal(t, a, r.AuctioneerID)
	assert.Equal(t, 10, r.Price)
	assert.True(t, r.Profit)
	assert.Equal(t, []models.Card{card(1, models.ManuelCarvalho, models.AuctionOpen)}, r.Cards)

	_, err = Apply(s, players, Action{Kind: ActionBid, PlayerID: a, Amount: 20})
	assert.ErrorIs(t, err, models.ErrRuleViolation, "finished auction rejects bids")
}

func TestOpenAuctionRejectsIllegalMoves(t *testing.T) {
	players := setupPlayers(3, 20)
	a, b, c := players[0].ID, players[1].ID, players[2].ID
	s, err := NewOpen(card(1, models.SigridThaler, models.AuctionOpen), a, players)
	require.NoError(t, err)

	s, err = s.Bid(players, b, 10)
	require.NoError(t, err)

	_, err = s.Bid(players, c, 10)
	assert.ErrorIs(t, err, models.ErrRuleViolation, "bid must strictly increase")
	_, err = s.Bid(players, c, 21)
	assert.ErrorIs(t, err, models.ErrInsufficientFunds)
	_, err = s.Pass(b)
	assert.ErrorIs(t, err, models.ErrRuleViolation, "high bidder cannot pass")
	_, err = s.Bid(players, uuid.New(), 15)
	assert.ErrorIs(t, err, models.ErrRuleViolation)

	passed, err := s.Pass(c)
	require.NoError(t, err)
	_, err = passed.Pass(c)
	assert.ErrorIs(t, err, models.ErrRuleViolation, "no double pass without a new bid")

	rebid, err := passed.Bid(players, c, 12)
	require.NoError(t, err, "a player who passed may still bid")
	assert.Empty(t, rebid.Passers, "a bid resets the pass count")
}

func TestOpenAuctionHighBidderCannotRaiseOwnBid(t *testing.T) {
	players := setupPlayers(4, 100)
	a, b, c, d := players[0].ID, players[1].ID, players[2].ID, players[3].ID
	var s State
	s, err := NewOpen(card(1, models.SigridThaler, models.AuctionOpen), a, players)
	require.NoError(t, err)

	s = mustApply(t, s, players, Action{Kind: ActionBid, PlayerID: b, Amount: 5})
	s = mustApply(t, s, players, Action{Kind: ActionPass, PlayerID: c})
	s = mustApply(t, s, players, Action{Kind: ActionPass, PlayerID: d})

	_, err = Apply(s, players, Action{Kind: ActionBid, PlayerID: b, Amount: 6})
	assert.ErrorIs(t, err, models.ErrRuleViolation)
	assert.Empty(t, ValidActions(s, players, b), "high bidder can neither bid nor pass")
	assert.Equal(t, []ActionKind{ActionBid, ActionPass}, ValidActions(s, players, a))

	open, ok := s.(OpenAuction)
	require.True(t, ok)
	assert.Len(t, open.Passers, 2, "rejected bid leaves the passes standing")
}

func TestOpenAuctionIsPure(t *testing.T) {
	players := setupPlayers(3, 50)
	s, err := NewOpen(card(1, models.DanielMelim, models.AuctionOpen), players[0].ID, players)
	require.NoError(t, err)
	s, err = s.Bid(players, players[1].ID, 5)
	require.NoError(t, err)

	before := s
	next, err := s.Pass(players[2].ID)
	require.NoError(t, err)
	_, err = next.Bid(players, players[2].ID, 9)
	require.NoError(t, err)

	assert.Empty(t, before.Passers)
	assert.Len(t, before.History, 1)
	assert.Equal(t, 5, before.HighBid)
	assert.Len(t, next.Passers, 1)
}

func TestOpenAuctionWithoutBidsGoesToAuctioneerFree(t *testing.T) {
	players := setupPlayers(3, 50)
	a := players[0].ID
	s, err := NewOpen(card(1, models.DanielMelim, models.AuctionOpen), a, players)
	require.NoError(t, err)
	s, err = s.Pass(players[1].ID)
	require.NoError(t, err)
	s, err = s.Pass(a)
	require.NoError(t, err)

	r, err := Conclude(s)
	require.NoError(t, err)
	assert.Equal(t, a, r.WinnerID)
	assert.Equal(t, 0, r.Price)
	assert.False(t, r.Profit)
}

func TestOpenAuctionAuctioneerWinsOwn(t *testing.T) {
	players := setupPlayers(3, 50)
	a := players[0].ID
	s, err := NewOpen(card(1, models.RamonMartins, models.AuctionOpen), a, players)
	require.NoError(t, err)
	s, err = s.Bid(players, players[1].ID, 4)
	require.NoError(t, err)
	s, err = s.Bid(players, a, 7)
	require.NoError(t, err)
	s, err = s.Pass(players[1].ID)
	require.NoError(t, err)
	s, err = s.Pass(players[2].ID)
	require.NoError(t, err)

	r, err := Conclude(s)
	require.NoError(t, err)
	assert.Equal(t, a, r.WinnerID)
	assert.Equal(t, 7, r.Price)
	assert.False(t, r.Profit, "self-win pays the bank")
}

func TestHiddenAuctionTieBreaks(t *testing.T) {
	players := setupPlayers(4, 100)
	ids := []uuid.UUID{players[0].ID, players[1].ID, players[2].ID, players[3].ID}

	cases := []struct {
		name       string
		auctioneer int
		bids       []int
		winner     int
		price      int
	}{
		{name: "highest wins", auctioneer: 0, bids: []int{1, 9, 4, 3}, winner: 1, price: 9},
		{name: "auctioneer wins a tie", auctioneer: 2, bids: []int{10, 10, 10, 2}, winner: 2, price: 10},
		{name: "closest left of auctioneer wins a tie", auctioneer: 1, bids: []int{7, 0, 3, 7}, winner: 3, price: 7},
		{name: "wraps around the table", auctioneer: 3, bids: []int{2, 6, 6, 1}, winner: 1, price: 6},
		{name: "all zero goes to auctioneer", auctioneer: 1, bids: []int{0, 0, 0, 0}, winner: 1, price: 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := NewHidden(card(5, models.RafaelSilveira, models.AuctionHidden), ids[tc.auctioneer], players)
			require.NoError(t, err)
			// submit in reverse seat order so arrival order cannot decide the tie
			for i := len(ids) - 1; i >= 0; i-- {
				require.False(t, s.Done())
				s, err = s.SubmitBid(players, ids[i], tc.bids[i])
				require.NoError(t, err)
			}
			require.True(t, s.Done())
			r, err := Conclude(s)
			require.NoError(t, err)
			assert.Equal(t, ids[tc.winner], r.WinnerID)
			assert.Equal(t, tc.price, r.Price)
			assert.Equal(t, ids[tc.auctioneer], r.AuctioneerID)
			assert.Equal(t, tc.winner != tc.auctioneer, r.Profit)
		})
	}
}

func TestHiddenAuctionRejectsSecondBid(t *testing.T) {
	players := setupPlayers(3, 10)
	s, err := NewHidden(card(5, models.RafaelSilveira, models.AuctionHidden), players[0].ID, players)
	require.NoError(t, err)
	s, err = s.SubmitBid(players, players[1].ID, 3)
	require.NoError(t, err)
	_, err = s.SubmitBid(players, players[1].ID, 4)
	assert.ErrorIs(t, err, models.ErrRuleViolation)
	_, err = s.SubmitBid(players, players[2].ID, 11)
	assert.ErrorIs(t, err, models.ErrInsufficientFunds)
	_, err = s.SubmitBid(players, players[2].ID, -1)
	assert.ErrorIs(t, err, models.ErrRuleViolation)
	assert.ElementsMatch(t, []uuid.UUID{players[0].ID, players[2].ID}, Awaiting(s))
}

func TestFixedPriceAllPassForcesAuctioneer(t *testing.T) {
	players := setupPlayers(4, 100)
	a := players[0].ID
	s, err := NewFixedPrice(card(2, models.SigridThaler, models.AuctionFixedPrice), a, players, 30)
	require.NoError(t, err)

	_, err = s.Pass(players[2].ID)
	assert.ErrorIs(t, err, models.ErrRuleViolation, "turn starts left of the auctioneer")
	_, err = s.Pass(a)
	assert.ErrorIs(t, err, models.ErrRuleViolation, "auctioneer is not offered the card")

	for _, p := range players[1:] {
		s, err = s.Pass(p.ID)
		require.NoError(t, err)
	}
	require.True(t, s.Done())
	r, err := Conclude(s)
	require.NoError(t, err)
	assert.Equal(t, a, r.WinnerID)
	assert.Equal(t, 30, r.Price)
	assert.False(t, r.Profit)
}

func TestFixedPriceBuyEndsAuction(t *testing.T) {
	players := setupPlayers(3, 100)
	players[2].Money = 10
	s, err := NewFixedPrice(card(2, models.SigridThaler, models.AuctionFixedPrice), players[1].ID, players, 15)
	require.NoError(t, err)
	assert.Equal(t, players[2].ID, s.Current())

	_, err = s.Buy(players, players[2].ID)
	assert.ErrorIs(t, err, models.ErrInsufficientFunds)
	assert.Equal(t, []ActionKind{ActionPass}, ValidActions(s, players, players[2].ID))

	s, err = s.Pass(players[2].ID)
	require.NoError(t, err)
	s, err = s.Buy(players, players[0].ID)
	require.NoError(t, err)
	require.True(t, s.Done())

	r, err := Conclude(s)
	require.NoError(t, err)
	assert.Equal(t, players[0].ID, r.WinnerID)
	assert.Equal(t, players[1].ID, r.AuctioneerID)
	assert.True(t, r.Profit)
}

func TestFixedPriceAuctioneerMustAffordPrice(t *testing.T) {
	players := setupPlayers(3, 20)
	_, err := NewFixedPrice(card(2, models.SigridThaler, models.AuctionFixedPrice), players[0].ID, players, 21)
	assert.ErrorIs(t, err, models.ErrInsufficientFunds)
}

func TestOneOfferTurnOrderAndNoReentry(t *testing.T) {
	players := setupPlayers(4, 100)
	a, b, c, d := players[0].ID, players[1].ID, players[2].ID, players[3].ID
	s, err := NewOneOffer(card(3, models.DanielMelim, models.AuctionOneOffer), a, players)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{b, c, d, a}, s.Order)

	s, err = s.Offer(players, b, 6)
	require.NoError(t, err)
	_, err = s.Offer(players, b, 9)
	assert.ErrorIs(t, err, models.ErrRuleViolation, "one action per player")
	_, err = s.Offer(players, c, 6)
	assert.ErrorIs(t, err, models.ErrRuleViolation, "offer must beat the standing offer")
	_, err = s.Accept(c)
	assert.ErrorIs(t, err, models.ErrRuleViolation, "only the auctioneer accepts")

	s, err = s.Pass(c)
	require.NoError(t, err)
	s, err = s.Offer(players, d, 11)
	require.NoError(t, err)
	assert.Contains(t, ValidActions(s, players, a), ActionAccept)

	accepted, err := s.Accept(a)
	require.NoError(t, err)
	r, err := Conclude(accepted)
	require.NoError(t, err)
	assert.Equal(t, d, r.WinnerID)
	assert.Equal(t, 11, r.Price)
	assert.True(t, r.Profit)

	outbid, err := s.Offer(players, a, 12)
	require.NoError(t, err)
	r, err = Conclude(outbid)
	require.NoError(t, err)
	assert.Equal(t, a, r.WinnerID)
	assert.Equal(t, 12, r.Price)
	assert.False(t, r.Profit)
}

func TestOneOfferNoOffersIsFree(t *testing.T) {
	players := setupPlayers(3, 100)
	a := players[0].ID
	var s State
	s, err := NewOneOffer(card(3, models.DanielMelim, models.AuctionOneOffer), a, players)
	require.NoError(t, err)
	s = mustApply(t, s, players, Action{Kind: ActionPass, PlayerID: players[1].ID})
	s = mustApply(t, s, players, Action{Kind: ActionPass, PlayerID: players[2].ID})
	s = mustApply(t, s, players, Action{Kind: ActionAccept, PlayerID: a})
	r, err := Conclude(s)
	require.NoError(t, err)
	assert.Equal(t, a, r.WinnerID)
	assert.Equal(t, 0, r.Price)
}

func TestDoubleAllDeclineKeepsCardFree(t *testing.T) {
	players := setupPlayers(3, 100)
	b := players[1].ID
	var s State
	s, err := NewDouble(card(10, models.RamonMartins, models.AuctionDouble), b, players)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{b}, Awaiting(s), "original auctioneer decides first")

	for _, id := range []uuid.UUID{b, players[2].ID, players[0].ID} {
		s = mustApply(t, s, players, Action{Kind: ActionDecline, PlayerID: id})
	}
	require.True(t, s.Done())
	r, err := Conclude(s)
	require.NoError(t, err)
	assert.Equal(t, b, r.WinnerID)
	assert.Equal(t, 0, r.Price)
	assert.Len(t, r.Cards, 1)
	assert.Equal(t, models.AuctionDouble, r.Kind)
}

func TestDoubleValidActionsCheckHand(t *testing.T) {
	players := setupPlayers(3, 100)
	a, b := players[0].ID, players[1].ID
	players[0].Hand = []models.Card{card(20, models.SigridThaler, models.AuctionOpen), card(21, models.ManuelCarvalho, models.AuctionDouble)}
	players[1].Hand = []models.Card{card(22, models.ManuelCarvalho, models.AuctionHidden)}

	var s State
	s, err := NewDouble(card(10, models.ManuelCarvalho, models.AuctionDouble), a, players)
	require.NoError(t, err)

	assert.Equal(t, []ActionKind{ActionDecline}, ValidActions(s, players, a), "no matching non-double card")
	assert.Empty(t, ValidActions(s, players, b), "not b's turn")

	s = mustApply(t, s, players, Action{Kind: ActionDecline, PlayerID: a})
	assert.Equal(t, []ActionKind{ActionOfferCard, ActionDecline}, ValidActions(s, players, b))
}

func TestDoubleNestedOpenAuction(t *testing.T) {
	players := setupPlayers(3, 100)
	a, b, c := players[0].ID, players[1].ID, players[2].ID
	double := card(10, models.RamonMartins, models.AuctionDouble)
	second := card(11, models.RamonMartins, models.AuctionOpen)

	var s State
	s, err := NewDouble(double, a, players)
	require.NoError(t, err)

	_, err = Apply(s, players, Action{Kind: ActionOfferCard, PlayerID: a, Card: card(12, models.RamonMartins, models.AuctionDouble)})
	assert.ErrorIs(t, err, models.ErrRuleViolation, "double card cannot be the second card")
	_, err = Apply(s, players, Action{Kind: ActionOfferCard, PlayerID: a, Card: card(13, models.DanielMelim, models.AuctionOpen)})
	assert.ErrorIs(t, err, models.ErrRuleViolation, "second card must match the artist")
	_, err = Apply(s, players, Action{Kind: ActionOfferCard, PlayerID: b, Card: second})
	assert.ErrorIs(t, err, models.ErrRuleViolation, "out of turn")

	s = mustApply(t, s, players, Action{Kind: ActionDecline, PlayerID: a})
	s = mustApply(t, s, players, Action{Kind: ActionOfferCard, PlayerID: b, Card: second})
	assert.Equal(t, models.AuctionOpen, s.Kind())
	assert.Equal(t, b, s.Auctioneer())
	assert.Len(t, s.Cards(), 2)

	s = mustApply(t, s, players, Action{Kind: ActionBid, PlayerID: c, Amount: 25})
	s = mustApply(t, s, players, Action{Kind: ActionPass, PlayerID: a})
	s = mustApply(t, s, players, Action{Kind: ActionPass, PlayerID: b})
	require.True(t, s.Done())

	r, err := Conclude(s)
	require.NoError(t, err)
	assert.Equal(t, c, r.WinnerID)
	assert.Equal(t, b, r.AuctioneerID, "price goes to the player who offered the second card")
	assert.Equal(t, 25, r.Price)
	assert.ElementsMatch(t, []models.Card{double, second}, r.Cards)
	assert.True(t, r.Profit)

	orig, ok := s.(DoubleAuction)
	require.True(t, ok)
	assert.Equal(t, a, orig.OriginalAuctioneer())
}

func TestDoubleNestedFixedPriceSelfWin(t *testing.T) {
	players := setupPlayers(3, 100)
	a := players[0].ID
	var s State
	s, err := NewDouble(card(10, models.ManuelCarvalho, models.AuctionDouble), a, players)
	require.NoError(t, err)

	_, err = Apply(s, players, Action{Kind: ActionOfferCard, PlayerID: a, Card: card(11, models.ManuelCarvalho, models.AuctionFixedPrice), Amount: 101})
	assert.ErrorIs(t, err, models.ErrInsufficientFunds)

	s = mustApply(t, s, players, Action{Kind: ActionOfferCard, PlayerID: a, Card: card(11, models.ManuelCarvalho, models.AuctionFixedPrice), Amount: 40})
	assert.Equal(t, []ActionKind{ActionBuy, ActionPass}, ValidActions(s, players, players[1].ID))
	s = mustApply(t, s, players, Action{Kind: ActionPass, PlayerID: players[1].ID})
	s = mustApply(t, s, players, Action{Kind: ActionPass, PlayerID: players[2].ID})

	r, err := Conclude(s)
	require.NoError(t, err)
	assert.Equal(t, a, r.WinnerID)
	assert.Equal(t, a, r.AuctioneerID)
	assert.Equal(t, 40, r.Price)
	assert.False(t, r.Profit)
	assert.Len(t, r.Cards, 2)
}

func TestNewDispatchesOnCardType(t *testing.T) {
	players := setupPlayers(3, 100)
	for _, at := range models.AuctionTypes {
		s, err := New(card(1, models.SigridThaler, at), players[0].ID, players, 5)
		require.NoError(t, err)
		assert.Equal(t, at, s.Kind())
		assert.False(t, s.Done())
	}
	_, err := New(card(1, models.SigridThaler, models.AuctionOpen), uuid.New(), players, 0)
	assert.ErrorIs(t, err, models.ErrPreconditionFailed)
}
