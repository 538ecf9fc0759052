// internal/game/round.go
package game

import (
	"github.com/jason-s-yu/modernart/internal/auction"
	"github.com/jason-s-yu/modernart/internal/ledger"
	"github.com/jason-s-yu/modernart/internal/models"
	"github.com/jason-s-yu/modernart/internal/selling"
	"github.com/jason-s-yu/modernart/internal/valuation"
)

// noPrice marks a card play that carries no fixed price.
const noPrice = -1

// PlayCard plays the card at cardIndex from the hand of the player at
// playerIndex. Fixed Price cards need a price; use PlayCardAtPrice for them.
func PlayCard(s GameState, playerIndex, cardIndex int) (GameState, error) {
	return playCard(s, playerIndex, cardIndex, noPrice)
}

// PlayCardAtPrice plays a card and sets the price of the Fixed Price auction
// it opens. price is ignored for every other auction type, and for a card
// that ends the round.
func PlayCardAtPrice(s GameState, playerIndex, cardIndex, price int) (GameState, error) {
	return playCard(s, playerIndex, cardIndex, price)
}

func playCard(s GameState, playerIndex, cardIndex, price int) (GameState, error) {
	if s.Over {
		return s, models.Violationf("game is over")
	}
	if s.Phase() != PhaseAwaitingCardPlay {
		return s, models.Violationf("cannot play a card during %s", s.Phase())
	}
	if playerIndex != s.Round.AuctioneerIndex {
		return s, models.Violationf("it is not player %d's turn", playerIndex)
	}
	hand := s.Players[playerIndex].Hand
	if cardIndex < 0 || cardIndex >= len(hand) {
		return s, models.Violationf("card index %d out of range 0..%d", cardIndex, len(hand)-1)
	}
	card := hand[cardIndex]

	counts := s.Round.CardsPlayed
	counts[card.Artist]++
	if counts[card.Artist] >= s.Rules.RoundEndingCard {
		next := s.clone()
		next.Players[playerIndex].Hand = removeCard(hand, cardIndex)
		next.Round.CardsPlayed = counts
		next.Round.Phase = RoundEnding{Trigger: []models.Card{card}, EndedBy: playerIndex}
		return next, nil
	}

	if card.AuctionType == models.AuctionFixedPrice && price < 0 {
		return s, models.Violationf("a fixed price card needs a non-negative price")
	}
	a, err := auction.New(card, s.Players[playerIndex].ID, s.Players, price)
	if err != nil {
		return s, err
	}
	next := s.clone()
	next.Players[playerIndex].Hand = removeCard(hand, cardIndex)
	next.Round.CardsPlayed = counts
	next.Round.Phase = AuctionInProgress{Auction: a}
	return next, nil
}

// OfferSecondCard puts a card from the hand of the player at playerIndex
// into the live Double auction. price is only used when the offered card is
// a Fixed Price card. The offered card counts as played; if it is the
// artist's round-ending card, the round ends with both cards unauctioned.
func OfferSecondCard(s GameState, playerIndex, cardIndex, price int) (GameState, error) {
	a, ok := s.CurrentAuction()
	if !ok {
		return s, models.Violationf("no auction is running")
	}
	double, ok := a.(auction.DoubleAuction)
	if !ok || !double.Offering() {
		return s, models.Violationf("the %s auction does not take a second card", a.Kind())
	}
	if playerIndex < 0 || playerIndex >= len(s.Players) {
		return s, models.Violationf("player index %d out of range", playerIndex)
	}
	player := s.Players[playerIndex]
	if cardIndex < 0 || cardIndex >= len(player.Hand) {
		return s, models.Violationf("card index %d out of range 0..%d", cardIndex, len(player.Hand)-1)
	}
	card := player.Hand[cardIndex]
	if card.AuctionType == models.AuctionFixedPrice && price < 0 {
		return s, models.Violationf("a fixed price card needs a non-negative price")
	}

	// Validate the offer before deciding whether the round ends on it.
	offered, err := auction.Apply(double, s.Players, auction.Action{
		Kind:     auction.ActionOfferCard,
		PlayerID: player.ID,
		Amount:   price,
		Card:     card,
	})
	if err != nil {
		return s, err
	}

	counts := s.Round.CardsPlayed
	counts[card.Artist]++
	next := s.clone()
	next.Players[playerIndex].Hand = removeCard(player.Hand, cardIndex)
	next.Round.CardsPlayed = counts
	if counts[card.Artist] >= s.Rules.RoundEndingCard {
		next.Round.Phase = RoundEnding{Trigger: []models.Card{double.Lot, card}, EndedBy: playerIndex}
		return next, nil
	}
	next.Round.Phase = AuctionInProgress{Auction: offered}
	return next, nil
}

// ApplyAuctionAction forwards act to the live auction. A finished auction is
// settled at once through the ledger, and its winner receives the paintings
// before the turn passes clockwise.
func ApplyAuctionAction(s GameState, act auction.Action) (GameState, error) {
	a, ok := s.CurrentAuction()
	if !ok {
		return s, models.Violationf("no auction is running")
	}
	if act.Kind == auction.ActionOfferCard {
		return s, models.Violationf("second cards are offered with OfferSecondCard")
	}
	updated, err := auction.Apply(a, s.Players, act)
	if err != nil {
		return s, err
	}
	if !updated.Done() {
		next := s.clone()
		next.Round.Phase = AuctionInProgress{Auction: updated}
		return next, nil
	}
	return resolveAuction(s, updated)
}

func resolveAuction(s GameState, a auction.State) (GameState, error) {
	result, err := auction.Conclude(a)
	if err != nil {
		return s, err
	}
	players, err := ledger.ProcessAuctionPayment(s.Players, result)
	if err != nil {
		return s, err
	}
	winner := models.FindPlayer(players, result.WinnerID)
	// The lot price is carried by the first card; a Double's second card is
	// recorded at zero.
	for i, c := range result.Cards {
		p := models.Painting{Card: c, PurchasedRound: s.Round.Number}
		if i == 0 {
			p.PurchasePrice = result.Price
		}
		players[winner].PurchasedThisRound = append(players[winner].PurchasedThisRound, p)
	}

	next := s.clone()
	next.Players = players
	next.LastResult = &result
	// Play continues left of whoever ran the auction, which for a Double
	// is the player who offered the second card.
	from := models.FindPlayer(players, result.AuctioneerID)
	seat, ok := nextSeatWithCards(players, from)
	if !ok {
		next.Round.Phase = RoundEnding{EndedBy: from}
		return next, nil
	}
	next.Round.AuctioneerIndex = seat
	next.Round.Phase = AwaitingCardPlay{}
	return next, nil
}

// ShouldRoundEnd reports whether the round is over: a round-ending card was
// played, or no player holds a card while none is being auctioned.
func ShouldRoundEnd(s GameState) bool {
	switch s.Round.Phase.(type) {
	case RoundEnding:
		return true
	case AwaitingCardPlay, nil:
		return !s.Over && handsEmpty(s.Players)
	}
	return false
}

// EndRound ranks the artists, records the ranking on the board and sells
// every painting whose artist placed. It fails with ErrPreconditionFailed
// while the round is still being played.
func EndRound(s GameState) (GameState, error) {
	if !ShouldRoundEnd(s) {
		return s, models.Preconditionf("round %d is still active (%s)", s.Round.Number, s.Phase())
	}
	var trigger []models.Card
	endedBy := s.Round.AuctioneerIndex
	if p, ok := s.Round.Phase.(RoundEnding); ok {
		trigger = p.Trigger
		endedBy = p.EndedBy
	}

	ranking := valuation.Rank(s.Round.Number, s.Round.CardsPlayed, s.Rules.RankValues)
	board, err := s.Board.Record(ranking)
	if err != nil {
		return s, err
	}
	merged := selling.MergeRoundPurchases(s.Players)
	outcome, err := selling.SellPaintings(merged, board, ranking, s.Rules.CumulativeValuation)
	if err != nil {
		return s, err
	}

	next := s.clone()
	next.Board = board
	next.Players = outcome.Players
	next.Discard = append(next.Discard, trigger...)
	next.Discard = append(next.Discard, outcome.Discard...)
	next.Round.AuctioneerIndex = (endedBy + 1) % len(s.Players)
	next.Round.Phase = SellingToBank{Ranking: ranking, Sales: outcome.Sales}
	return next, nil
}

// nextSeatWithCards finds the first seat clockwise after from whose hand is
// not empty, wrapping around to from itself.
func nextSeatWithCards(players []models.Player, from int) (int, bool) {
	n := len(players)
	for step := 1; step <= n; step++ {
		i := (from + step) % n
		if len(players[i].Hand) > 0 {
			return i, true
		}
	}
	return 0, false
}

func handsEmpty(players []models.Player) bool {
	for _, p := range players {
		if len(p.Hand) > 0 {
			return false
		}
	}
	return true
}

func removeCard(hand []models.Card, i int) []models.Card {
	out := make([]models.Card, 0, len(hand)-1)
	out = append(out, hand[:i]...)
	return append(out, hand[i+1:]...)
}
