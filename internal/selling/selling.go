// Package selling converts held paintings into bank income at the end of a
// round.
package selling

import (
	"github.com/google/uuid"
	"github.com/jason-s-yu/modernart/internal/ledger"
	"github.com/jason-s-yu/modernart/internal/models"
	"github.com/jason-s-yu/modernart/internal/valuation"
)

// Sale records one painting bought back by the bank.
type Sale struct {
	PlayerID uuid.UUID       `json:"playerId"`
	Painting models.Painting `json:"painting"`
	Value    int             `json:"value"`
}

// Outcome is the result of a selling phase.
type Outcome struct {
	Players []models.Player
	// Discard holds the cards of sold paintings, in sale order.
	Discard []models.Card
	Sales   []Sale
}

// MergeRoundPurchases moves every player's PurchasedThisRound into Purchases.
func MergeRoundPurchases(players []models.Player) []models.Player {
	out := models.ClonePlayers(players)
	for i := range out {
		out[i].Purchases = append(out[i].Purchases, out[i].PurchasedThisRound...)
		out[i].PurchasedThisRound = nil
	}
	return out
}

// SellPaintings sells every painting in each player's Purchases whose artist
// placed in ranking. Worthless paintings stay with their owner. Sold cards
// leave the collection and are returned in Outcome.Discard.
func SellPaintings(players []models.Player, board valuation.Board, ranking valuation.Ranking, cumulative bool) (Outcome, error) {
	out := models.ClonePlayers(players)
	var result Outcome
	for i := range out {
		kept := make([]models.Painting, 0, len(out[i].Purchases))
		for _, p := range out[i].Purchases {
			value := valuation.SaleValue(board, ranking, p.Card.Artist, cumulative)
			if value == 0 {
				kept = append(kept, p)
				continue
			}
			paid, err := ledger.ProcessBankSale(out, out[i].ID, value)
			if err != nil {
				return Outcome{}, err
			}
			out = paid
			result.Discard = append(result.Discard, p.Card)
			result.Sales = append(result.Sales, Sale{PlayerID: out[i].ID, Painting: p, Value: value})
		}
		out[i].Purchases = kept
	}
	result.Players = out
	return result, nil
}
