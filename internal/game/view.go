// internal/game/view.go
package game

import (
	"github.com/google/uuid"
	"github.com/jason-s-yu/modernart/internal/auction"
	"github.com/jason-s-yu/modernart/internal/models"
	"github.com/jason-s-yu/modernart/internal/valuation"
)

// PlayerView is one player as seen by another. Only the viewer's own hand is
// revealed.
type PlayerView struct {
	PlayerID           uuid.UUID         `json:"playerId"`
	Name               string            `json:"name"`
	Money              int               `json:"money"`
	HandSize           int               `json:"handSize"`
	Hand               []models.Card     `json:"hand,omitempty"`
	Purchases          []models.Painting `json:"purchases"`
	PurchasedThisRound []models.Painting `json:"purchasedThisRound"`
	IsAI               bool              `json:"isAI"`
	IsCurrentTurn      bool              `json:"isCurrentTurn"`
}

// AuctionView describes the live auction without exposing sealed bids.
type AuctionView struct {
	Kind                 models.AuctionType `json:"kind"`
	Cards                []models.Card      `json:"cards"`
	AuctioneerID         uuid.UUID          `json:"auctioneerId"`
	OriginalAuctioneerID uuid.UUID          `json:"originalAuctioneerId"`
	// OfferingSecondCard is set while a Double auction waits for a second card.
	OfferingSecondCard bool `json:"offeringSecondCard"`
	// HighBid is the standing bid or offer; for Fixed Price it is the price.
	HighBid      int         `json:"highBid"`
	HighBidderID uuid.UUID   `json:"highBidderId,omitempty"`
	Submitted    []uuid.UUID `json:"submitted,omitempty"`
	Awaiting     []uuid.UUID `json:"awaiting"`
}

// View is the game as one player is allowed to see it.
type View struct {
	GameID          uuid.UUID            `json:"gameId"`
	ViewerID        uuid.UUID            `json:"viewerId"`
	Round           int                  `json:"round"`
	Phase           PhaseKind            `json:"phase"`
	CurrentPlayerID uuid.UUID            `json:"currentPlayerId"`
	DeckSize        int                  `json:"deckSize"`
	DiscardSize     int                  `json:"discardSize"`
	CardsPlayed     valuation.Counts     `json:"cardsPlayed"`
	Board           valuation.Board      `json:"board"`
	Players         []PlayerView         `json:"players"`
	Auction         *AuctionView         `json:"auction,omitempty"`
	LastResult      *auction.Result      `json:"lastResult,omitempty"`
	ValidActions    []auction.ActionKind `json:"validActions,omitempty"`
	Over            bool                 `json:"over"`
	Winners         []uuid.UUID          `json:"winners,omitempty"`
}

// ViewFor builds the snapshot sent to viewer.
func ViewFor(s GameState, viewer uuid.UUID) View {
	v := View{
		GameID:          s.ID,
		ViewerID:        viewer,
		Round:           s.Round.Number,
		Phase:           s.Phase(),
		CurrentPlayerID: Pending(s),
		DeckSize:        s.Deck.Remaining(),
		DiscardSize:     len(s.Discard),
		CardsPlayed:     s.Round.CardsPlayed,
		Board:           s.Board,
		LastResult:      s.LastResult,
		Over:            s.Over,
		Winners:         append([]uuid.UUID(nil), s.Winners...),
	}
	for _, p := range s.Players {
		pv := PlayerView{
			PlayerID:           p.ID,
			Name:               p.Name,
			Money:              p.Money,
			HandSize:           len(p.Hand),
			Purchases:          append([]models.Painting(nil), p.Purchases...),
			PurchasedThisRound: append([]models.Painting(nil), p.PurchasedThisRound...),
			IsAI:               p.IsAI,
			IsCurrentTurn:      p.ID == v.CurrentPlayerID,
		}
		if p.ID == viewer {
			pv.Hand = append([]models.Card(nil), p.Hand...)
		}
		v.Players = append(v.Players, pv)
	}
	if a, ok := s.CurrentAuction(); ok {
		v.Auction = viewAuction(a)
		v.ValidActions = auction.ValidActions(a, s.Players, viewer)
	}
	return v
}

func viewAuction(a auction.State) *AuctionView {
	av := &AuctionView{
		Kind:                 a.Kind(),
		Cards:                a.Cards(),
		AuctioneerID:         a.Auctioneer(),
		OriginalAuctioneerID: a.Auctioneer(),
		Awaiting:             auction.Awaiting(a),
	}
	live := a
	if d, ok := a.(auction.DoubleAuction); ok {
		av.OriginalAuctioneerID = d.OriginalAuctioneer()
		av.OfferingSecondCard = d.Offering()
		if d.Nested == nil {
			return av
		}
		live = d.Nested
	}
	switch l := live.(type) {
	case auction.OpenAuction:
		av.HighBid, av.HighBidderID = l.HighBid, l.HighBidderID
	case auction.HiddenAuction:
		for _, b := range l.Sealed {
			av.Submitted = append(av.Submitted, b.PlayerID)
		}
	case auction.FixedPriceAuction:
		av.HighBid = l.Price
	case auction.OneOfferAuction:
		av.HighBid, av.HighBidderID = l.HighOffer, l.HighOffererID
	}
	return av
}

// Me returns the viewer's own entry.
func (v View) Me() PlayerView {
	for _, p := range v.Players {
		if p.PlayerID == v.ViewerID {
			return p
		}
	}
	return PlayerView{}
}
