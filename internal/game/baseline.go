// internal/game/baseline.go
package game

import (
	"context"

	"github.com/jason-s-yu/modernart/internal/auction"
	"github.com/jason-s-yu/modernart/internal/models"
)

// Baseline is a simple scripted player. It plays its first card, values
// every lot at Limit and never bids past it. Limit defaults to 12.
type Baseline struct {
	Limit int
}

func (b Baseline) limit(money int) int {
	l := b.Limit
	if l <= 0 {
		l = 12
	}
	if money < l {
		return money
	}
	return l
}

// Decide implements Decider.
func (b Baseline) Decide(_ context.Context, v View) (Decision, error) {
	me := v.Me()
	if v.Auction == nil {
		return Decision{Kind: DecisionPlayCard, CardIndex: 0, Price: b.limit(me.Money) / 2}, nil
	}
	a := v.Auction
	if a.OfferingSecondCard {
		for i, c := range me.Hand {
			if c.Artist == a.Cards[0].Artist && c.AuctionType != models.AuctionDouble {
				return Decision{Kind: DecisionSecondCard, CardIndex: i, Price: b.limit(me.Money) / 2}, nil
			}
		}
		return auctionMove(auction.ActionDecline, 0), nil
	}

	limit := b.limit(me.Money)
	has := func(k auction.ActionKind) bool {
		for _, va := range v.ValidActions {
			if va == k {
				return true
			}
		}
		return false
	}
	switch a.Kind {
	case models.AuctionOpen:
		if a.HighBidderID != me.PlayerID && a.HighBid+1 <= limit && has(auction.ActionBid) {
			return auctionMove(auction.ActionBid, a.HighBid+1), nil
		}
		return auctionMove(auction.ActionPass, 0), nil
	case models.AuctionHidden:
		return auctionMove(auction.ActionBid, limit/2), nil
	case models.AuctionFixedPrice:
		if a.HighBid <= limit && has(auction.ActionBuy) {
			return auctionMove(auction.ActionBuy, 0), nil
		}
		return auctionMove(auction.ActionPass, 0), nil
	case models.AuctionOneOffer:
		if me.PlayerID == a.AuctioneerID {
			return auctionMove(auction.ActionAccept, 0), nil
		}
		if a.HighBid+2 <= limit && has(auction.ActionOffer) {
			return auctionMove(auction.ActionOffer, a.HighBid+2), nil
		}
		return auctionMove(auction.ActionPass, 0), nil
	}
	return auctionMove(auction.ActionPass, 0), nil
}

func auctionMove(kind auction.ActionKind, amount int) Decision {
	return Decision{Kind: DecisionAuction, Action: auction.Action{Kind: kind, Amount: amount}}
}
