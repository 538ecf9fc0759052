// internal/session/action.go
package session

import (
	"fmt"

	"github.com/jason-s-yu/modernart/internal/auction"
	"github.com/jason-s-yu/modernart/internal/game"
	"github.com/jason-s-yu/modernart/internal/models"
	"github.com/mitchellh/mapstructure"
)

// Action types accepted by HandlePlayerAction.
const (
	ActionPlayCard      = "play_card"
	ActionOfferSecond   = "offer_second_card"
	ActionAuctionBid    = "auction_bid"
	ActionAuctionPass   = "auction_pass"
	ActionAuctionBuy    = "auction_buy"
	ActionAuctionOffer  = "auction_offer"
	ActionAuctionAccept = "auction_accept"
	ActionDecline       = "auction_decline"
)

var auctionKinds = map[string]auction.ActionKind{
	ActionAuctionBid:    auction.ActionBid,
	ActionAuctionPass:   auction.ActionPass,
	ActionAuctionBuy:    auction.ActionBuy,
	ActionAuctionOffer:  auction.ActionOffer,
	ActionAuctionAccept: auction.ActionAccept,
	ActionDecline:       auction.ActionDecline,
}

type actionPayload struct {
	CardIndex int  `mapstructure:"card_index"`
	Price     *int `mapstructure:"price"`
	Amount    int  `mapstructure:"amount"`
}

// DecodeAction turns a raw action into a Decision. A card play without a
// price carries a negative one, which Fixed Price cards reject.
func DecodeAction(action models.GameAction) (game.Decision, error) {
	var p actionPayload
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &p,
	})
	if err != nil {
		return game.Decision{}, err
	}
	if err := decoder.Decode(action.Payload); err != nil {
		return game.Decision{}, models.Violationf("bad payload for %s: %v", action.ActionType, err)
	}

	price := -1
	if p.Price != nil {
		price = *p.Price
	}
	switch action.ActionType {
	case ActionPlayCard:
		return game.Decision{Kind: game.DecisionPlayCard, CardIndex: p.CardIndex, Price: price}, nil
	case ActionOfferSecond:
		return game.Decision{Kind: game.DecisionSecondCard, CardIndex: p.CardIndex, Price: price}, nil
	}
	if kind, ok := auctionKinds[action.ActionType]; ok {
		return game.Decision{Kind: game.DecisionAuction, Action: auction.Action{Kind: kind, Amount: p.Amount}}, nil
	}
	return game.Decision{}, models.Violationf("unknown action type %q", action.ActionType)
}

// EncodeDecision is the inverse of DecodeAction. Session action records
// carry its output, so DecodeAction replays them.
func EncodeDecision(d game.Decision) (models.GameAction, error) {
	switch d.Kind {
	case game.DecisionPlayCard, game.DecisionSecondCard:
		actionType := ActionPlayCard
		if d.Kind == game.DecisionSecondCard {
			actionType = ActionOfferSecond
		}
		payload := map[string]interface{}{"card_index": d.CardIndex}
		if d.Price >= 0 {
			payload["price"] = d.Price
		}
		return models.GameAction{ActionType: actionType, Payload: payload}, nil
	case game.DecisionAuction:
		for name, kind := range auctionKinds {
			if kind == d.Action.Kind {
				payload := map[string]interface{}{}
				if d.Action.Amount != 0 {
					payload["amount"] = d.Action.Amount
				}
				return models.GameAction{ActionType: name, Payload: payload}, nil
			}
		}
	}
	return models.GameAction{}, fmt.Errorf("cannot encode decision %q", d.Kind)
}
