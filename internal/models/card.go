// internal/models/card.go
package models

import "fmt"

// AuctionType selects which auction mechanism a card triggers when played.
type AuctionType string

const (
	AuctionOpen       AuctionType = "open"
	AuctionHidden     AuctionType = "hidden"
	AuctionFixedPrice AuctionType = "fixed_price"
	AuctionOneOffer   AuctionType = "one_offer"
	AuctionDouble     AuctionType = "double"
)

// AuctionTypes lists every auction type in a stable order.
var AuctionTypes = []AuctionType{AuctionOpen, AuctionHidden, AuctionFixedPrice, AuctionOneOffer, AuctionDouble}

// Valid reports whether t is a known auction type.
func (t AuctionType) Valid() bool {
	switch t {
	case AuctionOpen, AuctionHidden, AuctionFixedPrice, AuctionOneOffer, AuctionDouble:
		return true
	}
	return false
}

// Card is an immutable painting card. ID is the card's index in the deck arena
// and is unique across a game.
type Card struct {
	ID          int         `json:"id"`
	Artist      Artist      `json:"artist"`
	AuctionType AuctionType `json:"auctionType"`
}

func (c Card) String() string {
	return fmt.Sprintf("#%d %s/%s", c.ID, c.Artist.Code(), c.AuctionType)
}

// Painting is a card that has been bought at auction.
type Painting struct {
	Card           Card `json:"card"`
	PurchasePrice  int  `json:"purchasePrice"`
	PurchasedRound int  `json:"purchasedRound"`
}
