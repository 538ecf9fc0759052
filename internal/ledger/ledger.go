// Package ledger moves money between players and the bank. Every function
// returns a new player slice and leaves its input untouched.
package ledger

import (
	"github.com/google/uuid"
	"github.com/jason-s-yu/modernart/internal/auction"
	"github.com/jason-s-yu/modernart/internal/models"
)

// TransferMoney moves amount from one player to another.
func TransferMoney(players []models.Player, from, to uuid.UUID, amount int) ([]models.Player, error) {
	fi, ti, err := lookup2(players, from, to)
	if err != nil {
		return nil, err
	}
	if amount < 0 {
		return nil, models.Violationf("negative transfer %d", amount)
	}
	if players[fi].Money < amount {
		return nil, models.InsufficientFundsf("player %s has %d, needs %d", from, players[fi].Money, amount)
	}
	out := models.ClonePlayers(players)
	out[fi].Money -= amount
	out[ti].Money += amount
	return out, nil
}

// PayToBank removes amount from a player.
func PayToBank(players []models.Player, from uuid.UUID, amount int) ([]models.Player, error) {
	i := models.FindPlayer(players, from)
	if i < 0 {
		return nil, models.Violationf("unknown player %s", from)
	}
	if amount < 0 {
		return nil, models.Violationf("negative payment %d", amount)
	}
	if players[i].Money < amount {
		return nil, models.InsufficientFundsf("player %s has %d, needs %d", from, players[i].Money, amount)
	}
	out := models.ClonePlayers(players)
	out[i].Money -= amount
	return out, nil
}

// ReceiveFromBank credits amount to a player. The bank never runs out.
func ReceiveFromBank(players []models.Player, to uuid.UUID, amount int) ([]models.Player, error) {
	i := models.FindPlayer(players, to)
	if i < 0 {
		return nil, models.Violationf("unknown player %s", to)
	}
	if amount < 0 {
		return nil, models.Violationf("negative credit %d", amount)
	}
	out := models.ClonePlayers(players)
	out[i].Money += amount
	return out, nil
}

// ProcessAuctionPayment settles a concluded auction. The winner always pays
// the bank first; when the auctioneer is someone else they are then credited
// the same amount, so player-to-player sales conserve total money.
func ProcessAuctionPayment(players []models.Player, result auction.Result) ([]models.Player, error) {
	out, err := PayToBank(players, result.WinnerID, result.Price)
	if err != nil {
		return nil, err
	}
	if result.AuctioneerID != result.WinnerID {
		out, err = ReceiveFromBank(out, result.AuctioneerID, result.Price)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ProcessBankSale pays a player for a painting sold to the bank.
func ProcessBankSale(players []models.Player, seller uuid.UUID, value int) ([]models.Player, error) {
	return ReceiveFromBank(players, seller, value)
}

func lookup2(players []models.Player, a, b uuid.UUID) (int, int, error) {
	ai := models.FindPlayer(players, a)
	if ai < 0 {
		return 0, 0, models.Violationf("unknown player %s", a)
	}
	bi := models.FindPlayer(players, b)
	if bi < 0 {
		return 0, 0, models.Violationf("unknown player %s", b)
	}
	return ai, bi, nil
}
