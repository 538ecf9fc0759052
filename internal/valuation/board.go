package valuation

import (
	"github.com/jason-s-yu/modernart/internal/models"
)

// Board is the per-artist value history, one slot per round. Slots are
// filled in round order and never overwritten.
type Board struct {
	Slots [models.NumArtists][]int `json:"slots"`
	// Round is the number of rounds recorded so far.
	Round int `json:"round"`
}

// NewBoard returns an empty board with rounds slots per artist.
func NewBoard(rounds int) Board {
	var b Board
	for a := range b.Slots {
		b.Slots[a] = make([]int, rounds)
	}
	return b
}

// Record appends the values of r. Rounds must be recorded in order.
func (b Board) Record(r Ranking) (Board, error) {
	if r.Round != b.Round+1 {
		return b, models.Preconditionf("board holds %d rounds, cannot record round %d", b.Round, r.Round)
	}
	if r.Round > len(b.Slots[0]) {
		return b, models.Preconditionf("board has no slot for round %d", r.Round)
	}
	var next Board
	for a := range b.Slots {
		next.Slots[a] = append([]int(nil), b.Slots[a]...)
		next.Slots[a][r.Round-1] = r.Value(models.Artist(a))
	}
	next.Round = r.Round
	return next, nil
}

// ValueAt is artist's value recorded for round (1-based), or 0.
func (b Board) ValueAt(artist models.Artist, round int) int {
	if !artist.Valid() || round < 1 || round > b.Round {
		return 0
	}
	return b.Slots[artist][round-1]
}

// Cumulative sums artist's slots up to the board's current round.
func (b Board) Cumulative(artist models.Artist) int {
	total := 0
	for round := 1; round <= b.Round; round++ {
		total += b.ValueAt(artist, round)
	}
	return total
}

// SaleValue is what one painting by artist is worth when sold after the
// round described by current. An artist that did not place in current is
// worth nothing, whatever it earned before. With cumulative set the value
// is the board total (board must already include current).
func SaleValue(b Board, current Ranking, artist models.Artist, cumulative bool) int {
	if !current.Ranked(artist) {
		return 0
	}
	if cumulative {
		return b.Cumulative(artist)
	}
	return current.Value(artist)
}
