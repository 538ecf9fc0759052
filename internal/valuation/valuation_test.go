package valuation

import (
	"testing"

	"github.com/jason-s-yu/modernart/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var standardValues = []int{30, 20, 10}

func TestRankThreeWayTieUsesPriority(t *testing.T) {
	counts := Counts{models.ManuelCarvalho: 3, models.SigridThaler: 3, models.DanielMelim: 3}
	r := Rank(1, counts, standardValues)

	assert.Equal(t, 30, r.Value(models.ManuelCarvalho))
	assert.Equal(t, 20, r.Value(models.SigridThaler))
	assert.Equal(t, 10, r.Value(models.DanielMelim))
	assert.Equal(t, 0, r.Value(models.RamonMartins))
	assert.Equal(t, 0, r.Value(models.RafaelSilveira))
	assert.Equal(t, 0, r.Entry(models.RamonMartins).Rank)
	assert.False(t, r.Ranked(models.RafaelSilveira))
}

func TestRankOrdersByCountThenPriority(t *testing.T) {
	counts := Counts{
		models.ManuelCarvalho: 1,
		models.SigridThaler:   4,
		models.DanielMelim:    2,
		models.RamonMartins:   4,
		models.RafaelSilveira: 5,
	}
	r := Rank(2, counts, standardValues)
	require.Len(t, r.Entries, models.NumArtists)

	assert.Equal(t, models.RafaelSilveira, r.Entries[0].Artist)
	assert.Equal(t, models.SigridThaler, r.Entries[1].Artist, "equal count: higher priority first")
	assert.Equal(t, models.RamonMartins, r.Entries[2].Artist)
	assert.Equal(t, 3, r.Entry(models.RamonMartins).Rank)
	assert.Equal(t, 0, r.Value(models.DanielMelim), "fourth place is worth nothing")
}

func TestRankZeroCountNeverPlaces(t *testing.T) {
	r := Rank(1, Counts{models.RamonMartins: 2}, standardValues)
	assert.Equal(t, 30, r.Value(models.RamonMartins))
	for _, a := range []models.Artist{models.ManuelCarvalho, models.SigridThaler, models.DanielMelim, models.RafaelSilveira} {
		assert.Equal(t, 0, r.Entry(a).Rank, "artist %s", a)
	}
}

func TestRankIsIdempotent(t *testing.T) {
	counts := Counts{2, 2, 2, 2, 2}
	assert.Equal(t, Rank(3, counts, standardValues), Rank(3, counts, standardValues))
}

func TestBoardRecordsInOrder(t *testing.T) {
	b := NewBoard(4)
	r1 := Rank(1, Counts{models.ManuelCarvalho: 5, models.SigridThaler: 1}, standardValues)

	_, err := b.Record(Rank(2, Counts{}, standardValues))
	assert.ErrorIs(t, err, models.ErrPreconditionFailed)

	b1, err := b.Record(r1)
	require.NoError(t, err)
	assert.Equal(t, 0, b.Round, "record does not modify the receiver")
	assert.Equal(t, 30, b1.ValueAt(models.ManuelCarvalho, 1))

	_, err = b1.Record(r1)
	assert.ErrorIs(t, err, models.ErrPreconditionFailed, "slots are never overwritten")

	r2 := Rank(2, Counts{models.ManuelCarvalho: 2, models.DanielMelim: 3}, standardValues)
	b2, err := b1.Record(r2)
	require.NoError(t, err)
	assert.Equal(t, 50, b2.Cumulative(models.ManuelCarvalho))
	assert.Equal(t, 30, b1.Cumulative(models.ManuelCarvalho))
	assert.Equal(t, 30, b2.Cumulative(models.DanielMelim))
}

func TestSaleValueIsNotRetroactive(t *testing.T) {
	b := NewBoard(4)
	r1 := Rank(1, Counts{models.ManuelCarvalho: 5}, standardValues)
	b, err := b.Record(r1)
	require.NoError(t, err)
	r2 := Rank(2, Counts{models.SigridThaler: 5, models.DanielMelim: 2, models.RamonMartins: 1, models.RafaelSilveira: 1}, standardValues)
	b, err = b.Record(r2)
	require.NoError(t, err)

	assert.Equal(t, 0, SaleValue(b, r2, models.ManuelCarvalho, false))
	assert.Equal(t, 0, SaleValue(b, r2, models.ManuelCarvalho, true), "cumulative still needs a current rank")
	assert.Equal(t, 30, SaleValue(b, r2, models.SigridThaler, false))

	r3 := Rank(3, Counts{models.ManuelCarvalho: 4, models.SigridThaler: 5}, standardValues)
	b, err = b.Record(r3)
	require.NoError(t, err)
	assert.Equal(t, 20, SaleValue(b, r3, models.ManuelCarvalho, false))
	assert.Equal(t, 50, SaleValue(b, r3, models.ManuelCarvalho, true))
	assert.Equal(t, 60, SaleValue(b, r3, models.SigridThaler, true))
}
