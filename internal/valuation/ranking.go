// Package valuation ranks artists at the end of a round and keeps the board
// of per-round artist values.
package valuation

import (
	"sort"

	"github.com/jason-s-yu/modernart/internal/models"
)

// Counts is the number of cards played per artist in one round, indexed by
// models.Artist.
type Counts [models.NumArtists]int

// Entry is one artist's outcome in a round. Rank is 1-based; 0 means the
// artist did not place and is worth nothing this round.
type Entry struct {
	Artist models.Artist `json:"artist"`
	Count  int           `json:"count"`
	Rank   int           `json:"rank"`
	Value  int           `json:"value"`
}

// Ranking is the result of ranking one round.
type Ranking struct {
	Round   int     `json:"round"`
	Entries []Entry `json:"entries"` // best first, every artist present
}

// Rank orders artists by cards played, highest first, breaking ties by the
// fixed artist priority. The first len(rankValues) artists with at least one
// card receive those values; everyone else gets rank 0 and value 0.
// Identical input always gives an identical ranking.
func Rank(round int, counts Counts, rankValues []int) Ranking {
	entries := make([]Entry, 0, models.NumArtists)
	for _, a := range models.Artists {
		entries = append(entries, Entry{Artist: a, Count: counts[a]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Artist < entries[j].Artist
	})
	for i := range entries {
		if i < len(rankValues) && entries[i].Count > 0 {
			entries[i].Rank = i + 1
			entries[i].Value = rankValues[i]
		}
	}
	return Ranking{Round: round, Entries: entries}
}

// Entry returns the outcome for artist.
func (r Ranking) Entry(artist models.Artist) Entry {
	for _, e := range r.Entries {
		if e.Artist == artist {
			return e
		}
	}
	return Entry{Artist: artist}
}

// Value is artist's value in this round only.
func (r Ranking) Value(artist models.Artist) int {
	return r.Entry(artist).Value
}

// Ranked reports whether artist placed this round.
func (r Ranking) Ranked(artist models.Artist) bool {
	return r.Entry(artist).Rank > 0
}
