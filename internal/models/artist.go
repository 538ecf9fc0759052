// internal/models/artist.go
package models

import "fmt"

// Artist is one of the five painters a card can belong to.
// The numeric order of the constants is the global tie-break priority:
// a lower value outranks a higher one when play counts are equal.
type Artist int

const (
	ManuelCarvalho Artist = iota
	SigridThaler
	DanielMelim
	RamonMartins
	RafaelSilveira
)

// NumArtists is the number of artists in the game.
const NumArtists = 5

// Artists lists every artist in priority order.
var Artists = [NumArtists]Artist{ManuelCarvalho, SigridThaler, DanielMelim, RamonMartins, RafaelSilveira}

var artistNames = [NumArtists]string{"Manuel Carvalho", "Sigrid Thaler", "Daniel Melim", "Ramon Martins", "Rafael Silveira"}
var artistCodes = [NumArtists]string{"M", "S", "D", "R", "F"}

// artistSupply is the number of cards printed for each artist.
var artistSupply = [NumArtists]int{12, 13, 14, 15, 16}

// Valid reports whether a is one of the five known artists.
func (a Artist) Valid() bool {
	return a >= 0 && int(a) < NumArtists
}

// Name returns the artist's display name.
func (a Artist) Name() string {
	if !a.Valid() {
		return fmt.Sprintf("Artist(%d)", int(a))
	}
	return artistNames[a]
}

// Code returns the one-letter short code (M, S, D, R, F).
func (a Artist) Code() string {
	if !a.Valid() {
		return "?"
	}
	return artistCodes[a]
}

func (a Artist) String() string { return a.Name() }

// Supply returns how many cards of this artist exist in a full deck.
func (a Artist) Supply() int {
	if !a.Valid() {
		return 0
	}
	return artistSupply[a]
}

// ArtistFromCode parses a one-letter code back into an Artist.
func ArtistFromCode(code string) (Artist, error) {
	for i, c := range artistCodes {
		if c == code {
			return Artist(i), nil
		}
	}
	return 0, fmt.Errorf("unknown artist code %q", code)
}
