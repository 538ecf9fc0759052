// internal/config/rules.go
package config

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// MinPlayers and MaxPlayers bound the table size.
const (
	MinPlayers = 3
	MaxPlayers = 5
)

// Rules holds the tunable constants of a game. DefaultRules returns the
// standard values; hosts may override individual fields with Update.
type Rules struct {
	// StartingMoney is the money each player starts with.
	StartingMoney int `json:"startingMoney" mapstructure:"startingMoney"`

	// Rounds is the number of rounds in a game.
	Rounds int `json:"rounds" mapstructure:"rounds"`

	// RoundEndingCard is the per-artist card count that ends a round.
	RoundEndingCard int `json:"roundEndingCard" mapstructure:"roundEndingCard"`

	// RankValues are the values paid for rank 1, 2, 3 and so on.
	RankValues []int `json:"rankValues" mapstructure:"rankValues"`

	// CumulativeValuation sells at the board sum instead of the current
	// round's value. The artist must still rank in the current round.
	CumulativeValuation bool `json:"cumulativeValuation" mapstructure:"cumulativeValuation"`

	// DealTable maps player count to the cards dealt in each round.
	DealTable map[int][]int `json:"dealTable" mapstructure:"dealTable"`
}

// DefaultRules returns the standard rule set.
func DefaultRules() Rules {
	return Rules{
		StartingMoney:   100,
		Rounds:          4,
		RoundEndingCard: 5,
		RankValues:      []int{30, 20, 10},
		DealTable: map[int][]int{
			3: {10, 6, 6, 0},
			4: {9, 4, 4, 0},
			5: {8, 3, 3, 0},
		},
	}
}

// Clone returns a copy that shares no slices or maps with r.
func (r Rules) Clone() Rules {
	c := r
	c.RankValues = append([]int(nil), r.RankValues...)
	c.DealTable = make(map[int][]int, len(r.DealTable))
	for k, v := range r.DealTable {
		c.DealTable[k] = append([]int(nil), v...)
	}
	return c
}

// Update applies the overrides in newRules. Keys that are absent keep their
// current value. The result is validated before it replaces r.
func (r *Rules) Update(newRules map[string]interface{}) error {
	updated := r.Clone()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &updated,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return fmt.Errorf("build rules decoder: %w", err)
	}
	if err := decoder.Decode(newRules); err != nil {
		return fmt.Errorf("decode rules: %w", err)
	}
	if err := updated.Validate(); err != nil {
		return err
	}
	*r = updated
	return nil
}

// ParseRules converts a map of overrides into a Rules value based on current.
func ParseRules(rules map[string]interface{}, current Rules) (Rules, error) {
	parsed := current.Clone()
	err := parsed.Update(rules)
	return parsed, err
}

// Validate checks the rule set for internal consistency.
func (r Rules) Validate() error {
	if r.StartingMoney < 0 {
		return fmt.Errorf("startingMoney must be non-negative")
	}
	if r.Rounds < 1 {
		return fmt.Errorf("rounds must be at least 1")
	}
	if r.RoundEndingCard < 1 {
		return fmt.Errorf("roundEndingCard must be at least 1")
	}
	if len(r.RankValues) == 0 {
		return fmt.Errorf("rankValues must not be empty")
	}
	for i, v := range r.RankValues {
		if v < 0 {
			return fmt.Errorf("rankValues[%d] must be non-negative", i)
		}
	}
	for n := MinPlayers; n <= MaxPlayers; n++ {
		deal, ok := r.DealTable[n]
		if !ok {
			return fmt.Errorf("dealTable has no entry for %d players", n)
		}
		if len(deal) != r.Rounds {
			return fmt.Errorf("dealTable for %d players has %d rounds, want %d", n, len(deal), r.Rounds)
		}
		for round, c := range deal {
			if c < 0 {
				return fmt.Errorf("dealTable for %d players round %d is negative", n, round+1)
			}
		}
	}
	return nil
}

// DealCount returns how many cards each player receives at the start of round
// (1-based) in a game of playerCount players.
func (r Rules) DealCount(playerCount, round int) (int, error) {
	deal, ok := r.DealTable[playerCount]
	if !ok {
		return 0, fmt.Errorf("unsupported player count %d", playerCount)
	}
	if round < 1 || round > len(deal) {
		return 0, fmt.Errorf("round %d out of range 1..%d", round, len(deal))
	}
	return deal[round-1], nil
}
