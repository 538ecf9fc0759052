package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jason-s-yu/modernart/internal/game"
	"github.com/jason-s-yu/modernart/internal/models"
	"github.com/jason-s-yu/modernart/internal/valuation"
	"github.com/pterm/pterm"
)

func settlementLine(names map[uuid.UUID]string, payload map[string]interface{}) string {
	winner, _ := payload["winner"].(string)
	auctioneer, _ := payload["auctioneer"].(string)
	cards, _ := payload["cards"].([]models.Card)
	price, _ := payload["price"].(int)

	lot := ""
	for i, c := range cards {
		if i > 0 {
			lot += " + "
		}
		lot += c.String()
	}
	w, _ := uuid.Parse(winner)
	a, _ := uuid.Parse(auctioneer)
	if w == a {
		return pterm.Sprintf("%s keeps %s for $%d", pterm.LightCyan(names[w]), lot, price)
	}
	return pterm.Sprintf("%s buys %s from %s for $%d", pterm.LightCyan(names[w]), lot, names[a], price)
}

func roundPanel(payload map[string]interface{}) pterm.Panel {
	pbox := pterm.DefaultBox.WithHorizontalPadding(4).WithTopPadding(1).WithBottomPadding(1)
	round, _ := payload["round"].(int)
	values, _ := payload["values"].(map[string]int)

	type placed struct {
		artist models.Artist
		value  int
	}
	var ranked []placed
	for code, v := range values {
		a, err := models.ArtistFromCode(code)
		if err != nil || v == 0 {
			continue
		}
		ranked = append(ranked, placed{a, v})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].value != ranked[j].value {
			return ranked[i].value > ranked[j].value
		}
		return ranked[i].artist < ranked[j].artist
	})

	info := ""
	for _, p := range ranked {
		info += pterm.Sprintfln("%-16s $%d", p.artist.Name(), p.value)
	}
	if info == "" {
		info = pterm.Sprintfln("no artist placed")
	}
	title := pterm.LightYellow(fmt.Sprintf("|ROUND %d|", round))
	return pterm.Panel{Data: pbox.WithTitle(title).WithTitleTopCenter().Sprint(info)}
}

func boardTable(b valuation.Board) pterm.TableData {
	header := []string{"Artist"}
	for r := 1; r <= b.Round; r++ {
		header = append(header, "R"+strconv.Itoa(r))
	}
	header = append(header, "Total")
	data := pterm.TableData{header}
	for _, a := range models.Artists {
		row := []string{a.Name()}
		for r := 1; r <= b.Round; r++ {
			row = append(row, strconv.Itoa(b.ValueAt(a, r)))
		}
		row = append(row, strconv.Itoa(b.Cumulative(a)))
		data = append(data, row)
	}
	return data
}

func standingsTable(standings []game.Standing) pterm.TableData {
	data := pterm.TableData{{"Place", "Player", "Money", "Paintings"}}
	for _, s := range standings {
		name := s.Player.Name
		if s.Place == 1 {
			name = pterm.LightGreen(name)
		}
		data = append(data, []string{
			strconv.Itoa(s.Place),
			name,
			strconv.Itoa(s.Player.Money),
			strconv.Itoa(s.Paintings),
		})
	}
	return data
}

func summaryTable(finals []game.GameState, seed int64) pterm.TableData {
	data := pterm.TableData{{"Seed", "Winner", "Money", "Rounds"}}
	for i, final := range finals {
		standings := game.Standings(final.Players)
		var winners []string
		for _, st := range standings {
			if st.Place == 1 {
				winners = append(winners, st.Player.Name)
			}
		}
		data = append(data, []string{
			strconv.FormatInt(seed+int64(i), 10),
			strings.Join(winners, ", "),
			strconv.Itoa(standings[0].Player.Money),
			strconv.Itoa(final.Board.Round),
		})
	}
	return data
}
