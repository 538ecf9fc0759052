// cmd/modernart/main.go runs complete games between scripted players and
// prints the board and the final standings.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/google/uuid"
	"github.com/jason-s-yu/modernart/internal/cache"
	"github.com/jason-s-yu/modernart/internal/config"
	"github.com/jason-s-yu/modernart/internal/database"
	"github.com/jason-s-yu/modernart/internal/game"
	"github.com/jason-s-yu/modernart/internal/session"
	_ "github.com/joho/godotenv/autoload"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
	"github.com/sirupsen/logrus"
)

func main() {
	settings := config.Load()

	playersFlag := flag.Int("players", 4, "number of players (3-5)")
	seedFlag := flag.Int64("seed", settings.Seed, "deck shuffle seed")
	limitFlag := flag.Int("limit", 12, "highest price a scripted player pays for a lot")
	rulesFlag := flag.String("rules", settings.RulesJSON, "rule overrides as a JSON object")
	quietFlag := flag.Bool("quiet", false, "only print the final standings")
	gamesFlag := flag.Int("games", 1, "number of games to play concurrently")
	flag.Parse()

	logger := logrus.New()
	level, err := logrus.ParseLevel(settings.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	rules, err := parseRules(*rulesFlag)
	if err != nil {
		logger.WithError(err).Fatal("invalid rules")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !*quietFlag {
		title, err := pterm.DefaultBigText.WithLetters(
			putils.LettersFromStringWithStyle("Modern ", pterm.FgLightRed.ToStyle()),
			putils.LettersFromStringWithStyle("Art", pterm.FgDarkGray.ToStyle()),
		).Srender()
		if err == nil {
			pterm.DefaultCenter.Println(title)
		}
	}

	var publisher session.Publisher
	if settings.RedisAddr != "" {
		queue, err := cache.Connect(ctx, settings.RedisAddr, settings.RedisDB, settings.HistoryQueue)
		if err != nil {
			logger.WithError(err).Warn("history publishing disabled")
		} else {
			defer queue.Close()
			publisher = queue
		}
	}

	var onGameEnd session.OnGameEndFunc
	if settings.DatabaseURL != "" {
		if err := connectDatabase(ctx, settings.DatabaseURL); err != nil {
			logger.WithError(err).Warn("result persistence disabled")
		} else {
			defer database.Close()
			onGameEnd = func(final game.GameState) {
				if err := database.RecordGameResults(context.Background(), final.ID, final.Players, final.Winners, final.Round.Number); err != nil {
					logger.WithError(err).Error("failed to record results")
				}
				if err := database.StoreGameState(context.Background(), final.ID, true, game.ViewFor(final, uuid.Nil)); err != nil {
					logger.WithError(err).Error("failed to store final state")
				}
			}
		}
	}

	n := *gamesFlag
	if n < 1 {
		n = 1
	}
	verbose := n == 1 && !*quietFlag
	store := session.NewStore()
	ids := make([]uuid.UUID, n)
	for i := range ids {
		sess, err := startSession(*playersFlag, rules, *seedFlag+int64(i), logger)
		if err != nil {
			logger.WithError(err).Fatal("cannot start game")
		}
		sess.Publisher = publisher
		sess.OnGameEnd = onGameEnd
		if verbose {
			sess.BroadcastFn = printer(sess)
		}
		store.Add(sess)
		ids[i] = sess.ID
	}
	logger.WithField("games", store.Len()).Debug("games started")

	finals := playAll(ctx, store, ids, *limitFlag, logger)

	if left := store.Len(); left > 0 {
		logger.WithField("games", left).Fatal("games did not finish")
	}

	if n == 1 {
		final := finals[0]
		pterm.DefaultSection.Println("Board")
		_ = pterm.DefaultTable.WithHasHeader().WithData(boardTable(final.Board)).Render()
		pterm.DefaultSection.Println("Standings")
		_ = pterm.DefaultTable.WithHasHeader().WithData(standingsTable(game.Standings(final.Players))).Render()
		return
	}
	pterm.DefaultSection.Println("Results")
	_ = pterm.DefaultTable.WithHasHeader().WithData(summaryTable(finals, *seedFlag)).Render()
}

func startSession(players int, rules config.Rules, seed int64, logger *logrus.Logger) (*session.Session, error) {
	seats := make([]game.Seat, players)
	for i := range seats {
		seats[i] = game.Seat{Name: fmt.Sprintf("Bot %d", i+1), IsAI: true}
	}
	return session.Start(game.Setup{Seats: seats, Rules: &rules, Seed: seed}, logger)
}

// playAll runs the stored sessions concurrently with scripted players.
// Finished sessions leave the store; aborted ones stay in it.
func playAll(ctx context.Context, store *session.Store, ids []uuid.UUID, limit int, logger *logrus.Logger) []game.GameState {
	finals := make([]game.GameState, len(ids))
	var wg sync.WaitGroup
	for i, id := range ids {
		sess, ok := store.Get(id)
		if !ok {
			continue
		}
		wg.Add(1)
		go func(i int, sess *session.Session) {
			defer wg.Done()
			deciders := make(map[uuid.UUID]game.Decider)
			for _, p := range sess.State().Players {
				deciders[p.ID] = game.Baseline{Limit: limit}
			}
			sess.Announce()
			final, err := sess.Run(ctx, deciders)
			sess.Wait()
			if err != nil {
				logger.WithError(err).WithField("game", sess.ID).Error("game aborted")
				return
			}
			finals[i] = final
			store.Delete(sess.ID)
		}(i, sess)
	}
	wg.Wait()
	return finals
}

// printer narrates a single game as it is played.
func printer(sess *session.Session) func(session.Event) {
	names := make(map[uuid.UUID]string)
	for _, p := range sess.State().Players {
		names[p.ID] = p.Name
	}
	return func(ev session.Event) {
		switch ev.Type {
		case session.EventAuctionSettled:
			pterm.Info.Println(settlementLine(names, ev.Payload))
		case session.EventRoundEnd:
			_ = pterm.DefaultPanel.WithPanels(pterm.Panels{{roundPanel(ev.Payload)}}).Render()
		}
	}
}

func parseRules(overrides string) (config.Rules, error) {
	if overrides == "" {
		return config.DefaultRules(), nil
	}
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(overrides), &m); err != nil {
		return config.Rules{}, fmt.Errorf("parse rules json: %w", err)
	}
	return config.ParseRules(m, config.DefaultRules())
}

func connectDatabase(ctx context.Context, url string) error {
	if err := database.ConnectDB(ctx, url); err != nil {
		return err
	}
	return database.EnsureSchema(ctx)
}
