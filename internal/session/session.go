// internal/session/session.go
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/modernart/internal/auction"
	"github.com/jason-s-yu/modernart/internal/cache"
	"github.com/jason-s-yu/modernart/internal/game"
	"github.com/jason-s-yu/modernart/internal/models"
	"github.com/sirupsen/logrus"
)

// Publisher receives every action record of a session. *cache.Queue
// implements it.
type Publisher interface {
	Publish(ctx context.Context, record cache.ActionRecord) error
}

// OnGameEndFunc handles a finished game, e.g. persisting its results.
type OnGameEndFunc func(final game.GameState)

// Session hosts one game. It owns the current immutable snapshot and
// serialises every change to it.
type Session struct {
	ID uuid.UUID

	Mu    sync.Mutex
	state game.GameState

	actionIndex int // increments for each game action for the historian
	publishing  sync.WaitGroup

	log *logrus.Entry

	// Publisher, when set, receives action records asynchronously.
	Publisher Publisher

	// BroadcastFn is used to send events to all players. If nil, no broadcast is done.
	BroadcastFn func(ev Event)

	// BroadcastToPlayerFn sends an event to a single specific player.
	BroadcastToPlayerFn func(playerID uuid.UUID, ev Event)

	// OnGameEnd is invoked once when the game finishes.
	OnGameEnd OnGameEndFunc
}

// Start creates a game from setup and wraps it in a Session.
func Start(setup game.Setup, logger *logrus.Logger) (*Session, error) {
	state, err := game.StartGame(setup)
	if err != nil {
		return nil, err
	}
	return New(state, logger), nil
}

// New wraps an existing game state.
func New(state game.GameState, logger *logrus.Logger) *Session {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Session{
		ID:    state.ID,
		state: state,
		log:   logger.WithField("game", state.ID),
	}
}

// Announce records the start of the game and tells the first player to act.
// Call it after the hooks are set.
func (s *Session) Announce() {
	s.Mu.Lock()
	defer s.Mu.Unlock()

	players := make([]map[string]interface{}, len(s.state.Players))
	for i, p := range s.state.Players {
		players[i] = map[string]interface{}{"id": p.ID.String(), "name": p.Name, "isAI": p.IsAI}
	}
	payload := map[string]interface{}{"players": players, "round": s.state.Round.Number}
	s.log.WithField("players", len(players)).Info("game started")
	s.logAction(uuid.Nil, string(EventGameStart), payload)
	s.fireEvent(Event{Type: EventGameStart, Payload: payload})
	s.announceTurn()
	s.syncAll()
}

// State returns the current snapshot.
func (s *Session) State() game.GameState {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	return s.state
}

// View returns the snapshot as playerID may see it.
func (s *Session) View(playerID uuid.UUID) game.View {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	return game.ViewFor(s.state, playerID)
}

// HandlePlayerAction decodes and applies a raw action from playerID.
// Rejected actions are reported to that player and returned.
func (s *Session) HandlePlayerAction(playerID uuid.UUID, action models.GameAction) error {
	d, err := DecodeAction(action)
	if err != nil {
		s.Mu.Lock()
		defer s.Mu.Unlock()
		s.reject(playerID, action.ActionType, err)
		return err
	}
	return s.Apply(playerID, d)
}

// Apply performs d for playerID, then runs any automatic steps that follow
// (ending the round, dealing the next one, ending the game).
func (s *Session) Apply(playerID uuid.UUID, d game.Decision) error {
	s.Mu.Lock()
	defer s.Mu.Unlock()

	if s.state.Over {
		err := models.Violationf("game is over")
		s.reject(playerID, string(d.Kind), err)
		return err
	}
	before := s.state
	next, err := game.Apply(before, playerID, d)
	if err != nil {
		s.reject(playerID, string(d.Kind), err)
		return err
	}
	s.state = next
	s.recordDecision(playerID, d, before, next)
	if err := s.advance(); err != nil {
		return err
	}
	s.announceTurn()
	s.syncAll()
	return nil
}

// Run drives the game to the end with deciders, one step at a time. Players
// missing from deciders must act through HandlePlayerAction; Run waits for
// them by polling until ctx is done.
func (s *Session) Run(ctx context.Context, deciders map[uuid.UUID]game.Decider) (game.GameState, error) {
	for {
		if err := ctx.Err(); err != nil {
			return s.State(), err
		}
		state := s.State()
		if state.Over {
			return state, nil
		}
		id := game.Pending(state)
		decider, ok := deciders[id]
		if !ok {
			select {
			case <-ctx.Done():
				return s.State(), ctx.Err()
			case <-time.After(50 * time.Millisecond):
			}
			continue
		}
		d, err := decider.Decide(ctx, game.ViewFor(state, id))
		if err != nil {
			return state, fmt.Errorf("player %s: %w", id, err)
		}
		if err := s.Apply(id, d); err != nil {
			return s.State(), err
		}
	}
}

// Wait blocks until every queued action record was published.
func (s *Session) Wait() {
	s.publishing.Wait()
}

// advance performs the automatic steps. Assumes lock is held.
func (s *Session) advance() error {
	for {
		before := s.state
		next, advanced, err := game.Advance(before)
		if err != nil {
			s.log.WithError(err).Error("automatic step failed")
			return err
		}
		if !advanced {
			return nil
		}
		s.state = next
		s.recordTransition(before, next)
	}
}

// recordDecision logs and broadcasts an applied decision. Assumes lock is held.
func (s *Session) recordDecision(playerID uuid.UUID, d game.Decision, before, after game.GameState) {
	fields := logrus.Fields{"player": playerID, "decision": d.Kind}
	payload := map[string]interface{}{}
	var evType EventType
	switch d.Kind {
	case game.DecisionPlayCard, game.DecisionSecondCard:
		evType = EventCardPlayed
		if d.Kind == game.DecisionSecondCard {
			evType = EventSecondCard
		}
		seat := models.FindPlayer(before.Players, playerID)
		c := before.Players[seat].Hand[d.CardIndex]
		payload["card"] = c
		if c.AuctionType == models.AuctionFixedPrice {
			payload["price"] = d.Price
		}
		fields["card"] = c.String()
	case game.DecisionAuction:
		evType = EventAuctionAction
		payload["kind"] = d.Action.Kind
		// Sealed bid amounts stay private until the auction settles.
		if d.Action.Amount != 0 && !isSealed(before) {
			payload["amount"] = d.Action.Amount
		}
		fields["action"] = d.Action.Kind
	}
	s.log.WithFields(fields).Debug("decision applied")
	// The record carries the raw action so a game can be replayed from history.
	if action, err := EncodeDecision(d); err == nil {
		s.logAction(playerID, action.ActionType, action.Payload)
	} else {
		s.log.WithError(err).Warn("decision not recorded")
	}
	s.fireEvent(Event{Type: evType, User: &EventUser{ID: playerID}, Payload: payload})

	if after.LastResult != nil && after.LastResult != before.LastResult {
		s.recordSettlement(*after.LastResult)
	}
	if after.Phase() == game.PhaseRoundEnding {
		s.log.WithField("round", after.Round.Number).Info("round-ending card played")
	}
}

func isSealed(s game.GameState) bool {
	a, ok := s.CurrentAuction()
	return ok && a.Kind() == models.AuctionHidden
}

// recordSettlement logs a concluded auction. Assumes lock is held.
func (s *Session) recordSettlement(r auction.Result) {
	payload := map[string]interface{}{
		"kind":       r.Kind,
		"winner":     r.WinnerID.String(),
		"auctioneer": r.AuctioneerID.String(),
		"price":      r.Price,
		"cards":      r.Cards,
		"profit":     r.Profit,
	}
	s.log.WithFields(logrus.Fields{
		"winner": r.WinnerID,
		"price":  r.Price,
		"kind":   r.Kind,
	}).Info("auction settled")
	s.logAction(r.WinnerID, string(EventAuctionSettled), payload)
	s.fireEvent(Event{Type: EventAuctionSettled, User: &EventUser{ID: r.WinnerID}, Payload: payload})
}

// recordTransition logs an automatic step. Assumes lock is held.
func (s *Session) recordTransition(before, after game.GameState) {
	switch p := after.Round.Phase.(type) {
	case game.SellingToBank:
		values := make(map[string]int)
		for _, e := range p.Ranking.Entries {
			values[e.Artist.Code()] = e.Value
		}
		payload := map[string]interface{}{
			"round":  p.Ranking.Round,
			"values": values,
			"sales":  len(p.Sales),
		}
		s.log.WithFields(logrus.Fields{"round": p.Ranking.Round, "sales": len(p.Sales)}).Info("round ended")
		s.logAction(uuid.Nil, string(EventRoundEnd), payload)
		s.fireEvent(Event{Type: EventRoundEnd, Payload: payload})
	case game.AwaitingCardPlay:
		payload := map[string]interface{}{"round": after.Round.Number, "deck": after.Deck.Remaining()}
		s.log.WithField("round", after.Round.Number).Info("round started")
		s.logAction(uuid.Nil, string(EventRoundStart), payload)
		s.fireEvent(Event{Type: EventRoundStart, Payload: payload})
	case game.GameOver:
		s.finish(after)
	}
}

// finish records the end of the game. Assumes lock is held.
func (s *Session) finish(final game.GameState) {
	scores := make(map[string]int, len(final.Players))
	for _, p := range final.Players {
		scores[p.ID.String()] = p.Money
	}
	winners := make([]string, len(final.Winners))
	for i, w := range final.Winners {
		winners[i] = w.String()
	}
	payload := map[string]interface{}{"scores": scores, "winners": winners, "round": final.Round.Number}
	s.log.WithFields(logrus.Fields{"winners": winners, "scores": scores}).Info("game ended")
	s.logAction(uuid.Nil, string(EventGameEnd), payload)
	s.fireEvent(Event{Type: EventGameEnd, Payload: payload})
	if s.OnGameEnd != nil {
		s.OnGameEnd(final)
	}
}

// reject reports a refused action. Assumes lock is held.
func (s *Session) reject(playerID uuid.UUID, actionType string, err error) {
	s.log.WithFields(logrus.Fields{"player": playerID, "action": actionType}).WithError(err).Warn("action rejected")
	s.fireEventToPlayer(playerID, Event{
		Type:    EventPrivateError,
		Payload: map[string]interface{}{"action": actionType, "message": err.Error()},
	})
}

// announceTurn tells everyone who acts next. Assumes lock is held.
func (s *Session) announceTurn() {
	id := game.Pending(s.state)
	if id == uuid.Nil {
		return
	}
	s.fireEvent(Event{
		Type:    EventPlayerTurn,
		User:    &EventUser{ID: id},
		Payload: map[string]interface{}{"phase": s.state.Phase(), "round": s.state.Round.Number},
	})
}

// syncAll sends every player their own view. Assumes lock is held.
func (s *Session) syncAll() {
	if s.BroadcastToPlayerFn == nil {
		return
	}
	for _, p := range s.state.Players {
		v := game.ViewFor(s.state, p.ID)
		s.BroadcastToPlayerFn(p.ID, Event{Type: EventPrivateSync, State: &v})
	}
}

// fireEvent broadcasts an event to all players. Assumes lock is held.
func (s *Session) fireEvent(ev Event) {
	if s.BroadcastFn != nil {
		s.BroadcastFn(ev)
	}
}

// fireEventToPlayer sends an event only to a specific player. Assumes lock is held.
func (s *Session) fireEventToPlayer(playerID uuid.UUID, ev Event) {
	if s.BroadcastToPlayerFn != nil {
		s.BroadcastToPlayerFn(playerID, ev)
	}
}

// logAction queues an action record for the historian. Assumes lock is held.
func (s *Session) logAction(actorID uuid.UUID, actionType string, payload map[string]interface{}) {
	s.actionIndex++
	if s.Publisher == nil {
		return
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}
	record := cache.ActionRecord{
		GameID:        s.ID,
		ActionIndex:   s.actionIndex,
		ActorUserID:   actorID,
		ActionType:    actionType,
		ActionPayload: payload,
		Timestamp:     time.Now().UnixMilli(),
	}
	s.publishing.Add(1)
	go func(rec cache.ActionRecord) {
		defer s.publishing.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := s.Publisher.Publish(ctx, rec); err != nil {
			s.log.WithError(err).WithField("action_index", rec.ActionIndex).Error("publishing game action")
		}
	}(record)
}
