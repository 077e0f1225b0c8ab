package conversation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ImpressionsBot/internal/lib/sl"
	"ImpressionsBot/internal/metrics"
)

// Dispatcher routes inbound events to the handler of the chat's current
// state and persists the state the handler reports.
type Dispatcher struct {
	registry  *Registry
	storage   RecordStorage
	locker    Locker
	transport Transport
	log       *slog.Logger
	// strict turns invariant violations into panics.
	strict bool
}

func NewDispatcher(registry *Registry, storage RecordStorage, locker Locker, transport Transport, log *slog.Logger, strict bool) *Dispatcher {
	return &Dispatcher{
		registry:  registry,
		storage:   storage,
		locker:    locker,
		transport: transport,
		log:       log.With(sl.Module("conversation.dispatcher")),
		strict:    strict,
	}
}

// Dispatch runs one serialized load-route-save cycle for the event's chat.
func (d *Dispatcher) Dispatch(ctx context.Context, ev Event) error {
	unlock, err := d.locker.Lock(ctx, ev.ChatID)
	if err != nil {
		return fmt.Errorf("lock chat %d: %w", ev.ChatID, err)
	}
	defer unlock()

	rec, err := d.storage.Load(ctx, ev.ChatID)
	if err != nil {
		return fmt.Errorf("load record: %w", err)
	}
	if rec == nil {
		rec = NewRecord(ev.ChatID)
	}

	from := rec.CurrentState()
	next, routeErr := d.Route(ctx, ev, rec)
	if routeErr != nil {
		// handler side effects already reached the chat; keep their history
		metrics.IncDispatchError(string(from))
		next = from
		if !next.Valid() {
			next = StateStart
		}
	}

	rec.State = next
	rec.UpdatedAt = time.Now()
	if err = d.storage.Save(ctx, rec); err != nil {
		return fmt.Errorf("save record: %w", err)
	}

	return routeErr
}

// Record returns the stored conversation of a chat, nil when there is none.
func (d *Dispatcher) Record(ctx context.Context, chatID int64) (*Record, error) {
	unlock, err := d.locker.Lock(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("lock chat %d: %w", chatID, err)
	}
	defer unlock()

	return d.storage.Load(ctx, chatID)
}

// Reset drops the stored conversation; the chat's next event starts over.
func (d *Dispatcher) Reset(ctx context.Context, chatID int64) error {
	unlock, err := d.locker.Lock(ctx, chatID)
	if err != nil {
		return fmt.Errorf("lock chat %d: %w", chatID, err)
	}
	defer unlock()

	if err = d.storage.Delete(ctx, chatID); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	d.log.Info("conversation reset", slog.Int64("chat_id", chatID))
	return nil
}

// Route resolves the active state of rec for ev and runs its handler.
func (d *Dispatcher) Route(ctx context.Context, ev Event, rec *Record) (State, error) {
	current := rec.CurrentState()
	if ev.IsRestart() {
		current = StateStart
	}
	if !current.Valid() {
		d.log.Warn("unknown persisted state, restarting",
			slog.Int64("chat_id", rec.ChatID),
			slog.String("state", string(current)),
		)
		current = StateStart
	}

	if current.localized() && !rec.Language.Valid() {
		return "", d.violation(fmt.Errorf("%w: chat %d in state %s", ErrLanguageNotSet, rec.ChatID, current))
	}

	metrics.ObserveEvent(string(current), ev.Kind.String())

	session := &Session{
		Event:   ev,
		Record:  rec,
		History: NewHistory(d.transport, rec, d.log),
	}
	next, err := d.registry.Handle(ctx, current, session)
	if err != nil {
		d.log.Error("handler failed",
			slog.Int64("chat_id", rec.ChatID),
			slog.String("state", string(current)),
			sl.Err(err),
		)
		return "", err
	}
	if !next.Valid() {
		return "", d.violation(fmt.Errorf("handler of %s returned unknown state %q", current, next))
	}

	metrics.ObserveTransition(string(current), string(next))
	d.log.Debug("transition",
		slog.Int64("chat_id", rec.ChatID),
		slog.String("from", string(current)),
		slog.String("to", string(next)),
		slog.String("event", ev.Kind.String()),
	)
	return next, nil
}

func (d *Dispatcher) violation(err error) error {
	if d.strict {
		panic(err)
	}
	d.log.Error("conversation invariant violated", sl.Err(err))
	return err
}
