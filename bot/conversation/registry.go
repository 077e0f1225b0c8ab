package conversation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"ImpressionsBot/internal/lib/sl"
	"ImpressionsBot/internal/metrics"
)

// HandlerFunc runs one step of the conversation and reports the next state.
type HandlerFunc func(ctx context.Context, s *Session) (State, error)

// Handler is bound to exactly one state. Text and Select cover the two
// event shapes; a nil entry means the state does not expect that shape.
// Fallback re-renders the state's screen with a clarification and runs
// whenever the input is unrecognized.
type Handler struct {
	Text     HandlerFunc
	Select   HandlerFunc
	Fallback HandlerFunc
}

// Registry maps every state to its handler.
type Registry struct {
	handlers  map[State]Handler
	transport Transport
	log       *slog.Logger
}

// NewRegistry binds the flow's handlers. It panics if any state is left
// without a handler or fallback.
func NewRegistry(flow *Flow) *Registry {
	handlers := flow.handlers()
	for _, st := range States() {
		h, ok := handlers[st]
		if !ok {
			panic(fmt.Sprintf("conversation: state %q has no handler", st))
		}
		if h.Fallback == nil {
			panic(fmt.Sprintf("conversation: state %q has no fallback", st))
		}
	}
	for st := range handlers {
		if !st.Valid() {
			panic(fmt.Sprintf("conversation: handler bound to unknown state %q", st))
		}
	}
	return &Registry{
		handlers:  handlers,
		transport: flow.transport,
		log:       flow.log,
	}
}

// Lookup returns the handler of st. Only members of States are accepted.
func (r *Registry) Lookup(st State) Handler {
	h, ok := r.handlers[st]
	if !ok {
		panic(fmt.Sprintf("conversation: lookup of unknown state %q", st))
	}
	return h
}

// Handle runs the handler bound to st for the session's event.
func (r *Registry) Handle(ctx context.Context, st State, s *Session) (State, error) {
	h := r.Lookup(st)

	fn := h.Text
	if s.Event.IsSelection() {
		r.acknowledge(ctx, s.Event)
		fn = h.Select
	}
	if fn == nil {
		return h.Fallback(ctx, s)
	}

	next, err := fn(ctx, s)
	if errors.Is(err, ErrUnrecognized) {
		return h.Fallback(ctx, s)
	}
	return next, err
}

func (r *Registry) acknowledge(ctx context.Context, ev Event) {
	if ev.SelectionID == "" {
		return
	}
	if err := r.transport.AnswerSelection(ctx, ev.SelectionID); err != nil {
		if errors.Is(err, ErrRejected) {
			metrics.IncTransportRejection("answer_selection")
		}
		r.log.Debug("selection not acknowledged",
			slog.Int64("chat_id", ev.ChatID),
			sl.Err(err),
		)
	}
}
