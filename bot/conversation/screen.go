package conversation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"ImpressionsBot/internal/lib/sl"
	"ImpressionsBot/internal/metrics"
)

// Session is the per-dispatch view a handler works on.
type Session struct {
	Event   Event
	Record  *Record
	History *History
}

// trackInbound records the user's own text message so the next cleanup
// removes it.
func (s *Session) trackInbound() {
	if !s.Event.IsSelection() {
		s.History.Append(s.Event.MessageID)
	}
}

func (s *Session) copy() *copyText {
	return copyFor(s.Record.Language)
}

// Emitter puts screens into the chat, reusing the anchor message wherever
// the transport allows it.
type Emitter struct {
	transport Transport
	log       *slog.Logger
}

func NewEmitter(transport Transport, log *slog.Logger) *Emitter {
	return &Emitter{
		transport: transport,
		log:       log.With(sl.Module("conversation.emitter")),
	}
}

// Render shows screen as the chat's single live message. A selection edits
// the message carrying the pressed button. Otherwise everything but the
// anchor is deleted and the anchor is edited; without an anchor a new
// message is sent and becomes the only tracked entry.
func (e *Emitter) Render(ctx context.Context, s *Session, screen Screen) error {
	chatID := s.Record.ChatID

	if s.Event.IsSelection() && s.Event.MessageID != 0 {
		id, err := e.transport.EditMessage(ctx, chatID, s.Event.MessageID, screen)
		switch {
		case err == nil:
			if s.History.Contains(id) {
				return nil
			}
			// an untracked message now carries the screen and takes over as anchor
			if err = s.History.Clear(ctx, true, true); err != nil {
				return err
			}
			s.History.Reset(append([]int64{id}, s.Record.History...)...)
			return nil
		case errors.Is(err, ErrRejected):
			e.rejected("edit_message", chatID, s.Event.MessageID, err)
		default:
			return fmt.Errorf("edit selection message: %w", err)
		}
	}

	// only bot messages can anchor a screen
	_, anchored := s.History.Anchor()
	s.trackInbound()
	if err := s.History.Clear(ctx, !anchored, true); err != nil {
		return err
	}

	if anchor, ok := s.History.Anchor(); ok && anchored {
		_, err := e.transport.EditMessage(ctx, chatID, anchor, screen)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrRejected) {
			return fmt.Errorf("edit anchor: %w", err)
		}
		e.rejected("edit_message", chatID, anchor, err)

		// the anchor is gone; a fresh message takes over and the rest is dropped
		id, err := e.transport.SendMessage(ctx, chatID, screen)
		if err != nil {
			return fmt.Errorf("send message: %w", err)
		}
		s.History.Append(id)
		return s.History.Clear(ctx, true, false)
	}

	id, err := e.transport.SendMessage(ctx, chatID, screen)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	s.History.Reset(id)
	return nil
}

// Send always posts a new message and tracks it.
func (e *Emitter) Send(ctx context.Context, s *Session, screen Screen) error {
	id, err := e.transport.SendMessage(ctx, s.Record.ChatID, screen)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	s.History.Append(id)
	return nil
}

func (e *Emitter) rejected(op string, chatID, messageID int64, err error) {
	metrics.IncTransportRejection(op)
	e.log.Debug("transport rejected request",
		slog.String("operation", op),
		slog.Int64("chat_id", chatID),
		slog.Int64("message_id", messageID),
		sl.Err(err),
	)
}
