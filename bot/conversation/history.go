package conversation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"ImpressionsBot/internal/lib/sl"
	"ImpressionsBot/internal/metrics"
)

// Deleter is the part of the transport the history manager needs.
type Deleter interface {
	DeleteMessage(ctx context.Context, chatID, messageID int64) (bool, error)
	DeleteMessages(ctx context.Context, chatID int64, messageIDs []int64) (bool, error)
}

// History tracks the messages of the current screen, oldest first, and
// removes the stale ones from the chat.
type History struct {
	transport Deleter
	rec       *Record
	log       *slog.Logger
}

func NewHistory(transport Deleter, rec *Record, log *slog.Logger) *History {
	return &History{
		transport: transport,
		rec:       rec,
		log:       log,
	}
}

// Append tracks id unless it is already the most recent entry.
func (h *History) Append(id int64) {
	if id == 0 {
		return
	}
	n := len(h.rec.History)
	if n > 0 && h.rec.History[n-1] == id {
		return
	}
	h.rec.History = append(h.rec.History, id)
}

func (h *History) Contains(id int64) bool {
	for _, v := range h.rec.History {
		if v == id {
			return true
		}
	}
	return false
}

// Anchor is the oldest tracked message, the one screens are edited into.
func (h *History) Anchor() (int64, bool) {
	if len(h.rec.History) == 0 {
		return 0, false
	}
	return h.rec.History[0], true
}

// Reset replaces the tracked ids without touching the chat.
func (h *History) Reset(ids ...int64) {
	h.rec.History = append([]int64{}, ids...)
}

// Clear deletes tracked messages in one batch, newest first. With
// firstDeletion false the oldest message survives as an anchor, with
// lastDeletion false the newest one does. A rejected batch leaves the
// history untouched.
func (h *History) Clear(ctx context.Context, firstDeletion, lastDeletion bool) error {
	rest := h.rec.History
	var keepFirst, keepLast []int64

	if !lastDeletion && len(rest) > 0 {
		keepLast = []int64{rest[len(rest)-1]}
		rest = rest[:len(rest)-1]
	}
	if !firstDeletion && len(rest) > 0 {
		keepFirst = []int64{rest[0]}
		rest = rest[1:]
	}
	if len(rest) == 0 {
		return nil
	}

	batch := make([]int64, 0, len(rest))
	for i := len(rest) - 1; i >= 0; i-- {
		batch = append(batch, rest[i])
	}

	ok, err := h.transport.DeleteMessages(ctx, h.rec.ChatID, batch)
	if err != nil {
		if errors.Is(err, ErrRejected) {
			metrics.IncTransportRejection("delete_messages")
			h.log.Debug("history batch delete rejected",
				slog.Int64("chat_id", h.rec.ChatID),
				slog.Int("count", len(batch)),
				sl.Err(err),
			)
			return nil
		}
		return fmt.Errorf("delete messages: %w", err)
	}
	if !ok {
		return nil
	}

	h.rec.History = append(keepFirst, keepLast...)
	return nil
}

// DeleteLast deletes the most recent tracked message.
func (h *History) DeleteLast(ctx context.Context) error {
	n := len(h.rec.History)
	if n == 0 {
		return nil
	}

	ok, err := h.transport.DeleteMessage(ctx, h.rec.ChatID, h.rec.History[n-1])
	if err != nil {
		if errors.Is(err, ErrRejected) {
			metrics.IncTransportRejection("delete_message")
			h.log.Debug("history delete rejected",
				slog.Int64("chat_id", h.rec.ChatID),
				slog.Int64("message_id", h.rec.History[n-1]),
				sl.Err(err),
			)
			return nil
		}
		return fmt.Errorf("delete message: %w", err)
	}
	if ok {
		h.rec.History = h.rec.History[:n-1]
	}
	return nil
}
