package conversation

import (
	"context"

	"ImpressionsBot/bot/conversation"
)

type Core interface {
	Conversation(ctx context.Context, chatID int64) (*conversation.Record, error)
	ResetConversation(ctx context.Context, chatID int64) error
}
