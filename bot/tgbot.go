package bot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ImpressionsBot/bot/conversation"
	"ImpressionsBot/internal/lib/sl"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers/filters/callbackquery"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers/filters/message"
)

// dispatchTimeout bounds one update, waiting for the chat lock included.
const dispatchTimeout = 2 * time.Minute

// Dispatcher runs conversation events.
type Dispatcher interface {
	Dispatch(ctx context.Context, ev conversation.Event) error
}

// TgBot is the Telegram front of the storefront conversation.
type TgBot struct {
	log          *slog.Logger
	api          *tgbotapi.Bot
	botUsername  string
	workers      int
	conversation Dispatcher
}

func NewTgBot(botName, apiKey string, workers int, log *slog.Logger) (*TgBot, error) {
	tgBot := &TgBot{
		log:         log.With(sl.Module("tgbot")),
		botUsername: botName,
		workers:     workers,
	}

	api, err := tgbotapi.NewBot(apiKey, nil)
	if err != nil {
		return nil, fmt.Errorf("creating api instance: %v", err)
	}
	tgBot.api = api

	return tgBot, nil
}

// API exposes the Bot API client for the transport.
func (t *TgBot) API() *tgbotapi.Bot {
	return t.api
}

func (t *TgBot) SetDispatcher(d Dispatcher) {
	t.conversation = d
}

// Start begins polling for updates and blocks while the bot runs.
func (t *TgBot) Start() error {
	if t.conversation == nil {
		return fmt.Errorf("conversation dispatcher not set")
	}

	workers := t.workers
	if workers <= 0 {
		workers = ext.DefaultMaxRoutines
	}

	dispatcher := ext.NewDispatcher(&ext.DispatcherOpts{
		// If an error is returned by a handler, log it and continue going.
		Error: func(b *tgbotapi.Bot, ctx *ext.Context, err error) ext.DispatcherAction {
			t.log.Error("handling update", sl.Err(err))
			return ext.DispatcherActionNoop
		},
		MaxRoutines: workers,
	})
	updater := ext.NewUpdater(dispatcher, nil)

	dispatcher.AddHandler(handlers.NewCallback(callbackquery.All, t.handleCallback))
	dispatcher.AddHandler(handlers.NewMessage(message.All, t.handleMessage))

	err := updater.StartPolling(t.api, &ext.PollingOpts{
		DropPendingUpdates: true,
		GetUpdatesOpts: &tgbotapi.GetUpdatesOpts{
			Timeout: 9,
			RequestOpts: &tgbotapi.RequestOpts{
				Timeout: time.Second * 10,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to start polling: %w", err)
	}

	t.log.Info("bot started", slog.String("username", t.botUsername))

	// Idle, to keep updates coming in, and avoid bot stopping.
	updater.Idle()

	return nil
}

func (t *TgBot) handleMessage(_ *tgbotapi.Bot, ctx *ext.Context) error {
	msg := ctx.EffectiveMessage
	if msg == nil || ctx.EffectiveChat == nil || ctx.EffectiveChat.Type != "private" {
		return nil
	}
	return t.dispatch(messageEvent(ctx.EffectiveChat, msg))
}

func (t *TgBot) handleCallback(_ *tgbotapi.Bot, ctx *ext.Context) error {
	cq := ctx.CallbackQuery
	if cq == nil || ctx.EffectiveChat == nil {
		return nil
	}
	return t.dispatch(callbackEvent(ctx.EffectiveChat, cq))
}

func (t *TgBot) dispatch(ev conversation.Event) error {
	ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
	defer cancel()

	if err := t.conversation.Dispatch(ctx, ev); err != nil {
		t.log.With(
			slog.Int64("id", ev.ChatID),
		).Error("dispatching event", sl.Err(err))
		return err
	}
	return nil
}

func messageEvent(chat *tgbotapi.Chat, msg *tgbotapi.Message) conversation.Event {
	ev := conversation.Event{
		Kind:      conversation.TextInput,
		ChatID:    chat.Id,
		Username:  chat.Username,
		MessageID: msg.MessageId,
		Text:      msg.Text,
	}
	if n := len(msg.Photo); n > 0 {
		// sizes are ordered, the last one is the largest
		ev.PhotoRef = msg.Photo[n-1].FileId
		ev.Text = msg.Caption
	}
	return ev
}

func callbackEvent(chat *tgbotapi.Chat, cq *tgbotapi.CallbackQuery) conversation.Event {
	ev := conversation.Event{
		Kind:        conversation.Selection,
		ChatID:      chat.Id,
		Username:    chat.Username,
		Data:        cq.Data,
		SelectionID: cq.Id,
	}
	if cq.Message != nil {
		ev.MessageID = cq.Message.GetMessageId()
	}
	return ev
}
