package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ImpressionsBot/bot/conversation"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"
)

// deleteMessages accepts at most this many ids per call.
const deleteBatchLimit = 100

// TelegramAPI defines the Telegram bot methods needed by the transport.
type TelegramAPI interface {
	SendMessage(chatId int64, text string, opts *tgbotapi.SendMessageOpts) (*tgbotapi.Message, error)
	EditMessageText(text string, opts *tgbotapi.EditMessageTextOpts) (*tgbotapi.Message, bool, error)
	DeleteMessage(chatId int64, messageId int64, opts *tgbotapi.DeleteMessageOpts) (bool, error)
	DeleteMessages(chatId int64, messageIds []int64, opts *tgbotapi.DeleteMessagesOpts) (bool, error)
	GetFile(fileId string, opts *tgbotapi.GetFileOpts) (*tgbotapi.File, error)
	AnswerCallbackQuery(callbackQueryId string, opts *tgbotapi.AnswerCallbackQueryOpts) (bool, error)
}

// Transport implements conversation.Transport on the Bot API.
type Transport struct {
	api    TelegramAPI
	token  string
	client *http.Client
}

func NewTransport(api TelegramAPI, token string) *Transport {
	return &Transport{
		api:    api,
		token:  token,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (t *Transport) SendMessage(_ context.Context, chatID int64, screen conversation.Screen) (int64, error) {
	opts := &tgbotapi.SendMessageOpts{
		ParseMode:          parseMode(screen),
		LinkPreviewOptions: &tgbotapi.LinkPreviewOptions{IsDisabled: true},
	}
	if len(screen.Keyboard) > 0 {
		opts.ReplyMarkup = inlineKeyboard(screen.Keyboard)
	}

	msg, err := t.api.SendMessage(chatID, screen.Text, opts)
	if err != nil {
		return 0, classify(err)
	}
	return msg.MessageId, nil
}

// EditMessage replaces text and keyboard. An empty keyboard removes the
// buttons. Re-sending identical content counts as success.
func (t *Transport) EditMessage(_ context.Context, chatID, messageID int64, screen conversation.Screen) (int64, error) {
	_, _, err := t.api.EditMessageText(screen.Text, &tgbotapi.EditMessageTextOpts{
		ChatId:             chatID,
		MessageId:          messageID,
		ParseMode:          parseMode(screen),
		LinkPreviewOptions: &tgbotapi.LinkPreviewOptions{IsDisabled: true},
		ReplyMarkup:        inlineKeyboard(screen.Keyboard),
	})
	if err != nil {
		if notModified(err) {
			return messageID, nil
		}
		return 0, classify(err)
	}
	return messageID, nil
}

func (t *Transport) DeleteMessage(_ context.Context, chatID, messageID int64) (bool, error) {
	ok, err := t.api.DeleteMessage(chatID, messageID, nil)
	if err != nil {
		return false, classify(err)
	}
	return ok, nil
}

// DeleteMessages deletes in chunks the Bot API accepts, keeping the order.
func (t *Transport) DeleteMessages(_ context.Context, chatID int64, messageIDs []int64) (bool, error) {
	done := true
	for start := 0; start < len(messageIDs); start += deleteBatchLimit {
		end := min(start+deleteBatchLimit, len(messageIDs))
		ok, err := t.api.DeleteMessages(chatID, messageIDs[start:end], nil)
		if err != nil {
			return false, classify(err)
		}
		done = done && ok
	}
	return done, nil
}

// DownloadMedia reads the whole file into memory.
func (t *Transport) DownloadMedia(ctx context.Context, fileRef string) ([]byte, error) {
	file, err := t.api.GetFile(fileRef, nil)
	if err != nil {
		return nil, fmt.Errorf("get file: %w", classify(err))
	}

	url := fmt.Sprintf("%s/file/bot%s/%s", tgbotapi.DefaultAPIURL, t.token, file.FilePath)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func (t *Transport) AnswerSelection(_ context.Context, selectionID string) error {
	if _, err := t.api.AnswerCallbackQuery(selectionID, nil); err != nil {
		return classify(err)
	}
	return nil
}

func parseMode(screen conversation.Screen) string {
	if screen.Markdown {
		return tgbotapi.ParseModeMarkdownV2
	}
	return ""
}

func inlineKeyboard(kb conversation.Keyboard) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(kb))
	for _, row := range kb {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, btn := range row {
			b := tgbotapi.InlineKeyboardButton{Text: btn.Text}
			if btn.URL != "" {
				b.Url = btn.URL
			} else {
				b.CallbackData = btn.Data
			}
			buttons = append(buttons, b)
		}
		rows = append(rows, buttons)
	}
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// classify marks Bad Request answers as rejections the conversation
// tolerates; anything else stays a failure.
func classify(err error) error {
	var tgErr *tgbotapi.TelegramError
	if errors.As(err, &tgErr) && tgErr.Code == http.StatusBadRequest {
		return fmt.Errorf("%s: %w", tgErr.Description, conversation.ErrRejected)
	}
	return err
}

func notModified(err error) bool {
	var tgErr *tgbotapi.TelegramError
	return errors.As(err, &tgErr) &&
		tgErr.Code == http.StatusBadRequest &&
		strings.Contains(tgErr.Description, "message is not modified")
}
