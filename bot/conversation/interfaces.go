package conversation

import (
	"context"
	"errors"

	"ImpressionsBot/entity"
)

var (
	// ErrRejected marks a transport request refused by the messaging gateway,
	// e.g. editing or deleting a message that no longer exists. Callers treat
	// such results as best-effort.
	ErrRejected = errors.New("request rejected")
	// ErrUnrecognized is returned by handlers when the input does not fit the
	// current screen; the state's fallback then re-renders it.
	ErrUnrecognized = errors.New("unrecognized input")
	// ErrLanguageNotSet means a localized handler was reached before the
	// language was chosen.
	ErrLanguageNotSet = errors.New("conversation language not set")
)

// Button is one inline choice. Buttons with a URL open a link instead of
// producing a Selection.
type Button struct {
	Text string
	Data string
	URL  string
}

type Keyboard [][]Button

// Screen is the rendered content of one conversation state.
type Screen struct {
	Text     string
	Keyboard Keyboard
	// Markdown marks Text as MarkdownV2.
	Markdown bool
}

// Transport is the messaging gateway.
type Transport interface {
	SendMessage(ctx context.Context, chatID int64, screen Screen) (int64, error)
	EditMessage(ctx context.Context, chatID, messageID int64, screen Screen) (int64, error)
	DeleteMessage(ctx context.Context, chatID, messageID int64) (bool, error)
	DeleteMessages(ctx context.Context, chatID int64, messageIDs []int64) (bool, error)
	DownloadMedia(ctx context.Context, fileRef string) ([]byte, error)
	AnswerSelection(ctx context.Context, selectionID string) error
}

// Store is the catalog, order and support persistence.
type Store interface {
	Impressions(ctx context.Context, lang, category string) ([]entity.Impression, error)
	Impression(ctx context.Context, id int64, lang string) (*entity.Impression, error)
	PolicyURL(ctx context.Context, lang string) (string, error)
	PaymentDetails(ctx context.Context, lang string) (string, error)
	SelfDeliveryPoint(ctx context.Context, lang string) (*entity.DeliveryPoint, error)
	FaqDetails(ctx context.Context, lang string) ([]entity.FaqItem, error)
	CreateOrder(ctx context.Context, order *entity.Order) error
	ActivateCertificate(ctx context.Context, req entity.Activation) (*entity.ActivationResult, error)
	CreateSupportApplication(ctx context.Context, app *entity.SupportApplication) error
}

// RecordStorage persists one Record per chat.
type RecordStorage interface {
	// Load returns nil without error when the chat has no record.
	Load(ctx context.Context, chatID int64) (*Record, error)
	Save(ctx context.Context, rec *Record) error
	Delete(ctx context.Context, chatID int64) error
}

// Locker serializes dispatch cycles of one chat.
type Locker interface {
	Lock(ctx context.Context, chatID int64) (unlock func(), err error)
}
