package core

import (
	"context"
	"crypto/subtle"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"ImpressionsBot/bot/conversation"
	"ImpressionsBot/entity"
	"ImpressionsBot/internal/lib/sl"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// adminUser owns the static key from the listen config.
const adminUser = "admin"

type Repository interface {
	CheckApiKey(key string) (string, error)
	GenerateApiKey(username string) (string, error)
	OrderByNumber(ctx context.Context, number string) (*entity.Order, error)
	DownloadScreenshot(fileID primitive.ObjectID) (entity.ScreenshotMeta, io.ReadCloser, error)
}

type ConversationService interface {
	Record(ctx context.Context, chatID int64) (*conversation.Record, error)
	Reset(ctx context.Context, chatID int64) error
}

// Core backs the admin API.
type Core struct {
	repo         Repository
	conversation ConversationService
	authKey      string
	mu           sync.RWMutex
	keys         map[string]string
	log          *slog.Logger
}

func New(log *slog.Logger) *Core {
	return &Core{
		log:  log.With(sl.Module("core")),
		keys: make(map[string]string),
	}
}

func (c *Core) SetRepository(repo Repository) {
	c.repo = repo
}

func (c *Core) SetAuthKey(key string) {
	c.authKey = key
}

func (c *Core) SetConversationService(conv ConversationService) {
	c.conversation = conv
}

func (c *Core) AuthenticateByToken(token string) (string, error) {
	if c.authKey != "" && subtle.ConstantTimeCompare([]byte(token), []byte(c.authKey)) == 1 {
		return adminUser, nil
	}

	c.mu.RLock()
	username, ok := c.keys[token]
	c.mu.RUnlock()
	if ok {
		return username, nil
	}

	if c.repo == nil {
		return "", fmt.Errorf("invalid api key")
	}
	username, err := c.repo.CheckApiKey(token)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.keys[token] = username
	c.mu.Unlock()

	return username, nil
}

func (c *Core) GenerateApiKey(username string) (string, error) {
	if c.repo == nil {
		return "", fmt.Errorf("repository is not set")
	}

	apiKey, err := c.repo.GenerateApiKey(username)
	if err != nil {
		return "", fmt.Errorf("failed to generate API key: %w", err)
	}

	c.mu.Lock()
	c.keys[apiKey] = username
	c.mu.Unlock()

	return apiKey, nil
}

func (c *Core) Conversation(ctx context.Context, chatID int64) (*conversation.Record, error) {
	if c.conversation == nil {
		return nil, fmt.Errorf("conversation service is not set")
	}
	return c.conversation.Record(ctx, chatID)
}

func (c *Core) ResetConversation(ctx context.Context, chatID int64) error {
	if c.conversation == nil {
		return fmt.Errorf("conversation service is not set")
	}
	return c.conversation.Reset(ctx, chatID)
}

// OrderScreenshot opens the payment screenshot of an order. The caller closes the reader.
func (c *Core) OrderScreenshot(ctx context.Context, number string) (entity.ScreenshotMeta, io.ReadCloser, error) {
	if c.repo == nil {
		return entity.ScreenshotMeta{}, nil, fmt.Errorf("repository is not set")
	}

	order, err := c.repo.OrderByNumber(ctx, number)
	if err != nil {
		return entity.ScreenshotMeta{}, nil, err
	}
	if order.ScreenshotID.IsZero() {
		return entity.ScreenshotMeta{}, nil, entity.ErrNotFound
	}

	return c.repo.DownloadScreenshot(order.ScreenshotID)
}
