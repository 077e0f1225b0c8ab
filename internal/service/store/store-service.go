package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"ImpressionsBot/entity"
	"ImpressionsBot/internal/lib/sl"
	"ImpressionsBot/internal/lib/validate"
	"ImpressionsBot/internal/metrics"

	"github.com/google/uuid"
)

// settingsTTL bounds how long operator edits to the settings take to show up.
const settingsTTL = 5 * time.Minute

type Repository interface {
	Impressions(ctx context.Context, lang, category string) ([]entity.Impression, error)
	Impression(ctx context.Context, id int64, lang string) (*entity.Impression, error)
	Settings(ctx context.Context, lang string) (*entity.Settings, error)
	SaveOrder(ctx context.Context, order *entity.Order) error
	ActivateCertificate(ctx context.Context, code string, chatID int64, username string) (*entity.Certificate, error)
	SaveSupportApplication(ctx context.Context, app *entity.SupportApplication) error
}

type cachedSettings struct {
	settings *entity.Settings
	loadedAt time.Time
}

type Service struct {
	repository Repository
	mu         sync.Mutex
	settings   map[string]cachedSettings
	now        func() time.Time
	log        *slog.Logger
}

func NewStoreService(logger *slog.Logger) *Service {
	return &Service{
		settings: make(map[string]cachedSettings),
		now:      time.Now,
		log:      logger.With(sl.Module("store-service")),
	}
}

func (s *Service) SetRepository(repository Repository) {
	s.repository = repository
}

func (s *Service) Impressions(ctx context.Context, lang, category string) ([]entity.Impression, error) {
	items, err := s.repository.Impressions(ctx, lang, category)
	if err != nil {
		return nil, fmt.Errorf("list impressions: %w", err)
	}
	return items, nil
}

func (s *Service) Impression(ctx context.Context, id int64, lang string) (*entity.Impression, error) {
	item, err := s.repository.Impression(ctx, id, lang)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get impression %d: %w", id, err)
	}
	return item, nil
}

func (s *Service) PolicyURL(ctx context.Context, lang string) (string, error) {
	settings, err := s.loadSettings(ctx, lang)
	if err != nil {
		return "", err
	}
	return settings.PolicyURL, nil
}

func (s *Service) PaymentDetails(ctx context.Context, lang string) (string, error) {
	settings, err := s.loadSettings(ctx, lang)
	if err != nil {
		return "", err
	}
	return settings.PaymentDetails, nil
}

func (s *Service) SelfDeliveryPoint(ctx context.Context, lang string) (*entity.DeliveryPoint, error) {
	settings, err := s.loadSettings(ctx, lang)
	if err != nil {
		return nil, err
	}
	point := settings.DeliveryPoint
	return &point, nil
}

func (s *Service) FaqDetails(ctx context.Context, lang string) ([]entity.FaqItem, error) {
	settings, err := s.loadSettings(ctx, lang)
	if err != nil {
		return nil, err
	}
	return settings.Faq, nil
}

func (s *Service) loadSettings(ctx context.Context, lang string) (*entity.Settings, error) {
	s.mu.Lock()
	cached, ok := s.settings[lang]
	s.mu.Unlock()
	if ok && s.now().Sub(cached.loadedAt) < settingsTTL {
		return cached.settings, nil
	}

	settings, err := s.repository.Settings(ctx, lang)
	if err != nil {
		return nil, fmt.Errorf("load %s settings: %w", lang, err)
	}

	s.mu.Lock()
	s.settings[lang] = cachedSettings{settings: settings, loadedAt: s.now()}
	s.mu.Unlock()

	return settings, nil
}

// CreateOrder numbers, validates and stores an order.
func (s *Service) CreateOrder(ctx context.Context, order *entity.Order) error {
	order.Number = newNumber("ORD")
	order.CreatedAt = s.now()

	if err := validate.Struct(order); err != nil {
		return fmt.Errorf("invalid order: %w", err)
	}

	if err := s.repository.SaveOrder(ctx, order); err != nil {
		s.log.With(
			slog.Int64("id", order.ChatID),
			slog.String("number", order.Number),
		).Error("saving order", sl.Err(err))
		return fmt.Errorf("save order: %w", err)
	}

	receiving := entity.ReceivingGiftBox
	if order.EmailReceiving {
		receiving = entity.ReceivingEmail
	}
	metrics.IncOrder(receiving, order.DeliveryMethod)

	s.log.With(
		slog.Int64("id", order.ChatID),
		slog.String("number", order.Number),
		slog.Int64("impression", order.ImpressionID),
	).Info("order created")

	return nil
}

// ActivateCertificate redeems a certificate. Unknown, used or expired codes
// come back as unavailable rather than as an error.
func (s *Service) ActivateCertificate(ctx context.Context, req entity.Activation) (*entity.ActivationResult, error) {
	req.CertificateID = strings.TrimSpace(req.CertificateID)
	if err := validate.Struct(req); err != nil {
		metrics.IncActivation(false)
		return &entity.ActivationResult{Availability: false}, nil
	}

	certificate, err := s.repository.ActivateCertificate(ctx, req.CertificateID, req.ChatID, req.Username)
	if err != nil {
		return nil, fmt.Errorf("activate certificate: %w", err)
	}
	if certificate == nil {
		metrics.IncActivation(false)
		s.log.With(slog.Int64("id", req.ChatID)).Debug("certificate unavailable", sl.Secret("code", req.CertificateID))
		return &entity.ActivationResult{Availability: false}, nil
	}

	result := &entity.ActivationResult{Availability: true}
	item, err := s.repository.Impression(ctx, certificate.ImpressionID, req.Language)
	switch {
	case err == nil:
		result.ImpressionName = item.Name
	case errors.Is(err, entity.ErrNotFound):
		// the certificate stays valid after the item leaves the catalog
	default:
		s.log.With(slog.Int64("id", req.ChatID)).Warn("certificate impression lookup", sl.Err(err))
	}

	metrics.IncActivation(true)
	s.log.With(
		slog.Int64("id", req.ChatID),
		slog.Int64("impression", certificate.ImpressionID),
	).Info("certificate activated")

	return result, nil
}

func (s *Service) CreateSupportApplication(ctx context.Context, app *entity.SupportApplication) error {
	app.Number = newNumber("SUP")
	app.CreatedAt = s.now()

	if err := validate.Struct(app); err != nil {
		return fmt.Errorf("invalid support application: %w", err)
	}

	if err := s.repository.SaveSupportApplication(ctx, app); err != nil {
		return fmt.Errorf("save support application: %w", err)
	}
	metrics.IncSupportApplication(app.RequestType)

	s.log.With(
		slog.Int64("id", app.ChatID),
		slog.String("number", app.Number),
		slog.String("type", app.RequestType),
	).Info("support application created")

	return nil
}

func newNumber(prefix string) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + "-" + strings.ToUpper(id[:10])
}
