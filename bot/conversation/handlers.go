package conversation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"ImpressionsBot/entity"
	"ImpressionsBot/internal/lib/sl"
)

// Flow holds the handlers and renderers of the purchase conversation.
type Flow struct {
	transport Transport
	store     Store
	screens   *Emitter
	log       *slog.Logger
}

func NewFlow(transport Transport, store Store, log *slog.Logger) *Flow {
	return &Flow{
		transport: transport,
		store:     store,
		screens:   NewEmitter(transport, log),
		log:       log.With(sl.Module("conversation.flow")),
	}
}

// handlers binds every state to its handler.
func (f *Flow) handlers() map[State]Handler {
	return map[State]Handler{
		StateStart: {
			Text:     f.start,
			Select:   f.start,
			Fallback: f.start,
		},
		StateLanguageSelection: {
			Text:     f.start,
			Select:   f.selectLanguage,
			Fallback: f.start,
		},
		StateMainMenu: {
			Select: f.selectMainMenu,
			Fallback: func(ctx context.Context, s *Session) (State, error) {
				return f.mainMenu(ctx, s, s.copy().Misunderstanding)
			},
		},
		StateCategorySelection: {
			Select: f.selectCategory,
			Fallback: func(ctx context.Context, s *Session) (State, error) {
				return f.categoriesMenu(ctx, s, s.copy().UnclearCategory)
			},
		},
		StateImpressionSelection: {
			Text:   f.enterImpressionNumber,
			Select: f.selectImpressionMenu,
			Fallback: func(ctx context.Context, s *Session) (State, error) {
				return f.impressionsMenu(ctx, s, s.copy().UnclearImpression)
			},
		},
		StateReceivingMethodSelection: {
			Select: f.selectReceivingMethod,
			Fallback: func(ctx context.Context, s *Session) (State, error) {
				return f.receivingMenu(ctx, s, s.copy().UnclearReceiving)
			},
		},
		StateAwaitingEmail: {
			Text: f.enterEmail,
			Fallback: func(ctx context.Context, s *Session) (State, error) {
				return f.emailInvitation(ctx, s, s.copy().Misunderstanding)
			},
		},
		StatePrivacyAck: {
			Select: f.acknowledgePrivacy,
			Fallback: func(ctx context.Context, s *Session) (State, error) {
				return f.privacyMenu(ctx, s, s.copy().ClickButton)
			},
		},
		StateAwaitingFullName: {
			Text: f.enterFullName,
			Fallback: func(ctx context.Context, s *Session) (State, error) {
				c := s.copy()
				return f.prompt(ctx, s, c.Misunderstanding+c.FullNamePrompt, StateAwaitingFullName)
			},
		},
		StateAwaitingPhone: {
			Text: f.enterPhone,
			Fallback: func(ctx context.Context, s *Session) (State, error) {
				c := s.copy()
				return f.prompt(ctx, s, c.Misunderstanding+c.PhonePrompt, StateAwaitingPhone)
			},
		},
		StateAwaitingCustomerConfirmation: {
			Select: f.confirmCustomer,
			Fallback: func(ctx context.Context, s *Session) (State, error) {
				return f.reconfirm(ctx, s, f.customerConfirmation, s.copy().UnclearCustomer)
			},
		},
		StateAwaitingPaymentScreenshot: {
			Text: f.sendScreenshot,
			Fallback: func(ctx context.Context, s *Session) (State, error) {
				return f.paymentInvitation(ctx, s, s.copy().NotScreenshot)
			},
		},
		StateDialogueEnd: {
			Select: f.finishDialogue,
			Fallback: func(ctx context.Context, s *Session) (State, error) {
				s.Record.ClearFields()
				return f.mainMenu(ctx, s, s.copy().Misunderstanding)
			},
		},
		StateDeliveryMethodSelection: {
			Select: f.selectDeliveryMethod,
			Fallback: func(ctx context.Context, s *Session) (State, error) {
				return f.deliveryMenu(ctx, s, s.copy().UnclearDelivery)
			},
		},
		StateAwaitingRecipientName: {
			Text: f.enterRecipientName,
			Fallback: func(ctx context.Context, s *Session) (State, error) {
				c := s.copy()
				return f.prompt(ctx, s, c.Misunderstanding+c.RecipientPrompt, StateAwaitingRecipientName)
			},
		},
		StateAwaitingRecipientContact: {
			Text: f.enterRecipientContact,
			Fallback: func(ctx context.Context, s *Session) (State, error) {
				c := s.copy()
				return f.prompt(ctx, s, c.Misunderstanding+c.ContactPrompt, StateAwaitingRecipientContact)
			},
		},
		StateAwaitingRecipientConfirm: {
			Select: f.confirmRecipient,
			Fallback: func(ctx context.Context, s *Session) (State, error) {
				return f.reconfirm(ctx, s, f.recipientConfirmation, s.copy().UnclearRecipient)
			},
		},
		StateSelfDeliveryConfirm: {
			Select: f.confirmSelfDelivery,
			Fallback: func(ctx context.Context, s *Session) (State, error) {
				return f.selfDeliveryMenu(ctx, s, s.copy().Misunderstanding)
			},
		},
		StateAwaitingCertificateID: {
			Text: f.enterCertificateID,
			Fallback: func(ctx context.Context, s *Session) (State, error) {
				return f.certificateInvitation(ctx, s, s.copy().Misunderstanding)
			},
		},
		StateWrongCertificateMenu: {
			Select: f.selectWrongCertificate,
			Fallback: func(ctx context.Context, s *Session) (State, error) {
				s.trackInbound()
				return f.wrongCertificateMenu(ctx, s, s.copy().Misunderstanding)
			},
		},
		StateFaqSelection: {
			Select: f.selectFaq,
			Fallback: func(ctx context.Context, s *Session) (State, error) {
				return f.faqMenu(ctx, s, s.copy().ClickButton)
			},
		},
	}
}

// start wipes the chat and the record, then asks for a language.
func (f *Flow) start(ctx context.Context, s *Session) (State, error) {
	s.trackInbound()
	if err := s.History.Clear(ctx, true, true); err != nil {
		return "", err
	}
	s.Record.Reset()
	return f.languageMenu(ctx, s)
}

func (f *Flow) selectLanguage(ctx context.Context, s *Session) (State, error) {
	lang := Language(s.Event.Data)
	if !lang.Valid() {
		return "", ErrUnrecognized
	}
	s.Record.Language = lang
	return f.mainMenu(ctx, s, "")
}

func (f *Flow) selectMainMenu(ctx context.Context, s *Session) (State, error) {
	switch s.Event.Data {
	case DataImpression:
		return f.categoriesMenu(ctx, s, "")
	case DataCertificate:
		return f.certificateInvitation(ctx, s, s.copy().CertificateCongrats)
	case DataFaq:
		return f.faqMenu(ctx, s, "")
	}
	return "", ErrUnrecognized
}

func (f *Flow) selectCategory(ctx context.Context, s *Session) (State, error) {
	data := s.Event.Data
	if data == DataMainMenu {
		return f.mainMenu(ctx, s, "")
	}
	if !isCategory(data) {
		return "", ErrUnrecognized
	}
	s.Record.Fields.ImpressionsCategory = data
	return f.impressionsMenu(ctx, s, "")
}

func (f *Flow) selectImpressionMenu(ctx context.Context, s *Session) (State, error) {
	if s.Event.Data == DataCategories {
		return f.categoriesMenu(ctx, s, "")
	}
	return "", ErrUnrecognized
}

func (f *Flow) enterImpressionNumber(ctx context.Context, s *Session) (State, error) {
	s.trackInbound()
	id, ok := SelectImpression(s.Event.Text, s.Record.Fields.DisplayedImpressions)
	if !ok {
		return "", ErrUnrecognized
	}
	s.Record.Fields.ImpressionID = id
	return f.receivingMenu(ctx, s, "")
}

func (f *Flow) selectReceivingMethod(ctx context.Context, s *Session) (State, error) {
	switch s.Event.Data {
	case DataMainMenu:
		return f.mainMenu(ctx, s, "")
	case DataImpression:
		return f.categoriesMenu(ctx, s, "")
	case DataEmail:
		s.Record.Fields.ReceivingMethod = entity.ReceivingEmail
		return f.emailInvitation(ctx, s, "")
	case DataGiftBox:
		s.Record.Fields.ReceivingMethod = entity.ReceivingGiftBox
		return f.privacyMenu(ctx, s, "")
	}
	return "", ErrUnrecognized
}

func (f *Flow) enterEmail(ctx context.Context, s *Session) (State, error) {
	s.trackInbound()
	email, ok := ValidateEmail(s.Event.Text)
	if !ok {
		return f.prompt(ctx, s, s.copy().EmailError, StateAwaitingEmail)
	}
	s.Record.Fields.CustomerEmail = email
	return f.privacyMenu(ctx, s, "")
}

func (f *Flow) acknowledgePrivacy(ctx context.Context, s *Session) (State, error) {
	if s.Event.Data != DataPrivacyPolicy {
		return "", ErrUnrecognized
	}
	if err := s.History.Clear(ctx, true, true); err != nil {
		return "", err
	}
	return f.prompt(ctx, s, s.copy().FullNamePrompt, StateAwaitingFullName)
}

func (f *Flow) enterFullName(ctx context.Context, s *Session) (State, error) {
	s.trackInbound()
	name, ok := ValidateFullName(s.Event.Text)
	if !ok {
		return f.prompt(ctx, s, s.copy().FullNameError, StateAwaitingFullName)
	}
	s.Record.Fields.CustomerFullName = name
	return f.prompt(ctx, s, s.copy().PhonePrompt, StateAwaitingPhone)
}

func (f *Flow) enterPhone(ctx context.Context, s *Session) (State, error) {
	s.trackInbound()
	phone, ok := NormalizePhone(s.Event.Text)
	if !ok {
		return f.prompt(ctx, s, s.copy().PhoneError, StateAwaitingPhone)
	}
	s.Record.Fields.CustomerPhone = phone
	return f.customerConfirmation(ctx, s, "")
}

func (f *Flow) confirmCustomer(ctx context.Context, s *Session) (State, error) {
	switch s.Event.Data {
	case DataRightCustomer:
		if s.Record.Fields.ReceivingMethod == entity.ReceivingEmail {
			if err := s.History.Clear(ctx, true, false); err != nil {
				return "", err
			}
			return f.paymentInvitation(ctx, s, "")
		}
		return f.deliveryMenu(ctx, s, "")
	case DataWrongCustomer:
		if err := f.correction(ctx, s); err != nil {
			return "", err
		}
		return f.prompt(ctx, s, s.copy().FullNamePrompt, StateAwaitingFullName)
	}
	return "", ErrUnrecognized
}

// reconfirm removes the stray input and the previous confirmation prompt
// by their tracked ids, then asks again.
func (f *Flow) reconfirm(
	ctx context.Context,
	s *Session,
	confirmation func(context.Context, *Session, string) (State, error),
	prefix string,
) (State, error) {
	if !s.Event.IsSelection() {
		s.trackInbound()
		if err := s.History.DeleteLast(ctx); err != nil {
			return "", err
		}
	}
	if err := s.History.DeleteLast(ctx); err != nil {
		return "", err
	}
	return confirmation(ctx, s, prefix)
}

func (f *Flow) sendScreenshot(ctx context.Context, s *Session) (State, error) {
	s.trackInbound()
	if !s.Event.HasPhoto() {
		return f.paymentInvitation(ctx, s, s.copy().NotScreenshot)
	}

	screenshot, err := f.transport.DownloadMedia(ctx, s.Event.PhotoRef)
	if err != nil {
		return "", fmt.Errorf("download screenshot: %w", err)
	}

	c := s.copy()
	order := f.order(s)
	order.CustomerEmail = s.Record.Fields.CustomerEmail
	order.RecipientName = s.Record.Fields.CustomerFullName
	order.RecipientContact = c.RecipientCustomer
	order.EmailReceiving = true
	order.Screenshot = screenshot

	if err = f.store.CreateOrder(ctx, order); err != nil {
		return "", fmt.Errorf("create order: %w", err)
	}

	if err = f.screens.Send(ctx, s, f.thanksScreen(c.PurchaseThanks, c)); err != nil {
		return "", err
	}
	return StateDialogueEnd, nil
}

func (f *Flow) finishDialogue(ctx context.Context, s *Session) (State, error) {
	if s.Event.Data != DataMainMenu {
		return "", ErrUnrecognized
	}
	if err := s.History.Clear(ctx, true, false); err != nil {
		return "", err
	}
	s.Record.ClearFields()
	return f.mainMenu(ctx, s, "")
}

func (f *Flow) selectDeliveryMethod(ctx context.Context, s *Session) (State, error) {
	switch s.Event.Data {
	case DataCourier:
		s.Record.Fields.DeliveryMethod = DataCourier
		if err := s.History.Clear(ctx, true, true); err != nil {
			return "", err
		}
		return f.prompt(ctx, s, s.copy().RecipientPrompt, StateAwaitingRecipientName)
	case DataSelfDelivery:
		s.Record.Fields.DeliveryMethod = DataSelfDelivery
		return f.selfDeliveryMenu(ctx, s, "")
	}
	return "", ErrUnrecognized
}

func (f *Flow) enterRecipientName(ctx context.Context, s *Session) (State, error) {
	s.trackInbound()
	name, ok := ValidateRecipientName(s.Event.Text)
	if !ok {
		return f.prompt(ctx, s, s.copy().RecipientError, StateAwaitingRecipientName)
	}
	s.Record.Fields.RecipientName = name
	return f.prompt(ctx, s, s.copy().ContactPrompt, StateAwaitingRecipientContact)
}

func (f *Flow) enterRecipientContact(ctx context.Context, s *Session) (State, error) {
	s.trackInbound()
	contact, ok := ValidateRecipientContact(s.Event.Text)
	if !ok {
		return f.prompt(ctx, s, s.copy().ContactError, StateAwaitingRecipientContact)
	}
	s.Record.Fields.RecipientContact = contact
	return f.recipientConfirmation(ctx, s, "")
}

func (f *Flow) confirmRecipient(ctx context.Context, s *Session) (State, error) {
	switch s.Event.Data {
	case DataRightRecipient:
		if err := s.History.Clear(ctx, true, false); err != nil {
			return "", err
		}
		return f.successfulBooking(ctx, s)
	case DataWrongRecipient:
		if err := f.correction(ctx, s); err != nil {
			return "", err
		}
		return f.prompt(ctx, s, s.copy().RecipientPrompt, StateAwaitingRecipientName)
	}
	return "", ErrUnrecognized
}

func (f *Flow) confirmSelfDelivery(ctx context.Context, s *Session) (State, error) {
	switch s.Event.Data {
	case DataSelfYes:
		return f.successfulBooking(ctx, s)
	case DataSelfNo:
		return f.deliveryMenu(ctx, s, "")
	}
	return "", ErrUnrecognized
}

func (f *Flow) enterCertificateID(ctx context.Context, s *Session) (State, error) {
	s.trackInbound()
	code := strings.TrimSpace(s.Event.Text)
	if code == "" {
		return f.wrongCertificateMenu(ctx, s, "")
	}

	res, err := f.store.ActivateCertificate(ctx, entity.Activation{
		ChatID:        s.Record.ChatID,
		Username:      s.Event.Username,
		Language:      string(s.Record.Language),
		CertificateID: code,
	})
	if err != nil {
		return "", fmt.Errorf("activate certificate: %w", err)
	}
	if !res.Availability {
		return f.wrongCertificateMenu(ctx, s, "")
	}

	name := res.ImpressionName
	if name == "" {
		// the impression left the catalog after the certificate was sold
		name = code
	}

	c := s.copy()
	screen := f.thanksScreen(fmt.Sprintf(EscapeMarkdown(c.GoodCertificate), markdownBold(name)), c)
	screen.Markdown = true
	if err = f.screens.Send(ctx, s, screen); err != nil {
		return "", err
	}
	return StateDialogueEnd, nil
}

func (f *Flow) selectWrongCertificate(ctx context.Context, s *Session) (State, error) {
	switch s.Event.Data {
	case DataCertificateID:
		return f.certificateInvitation(ctx, s, "")
	case DataCallPerson:
		s.Record.Fields.RequestType = entity.RequestActivationProblem
		return f.callingPerson(ctx, s)
	case DataMainMenu:
		if err := s.History.Clear(ctx, true, false); err != nil {
			return "", err
		}
		return f.mainMenu(ctx, s, "")
	}
	return "", ErrUnrecognized
}

func (f *Flow) selectFaq(ctx context.Context, s *Session) (State, error) {
	switch s.Event.Data {
	case DataMainMenu:
		return f.mainMenu(ctx, s, "")
	case DataCallPerson:
		s.Record.Fields.RequestType = entity.RequestQuestionForOperator
		return f.callingPerson(ctx, s)
	}
	return "", ErrUnrecognized
}
