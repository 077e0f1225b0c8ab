package conversation

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"ImpressionsBot/entity"
)

// Button payloads.
const (
	DataImpression  = "impression"
	DataCertificate = "certificate"
	DataFaq         = "faq"
	DataMainMenu    = "main_menu"

	CategoryMan    = "man"
	CategoryGirl   = "girl"
	CategoryCouple = "couple"
	CategoryAll    = "all"
	DataCategories = "category_menu"

	DataGiftBox = entity.ReceivingGiftBox
	DataEmail   = entity.ReceivingEmail

	DataPrivacyPolicy = "privacy_policy"
	DataRightCustomer = "right_customer"
	DataWrongCustomer = "wrong_customer"

	DataCourier      = entity.DeliveryCourier
	DataSelfDelivery = entity.DeliverySelf

	DataRightRecipient = "right_recipient"
	DataWrongRecipient = "wrong_recipient"
	DataSelfYes        = "self_delivery_yes"
	DataSelfNo         = "self_delivery_no"

	DataCertificateID = "certificate_id"
	DataCallPerson    = "call_person"
)

var categories = []string{CategoryMan, CategoryGirl, CategoryCouple, CategoryAll}

func isCategory(data string) bool {
	for _, c := range categories {
		if c == data {
			return true
		}
	}
	return false
}

func single(text, data string) []Button {
	return []Button{{Text: text, Data: data}}
}

// -------- anchored screens --------

func (f *Flow) languageMenu(ctx context.Context, s *Session) (State, error) {
	screen := Screen{
		Text: languageMenuText,
		Keyboard: Keyboard{{
			{Text: "🇷🇺 Русский", Data: string(LanguageRu)},
			{Text: "🇬🇧 English", Data: string(LanguageEn)},
		}},
	}
	if err := f.screens.Send(ctx, s, screen); err != nil {
		return "", err
	}
	return StateLanguageSelection, nil
}

func (f *Flow) mainMenu(ctx context.Context, s *Session, prefix string) (State, error) {
	c := s.copy()
	screen := Screen{
		Text: prefix + c.MainMenu,
		Keyboard: Keyboard{
			single(c.ImpressionButton, DataImpression),
			single(c.CertificateButton, DataCertificate),
			single(c.FaqButton, DataFaq),
		},
	}
	if err := f.screens.Render(ctx, s, screen); err != nil {
		return "", err
	}
	return StateMainMenu, nil
}

func (f *Flow) categoriesMenu(ctx context.Context, s *Session, prefix string) (State, error) {
	c := s.copy()
	kb := make(Keyboard, 0, len(categories)+1)
	for _, cat := range categories {
		kb = append(kb, single(c.CategoryButtons[cat], cat))
	}
	kb = append(kb, single(c.BackToMainMenu, DataMainMenu))

	if err := f.screens.Render(ctx, s, Screen{Text: prefix + c.Categories, Keyboard: kb}); err != nil {
		return "", err
	}
	return StateCategorySelection, nil
}

// impressionsMenu lists the category as numbered links and remembers the
// displayed ids for selection by number.
func (f *Flow) impressionsMenu(ctx context.Context, s *Session, prefix string) (State, error) {
	c := s.copy()
	category := s.Record.Fields.ImpressionsCategory

	items, err := f.store.Impressions(ctx, string(s.Record.Language), category)
	if err != nil {
		return "", fmt.Errorf("impressions: %w", err)
	}
	if len(items) == 0 {
		return f.mainMenu(ctx, s, c.NoImpressions)
	}

	var b strings.Builder
	b.WriteString(EscapeMarkdown(prefix))
	if title, ok := c.CategoryTitles[category]; ok {
		b.WriteString(markdownBold(title))
		b.WriteString("\n\n")
	}
	b.WriteString(EscapeMarkdown(c.ImpressionsHint))

	displayed := make([]int64, 0, len(items))
	for i, item := range items {
		b.WriteString(markdownLink(strconv.Itoa(i+1)+". "+item.Title(), item.URL))
		b.WriteString("\n")
		displayed = append(displayed, item.ID)
	}
	s.Record.Fields.DisplayedImpressions = displayed

	screen := Screen{
		Text:     b.String(),
		Keyboard: Keyboard{single(c.BackToCategories, DataCategories)},
		Markdown: true,
	}
	if err = f.screens.Render(ctx, s, screen); err != nil {
		return "", err
	}
	return StateImpressionSelection, nil
}

func (f *Flow) receivingMenu(ctx context.Context, s *Session, prefix string) (State, error) {
	c := s.copy()

	item, err := f.store.Impression(ctx, s.Record.Fields.ImpressionID, string(s.Record.Language))
	if errors.Is(err, entity.ErrNotFound) {
		return f.impressionsMenu(ctx, s, c.UnclearImpression)
	}
	if err != nil {
		return "", fmt.Errorf("impression: %w", err)
	}

	screen := Screen{
		Text: EscapeMarkdown(prefix+c.ChosenImpression) +
			markdownBold(item.Title()) +
			EscapeMarkdown(c.ReceivingQuestion),
		Keyboard: Keyboard{
			single(c.GiftBoxButton, DataGiftBox),
			single(c.EmailButton, DataEmail),
			single(c.OtherImpression, DataImpression),
			single(c.BackToMainMenu, DataMainMenu),
		},
		Markdown: true,
	}
	if err = f.screens.Render(ctx, s, screen); err != nil {
		return "", err
	}
	return StateReceivingMethodSelection, nil
}

func (f *Flow) emailInvitation(ctx context.Context, s *Session, prefix string) (State, error) {
	if err := f.screens.Render(ctx, s, Screen{Text: prefix + s.copy().EmailPrompt}); err != nil {
		return "", err
	}
	return StateAwaitingEmail, nil
}

func (f *Flow) privacyMenu(ctx context.Context, s *Session, prefix string) (State, error) {
	c := s.copy()

	url, err := f.store.PolicyURL(ctx, string(s.Record.Language))
	if err != nil {
		return "", fmt.Errorf("policy url: %w", err)
	}

	screen := Screen{
		Text:     EscapeMarkdown(prefix+c.PrivacyIntro) + markdownLink(c.PrivacyLink, url),
		Keyboard: Keyboard{single(c.AcquaintedButton, DataPrivacyPolicy)},
		Markdown: true,
	}
	if err = f.screens.Render(ctx, s, screen); err != nil {
		return "", err
	}
	return StatePrivacyAck, nil
}

func (f *Flow) paymentInvitation(ctx context.Context, s *Session, prefix string) (State, error) {
	c := s.copy()

	details, err := f.store.PaymentDetails(ctx, string(s.Record.Language))
	if err != nil {
		return "", fmt.Errorf("payment details: %w", err)
	}

	screen := Screen{
		Text:     EscapeMarkdown(prefix+c.PaymentIntro) + markdownBold(details) + EscapeMarkdown(c.PaymentOutro),
		Markdown: true,
	}
	if err = f.screens.Render(ctx, s, screen); err != nil {
		return "", err
	}
	return StateAwaitingPaymentScreenshot, nil
}

func (f *Flow) selfDeliveryMenu(ctx context.Context, s *Session, prefix string) (State, error) {
	c := s.copy()

	point, err := f.store.SelfDeliveryPoint(ctx, string(s.Record.Language))
	if err != nil {
		return "", fmt.Errorf("self delivery point: %w", err)
	}

	screen := Screen{
		Text: prefix + fmt.Sprintf(c.SelfDeliveryFormat, point.Address, point.OpeningHours),
		Keyboard: Keyboard{{
			{Text: c.SuitsMeButton, Data: DataSelfYes},
			{Text: c.BackToDelivery, Data: DataSelfNo},
		}},
	}
	if err = f.screens.Render(ctx, s, screen); err != nil {
		return "", err
	}
	return StateSelfDeliveryConfirm, nil
}

func (f *Flow) certificateInvitation(ctx context.Context, s *Session, prefix string) (State, error) {
	if err := f.screens.Render(ctx, s, Screen{Text: prefix + s.copy().CertificatePrompt}); err != nil {
		return "", err
	}
	return StateAwaitingCertificateID, nil
}

func (f *Flow) faqMenu(ctx context.Context, s *Session, prefix string) (State, error) {
	c := s.copy()

	items, err := f.store.FaqDetails(ctx, string(s.Record.Language))
	if err != nil {
		return "", fmt.Errorf("faq details: %w", err)
	}

	hint := c.FaqHint
	if len(items) == 0 {
		hint = c.FaqEmpty
	}

	var b strings.Builder
	b.WriteString(EscapeMarkdown(prefix + hint))
	for i, item := range items {
		b.WriteString(markdownLink(strconv.Itoa(i+1)+". "+item.Question, item.URL))
		b.WriteString("\n")
	}

	screen := Screen{
		Text: b.String(),
		Keyboard: Keyboard{
			single(c.CallPersonButton, DataCallPerson),
			single(c.BackToMainMenu, DataMainMenu),
		},
		Markdown: true,
	}
	if err = f.screens.Render(ctx, s, screen); err != nil {
		return "", err
	}
	return StateFaqSelection, nil
}

// correction replaces the pressed confirmation with a plain heading.
func (f *Flow) correction(ctx context.Context, s *Session) error {
	return f.screens.Render(ctx, s, Screen{Text: s.copy().Correction})
}

// -------- fresh messages --------

func (f *Flow) prompt(ctx context.Context, s *Session, text string, next State) (State, error) {
	if err := f.screens.Send(ctx, s, Screen{Text: text}); err != nil {
		return "", err
	}
	return next, nil
}

func (f *Flow) customerConfirmation(ctx context.Context, s *Session, prefix string) (State, error) {
	c := s.copy()
	fields := s.Record.Fields
	screen := Screen{
		Text: prefix + c.Entered + fields.CustomerFullName + "\n" + fields.CustomerPhone + "\n\n" + c.IsRight,
		Keyboard: Keyboard{
			single(c.RightButton, DataRightCustomer),
			single(c.CorrectButton, DataWrongCustomer),
		},
	}
	if err := f.screens.Send(ctx, s, screen); err != nil {
		return "", err
	}
	return StateAwaitingCustomerConfirmation, nil
}

func (f *Flow) recipientConfirmation(ctx context.Context, s *Session, prefix string) (State, error) {
	c := s.copy()
	fields := s.Record.Fields
	screen := Screen{
		Text: prefix + c.Entered + fields.RecipientName + "\n" + fields.RecipientContact + "\n\n" + c.IsRight,
		Keyboard: Keyboard{
			single(c.RightButton, DataRightRecipient),
			single(c.CorrectButton, DataWrongRecipient),
		},
	}
	if err := f.screens.Send(ctx, s, screen); err != nil {
		return "", err
	}
	return StateAwaitingRecipientConfirm, nil
}

// deliveryMenu wipes the collected-data messages and starts a clean screen.
func (f *Flow) deliveryMenu(ctx context.Context, s *Session, prefix string) (State, error) {
	c := s.copy()

	s.trackInbound()
	if err := s.History.Clear(ctx, true, true); err != nil {
		return "", err
	}

	screen := Screen{
		Text: prefix + c.DeliveryQuestion,
		Keyboard: Keyboard{{
			{Text: c.CourierButton, Data: DataCourier},
			{Text: c.SelfDeliveryButton, Data: DataSelfDelivery},
		}},
	}
	if err := f.screens.Send(ctx, s, screen); err != nil {
		return "", err
	}
	return StateDeliveryMethodSelection, nil
}

func (f *Flow) thanksScreen(text string, c *copyText) Screen {
	return Screen{
		Text:     text,
		Keyboard: Keyboard{single(c.ThanksMainMenu, DataMainMenu)},
	}
}

func (f *Flow) wrongCertificateMenu(ctx context.Context, s *Session, prefix string) (State, error) {
	c := s.copy()
	if prefix == "" {
		prefix = c.WrongCertificate
	}
	screen := Screen{
		Text: prefix + c.WrongCertificateTip,
		Keyboard: Keyboard{
			{
				{Text: c.EnterAgainButton, Data: DataCertificateID},
				{Text: c.CallPersonButton, Data: DataCallPerson},
			},
			single(c.ThanksMainMenu, DataMainMenu),
		},
	}
	if err := f.screens.Send(ctx, s, screen); err != nil {
		return "", err
	}
	return StateWrongCertificateMenu, nil
}

// -------- store-backed terminal screens --------

// successfulBooking records a gift-box order and closes the dialogue.
func (f *Flow) successfulBooking(ctx context.Context, s *Session) (State, error) {
	c := s.copy()
	fields := s.Record.Fields

	recipientName, recipientContact := fields.CustomerFullName, c.RecipientCustomer
	if fields.DeliveryMethod == DataCourier {
		recipientName, recipientContact = fields.RecipientName, fields.RecipientContact
	}

	order := f.order(s)
	order.RecipientName = recipientName
	order.RecipientContact = recipientContact
	order.EmailReceiving = false
	order.DeliveryMethod = fields.DeliveryMethod

	if err := f.store.CreateOrder(ctx, order); err != nil {
		return "", fmt.Errorf("create order: %w", err)
	}

	if err := f.screens.Render(ctx, s, f.thanksScreen(c.Booked, c)); err != nil {
		return "", err
	}
	return StateDialogueEnd, nil
}

// callingPerson files a support application of the recorded request type.
func (f *Flow) callingPerson(ctx context.Context, s *Session) (State, error) {
	c := s.copy()

	app := &entity.SupportApplication{
		ChatID:      s.Record.ChatID,
		Username:    s.Event.Username,
		Language:    string(s.Record.Language),
		RequestType: s.Record.Fields.RequestType,
	}
	if err := f.store.CreateSupportApplication(ctx, app); err != nil {
		return "", fmt.Errorf("create support application: %w", err)
	}

	if err := f.screens.Render(ctx, s, f.thanksScreen(c.CallingPerson, c)); err != nil {
		return "", err
	}
	return StateDialogueEnd, nil
}

func (f *Flow) order(s *Session) *entity.Order {
	fields := s.Record.Fields
	return &entity.Order{
		ChatID:           s.Record.ChatID,
		Username:         s.Event.Username,
		Language:         string(s.Record.Language),
		CustomerFullName: fields.CustomerFullName,
		CustomerPhone:    fields.CustomerPhone,
		ImpressionID:     fields.ImpressionID,
	}
}
