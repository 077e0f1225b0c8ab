package conversation

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"ImpressionsBot/entity"
)

// toReceivingMenu walks a fresh chat up to the receiving method choice.
func (h *harness) toReceivingMenu() {
	h.t.Helper()
	h.text("/start")
	h.press(string(LanguageEn))
	h.press(DataImpression)
	h.press(CategoryMan)
	h.text("1")
	h.expectState(StateReceivingMethodSelection)
}

// toCustomerConfirmation continues from the privacy screen.
func (h *harness) toCustomerConfirmation() {
	h.t.Helper()
	h.press(DataPrivacyPolicy)
	h.expectState(StateAwaitingFullName)
	h.text("Jane Doe")
	h.expectState(StateAwaitingPhone)
	h.text("+12025550191")
	h.expectState(StateAwaitingCustomerConfirmation)
}

func TestGiftBoxSelfDeliveryScenario(t *testing.T) {
	h := newHarness(t)

	h.text("/start")
	h.expectState(StateLanguageSelection)
	h.press(string(LanguageEn))
	h.expectState(StateMainMenu)
	h.press(DataImpression)
	h.expectState(StateCategorySelection)
	h.press(CategoryMan)
	h.expectState(StateImpressionSelection)
	h.text("1")
	h.expectState(StateReceivingMethodSelection)
	h.press(DataGiftBox)
	h.expectState(StatePrivacyAck)
	h.toCustomerConfirmation()
	h.press(DataRightCustomer)
	h.expectState(StateDeliveryMethodSelection)
	h.press(DataSelfDelivery)
	h.expectState(StateSelfDeliveryConfirm)
	h.press(DataSelfYes)
	h.expectState(StateDialogueEnd)

	if len(h.store.orders) != 1 {
		t.Fatalf("created %d orders, want 1", len(h.store.orders))
	}
	order := h.store.orders[0]
	if order.EmailReceiving {
		t.Fatal("gift box order marked as email receiving")
	}
	if order.DeliveryMethod != entity.DeliverySelf {
		t.Fatalf("delivery method = %q", order.DeliveryMethod)
	}
	if order.ImpressionID != 7 || order.CustomerFullName != "Jane Doe" || order.CustomerPhone != "+12025550191" {
		t.Fatalf("unexpected order payload: %+v", order)
	}
	if order.RecipientName != "Jane Doe" || order.RecipientContact != copies[LanguageEn].RecipientCustomer {
		t.Fatalf("self delivery recipient = %q / %q", order.RecipientName, order.RecipientContact)
	}
	if order.Language != "en" || order.ChatID != 42 || order.Username != "jane" {
		t.Fatalf("order owner = %+v", order)
	}

	rec := h.record()
	if len(rec.History) != 1 {
		t.Fatalf("history = %v, want a single live message", rec.History)
	}
	if len(h.transport.answered) == 0 {
		t.Fatal("selections were not acknowledged")
	}
}

func TestGiftBoxCourierScenario(t *testing.T) {
	h := newHarness(t)
	h.toReceivingMenu()
	h.press(DataGiftBox)
	h.toCustomerConfirmation()
	h.press(DataRightCustomer)
	h.press(DataCourier)
	h.expectState(StateAwaitingRecipientName)

	h.text("A")
	h.expectState(StateAwaitingRecipientName)
	if got := h.transport.lastText(); got != copies[LanguageEn].RecipientError {
		t.Fatalf("last message = %q, want recipient name error", got)
	}

	h.text("Bob")
	h.expectState(StateAwaitingRecipientContact)
	h.text("@bob")
	h.expectState(StateAwaitingRecipientConfirm)
	h.press(DataRightRecipient)
	h.expectState(StateDialogueEnd)

	if len(h.store.orders) != 1 {
		t.Fatalf("created %d orders, want 1", len(h.store.orders))
	}
	order := h.store.orders[0]
	if order.DeliveryMethod != entity.DeliveryCourier || order.RecipientName != "Bob" || order.RecipientContact != "@bob" {
		t.Fatalf("unexpected courier order: %+v", order)
	}
}

func TestEmailScenario(t *testing.T) {
	h := newHarness(t)
	h.toReceivingMenu()
	h.press(DataEmail)
	h.expectState(StateAwaitingEmail)

	h.text("not-an-email")
	h.expectState(StateAwaitingEmail)
	h.text("  jane@example.com ")
	h.expectState(StatePrivacyAck)
	h.toCustomerConfirmation()
	h.press(DataRightCustomer)
	h.expectState(StateAwaitingPaymentScreenshot)

	h.text("paid!")
	h.expectState(StateAwaitingPaymentScreenshot)
	if n := len(h.transport.edits); !strings.HasPrefix(h.transport.edits[n-1].screen.Text, EscapeMarkdown(copies[LanguageEn].NotScreenshot)) {
		t.Fatalf("payment screen lacks the clarification: %q", h.transport.edits[n-1].screen.Text)
	}

	h.transport.media["photo-1"] = []byte{0x89, 'P', 'N', 'G'}
	h.photo("photo-1")
	h.expectState(StateDialogueEnd)

	if len(h.store.orders) != 1 {
		t.Fatalf("created %d orders, want 1", len(h.store.orders))
	}
	order := h.store.orders[0]
	if !order.EmailReceiving || order.CustomerEmail != "jane@example.com" {
		t.Fatalf("unexpected email order: %+v", order)
	}
	if order.DeliveryMethod != "" {
		t.Fatalf("email order carries delivery method %q", order.DeliveryMethod)
	}
	if !reflect.DeepEqual(order.Screenshot, []byte{0x89, 'P', 'N', 'G'}) {
		t.Fatalf("screenshot = %v", order.Screenshot)
	}

	h.press(DataMainMenu)
	h.expectState(StateMainMenu)
	rec := h.record()
	if !reflect.DeepEqual(rec.Fields, Fields{}) {
		t.Fatalf("fields leaked past the dialogue end: %+v", rec.Fields)
	}
	if rec.Language != LanguageEn {
		t.Fatalf("language lost: %q", rec.Language)
	}
	if len(rec.History) != 1 {
		t.Fatalf("history = %v, want a single live message", rec.History)
	}
}

func TestRestartIsIdempotent(t *testing.T) {
	h := newHarness(t)
	h.toReceivingMenu()
	h.press(DataGiftBox)
	h.toCustomerConfirmation()

	for i := 0; i < 2; i++ {
		h.text("/start")
		rec := h.record()
		if rec.State != StateLanguageSelection {
			t.Fatalf("restart %d: state = %s", i, rec.State)
		}
		if !reflect.DeepEqual(rec.Fields, Fields{}) {
			t.Fatalf("restart %d: fields = %+v", i, rec.Fields)
		}
		if rec.Language != "" {
			t.Fatalf("restart %d: language = %q", i, rec.Language)
		}
		if !reflect.DeepEqual(rec.History, []int64{h.transport.lastScreen}) {
			t.Fatalf("restart %d: history = %v, want only the language menu %d", i, rec.History, h.transport.lastScreen)
		}
	}
}

func TestCustomerConfirmationStrayText(t *testing.T) {
	h := newHarness(t)
	h.toReceivingMenu()
	h.press(DataGiftBox)
	h.toCustomerConfirmation()

	prompt := h.transport.lastScreen
	stray := h.text("yes")

	h.expectState(StateAwaitingCustomerConfirmation)
	if !reflect.DeepEqual(h.transport.deleted, []int64{stray, prompt}) {
		t.Fatalf("deleted %v, want stray %d then prompt %d", h.transport.deleted, stray, prompt)
	}
	if got := h.transport.lastText(); !strings.HasPrefix(got, copies[LanguageEn].UnclearCustomer) {
		t.Fatalf("confirmation not repeated with clarification: %q", got)
	}

	rec := h.record()
	for _, id := range rec.History {
		if id == stray || id == prompt {
			t.Fatalf("deleted message %d still tracked: %v", id, rec.History)
		}
	}
}

func TestWrongCustomerRestartsDataEntry(t *testing.T) {
	h := newHarness(t)
	h.toReceivingMenu()
	h.press(DataGiftBox)
	h.toCustomerConfirmation()

	h.press(DataWrongCustomer)
	h.expectState(StateAwaitingFullName)
	n := len(h.transport.edits)
	if h.transport.edits[n-1].screen.Text != copies[LanguageEn].Correction || h.transport.edits[n-1].screen.Keyboard != nil {
		t.Fatalf("confirmation not replaced by the correction heading: %+v", h.transport.edits[n-1])
	}
}

func TestUnrecognizedInputKeepsState(t *testing.T) {
	h := newHarness(t)
	h.text("/start")
	h.press(string(LanguageEn))

	h.text("hello")
	h.expectState(StateMainMenu)
	n := len(h.transport.edits)
	if !strings.HasPrefix(h.transport.edits[n-1].screen.Text, copies[LanguageEn].Misunderstanding) {
		t.Fatalf("main menu not repeated with clarification: %q", h.transport.edits[n-1].screen.Text)
	}

	h.press("unknown")
	h.expectState(StateMainMenu)

	h.press(DataImpression)
	h.press(CategoryMan)
	for _, in := range []string{"0", "3", "x"} {
		h.text(in)
		h.expectState(StateImpressionSelection)
	}
	if id := h.record().Fields.ImpressionID; id != 0 {
		t.Fatalf("impression %d chosen from invalid input", id)
	}
}

type promptStep struct {
	state  State
	prompt string
	input  string
}

// answerAfterStaleButton presses an outdated button in each text prompt
// before typing the answer.
func (h *harness) answerAfterStaleButton(steps ...promptStep) {
	h.t.Helper()
	misunderstanding := copies[LanguageEn].Misunderstanding
	for _, step := range steps {
		h.press("stale_button")
		h.expectState(step.state)
		if got := h.transport.lastText(); got != misunderstanding+step.prompt {
			h.t.Fatalf("%s: re-rendered %q, want clarification and prompt", step.state, got)
		}
		h.text(step.input)
	}
}

func TestTextPromptsClarifyStaleButtons(t *testing.T) {
	h := newHarness(t)
	h.toReceivingMenu()
	h.press(DataGiftBox)
	h.press(DataPrivacyPolicy)
	c := copies[LanguageEn]

	h.answerAfterStaleButton(
		promptStep{StateAwaitingFullName, c.FullNamePrompt, "Jane Doe"},
		promptStep{StateAwaitingPhone, c.PhonePrompt, "+12025550191"},
	)
	h.expectState(StateAwaitingCustomerConfirmation)

	h.press(DataRightCustomer)
	h.press(DataCourier)
	h.answerAfterStaleButton(
		promptStep{StateAwaitingRecipientName, c.RecipientPrompt, "Bob"},
		promptStep{StateAwaitingRecipientContact, c.ContactPrompt, "@bob"},
	)
	h.expectState(StateAwaitingRecipientConfirm)
}

func TestEmptyCatalogFallsBackToMainMenu(t *testing.T) {
	h := newHarness(t)
	h.store.impressions = nil
	h.text("/start")
	h.press(string(LanguageEn))
	h.press(DataImpression)
	h.press(CategoryCouple)

	h.expectState(StateMainMenu)
	n := len(h.transport.edits)
	if !strings.HasPrefix(h.transport.edits[n-1].screen.Text, copies[LanguageEn].NoImpressions) {
		t.Fatalf("empty catalog not reported: %q", h.transport.edits[n-1].screen.Text)
	}
}

func TestCertificateActivation(t *testing.T) {
	h := newHarness(t)
	h.text("/start")
	h.press(string(LanguageRu))
	h.press(DataCertificate)
	h.expectState(StateAwaitingCertificateID)

	h.text(" GOOD-1 ")
	h.expectState(StateDialogueEnd)
	if len(h.store.activations) != 1 || h.store.activations[0].CertificateID != "GOOD-1" {
		t.Fatalf("activations = %+v", h.store.activations)
	}
	if h.store.activations[0].Language != "ru" {
		t.Fatalf("activation language = %q", h.store.activations[0].Language)
	}
	if n := len(h.transport.sent); !h.transport.sent[n-1].Markdown {
		t.Fatal("activated impression screen is not markdown")
	}
}

func TestWrongCertificateCallsPerson(t *testing.T) {
	h := newHarness(t)
	h.text("/start")
	h.press(string(LanguageEn))
	h.press(DataCertificate)

	h.text("NOPE")
	h.expectState(StateWrongCertificateMenu)

	h.press(DataCertificateID)
	h.expectState(StateAwaitingCertificateID)
	h.text("NOPE")
	h.expectState(StateWrongCertificateMenu)

	h.press(DataCallPerson)
	h.expectState(StateDialogueEnd)
	if len(h.store.applications) != 1 || h.store.applications[0].RequestType != entity.RequestActivationProblem {
		t.Fatalf("applications = %+v", h.store.applications)
	}
}

func TestFaqCallsPerson(t *testing.T) {
	h := newHarness(t)
	h.text("/start")
	h.press(string(LanguageEn))
	h.press(DataFaq)
	h.expectState(StateFaqSelection)

	h.text("what?")
	h.expectState(StateFaqSelection)

	h.press(DataCallPerson)
	h.expectState(StateDialogueEnd)
	if len(h.store.applications) != 1 || h.store.applications[0].RequestType != entity.RequestQuestionForOperator {
		t.Fatalf("applications = %+v", h.store.applications)
	}
	if h.store.applications[0].Username != "jane" {
		t.Fatalf("username = %q", h.store.applications[0].Username)
	}
}

func TestStoreFailureKeepsState(t *testing.T) {
	h := newHarness(t)
	h.text("/start")
	h.press(string(LanguageEn))
	h.press(DataImpression)

	boom := errors.New("catalog offline")
	h.store.impressionsErr = boom
	err := h.dispatcher.Dispatch(context.Background(), Event{
		Kind:      Selection,
		ChatID:    h.chatID,
		MessageID: h.transport.lastScreen,
		Data:      CategoryMan,
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Dispatch error = %v, want %v", err, boom)
	}
	h.expectState(StateCategorySelection)
}

func TestRouteRequiresLanguage(t *testing.T) {
	h := newHarness(t)
	rec := NewRecord(42)
	rec.State = StateMainMenu

	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrLanguageNotSet) {
			t.Fatalf("recovered %v, want ErrLanguageNotSet panic", r)
		}
	}()
	_, _ = h.dispatcher.Route(context.Background(), Event{Kind: TextInput, ChatID: 42, MessageID: 1, Text: "hi"}, rec)
	t.Fatal("strict dispatcher did not panic")
}

func TestRouteRequiresLanguageLenient(t *testing.T) {
	h := newHarness(t)
	h.dispatcher.strict = false
	rec := NewRecord(42)
	rec.State = StateAwaitingPhone

	_, err := h.dispatcher.Route(context.Background(), Event{Kind: TextInput, ChatID: 42, MessageID: 1, Text: "+12025550191"}, rec)
	if !errors.Is(err, ErrLanguageNotSet) {
		t.Fatalf("Route error = %v, want ErrLanguageNotSet", err)
	}
	if len(h.transport.sent)+len(h.transport.edits) != 0 {
		t.Fatal("handler ran without a language")
	}
}

func TestUnknownPersistedStateRestarts(t *testing.T) {
	h := newHarness(t)
	rec := NewRecord(h.chatID)
	rec.State = State("retired_state")
	rec.Language = LanguageEn
	if err := h.storage.Save(context.Background(), rec); err != nil {
		t.Fatal(err)
	}

	h.text("hello")
	h.expectState(StateLanguageSelection)
}

func TestRegistryCoversEveryState(t *testing.T) {
	registry := NewRegistry(NewFlow(newFakeTransport(), newFakeStore(), discardLogger()))
	for _, st := range States() {
		if h := registry.Lookup(st); h.Fallback == nil {
			t.Fatalf("state %s has no fallback", st)
		}
	}
}

func TestStatesStayValid(t *testing.T) {
	h := newHarness(t)
	inputs := []func(){
		func() { h.text("/start") },
		func() { h.press("garbage") },
		func() { h.text("garbage") },
		func() { h.press(string(LanguageRu)) },
		func() { h.press(DataFaq) },
		func() { h.press(DataMainMenu) },
		func() { h.press(DataImpression) },
		func() { h.press(CategoryAll) },
		func() { h.text("2") },
		func() { h.press(DataMainMenu) },
		func() { h.text("/start@ImpressionsBot") },
	}
	for i, in := range inputs {
		in()
		if st := h.record().State; !st.Valid() {
			t.Fatalf("step %d left invalid state %q", i, st)
		}
	}
	h.expectState(StateLanguageSelection)
}
