package conversation

// State identifies one screen of the purchase flow. The set is closed.
type State string

const (
	StateStart                        State = "start"
	StateLanguageSelection            State = "language_selection"
	StateMainMenu                     State = "main_menu"
	StateCategorySelection            State = "category_selection"
	StateImpressionSelection          State = "impression_selection"
	StateReceivingMethodSelection     State = "receiving_method_selection"
	StateAwaitingEmail                State = "awaiting_email"
	StatePrivacyAck                   State = "privacy_ack"
	StateAwaitingFullName             State = "awaiting_fullname"
	StateAwaitingPhone                State = "awaiting_phone"
	StateAwaitingCustomerConfirmation State = "awaiting_customer_confirmation"
	StateAwaitingPaymentScreenshot    State = "awaiting_payment_screenshot"
	StateDialogueEnd                  State = "dialogue_end"
	StateDeliveryMethodSelection      State = "delivery_method_selection"
	StateAwaitingRecipientName        State = "awaiting_recipient_name"
	StateAwaitingRecipientContact     State = "awaiting_recipient_contact"
	StateAwaitingRecipientConfirm     State = "awaiting_recipient_confirmation"
	StateSelfDeliveryConfirm          State = "self_delivery_confirm"
	StateAwaitingCertificateID        State = "awaiting_certificate_id"
	StateWrongCertificateMenu         State = "wrong_certificate_menu"
	StateFaqSelection                 State = "faq_selection"
)

// States lists every state in flow order.
func States() []State {
	return []State{
		StateStart,
		StateLanguageSelection,
		StateMainMenu,
		StateCategorySelection,
		StateImpressionSelection,
		StateReceivingMethodSelection,
		StateAwaitingEmail,
		StatePrivacyAck,
		StateAwaitingFullName,
		StateAwaitingPhone,
		StateAwaitingCustomerConfirmation,
		StateAwaitingPaymentScreenshot,
		StateDialogueEnd,
		StateDeliveryMethodSelection,
		StateAwaitingRecipientName,
		StateAwaitingRecipientContact,
		StateAwaitingRecipientConfirm,
		StateSelfDeliveryConfirm,
		StateAwaitingCertificateID,
		StateWrongCertificateMenu,
		StateFaqSelection,
	}
}

// Valid reports whether s is a member of the state set.
func (s State) Valid() bool {
	for _, st := range States() {
		if st == s {
			return true
		}
	}
	return false
}

// localized reports whether the handler bound to s renders localized copy,
// which requires the record language to be set.
func (s State) localized() bool {
	return s != StateStart && s != StateLanguageSelection
}
