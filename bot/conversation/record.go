package conversation

import "time"

type Language string

const (
	LanguageRu Language = "ru"
	LanguageEn Language = "en"
)

func (l Language) Valid() bool {
	return l == LanguageRu || l == LanguageEn
}

// Fields accumulates validated user input across turns.
type Fields struct {
	CustomerFullName     string  `json:"customer_fullname,omitempty" bson:"customer_fullname,omitempty"`
	CustomerPhone        string  `json:"customer_phone,omitempty" bson:"customer_phone,omitempty"`
	CustomerEmail        string  `json:"customer_email,omitempty" bson:"customer_email,omitempty"`
	ImpressionsCategory  string  `json:"impressions_category,omitempty" bson:"impressions_category,omitempty"`
	DisplayedImpressions []int64 `json:"displayed_impressions,omitempty" bson:"displayed_impressions,omitempty"`
	ImpressionID         int64   `json:"impression_id,omitempty" bson:"impression_id,omitempty"`
	ReceivingMethod      string  `json:"receiving_method,omitempty" bson:"receiving_method,omitempty"`
	DeliveryMethod       string  `json:"delivery_method,omitempty" bson:"delivery_method,omitempty"`
	RecipientName        string  `json:"recipient_name,omitempty" bson:"recipient_name,omitempty"`
	RecipientContact     string  `json:"recipient_contact,omitempty" bson:"recipient_contact,omitempty"`
	RequestType          string  `json:"request_type,omitempty" bson:"request_type,omitempty"`
}

// Record is the persisted conversation of one chat.
type Record struct {
	ChatID    int64     `json:"chat_id" bson:"chat_id"`
	State     State     `json:"state" bson:"state"`
	Language  Language  `json:"language,omitempty" bson:"language,omitempty"`
	History   []int64   `json:"message_history" bson:"message_history"`
	Fields    Fields    `json:"fields" bson:"fields"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

func NewRecord(chatID int64) *Record {
	return &Record{
		ChatID:    chatID,
		State:     StateStart,
		History:   []int64{},
		UpdatedAt: time.Now(),
	}
}

// CurrentState returns the stored state, or StateStart when none is stored.
func (r *Record) CurrentState() State {
	if r.State == "" {
		return StateStart
	}
	return r.State
}

// Reset wipes everything but the chat id.
func (r *Record) Reset() {
	r.State = StateStart
	r.Language = ""
	r.History = []int64{}
	r.Fields = Fields{}
}

// ClearFields drops the answers of a finished flow, keeping language and history.
func (r *Record) ClearFields() {
	r.Fields = Fields{}
}
