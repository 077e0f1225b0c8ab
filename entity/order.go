package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ReceivingEmail   = "email"
	ReceivingGiftBox = "gift_box"

	DeliveryCourier = "courier_delivery"
	DeliverySelf    = "self_delivery"
)

// Order is the purchase payload handed to the store at the end of a purchase flow.
type Order struct {
	Number           string             `json:"number" bson:"number"`
	ChatID           int64              `json:"chat_id" bson:"chat_id" validate:"required"`
	Username         string             `json:"username" bson:"username"`
	Language         string             `json:"language" bson:"language" validate:"required,oneof=ru en"`
	CustomerEmail    string             `json:"customer_email" bson:"customer_email" validate:"required_if=EmailReceiving true"`
	CustomerFullName string             `json:"customer_fullname" bson:"customer_fullname" validate:"required,min=4"`
	CustomerPhone    string             `json:"customer_phone" bson:"customer_phone" validate:"required,e164"`
	ImpressionID     int64              `json:"impression_id" bson:"impression_id" validate:"required,gt=0"`
	RecipientName    string             `json:"recipient_name" bson:"recipient_name" validate:"required"`
	RecipientContact string             `json:"recipient_contact" bson:"recipient_contact" validate:"required"`
	EmailReceiving   bool               `json:"email_receiving" bson:"email_receiving"`
	DeliveryMethod   string             `json:"delivery_method,omitempty" bson:"delivery_method,omitempty" validate:"required_if=EmailReceiving false,omitempty,oneof=courier_delivery self_delivery"`
	Screenshot       []byte             `json:"-" bson:"-"`
	ScreenshotID     primitive.ObjectID `json:"screenshot_id,omitempty" bson:"screenshot_id,omitempty"`
	CreatedAt        time.Time          `json:"created_at" bson:"created_at"`
}

// ScreenshotMeta is stored alongside a payment screenshot file.
type ScreenshotMeta struct {
	OrderNumber string `json:"order_number" bson:"order_number"`
	ChatID      int64  `json:"chat_id" bson:"chat_id"`
	ContentType string `json:"content_type" bson:"content_type"`
}
