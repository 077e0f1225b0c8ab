package entity

import "errors"

// ErrNotFound is returned by catalog lookups that match nothing.
var ErrNotFound = errors.New("not found")

// Impression is a purchasable gift experience, localized for one language.
type Impression struct {
	ID    int64  `json:"id" bson:"id"`
	Name  string `json:"name" bson:"name"`
	Price string `json:"price" bson:"price"`
	URL   string `json:"url" bson:"url"`
}

// Title is the "name - price" line used in menus.
func (i Impression) Title() string {
	return i.Name + " - " + i.Price
}

type FaqItem struct {
	Question string `json:"question" bson:"question"`
	URL      string `json:"url" bson:"url"`
}

type DeliveryPoint struct {
	Address      string `json:"address" bson:"address"`
	OpeningHours string `json:"opening_hours" bson:"opening_hours"`
}

// Settings holds the storefront texts of one language.
type Settings struct {
	Language       string        `json:"language" bson:"language"`
	PolicyURL      string        `json:"policy_url" bson:"policy_url"`
	PaymentDetails string        `json:"payment_details" bson:"payment_details"`
	DeliveryPoint  DeliveryPoint `json:"delivery_point" bson:"delivery_point"`
	Faq            []FaqItem     `json:"faq" bson:"faq"`
}
