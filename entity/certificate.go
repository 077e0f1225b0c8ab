package entity

import "time"

// Activation is a request to redeem a gift certificate.
type Activation struct {
	ChatID        int64  `json:"chat_id" validate:"required"`
	Username      string `json:"username"`
	Language      string `json:"language" validate:"required,oneof=ru en"`
	CertificateID string `json:"certificate_id" validate:"required,max=64"`
}

// ActivationResult reports whether the certificate could be redeemed.
type ActivationResult struct {
	Availability   bool   `json:"availability"`
	ImpressionName string `json:"impression_name,omitempty"`
}

// Certificate is the stored form of a sold gift certificate.
type Certificate struct {
	Code         string    `bson:"code"`
	ImpressionID int64     `bson:"impression_id"`
	ExpiresAt    time.Time `bson:"expires_at"`
	Activated    bool      `bson:"activated"`
	ActivatedBy  int64     `bson:"activated_by,omitempty"`
	Username     string    `bson:"username,omitempty"`
	ActivatedAt  time.Time `bson:"activated_at,omitempty"`
}
