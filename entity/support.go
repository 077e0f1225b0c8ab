package entity

import "time"

const (
	RequestActivationProblem   = "activation_problem"
	RequestQuestionForOperator = "question_for_operator"
)

// SupportApplication asks a human operator to contact the chat.
type SupportApplication struct {
	Number      string    `json:"number" bson:"number"`
	ChatID      int64     `json:"chat_id" bson:"chat_id" validate:"required"`
	Username    string    `json:"username" bson:"username"`
	Language    string    `json:"language" bson:"language" validate:"required,oneof=ru en"`
	RequestType string    `json:"request_type" bson:"request_type" validate:"required,oneof=activation_problem question_for_operator"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}
