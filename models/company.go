package models

import (
	// Go Internal Packages
	"time"

	// External Packages
	"github.com/google/uuid"
)

type Company struct {
	ID          string    `json:"id" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	Email       string    `json:"email" bson:"email"`
	MerchantID  string    `json:"merchant_id" bson:"merchant_id"`
	CallbackURL string    `json:"callback_url,omitempty" bson:"callback_url,omitempty"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updated_at"`
}

// NewMerchantID mints the opaque token a merchant presents on charge calls.
// Generated server-side at company creation, never supplied by the caller.
func NewMerchantID() string {
	return "MID_" + uuid.NewString()
}
