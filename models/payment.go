package models

import (
	// Go Internal Packages
	"fmt"
	"math"
	"strings"
	"time"

	// External Packages
	"github.com/google/uuid"
)

// Payment statuses. The only legal transition is pending -> approved|failed;
// every other status is terminal.
const (
	StatusFailed   = "failed"
	StatusSuccess  = "success"
	StatusPending  = "pending"
	StatusApproved = "approved"
)

type Payment struct {
	ID            string    `json:"id" bson:"_id"`
	Reference     string    `json:"reference" bson:"reference"`
	OrderID       string    `json:"orderid" bson:"orderid"`
	CompanyID     string    `json:"company_id,omitempty" bson:"company_id,omitempty"`
	MerchantID    string    `json:"merchant_id" bson:"merchant_id"`
	Firstname     string    `json:"firstname" bson:"firstname"`
	Lastname      string    `json:"lastname" bson:"lastname"`
	Email         string    `json:"email" bson:"email"`
	Phone         string    `json:"phone" bson:"phone"`
	Amount        float64   `json:"amount" bson:"amount"`
	Fee           float64   `json:"fee" bson:"fee"`
	FeePercentage float64   `json:"feePercentage" bson:"fee_percentage"`
	NetAmount     float64   `json:"netAmount" bson:"net_amount"`
	CardNumber    string    `json:"cardNumber" bson:"card_number"`
	Status        string    `json:"status" bson:"status"`
	CallbackURL   string    `json:"callback_url,omitempty" bson:"callback_url,omitempty"`
	CreatedAt     time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" bson:"updated_at"`
}

// Terminal reports whether the payment can no longer change state.
func (p *Payment) Terminal() bool {
	return p.Status != StatusPending
}

// NewReference mints the external payment identifier. It is assigned
// exactly once, at creation, before any validation outcome is known.
func NewReference() string {
	return "TXN-" + uuid.NewString()
}

// NewOrderID mints the secondary order identifier.
func NewOrderID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// MaskCardNumber redacts everything but the last four digits.
// The unmasked number is never persisted.
func MaskCardNumber(num string) string {
	if len(num) < 4 {
		return "-"
	}
	return "************" + num[len(num)-4:]
}

// CalculateFee computes the gateway fee rounded to two decimals.
func CalculateFee(amount, feePercentage float64) float64 {
	return math.Round(amount*feePercentage) / 100
}

// TransactionOutcome is the embedded result reported to the caller.
// The transport layer always answers 200; this carries the real outcome.
type TransactionOutcome struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (o TransactionOutcome) String() string {
	return fmt.Sprintf("%s (%s)", o.Status, o.Message)
}
