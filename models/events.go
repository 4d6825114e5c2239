package models

// PaymentEvent is published to Kafka whenever a payment is assigned a
// status, at creation and again at OTP finalization.
type PaymentEvent struct {
	Reference  string  `json:"reference"`
	OrderID    string  `json:"orderid"`
	MerchantID string  `json:"merchant_id"`
	Amount     float64 `json:"amount"`
	NetAmount  float64 `json:"net_amount"`
	Status     string  `json:"status"`
	Message    string  `json:"message"`
	Timestamp  string  `json:"timestamp"`
}
