package email

import (
	// Go Internal Packages
	"context"
	"time"

	// Local Packages
	models "swipepoint/models"
	redisrepo "swipepoint/repositories/redis"

	// External Packages
	"go.uber.org/zap"
)

type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

type DeadLetterStore interface {
	Store(ctx context.Context, letter redisrepo.DeadLetter) error
}

// ReceiptDispatcher sends payment receipts fire-and-forget. A failed
// send is logged and dead-lettered; it never fails the payment.
type ReceiptDispatcher struct {
	Sender     Sender
	DeadLetter DeadLetterStore
	Logger     *zap.Logger
	Timeout    time.Duration
}

func NewReceiptDispatcher(sender Sender, deadLetter DeadLetterStore, logger *zap.Logger) *ReceiptDispatcher {
	return &ReceiptDispatcher{
		Sender:     sender,
		DeadLetter: deadLetter,
		Logger:     logger,
		Timeout:    15 * time.Second,
	}
}

// Dispatch queues the receipt for delivery and returns immediately.
// Payments without a payer email are skipped.
func (d *ReceiptDispatcher) Dispatch(payment models.Payment) {
	if payment.Email == "" {
		return
	}
	go d.deliver(payment)
}

func (d *ReceiptDispatcher) deliver(payment models.Payment) {
	ctx, cancel := context.WithTimeout(context.Background(), d.Timeout)
	defer cancel()

	subject := ReceiptSubject
	body := ReceiptBody(payment)

	err := d.Sender.Send(ctx, payment.Email, subject, body)
	if err == nil {
		d.Logger.Info("receipt email sent",
			zap.String("reference", payment.Reference), zap.String("to", payment.Email))
		return
	}

	d.Logger.Error("failed to send receipt email",
		zap.String("reference", payment.Reference), zap.Error(err))

	letter := redisrepo.DeadLetter{
		Reference: payment.Reference,
		To:        payment.Email,
		Subject:   subject,
		Body:      body,
		Reason:    err.Error(),
		FailedAt:  time.Now().UTC(),
	}
	_ = d.DeadLetter.Store(ctx, letter)
}
