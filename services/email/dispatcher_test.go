package email

import (
	// Go Internal Packages
	"context"
	stderrors "errors"
	"testing"

	// Local Packages
	models "swipepoint/models"
	redisrepo "swipepoint/repositories/redis"

	// External Packages
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubSender struct {
	err   error
	calls int
}

func (s *stubSender) Send(_ context.Context, _, _, _ string) error {
	s.calls++
	return s.err
}

type stubDLQ struct {
	letters []redisrepo.DeadLetter
}

func (s *stubDLQ) Store(_ context.Context, letter redisrepo.DeadLetter) error {
	s.letters = append(s.letters, letter)
	return nil
}

func TestDeliverSuccessSkipsDeadLetter(t *testing.T) {
	sender := &stubSender{}
	dlq := &stubDLQ{}
	d := NewReceiptDispatcher(sender, dlq, zap.NewNop())

	d.deliver(models.Payment{Reference: "TXN-1", Email: "jane@payer.test"})

	assert.Equal(t, 1, sender.calls)
	assert.Empty(t, dlq.letters)
}

func TestDeliverFailureDeadLetters(t *testing.T) {
	sender := &stubSender{err: stderrors.New("mailtrap down")}
	dlq := &stubDLQ{}
	d := NewReceiptDispatcher(sender, dlq, zap.NewNop())

	d.deliver(models.Payment{Reference: "TXN-2", Email: "jane@payer.test", Amount: 2000})

	require.Len(t, dlq.letters, 1)
	letter := dlq.letters[0]
	assert.Equal(t, "TXN-2", letter.Reference)
	assert.Equal(t, "jane@payer.test", letter.To)
	assert.Equal(t, "mailtrap down", letter.Reason)
}

func TestDispatchSkipsMissingEmail(t *testing.T) {
	sender := &stubSender{}
	d := NewReceiptDispatcher(sender, &stubDLQ{}, zap.NewNop())

	d.Dispatch(models.Payment{Reference: "TXN-3"})

	assert.Zero(t, sender.calls)
}
