package payments

import (
	// Go Internal Packages
	"context"
	"strings"
	"sync"
	"testing"

	// Local Packages
	config "swipepoint/config"
	errors "swipepoint/errors"
	models "swipepoint/models"

	// External Packages
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePaymentsRepo struct {
	mu    sync.Mutex
	byRef map[string]models.Payment
}

func newFakePaymentsRepo() *fakePaymentsRepo {
	return &fakePaymentsRepo{byRef: make(map[string]models.Payment)}
}

func (r *fakePaymentsRepo) Insert(_ context.Context, payment models.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byRef[payment.Reference]; ok {
		return errors.InternalErr("insert payment", nil)
	}
	r.byRef[payment.Reference] = payment
	return nil
}

func (r *fakePaymentsRepo) GetByReference(_ context.Context, reference string) (models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	payment, ok := r.byRef[reference]
	if !ok {
		return models.Payment{}, errors.NotFoundErr("payment", reference)
	}
	return payment, nil
}

func (r *fakePaymentsRepo) FinalizeIfPending(_ context.Context, reference, status string) (models.Payment, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	payment, ok := r.byRef[reference]
	if !ok || payment.Status != models.StatusPending {
		return models.Payment{}, false, nil
	}
	payment.Status = status
	r.byRef[reference] = payment
	return payment, true, nil
}

func (r *fakePaymentsRepo) ListByMerchant(_ context.Context, merchantID string) ([]models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	payments := []models.Payment{}
	for _, p := range r.byRef {
		if p.MerchantID == merchantID {
			payments = append(payments, p)
		}
	}
	return payments, nil
}

func (r *fakePaymentsRepo) DeleteByID(_ context.Context, id, merchantID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for ref, p := range r.byRef {
		if p.ID == id && p.MerchantID == merchantID {
			delete(r.byRef, ref)
			return nil
		}
	}
	return errors.NotFoundErr("payment", id)
}

type fakeCompaniesRepo struct {
	byToken map[string]models.Company
}

func (r *fakeCompaniesRepo) GetByMerchantID(_ context.Context, merchantID string) (models.Company, error) {
	company, ok := r.byToken[merchantID]
	if !ok {
		return models.Company{}, errors.NotFoundErr("company", merchantID)
	}
	return company, nil
}

type fakeDispatcher struct {
	mu   sync.Mutex
	sent []models.Payment
}

func (d *fakeDispatcher) Dispatch(payment models.Payment) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sent = append(d.sent, payment)
}

func (d *fakeDispatcher) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.sent)
}

type fakePublisher struct {
	mu     sync.Mutex
	events []models.PaymentEvent
}

func (p *fakePublisher) Publish(_ context.Context, event models.PaymentEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *fakePublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

const testMerchantToken = "MID_3e6ddfa6-ae52-4a01-bb7c-03765098016d"

func testGatewayConfig() config.Gateway {
	return config.Gateway{
		AllowedCards:         []string{"5356222233334444", "1122334411223344", "5555111122223333"},
		CVV2D:                "468",
		CVV3D:                "579",
		OTP:                  "666666",
		DefaultFeePercentage: 10,
	}
}

type testEnv struct {
	service   *Service
	payments  *fakePaymentsRepo
	companies *fakeCompaniesRepo
	receipts  *fakeDispatcher
	events    *fakePublisher
}

func newTestEnv() *testEnv {
	payments := newFakePaymentsRepo()
	companies := &fakeCompaniesRepo{byToken: map[string]models.Company{
		testMerchantToken: {
			ID:          "company-1",
			Name:        "Acme",
			Email:       "billing@acme.test",
			MerchantID:  testMerchantToken,
			CallbackURL: "https://shop.acme.test/checkout",
		},
	}}
	receipts := &fakeDispatcher{}
	events := &fakePublisher{}
	service := NewService(zap.NewNop(), testGatewayConfig(), payments, companies, receipts, events)
	return &testEnv{service: service, payments: payments, companies: companies, receipts: receipts, events: events}
}

func validCharge() ChargeRequest {
	return ChargeRequest{
		MerchantToken: testMerchantToken,
		CardNumber:    "5356222233334444",
		CardCVV:       "468",
		Amount:        2000,
		Firstname:     "Jane",
		Lastname:      "Doe",
		Email:         "jane@payer.test",
	}
}

func TestChargeInvalidMerchant(t *testing.T) {
	env := newTestEnv()

	req := validCharge()
	req.MerchantToken = "MID_unknown"
	result, err := env.service.Charge(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, models.StatusFailed, result.Transaction.Status)
	assert.Equal(t, "Invalid Merchant", result.Transaction.Message)
	assert.NotEmpty(t, result.Reference)

	// Rejected attempts are recorded too, with the card masked.
	stored, err := env.payments.GetByReference(context.Background(), result.Reference)
	require.NoError(t, err)
	assert.Equal(t, models.StatusFailed, stored.Status)
	assert.Equal(t, "************4444", stored.CardNumber)
	assert.Zero(t, env.receipts.count())
}

func TestChargeInvalidCVV(t *testing.T) {
	env := newTestEnv()

	for _, card := range []string{"5356222233334444", "9999999999999999"} {
		req := validCharge()
		req.CardNumber = card
		req.CardCVV = "000"
		result, err := env.service.Charge(context.Background(), req)
		require.NoError(t, err)

		assert.Equal(t, models.StatusFailed, result.Transaction.Status)
		assert.Equal(t, "Invalid CVV", result.Transaction.Message)
	}
}

func TestChargeInvalidCard(t *testing.T) {
	env := newTestEnv()

	for _, cvv := range []string{"468", "579"} {
		req := validCharge()
		req.CardNumber = "4111111111111111"
		req.CardCVV = cvv
		result, err := env.service.Charge(context.Background(), req)
		require.NoError(t, err)

		assert.Equal(t, models.StatusFailed, result.Transaction.Status)
		assert.Equal(t, "Invalid Card", result.Transaction.Message)
	}
}

func TestChargeTwoDSuccess(t *testing.T) {
	env := newTestEnv()

	result, err := env.service.Charge(context.Background(), validCharge())
	require.NoError(t, err)

	assert.Equal(t, models.StatusSuccess, result.Transaction.Status)
	assert.Equal(t, "Transaction Approved", result.Transaction.Message)
	assert.Equal(t, 200.0, result.Fee)
	assert.Equal(t, 1800.0, result.NetAmount)
	assert.True(t, strings.HasPrefix(result.Reference, "TXN-"))

	stored, err := env.payments.GetByReference(context.Background(), result.Reference)
	require.NoError(t, err)
	assert.Equal(t, "************4444", stored.CardNumber)
	assert.Equal(t, testMerchantToken, stored.MerchantID)

	assert.Equal(t, 1, env.receipts.count())
	assert.Equal(t, 1, env.events.count())
}

func TestChargeDefaultFeePercentage(t *testing.T) {
	env := newTestEnv()

	req := validCharge()
	req.Amount = 150
	req.FeePercentage = 0
	result, err := env.service.Charge(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 10.0, result.FeePercentage)
	assert.Equal(t, 15.0, result.Fee)
	assert.Equal(t, 135.0, result.NetAmount)
}

func TestChargeThreeDPending(t *testing.T) {
	env := newTestEnv()

	req := validCharge()
	req.CardCVV = "579"
	result, err := env.service.Charge(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, result.Transaction.Status)
	assert.Equal(t, "OTP required", result.Transaction.Message)
	assert.Zero(t, result.Fee)

	// No receipt until the payment is finalized.
	assert.Zero(t, env.receipts.count())
	assert.Equal(t, 1, env.events.count())
}

func pendingPayment(t *testing.T, env *testEnv) string {
	t.Helper()
	req := validCharge()
	req.CardCVV = "579"
	req.CallbackURL = "https://shop.acme.test/checkout/return"
	result, err := env.service.Charge(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, models.StatusPending, result.Transaction.Status)
	return result.Reference
}

func TestVerifyOTPApproves(t *testing.T) {
	env := newTestEnv()
	reference := pendingPayment(t, env)

	result, err := env.service.VerifyOTP(context.Background(), reference, "666666")
	require.NoError(t, err)

	assert.Equal(t, models.StatusApproved, result.Status)
	assert.False(t, result.AlreadyFinalized)
	assert.Contains(t, result.RedirectURL, "reference="+reference)
	assert.Contains(t, result.RedirectURL, "status=approved")
	assert.Contains(t, result.RedirectURL, "amount=2000")
	assert.Equal(t, 1, env.receipts.count())
}

func TestVerifyOTPWrongCode(t *testing.T) {
	env := newTestEnv()
	reference := pendingPayment(t, env)

	result, err := env.service.VerifyOTP(context.Background(), reference, "123456")
	require.NoError(t, err)

	assert.Equal(t, models.StatusFailed, result.Status)
	assert.Zero(t, env.receipts.count())
}

func TestVerifyOTPIdempotent(t *testing.T) {
	env := newTestEnv()
	reference := pendingPayment(t, env)

	first, err := env.service.VerifyOTP(context.Background(), reference, "666666")
	require.NoError(t, err)
	require.Equal(t, models.StatusApproved, first.Status)

	eventsAfterFirst := env.events.count()
	receiptsAfterFirst := env.receipts.count()

	// A replay finds nothing pending: same status back, no new side effects.
	second, err := env.service.VerifyOTP(context.Background(), reference, "666666")
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, second.Status)
	assert.True(t, second.AlreadyFinalized)
	assert.Equal(t, eventsAfterFirst, env.events.count())
	assert.Equal(t, receiptsAfterFirst, env.receipts.count())

	// Even a replay with a wrong code cannot flip an approved payment.
	third, err := env.service.VerifyOTP(context.Background(), reference, "000000")
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, third.Status)
	assert.True(t, third.AlreadyFinalized)
}

func TestVerifyOTPUnknownReference(t *testing.T) {
	env := newTestEnv()

	_, err := env.service.VerifyOTP(context.Background(), "TXN-missing", "666666")
	require.Error(t, err)
	assert.Equal(t, errors.NotFound, errors.KindOf(err))
}

func TestVerifyOTPCannotFinalizeSynchronousSuccess(t *testing.T) {
	env := newTestEnv()

	result, err := env.service.Charge(context.Background(), validCharge())
	require.NoError(t, err)
	require.Equal(t, models.StatusSuccess, result.Transaction.Status)

	otpResult, err := env.service.VerifyOTP(context.Background(), result.Reference, "666666")
	require.NoError(t, err)
	assert.Equal(t, models.StatusSuccess, otpResult.Status)
	assert.True(t, otpResult.AlreadyFinalized)
}

func TestRedirectURLRejectsForeignOrigin(t *testing.T) {
	env := newTestEnv()

	req := validCharge()
	req.CardCVV = "579"
	req.CallbackURL = "https://evil.example.com/phish"
	result, err := env.service.Charge(context.Background(), req)
	require.NoError(t, err)

	otpResult, err := env.service.VerifyOTP(context.Background(), result.Reference, "666666")
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, otpResult.Status)
	assert.Empty(t, otpResult.RedirectURL)
}

func TestRedirectURLEmptyWithoutCallback(t *testing.T) {
	env := newTestEnv()
	req := validCharge()
	req.CardCVV = "579"
	result, err := env.service.Charge(context.Background(), req)
	require.NoError(t, err)

	otpResult, err := env.service.VerifyOTP(context.Background(), result.Reference, "666666")
	require.NoError(t, err)
	assert.Empty(t, otpResult.RedirectURL)
}

func TestListScopedToMerchant(t *testing.T) {
	env := newTestEnv()

	_, err := env.service.Charge(context.Background(), validCharge())
	require.NoError(t, err)

	listed, err := env.service.List(context.Background(), testMerchantToken)
	require.NoError(t, err)
	assert.Len(t, listed, 1)

	_, err = env.service.List(context.Background(), "MID_unknown")
	require.Error(t, err)
	assert.Equal(t, errors.NotFound, errors.KindOf(err))
}

func TestDeleteScopedToMerchant(t *testing.T) {
	env := newTestEnv()

	result, err := env.service.Charge(context.Background(), validCharge())
	require.NoError(t, err)
	stored, err := env.payments.GetByReference(context.Background(), result.Reference)
	require.NoError(t, err)

	err = env.service.Delete(context.Background(), stored.ID, testMerchantToken)
	require.NoError(t, err)

	_, err = env.payments.GetByReference(context.Background(), result.Reference)
	assert.Equal(t, errors.NotFound, errors.KindOf(err))
}
