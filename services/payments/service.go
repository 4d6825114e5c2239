package payments

import (
	// Go Internal Packages
	"context"
	"net/url"
	"strconv"
	"time"

	// Local Packages
	config "swipepoint/config"
	errors "swipepoint/errors"
	models "swipepoint/models"

	// External Packages
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PaymentsRepository interface {
	Insert(ctx context.Context, payment models.Payment) error
	GetByReference(ctx context.Context, reference string) (models.Payment, error)
	FinalizeIfPending(ctx context.Context, reference, status string) (models.Payment, bool, error)
	ListByMerchant(ctx context.Context, merchantID string) ([]models.Payment, error)
	DeleteByID(ctx context.Context, id, merchantID string) error
}

type CompaniesRepository interface {
	GetByMerchantID(ctx context.Context, merchantID string) (models.Company, error)
}

type ReceiptDispatcher interface {
	Dispatch(payment models.Payment)
}

type EventPublisher interface {
	Publish(ctx context.Context, event models.PaymentEvent)
}

type Service struct {
	logger    *zap.Logger
	conf      config.Gateway
	payments  PaymentsRepository
	companies CompaniesRepository
	receipts  ReceiptDispatcher
	events    EventPublisher
}

func NewService(logger *zap.Logger, conf config.Gateway, payments PaymentsRepository,
	companies CompaniesRepository, receipts ReceiptDispatcher, events EventPublisher) *Service {
	return &Service{
		logger:    logger,
		conf:      conf,
		payments:  payments,
		companies: companies,
		receipts:  receipts,
		events:    events,
	}
}

type ChargeRequest struct {
	MerchantToken string
	CardNumber    string
	CardCVV       string
	Amount        float64
	FeePercentage float64
	Firstname     string
	Lastname      string
	Email         string
	Phone         string
	CallbackURL   string
}

// ChargeResult is always reported inside a success envelope; the real
// outcome lives in Transaction.
type ChargeResult struct {
	Reference     string
	OrderID       string
	Amount        float64
	Fee           float64
	FeePercentage float64
	NetAmount     float64
	Transaction   models.TransactionOutcome
}

// Charge resolves the merchant, validates card and CVV against the
// configured allow-lists and persists exactly one record per attempt.
// The reference is minted before any validation runs, so rejected
// attempts are auditable too.
func (s *Service) Charge(ctx context.Context, req ChargeRequest) (ChargeResult, error) {
	if req.FeePercentage == 0 {
		req.FeePercentage = s.conf.DefaultFeePercentage
	}

	result := ChargeResult{
		Reference:     models.NewReference(),
		OrderID:       models.NewOrderID(),
		Amount:        req.Amount,
		FeePercentage: req.FeePercentage,
	}

	now := time.Now().UTC()
	payment := models.Payment{
		ID:            uuid.NewString(),
		Reference:     result.Reference,
		OrderID:       result.OrderID,
		Firstname:     req.Firstname,
		Lastname:      req.Lastname,
		Email:         req.Email,
		Phone:         req.Phone,
		Amount:        req.Amount,
		FeePercentage: req.FeePercentage,
		CardNumber:    models.MaskCardNumber(req.CardNumber),
		CallbackURL:   req.CallbackURL,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	company, err := s.companies.GetByMerchantID(ctx, req.MerchantToken)
	switch {
	case errors.Is(errors.NotFound, err):
		result.Transaction = models.TransactionOutcome{Status: models.StatusFailed, Message: "Invalid Merchant"}
	case err != nil:
		return ChargeResult{}, err
	default:
		payment.MerchantID = company.MerchantID
		payment.CompanyID = company.ID
		result.Transaction = s.resolve(req)
	}

	payment.Status = result.Transaction.Status
	if payment.Status == models.StatusSuccess {
		payment.Fee = models.CalculateFee(req.Amount, req.FeePercentage)
		payment.NetAmount = req.Amount - payment.Fee
		result.Fee = payment.Fee
		result.NetAmount = payment.NetAmount
	}

	if err := s.payments.Insert(ctx, payment); err != nil {
		return ChargeResult{}, err
	}

	s.logger.Info("payment recorded",
		zap.String("reference", payment.Reference),
		zap.String("status", payment.Status),
		zap.String("message", result.Transaction.Message))

	s.events.Publish(ctx, s.event(payment, result.Transaction.Message))
	if payment.Status == models.StatusSuccess {
		s.receipts.Dispatch(payment)
	}
	return result, nil
}

// resolve is the pure card/CVV decision: unknown CVV and unknown card
// both fail, the 3-D marker parks the payment on pending, the 2-D
// marker approves it synchronously.
func (s *Service) resolve(req ChargeRequest) models.TransactionOutcome {
	if req.CardCVV != s.conf.CVV2D && req.CardCVV != s.conf.CVV3D {
		return models.TransactionOutcome{Status: models.StatusFailed, Message: "Invalid CVV"}
	}
	if !contains(s.conf.AllowedCards, req.CardNumber) {
		return models.TransactionOutcome{Status: models.StatusFailed, Message: "Invalid Card"}
	}
	if req.CardCVV == s.conf.CVV3D {
		return models.TransactionOutcome{Status: models.StatusPending, Message: "OTP required"}
	}
	return models.TransactionOutcome{Status: models.StatusSuccess, Message: "Transaction Approved"}
}

type OTPResult struct {
	Status           string
	Message          string
	RedirectURL      string
	AlreadyFinalized bool
}

// VerifyOTP finalizes a pending payment. The status flip is a single
// conditional update keyed on the pending state, so a replayed call
// finds nothing to flip, changes nothing and fires no side effects.
func (s *Service) VerifyOTP(ctx context.Context, reference, otp string) (OTPResult, error) {
	finalStatus := models.StatusFailed
	message := "Invalid OTP"
	if otp == s.conf.OTP {
		finalStatus = models.StatusApproved
		message = "OTP Verified"
	}

	payment, won, err := s.payments.FinalizeIfPending(ctx, reference, finalStatus)
	if err != nil {
		return OTPResult{}, err
	}

	if !won {
		// Either the reference is unknown or the payment already left
		// pending. Report the current state without touching it.
		current, getErr := s.payments.GetByReference(ctx, reference)
		if getErr != nil {
			return OTPResult{}, getErr
		}
		return OTPResult{
			Status:           current.Status,
			Message:          "Payment already finalized",
			RedirectURL:      s.redirectURL(ctx, current),
			AlreadyFinalized: true,
		}, nil
	}

	s.logger.Info("payment finalized",
		zap.String("reference", payment.Reference),
		zap.String("status", payment.Status))

	s.events.Publish(ctx, s.event(payment, message))
	if payment.Status == models.StatusApproved {
		s.receipts.Dispatch(payment)
	}

	return OTPResult{
		Status:      payment.Status,
		Message:     message,
		RedirectURL: s.redirectURL(ctx, payment),
	}, nil
}

// redirectURL assembles the post-payment redirect from the callback
// URL captured at charge time. The URL is emitted only when its origin
// matches the owning company's registered callback origin; anything
// else is dropped to keep the endpoint from becoming an open redirect.
func (s *Service) redirectURL(ctx context.Context, payment models.Payment) string {
	if payment.CallbackURL == "" || payment.MerchantID == "" {
		return ""
	}

	company, err := s.companies.GetByMerchantID(ctx, payment.MerchantID)
	if err != nil {
		return ""
	}
	if !sameOrigin(payment.CallbackURL, company.CallbackURL) {
		return ""
	}

	target, err := url.Parse(payment.CallbackURL)
	if err != nil {
		return ""
	}
	query := target.Query()
	query.Set("reference", payment.Reference)
	query.Set("amount", formatAmount(payment.Amount))
	query.Set("status", payment.Status)
	target.RawQuery = query.Encode()
	return target.String()
}

func (s *Service) Get(ctx context.Context, reference string) (models.Payment, error) {
	return s.payments.GetByReference(ctx, reference)
}

func (s *Service) List(ctx context.Context, merchantToken string) ([]models.Payment, error) {
	company, err := s.companies.GetByMerchantID(ctx, merchantToken)
	if err != nil {
		return nil, err
	}
	return s.payments.ListByMerchant(ctx, company.MerchantID)
}

func (s *Service) Delete(ctx context.Context, id, merchantToken string) error {
	company, err := s.companies.GetByMerchantID(ctx, merchantToken)
	if err != nil {
		return err
	}
	return s.payments.DeleteByID(ctx, id, company.MerchantID)
}

func (s *Service) event(payment models.Payment, message string) models.PaymentEvent {
	return models.PaymentEvent{
		Reference:  payment.Reference,
		OrderID:    payment.OrderID,
		MerchantID: payment.MerchantID,
		Amount:     payment.Amount,
		NetAmount:  payment.NetAmount,
		Status:     payment.Status,
		Message:    message,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func sameOrigin(a, b string) bool {
	ua, errA := url.Parse(a)
	ub, errB := url.Parse(b)
	if errA != nil || errB != nil {
		return false
	}
	return ua.Scheme == ub.Scheme && ua.Host == ub.Host && ua.Host != ""
}
