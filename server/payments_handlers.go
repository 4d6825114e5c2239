package server

import (
	// Local Packages
	errors "swipepoint/errors"
	paymentssvc "swipepoint/services/payments"

	// External Packages
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// merchantHeader carries the merchant token on payment calls.
const merchantHeader = "Merchant-Id"

type PaymentsHandler struct {
	Service  *paymentssvc.Service
	Validate *validator.Validate
}

type chargeBody struct {
	CardNumber    string  `json:"cardNumber" validate:"required,numeric"`
	CardCVV       string  `json:"cardCVV" validate:"required,len=3,numeric"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	FeePercentage float64 `json:"feePercentage" validate:"gte=0"`
	Firstname     string  `json:"firstname"`
	Lastname      string  `json:"lastname"`
	Email         string  `json:"email" validate:"omitempty,email"`
	Phone         string  `json:"phone"`
	CallbackURL   string  `json:"callback_url" validate:"omitempty,url"`
}

type transactionPayload struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type chargePayload struct {
	Reference     string             `json:"reference"`
	OrderID       string             `json:"orderid"`
	Amount        float64            `json:"amount"`
	Fee           float64            `json:"fee"`
	FeePercentage float64            `json:"feePercentage"`
	NetAmount     float64            `json:"netAmount"`
	Transaction   transactionPayload `json:"transaction"`
}

// Charge submits a payment attempt. The HTTP status is 200 for every
// validation outcome; only data.transaction carries the result.
func (h *PaymentsHandler) Charge(c *fiber.Ctx) error {
	var body chargeBody
	if err := c.BodyParser(&body); err != nil {
		return respondError(c, errors.InvalidBodyErr(err))
	}
	if err := h.Validate.Struct(body); err != nil {
		return respondError(c, errors.ValidationFailedErr(err))
	}

	result, err := h.Service.Charge(c.Context(), paymentssvc.ChargeRequest{
		MerchantToken: c.Get(merchantHeader),
		CardNumber:    body.CardNumber,
		CardCVV:       body.CardCVV,
		Amount:        body.Amount,
		FeePercentage: body.FeePercentage,
		Firstname:     body.Firstname,
		Lastname:      body.Lastname,
		Email:         body.Email,
		Phone:         body.Phone,
		CallbackURL:   body.CallbackURL,
	})
	if err != nil {
		return respondError(c, err)
	}

	return respondSuccess(c, chargePayload{
		Reference:     result.Reference,
		OrderID:       result.OrderID,
		Amount:        result.Amount,
		Fee:           result.Fee,
		FeePercentage: result.FeePercentage,
		NetAmount:     result.NetAmount,
		Transaction: transactionPayload{
			Status:  result.Transaction.Status,
			Message: result.Transaction.Message,
		},
	})
}

type otpBody struct {
	OTP string `json:"otp" validate:"required,len=6,numeric"`
}

func (h *PaymentsHandler) VerifyOTP(c *fiber.Ctx) error {
	var body otpBody
	if err := c.BodyParser(&body); err != nil {
		return respondError(c, errors.InvalidBodyErr(err))
	}
	if err := h.Validate.Struct(body); err != nil {
		return respondError(c, errors.ValidationFailedErr(err))
	}

	result, err := h.Service.VerifyOTP(c.Context(), c.Params("reference"), body.OTP)
	if err != nil {
		return respondError(c, err)
	}

	payload := fiber.Map{"status": result.Status, "message": result.Message}
	if result.RedirectURL != "" {
		payload["redirectUrl"] = result.RedirectURL
	}
	return c.JSON(payload)
}

func (h *PaymentsHandler) Get(c *fiber.Ctx) error {
	payment, err := h.Service.Get(c.Context(), c.Params("reference"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(payment)
}

func (h *PaymentsHandler) List(c *fiber.Ctx) error {
	token := c.Get(merchantHeader)
	if token == "" {
		return respondError(c, errors.EmptyParamErr(merchantHeader))
	}

	payments, err := h.Service.List(c.Context(), token)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(payments)
}

func (h *PaymentsHandler) Delete(c *fiber.Ctx) error {
	token := c.Get(merchantHeader)
	if token == "" {
		return respondError(c, errors.EmptyParamErr(merchantHeader))
	}

	if err := h.Service.Delete(c.Context(), c.Params("id"), token); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"status": "success", "message": "Payment deleted"})
}
