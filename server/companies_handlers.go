package server

import (
	// Local Packages
	errors "swipepoint/errors"
	companiessvc "swipepoint/services/companies"

	// External Packages
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type CompaniesHandler struct {
	Service  *companiessvc.Service
	Validate *validator.Validate
}

type companyBody struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	CallbackURL string `json:"callback_url" validate:"omitempty,url"`
}

func (h *CompaniesHandler) Create(c *fiber.Ctx) error {
	var body companyBody
	if err := c.BodyParser(&body); err != nil {
		return respondError(c, errors.InvalidBodyErr(err))
	}
	if err := h.Validate.Struct(body); err != nil {
		return respondError(c, errors.ValidationFailedErr(err))
	}

	company, err := h.Service.Create(c.Context(), companiessvc.CreateRequest{
		Name:        body.Name,
		Email:       body.Email,
		CallbackURL: body.CallbackURL,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(company)
}

func (h *CompaniesHandler) Get(c *fiber.Ctx) error {
	company, err := h.Service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(company)
}

func (h *CompaniesHandler) List(c *fiber.Ctx) error {
	companies, err := h.Service.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(companies)
}

func (h *CompaniesHandler) Update(c *fiber.Ctx) error {
	var body companyBody
	if err := c.BodyParser(&body); err != nil {
		return respondError(c, errors.InvalidBodyErr(err))
	}
	if err := h.Validate.Struct(body); err != nil {
		return respondError(c, errors.ValidationFailedErr(err))
	}

	company, err := h.Service.Update(c.Context(), c.Params("id"), companiessvc.CreateRequest{
		Name:        body.Name,
		Email:       body.Email,
		CallbackURL: body.CallbackURL,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(company)
}

func (h *CompaniesHandler) Delete(c *fiber.Ctx) error {
	if err := h.Service.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"status": "success", "message": "Company deleted"})
}
