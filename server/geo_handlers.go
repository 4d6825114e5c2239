package server

import (
	// Local Packages
	errors "swipepoint/errors"
	geosvc "swipepoint/services/geo"

	// External Packages
	"github.com/gofiber/fiber/v2"
)

type GeoHandler struct {
	Client *geosvc.Client
}

func (h *GeoHandler) Countries(c *fiber.Ctx) error {
	countries, err := h.Client.Countries(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return respondSuccess(c, countries)
}

type statesBody struct {
	Country string `json:"country"`
}

func (h *GeoHandler) States(c *fiber.Ctx) error {
	var body statesBody
	if err := c.BodyParser(&body); err != nil {
		return respondError(c, errors.InvalidBodyErr(err))
	}
	if body.Country == "" {
		return respondError(c, errors.EmptyParamErr("country"))
	}

	states, err := h.Client.States(c.Context(), body.Country)
	if err != nil {
		return respondError(c, err)
	}
	return respondSuccess(c, states)
}

type citiesBody struct {
	Country string `json:"country"`
	State   string `json:"state"`
}

func (h *GeoHandler) Cities(c *fiber.Ctx) error {
	var body citiesBody
	if err := c.BodyParser(&body); err != nil {
		return respondError(c, errors.InvalidBodyErr(err))
	}
	if body.Country == "" {
		return respondError(c, errors.EmptyParamErr("country"))
	}

	cities, err := h.Client.Cities(c.Context(), body.Country, body.State)
	if err != nil {
		return respondError(c, err)
	}
	return respondSuccess(c, cities)
}
