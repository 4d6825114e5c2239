package server

import (
	// Go Internal Packages
	"context"
	"time"

	// Local Packages
	config "swipepoint/config"
	companiessvc "swipepoint/services/companies"
	geosvc "swipepoint/services/geo"
	paymentssvc "swipepoint/services/payments"

	// External Packages
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

type Server struct {
	app    *fiber.App
	logger *zap.Logger
	addr   string
}

// New wires the HTTP surface: payments, companies and the geo
// passthrough, all under /api.
func New(conf config.Server, logger *zap.Logger, payments *paymentssvc.Service,
	companies *companiessvc.Service, geo *geosvc.Client) *Server {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})

	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(requestLogger(logger))

	validate := validator.New()
	paymentsHandler := &PaymentsHandler{Service: payments, Validate: validate}
	companiesHandler := &CompaniesHandler{Service: companies, Validate: validate}
	geoHandler := &GeoHandler{Client: geo}

	api := app.Group("/api")

	api.Post("/payments", paymentsHandler.Charge)
	api.Get("/payments", paymentsHandler.List)
	api.Get("/payments/:reference", paymentsHandler.Get)
	api.Post("/payments/:reference/otp", paymentsHandler.VerifyOTP)
	api.Delete("/payments/:id", paymentsHandler.Delete)

	api.Get("/companies", companiesHandler.List)
	api.Post("/companies", companiesHandler.Create)
	api.Get("/companies/:id", companiesHandler.Get)
	api.Put("/companies/:id", companiesHandler.Update)
	api.Delete("/companies/:id", companiesHandler.Delete)

	api.Get("/geo/countries", geoHandler.Countries)
	api.Post("/geo/states", geoHandler.States)
	api.Post("/geo/cities", geoHandler.Cities)

	return &Server{app: app, logger: logger, addr: conf.Addr}
}

func (s *Server) Start() error {
	s.logger.Info("http server listening", zap.String("addr", s.addr))
	return s.app.Listen(s.addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

// App exposes the fiber app for handler tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func requestLogger(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		logger.Info("request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)))
		return err
	}
}
