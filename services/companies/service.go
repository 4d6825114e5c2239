package companies

import (
	// Go Internal Packages
	"context"
	"time"

	// Local Packages
	models "swipepoint/models"

	// External Packages
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CompaniesRepository interface {
	Insert(ctx context.Context, company models.Company) error
	GetByID(ctx context.Context, id string) (models.Company, error)
	List(ctx context.Context) ([]models.Company, error)
	Update(ctx context.Context, company models.Company) error
	Delete(ctx context.Context, id string) error
}

type Service struct {
	logger    *zap.Logger
	companies CompaniesRepository
}

func NewService(logger *zap.Logger, companies CompaniesRepository) *Service {
	return &Service{logger: logger, companies: companies}
}

type CreateRequest struct {
	Name        string
	Email       string
	CallbackURL string
}

// Create registers a company and mints its merchant token server-side.
func (s *Service) Create(ctx context.Context, req CreateRequest) (models.Company, error) {
	now := time.Now().UTC()
	company := models.Company{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Email:       req.Email,
		MerchantID:  models.NewMerchantID(),
		CallbackURL: req.CallbackURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.companies.Insert(ctx, company); err != nil {
		return models.Company{}, err
	}

	s.logger.Info("company created",
		zap.String("id", company.ID), zap.String("merchant_id", company.MerchantID))
	return company, nil
}

func (s *Service) Get(ctx context.Context, id string) (models.Company, error) {
	return s.companies.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]models.Company, error) {
	return s.companies.List(ctx)
}

// Update rewrites name, email and callback URL. The merchant token is
// never updated.
func (s *Service) Update(ctx context.Context, id string, req CreateRequest) (models.Company, error) {
	company, err := s.companies.GetByID(ctx, id)
	if err != nil {
		return models.Company{}, err
	}

	company.Name = req.Name
	company.Email = req.Email
	company.CallbackURL = req.CallbackURL
	if err := s.companies.Update(ctx, company); err != nil {
		return models.Company{}, err
	}
	return company, nil
}

// Delete removes the company. Its payments are left in place with a
// dangling merchant reference.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.companies.Delete(ctx, id)
}
