package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"billing-habit/internal/data/entity"
	"billing-habit/internal/data/repository"
	"billing-habit/internal/dto/request"
	"billing-habit/internal/dto/response"
	"billing-habit/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CustomerService interface {
	Create(ctx context.Context, accountID uuid.UUID, req *request.CreateCustomerRequest) (*response.CustomerResponse, error)
	GetMine(ctx context.Context, accountID uuid.UUID) ([]response.CustomerResponse, error)
}

type customerService struct {
	customers repository.CustomerRepository
	log       *zap.Logger
}

func NewCustomerService(customers repository.CustomerRepository, log *zap.Logger) CustomerService {
	return &customerService{
		customers: customers,
		log:       log,
	}
}

func (s *customerService) Create(ctx context.Context, accountID uuid.UUID, req *request.CreateCustomerRequest) (*response.CustomerResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Number = strings.TrimSpace(req.Number)
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create customer validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	customer := &entity.Customer{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		AccountID: accountID,
		Name:      req.Name,
		Address:   strings.TrimSpace(req.Address),
		Number:    req.Number,
	}

	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}

	s.log.Info("Customer created", zap.String("customer_id", customer.ID.String()), zap.String("account_id", accountID.String()))

	resp := response.CustomerToResponse(customer)
	return &resp, nil
}

func (s *customerService) GetMine(ctx context.Context, accountID uuid.UUID) ([]response.CustomerResponse, error) {
	customers, err := s.customers.FindByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}

	resp := make([]response.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		resp = append(resp, response.CustomerToResponse(c))
	}
	return resp, nil
}
