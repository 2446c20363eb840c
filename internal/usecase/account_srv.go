package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"billing-habit/internal/data/repository"
	"billing-habit/internal/dto/request"
	"billing-habit/internal/dto/response"
	"billing-habit/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AccountService interface {
	Profile(ctx context.Context, accountID uuid.UUID) (*response.UserResponse, error)
	UpdateDetails(ctx context.Context, accountID uuid.UUID, req *request.UpdateDetailsRequest) (*response.UserResponse, error)
	UseCredit(ctx context.Context, accountID uuid.UUID) (int, error)
	SweepUnverified(ctx context.Context) (int64, error)
}

type accountService struct {
	accounts repository.AccountRepository
	config   *utils.Config
	log      *zap.Logger
}

func NewAccountService(accounts repository.AccountRepository, config *utils.Config, log *zap.Logger) AccountService {
	return &accountService{
		accounts: accounts,
		config:   config,
		log:      log,
	}
}

func (s *accountService) Profile(ctx context.Context, accountID uuid.UUID) (*response.UserResponse, error) {
	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if account == nil {
		return nil, fmt.Errorf("%w: user not found", utils.ErrNotFound)
	}

	resp := response.UserToResponse(account)
	return &resp, nil
}

func (s *accountService) UpdateDetails(ctx context.Context, accountID uuid.UUID, req *request.UpdateDetailsRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update details validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	pinHash, err := utils.HashPIN(req.PIN)
	if err != nil {
		s.log.Error("Failed to hash PIN", zap.Error(err))
		return nil, fmt.Errorf("hash pin: %w", err)
	}

	account, err := s.accounts.UpdateProfile(ctx, accountID, req.Name, req.Address, pinHash)
	if err != nil {
		return nil, fmt.Errorf("update details: %w", err)
	}
	if account == nil {
		return nil, fmt.Errorf("%w: user not found", utils.ErrNotFound)
	}

	s.log.Info("Profile completed", zap.String("account_id", accountID.String()))

	resp := response.UserToResponse(account)
	return &resp, nil
}

// UseCredit takes exactly one credit and returns the new balance.
func (s *accountService) UseCredit(ctx context.Context, accountID uuid.UUID) (int, error) {
	credit, err := s.accounts.UseCredit(ctx, accountID)
	switch {
	case errors.Is(err, repository.ErrInsufficientCredit):
		s.log.Warn("Credit exhausted", zap.String("account_id", accountID.String()))
		return 0, fmt.Errorf("%w: You have no credits left.", utils.ErrForbidden)
	case errors.Is(err, repository.ErrAccountNotFound):
		return 0, fmt.Errorf("%w: user not found", utils.ErrNotFound)
	case err != nil:
		return 0, fmt.Errorf("use credit: %w", err)
	}

	s.log.Info("Credit used", zap.String("account_id", accountID.String()), zap.Int("credit", credit))
	return credit, nil
}

// SweepUnverified deletes accounts that never verified within the configured window.
func (s *accountService) SweepUnverified(ctx context.Context) (int64, error) {
	cutoff := time.Now().Add(-s.config.Sweep.UnverifiedTTL())

	deleted, err := s.accounts.DeleteUnverifiedBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("sweep unverified accounts: %w", err)
	}

	s.log.Info("Unverified account sweep finished", zap.Int64("deleted", deleted), zap.Time("cutoff", cutoff))
	return deleted, nil
}
