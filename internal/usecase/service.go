package usecase

import (
	"fmt"

	"billing-habit/internal/data/repository"
	"billing-habit/pkg/auth"
	"billing-habit/pkg/mailer"
	"billing-habit/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth        AuthService
	Account     AccountService
	Category    CategoryService
	SubCategory SubCategoryService
	Product     ProductService
	Customer    CustomerService
	Quote       QuoteService
}

func NewService(
	repo *repository.Repository,
	tokens *auth.TokenManager,
	blacklist auth.TokenBlacklist,
	sender mailer.OTPSender,
	config *utils.Config,
	log *zap.Logger,
) *Service {
	return &Service{
		Auth:        NewAuthService(repo.Account, tokens, blacklist, sender, config, log),
		Account:     NewAccountService(repo.Account, config, log),
		Category:    NewCategoryService(repo.Category, log),
		SubCategory: NewSubCategoryService(repo, log),
		Product:     NewProductService(repo, log),
		Customer:    NewCustomerService(repo.Customer, log),
		Quote:       NewQuoteService(repo, log),
	}
}

func validationError(errs map[string]string) error {
	return fmt.Errorf("%w: %s", utils.ErrValidation, utils.FormatValidationErrors(errs))
}
