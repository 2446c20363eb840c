package usecase

import (
	"context"
	"errors"
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

type CategoryService interface {
	Create(ctx context.Context, accountID uuid.UUID, req *request.CreateCategoryRequest) (*response.CategoryResponse, error)
	GetAll(ctx context.Context, accountID uuid.UUID) ([]response.CategoryResponse, error)
	GetByID(ctx context.Context, accountID uuid.UUID, id string) (*response.CategoryResponse, error)
}

type categoryService struct {
	categories repository.CategoryRepository
	log        *zap.Logger
}

func NewCategoryService(categories repository.CategoryRepository, log *zap.Logger) CategoryService {
	return &categoryService{
		categories: categories,
		log:        log,
	}
}

func (s *categoryService) Create(ctx context.Context, accountID uuid.UUID, req *request.CreateCategoryRequest) (*response.CategoryResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create category validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	category := &entity.Category{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		AccountID:   accountID,
		Name:        req.Name,
		Description: strings.TrimSpace(req.Desc),
	}

	if err := s.categories.Create(ctx, category); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: category %q already exists", utils.ErrConflict, req.Name)
		}
		return nil, fmt.Errorf("create category: %w", err)
	}

	s.log.Info("Category created", zap.String("category_id", category.ID.String()), zap.String("account_id", accountID.String()))

	resp := response.CategoryToResponse(category)
	return &resp, nil
}

func (s *categoryService) GetAll(ctx context.Context, accountID uuid.UUID) ([]response.CategoryResponse, error) {
	categories, err := s.categories.FindByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	resp := make([]response.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		resp = append(resp, response.CategoryToResponse(c))
	}
	return resp, nil
}

func (s *categoryService) GetByID(ctx context.Context, accountID uuid.UUID, id string) (*response.CategoryResponse, error) {
	categoryID, err := parseID(id, "category")
	if err != nil {
		return nil, err
	}

	category, err := s.categories.FindByIDForAccount(ctx, categoryID, accountID)
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	if category == nil {
		return nil, fmt.Errorf("%w: category not found", utils.ErrNotFound)
	}

	resp := response.CategoryToResponse(category)
	return &resp, nil
}

// parseID turns a path or body id into a uuid, reporting a validation error otherwise.
func parseID(raw, what string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid %s id", utils.ErrValidation, what)
	}
	return id, nil
}
