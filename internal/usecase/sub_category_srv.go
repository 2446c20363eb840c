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

type SubCategoryService interface {
	Create(ctx context.Context, accountID uuid.UUID, req *request.CreateSubCategoryRequest) (*response.SubCategoryResponse, error)
	GetForCategory(ctx context.Context, accountID uuid.UUID, categoryID string) ([]response.SubCategoryResponse, error)
	GetByID(ctx context.Context, accountID uuid.UUID, id string) (*response.SubCategoryResponse, error)
}

type subCategoryService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewSubCategoryService(repo *repository.Repository, log *zap.Logger) SubCategoryService {
	return &subCategoryService{
		repo: repo,
		log:  log,
	}
}

func (s *subCategoryService) Create(ctx context.Context, accountID uuid.UUID, req *request.CreateSubCategoryRequest) (*response.SubCategoryResponse, error) {
	// 1. Validate
	req.Name = strings.TrimSpace(req.Name)
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create sub-category validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	// 2. Parent must belong to the caller
	categoryID, err := parseID(req.Category, "category")
	if err != nil {
		return nil, err
	}
	category, err := s.repo.Category.FindByIDForAccount(ctx, categoryID, accountID)
	if err != nil {
		return nil, fmt.Errorf("find category: %w", err)
	}
	if category == nil {
		return nil, fmt.Errorf("%w: category not found", utils.ErrNotFound)
	}

	// 3. Save
	subCategory := &entity.SubCategory{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		AccountID:  accountID,
		CategoryID: category.ID,
		Name:       req.Name,
	}
	if err := s.repo.SubCategory.Create(ctx, subCategory); err != nil {
		return nil, fmt.Errorf("create sub-category: %w", err)
	}

	s.log.Info("Sub-category created",
		zap.String("sub_category_id", subCategory.ID.String()),
		zap.String("category_id", category.ID.String()))

	resp := response.SubCategoryToResponse(subCategory)
	return &resp, nil
}

func (s *subCategoryService) GetForCategory(ctx context.Context, accountID uuid.UUID, categoryID string) ([]response.SubCategoryResponse, error) {
	id, err := parseID(categoryID, "category")
	if err != nil {
		return nil, err
	}

	subCategories, err := s.repo.SubCategory.FindByCategory(ctx, accountID, id)
	if err != nil {
		return nil, fmt.Errorf("list sub-categories: %w", err)
	}

	resp := make([]response.SubCategoryResponse, 0, len(subCategories))
	for _, sc := range subCategories {
		resp = append(resp, response.SubCategoryToResponse(sc))
	}
	return resp, nil
}

func (s *subCategoryService) GetByID(ctx context.Context, accountID uuid.UUID, id string) (*response.SubCategoryResponse, error) {
	subCategoryID, err := parseID(id, "sub-category")
	if err != nil {
		return nil, err
	}

	subCategory, err := s.repo.SubCategory.FindByIDForAccount(ctx, subCategoryID, accountID)
	if err != nil {
		return nil, fmt.Errorf("get sub-category: %w", err)
	}
	if subCategory == nil {
		return nil, fmt.Errorf("%w: sub-category not found", utils.ErrNotFound)
	}

	resp := response.SubCategoryToResponse(subCategory)
	return &resp, nil
}
