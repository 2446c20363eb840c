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
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type ProductService interface {
	Create(ctx context.Context, accountID uuid.UUID, req *request.CreateProductRequest) (*response.ProductResponse, error)
	GetForSubCategory(ctx context.Context, accountID uuid.UUID, subCategoryID string) ([]response.ProductResponse, error)
	GetDetailsForList(ctx context.Context, accountID uuid.UUID, req *request.ProductDetailsRequest) ([]response.ProductDetail, error)
}

type productService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewProductService(repo *repository.Repository, log *zap.Logger) ProductService {
	return &productService{
		repo: repo,
		log:  log,
	}
}

func (s *productService) Create(ctx context.Context, accountID uuid.UUID, req *request.CreateProductRequest) (*response.ProductResponse, error) {
	// 1. Validate
	req.Label = strings.TrimSpace(req.Label)
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create product validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	sellingPrice := decimal.Zero
	if req.SellingPrice != nil {
		sellingPrice = *req.SellingPrice
	}
	costPrice := sellingPrice
	if req.CostPrice != nil {
		costPrice = *req.CostPrice
	}
	sellingPrice, costPrice = sellingPrice.Round(2), costPrice.Round(2)
	if sellingPrice.IsNegative() || costPrice.IsNegative() {
		return nil, fmt.Errorf("%w: prices must not be negative", utils.ErrValidation)
	}
	if sellingPrice.GreaterThan(entity.MaxPrice) || costPrice.GreaterThan(entity.MaxPrice) {
		return nil, fmt.Errorf("%w: prices must not exceed %s", utils.ErrValidation, entity.MaxPrice.StringFixed(2))
	}

	// 2. Parent must belong to the caller
	subCategoryID, err := parseID(req.SubCategory, "sub-category")
	if err != nil {
		return nil, err
	}
	subCategory, err := s.repo.SubCategory.FindByIDForAccount(ctx, subCategoryID, accountID)
	if err != nil {
		return nil, fmt.Errorf("find sub-category: %w", err)
	}
	if subCategory == nil {
		return nil, fmt.Errorf("%w: sub-category not found", utils.ErrNotFound)
	}

	// 3. Save with defaults
	product := &entity.Product{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		AccountID:     accountID,
		SubCategoryID: subCategory.ID,
		Label:         req.Label,
		Unit:          orDefault(req.Unit, entity.DefaultUnit),
		InputType:     orDefault(req.Type, entity.DefaultInputType),
		SellingPrice:  sellingPrice,
		CostPrice:     costPrice,
	}
	if err := s.repo.Product.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.log.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("sub_category_id", subCategory.ID.String()))

	resp := response.ProductToResponse(product)
	return &resp, nil
}

func (s *productService) GetForSubCategory(ctx context.Context, accountID uuid.UUID, subCategoryID string) ([]response.ProductResponse, error) {
	id, err := parseID(subCategoryID, "sub-category")
	if err != nil {
		return nil, err
	}

	products, err := s.repo.Product.FindBySubCategory(ctx, accountID, id)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	resp := make([]response.ProductResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, response.ProductToResponse(p))
	}
	return resp, nil
}

// GetDetailsForList resolves labels and current prices for a draft list.
// Ids the caller does not own are left out.
func (s *productService) GetDetailsForList(ctx context.Context, accountID uuid.UUID, req *request.ProductDetailsRequest) ([]response.ProductDetail, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Product details validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	ids := make([]uuid.UUID, 0, len(req.ProductIDs))
	seen := make(map[uuid.UUID]bool, len(req.ProductIDs))
	for _, raw := range req.ProductIDs {
		id, err := parseID(raw, "product")
		if err != nil {
			return nil, err
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	products, err := s.repo.Product.FindByIDsForAccount(ctx, accountID, ids)
	if err != nil {
		return nil, fmt.Errorf("product details: %w", err)
	}

	resp := make([]response.ProductDetail, 0, len(products))
	for _, p := range products {
		resp = append(resp, response.ProductToDetail(p))
	}
	return resp, nil
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}
