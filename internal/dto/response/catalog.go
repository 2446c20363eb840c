package response

import (
	"time"

	"billing-habit/internal/data/entity"

	"github.com/shopspring/decimal"
)

type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Desc      string    `json:"desc"`
	CreatedAt time.Time `json:"createdAt"`
}

type SubCategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
}

type ProductResponse struct {
	ID           string          `json:"id"`
	Label        string          `json:"label"`
	Unit         string          `json:"unit"`
	Type         string          `json:"type"`
	SellingPrice decimal.Decimal `json:"sellingPrice"`
	CostPrice    decimal.Decimal `json:"costPrice"`
	SubCategory  string          `json:"subCategory"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// ProductDetail is the slim shape used to render a draft list.
type ProductDetail struct {
	ID           string          `json:"id"`
	Label        string          `json:"label"`
	SellingPrice decimal.Decimal `json:"sellingPrice"`
}

type CustomerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Number    string    `json:"number"`
	CreatedAt time.Time `json:"createdAt"`
}

func CategoryToResponse(c *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		Desc:      c.Description,
		CreatedAt: c.CreatedAt,
	}
}

func SubCategoryToResponse(sc *entity.SubCategory) SubCategoryResponse {
	return SubCategoryResponse{
		ID:        sc.ID.String(),
		Name:      sc.Name,
		Category:  sc.CategoryID.String(),
		CreatedAt: sc.CreatedAt,
	}
}

func ProductToResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID.String(),
		Label:        p.Label,
		Unit:         p.Unit,
		Type:         p.InputType,
		SellingPrice: p.SellingPrice,
		CostPrice:    p.CostPrice,
		SubCategory:  p.SubCategoryID.String(),
		CreatedAt:    p.CreatedAt,
	}
}

func ProductToDetail(p *entity.Product) ProductDetail {
	return ProductDetail{
		ID:           p.ID.String(),
		Label:        p.Label,
		SellingPrice: p.SellingPrice,
	}
}

func CustomerToResponse(c *entity.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		Address:   c.Address,
		Number:    c.Number,
		CreatedAt: c.CreatedAt,
	}
}
