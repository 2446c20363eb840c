package request

import "github.com/shopspring/decimal"

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
	Desc string `json:"desc" validate:"max=500"`
}

type CreateSubCategoryRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Category string `json:"category" validate:"required,uuid"`
}

// CreateProductRequest leaves prices optional: sellingPrice defaults to 0 and
// costPrice to sellingPrice.
type CreateProductRequest struct {
	Label        string           `json:"label" validate:"required,max=150"`
	Unit         string           `json:"unit" validate:"max=20"`
	Type         string           `json:"type" validate:"max=20"`
	SellingPrice *decimal.Decimal `json:"sellingPrice"`
	CostPrice    *decimal.Decimal `json:"costPrice"`
	SubCategory  string           `json:"subCategory" validate:"required,uuid"`
}

type ProductDetailsRequest struct {
	ProductIDs []string `json:"productIds" validate:"required,min=1,max=500,dive,uuid"`
}

type CreateCustomerRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Address string `json:"address" validate:"max=500"`
	Number  string `json:"number" validate:"required,max=20"`
}
