package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"billing-habit/internal/data/entity"
	"billing-habit/internal/data/repository"
	"billing-habit/internal/dto/request"
	"billing-habit/internal/dto/response"
	"billing-habit/pkg/document"
	"billing-habit/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// MaxLineQuantity bounds the quantity of one product on a quote, after duplicate ids are merged.
const MaxLineQuantity = 1_000_000

type QuoteService interface {
	Create(ctx context.Context, accountID uuid.UUID, req *request.CreateQuoteRequest) (*response.CreateQuoteResponse, error)
	List(ctx context.Context, accountID uuid.UUID, page *request.PaginatedRequest) (*response.PaginatedResponse[response.QuoteResponse], error)
	Get(ctx context.Context, accountID uuid.UUID, id string) (*response.QuoteResponse, error)
	PDF(ctx context.Context, accountID uuid.UUID, id string) ([]byte, error)
	Export(ctx context.Context, accountID uuid.UUID) ([]byte, error)
}

type quoteService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewQuoteService(repo *repository.Repository, log *zap.Logger) QuoteService {
	return &quoteService{
		repo: repo,
		log:  log,
	}
}

// Create prices the draft from stored products, then debits one credit and stores
// the snapshot atomically. Zero or negative quantities and products the caller
// does not own are dropped.
func (s *quoteService) Create(ctx context.Context, accountID uuid.UUID, req *request.CreateQuoteRequest) (*response.CreateQuoteResponse, error) {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create quote validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: Customer and at least one item are required.", utils.ErrValidation)
	}

	customerID, err := parseID(req.CustomerID, "customer")
	if err != nil {
		return nil, err
	}

	// 2. Customer must belong to the caller
	customer, err := s.repo.Customer.FindByIDForAccount(ctx, customerID, accountID)
	if err != nil {
		return nil, fmt.Errorf("find customer: %w", err)
	}
	if customer == nil {
		return nil, fmt.Errorf("%w: customer not found", utils.ErrNotFound)
	}

	// 3. Resolve requested quantities
	quantities := make(map[uuid.UUID]int, len(req.ItemsList))
	ids := make([]uuid.UUID, 0, len(req.ItemsList))
	for raw, qty := range req.ItemsList {
		id, err := parseID(raw, "product")
		if err != nil {
			return nil, err
		}
		if qty <= 0 {
			continue
		}
		merged, seen := quantities[id]
		if qty > MaxLineQuantity-merged {
			return nil, fmt.Errorf("%w: quantity for %s exceeds %d", utils.ErrValidation, id, MaxLineQuantity)
		}
		quantities[id] = merged + qty
		if !seen {
			ids = append(ids, id)
		}
	}

	var products []*entity.Product
	if len(ids) > 0 {
		products, err = s.repo.Product.FindByIDsForAccount(ctx, accountID, ids)
		if err != nil {
			return nil, fmt.Errorf("find products: %w", err)
		}
	}

	// 4. Price with stored values
	items, total := priceItems(products, quantities)
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: No valid items to quote.", utils.ErrInvalidState)
	}
	if err := checkAmounts(items, total); err != nil {
		s.log.Warn("Quote rejected, amount out of range",
			zap.String("account_id", accountID.String()),
			zap.String("total", total.String()))
		return nil, err
	}

	quote := &entity.Quote{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		AccountID:   accountID,
		CustomerID:  customer.ID,
		TotalAmount: total,
		Status:      entity.QuoteStatusDraft,
		Items:       items,
		Customer:    customer,
	}

	// 5. Debit and persist together
	newCredit, err := s.repo.Quote.CreateAndDebit(ctx, quote)
	if err != nil {
		if errors.Is(err, repository.ErrInsufficientCredit) {
			s.log.Warn("Quote rejected, no credit", zap.String("account_id", accountID.String()))
			return nil, fmt.Errorf("%w: You have no credits left.", utils.ErrForbidden)
		}
		return nil, fmt.Errorf("create quote: %w", err)
	}

	s.log.Info("Quote created",
		zap.String("quote_id", quote.ID.String()),
		zap.String("account_id", accountID.String()),
		zap.String("total", total.String()),
		zap.Int("new_credit", newCredit))

	return &response.CreateQuoteResponse{
		Quote:     response.QuoteToResponse(quote, true),
		NewCredit: newCredit,
	}, nil
}

// priceItems builds the line snapshots in product order and sums them.
func priceItems(products []*entity.Product, quantities map[uuid.UUID]int) ([]entity.QuoteItem, decimal.Decimal) {
	items := make([]entity.QuoteItem, 0, len(products))
	total := decimal.Zero

	for _, p := range products {
		qty := quantities[p.ID]
		if qty <= 0 {
			continue
		}
		lineTotal := p.SellingPrice.Mul(decimal.NewFromInt(int64(qty)))
		items = append(items, entity.QuoteItem{
			Position:     len(items) + 1,
			ProductID:    p.ID,
			Label:        p.Label,
			SellingPrice: p.SellingPrice,
			Quantity:     qty,
			LineTotal:    lineTotal,
		})
		total = total.Add(lineTotal)
	}

	return items, total
}

// checkAmounts rejects line totals or a quote total the amount columns cannot store.
func checkAmounts(items []entity.QuoteItem, total decimal.Decimal) error {
	for _, item := range items {
		if item.LineTotal.GreaterThan(entity.MaxAmount) {
			return fmt.Errorf("%w: line total for %s exceeds %s", utils.ErrValidation, item.Label, entity.MaxAmount.StringFixed(2))
		}
	}
	if total.GreaterThan(entity.MaxAmount) {
		return fmt.Errorf("%w: quote total exceeds %s", utils.ErrValidation, entity.MaxAmount.StringFixed(2))
	}
	return nil
}

func (s *quoteService) List(ctx context.Context, accountID uuid.UUID, page *request.PaginatedRequest) (*response.PaginatedResponse[response.QuoteResponse], error) {
	if page.Page < 1 {
		page.Page = 1
	}
	page.PerPage = page.Limit()

	quotes, err := s.repo.Quote.FindByAccount(ctx, accountID, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}

	total, err := s.repo.Quote.CountByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("count quotes: %w", err)
	}

	data := make([]response.QuoteResponse, 0, len(quotes))
	for _, q := range quotes {
		data = append(data, response.QuoteToResponse(q, false))
	}

	return response.NewPaginatedResponse(data, page.Page, page.PerPage, total), nil
}

func (s *quoteService) Get(ctx context.Context, accountID uuid.UUID, id string) (*response.QuoteResponse, error) {
	quote, err := s.find(ctx, accountID, id)
	if err != nil {
		return nil, err
	}

	resp := response.QuoteToResponse(quote, true)
	return &resp, nil
}

func (s *quoteService) PDF(ctx context.Context, accountID uuid.UUID, id string) ([]byte, error) {
	quote, err := s.find(ctx, accountID, id)
	if err != nil {
		return nil, err
	}

	seller, err := s.seller(ctx, accountID)
	if err != nil {
		return nil, err
	}

	out, err := document.QuotePDF(toDocument(quote, seller))
	if err != nil {
		s.log.Error("Failed to render quote PDF", zap.Error(err), zap.String("quote_id", quote.ID.String()))
		return nil, err
	}
	return out, nil
}

// Export renders every quote of the account as a workbook.
func (s *quoteService) Export(ctx context.Context, accountID uuid.UUID) ([]byte, error) {
	quotes, err := s.repo.Quote.FindByAccount(ctx, accountID, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("list quotes for export: %w", err)
	}

	seller, err := s.seller(ctx, accountID)
	if err != nil {
		return nil, err
	}

	docs := make([]document.Quote, 0, len(quotes))
	for _, q := range quotes {
		docs = append(docs, toDocument(q, seller))
	}

	out, err := document.QuoteHistoryXLSX(docs)
	if err != nil {
		s.log.Error("Failed to render quote export", zap.Error(err), zap.String("account_id", accountID.String()))
		return nil, err
	}

	s.log.Info("Quotes exported", zap.String("account_id", accountID.String()), zap.Int("count", len(docs)))
	return out, nil
}

func (s *quoteService) find(ctx context.Context, accountID uuid.UUID, id string) (*entity.Quote, error) {
	quoteID, err := parseID(id, "quote")
	if err != nil {
		return nil, err
	}

	quote, err := s.repo.Quote.FindByIDForAccount(ctx, quoteID, accountID)
	if err != nil {
		return nil, fmt.Errorf("get quote: %w", err)
	}
	if quote == nil {
		return nil, fmt.Errorf("%w: quote not found", utils.ErrNotFound)
	}
	return quote, nil
}

func (s *quoteService) seller(ctx context.Context, accountID uuid.UUID) (*entity.Account, error) {
	account, err := s.repo.Account.FindByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}
	if account == nil {
		return nil, fmt.Errorf("%w: user not found", utils.ErrNotFound)
	}
	return account, nil
}

func toDocument(q *entity.Quote, seller *entity.Account) document.Quote {
	doc := document.Quote{
		ID:        q.ID.String(),
		CreatedAt: q.CreatedAt,
		Status:    string(q.Status),
		Seller:    document.Party{Name: seller.Name, Number: seller.Number, Address: seller.Address},
		Total:     q.TotalAmount,
		Lines:     make([]document.Line, 0, len(q.Items)),
	}
	if q.Customer != nil {
		doc.Customer = document.Party{Name: q.Customer.Name, Number: q.Customer.Number, Address: q.Customer.Address}
	}
	for _, item := range q.Items {
		doc.Lines = append(doc.Lines, document.Line{
			Label:    item.Label,
			Quantity: item.Quantity,
			Price:    item.SellingPrice,
			Total:    item.LineTotal,
		})
	}
	return doc
}
