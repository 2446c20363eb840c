package usecase

import (
	"bytes"
	"context"
	"math/rand"
	"strings"
	"testing"

	"billing-habit/internal/dto/request"
	"billing-habit/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newQuoteFixture(t *testing.T, credit int) (*memStore, QuoteService, uuid.UUID) {
	t.Helper()
	store := newMemStore()
	account := store.addAccount(credit)
	return store, NewQuoteService(store.repository(), zaptest.NewLogger(t)), account.ID
}

func TestQuoteService_Create_DropsZeroQuantities(t *testing.T) {
	store, svc, accountID := newQuoteFixture(t, 5)
	customer := store.addCustomer(accountID, "Ravi")
	x := store.addProduct(accountID, "Cement bag", "100")
	y := store.addProduct(accountID, "Sand (ton)", "100")

	resp, err := svc.Create(context.Background(), accountID, &request.CreateQuoteRequest{
		CustomerID: customer.ID.String(),
		ItemsList:  map[string]int{x.ID.String(): 2, y.ID.String(): 0},
	})
	require.NoError(t, err)

	assert.Equal(t, 4, resp.NewCredit)
	assert.Equal(t, 4, store.credit(accountID))
	assert.True(t, resp.Quote.TotalAmount.Equal(decimal.NewFromInt(200)))
	require.Len(t, resp.Quote.Items, 1)
	assert.Equal(t, x.ID.String(), resp.Quote.Items[0].Product)
	assert.Equal(t, "Cement bag", resp.Quote.Items[0].ProductLabel)
	assert.Equal(t, 2, resp.Quote.Items[0].Quantity)
	assert.Equal(t, "Draft", string(resp.Quote.Status))
	assert.Equal(t, "12 Market Road", resp.Quote.Customer.Address)
	assert.Equal(t, 1, store.quoteCount())
}

func TestQuoteService_Create_TotalIsSumOfLines(t *testing.T) {
	store, svc, accountID := newQuoteFixture(t, 100)
	customer := store.addCustomer(accountID, "Ravi")
	prices := []string{"0", "0.5", "19.99", "250", "1234.56"}
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 20; round++ {
		items := map[string]int{}
		expected := decimal.Zero
		for _, price := range prices {
			p := store.addProduct(accountID, "item", price)
			qty := rng.Intn(7) - 2
			items[p.ID.String()] = qty
			if qty > 0 {
				expected = expected.Add(p.SellingPrice.Mul(decimal.NewFromInt(int64(qty))))
			}
		}
		// guarantee at least one billable line
		anchor := store.addProduct(accountID, "anchor", "1")
		items[anchor.ID.String()] = 1
		expected = expected.Add(decimal.NewFromInt(1))

		resp, err := svc.Create(context.Background(), accountID, &request.CreateQuoteRequest{
			CustomerID: customer.ID.String(),
			ItemsList:  items,
		})
		require.NoError(t, err)

		sum := decimal.Zero
		for _, item := range resp.Quote.Items {
			assert.Positive(t, item.Quantity)
			assert.True(t, item.Total.Equal(item.SellingPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))))
			sum = sum.Add(item.Total)
		}
		assert.True(t, resp.Quote.TotalAmount.Equal(sum), "round %d: total %s != lines %s", round, resp.Quote.TotalAmount, sum)
		assert.True(t, resp.Quote.TotalAmount.Equal(expected), "round %d: total %s != expected %s", round, resp.Quote.TotalAmount, expected)
	}
}

func TestQuoteService_Create_NoCredit(t *testing.T) {
	store, svc, accountID := newQuoteFixture(t, 0)
	customer := store.addCustomer(accountID, "Ravi")
	p := store.addProduct(accountID, "Cement bag", "100")

	_, err := svc.Create(context.Background(), accountID, &request.CreateQuoteRequest{
		CustomerID: customer.ID.String(),
		ItemsList:  map[string]int{p.ID.String(): 1},
	})

	require.ErrorIs(t, err, utils.ErrForbidden)
	assert.Equal(t, "You have no credits left.", utils.Message(err))
	assert.Equal(t, 0, store.quoteCount())
	assert.Equal(t, 0, store.credit(accountID))
}

func TestQuoteService_Create_ForeignCustomer(t *testing.T) {
	store, svc, accountID := newQuoteFixture(t, 3)
	other := store.addAccount(3)
	customer := store.addCustomer(other.ID, "Someone else's")
	p := store.addProduct(accountID, "Cement bag", "100")

	_, err := svc.Create(context.Background(), accountID, &request.CreateQuoteRequest{
		CustomerID: customer.ID.String(),
		ItemsList:  map[string]int{p.ID.String(): 1},
	})

	require.ErrorIs(t, err, utils.ErrNotFound)
	assert.Equal(t, 3, store.credit(accountID))
	assert.Equal(t, 0, store.quoteCount())
}

func TestQuoteService_Create_OnlyForeignProducts(t *testing.T) {
	store, svc, accountID := newQuoteFixture(t, 3)
	other := store.addAccount(3)
	customer := store.addCustomer(accountID, "Ravi")
	foreign := store.addProduct(other.ID, "Not mine", "10")

	_, err := svc.Create(context.Background(), accountID, &request.CreateQuoteRequest{
		CustomerID: customer.ID.String(),
		ItemsList:  map[string]int{foreign.ID.String(): 4},
	})

	require.ErrorIs(t, err, utils.ErrInvalidState)
	assert.Equal(t, 3, store.credit(accountID))
	assert.Equal(t, 0, store.quoteCount())
}

func TestQuoteService_Create_InvalidInput(t *testing.T) {
	store, svc, accountID := newQuoteFixture(t, 3)
	customer := store.addCustomer(accountID, "Ravi")
	p := store.addProduct(accountID, "Cement bag", "100")

	tests := []struct {
		name string
		req  request.CreateQuoteRequest
	}{
		{"empty items", request.CreateQuoteRequest{CustomerID: customer.ID.String(), ItemsList: map[string]int{}}},
		{"missing customer", request.CreateQuoteRequest{ItemsList: map[string]int{p.ID.String(): 1}}},
		{"bad product id", request.CreateQuoteRequest{CustomerID: customer.ID.String(), ItemsList: map[string]int{"nope": 1}}},
		{"quantity too large", request.CreateQuoteRequest{CustomerID: customer.ID.String(), ItemsList: map[string]int{p.ID.String(): MaxLineQuantity + 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), accountID, &tt.req)
			assert.ErrorIs(t, err, utils.ErrValidation)
		})
	}
	assert.Equal(t, 3, store.credit(accountID))
}

func TestQuoteService_Create_MergedQuantityCapped(t *testing.T) {
	store, svc, accountID := newQuoteFixture(t, 3)
	customer := store.addCustomer(accountID, "Ravi")
	p := store.addProduct(accountID, "Cement bag", "1")

	// both keys parse to the same product
	_, err := svc.Create(context.Background(), accountID, &request.CreateQuoteRequest{
		CustomerID: customer.ID.String(),
		ItemsList: map[string]int{
			p.ID.String():                  MaxLineQuantity/2 + 1,
			strings.ToUpper(p.ID.String()): MaxLineQuantity / 2,
		},
	})
	assert.ErrorIs(t, err, utils.ErrValidation)

	resp, err := svc.Create(context.Background(), accountID, &request.CreateQuoteRequest{
		CustomerID: customer.ID.String(),
		ItemsList: map[string]int{
			p.ID.String():                  MaxLineQuantity / 2,
			strings.ToUpper(p.ID.String()): MaxLineQuantity / 2,
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Quote.Items, 1)
	assert.Equal(t, MaxLineQuantity, resp.Quote.Items[0].Quantity)
}

func TestQuoteService_Create_AmountOutOfRange(t *testing.T) {
	store, svc, accountID := newQuoteFixture(t, 3)
	customer := store.addCustomer(accountID, "Ravi")
	top := store.addProduct(accountID, "Tower crane", "9999999999.99")
	large := store.addProduct(accountID, "Excavator", "999999999.99")
	other := store.addProduct(accountID, "Bulldozer", "999999999.99")

	tests := []struct {
		name  string
		items map[string]int
	}{
		{"line total", map[string]int{top.ID.String(): MaxLineQuantity}},
		{"quote total", map[string]int{large.ID.String(): 1000, other.ID.String(): 1000}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), accountID, &request.CreateQuoteRequest{
				CustomerID: customer.ID.String(),
				ItemsList:  tt.items,
			})
			assert.ErrorIs(t, err, utils.ErrValidation)
		})
	}
	assert.Equal(t, 0, store.quoteCount())
	assert.Equal(t, 3, store.credit(accountID))

	// a single line at the largest storable total is accepted
	resp, err := svc.Create(context.Background(), accountID, &request.CreateQuoteRequest{
		CustomerID: customer.ID.String(),
		ItemsList:  map[string]int{large.ID.String(): 1000},
	})
	require.NoError(t, err)
	assert.True(t, resp.Quote.TotalAmount.Equal(decimal.RequireFromString("999999999990")))
}

func TestQuoteService_SnapshotSurvivesPriceChange(t *testing.T) {
	store, svc, accountID := newQuoteFixture(t, 3)
	customer := store.addCustomer(accountID, "Ravi")
	p := store.addProduct(accountID, "Cement bag", "100")

	created, err := svc.Create(context.Background(), accountID, &request.CreateQuoteRequest{
		CustomerID: customer.ID.String(),
		ItemsList:  map[string]int{p.ID.String(): 3},
	})
	require.NoError(t, err)

	store.mu.Lock()
	store.products[p.ID].SellingPrice = decimal.NewFromInt(999)
	store.products[p.ID].Label = "Renamed"
	store.mu.Unlock()

	got, err := svc.Get(context.Background(), accountID, created.Quote.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Cement bag", got.Items[0].ProductLabel)
	assert.True(t, got.Items[0].SellingPrice.Equal(decimal.NewFromInt(100)))
	assert.True(t, got.TotalAmount.Equal(decimal.NewFromInt(300)))
}

func TestQuoteService_Get_NotOwned(t *testing.T) {
	store, svc, accountID := newQuoteFixture(t, 3)
	customer := store.addCustomer(accountID, "Ravi")
	p := store.addProduct(accountID, "Cement bag", "100")
	created, err := svc.Create(context.Background(), accountID, &request.CreateQuoteRequest{
		CustomerID: customer.ID.String(),
		ItemsList:  map[string]int{p.ID.String(): 1},
	})
	require.NoError(t, err)

	other := store.addAccount(1)
	_, err = svc.Get(context.Background(), other.ID, created.Quote.ID)
	assert.ErrorIs(t, err, utils.ErrNotFound)

	_, err = svc.Get(context.Background(), accountID, "not-a-uuid")
	assert.ErrorIs(t, err, utils.ErrValidation)
}

func TestQuoteService_List_Paginates(t *testing.T) {
	store, svc, accountID := newQuoteFixture(t, 10)
	customer := store.addCustomer(accountID, "Ravi")
	p := store.addProduct(accountID, "Cement bag", "100")
	for i := 0; i < 3; i++ {
		_, err := svc.Create(context.Background(), accountID, &request.CreateQuoteRequest{
			CustomerID: customer.ID.String(),
			ItemsList:  map[string]int{p.ID.String(): i + 1},
		})
		require.NoError(t, err)
	}

	page, err := svc.List(context.Background(), accountID, &request.PaginatedRequest{Page: 2, PerPage: 2})
	require.NoError(t, err)

	assert.Len(t, page.Data, 1)
	assert.Equal(t, int64(3), page.Pagination.Total)
	assert.Equal(t, 2, page.Pagination.TotalPages)
	assert.Empty(t, page.Data[0].Customer.Address)

	all, err := svc.List(context.Background(), accountID, &request.PaginatedRequest{})
	require.NoError(t, err)
	assert.Len(t, all.Data, 3)
	assert.Equal(t, request.DefaultPerPage, all.Pagination.PerPage)
}

func TestQuoteService_Documents(t *testing.T) {
	store, svc, accountID := newQuoteFixture(t, 3)
	customer := store.addCustomer(accountID, "Ravi")
	p := store.addProduct(accountID, "Cement bag", "100.50")
	created, err := svc.Create(context.Background(), accountID, &request.CreateQuoteRequest{
		CustomerID: customer.ID.String(),
		ItemsList:  map[string]int{p.ID.String(): 2},
	})
	require.NoError(t, err)

	pdf, err := svc.PDF(context.Background(), accountID, created.Quote.ID)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))

	xlsx, err := svc.Export(context.Background(), accountID)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(xlsx, []byte("PK")))

	_, err = svc.PDF(context.Background(), accountID, uuid.NewString())
	assert.ErrorIs(t, err, utils.ErrNotFound)
}
