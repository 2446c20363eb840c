package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"billing-habit/internal/data/entity"
	"billing-habit/internal/data/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// memStore backs every fake repository so cross-table rules (ownership, credit)
// behave like the database.
type memStore struct {
	mu          sync.Mutex
	accounts    map[uuid.UUID]*entity.Account
	categories  map[uuid.UUID]*entity.Category
	subs        map[uuid.UUID]*entity.SubCategory
	products    map[uuid.UUID]*entity.Product
	customers   map[uuid.UUID]*entity.Customer
	quotes      map[uuid.UUID]*entity.Quote
	quoteWrites int
}

func newMemStore() *memStore {
	return &memStore{
		accounts:   map[uuid.UUID]*entity.Account{},
		categories: map[uuid.UUID]*entity.Category{},
		subs:       map[uuid.UUID]*entity.SubCategory{},
		products:   map[uuid.UUID]*entity.Product{},
		customers:  map[uuid.UUID]*entity.Customer{},
		quotes:     map[uuid.UUID]*entity.Quote{},
	}
}

func (s *memStore) repository() *repository.Repository {
	return &repository.Repository{
		Account:     &fakeAccounts{s},
		Category:    &fakeCategories{s},
		SubCategory: &fakeSubCategories{s},
		Product:     &fakeProducts{s},
		Customer:    &fakeCustomers{s},
		Quote:       &fakeQuotes{s},
	}
}

func (s *memStore) addAccount(credit int) *entity.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := &entity.Account{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Number:       "9876543210",
		Name:         "Sharma Traders",
		IsVerified:   true,
		Credit:       credit,
	}
	s.accounts[a.ID] = a
	return a
}

func (s *memStore) addCustomer(accountID uuid.UUID, name string) *entity.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := &entity.Customer{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		AccountID:  accountID,
		Name:       name,
		Address:    "12 Market Road",
		Number:     "9000000001",
	}
	s.customers[c.ID] = c
	return c
}

func (s *memStore) addProduct(accountID uuid.UUID, label string, price string) *entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := &entity.Product{
		BaseSimple:    entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		AccountID:     accountID,
		SubCategoryID: uuid.New(),
		Label:         label,
		Unit:          entity.DefaultUnit,
		InputType:     entity.DefaultInputType,
		SellingPrice:  decimal.RequireFromString(price),
		CostPrice:     decimal.RequireFromString(price),
	}
	s.products[p.ID] = p
	return p
}

func (s *memStore) credit(id uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accounts[id].Credit
}

func (s *memStore) quoteCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.quotes)
}

type fakeAccounts struct{ s *memStore }

func (f *fakeAccounts) UpsertOTP(_ context.Context, number, otp string, expiresAt time.Time, initialCredit int) (*entity.Account, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, a := range f.s.accounts {
		if a.Number == number {
			a.OTP = &otp
			a.OTPExpiresAt = &expiresAt
			cp := *a
			return &cp, nil
		}
	}
	a := &entity.Account{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Number:       number,
		OTP:          &otp,
		OTPExpiresAt: &expiresAt,
		Credit:       initialCredit,
	}
	f.s.accounts[a.ID] = a
	cp := *a
	return &cp, nil
}

func (f *fakeAccounts) FindByID(_ context.Context, id uuid.UUID) (*entity.Account, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	a, ok := f.s.accounts[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAccounts) FindByNumber(_ context.Context, number string) (*entity.Account, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, a := range f.s.accounts {
		if a.Number == number {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeAccounts) ConsumeOTP(_ context.Context, id uuid.UUID, otp string, at time.Time) (bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	a, ok := f.s.accounts[id]
	if !ok || !a.OTPMatches(otp, at) {
		return false, nil
	}
	a.OTP = nil
	a.OTPExpiresAt = nil
	a.IsVerified = true
	return true, nil
}

func (f *fakeAccounts) UpdateProfile(_ context.Context, id uuid.UUID, name, address, pinHash string) (*entity.Account, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	a, ok := f.s.accounts[id]
	if !ok {
		return nil, nil
	}
	a.Name, a.Address, a.PINHash = name, address, pinHash
	cp := *a
	return &cp, nil
}

func (f *fakeAccounts) UseCredit(_ context.Context, id uuid.UUID) (int, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	a, ok := f.s.accounts[id]
	if !ok {
		return 0, repository.ErrAccountNotFound
	}
	if a.Credit <= 0 {
		return 0, repository.ErrInsufficientCredit
	}
	a.Credit--
	return a.Credit, nil
}

func (f *fakeAccounts) DeleteUnverifiedBefore(_ context.Context, cutoff time.Time) (int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var n int64
	for id, a := range f.s.accounts {
		if !a.IsVerified && a.CreatedAt.Before(cutoff) {
			delete(f.s.accounts, id)
			n++
		}
	}
	return n, nil
}

type fakeCategories struct{ s *memStore }

func (f *fakeCategories) Create(_ context.Context, c *entity.Category) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, existing := range f.s.categories {
		if existing.AccountID == c.AccountID && existing.Name == c.Name {
			return repository.ErrDuplicate
		}
	}
	cp := *c
	f.s.categories[c.ID] = &cp
	return nil
}

func (f *fakeCategories) FindByAccount(_ context.Context, accountID uuid.UUID) ([]*entity.Category, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	out := []*entity.Category{}
	for _, c := range f.s.categories {
		if c.AccountID == accountID {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeCategories) FindByIDForAccount(_ context.Context, id, accountID uuid.UUID) (*entity.Category, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	c, ok := f.s.categories[id]
	if !ok || c.AccountID != accountID {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

type fakeSubCategories struct{ s *memStore }

func (f *fakeSubCategories) Create(_ context.Context, sc *entity.SubCategory) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	cp := *sc
	f.s.subs[sc.ID] = &cp
	return nil
}

func (f *fakeSubCategories) FindByCategory(_ context.Context, accountID, categoryID uuid.UUID) ([]*entity.SubCategory, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	out := []*entity.SubCategory{}
	for _, sc := range f.s.subs {
		if sc.AccountID == accountID && sc.CategoryID == categoryID {
			cp := *sc
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeSubCategories) FindByIDForAccount(_ context.Context, id, accountID uuid.UUID) (*entity.SubCategory, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	sc, ok := f.s.subs[id]
	if !ok || sc.AccountID != accountID {
		return nil, nil
	}
	cp := *sc
	return &cp, nil
}

type fakeProducts struct{ s *memStore }

func (f *fakeProducts) Create(_ context.Context, p *entity.Product) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	cp := *p
	f.s.products[p.ID] = &cp
	return nil
}

func (f *fakeProducts) FindBySubCategory(_ context.Context, accountID, subCategoryID uuid.UUID) ([]*entity.Product, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	out := []*entity.Product{}
	for _, p := range f.s.products {
		if p.AccountID == accountID && p.SubCategoryID == subCategoryID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeProducts) FindByIDsForAccount(_ context.Context, accountID uuid.UUID, ids []uuid.UUID) ([]*entity.Product, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	out := []*entity.Product{}
	for _, id := range ids {
		if p, ok := f.s.products[id]; ok && p.AccountID == accountID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeCustomers struct{ s *memStore }

func (f *fakeCustomers) Create(_ context.Context, c *entity.Customer) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	cp := *c
	f.s.customers[c.ID] = &cp
	return nil
}

func (f *fakeCustomers) FindByAccount(_ context.Context, accountID uuid.UUID) ([]*entity.Customer, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	out := []*entity.Customer{}
	for _, c := range f.s.customers {
		if c.AccountID == accountID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeCustomers) FindByIDForAccount(_ context.Context, id, accountID uuid.UUID) (*entity.Customer, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	c, ok := f.s.customers[id]
	if !ok || c.AccountID != accountID {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

type fakeQuotes struct{ s *memStore }

func (f *fakeQuotes) CreateAndDebit(_ context.Context, q *entity.Quote) (int, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	a, ok := f.s.accounts[q.AccountID]
	if !ok || a.Credit <= 0 {
		return 0, repository.ErrInsufficientCredit
	}
	a.Credit--
	f.s.quotes[q.ID] = cloneQuote(q)
	f.s.quoteWrites++
	return a.Credit, nil
}

func (f *fakeQuotes) FindByAccount(_ context.Context, accountID uuid.UUID, limit, offset int) ([]*entity.Quote, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	all := []*entity.Quote{}
	for _, q := range f.s.quotes {
		if q.AccountID == accountID {
			all = append(all, cloneQuote(q))
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if offset >= len(all) {
		return []*entity.Quote{}, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (f *fakeQuotes) CountByAccount(_ context.Context, accountID uuid.UUID) (int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var n int64
	for _, q := range f.s.quotes {
		if q.AccountID == accountID {
			n++
		}
	}
	return n, nil
}

func (f *fakeQuotes) FindByIDForAccount(_ context.Context, id, accountID uuid.UUID) (*entity.Quote, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	q, ok := f.s.quotes[id]
	if !ok || q.AccountID != accountID {
		return nil, nil
	}
	return cloneQuote(q), nil
}

func cloneQuote(q *entity.Quote) *entity.Quote {
	cp := *q
	cp.Items = append([]entity.QuoteItem(nil), q.Items...)
	if q.Customer != nil {
		c := *q.Customer
		cp.Customer = &c
	}
	return &cp
}

// recordingSender keeps the last code instead of delivering it.
type recordingSender struct {
	mu    sync.Mutex
	codes map[string]string
}

func (r *recordingSender) SendOTP(_ context.Context, number, code string, _ time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.codes == nil {
		r.codes = map[string]string{}
	}
	r.codes[number] = code
	return nil
}

func (r *recordingSender) last(number string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.codes[number]
}
