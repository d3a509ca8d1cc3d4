package usecase_test

import (
	"context"

	"github.com/malikfall/gestock-api/internal/domain"
	"github.com/malikfall/gestock-api/internal/domain/entity"
	"github.com/malikfall/gestock-api/internal/domain/repository"
)

// Fakes en mémoire des ports de persistance pour les tests de cas d'usage.

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[string]*entity.Product{}}
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	for _, other := range r.products {
		if other.CompanyID == p.CompanyID && other.NameKey == p.NameKey {
			return domain.ErrDuplicate // simule la contrainte unique
		}
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetByCompanyAndNameKey(companyID, nameKey string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.CompanyID == companyID && p.NameKey == nameKey {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error) {
	var list []*entity.Product
	for _, p := range r.products {
		if p.CompanyID == companyID {
			cp := *p
			list = append(list, &cp)
		}
	}
	return list, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) Delete(id string) error {
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) DecrementStock(productID string, quantity int) error {
	p, ok := r.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	if p.Stock < quantity {
		return domain.ErrInsufficientStock
	}
	p.Stock -= quantity
	return nil
}

type fakeSaleRepo struct {
	sales map[string]*entity.Sale
	lines map[string][]*entity.SaleLine
}

func newFakeSaleRepo() *fakeSaleRepo {
	return &fakeSaleRepo{sales: map[string]*entity.Sale{}, lines: map[string][]*entity.SaleLine{}}
}

func (r *fakeSaleRepo) Create(sale *entity.Sale, lines []*entity.SaleLine) error {
	cp := *sale
	r.sales[sale.ID] = &cp
	r.lines[sale.ID] = append([]*entity.SaleLine(nil), lines...)
	return nil
}

func (r *fakeSaleRepo) GetByID(id string) (*entity.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSaleRepo) GetLines(saleID string) ([]*entity.SaleLine, error) {
	return r.lines[saleID], nil
}

func (r *fakeSaleRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Sale, error) {
	var list []*entity.Sale
	for _, s := range r.sales {
		if s.CompanyID == companyID {
			cp := *s
			list = append(list, &cp)
		}
	}
	return list, nil
}

type fakeCompanyRepo struct {
	companies map[string]*entity.Company
}

func newFakeCompanyRepo(companies ...*entity.Company) *fakeCompanyRepo {
	r := &fakeCompanyRepo{companies: map[string]*entity.Company{}}
	for _, c := range companies {
		r.companies[c.ID] = c
	}
	return r
}

func (r *fakeCompanyRepo) Create(c *entity.Company) error {
	r.companies[c.ID] = c
	return nil
}

func (r *fakeCompanyRepo) GetByID(id string) (*entity.Company, error) {
	c, ok := r.companies[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCompanyRepo) List(limit, offset int) ([]*entity.Company, error) {
	var list []*entity.Company
	for _, c := range r.companies {
		cp := *c
		list = append(list, &cp)
	}
	return list, nil
}

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[string]*entity.User{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	for _, other := range r.users {
		if other.CompanyID == u.CompanyID && other.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmailAndCompany(email, companyID string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email && u.CompanyID == companyID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.User, error) {
	var list []*entity.User
	for _, u := range r.users {
		if u.CompanyID == companyID {
			cp := *u
			list = append(list, &cp)
		}
	}
	return list, nil
}

func (r *fakeUserRepo) Update(u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) SetTOTPSecret(userID, secret string) error {
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.TOTPSecret = secret
	return nil
}

func (r *fakeUserRepo) EnableTOTP(userID string) error {
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.TOTPEnabled = true
	return nil
}

// fakeTxRunner exécute le callback sur les fakes et restaure l'état des
// produits en cas d'erreur, imitant le rollback d'une vraie transaction.
type fakeTxRunner struct {
	products *fakeProductRepo
	sales    *fakeSaleRepo
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
) error) error {
	snapshot := map[string]entity.Product{}
	for id, p := range r.products.products {
		snapshot[id] = *p
	}
	if err := fn(r.products, r.sales); err != nil {
		r.products.products = map[string]*entity.Product{}
		for id := range snapshot {
			cp := snapshot[id]
			r.products.products[id] = &cp
		}
		return err
	}
	return nil
}
