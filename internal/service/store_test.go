package service

import (
	"context"
	"time"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/repository"
)

// fakeData is the backing state for the in-memory store. All fake
// repositories share one instance so that transactional rollback can restore
// a consistent snapshot across entities.
type fakeData struct {
	clients  map[int32]domain.Client
	products map[int32]domain.Product
	rents    map[int32]domain.Rent
	nextID   int32
}

func newFakeData() *fakeData {
	return &fakeData{
		clients:  make(map[int32]domain.Client),
		products: make(map[int32]domain.Product),
		rents:    make(map[int32]domain.Rent),
		nextID:   1,
	}
}

func (d *fakeData) allocID() int32 {
	id := d.nextID
	d.nextID++
	return id
}

func (d *fakeData) clone() *fakeData {
	c := newFakeData()
	c.nextID = d.nextID
	for id, v := range d.clients {
		c.clients[id] = v
	}
	for id, v := range d.products {
		c.products[id] = v
	}
	for id, v := range d.rents {
		v.Items = append([]domain.RentItem(nil), v.Items...)
		c.rents[id] = v
	}
	return c
}

type fakeStore struct {
	data *fakeData
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: newFakeData()}
}

func (s *fakeStore) Repos() repository.Repos {
	return repository.Repos{
		Clients:  &fakeClientRepo{d: s.data},
		Products: &fakeProductRepo{d: s.data},
		Rents:    &fakeRentRepo{d: s.data},
	}
}

// RunAtomic snapshots the state before fn and restores it when fn fails,
// mirroring transaction rollback.
func (s *fakeStore) RunAtomic(ctx context.Context, fn func(r repository.Repos) error) error {
	snapshot := s.data.clone()
	if err := fn(s.Repos()); err != nil {
		*s.data = *snapshot
		return err
	}
	return nil
}

func (s *fakeStore) addClient(c domain.Client) int32 {
	c.ID = s.data.allocID()
	s.data.clients[c.ID] = c
	return c.ID
}

func (s *fakeStore) addProduct(p domain.Product) int32 {
	p.ID = s.data.allocID()
	s.data.products[p.ID] = p
	return p.ID
}

func (s *fakeStore) product(id int32) domain.Product {
	return s.data.products[id]
}

type fakeClientRepo struct {
	d *fakeData
}

func (r *fakeClientRepo) Create(ctx context.Context, client *domain.Client) error {
	client.ID = r.d.allocID()
	r.d.clients[client.ID] = *client
	return nil
}

func (r *fakeClientRepo) GetByID(ctx context.Context, id int32) (*domain.Client, error) {
	c, ok := r.d.clients[id]
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	return &c, nil
}

func (r *fakeClientRepo) Update(ctx context.Context, client *domain.Client) error {
	if _, ok := r.d.clients[client.ID]; !ok {
		return domain.ErrClientNotFound
	}
	r.d.clients[client.ID] = *client
	return nil
}

func (r *fakeClientRepo) Delete(ctx context.Context, id int32) error {
	if _, ok := r.d.clients[id]; !ok {
		return domain.ErrClientNotFound
	}
	delete(r.d.clients, id)
	return nil
}

func (r *fakeClientRepo) List(ctx context.Context) ([]domain.Client, error) {
	out := make([]domain.Client, 0, len(r.d.clients))
	for _, c := range r.d.clients {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeClientRepo) ListActive(ctx context.Context) ([]domain.Client, error) {
	var out []domain.Client
	for _, c := range r.d.clients {
		if c.IsActive {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeProductRepo struct {
	d *fakeData
}

func (r *fakeProductRepo) Create(ctx context.Context, product *domain.Product) error {
	product.ID = r.d.allocID()
	r.d.products[product.ID] = *product
	return nil
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id int32) (*domain.Product, error) {
	p, ok := r.d.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return &p, nil
}

func (r *fakeProductRepo) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeProductRepo) Update(ctx context.Context, product *domain.Product) error {
	if _, ok := r.d.products[product.ID]; !ok {
		return domain.ErrProductNotFound
	}
	r.d.products[product.ID] = *product
	return nil
}

func (r *fakeProductRepo) Delete(ctx context.Context, id int32) error {
	if _, ok := r.d.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.d.products, id)
	return nil
}

func (r *fakeProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(r.d.products))
	for _, p := range r.d.products {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeProductRepo) ListActive(ctx context.Context) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range r.d.products {
		if p.IsActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) ListByProvider(ctx context.Context, providerID int32) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range r.d.products {
		if p.ProviderID == providerID {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeRentRepo struct {
	d *fakeData
}

func (r *fakeRentRepo) Create(ctx context.Context, rent *domain.Rent) error {
	rent.ID = r.d.allocID()
	rent.CreatedOn = time.Now()
	rent.UpdatedOn = rent.CreatedOn
	for i := range rent.Items {
		rent.Items[i].ID = r.d.allocID()
		rent.Items[i].RentID = rent.ID
	}
	stored := *rent
	stored.Items = append([]domain.RentItem(nil), rent.Items...)
	r.d.rents[rent.ID] = stored
	return nil
}

func (r *fakeRentRepo) GetByID(ctx context.Context, id int32) (*domain.Rent, error) {
	rt, ok := r.d.rents[id]
	if !ok {
		return nil, domain.ErrRentNotFound
	}
	rt.Items = append([]domain.RentItem(nil), rt.Items...)
	if c, ok := r.d.clients[rt.ClientID]; ok {
		rt.Client = &c
	}
	return &rt, nil
}

func (r *fakeRentRepo) GetByIDWithProducts(ctx context.Context, id int32) (*domain.Rent, error) {
	rt, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	for i := range rt.Items {
		if p, ok := r.d.products[rt.Items[i].ProductID]; ok {
			rt.Items[i].Product = &p
		}
	}
	return rt, nil
}

func (r *fakeRentRepo) Update(ctx context.Context, rent *domain.Rent) error {
	stored, ok := r.d.rents[rent.ID]
	if !ok {
		return domain.ErrRentNotFound
	}
	items := stored.Items
	stored = *rent
	stored.Items = items
	stored.Client = nil
	stored.UpdatedOn = time.Now()
	r.d.rents[rent.ID] = stored
	return nil
}

func (r *fakeRentRepo) Delete(ctx context.Context, id int32) error {
	if _, ok := r.d.rents[id]; !ok {
		return domain.ErrRentNotFound
	}
	delete(r.d.rents, id)
	return nil
}

func (r *fakeRentRepo) List(ctx context.Context) ([]domain.Rent, error) {
	out := make([]domain.Rent, 0, len(r.d.rents))
	for id := range r.d.rents {
		rt, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, *rt)
	}
	return out, nil
}
