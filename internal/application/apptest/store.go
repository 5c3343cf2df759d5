// Package apptest implementa en memoria los puertos de repositorio y los tx runners
// para las pruebas de casos de uso. RunX restaura el estado previo si fn falla.
package apptest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/retailflow-api/internal/domain"
	"github.com/jhoicas/retailflow-api/internal/domain/entity"
	"github.com/jhoicas/retailflow-api/internal/domain/repository"
)

// Operaciones en las que se puede inyectar una falla con Store.Fail.
const (
	OpOrderCreate     = "order.create"
	OpBranchIncrement = "branch.increment"
	OpCartSave        = "cart.save"
	OpUserSetVerified = "user.setVerified"
	OpSalaryAppend    = "user.addSalaryPayment"
)

// Store estado compartido por todos los repos en memoria.
type Store struct {
	mu   sync.Mutex
	txMu sync.Mutex

	Users     map[string]*entity.User
	Salaries  []*entity.SalaryPayment
	Branches  map[string]*entity.Branch
	Products  map[string]*entity.Product
	Carts     map[string]*entity.Cart // por userID
	Orders    map[string]*entity.Order
	Documents map[string]*entity.Document
	Requests  map[string]*entity.ProductRequest

	failures map[string]error
	// Calls cuenta invocaciones por operación inyectable.
	Calls map[string]int
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		Users:     map[string]*entity.User{},
		Branches:  map[string]*entity.Branch{},
		Products:  map[string]*entity.Product{},
		Carts:     map[string]*entity.Cart{},
		Orders:    map[string]*entity.Order{},
		Documents: map[string]*entity.Document{},
		Requests:  map[string]*entity.ProductRequest{},
		failures:  map[string]error{},
		Calls:     map[string]int{},
	}
}

// Fail hace que la operación op devuelva err a partir de ahora.
func (s *Store) Fail(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = err
}

func (s *Store) hit(op string) error {
	s.Calls[op]++
	return s.failures[op]
}

// ── Repos ─────────────────────────────────────────────────────────────────────

func (s *Store) UserRepo() repository.UserRepository       { return &userRepo{s} }
func (s *Store) BranchRepo() repository.BranchRepository   { return &branchRepo{s} }
func (s *Store) ProductRepo() repository.ProductRepository { return &productRepo{s} }
func (s *Store) CartRepo() repository.CartRepository       { return &cartRepo{s} }
func (s *Store) OrderRepo() repository.OrderRepository     { return &orderRepo{s} }
func (s *Store) DocumentRepo() repository.DocumentRepository {
	return &documentRepo{s}
}
func (s *Store) ProductRequestRepo() repository.ProductRequestRepository {
	return &productRequestRepo{s}
}

// ── Tx runner ─────────────────────────────────────────────────────────────────

// TxRunner implementa los puertos RunX sobre el store con rollback por snapshot.
type TxRunner struct {
	S *Store
}

func (r TxRunner) atomic(fn func() error) error {
	// Una transacción a la vez: equivale a los bloqueos de fila de PostgreSQL.
	r.S.txMu.Lock()
	defer r.S.txMu.Unlock()
	snap := r.S.snapshot()
	if err := fn(); err != nil {
		r.S.restore(snap)
		return err
	}
	return nil
}

// RunOrder ver postgres.TxRunner.RunOrder.
func (r TxRunner) RunOrder(_ context.Context, fn func(
	repository.CartRepository, repository.ProductRepository, repository.OrderRepository, repository.BranchRepository,
) error) error {
	return r.atomic(func() error {
		return fn(r.S.CartRepo(), r.S.ProductRepo(), r.S.OrderRepo(), r.S.BranchRepo())
	})
}

// RunCart ver postgres.TxRunner.RunCart.
func (r TxRunner) RunCart(_ context.Context, fn func(repository.CartRepository, repository.ProductRepository) error) error {
	return r.atomic(func() error { return fn(r.S.CartRepo(), r.S.ProductRepo()) })
}

// RunPayroll ver postgres.TxRunner.RunPayroll.
func (r TxRunner) RunPayroll(_ context.Context, fn func(repository.UserRepository) error) error {
	return r.atomic(func() error { return fn(r.S.UserRepo()) })
}

// RunReview ver postgres.TxRunner.RunReview.
func (r TxRunner) RunReview(_ context.Context, fn func(repository.DocumentRepository, repository.UserRepository) error) error {
	return r.atomic(func() error { return fn(r.S.DocumentRepo(), r.S.UserRepo()) })
}

type snapshot struct {
	users     map[string]*entity.User
	salaries  []*entity.SalaryPayment
	branches  map[string]*entity.Branch
	products  map[string]*entity.Product
	carts     map[string]*entity.Cart
	orders    map[string]*entity.Order
	documents map[string]*entity.Document
	requests  map[string]*entity.ProductRequest
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot{
		users:     cloneMap(s.Users, cloneUser),
		salaries:  append([]*entity.SalaryPayment(nil), s.Salaries...),
		branches:  cloneMap(s.Branches, func(b *entity.Branch) *entity.Branch { c := *b; return &c }),
		products:  cloneMap(s.Products, func(p *entity.Product) *entity.Product { c := *p; return &c }),
		carts:     cloneMap(s.Carts, cloneCart),
		orders:    cloneMap(s.Orders, cloneOrder),
		documents: cloneMap(s.Documents, func(d *entity.Document) *entity.Document { c := *d; return &c }),
		requests:  cloneMap(s.Requests, func(r *entity.ProductRequest) *entity.ProductRequest { c := *r; return &c }),
	}
}

func (s *Store) restore(sn snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Users, s.Salaries, s.Branches, s.Products = sn.users, sn.salaries, sn.branches, sn.products
	s.Carts, s.Orders, s.Documents, s.Requests = sn.carts, sn.orders, sn.documents, sn.requests
}

func cloneMap[T any](m map[string]*T, clone func(*T) *T) map[string]*T {
	out := make(map[string]*T, len(m))
	for k, v := range m {
		out[k] = clone(v)
	}
	return out
}

func cloneUser(u *entity.User) *entity.User {
	c := *u
	if u.AssignedBranchID != nil {
		id := *u.AssignedBranchID
		c.AssignedBranchID = &id
	}
	return &c
}

func cloneCart(c *entity.Cart) *entity.Cart {
	out := *c
	out.Items = append([]entity.CartItem{}, c.Items...)
	return &out
}

func cloneOrder(o *entity.Order) *entity.Order {
	out := *o
	out.Items = append([]entity.OrderItem(nil), o.Items...)
	return &out
}

// ── users ─────────────────────────────────────────────────────────────────────

type userRepo struct{ s *Store }

func (r *userRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.Users {
		if x.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.s.Users[u.ID] = cloneUser(u)
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.Users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.Users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (r *userRepo) ListByRole(_ context.Context, role entity.Role) ([]*entity.User, error) {
	return r.filter(func(u *entity.User) bool { return u.Role == role }), nil
}

func (r *userRepo) ListByBranch(_ context.Context, branchID string) ([]*entity.User, error) {
	return r.filter(func(u *entity.User) bool { return u.Role == entity.RoleEmployee && u.IsAssignedTo(branchID) }), nil
}

func (r *userRepo) filter(keep func(*entity.User) bool) []*entity.User {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.User
	for _, u := range r.s.Users {
		if keep(u) {
			out = append(out, cloneUser(u))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *userRepo) SetAssignedBranch(_ context.Context, userID, branchID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.Users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	id := branchID
	u.AssignedBranchID = &id
	return nil
}

func (r *userRepo) AddToWallet(_ context.Context, userID string, amount decimal.Decimal) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.Users[userID]
	if !ok {
		return decimal.Zero, domain.ErrUserNotFound
	}
	u.WalletAmount = u.WalletAmount.Add(amount)
	return u.WalletAmount, nil
}

func (r *userRepo) SetVerified(_ context.Context, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.hit(OpUserSetVerified); err != nil {
		return err
	}
	u, ok := r.s.Users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.IsVerified = true
	return nil
}

func (r *userRepo) AddSalaryPayment(_ context.Context, p *entity.SalaryPayment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.hit(OpSalaryAppend); err != nil {
		return err
	}
	c := *p
	r.s.Salaries = append(r.s.Salaries, &c)
	return nil
}

func (r *userRepo) ListSalaryPayments(_ context.Context, userID string) ([]*entity.SalaryPayment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.SalaryPayment
	for _, p := range r.s.Salaries {
		if p.UserID == userID {
			c := *p
			out = append(out, &c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

// ── branches ──────────────────────────────────────────────────────────────────

type branchRepo struct{ s *Store }

func (r *branchRepo) Create(_ context.Context, b *entity.Branch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.Branches {
		if x.Name == b.Name {
			return domain.ErrDuplicate
		}
	}
	c := *b
	r.s.Branches[b.ID] = &c
	return nil
}

func (r *branchRepo) GetByID(_ context.Context, id string) (*entity.Branch, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if b, ok := r.s.Branches[id]; ok {
		c := *b
		return &c, nil
	}
	return nil, nil
}

func (r *branchRepo) GetByName(_ context.Context, name string) (*entity.Branch, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, b := range r.s.Branches {
		if b.Name == name {
			c := *b
			return &c, nil
		}
	}
	return nil, nil
}

func (r *branchRepo) List(_ context.Context) ([]*entity.Branch, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Branch, 0, len(r.s.Branches))
	for _, b := range r.s.Branches {
		c := *b
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *branchRepo) GetRefs(_ context.Context, ids []string) (map[string]entity.BranchRef, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := map[string]entity.BranchRef{}
	for _, id := range ids {
		if b, ok := r.s.Branches[id]; ok {
			out[id] = entity.BranchRef{ID: b.ID, Name: b.Name, Location: b.Location}
		}
	}
	return out, nil
}

func (r *branchRepo) IncrementTotalSales(_ context.Context, id string, amount decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.hit(OpBranchIncrement); err != nil {
		return err
	}
	b, ok := r.s.Branches[id]
	if !ok {
		return domain.ErrBranchNotFound
	}
	b.TotalSales = b.TotalSales.Add(amount)
	return nil
}

// ── products ──────────────────────────────────────────────────────────────────

type productRepo struct{ s *Store }

func (r *productRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *p
	r.s.Products[p.ID] = &c
	return nil
}

func (r *productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.Products[id]; ok {
		c := *p
		return &c, nil
	}
	return nil, nil
}

func (r *productRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.Products[p.ID]; !ok {
		return domain.ErrProductNotFound
	}
	c := *p
	r.s.Products[p.ID] = &c
	return nil
}

func (r *productRepo) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	search := strings.ToLower(strings.TrimSpace(f.Search))
	var out []*entity.Product
	for _, p := range r.s.Products {
		if f.ActiveOnly && !p.IsActive {
			continue
		}
		if f.BranchID != "" && p.BranchID != f.BranchID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		c := *p
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *productRepo) CountActiveByBranch(_ context.Context, branchID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, p := range r.s.Products {
		if p.BranchID == branchID && p.IsActive {
			n++
		}
	}
	return n, nil
}

func (r *productRepo) GetRefs(_ context.Context, ids []string) (map[string]entity.ProductRef, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := map[string]entity.ProductRef{}
	for _, id := range ids {
		if p, ok := r.s.Products[id]; ok {
			out[id] = entity.ProductRef{ID: p.ID, Name: p.Name, Image: p.Image}
		}
	}
	return out, nil
}

// ── carts ─────────────────────────────────────────────────────────────────────

type cartRepo struct{ s *Store }

func (r *cartRepo) GetByUserID(_ context.Context, userID string) (*entity.Cart, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.Carts[userID]; ok {
		return cloneCart(c), nil
	}
	return nil, nil
}

func (r *cartRepo) GetByUserIDForUpdate(ctx context.Context, userID string) (*entity.Cart, error) {
	return r.GetByUserID(ctx, userID)
}

func (r *cartRepo) GetOrCreateForUpdate(_ context.Context, userID string) (*entity.Cart, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.Carts[userID]
	if !ok {
		now := time.Now()
		c = &entity.Cart{ID: uuid.New().String(), UserID: userID, Items: []entity.CartItem{}, TotalAmount: decimal.Zero, CreatedAt: now, UpdatedAt: now}
		r.s.Carts[userID] = c
	}
	return cloneCart(c), nil
}

func (r *cartRepo) Save(_ context.Context, c *entity.Cart) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.hit(OpCartSave); err != nil {
		return err
	}
	r.s.Carts[c.UserID] = cloneCart(c)
	return nil
}

// ── orders ────────────────────────────────────────────────────────────────────

type orderRepo struct{ s *Store }

func (r *orderRepo) Create(_ context.Context, o *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.hit(OpOrderCreate); err != nil {
		return err
	}
	r.s.Orders[o.ID] = cloneOrder(o)
	return nil
}

func (r *orderRepo) GetByIDForUser(_ context.Context, id, userID string) (*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if o, ok := r.s.Orders[id]; ok && o.UserID == userID {
		return cloneOrder(o), nil
	}
	return nil, nil
}

func (r *orderRepo) ListByUser(_ context.Context, userID string) ([]*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Order
	for _, o := range r.s.Orders {
		if o.UserID == userID {
			out = append(out, cloneOrder(o))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderDate.After(out[j].OrderDate) })
	return out, nil
}

// ── documents ─────────────────────────────────────────────────────────────────

type documentRepo struct{ s *Store }

func (r *documentRepo) Create(_ context.Context, d *entity.Document) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.Documents {
		if x.UserID == d.UserID && x.Outstanding() {
			return domain.ErrDocumentOutstanding
		}
	}
	c := *d
	r.s.Documents[d.ID] = &c
	return nil
}

func (r *documentRepo) GetByID(_ context.Context, id string) (*entity.Document, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if d, ok := r.s.Documents[id]; ok {
		c := *d
		return &c, nil
	}
	return nil, nil
}

func (r *documentRepo) FindOutstandingByUser(_ context.Context, userID string) (*entity.Document, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, d := range r.s.Documents {
		if d.UserID == userID && d.Outstanding() {
			c := *d
			return &c, nil
		}
	}
	return nil, nil
}

func (r *documentRepo) ListByUser(_ context.Context, userID string) ([]*entity.Document, error) {
	return r.filter(func(d *entity.Document) bool { return d.UserID == userID }), nil
}

func (r *documentRepo) ListByStatus(_ context.Context, st entity.RequestStatus) ([]*entity.Document, error) {
	return r.filter(func(d *entity.Document) bool { return d.Status == st }), nil
}

func (r *documentRepo) filter(keep func(*entity.Document) bool) []*entity.Document {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Document
	for _, d := range r.s.Documents {
		if keep(d) {
			c := *d
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SubmissionDate.After(out[j].SubmissionDate) })
	return out
}

func (r *documentRepo) UpdateReview(_ context.Context, d *entity.Document) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.Documents[d.ID]; !ok {
		return domain.ErrNotFound
	}
	c := *d
	r.s.Documents[d.ID] = &c
	return nil
}

func (r *documentRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.Documents[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.Documents, id)
	return nil
}

// ── product requests ──────────────────────────────────────────────────────────

type productRequestRepo struct{ s *Store }

func (r *productRequestRepo) Create(_ context.Context, pr *entity.ProductRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *pr
	r.s.Requests[pr.ID] = &c
	return nil
}

func (r *productRequestRepo) GetByID(_ context.Context, id string) (*entity.ProductRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if pr, ok := r.s.Requests[id]; ok {
		c := *pr
		return &c, nil
	}
	return nil, nil
}

func (r *productRequestRepo) List(_ context.Context, f repository.ProductRequestFilter) ([]*entity.ProductRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.ProductRequest
	for _, pr := range r.s.Requests {
		switch {
		case f.Origin != "" && pr.Origin != f.Origin,
			f.Status != "" && pr.Status != f.Status,
			f.Urgency != "" && pr.Urgency != f.Urgency,
			f.BranchID != "" && pr.BranchID != f.BranchID,
			f.RequestedBy != "" && pr.RequestedBy != f.RequestedBy:
			continue
		}
		c := *pr
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *productRequestRepo) UpdateDecision(_ context.Context, pr *entity.ProductRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.Requests[pr.ID]; !ok {
		return domain.ErrNotFound
	}
	c := *pr
	r.s.Requests[pr.ID] = &c
	return nil
}

func (r *productRequestRepo) CountByStatus(_ context.Context, origin entity.RequestOrigin) (map[entity.RequestStatus]int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := map[entity.RequestStatus]int{}
	for _, pr := range r.s.Requests {
		if pr.Origin == origin {
			out[pr.Status]++
		}
	}
	return out, nil
}

func (r *productRequestRepo) CountPendingByUrgency(_ context.Context, origin entity.RequestOrigin) (map[entity.Urgency]int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := map[entity.Urgency]int{}
	for _, pr := range r.s.Requests {
		if pr.Origin == origin && pr.Status == entity.StatusPending {
			out[pr.Urgency]++
		}
	}
	return out, nil
}
