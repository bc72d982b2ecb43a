package usecase_test

import (
	"context"
	"strings"
	"sync"

	"github.com/jhoicas/ventas-pos-api/internal/domain/entity"
	"github.com/jhoicas/ventas-pos-api/internal/domain/repository"
)

type memProducts struct {
	mu   sync.Mutex
	byID map[string]*entity.Product
}

func newMemProducts(ps ...*entity.Product) *memProducts {
	m := &memProducts{byID: map[string]*entity.Product{}}
	for _, p := range ps {
		m.byID[p.ID] = p
	}
	return m
}

func (m *memProducts) Create(p *entity.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.byID[p.ID] = &cp
	return nil
}

func (m *memProducts) GetByID(id string) (*entity.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *memProducts) GetByCompanyAndSKU(companyID, sku string) (*entity.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.byID {
		if p.CompanyID == companyID && p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memProducts) Update(p *entity.Product) error { return m.Create(p) }

func (m *memProducts) ListByCompany(companyID string, _, _ int) ([]*entity.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Product
	for _, p := range m.byID {
		if p.CompanyID == companyID {
			out = append(out, p)
		}
	}
	return out, nil
}

// memSuppliers; si gate no es nil, ExistsByName para ese nombre bloquea hasta que se cancele el contexto.
type memSuppliers struct {
	mu      sync.Mutex
	byID    map[string]*entity.Supplier
	gate    string
	started chan struct{}
}

func newMemSuppliers() *memSuppliers {
	return &memSuppliers{byID: map[string]*entity.Supplier{}}
}

func (m *memSuppliers) Create(s *entity.Supplier) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.byID[s.ID] = &cp
	return nil
}

func (m *memSuppliers) GetByID(id string) (*entity.Supplier, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (m *memSuppliers) Update(s *entity.Supplier) error { return m.Create(s) }

func (m *memSuppliers) ListByCompany(companyID string, _, _ int) ([]*entity.Supplier, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Supplier
	for _, s := range m.byID {
		if s.CompanyID == companyID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memSuppliers) ExistsByName(ctx context.Context, companyID, name, excludeID string) (bool, error) {
	if m.gate != "" && name == m.gate {
		close(m.started)
		<-ctx.Done()
		return false, ctx.Err()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.byID {
		if s.CompanyID == companyID && s.ID != excludeID && strings.EqualFold(strings.TrimSpace(s.Name), strings.TrimSpace(name)) {
			return true, nil
		}
	}
	return false, nil
}

type memCombos struct {
	mu    sync.Mutex
	byID  map[string]*entity.Combo
	items map[string][]entity.ComboItem
	fail  error
}

func newMemCombos() *memCombos {
	return &memCombos{byID: map[string]*entity.Combo{}, items: map[string][]entity.ComboItem{}}
}

func (m *memCombos) Create(c *entity.Combo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *c
	cp.Items = nil
	m.byID[c.ID] = &cp
	return nil
}

func (m *memCombos) CreateItem(it *entity.ComboItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	m.items[it.ComboID] = append(m.items[it.ComboID], *it)
	return nil
}

func (m *memCombos) GetByID(id string) (*entity.Combo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	cp.Items = append([]entity.ComboItem(nil), m.items[id]...)
	return &cp, nil
}

func (m *memCombos) ListByCompany(companyID string, _, _ int) ([]*entity.Combo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Combo
	for _, c := range m.byID {
		if c.CompanyID == companyID {
			out = append(out, c)
		}
	}
	return out, nil
}

// txCombos simula la transacción: si fn falla se descarta lo escrito.
type txCombos struct{ repo *memCombos }

func (t txCombos) RunCombo(_ context.Context, fn func(repository.ComboRepository) error) error {
	staging := newMemCombos()
	staging.fail = t.repo.fail
	if err := fn(staging); err != nil {
		return err
	}
	t.repo.mu.Lock()
	defer t.repo.mu.Unlock()
	for id, c := range staging.byID {
		t.repo.byID[id] = c
		t.repo.items[id] = staging.items[id]
	}
	return nil
}

type memCarts struct {
	mu    sync.Mutex
	carts map[string]*entity.Cart
}

func (m *memCarts) Load(_ context.Context, companyID, userID string) (*entity.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.carts[companyID+"/"+userID]
	if !ok {
		return nil, nil
	}
	cp := *c
	cp.Lines = append([]entity.CartLine(nil), c.Lines...)
	return &cp, nil
}

func (m *memCarts) Update(_ context.Context, companyID, userID string, fn func(*entity.Cart) error) (*entity.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := &entity.Cart{CompanyID: companyID, UserID: userID}
	if cur, ok := m.carts[companyID+"/"+userID]; ok {
		cp := *cur
		cp.Lines = append([]entity.CartLine(nil), cur.Lines...)
		c = &cp
	}
	if err := fn(c); err != nil {
		return nil, err
	}
	stored := *c
	stored.Lines = append([]entity.CartLine(nil), c.Lines...)
	m.carts[companyID+"/"+userID] = &stored
	return c, nil
}

func (m *memCarts) Delete(_ context.Context, companyID, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, companyID+"/"+userID)
	return nil
}

type memBranches struct {
	branches  map[string]*entity.Branch
	registers map[string]*entity.CashRegister
}

func (m *memBranches) GetByID(id string) (*entity.Branch, error) { return m.branches[id], nil }

func (m *memBranches) ListByCompany(companyID string) ([]*entity.Branch, error) {
	var out []*entity.Branch
	for _, b := range m.branches {
		if b.CompanyID == companyID {
			out = append(out, b)
		}
	}
	return out, nil
}

type memRegisters struct{ m *memBranches }

func (r memRegisters) GetByID(id string) (*entity.CashRegister, error) { return r.m.registers[id], nil }

func (r memRegisters) ListByBranch(branchID string) ([]*entity.CashRegister, error) {
	var out []*entity.CashRegister
	for _, c := range r.m.registers {
		if c.BranchID == branchID {
			out = append(out, c)
		}
	}
	return out, nil
}

type memBranchCtx struct {
	data map[string]entity.BranchContext
}

func (m *memBranchCtx) Get(_ context.Context, companyID, userID string) (*entity.BranchContext, error) {
	bc, ok := m.data[companyID+"/"+userID]
	if !ok {
		return nil, nil
	}
	return &bc, nil
}

func (m *memBranchCtx) Set(_ context.Context, companyID, userID string, bc entity.BranchContext) error {
	m.data[companyID+"/"+userID] = bc
	return nil
}

func (m *memBranchCtx) Clear(_ context.Context, companyID, userID string) error {
	delete(m.data, companyID+"/"+userID)
	return nil
}
