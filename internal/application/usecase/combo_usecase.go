package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-pos-api/internal/application/dto"
	"github.com/jhoicas/ventas-pos-api/internal/application/latest"
	"github.com/jhoicas/ventas-pos-api/internal/application/ports"
	"github.com/jhoicas/ventas-pos-api/internal/domain"
	"github.com/jhoicas/ventas-pos-api/internal/domain/entity"
	"github.com/jhoicas/ventas-pos-api/internal/domain/repository"
)

// ComboTxRunner ejecuta la creación del combo (cabecera + componentes) en una transacción.
type ComboTxRunner interface {
	RunCombo(ctx context.Context, fn func(comboRepo repository.ComboRepository) error) error
}

// ComboUseCase combos y su cotización frente a la compra por separado.
type ComboUseCase struct {
	tx       ComboTxRunner
	combos   repository.ComboRepository
	products repository.ProductRepository
	quotes   *latest.Tracker[dto.ComboQuoteResponse]
}

// NewComboUseCase construye el caso de uso.
func NewComboUseCase(tx ComboTxRunner, combos repository.ComboRepository, products repository.ProductRepository, metrics ports.Metrics, quoteTTL time.Duration) *ComboUseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &ComboUseCase{
		tx:       tx,
		combos:   combos,
		products: products,
		quotes: latest.New[dto.ComboQuoteResponse](quoteTTL, func(string) {
			metrics.StaleResultDiscarded("combo_quote")
		}),
	}
}

// Create valida los componentes y guarda combo e ítems en una sola transacción.
func (uc *ComboUseCase) Create(ctx context.Context, companyID string, in dto.CreateComboRequest) (*dto.ComboResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || len(in.Items) == 0 || !validPrice(in.Price) {
		return nil, domain.ErrInvalidInput
	}
	seen := make(map[string]bool, len(in.Items))
	for _, it := range in.Items {
		if it.ProductID == "" || it.Quantity < 1 || seen[it.ProductID] {
			return nil, domain.ErrInvalidInput
		}
		seen[it.ProductID] = true
		p, err := uc.products.GetByID(it.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, domain.ErrNotFound
		}
		if p.CompanyID != companyID {
			return nil, domain.ErrForbidden
		}
	}

	now := time.Now()
	combo := &entity.Combo{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      name,
		Price:     in.Price,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, it := range in.Items {
		combo.Items = append(combo.Items, entity.ComboItem{ComboID: combo.ID, ProductID: it.ProductID, Quantity: it.Quantity})
	}

	err := uc.tx.RunCombo(ctx, func(repo repository.ComboRepository) error {
		if err := repo.Create(combo); err != nil {
			return err
		}
		for i := range combo.Items {
			if err := repo.CreateItem(&combo.Items[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toComboResponse(combo), nil
}

// GetByID obtiene un combo de la empresa con sus componentes.
func (uc *ComboUseCase) GetByID(companyID, id string) (*dto.ComboResponse, error) {
	c, err := uc.get(companyID, id)
	if err != nil {
		return nil, err
	}
	return toComboResponse(c), nil
}

// List lista combos por empresa con paginación.
func (uc *ComboUseCase) List(companyID string, limit, offset int) (*dto.ComboListResponse, error) {
	list, err := uc.combos.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ComboResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toComboResponse(c))
	}
	return &dto.ComboListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Quote calcula precio regular (Σ precio × cantidad), precio del combo y ahorro.
// Por sesión gana la cotización más reciente; una anterior que termine después vuelve con Stale=true.
func (uc *ComboUseCase) Quote(ctx context.Context, companyID, sessionKey, comboID string) (*dto.ComboQuoteResponse, error) {
	key := companyID + ":" + sessionKey
	cctx, tk := uc.quotes.Begin(ctx, key)

	res, err := uc.quote(cctx, companyID, comboID)
	if err != nil {
		if !uc.quotes.IsCurrent(tk) && errors.Is(err, context.Canceled) {
			// Commit de un ticket viejo no aplica nada; solo registra el descarte.
			uc.quotes.Commit(tk, dto.ComboQuoteResponse{})
			return &dto.ComboQuoteResponse{ComboID: comboID, Stale: true}, nil
		}
		uc.quotes.Abandon(tk)
		return nil, err
	}
	if !uc.quotes.Commit(tk, *res) {
		res.Stale = true
	}
	return res, nil
}

func (uc *ComboUseCase) quote(ctx context.Context, companyID, comboID string) (*dto.ComboQuoteResponse, error) {
	c, err := uc.get(companyID, comboID)
	if err != nil {
		return nil, err
	}
	regular := decimal.Zero
	for _, it := range c.Items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p, err := uc.products.GetByID(it.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, domain.ErrNotFound
		}
		regular = regular.Add(p.Price.Mul(decimal.NewFromInt(it.Quantity)))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &dto.ComboQuoteResponse{
		ComboID:      c.ID,
		RegularPrice: regular,
		ComboPrice:   c.Price,
		Savings:      decimal.Max(decimal.Zero, regular.Sub(c.Price)),
	}, nil
}

func (uc *ComboUseCase) get(companyID, id string) (*entity.Combo, error) {
	c, err := uc.combos.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if c.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return c, nil
}

func toComboResponse(c *entity.Combo) *dto.ComboResponse {
	items := make([]dto.ComboItemResponse, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, dto.ComboItemResponse{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return &dto.ComboResponse{
		ID:        c.ID,
		CompanyID: c.CompanyID,
		Name:      c.Name,
		Price:     c.Price,
		Items:     items,
		CreatedAt: c.CreatedAt,
	}
}
