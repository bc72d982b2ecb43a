package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ventas-pos-api/internal/domain"
	"github.com/jhoicas/ventas-pos-api/internal/domain/entity"
	"github.com/jhoicas/ventas-pos-api/internal/domain/repository"
)

var _ repository.ComboRepository = (*ComboRepo)(nil)

// ComboRepo combos y combo_items.
type ComboRepo struct {
	q Querier
}

// NewComboRepository construye el adaptador. Pasar pool o tx (Querier).
func NewComboRepository(q Querier) *ComboRepo {
	return &ComboRepo{q: q}
}

// Create inserta la cabecera del combo (sin ítems).
func (r *ComboRepo) Create(c *entity.Combo) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO combos (id, company_id, name, price, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.CompanyID, c.Name, c.Price, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert combo: %w", err)
	}
	return nil
}

// CreateItem inserta un componente.
func (r *ComboRepo) CreateItem(it *entity.ComboItem) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO combo_items (combo_id, product_id, quantity) VALUES ($1, $2, $3)`,
		it.ComboID, it.ProductID, it.Quantity,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert combo item: %w", err)
	}
	return nil
}

// GetByID obtiene combo con sus ítems; (nil, nil) si no existe.
func (r *ComboRepo) GetByID(id string) (*entity.Combo, error) {
	ctx := context.Background()
	var c entity.Combo
	err := r.q.QueryRow(ctx,
		`SELECT id, company_id, name, price, created_at, updated_at FROM combos WHERE id = $1`, id).
		Scan(&c.ID, &c.CompanyID, &c.Name, &c.Price, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get combo: %w", err)
	}
	items, err := r.items(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	c.Items = items
	return &c, nil
}

// ListByCompany lista combos con sus ítems.
func (r *ComboRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Combo, error) {
	ctx := context.Background()
	rows, err := r.q.Query(ctx,
		`SELECT id, company_id, name, price, created_at, updated_at FROM combos
		 WHERE company_id = $1 ORDER BY name LIMIT $2 OFFSET $3`, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list combos: %w", err)
	}
	var list []*entity.Combo
	for rows.Next() {
		var c entity.Combo
		if err := rows.Scan(&c.ID, &c.CompanyID, &c.Name, &c.Price, &c.CreatedAt, &c.UpdatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan combo: %w", err)
		}
		list = append(list, &c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, c := range list {
		if c.Items, err = r.items(ctx, c.ID); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (r *ComboRepo) items(ctx context.Context, comboID string) ([]entity.ComboItem, error) {
	rows, err := r.q.Query(ctx,
		`SELECT combo_id, product_id, quantity FROM combo_items WHERE combo_id = $1 ORDER BY product_id`, comboID)
	if err != nil {
		return nil, fmt.Errorf("list combo items: %w", err)
	}
	defer rows.Close()
	var items []entity.ComboItem
	for rows.Next() {
		var it entity.ComboItem
		if err := rows.Scan(&it.ComboID, &it.ProductID, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan combo item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
