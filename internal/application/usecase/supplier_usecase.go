package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/ventas-pos-api/internal/application/dto"
	"github.com/jhoicas/ventas-pos-api/internal/application/latest"
	"github.com/jhoicas/ventas-pos-api/internal/application/ports"
	"github.com/jhoicas/ventas-pos-api/internal/domain"
	"github.com/jhoicas/ventas-pos-api/internal/domain/entity"
	"github.com/jhoicas/ventas-pos-api/internal/domain/repository"
	"github.com/jhoicas/ventas-pos-api/pkg/logger"
)

// SupplierUseCase casos de uso de proveedores. El nombre es único por empresa.
type SupplierUseCase struct {
	repo   repository.SupplierRepository
	checks *latest.Tracker[dto.SupplierNameCheckResponse]
	log    *logger.Logger
}

// NewSupplierUseCase construye el caso de uso. checkTTL es la vida del último resultado
// de CheckName por sesión.
func NewSupplierUseCase(repo repository.SupplierRepository, metrics ports.Metrics, log *logger.Logger, checkTTL time.Duration) *SupplierUseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	l := log.Named("suppliers")
	return &SupplierUseCase{
		repo: repo,
		checks: latest.New[dto.SupplierNameCheckResponse](checkTTL, func(key string) {
			metrics.StaleResultDiscarded("supplier_name")
			l.Debug().Str("key", key).Msg("verificación de nombre descartada")
		}),
		log: l,
	}
}

// Create crea un proveedor.
func (uc *SupplierUseCase) Create(ctx context.Context, companyID string, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	exists, err := uc.repo.ExistsByName(ctx, companyID, name, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	s := &entity.Supplier{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      name,
		TaxID:     strings.TrimSpace(in.TaxID),
		Email:     strings.TrimSpace(in.Email),
		Phone:     strings.TrimSpace(in.Phone),
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(s); err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

// GetByID obtiene un proveedor de la empresa.
func (uc *SupplierUseCase) GetByID(companyID, id string) (*dto.SupplierResponse, error) {
	s, err := uc.get(companyID, id)
	if err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

// Update actualiza un proveedor; si cambia el nombre se verifica que siga siendo único.
func (uc *SupplierUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	s, err := uc.get(companyID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		exists, err := uc.repo.ExistsByName(ctx, companyID, name, s.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrDuplicate
		}
		s.Name = name
	}
	if in.TaxID != nil {
		s.TaxID = strings.TrimSpace(*in.TaxID)
	}
	if in.Email != nil {
		s.Email = strings.TrimSpace(*in.Email)
	}
	if in.Phone != nil {
		s.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Address != nil {
		s.Address = *in.Address
	}
	s.UpdatedAt = time.Now()
	if err := uc.repo.Update(s); err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

// List lista proveedores por empresa con paginación.
func (uc *SupplierUseCase) List(companyID string, limit, offset int) (*dto.SupplierListResponse, error) {
	list, err := uc.repo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSupplierResponse(s))
	}
	return &dto.SupplierListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// CheckName verifica si el nombre está disponible mientras el usuario escribe.
// Por sesión solo se aplica la verificación más reciente: una respuesta que llega después
// de una más nueva vuelve con Stale=true y no reemplaza el último resultado.
func (uc *SupplierUseCase) CheckName(ctx context.Context, companyID, sessionKey, name string) (*dto.SupplierNameCheckResponse, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	key := companyID + ":" + sessionKey
	cctx, tk := uc.checks.Begin(ctx, key)

	exists, err := uc.repo.ExistsByName(cctx, companyID, name, "")
	if err != nil {
		if !uc.checks.IsCurrent(tk) && errors.Is(err, context.Canceled) {
			// Commit de un ticket viejo no aplica nada; solo registra el descarte.
			uc.checks.Commit(tk, dto.SupplierNameCheckResponse{})
			return &dto.SupplierNameCheckResponse{Name: name, Stale: true}, nil
		}
		uc.checks.Abandon(tk)
		return nil, err
	}
	res := dto.SupplierNameCheckResponse{Name: name, Available: !exists}
	if !uc.checks.Commit(tk, res) {
		res.Stale = true
	}
	return &res, nil
}

// LastNameCheck último resultado aplicado para la sesión; false si no hay o ya venció.
func (uc *SupplierUseCase) LastNameCheck(companyID, sessionKey string) (*dto.SupplierNameCheckResponse, bool) {
	res, ok := uc.checks.Latest(companyID + ":" + sessionKey)
	if !ok {
		return nil, false
	}
	return &res, true
}

func (uc *SupplierUseCase) get(companyID, id string) (*entity.Supplier, error) {
	s, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	if s.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return s, nil
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:        s.ID,
		CompanyID: s.CompanyID,
		Name:      s.Name,
		TaxID:     s.TaxID,
		Email:     s.Email,
		Phone:     s.Phone,
		Address:   s.Address,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
