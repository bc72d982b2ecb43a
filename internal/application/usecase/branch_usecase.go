package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/ventas-pos-api/internal/application/dto"
	"github.com/jhoicas/ventas-pos-api/internal/application/ports"
	"github.com/jhoicas/ventas-pos-api/internal/domain"
	"github.com/jhoicas/ventas-pos-api/internal/domain/entity"
	"github.com/jhoicas/ventas-pos-api/internal/domain/repository"
)

// BranchUseCase sucursales, cajas y el contexto seleccionado por cada usuario.
type BranchUseCase struct {
	branches  repository.BranchRepository
	registers repository.CashRegisterRepository
	store     ports.BranchContextStore
}

// NewBranchUseCase construye el caso de uso.
func NewBranchUseCase(branches repository.BranchRepository, registers repository.CashRegisterRepository, store ports.BranchContextStore) *BranchUseCase {
	return &BranchUseCase{branches: branches, registers: registers, store: store}
}

// List lista las sucursales de la empresa con sus cajas.
func (uc *BranchUseCase) List(companyID string) ([]dto.BranchResponse, error) {
	list, err := uc.branches.ListByCompany(companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BranchResponse, 0, len(list))
	for _, b := range list {
		regs, err := uc.registers.ListByBranch(b.ID)
		if err != nil {
			return nil, err
		}
		resp := toBranchResponse(b)
		for _, r := range regs {
			resp.CashRegisters = append(resp.CashRegisters, toCashRegisterResponse(r))
		}
		out = append(out, resp)
	}
	return out, nil
}

// SelectBranch valida que sucursal y caja sean de la empresa y que la caja pertenezca
// a la sucursal; luego guarda el contexto del usuario.
func (uc *BranchUseCase) SelectBranch(ctx context.Context, companyID, userID string, in dto.SelectBranchRequest) (*dto.BranchContextResponse, error) {
	b, reg, err := uc.resolve(companyID, in.BranchID, in.CashRegisterID)
	if err != nil {
		return nil, err
	}
	bc := entity.BranchContext{BranchID: b.ID, CashRegisterID: reg.ID, SelectedAt: time.Now().UTC()}
	if err := uc.store.Set(ctx, companyID, userID, bc); err != nil {
		return nil, err
	}
	return &dto.BranchContextResponse{
		Branch:       toBranchResponse(b),
		CashRegister: toCashRegisterResponse(reg),
		SelectedAt:   bc.SelectedAt,
	}, nil
}

// CurrentContext devuelve el contexto guardado con el estado actual de la caja.
// domain.ErrNotFound si el usuario no ha seleccionado sucursal.
func (uc *BranchUseCase) CurrentContext(ctx context.Context, companyID, userID string) (*dto.BranchContextResponse, error) {
	bc, err := uc.store.Get(ctx, companyID, userID)
	if err != nil {
		return nil, err
	}
	if bc == nil {
		return nil, domain.ErrNotFound
	}
	b, reg, err := uc.resolve(companyID, bc.BranchID, bc.CashRegisterID)
	if err != nil {
		// La sucursal o la caja dejaron de existir: el contexto ya no es válido.
		_ = uc.store.Clear(ctx, companyID, userID)
		return nil, domain.ErrNotFound
	}
	return &dto.BranchContextResponse{
		Branch:       toBranchResponse(b),
		CashRegister: toCashRegisterResponse(reg),
		SelectedAt:   bc.SelectedAt,
	}, nil
}

// ClearContext olvida la sucursal seleccionada.
func (uc *BranchUseCase) ClearContext(ctx context.Context, companyID, userID string) error {
	return uc.store.Clear(ctx, companyID, userID)
}

// RegisterStatus estado actual de una caja.
func (uc *BranchUseCase) RegisterStatus(ctx context.Context, companyID, registerID string) (*dto.CashRegisterResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	reg, err := uc.registers.GetByID(registerID)
	if err != nil {
		return nil, err
	}
	if reg == nil {
		return nil, domain.ErrNotFound
	}
	if reg.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	resp := toCashRegisterResponse(reg)
	return &resp, nil
}

func (uc *BranchUseCase) resolve(companyID, branchID, registerID string) (*entity.Branch, *entity.CashRegister, error) {
	b, err := uc.branches.GetByID(branchID)
	if err != nil {
		return nil, nil, err
	}
	if b == nil {
		return nil, nil, domain.ErrNotFound
	}
	if b.CompanyID != companyID {
		return nil, nil, domain.ErrForbidden
	}
	reg, err := uc.registers.GetByID(registerID)
	if err != nil {
		return nil, nil, err
	}
	if reg == nil {
		return nil, nil, domain.ErrNotFound
	}
	if reg.BranchID != b.ID {
		return nil, nil, domain.ErrInvalidInput
	}
	return b, reg, nil
}

func toBranchResponse(b *entity.Branch) dto.BranchResponse {
	return dto.BranchResponse{ID: b.ID, Name: b.Name, Address: b.Address}
}

func toCashRegisterResponse(r *entity.CashRegister) dto.CashRegisterResponse {
	status := r.Status
	if status != entity.RegisterOpen {
		status = entity.RegisterClosed
	}
	return dto.CashRegisterResponse{
		ID:       r.ID,
		BranchID: r.BranchID,
		Name:     r.Name,
		Status:   status,
		OpenedAt: r.OpenedAt,
	}
}
