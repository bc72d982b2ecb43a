package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-pos-api/internal/application/dto"
	"github.com/jhoicas/ventas-pos-api/internal/application/usecase"
	"github.com/jhoicas/ventas-pos-api/internal/domain"
	"github.com/jhoicas/ventas-pos-api/internal/domain/entity"
)

func branchFixture() (*usecase.BranchUseCase, *memBranches, *memBranchCtx) {
	m := &memBranches{
		branches: map[string]*entity.Branch{
			"b-1": {ID: "b-1", CompanyID: "c-1", Name: "Centro"},
			"b-2": {ID: "b-2", CompanyID: "c-1", Name: "Norte"},
			"b-x": {ID: "b-x", CompanyID: "c-2", Name: "Ajena"},
		},
		registers: map[string]*entity.CashRegister{
			"r-1": {ID: "r-1", BranchID: "b-1", CompanyID: "c-1", Name: "Caja 1", Status: entity.RegisterOpen},
			"r-2": {ID: "r-2", BranchID: "b-2", CompanyID: "c-1", Name: "Caja 2", Status: ""},
		},
	}
	store := &memBranchCtx{data: map[string]entity.BranchContext{}}
	return usecase.NewBranchUseCase(m, memRegisters{m: m}, store), m, store
}

func TestBranch_SeleccionarYConsultar(t *testing.T) {
	uc, m, store := branchFixture()
	ctx := context.Background()

	_, err := uc.CurrentContext(ctx, "c-1", "u-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	sel, err := uc.SelectBranch(ctx, "c-1", "u-1", dto.SelectBranchRequest{BranchID: "b-1", CashRegisterID: "r-1"})
	require.NoError(t, err)
	assert.Equal(t, "Centro", sel.Branch.Name)
	assert.Equal(t, entity.RegisterOpen, sel.CashRegister.Status)

	m.registers["r-1"].Status = entity.RegisterClosed
	cur, err := uc.CurrentContext(ctx, "c-1", "u-1")
	require.NoError(t, err)
	assert.Equal(t, entity.RegisterClosed, cur.CashRegister.Status, "el estado de la caja se lee en vivo")

	delete(m.branches, "b-1")
	_, err = uc.CurrentContext(ctx, "c-1", "u-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, store.data, "un contexto inválido se limpia")
}

func TestBranch_Validaciones(t *testing.T) {
	uc, _, _ := branchFixture()
	ctx := context.Background()

	_, err := uc.SelectBranch(ctx, "c-1", "u-1", dto.SelectBranchRequest{BranchID: "b-1", CashRegisterID: "r-2"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "la caja debe ser de la sucursal")
	_, err = uc.SelectBranch(ctx, "c-1", "u-1", dto.SelectBranchRequest{BranchID: "b-x", CashRegisterID: "r-1"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	st, err := uc.RegisterStatus(ctx, "c-1", "r-2")
	require.NoError(t, err)
	assert.Equal(t, entity.RegisterClosed, st.Status, "estado vacío se reporta como cerrada")
	_, err = uc.RegisterStatus(ctx, "c-2", "r-2")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	list, err := uc.List("c-1")
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
