package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retailflow-api/internal/application/apptest"
	"github.com/jhoicas/retailflow-api/internal/application/dto"
	"github.com/jhoicas/retailflow-api/internal/application/usecase"
	"github.com/jhoicas/retailflow-api/internal/domain"
	"github.com/jhoicas/retailflow-api/internal/domain/entity"
)

func TestEmployee_AssignYMyBranch(t *testing.T) {
	s := apptest.NewStore()
	branches, _ := newBranchUC(s)
	uc := usecase.NewEmployeeUseCase(s.UserRepo(), s.BranchRepo(), branches)
	ctx := context.Background()
	emp := s.AddUser("emp", entity.RoleEmployee)
	customer := s.AddUser("cli", entity.RoleCustomer)
	b := s.AddBranch("Norte")

	_, err := uc.MyBranch(ctx, emp.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.AssignBranch(ctx, emp.ID, dto.AssignBranchRequest{BranchID: "nope"})
	assert.ErrorIs(t, err, domain.ErrBranchNotFound)

	_, err = uc.AssignBranch(ctx, customer.ID, dto.AssignBranchRequest{BranchID: b.ID})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	out, err := uc.AssignBranch(ctx, emp.ID, dto.AssignBranchRequest{BranchID: b.ID})
	require.NoError(t, err)
	require.NotNil(t, out.AssignedBranch)
	assert.Equal(t, "Norte", out.AssignedBranch.Name)

	mine, err := uc.MyBranch(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, mine.ID)
	assert.Len(t, mine.Employees, 1)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Norte", list[0].AssignedBranch.Name)
}
