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

func TestProductRequest_CreateRequiereSucursal(t *testing.T) {
	s := apptest.NewStore()
	uc := usecase.NewProductRequestUseCase(s.ProductRequestRepo(), s.UserRepo(), s.BranchRepo())
	emp := s.AddUser("emp", entity.RoleEmployee)

	_, err := uc.Create(context.Background(), emp.ID, dto.CreateProductRequestInput{ProductName: "Azúcar", Quantity: 2})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	b := s.AddBranch("Norte")
	assign(t, s, emp.ID, b.ID)
	out, err := uc.Create(context.Background(), emp.ID, dto.CreateProductRequestInput{ProductName: "Azúcar", Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, "medium", out.Urgency, "urgencia por defecto")
	assert.Equal(t, "Norte", out.Branch.Name)

	_, err = uc.Create(context.Background(), emp.ID, dto.CreateProductRequestInput{ProductName: "Azúcar", Quantity: 2, Urgency: "urgentísimo"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductRequest_DecideYStats(t *testing.T) {
	s := apptest.NewStore()
	uc := usecase.NewProductRequestUseCase(s.ProductRequestRepo(), s.UserRepo(), s.BranchRepo())
	ctx := context.Background()
	b := s.AddBranch("Norte")
	emp := s.AddUser("emp", entity.RoleEmployee)
	assign(t, s, emp.ID, b.ID)

	var ids []string
	for _, u := range []string{"high", "high", "low", "medium", "medium", "medium"} {
		out, err := uc.Create(ctx, emp.ID, dto.CreateProductRequestInput{ProductName: "P", Quantity: 1, Urgency: u})
		require.NoError(t, err)
		ids = append(ids, out.ID)
	}

	decided, err := uc.Decide(ctx, ids[0], dto.DecisionRequest{Status: "fulfilled", AdminResponse: "enviado"})
	require.NoError(t, err)
	assert.Equal(t, "fulfilled", decided.Status)
	assert.Equal(t, "enviado", decided.AdminResponse)
	assert.NotNil(t, decided.ResponseDate)

	_, err = uc.Decide(ctx, ids[1], dto.DecisionRequest{Status: "rejected"})
	require.NoError(t, err)

	_, err = uc.Decide(ctx, ids[2], dto.DecisionRequest{Status: "pending"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Decide(ctx, "nope", dto.DecisionRequest{Status: "approved"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	stats, err := uc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, stats.Total)
	assert.Equal(t, 4, stats.Pending)
	assert.Equal(t, 1, stats.Fulfilled)
	assert.Equal(t, 1, stats.Rejected)
	assert.Equal(t, dto.UrgencyCounts{High: 0, Medium: 3, Low: 1}, stats.PendingByUrgency)
	assert.Len(t, stats.RecentRequests, 5)

	filtered, err := uc.List(ctx, dto.ProductRequestFilter{Status: "pending", Urgency: "medium"})
	require.NoError(t, err)
	assert.Len(t, filtered, 3)

	_, err = uc.List(ctx, dto.ProductRequestFilter{Status: "archivado"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	mine, err := uc.ListMine(ctx, emp.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 6)
}
