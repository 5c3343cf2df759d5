package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retailflow-api/internal/application/apptest"
	"github.com/jhoicas/retailflow-api/internal/application/dto"
	"github.com/jhoicas/retailflow-api/internal/application/usecase"
	"github.com/jhoicas/retailflow-api/internal/domain"
	"github.com/jhoicas/retailflow-api/internal/domain/entity"
)

func newDocumentUC(s *apptest.Store) (*usecase.DocumentUseCase, *memFiles) {
	files := newMemFiles()
	return usecase.NewDocumentUseCase(s.DocumentRepo(), apptest.TxRunner{S: s}, files, nil), files
}

func TestDocument_UnoPendienteOAprobadoALaVez(t *testing.T) {
	s := apptest.NewStore()
	uc, _ := newDocumentUC(s)
	ctx := context.Background()
	u := s.AddUser("cli", entity.RoleCustomer)
	admin := s.AddUser("admin", entity.RoleAdmin)

	first, err := uc.Submit(ctx, u.ID, pdfUpload("cedula.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "pending", first.Status)

	_, err = uc.Submit(ctx, u.ID, pdfUpload("otra.pdf"))
	assert.ErrorIs(t, err, domain.ErrDocumentOutstanding, "pendiente bloquea")

	_, err = uc.Review(ctx, admin.ID, first.ID, dto.DecisionRequest{Status: "rejected"})
	require.NoError(t, err)

	second, err := uc.Submit(ctx, u.ID, pdfUpload("cedula-v2.pdf"))
	require.NoError(t, err, "tras un rechazo se puede reenviar")

	reviewed, err := uc.Review(ctx, admin.ID, second.ID, dto.DecisionRequest{Status: "approved"})
	require.NoError(t, err)
	require.NotNil(t, reviewed.ReviewedBy)
	assert.Equal(t, admin.ID, *reviewed.ReviewedBy)
	assert.NotNil(t, reviewed.ReviewDate)
	assert.True(t, s.Users[u.ID].IsVerified)

	_, err = uc.Submit(ctx, u.ID, pdfUpload("tercera.pdf"))
	assert.ErrorIs(t, err, domain.ErrDocumentOutstanding, "aprobado bloquea")

	mine, err := uc.ListMine(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}

func TestDocument_Review(t *testing.T) {
	s := apptest.NewStore()
	uc, _ := newDocumentUC(s)
	ctx := context.Background()
	u := s.AddUser("cli", entity.RoleCustomer)
	doc, err := uc.Submit(ctx, u.ID, pdfUpload("cedula.pdf"))
	require.NoError(t, err)

	_, err = uc.Review(ctx, "admin", doc.ID, dto.DecisionRequest{Status: "fulfilled"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Review(ctx, "admin", "nope", dto.DecisionRequest{Status: "approved"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	pending, err := uc.ListPending(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestDocument_AprobacionAtomica(t *testing.T) {
	s := apptest.NewStore()
	uc, _ := newDocumentUC(s)
	ctx := context.Background()
	u := s.AddUser("cli", entity.RoleCustomer)
	doc, err := uc.Submit(ctx, u.ID, pdfUpload("cedula.pdf"))
	require.NoError(t, err)
	s.Fail(apptest.OpUserSetVerified, errors.New("update falló"))

	_, err = uc.Review(ctx, "admin", doc.ID, dto.DecisionRequest{Status: "approved"})
	require.Error(t, err)

	assert.Equal(t, entity.StatusPending, s.Documents[doc.ID].Status, "el documento sigue pendiente")
	assert.False(t, s.Users[u.ID].IsVerified)
}

func TestDocument_DeleteBorraArchivo(t *testing.T) {
	s := apptest.NewStore()
	uc, files := newDocumentUC(s)
	ctx := context.Background()
	u := s.AddUser("cli", entity.RoleCustomer)
	doc, err := uc.Submit(ctx, u.ID, pdfUpload("cedula.pdf"))
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, doc.ID))
	assert.Empty(t, s.Documents)
	assert.Equal(t, []string{doc.FilePath}, files.removed)

	assert.ErrorIs(t, uc.Delete(ctx, doc.ID), domain.ErrNotFound)
}
