package usecase

import (
	"github.com/jhoicas/retailflow-api/internal/application/dto"
	"github.com/jhoicas/retailflow-api/internal/domain/entity"
)

func toBranchRef(ref *entity.BranchRef) *dto.BranchRefResponse {
	if ref == nil {
		return nil
	}
	return &dto.BranchRefResponse{ID: ref.ID, Name: ref.Name, Location: ref.Location}
}

func toProductResponse(p *entity.Product, branch *entity.BranchRef) dto.ProductResponse {
	return dto.ProductResponse{
		ID:                 p.ID,
		Name:               p.Name,
		Description:        p.Description,
		Image:              p.Image,
		OriginalPrice:      p.OriginalPrice,
		DiscountPercentage: p.DiscountPercentage,
		DiscountPrice:      p.DiscountPrice,
		FinalPrice:         p.FinalPrice(),
		Branch:             toBranchRef(branch),
		Stock:              p.Stock,
		IsActive:           p.IsActive,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

func toUserResponse(u *entity.User, branch *entity.BranchRef) dto.UserResponse {
	return dto.UserResponse{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		Role:           u.Role.String(),
		AssignedBranch: toBranchRef(branch),
		WalletAmount:   u.WalletAmount,
		IsVerified:     u.IsVerified,
		CreatedAt:      u.CreatedAt,
	}
}

func toEmployeeSummaries(users []*entity.User) []dto.EmployeeSummary {
	out := make([]dto.EmployeeSummary, 0, len(users))
	for _, u := range users {
		out = append(out, dto.EmployeeSummary{ID: u.ID, Name: u.Name, Email: u.Email})
	}
	return out
}

func toDocumentResponse(d *entity.Document) dto.DocumentResponse {
	return dto.DocumentResponse{
		ID:             d.ID,
		UserID:         d.UserID,
		FileName:       d.FileName,
		FilePath:       d.FilePath,
		FileType:       d.FileType,
		Status:         string(d.Status),
		SubmissionDate: d.SubmissionDate,
		ReviewDate:     d.ReviewDate,
		ReviewedBy:     d.ReviewedBy,
	}
}

func toProductRequestResponse(pr *entity.ProductRequest, branch *entity.BranchRef) dto.ProductRequestResponse {
	return dto.ProductRequestResponse{
		ID:            pr.ID,
		RequestedBy:   pr.RequestedBy,
		Branch:        toBranchRef(branch),
		ProductName:   pr.ProductName,
		Quantity:      pr.Quantity,
		Category:      pr.Category,
		Description:   pr.Description,
		Urgency:       string(pr.Urgency),
		Status:        string(pr.Status),
		AdminResponse: pr.AdminResponse,
		ResponseDate:  pr.ResponseDate,
		CreatedAt:     pr.CreatedAt,
	}
}

// refOf busca la sucursal en el mapa devuelto por GetRefs.
func refOf(refs map[string]entity.BranchRef, id string) *entity.BranchRef {
	if ref, ok := refs[id]; ok {
		return &ref
	}
	return nil
}
