package handler

import (
	"github.com/elegance/jewelry-catalog/internal/core/domain"
	"github.com/elegance/jewelry-catalog/internal/core/ports"
)

// --- Request → Service input ---

func toProductInput(req productRequest) ports.ProductInput {
	in := ports.ProductInput{
		Name:        req.Name,
		Image:       req.Image,
		Category:    req.Category,
		Tags:        []string(req.Tags),
		Description: req.Description,
		InStock:     req.InStock,
	}
	if req.Price != nil {
		in.Price = *req.Price
	}
	return in
}

// --- Domain → Response ---

func toAdminView(a *domain.Admin) adminView {
	return adminView{ID: a.ID, Email: a.Email, Name: a.Name, Role: a.Role}
}

func toStoreStatusResponse(s *domain.StoreStatus) storeStatusResponse {
	return storeStatusResponse{Status: s.Status, UpdatedAt: s.UpdatedAt}
}
