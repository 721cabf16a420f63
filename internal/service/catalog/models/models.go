package models

import (
	"time"

	"github.com/avdeevsv/GBS-QueueService/internal/domain"
)

// Request модели

// ReorderRequest запрос на смену порядка пакетов. Список содержит ID всех
// активных пакетов в новом порядке.
type ReorderRequest struct {
	PackageIDs []string `json:"packageIds"`
}

// Response модели

// PackageResponse пакет каталога
type PackageResponse struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Price             float64   `json:"price"`
	EstimatedDuration int       `json:"estimatedDuration"`
	Active            bool      `json:"active"`
	Position          int       `json:"position"`
	CreatedAt         time.Time `json:"createdAt"`
}

// PackageListResponse список пакетов
type PackageListResponse struct {
	Packages []PackageResponse `json:"packages"`
}

// FromDomainPackage конвертирует domain модель в DTO
func FromDomainPackage(p *domain.Package) *PackageResponse {
	if p == nil {
		return nil
	}

	return &PackageResponse{
		ID:                p.ID,
		Name:              p.Name,
		Price:             p.Price,
		EstimatedDuration: p.Duration(),
		Active:            p.Active,
		Position:          p.Position,
		CreatedAt:         p.CreatedAt,
	}
}

// FromDomainPackageList конвертирует список domain моделей в DTO
func FromDomainPackageList(packages []*domain.Package) *PackageListResponse {
	resp := &PackageListResponse{
		Packages: make([]PackageResponse, 0, len(packages)),
	}

	for _, p := range packages {
		if packageResp := FromDomainPackage(p); packageResp != nil {
			resp.Packages = append(resp.Packages, *packageResp)
		}
	}

	return resp
}
