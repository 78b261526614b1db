package models

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// BranchResponse филиал
type BranchResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"branch_name"`
}

// CapsterResponse мастер филиала
type CapsterResponse struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Image    *string         `json:"image,omitempty"`
	BranchID int64           `json:"branch_id"`
	Branch   *BranchResponse `json:"branch,omitempty"`
}

// ServiceResponse услуга
type ServiceResponse struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Duration int             `json:"duration"`
	BranchID *int64          `json:"branch_id,omitempty"`
}

// FromDomainBranches конвертирует список филиалов в DTO
func FromDomainBranches(branches []*domain.Branch) []BranchResponse {
	resp := make([]BranchResponse, len(branches))
	for i, b := range branches {
		resp[i] = BranchResponse{ID: b.ID, Name: b.Name}
	}
	return resp
}

// FromDomainCapsters конвертирует мастеров филиала в DTO
func FromDomainCapsters(capsters []*domain.Capster, branch *domain.Branch) []CapsterResponse {
	resp := make([]CapsterResponse, len(capsters))
	for i, c := range capsters {
		resp[i] = CapsterResponse{
			ID:       c.ID,
			Name:     c.Name,
			Image:    c.Image,
			BranchID: c.BranchID,
		}
		if branch != nil {
			resp[i].Branch = &BranchResponse{ID: branch.ID, Name: branch.Name}
		}
	}
	return resp
}

// FromDomainServices конвертирует список услуг в DTO
func FromDomainServices(services []*domain.Service) []ServiceResponse {
	resp := make([]ServiceResponse, len(services))
	for i, s := range services {
		resp[i] = ServiceResponse{
			ID:       s.ID,
			Name:     s.Name,
			Price:    s.Price,
			Duration: s.Duration,
			BranchID: s.BranchID,
		}
	}
	return resp
}
