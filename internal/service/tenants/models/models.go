package models

import "github.com/hangarapp/hangar-booking/internal/domain"

// PublicServiceResponse is one bookable catalog entry on the micro-site.
type PublicServiceResponse struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
}

// PublicProfileResponse is the tenant profile the public micro-site
// renders: identity plus the active catalog, nothing operational.
type PublicProfileResponse struct {
	Slug     string                  `json:"slug"`
	Name     string                  `json:"name"`
	Phone    string                  `json:"phone,omitempty"`
	Services []PublicServiceResponse `json:"services"`
}

// FromDomainProfile builds the public profile DTO.
func FromDomainProfile(t *domain.Tenant, services []*domain.Service) *PublicProfileResponse {
	resp := &PublicProfileResponse{
		Slug:     t.Slug,
		Name:     t.Name,
		Phone:    t.Phone,
		Services: make([]PublicServiceResponse, 0, len(services)),
	}
	for _, s := range services {
		resp.Services = append(resp.Services, PublicServiceResponse{
			ID:              s.ID,
			Name:            s.Name,
			Price:           s.Price,
			DurationMinutes: s.DurationMinutes,
		})
	}
	return resp
}
