package get_hangar_profile

import (
	"context"

	"github.com/hangarapp/hangar-booking/internal/service/tenants/models"
)

type TenantsService interface {
	GetPublicProfile(ctx context.Context, slug string) (*models.PublicProfileResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
