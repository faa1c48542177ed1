package settings

import (
	"context"

	"trainerhub/internal/domain"
)

type settingsRepository interface {
	All(ctx context.Context) ([]domain.PlatformSetting, error)
	Upsert(ctx context.Context, rows []domain.PlatformSetting) error
}
