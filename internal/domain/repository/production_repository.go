package repository

import (
	"context"

	"github.com/IhsanMhd-mr/back-ims/internal/domain/entity"
)

// ProductionRepository puerto de plantillas y ejecuciones de producción.
type ProductionRepository interface {
	CreateTemplate(ctx context.Context, t *entity.ProductionTemplate) error
	GetTemplate(ctx context.Context, id string) (*entity.ProductionTemplate, error)
	ListTemplates(ctx context.Context) ([]*entity.ProductionTemplate, error)

	CreateRun(ctx context.Context, run *entity.ProductionRun) error
	// ListRuns más recientes primero.
	ListRuns(ctx context.Context, limit int) ([]*entity.ProductionRun, error)
	CountRuns(ctx context.Context) (int, error)

	// LockProduction serializa ejecuciones concurrentes hasta el fin de la transacción.
	LockProduction(ctx context.Context) error
}
