package repository

import (
	"context"
	"time"

	"github.com/pharaujojr/dashboard-karin/internal/domain/entity"
)

// MetaRepository persistencia de metas de venta por filial.
type MetaRepository interface {
	Crear(ctx context.Context, meta *entity.Meta) error
	Actualizar(ctx context.Context, meta *entity.Meta) error

	// PorID devuelve nil sin error si la meta no existe.
	PorID(ctx context.Context, id string) (*entity.Meta, error)

	// ActivasPorFilialesYPeriodo metas activas cuyo rango intersecta el
	// período consultado, para el conjunto de filiales dado.
	ActivasPorFilialesYPeriodo(ctx context.Context, filiales []string, inicio, fim time.Time) ([]*entity.Meta, error)

	ListarActivas(ctx context.Context) ([]*entity.Meta, error)

	// PorFilial histórico completo de la filial, más reciente primero.
	PorFilial(ctx context.Context, filial string) ([]*entity.Meta, error)
}
