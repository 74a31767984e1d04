package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pharaujojr/dashboard-karin/internal/domain"
	"github.com/pharaujojr/dashboard-karin/internal/domain/entity"
	"github.com/pharaujojr/dashboard-karin/internal/domain/repository"
)

const columnasMeta = "id, filial, valor_meta, data_inicio, data_fim, activa, descripcion, created_at, updated_at"

// MetaRepositoryPG implementa repository.MetaRepository sobre la tabla metas.
type MetaRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewMetaRepository crea el repositorio de metas.
func NewMetaRepository(pool *pgxpool.Pool) *MetaRepositoryPG {
	return &MetaRepositoryPG{pool: pool}
}

var _ repository.MetaRepository = (*MetaRepositoryPG)(nil)

// Crear inserta una meta nueva. Una segunda meta con la misma filial y el
// mismo rango de fechas devuelve domain.ErrDuplicate.
func (r *MetaRepositoryPG) Crear(ctx context.Context, meta *entity.Meta) error {
	query := `
		INSERT INTO metas (` + columnasMeta + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.pool.Exec(ctx, query,
		meta.ID, meta.Filial, meta.ValorMeta, meta.DataInicio, meta.DataFim,
		meta.Activa, meta.Descripcion, meta.CreatedAt, meta.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ya existe una meta para %s en ese período", domain.ErrDuplicate, meta.Filial)
		}
		return fmt.Errorf("crear meta: %w", err)
	}
	return nil
}

// Actualizar guarda los cambios de una meta existente.
func (r *MetaRepositoryPG) Actualizar(ctx context.Context, meta *entity.Meta) error {
	query := `
		UPDATE metas
		SET valor_meta = $2, data_inicio = $3, data_fim = $4,
		    activa = $5, descripcion = $6, updated_at = $7
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query,
		meta.ID, meta.ValorMeta, meta.DataInicio, meta.DataFim,
		meta.Activa, meta.Descripcion, meta.UpdatedAt)
	if err != nil {
		return fmt.Errorf("actualizar meta %s: %w", meta.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// PorID busca una meta, nil sin error si no existe.
func (r *MetaRepositoryPG) PorID(ctx context.Context, id string) (*entity.Meta, error) {
	query := `SELECT ` + columnasMeta + ` FROM metas WHERE id = $1`

	meta, err := escanearMeta(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("meta %s: %w", id, err)
	}
	return meta, nil
}

// ActivasPorFilialesYPeriodo metas activas cuyo rango intersecta el período,
// restringidas al conjunto de filiales (vacío = todas). Más recientes primero
// para que la primera de cada filial sea la vigente.
func (r *MetaRepositoryPG) ActivasPorFilialesYPeriodo(ctx context.Context, filiales []string, inicio, fim time.Time) ([]*entity.Meta, error) {
	if filiales == nil {
		filiales = []string{}
	}
	query := `
		SELECT ` + columnasMeta + `
		FROM metas
		WHERE activa
		  AND (cardinality($1::text[]) = 0 OR filial = ANY($1))
		  AND data_inicio <= $3
		  AND data_fim >= $2
		ORDER BY filial, data_inicio DESC`

	return r.consultarMetas(ctx, "metas activas por período", query, filiales, inicio, fim)
}

// ListarActivas todas las metas activas.
func (r *MetaRepositoryPG) ListarActivas(ctx context.Context) ([]*entity.Meta, error) {
	query := `
		SELECT ` + columnasMeta + `
		FROM metas
		WHERE activa
		ORDER BY filial, data_inicio DESC`

	return r.consultarMetas(ctx, "metas activas", query)
}

// PorFilial histórico completo de la filial, más reciente primero.
func (r *MetaRepositoryPG) PorFilial(ctx context.Context, filial string) ([]*entity.Meta, error) {
	query := `
		SELECT ` + columnasMeta + `
		FROM metas
		WHERE filial = $1
		ORDER BY data_inicio DESC`

	return r.consultarMetas(ctx, "metas por filial", query, filial)
}

func (r *MetaRepositoryPG) consultarMetas(ctx context.Context, nombre, query string, args ...any) ([]*entity.Meta, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", nombre, err)
	}
	defer rows.Close()

	var metas []*entity.Meta
	for rows.Next() {
		meta, err := escanearMeta(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", nombre, err)
		}
		metas = append(metas, meta)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", nombre, err)
	}
	return metas, nil
}

func escanearMeta(row pgx.Row) (*entity.Meta, error) {
	var m entity.Meta
	err := row.Scan(&m.ID, &m.Filial, &m.ValorMeta, &m.DataInicio, &m.DataFim,
		&m.Activa, &m.Descripcion, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
