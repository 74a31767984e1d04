package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/pharaujojr/dashboard-karin/internal/domain/repository"
	"github.com/pharaujojr/dashboard-karin/internal/domain/ventas"
)

// conPago restringe todas las consultas a ventas con pago registrado.
const conPago = "EXISTS (SELECT 1 FROM financeiro_pagamentos p WHERE p.cliente_id = v.id)"

// VentasRepositoryPG implementa repository.VentasRepository sobre las tablas
// financeiro_clientes y financeiro_pagamentos.
type VentasRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewVentasRepository crea el repositorio de ventas.
func NewVentasRepository(pool *pgxpool.Pool) *VentasRepositoryPG {
	return &VentasRepositoryPG{pool: pool}
}

var _ repository.VentasRepository = (*VentasRepositoryPG)(nil)

// SumaVentas total vendido en el período, 0 si no hay filas.
func (r *VentasRepositoryPG) SumaVentas(ctx context.Context, filial, vendedor *string, inicio, fim time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(v.valor_debito), 0)
		FROM financeiro_clientes v
		WHERE ($1::text IS NULL OR v.filial = $1)
		  AND ($2::text IS NULL OR UPPER(v.vendedor) = $2)
		  AND v.data BETWEEN $3 AND $4
		  AND ` + conPago

	var suma decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, filial, vendedor, inicio, fim).Scan(&suma); err != nil {
		return decimal.Zero, fmt.Errorf("suma de ventas: %w", err)
	}
	return suma, nil
}

// ContarVentas número de ventas del período.
func (r *VentasRepositoryPG) ContarVentas(ctx context.Context, filial, vendedor *string, inicio, fim time.Time) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM financeiro_clientes v
		WHERE ($1::text IS NULL OR v.filial = $1)
		  AND ($2::text IS NULL OR UPPER(v.vendedor) = $2)
		  AND v.data BETWEEN $3 AND $4
		  AND ` + conPago

	var cantidad int64
	if err := r.pool.QueryRow(ctx, query, filial, vendedor, inicio, fim).Scan(&cantidad); err != nil {
		return 0, fmt.Errorf("contar ventas: %w", err)
	}
	return cantidad, nil
}

// TicketMedio promedio por venta redondeado a 2 decimales, 0 si no hay filas.
func (r *VentasRepositoryPG) TicketMedio(ctx context.Context, filial, vendedor *string, inicio, fim time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(ROUND(AVG(v.valor_debito), 2), 0)
		FROM financeiro_clientes v
		WHERE ($1::text IS NULL OR v.filial = $1)
		  AND ($2::text IS NULL OR UPPER(v.vendedor) = $2)
		  AND v.data BETWEEN $3 AND $4
		  AND ` + conPago

	var ticket decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, filial, vendedor, inicio, fim).Scan(&ticket); err != nil {
		return decimal.Zero, fmt.Errorf("ticket medio: %w", err)
	}
	return ticket, nil
}

// MayorVenta la venta individual más alta del período, nil si no hay filas.
func (r *VentasRepositoryPG) MayorVenta(ctx context.Context, filial, vendedor *string, inicio, fim time.Time) (*repository.VentaMax, error) {
	query := `
		SELECT v.valor_debito, COALESCE(v.nome, ''), COALESCE(v.vendedor, '')
		FROM financeiro_clientes v
		WHERE ($1::text IS NULL OR v.filial = $1)
		  AND ($2::text IS NULL OR UPPER(v.vendedor) = $2)
		  AND v.data BETWEEN $3 AND $4
		  AND ` + conPago + `
		ORDER BY v.valor_debito DESC
		LIMIT 1`

	var max repository.VentaMax
	err := r.pool.QueryRow(ctx, query, filial, vendedor, inicio, fim).
		Scan(&max.Valor, &max.Cliente, &max.Vendedor)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("mayor venta: %w", err)
	}
	return &max, nil
}

// TopVendedores totales por vendedor, descendentes. Con varias filiales el
// GROUP BY ya fusiona los totales del mismo vendedor.
func (r *VentasRepositoryPG) TopVendedores(ctx context.Context, filiales []string, inicio, fim time.Time) ([]ventas.VendedorTotal, error) {
	if filiales == nil {
		filiales = []string{}
	}
	query := `
		SELECT v.vendedor, SUM(v.valor_debito) AS total
		FROM financeiro_clientes v
		WHERE (cardinality($1::text[]) = 0 OR v.filial = ANY($1))
		  AND v.data BETWEEN $2 AND $3
		  AND v.vendedor IS NOT NULL
		  AND ` + conPago + `
		GROUP BY v.vendedor
		HAVING SUM(v.valor_debito) > 0
		ORDER BY total DESC`

	rows, err := r.pool.Query(ctx, query, filiales, inicio, fim)
	if err != nil {
		return nil, fmt.Errorf("top vendedores: %w", err)
	}
	defer rows.Close()

	var totales []ventas.VendedorTotal
	for rows.Next() {
		var vt ventas.VendedorTotal
		if err := rows.Scan(&vt.Vendedor, &vt.Total); err != nil {
			return nil, fmt.Errorf("top vendedores: scan: %w", err)
		}
		totales = append(totales, vt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("top vendedores: %w", err)
	}
	return totales, nil
}

// TopFiliales totales por filial, descendentes.
func (r *VentasRepositoryPG) TopFiliales(ctx context.Context, filiales []string, vendedor *string, inicio, fim time.Time) ([]ventas.FilialTotal, error) {
	if filiales == nil {
		filiales = []string{}
	}
	query := `
		SELECT v.filial, SUM(v.valor_debito) AS total
		FROM financeiro_clientes v
		WHERE (cardinality($1::text[]) = 0 OR v.filial = ANY($1))
		  AND ($2::text IS NULL OR UPPER(v.vendedor) = $2)
		  AND v.data BETWEEN $3 AND $4
		  AND ` + conPago + `
		GROUP BY v.filial
		ORDER BY total DESC`

	rows, err := r.pool.Query(ctx, query, filiales, vendedor, inicio, fim)
	if err != nil {
		return nil, fmt.Errorf("top filiales: %w", err)
	}
	defer rows.Close()

	var totales []ventas.FilialTotal
	for rows.Next() {
		var ft ventas.FilialTotal
		if err := rows.Scan(&ft.Filial, &ft.Total); err != nil {
			return nil, fmt.Errorf("top filiales: scan: %w", err)
		}
		totales = append(totales, ft)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("top filiales: %w", err)
	}
	return totales, nil
}

// SerieDiaria totales por día, ascendentes por fecha.
func (r *VentasRepositoryPG) SerieDiaria(ctx context.Context, filial, vendedor *string, inicio, fim time.Time) ([]ventas.FilaSerie, error) {
	query := `
		SELECT v.data, SUM(v.valor_debito) AS total
		FROM financeiro_clientes v
		WHERE ($1::text IS NULL OR v.filial = $1)
		  AND ($2::text IS NULL OR UPPER(v.vendedor) = $2)
		  AND v.data BETWEEN $3 AND $4
		  AND ` + conPago + `
		GROUP BY v.data
		ORDER BY v.data`

	return r.consultarSerie(ctx, "serie diaria", query, filial, vendedor, inicio, fim)
}

// SerieMensual totales por mes; la fecha de cada fila es el primer día del mes.
func (r *VentasRepositoryPG) SerieMensual(ctx context.Context, filial, vendedor *string, inicio, fim time.Time) ([]ventas.FilaSerie, error) {
	query := `
		SELECT DATE_TRUNC('month', v.data)::date AS mes, SUM(v.valor_debito) AS total
		FROM financeiro_clientes v
		WHERE ($1::text IS NULL OR v.filial = $1)
		  AND ($2::text IS NULL OR UPPER(v.vendedor) = $2)
		  AND v.data BETWEEN $3 AND $4
		  AND ` + conPago + `
		GROUP BY DATE_TRUNC('month', v.data)
		ORDER BY mes`

	return r.consultarSerie(ctx, "serie mensual", query, filial, vendedor, inicio, fim)
}

func (r *VentasRepositoryPG) consultarSerie(ctx context.Context, nombre, query string, filial, vendedor *string, inicio, fim time.Time) ([]ventas.FilaSerie, error) {
	rows, err := r.pool.Query(ctx, query, filial, vendedor, inicio, fim)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", nombre, err)
	}
	defer rows.Close()

	var serie []ventas.FilaSerie
	for rows.Next() {
		var fila ventas.FilaSerie
		if err := rows.Scan(&fila.Fecha, &fila.Valor); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", nombre, err)
		}
		serie = append(serie, fila)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", nombre, err)
	}
	return serie, nil
}

// Filiales lista de filiales distintas, ordenadas.
func (r *VentasRepositoryPG) Filiales(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT v.filial
		FROM financeiro_clientes v
		WHERE v.filial IS NOT NULL
		ORDER BY v.filial`

	return r.consultarNombres(ctx, "filiales", query)
}

// Vendedores lista de vendedores distintos en mayúsculas, ordenados.
func (r *VentasRepositoryPG) Vendedores(ctx context.Context, filial *string) ([]string, error) {
	query := `
		SELECT DISTINCT UPPER(v.vendedor)
		FROM financeiro_clientes v
		WHERE ($1::text IS NULL OR v.filial = $1)
		  AND v.vendedor IS NOT NULL
		ORDER BY UPPER(v.vendedor)`

	return r.consultarNombres(ctx, "vendedores", query, filial)
}

func (r *VentasRepositoryPG) consultarNombres(ctx context.Context, nombre, query string, args ...any) ([]string, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", nombre, err)
	}
	defer rows.Close()

	var valores []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", nombre, err)
		}
		valores = append(valores, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", nombre, err)
	}
	return valores, nil
}
