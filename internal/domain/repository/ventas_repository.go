package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pharaujojr/dashboard-karin/internal/domain/ventas"
)

// VentaMax fila de la mayor venta del período (primera fila de la consulta
// descendente por monto).
type VentaMax struct {
	Valor    decimal.Decimal
	Cliente  string
	Vendedor string
}

// VentasRepository puerto de solo lectura sobre la base de ventas. Los
// filtros filial y vendedor son opcionales: nil significa "sin restricción".
// El filtro de vendedor compara sin distinguir mayúsculas. Solo cuentan las
// ventas con pago registrado.
//
// Períodos sin filas devuelven cero/lista vacía, nunca error.
type VentasRepository interface {
	// SumaVentas total vendido en el período.
	SumaVentas(ctx context.Context, filial, vendedor *string, inicio, fim time.Time) (decimal.Decimal, error)

	// ContarVentas número de ventas del período.
	ContarVentas(ctx context.Context, filial, vendedor *string, inicio, fim time.Time) (int64, error)

	// TicketMedio promedio ponderado sobre todas las filas del filtro,
	// redondeado a 2 decimales. Solo se usa en el camino sin filtro de filial.
	TicketMedio(ctx context.Context, filial, vendedor *string, inicio, fim time.Time) (decimal.Decimal, error)

	// MayorVenta la venta individual más alta, o nil si no hay filas.
	MayorVenta(ctx context.Context, filial, vendedor *string, inicio, fim time.Time) (*VentaMax, error)

	// TopVendedores totales por vendedor, descendentes. filiales vacío = todas;
	// con varias filiales el total ya viene fusionado por vendedor.
	TopVendedores(ctx context.Context, filiales []string, inicio, fim time.Time) ([]ventas.VendedorTotal, error)

	// TopFiliales totales por filial, descendentes, opcionalmente restringidos
	// a un conjunto de filiales y/o a un vendedor.
	TopFiliales(ctx context.Context, filiales []string, vendedor *string, inicio, fim time.Time) ([]ventas.FilialTotal, error)

	// SerieDiaria totales por día dentro del período.
	SerieDiaria(ctx context.Context, filial, vendedor *string, inicio, fim time.Time) ([]ventas.FilaSerie, error)

	// SerieMensual totales por mes (primer día del mes como fecha).
	SerieMensual(ctx context.Context, filial, vendedor *string, inicio, fim time.Time) ([]ventas.FilaSerie, error)

	// Filiales lista de filiales distintas, ordenadas.
	Filiales(ctx context.Context) ([]string, error)

	// Vendedores lista de vendedores distintos (en mayúsculas), ordenados;
	// opcionalmente restringida a una filial.
	Vendedores(ctx context.Context, filial *string) ([]string, error)
}
