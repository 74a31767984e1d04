package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Meta objetivo de ventas de una filial para un rango de fechas.
// Única por (filial, data_inicio, data_fim); las metas desactivadas se
// conservan como histórico.
type Meta struct {
	ID          string
	Filial      string
	ValorMeta   decimal.Decimal
	DataInicio  time.Time
	DataFim     time.Time
	Activa      bool
	Descripcion string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
