package dto

import "github.com/shopspring/decimal"

// CrearMetaRequest alta de una meta de ventas para una filial.
type CrearMetaRequest struct {
	Filial      string          `json:"filial"`
	ValorMeta   decimal.Decimal `json:"valorMeta"`
	DataInicio  string          `json:"dataInicio"`
	DataFim     string          `json:"dataFim"`
	Descripcion string          `json:"descricao"`
}

// ActualizarMetaRequest campos modificables de una meta; nil = sin cambio.
type ActualizarMetaRequest struct {
	ValorMeta   *decimal.Decimal `json:"valorMeta"`
	DataInicio  *string          `json:"dataInicio"`
	DataFim     *string          `json:"dataFim"`
	Descripcion *string          `json:"descricao"`
}

// MetaConsultaRequest consulta de la meta vigente en un período. filial puede
// repetirse para consultar varias filiales de una vez.
type MetaConsultaRequest struct {
	Filiales   []string `query:"filial"`
	DataInicio string   `query:"dataInicio"`
	DataFim    string   `query:"dataFim"`
}

// MetaVigenteDTO meta vigente de una filial para el período consultado.
type MetaVigenteDTO struct {
	Filial    string          `json:"filial"`
	ValorMeta decimal.Decimal `json:"valorMeta"`
}

// MetaDTO meta serializada.
type MetaDTO struct {
	ID          string          `json:"id"`
	Filial      string          `json:"filial"`
	ValorMeta   decimal.Decimal `json:"valorMeta"`
	DataInicio  string          `json:"dataInicio"`
	DataFim     string          `json:"dataFim"`
	Activa      bool            `json:"ativa"`
	Descripcion string          `json:"descricao,omitempty"`
}
