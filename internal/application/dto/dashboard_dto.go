package dto

import (
	"github.com/shopspring/decimal"

	"github.com/pharaujojr/dashboard-karin/internal/domain/ventas"
)

// DashboardRequest parámetros de consulta del dashboard. dataInicio y dataFim
// son obligatorios (YYYY-MM-DD); filial puede repetirse para seleccionar
// varias filiales y vacío significa todas.
type DashboardRequest struct {
	Filiales      []string `query:"filial"`
	Vendedor      string   `query:"vendedor"`
	DataInicio    string   `query:"dataInicio"`
	DataFim       string   `query:"dataFim"`
	AgruparPorMes bool     `query:"agruparPorMes"`
	TipoPeriodo   string   `query:"tipoPeriodo"`
}

// DashboardDTO respuesta completa del dashboard. Las claves JSON conservan el
// contrato original del frontend (portugués).
type DashboardDTO struct {
	TotalVendas     decimal.Decimal            `json:"totalVendas"`
	NumeroVendas    int64                      `json:"numeroVendas"`
	TicketMedio     decimal.Decimal            `json:"ticketMedio"`
	MaxResponse     *MaxDTO                    `json:"maxResponse,omitempty"`
	DadosGrafico    []ventas.PuntoSerie        `json:"dadosGrafico"`
	Top10Vendedores []ventas.EntradaRanking    `json:"top10Vendedores"`
	Filiais         []string                   `json:"filiais"`
	Vendedores      []string                   `json:"vendedores"`
	Comparison      *ComparisonDTO             `json:"comparison,omitempty"`
	Metas           map[string]decimal.Decimal `json:"metas,omitempty"`
}

// MaxDTO bloque de hechos "máximos" del período: mayor venta individual,
// vendedor con más ventas y unidad (filial) con más ventas.
type MaxDTO struct {
	MaiorVenda            decimal.Decimal `json:"maiorVenda"`
	ClienteMaiorVenda     string          `json:"clienteMaiorVenda"`
	VendedorMaiorVenda    string          `json:"vendedorMaiorVenda"`
	VendedorQueMaisVendeu string          `json:"vendedorQueMaisVendeu"`
	TotalVendedorMax      decimal.Decimal `json:"totalVendedorMax"`
	UnidadeQueMaisVendeu  string          `json:"unidadeQueMaisVendeu"`
	TotalUnidadeMax       decimal.Decimal `json:"totalUnidadeMax"`
}

// ComparisonDTO variaciones porcentuales contra el período anterior. Se omite
// por completo cuando el período es personalizado o no tiene tipo.
type ComparisonDTO struct {
	TotalVendasVariacao  *decimal.Decimal `json:"totalVendasVariacao"`
	NumeroVendasVariacao *decimal.Decimal `json:"numeroVendasVariacao"`
	TicketMedioVariacao  *decimal.Decimal `json:"ticketMedioVariacao"`
}

// PlacarRequest parámetros del placar de concurso; fechas vacías usan el
// período de campaña configurado.
type PlacarRequest struct {
	DataInicio string `query:"dataInicio"`
	DataFim    string `query:"dataFim"`
	Periodo    string `query:"periodo"`
}

// PlacarDTO respuesta del modo concurso: podio de vendedores con su mejor
// filial, podio de unidades espejo, y el resto del ranking (4º en adelante)
// con variación por vendedor.
type PlacarDTO struct {
	PodiumVendedores []ventas.EntradaPodio       `json:"podiumVendedores"`
	PodiumUnidades   []ventas.EntradaPodioFilial `json:"podiumUnidades"`
	Ranking          []ventas.EntradaRanking     `json:"ranking"`
	DataInicio       string                      `json:"dataInicio"`
	DataFim          string                      `json:"dataFim"`
}
