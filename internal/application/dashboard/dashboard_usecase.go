// Package dashboard orquesta el armado del reporte de ventas: agregados del
// período, comparación contra el período anterior, ranking de vendedores,
// series para el gráfico y metas por filial.
package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/pharaujojr/dashboard-karin/internal/application/dto"
	"github.com/pharaujojr/dashboard-karin/internal/application/usecase"
	"github.com/pharaujojr/dashboard-karin/internal/domain"
	"github.com/pharaujojr/dashboard-karin/internal/domain/repository"
	"github.com/pharaujojr/dashboard-karin/internal/domain/ventas"
)

const formatoFecha = "2006-01-02"

// DashboardUseCase construye la respuesta completa del dashboard a partir del
// puerto de ventas (solo lectura) y el caso de uso de metas.
//
// La fecha "hoy" se inyecta como función para que la resolución del período
// anterior sea determinista en tests; se evalúa en cada request.
type DashboardUseCase struct {
	ventasRepo repository.VentasRepository
	metaUC     *usecase.MetaUseCase
	hoy        func() time.Time
}

// NewDashboardUseCase construye el caso de uso con el reloj real.
func NewDashboardUseCase(ventasRepo repository.VentasRepository, metaUC *usecase.MetaUseCase) *DashboardUseCase {
	return &DashboardUseCase{ventasRepo: ventasRepo, metaUC: metaUC, hoy: hoyLocal}
}

// NewDashboardUseCaseConReloj variante para tests con fecha fija.
func NewDashboardUseCaseConReloj(ventasRepo repository.VentasRepository, metaUC *usecase.MetaUseCase, hoy func() time.Time) *DashboardUseCase {
	return &DashboardUseCase{ventasRepo: ventasRepo, metaUC: metaUC, hoy: hoy}
}

// GetDashboard arma el reporte del período solicitado. Las tres consultas
// pesadas e independientes (totales, serie del gráfico, ranking) se disparan
// en paralelo; dentro de cada una las filiales se recorren en orden para que
// la suma sea determinista.
func (uc *DashboardUseCase) GetDashboard(ctx context.Context, req dto.DashboardRequest) (*dto.DashboardDTO, error) {
	periodo, err := parsePeriodo(req.DataInicio, req.DataFim)
	if err != nil {
		return nil, err
	}
	vendedor := filtroVendedor(req.Vendedor)
	tipo := ventas.TipoPeriodo(req.TipoPeriodo)
	hoy := uc.hoy()

	log.Debug().
		Strs("filiais", req.Filiales).
		Str("vendedor", req.Vendedor).
		Str("dataInicio", req.DataInicio).
		Str("dataFim", req.DataFim).
		Bool("agruparPorMes", req.AgruparPorMes).
		Str("tipoPeriodo", req.TipoPeriodo).
		Msg("dashboard: parámetros")

	type totalesResult struct {
		t   ventas.Totales
		err error
	}
	type serieResult struct {
		puntos []ventas.PuntoSerie
		err    error
	}
	type rankingResult struct {
		entradas []ventas.EntradaRanking
		totales  []ventas.VendedorTotal
		err      error
	}

	totCh := make(chan totalesResult, 1)
	serCh := make(chan serieResult, 1)
	ranCh := make(chan rankingResult, 1)

	go func() {
		t, err := ventas.AgregarPorFiliales(req.Filiales, uc.fetchParciales(ctx, vendedor, periodo))
		totCh <- totalesResult{t, err}
	}()
	go func() {
		p, err := uc.obtenerSerie(ctx, req.Filiales, vendedor, periodo, req.AgruparPorMes)
		serCh <- serieResult{p, err}
	}()
	go func() {
		e, totales, err := uc.obtenerRanking(ctx, req.Filiales, periodo, tipo, hoy)
		ranCh <- rankingResult{e, totales, err}
	}()

	tot := <-totCh
	ser := <-serCh
	ran := <-ranCh

	if tot.err != nil {
		return nil, fmt.Errorf("dashboard: totales del período: %w", tot.err)
	}
	if ser.err != nil {
		return nil, fmt.Errorf("dashboard: serie del gráfico: %w", ser.err)
	}
	if ran.err != nil {
		return nil, fmt.Errorf("dashboard: ranking de vendedores: %w", ran.err)
	}

	max, err := uc.obtenerMax(ctx, req.Filiales, vendedor, periodo, ran.totales)
	if err != nil {
		return nil, fmt.Errorf("dashboard: bloque max: %w", err)
	}

	filiales, err := uc.ventasRepo.Filiales(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: filiales: %w", err)
	}
	vendedores, err := uc.ventasRepo.Vendedores(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("dashboard: vendedores: %w", err)
	}

	var metas map[string]decimal.Decimal
	if len(req.Filiales) > 0 {
		metas, err = uc.metaUC.MetasPorFiliales(ctx, req.Filiales, periodo.Inicio, periodo.Fim)
		if err != nil {
			return nil, fmt.Errorf("dashboard: metas: %w", err)
		}
	}

	// Comparación solo con tipo de período definido y no personalizado.
	var comparison *dto.ComparisonDTO
	if tipo != "" && tipo != ventas.PeriodoPersonalizado {
		comparison, err = uc.compararConAnterior(ctx, req.Filiales, vendedor, periodo, tipo, hoy, tot.t)
		if err != nil {
			return nil, fmt.Errorf("dashboard: comparación: %w", err)
		}
	}

	log.Debug().
		Str("totalVendas", tot.t.Suma.String()).
		Int64("numeroVendas", tot.t.Cantidad).
		Str("ticketMedio", tot.t.Ticket.String()).
		Int("puntosGrafico", len(ser.puntos)).
		Int("ranking", len(ran.entradas)).
		Msg("dashboard: totales calculados")

	return &dto.DashboardDTO{
		TotalVendas:     tot.t.Suma,
		NumeroVendas:    tot.t.Cantidad,
		TicketMedio:     tot.t.Ticket,
		MaxResponse:     max,
		DadosGrafico:    ser.puntos,
		Top10Vendedores: ran.entradas,
		Filiais:         filiales,
		Vendedores:      vendedores,
		Comparison:      comparison,
		Metas:           metas,
	}, nil
}

// fetchParciales adapta el repositorio al contrato de AgregarPorFiliales.
// El ticket ponderado upstream solo se consulta en el camino sin filtro.
func (uc *DashboardUseCase) fetchParciales(ctx context.Context, vendedor *string, p ventas.Periodo) ventas.FetchParcial {
	return func(filial *string) (ventas.Parcial, error) {
		suma, err := uc.ventasRepo.SumaVentas(ctx, filial, vendedor, p.Inicio, p.Fim)
		if err != nil {
			return ventas.Parcial{}, err
		}
		cantidad, err := uc.ventasRepo.ContarVentas(ctx, filial, vendedor, p.Inicio, p.Fim)
		if err != nil {
			return ventas.Parcial{}, err
		}
		parcial := ventas.Parcial{Suma: suma, Cantidad: cantidad}
		if filial == nil {
			if parcial.Ticket, err = uc.ventasRepo.TicketMedio(ctx, nil, vendedor, p.Inicio, p.Fim); err != nil {
				return ventas.Parcial{}, err
			}
		}
		return parcial, nil
	}
}

func (uc *DashboardUseCase) obtenerSerie(ctx context.Context, filiales []string, vendedor *string, p ventas.Periodo, porMes bool) ([]ventas.PuntoSerie, error) {
	consulta := uc.ventasRepo.SerieDiaria
	if porMes {
		consulta = uc.ventasRepo.SerieMensual
	}

	var grupos [][]ventas.FilaSerie
	if len(filiales) == 0 {
		filas, err := consulta(ctx, nil, vendedor, p.Inicio, p.Fim)
		if err != nil {
			return nil, err
		}
		grupos = append(grupos, filas)
	} else {
		for i := range filiales {
			filas, err := consulta(ctx, &filiales[i], vendedor, p.Inicio, p.Fim)
			if err != nil {
				return nil, err
			}
			grupos = append(grupos, filas)
		}
	}
	return ventas.CombinarSeries(grupos...), nil
}

// obtenerRanking devuelve el ranking exhibido y además los totales completos
// por vendedor, que el bloque max reutiliza sin repetir la consulta.
func (uc *DashboardUseCase) obtenerRanking(ctx context.Context, filiales []string, p ventas.Periodo, tipo ventas.TipoPeriodo, hoy time.Time) ([]ventas.EntradaRanking, []ventas.VendedorTotal, error) {
	totales, err := uc.ventasRepo.TopVendedores(ctx, filiales, p.Inicio, p.Fim)
	if err != nil {
		return nil, nil, err
	}
	anterior := ventas.ResolverPeriodoAnterior(p.Inicio, p.Fim, tipo, hoy)
	entradas, err := ventas.ConstruirRanking(totales, func(vendedor string) (decimal.Decimal, error) {
		return sumaPorFiliales(ctx, uc.ventasRepo, filiales, vendedor, anterior)
	})
	if err != nil {
		return nil, nil, err
	}
	return entradas, totales, nil
}

// obtenerMax busca la mayor venta individual entre las filiales seleccionadas
// y los líderes del período: vendedor con más ventas y unidad con más ventas.
// topVendedores llega ya consultado por el camino del ranking.
func (uc *DashboardUseCase) obtenerMax(ctx context.Context, filiales []string, vendedor *string, p ventas.Periodo, topVendedores []ventas.VendedorTotal) (*dto.MaxDTO, error) {
	max := &dto.MaxDTO{MaiorVenda: decimal.Zero, TotalVendedorMax: decimal.Zero, TotalUnidadeMax: decimal.Zero}

	if len(filiales) == 0 {
		fila, err := uc.ventasRepo.MayorVenta(ctx, nil, vendedor, p.Inicio, p.Fim)
		if err != nil {
			return nil, err
		}
		if fila != nil {
			max.MaiorVenda = fila.Valor
			max.ClienteMaiorVenda = fila.Cliente
			max.VendedorMaiorVenda = fila.Vendedor
		}
	} else {
		for i := range filiales {
			fila, err := uc.ventasRepo.MayorVenta(ctx, &filiales[i], vendedor, p.Inicio, p.Fim)
			if err != nil {
				return nil, err
			}
			if fila != nil && fila.Valor.GreaterThan(max.MaiorVenda) {
				max.MaiorVenda = fila.Valor
				max.ClienteMaiorVenda = fila.Cliente
				max.VendedorMaiorVenda = fila.Vendedor
			}
		}
	}

	if len(topVendedores) > 0 {
		max.VendedorQueMaisVendeu = topVendedores[0].Vendedor
		max.TotalVendedorMax = topVendedores[0].Total
	}

	topFiliales, err := uc.ventasRepo.TopFiliales(ctx, nil, vendedor, p.Inicio, p.Fim)
	if err != nil {
		return nil, err
	}
	if len(topFiliales) > 0 {
		max.UnidadeQueMaisVendeu = topFiliales[0].Filial
		max.TotalUnidadeMax = topFiliales[0].Total
	}

	return max, nil
}

// Filiales catálogo de filiales para los selectores del frontend.
func (uc *DashboardUseCase) Filiales(ctx context.Context) ([]string, error) {
	return uc.ventasRepo.Filiales(ctx)
}

// Vendedores catálogo de vendedores, opcionalmente de una sola filial.
func (uc *DashboardUseCase) Vendedores(ctx context.Context, filial string) ([]string, error) {
	if filial == "" {
		return uc.ventasRepo.Vendedores(ctx, nil)
	}
	return uc.ventasRepo.Vendedores(ctx, &filial)
}

func (uc *DashboardUseCase) compararConAnterior(ctx context.Context, filiales []string, vendedor *string, p ventas.Periodo, tipo ventas.TipoPeriodo, hoy time.Time, actual ventas.Totales) (*dto.ComparisonDTO, error) {
	anterior := ventas.ResolverPeriodoAnterior(p.Inicio, p.Fim, tipo, hoy)
	previo, err := ventas.AgregarPorFiliales(filiales, uc.fetchParciales(ctx, vendedor, anterior))
	if err != nil {
		return nil, err
	}

	vTotal := ventas.Variacion(previo.Suma, actual.Suma)
	vNumero := ventas.Variacion(decimal.NewFromInt(previo.Cantidad), decimal.NewFromInt(actual.Cantidad))
	vTicket := ventas.Variacion(previo.Ticket, actual.Ticket)

	log.Debug().
		Str("anteriorInicio", anterior.Inicio.Format(formatoFecha)).
		Str("anteriorFim", anterior.Fim.Format(formatoFecha)).
		Str("variacaoTotal", vTotal.String()).
		Str("variacaoNumero", vNumero.String()).
		Str("variacaoTicket", vTicket.String()).
		Msg("dashboard: comparación con período anterior")

	return &dto.ComparisonDTO{
		TotalVendasVariacao:  &vTotal,
		NumeroVendasVariacao: &vNumero,
		TicketMedioVariacao:  &vTicket,
	}, nil
}

// sumaPorFiliales total de un vendedor en un período, sumado filial por
// filial (o con una sola consulta sin filtro si no hay selección).
func sumaPorFiliales(ctx context.Context, repo repository.VentasRepository, filiales []string, vendedor string, p ventas.Periodo) (decimal.Decimal, error) {
	nombre := strings.ToUpper(vendedor)
	if len(filiales) == 0 {
		return repo.SumaVentas(ctx, nil, &nombre, p.Inicio, p.Fim)
	}
	total := decimal.Zero
	for i := range filiales {
		s, err := repo.SumaVentas(ctx, &filiales[i], &nombre, p.Inicio, p.Fim)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(s)
	}
	return total, nil
}

func parsePeriodo(inicioStr, fimStr string) (ventas.Periodo, error) {
	if inicioStr == "" || fimStr == "" {
		return ventas.Periodo{}, fmt.Errorf("%w: dataInicio y dataFim son obligatorios", domain.ErrInvalidInput)
	}
	inicio, err := time.Parse(formatoFecha, inicioStr)
	if err != nil {
		return ventas.Periodo{}, fmt.Errorf("%w: dataInicio inválida: %v", domain.ErrInvalidInput, err)
	}
	fim, err := time.Parse(formatoFecha, fimStr)
	if err != nil {
		return ventas.Periodo{}, fmt.Errorf("%w: dataFim inválida: %v", domain.ErrInvalidInput, err)
	}
	if inicio.After(fim) {
		return ventas.Periodo{}, fmt.Errorf("%w: dataInicio no puede ser posterior a dataFim", domain.ErrInvalidInput)
	}
	return ventas.Periodo{Inicio: inicio, Fim: fim}, nil
}

// filtroVendedor normaliza el filtro de vendedor: vacío = sin restricción;
// el match upstream es por nombre en mayúsculas.
func filtroVendedor(s string) *string {
	if s == "" {
		return nil
	}
	up := strings.ToUpper(s)
	return &up
}

func hoyLocal() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
