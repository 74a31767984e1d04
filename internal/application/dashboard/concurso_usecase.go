package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pharaujojr/dashboard-karin/internal/application/dto"
	"github.com/pharaujojr/dashboard-karin/internal/domain/repository"
	"github.com/pharaujojr/dashboard-karin/internal/domain/ventas"
)

// ConcursoConfig campaña de concurso de ventas: qué filiales participan y el
// período por defecto del placar.
type ConcursoConfig struct {
	Filiales []string
	Inicio   time.Time
	Fim      time.Time
}

// ConcursoUseCase arma el placar del concurso: podio de los 3 primeros
// vendedores con la filial donde más vendieron, podio de unidades espejo, y
// el resto del ranking con variación por vendedor.
type ConcursoUseCase struct {
	ventasRepo repository.VentasRepository
	cfg        ConcursoConfig
	hoy        func() time.Time
}

// NewConcursoUseCase construye el caso de uso con el reloj real.
func NewConcursoUseCase(ventasRepo repository.VentasRepository, cfg ConcursoConfig) *ConcursoUseCase {
	return &ConcursoUseCase{ventasRepo: ventasRepo, cfg: cfg, hoy: hoyLocal}
}

// NewConcursoUseCaseConReloj variante para tests con fecha fija.
func NewConcursoUseCaseConReloj(ventasRepo repository.VentasRepository, cfg ConcursoConfig, hoy func() time.Time) *ConcursoUseCase {
	return &ConcursoUseCase{ventasRepo: ventasRepo, cfg: cfg, hoy: hoy}
}

// GetPlacar construye la respuesta del placar. Sin fechas en el request se
// usa el período de campaña configurado.
func (uc *ConcursoUseCase) GetPlacar(ctx context.Context, req dto.PlacarRequest) (*dto.PlacarDTO, error) {
	periodo := ventas.Periodo{Inicio: uc.cfg.Inicio, Fim: uc.cfg.Fim}
	if req.DataInicio != "" && req.DataFim != "" {
		p, err := parsePeriodo(req.DataInicio, req.DataFim)
		if err != nil {
			return nil, err
		}
		periodo = p
	}

	// Ranking completo (ya fusionado por vendedor y descendente).
	totales, err := uc.ventasRepo.TopVendedores(ctx, uc.cfg.Filiales, periodo.Inicio, periodo.Fim)
	if err != nil {
		return nil, fmt.Errorf("placar: ranking: %w", err)
	}

	filialTop := func(vendedor string) (string, error) {
		nombre := strings.ToUpper(vendedor)
		tops, err := uc.ventasRepo.TopFiliales(ctx, uc.cfg.Filiales, &nombre, periodo.Inicio, periodo.Fim)
		if err != nil {
			return "", err
		}
		if len(tops) == 0 {
			return "", nil
		}
		return tops[0].Filial, nil
	}

	podio, podioUnidades, err := ventas.ConstruirPodio(totales, filialTop)
	if err != nil {
		return nil, fmt.Errorf("placar: podio: %w", err)
	}

	anterior := ventas.ResolverPeriodoAnterior(periodo.Inicio, periodo.Fim, ventas.TipoPeriodo(req.Periodo), uc.hoy())

	// Posiciones 4 en adelante, cada una con su filial y variación.
	resto := ventas.RestoRanking(totales)
	ranking := make([]ventas.EntradaRanking, 0, len(resto))
	for _, vt := range resto {
		previo, err := sumaPorFiliales(ctx, uc.ventasRepo, uc.cfg.Filiales, vt.Vendedor, anterior)
		if err != nil {
			return nil, fmt.Errorf("placar: total anterior de %s: %w", vt.Vendedor, err)
		}
		filial, err := filialTop(vt.Vendedor)
		if err != nil {
			return nil, fmt.Errorf("placar: filial de %s: %w", vt.Vendedor, err)
		}
		ranking = append(ranking, ventas.EntradaRanking{
			Nombre:    vt.Vendedor,
			Total:     vt.Total,
			Variacion: ventas.Variacion(previo, vt.Total),
			Filial:    filial,
		})
	}

	return &dto.PlacarDTO{
		PodiumVendedores: podio,
		PodiumUnidades:   podioUnidades,
		Ranking:          ranking,
		DataInicio:       periodo.Inicio.Format(formatoFecha),
		DataFim:          periodo.Fim.Format(formatoFecha),
	}, nil
}
