package dashboard_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharaujojr/dashboard-karin/internal/application/dashboard"
	"github.com/pharaujojr/dashboard-karin/internal/application/dto"
)

// datosConcurso cuatro vendedores en la campaña de noviembre: tres para el
// podio y uno para el resto del ranking.
func datosConcurso() *ventasRepoFake {
	return &ventasRepoFake{filas: []venta{
		{Filial: "Sorriso", Vendedor: "ANA", Valor: dec("200"), Fecha: fecha(2025, time.November, 5)},
		{Filial: "Sinop", Vendedor: "ANA", Valor: dec("100"), Fecha: fecha(2025, time.November, 8)},
		{Filial: "Sinop", Vendedor: "BETO", Valor: dec("250"), Fecha: fecha(2025, time.November, 6)},
		{Filial: "Sorriso", Vendedor: "CARLA", Valor: dec("200"), Fecha: fecha(2025, time.November, 7)},
		{Filial: "Sinop", Vendedor: "DANI", Valor: dec("100"), Fecha: fecha(2025, time.November, 9)},
		// Ventana de comparación (la campaña corrida 30 días hacia atrás)
		{Filial: "Sinop", Vendedor: "DANI", Valor: dec("40"), Fecha: fecha(2025, time.October, 15)},
		// Filial fuera de la campaña: no debe contar
		{Filial: "Cuiabá", Vendedor: "ANA", Valor: dec("9999"), Fecha: fecha(2025, time.November, 5)},
	}}
}

func nuevoConcursoUC(repo *ventasRepoFake) *dashboard.ConcursoUseCase {
	cfg := dashboard.ConcursoConfig{
		Filiales: []string{"Sorriso", "Sinop"},
		Inicio:   fecha(2025, time.November, 1),
		Fim:      fecha(2025, time.November, 30),
	}
	return dashboard.NewConcursoUseCaseConReloj(repo, cfg, func() time.Time {
		return fecha(2025, time.November, 19)
	})
}

func TestGetPlacar_PodioConMejorFilial(t *testing.T) {
	uc := nuevoConcursoUC(datosConcurso())

	resp, err := uc.GetPlacar(context.Background(), dto.PlacarRequest{})

	require.NoError(t, err)
	require.Len(t, resp.PodiumVendedores, 3)

	// ANA lidera con 300 (200 Sorriso + 100 Sinop); su mejor filial es Sorriso.
	// La venta de Cuiabá no participa de la campaña.
	assert.Equal(t, 1, resp.PodiumVendedores[0].Posicion)
	assert.Equal(t, "ANA", resp.PodiumVendedores[0].Nombre)
	assert.True(t, dec("300").Equal(resp.PodiumVendedores[0].Total))
	assert.Equal(t, "Sorriso", resp.PodiumVendedores[0].Filial)

	assert.Equal(t, "BETO", resp.PodiumVendedores[1].Nombre)
	assert.Equal(t, "Sinop", resp.PodiumVendedores[1].Filial)
	assert.Equal(t, "CARLA", resp.PodiumVendedores[2].Nombre)
	assert.Equal(t, "Sorriso", resp.PodiumVendedores[2].Filial)
}

func TestGetPlacar_PodioDeUnidadesEsEspejo(t *testing.T) {
	uc := nuevoConcursoUC(datosConcurso())

	resp, err := uc.GetPlacar(context.Background(), dto.PlacarRequest{})

	require.NoError(t, err)
	require.Len(t, resp.PodiumUnidades, 3)
	for i, p := range resp.PodiumVendedores {
		assert.Equal(t, p.Posicion, resp.PodiumUnidades[i].Posicion)
		assert.Equal(t, p.Filial, resp.PodiumUnidades[i].Filial)
		assert.True(t, p.Total.Equal(resp.PodiumUnidades[i].Total))
	}
}

func TestGetPlacar_RestoDelRankingConVariacion(t *testing.T) {
	uc := nuevoConcursoUC(datosConcurso())

	resp, err := uc.GetPlacar(context.Background(), dto.PlacarRequest{})

	require.NoError(t, err)
	require.Len(t, resp.Ranking, 1, "posición 4 en adelante")
	assert.Equal(t, "DANI", resp.Ranking[0].Nombre)
	assert.True(t, dec("100").Equal(resp.Ranking[0].Total))
	assert.Equal(t, "Sinop", resp.Ranking[0].Filial)
	// Campaña corrida 30 días hacia atrás: DANI vendió 40 -> (100-40)/40.
	assert.True(t, dec("150").Equal(resp.Ranking[0].Variacion),
		"esperado 150, obtenido %s", resp.Ranking[0].Variacion)
}

func TestGetPlacar_PeriodoDeCampanaPorDefecto(t *testing.T) {
	uc := nuevoConcursoUC(datosConcurso())

	resp, err := uc.GetPlacar(context.Background(), dto.PlacarRequest{})

	require.NoError(t, err)
	assert.Equal(t, "2025-11-01", resp.DataInicio)
	assert.Equal(t, "2025-11-30", resp.DataFim)
}

func TestGetPlacar_FechasDelRequestTienenPrioridad(t *testing.T) {
	uc := nuevoConcursoUC(datosConcurso())

	resp, err := uc.GetPlacar(context.Background(), dto.PlacarRequest{
		DataInicio: "2025-11-05",
		DataFim:    "2025-11-07",
	})

	require.NoError(t, err)
	assert.Equal(t, "2025-11-05", resp.DataInicio)
	assert.Equal(t, "2025-11-07", resp.DataFim)
	// En esa ventana solo venden ANA (200), BETO (250) y CARLA (200).
	require.Len(t, resp.PodiumVendedores, 3)
	assert.Equal(t, "BETO", resp.PodiumVendedores[0].Nombre)
	assert.Empty(t, resp.Ranking)
}

func TestGetPlacar_ConPocosVendedoresNoHayResto(t *testing.T) {
	repo := &ventasRepoFake{filas: []venta{
		{Filial: "Sorriso", Vendedor: "ANA", Valor: dec("100"), Fecha: fecha(2025, time.November, 5)},
	}}
	uc := nuevoConcursoUC(repo)

	resp, err := uc.GetPlacar(context.Background(), dto.PlacarRequest{})

	require.NoError(t, err)
	assert.Len(t, resp.PodiumVendedores, 1)
	assert.Empty(t, resp.Ranking)
}
