package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appdashboard "github.com/pharaujojr/dashboard-karin/internal/application/dashboard"
	"github.com/pharaujojr/dashboard-karin/internal/application/usecase"
	"github.com/pharaujojr/dashboard-karin/internal/domain/entity"
	"github.com/pharaujojr/dashboard-karin/internal/domain/repository"
	"github.com/pharaujojr/dashboard-karin/internal/domain/ventas"
	apphttp "github.com/pharaujojr/dashboard-karin/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// ventasRepoVacio fuente de ventas sin filas; los endpoints deben responder
// con ceros y listas vacías, nunca con error.
type ventasRepoVacio struct{}

func (ventasRepoVacio) SumaVentas(context.Context, *string, *string, time.Time, time.Time) (decimal.Decimal, error) {
	return decimal.Zero, nil
}
func (ventasRepoVacio) ContarVentas(context.Context, *string, *string, time.Time, time.Time) (int64, error) {
	return 0, nil
}
func (ventasRepoVacio) TicketMedio(context.Context, *string, *string, time.Time, time.Time) (decimal.Decimal, error) {
	return decimal.Zero, nil
}
func (ventasRepoVacio) MayorVenta(context.Context, *string, *string, time.Time, time.Time) (*repository.VentaMax, error) {
	return nil, nil
}
func (ventasRepoVacio) TopVendedores(context.Context, []string, time.Time, time.Time) ([]ventas.VendedorTotal, error) {
	return nil, nil
}
func (ventasRepoVacio) TopFiliales(context.Context, []string, *string, time.Time, time.Time) ([]ventas.FilialTotal, error) {
	return nil, nil
}
func (ventasRepoVacio) SerieDiaria(context.Context, *string, *string, time.Time, time.Time) ([]ventas.FilaSerie, error) {
	return nil, nil
}
func (ventasRepoVacio) SerieMensual(context.Context, *string, *string, time.Time, time.Time) ([]ventas.FilaSerie, error) {
	return nil, nil
}
func (ventasRepoVacio) Filiales(context.Context) ([]string, error) {
	return []string{"Sinop", "Sorriso"}, nil
}
func (ventasRepoVacio) Vendedores(context.Context, *string) ([]string, error) {
	return []string{"ANA"}, nil
}

type metaRepoVacio struct{}

func (metaRepoVacio) Crear(context.Context, *entity.Meta) error      { return nil }
func (metaRepoVacio) Actualizar(context.Context, *entity.Meta) error { return nil }
func (metaRepoVacio) PorID(context.Context, string) (*entity.Meta, error) {
	return nil, nil
}
func (metaRepoVacio) ActivasPorFilialesYPeriodo(context.Context, []string, time.Time, time.Time) ([]*entity.Meta, error) {
	return nil, nil
}
func (metaRepoVacio) ListarActivas(context.Context) ([]*entity.Meta, error) { return nil, nil }
func (metaRepoVacio) PorFilial(context.Context, string) ([]*entity.Meta, error) {
	return nil, nil
}

func buildTestApp() *fiber.App {
	metaUC := usecase.NewMetaUseCase(metaRepoVacio{}, decimal.NewFromInt(1000000))
	dashboardUC := appdashboard.NewDashboardUseCase(ventasRepoVacio{}, metaUC)
	concursoUC := appdashboard.NewConcursoUseCase(ventasRepoVacio{}, appdashboard.ConcursoConfig{
		Filiales: []string{"Sorriso", "Sinop"},
		Inicio:   time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC),
		Fim:      time.Date(2025, 11, 30, 0, 0, 0, 0, time.UTC),
	})

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		DashboardUC: dashboardUC,
		ConcursoUC:  concursoUC,
		MetaUC:      metaUC,
	})
	return app
}

func doGet(t *testing.T, app *fiber.App, path string) (*http.Response, []byte) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestGetDashboard_SinFechasDevuelve400(t *testing.T) {
	app := buildTestApp()

	resp, body := doGet(t, app, "/api/dashboard")

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var e map[string]any
	require.NoError(t, json.Unmarshal(body, &e))
	assert.Equal(t, "BAD_REQUEST", e["code"])
}

func TestGetDashboard_RespetaElContratoJSON(t *testing.T) {
	app := buildTestApp()

	resp, body := doGet(t, app, "/api/dashboard?dataInicio=2025-11-01&dataFim=2025-11-30")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Contains(t, out, "totalVendas")
	assert.Contains(t, out, "numeroVendas")
	assert.Contains(t, out, "ticketMedio")
	assert.Contains(t, out, "filiais")
	assert.Contains(t, out, "vendedores")
	assert.NotContains(t, out, "comparison", "sin tipoPeriodo no hay bloque de comparación")
	assert.NotContains(t, out, "metas", "sin filiales seleccionadas no hay metas")
}

func TestGetFiliais(t *testing.T) {
	app := buildTestApp()

	resp, body := doGet(t, app, "/api/filiais")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var filiales []string
	require.NoError(t, json.Unmarshal(body, &filiales))
	assert.Equal(t, []string{"Sinop", "Sorriso"}, filiales)
}

func TestGetVendedoresPorUnidade_SinFilialDevuelve400(t *testing.T) {
	app := buildTestApp()

	resp, _ := doGet(t, app, "/api/vendedores/por-unidade")

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetPlacar_SinVentasRespondeVacio(t *testing.T) {
	app := buildTestApp()

	resp, body := doGet(t, app, "/api/placar")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "2025-11-01", out["dataInicio"])
	assert.Equal(t, "2025-11-30", out["dataFim"])
}

func TestMetaVigentePorFilial(t *testing.T) {
	app := buildTestApp()

	resp, body := doGet(t, app, "/api/metas/filial?filial=Sinop&dataInicio=2025-11-01&dataFim=2025-11-30")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "Sinop", out["filial"])
	// decimal serializa como string entrecomillada
	assert.Equal(t, "1000000", out["valorMeta"],
		"sin meta registrada responde el valor por defecto")
}

func TestMetaVigente_SinFilialDevuelve400(t *testing.T) {
	app := buildTestApp()

	resp, _ := doGet(t, app, "/api/metas/filial?dataInicio=2025-11-01&dataFim=2025-11-30")

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMetasVigentesPorFiliales(t *testing.T) {
	app := buildTestApp()

	resp, body := doGet(t, app,
		"/api/metas/filiais?filial=Sorriso&filial=Sinop&dataInicio=2025-11-01&dataFim=2025-11-30")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var metas map[string]any
	require.NoError(t, json.Unmarshal(body, &metas))
	require.Len(t, metas, 2)
	assert.Equal(t, "1000000", metas["Sorriso"])
	assert.Equal(t, "1000000", metas["Sinop"])
}

func TestMetasVigentes_FechasInvalidasDevuelven400(t *testing.T) {
	app := buildTestApp()

	resp, _ := doGet(t, app, "/api/metas/filiais?filial=Sorriso&dataInicio=2025-11-01")

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHistoricoPorFilial_Ruta(t *testing.T) {
	app := buildTestApp()

	resp, _ := doGet(t, app, "/api/metas/filial/Sorriso/historico")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCrearMeta_BodyInvalidoDevuelve400(t *testing.T) {
	app := buildTestApp()

	req := httptest.NewRequest(http.MethodPost, "/api/metas", nil)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
