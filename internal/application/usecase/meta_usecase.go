// Package usecase casos de uso de administración del dashboard.
package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pharaujojr/dashboard-karin/internal/application/dto"
	"github.com/pharaujojr/dashboard-karin/internal/domain"
	"github.com/pharaujojr/dashboard-karin/internal/domain/entity"
	"github.com/pharaujojr/dashboard-karin/internal/domain/repository"
)

const formatoFecha = "2006-01-02"

// MetaUseCase CRUD de metas de venta por filial y resolución de la meta
// vigente de un período, con valor por defecto para filiales sin meta.
type MetaUseCase struct {
	repo        repository.MetaRepository
	valorPadrao decimal.Decimal
}

// NewMetaUseCase construye el caso de uso. valorPadrao se usa cuando una
// filial no tiene meta activa que cubra el período consultado.
func NewMetaUseCase(repo repository.MetaRepository, valorPadrao decimal.Decimal) *MetaUseCase {
	return &MetaUseCase{repo: repo, valorPadrao: valorPadrao}
}

// MetaPorFilial meta vigente de una filial en el período; la primera meta
// activa que intersecta el rango, o el valor por defecto.
func (uc *MetaUseCase) MetaPorFilial(ctx context.Context, filial string, inicio, fim time.Time) (decimal.Decimal, error) {
	metas, err := uc.repo.ActivasPorFilialesYPeriodo(ctx, []string{filial}, inicio, fim)
	if err != nil {
		return decimal.Zero, fmt.Errorf("metas: filial %s: %w", filial, err)
	}
	if len(metas) > 0 {
		return metas[0].ValorMeta, nil
	}
	return uc.valorPadrao, nil
}

// MetasPorFiliales mapa filial -> valor de meta para el período. Las filiales
// sin meta registrada reciben el valor por defecto.
func (uc *MetaUseCase) MetasPorFiliales(ctx context.Context, filiales []string, inicio, fim time.Time) (map[string]decimal.Decimal, error) {
	metas, err := uc.repo.ActivasPorFilialesYPeriodo(ctx, filiales, inicio, fim)
	if err != nil {
		return nil, fmt.Errorf("metas: período %s a %s: %w",
			inicio.Format(formatoFecha), fim.Format(formatoFecha), err)
	}

	resultado := make(map[string]decimal.Decimal, len(filiales))
	for _, m := range metas {
		if _, ok := resultado[m.Filial]; !ok {
			resultado[m.Filial] = m.ValorMeta
		}
	}
	for _, f := range filiales {
		if _, ok := resultado[f]; !ok {
			resultado[f] = uc.valorPadrao
		}
	}
	return resultado, nil
}

// Crear registra una nueva meta activa.
func (uc *MetaUseCase) Crear(ctx context.Context, in dto.CrearMetaRequest) (*dto.MetaDTO, error) {
	if in.Filial == "" {
		return nil, fmt.Errorf("%w: filial es obligatoria", domain.ErrInvalidInput)
	}
	if !in.ValorMeta.IsPositive() {
		return nil, fmt.Errorf("%w: valorMeta debe ser mayor que cero", domain.ErrInvalidInput)
	}
	inicio, fim, err := parseRango(in.DataInicio, in.DataFim)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	meta := &entity.Meta{
		ID:          uuid.New().String(),
		Filial:      in.Filial,
		ValorMeta:   in.ValorMeta,
		DataInicio:  inicio,
		DataFim:     fim,
		Activa:      true,
		Descripcion: in.Descripcion,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Crear(ctx, meta); err != nil {
		return nil, err
	}
	return toMetaDTO(meta), nil
}

// Actualizar modifica una meta existente; devuelve nil si no existe.
func (uc *MetaUseCase) Actualizar(ctx context.Context, id string, in dto.ActualizarMetaRequest) (*dto.MetaDTO, error) {
	meta, err := uc.repo.PorID(ctx, id)
	if err != nil {
		return nil, err
	}
	if meta == nil {
		return nil, nil
	}
	if in.ValorMeta != nil {
		if !in.ValorMeta.IsPositive() {
			return nil, fmt.Errorf("%w: valorMeta debe ser mayor que cero", domain.ErrInvalidInput)
		}
		meta.ValorMeta = *in.ValorMeta
	}
	if in.DataInicio != nil {
		f, err := parseFecha(*in.DataInicio, "dataInicio")
		if err != nil {
			return nil, err
		}
		meta.DataInicio = f
	}
	if in.DataFim != nil {
		f, err := parseFecha(*in.DataFim, "dataFim")
		if err != nil {
			return nil, err
		}
		meta.DataFim = f
	}
	if meta.DataInicio.After(meta.DataFim) {
		return nil, fmt.Errorf("%w: dataInicio posterior a dataFim", domain.ErrInvalidInput)
	}
	if in.Descripcion != nil {
		meta.Descripcion = *in.Descripcion
	}
	meta.UpdatedAt = time.Now()
	if err := uc.repo.Actualizar(ctx, meta); err != nil {
		return nil, err
	}
	return toMetaDTO(meta), nil
}

// Desactivar marca la meta como inactiva conservándola como histórico.
func (uc *MetaUseCase) Desactivar(ctx context.Context, id string) error {
	meta, err := uc.repo.PorID(ctx, id)
	if err != nil {
		return err
	}
	if meta == nil {
		return domain.ErrNotFound
	}
	meta.Activa = false
	meta.UpdatedAt = time.Now()
	return uc.repo.Actualizar(ctx, meta)
}

// ListarActivas todas las metas activas.
func (uc *MetaUseCase) ListarActivas(ctx context.Context) ([]dto.MetaDTO, error) {
	metas, err := uc.repo.ListarActivas(ctx)
	if err != nil {
		return nil, err
	}
	return toMetaDTOs(metas), nil
}

// HistoricoPorFilial metas de una filial, más recientes primero.
func (uc *MetaUseCase) HistoricoPorFilial(ctx context.Context, filial string) ([]dto.MetaDTO, error) {
	metas, err := uc.repo.PorFilial(ctx, filial)
	if err != nil {
		return nil, err
	}
	return toMetaDTOs(metas), nil
}

func toMetaDTO(m *entity.Meta) *dto.MetaDTO {
	return &dto.MetaDTO{
		ID:          m.ID,
		Filial:      m.Filial,
		ValorMeta:   m.ValorMeta,
		DataInicio:  m.DataInicio.Format(formatoFecha),
		DataFim:     m.DataFim.Format(formatoFecha),
		Activa:      m.Activa,
		Descripcion: m.Descripcion,
	}
}

func toMetaDTOs(metas []*entity.Meta) []dto.MetaDTO {
	items := make([]dto.MetaDTO, 0, len(metas))
	for _, m := range metas {
		items = append(items, *toMetaDTO(m))
	}
	return items
}

func parseFecha(s, campo string) (time.Time, error) {
	f, err := time.Parse(formatoFecha, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s inválida: %v", domain.ErrInvalidInput, campo, err)
	}
	return f, nil
}

func parseRango(inicioStr, fimStr string) (inicio, fim time.Time, err error) {
	if inicio, err = parseFecha(inicioStr, "dataInicio"); err != nil {
		return
	}
	if fim, err = parseFecha(fimStr, "dataFim"); err != nil {
		return
	}
	if inicio.After(fim) {
		err = fmt.Errorf("%w: dataInicio posterior a dataFim", domain.ErrInvalidInput)
	}
	return
}
