package dashboard_test

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pharaujojr/dashboard-karin/internal/domain/repository"
	"github.com/pharaujojr/dashboard-karin/internal/domain/ventas"
)

// venta fila de prueba equivalente a un registro pagado de la base.
type venta struct {
	Filial   string
	Vendedor string
	Cliente  string
	Valor    decimal.Decimal
	Fecha    time.Time
}

// ventasRepoFake implementa repository.VentasRepository sobre un slice en
// memoria, replicando la semántica de los filtros de la fuente real.
type ventasRepoFake struct {
	filas []venta

	consultasTopVendedores int
}

func (f *ventasRepoFake) filtrar(filial, vendedor *string, inicio, fim time.Time) []venta {
	var out []venta
	for _, v := range f.filas {
		if filial != nil && v.Filial != *filial {
			continue
		}
		if vendedor != nil && strings.ToUpper(v.Vendedor) != *vendedor {
			continue
		}
		if v.Fecha.Before(inicio) || v.Fecha.After(fim) {
			continue
		}
		out = append(out, v)
	}
	return out
}

func (f *ventasRepoFake) SumaVentas(_ context.Context, filial, vendedor *string, inicio, fim time.Time) (decimal.Decimal, error) {
	suma := decimal.Zero
	for _, v := range f.filtrar(filial, vendedor, inicio, fim) {
		suma = suma.Add(v.Valor)
	}
	return suma, nil
}

func (f *ventasRepoFake) ContarVentas(_ context.Context, filial, vendedor *string, inicio, fim time.Time) (int64, error) {
	return int64(len(f.filtrar(filial, vendedor, inicio, fim))), nil
}

func (f *ventasRepoFake) TicketMedio(ctx context.Context, filial, vendedor *string, inicio, fim time.Time) (decimal.Decimal, error) {
	suma, _ := f.SumaVentas(ctx, filial, vendedor, inicio, fim)
	cantidad, _ := f.ContarVentas(ctx, filial, vendedor, inicio, fim)
	return ventas.TicketMedio(suma, cantidad), nil
}

func (f *ventasRepoFake) MayorVenta(_ context.Context, filial, vendedor *string, inicio, fim time.Time) (*repository.VentaMax, error) {
	var max *repository.VentaMax
	for _, v := range f.filtrar(filial, vendedor, inicio, fim) {
		if max == nil || v.Valor.GreaterThan(max.Valor) {
			max = &repository.VentaMax{Valor: v.Valor, Cliente: v.Cliente, Vendedor: v.Vendedor}
		}
	}
	return max, nil
}

func (f *ventasRepoFake) enConjunto(filiales []string, filial string) bool {
	if len(filiales) == 0 {
		return true
	}
	for _, fl := range filiales {
		if fl == filial {
			return true
		}
	}
	return false
}

func (f *ventasRepoFake) TopVendedores(_ context.Context, filiales []string, inicio, fim time.Time) ([]ventas.VendedorTotal, error) {
	f.consultasTopVendedores++
	totales := make(map[string]decimal.Decimal)
	var orden []string
	for _, v := range f.filas {
		if !f.enConjunto(filiales, v.Filial) || v.Fecha.Before(inicio) || v.Fecha.After(fim) {
			continue
		}
		if _, ok := totales[v.Vendedor]; !ok {
			orden = append(orden, v.Vendedor)
		}
		totales[v.Vendedor] = totales[v.Vendedor].Add(v.Valor)
	}
	var out []ventas.VendedorTotal
	for _, nombre := range orden {
		if totales[nombre].IsPositive() {
			out = append(out, ventas.VendedorTotal{Vendedor: nombre, Total: totales[nombre]})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Total.GreaterThan(out[j].Total) })
	return out, nil
}

func (f *ventasRepoFake) TopFiliales(_ context.Context, filiales []string, vendedor *string, inicio, fim time.Time) ([]ventas.FilialTotal, error) {
	totales := make(map[string]decimal.Decimal)
	var orden []string
	for _, v := range f.filas {
		if !f.enConjunto(filiales, v.Filial) || v.Fecha.Before(inicio) || v.Fecha.After(fim) {
			continue
		}
		if vendedor != nil && strings.ToUpper(v.Vendedor) != *vendedor {
			continue
		}
		if _, ok := totales[v.Filial]; !ok {
			orden = append(orden, v.Filial)
		}
		totales[v.Filial] = totales[v.Filial].Add(v.Valor)
	}
	var out []ventas.FilialTotal
	for _, nombre := range orden {
		out = append(out, ventas.FilialTotal{Filial: nombre, Total: totales[nombre]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Total.GreaterThan(out[j].Total) })
	return out, nil
}

func (f *ventasRepoFake) SerieDiaria(_ context.Context, filial, vendedor *string, inicio, fim time.Time) ([]ventas.FilaSerie, error) {
	porDia := make(map[time.Time]decimal.Decimal)
	for _, v := range f.filtrar(filial, vendedor, inicio, fim) {
		dia := time.Date(v.Fecha.Year(), v.Fecha.Month(), v.Fecha.Day(), 0, 0, 0, 0, time.UTC)
		porDia[dia] = porDia[dia].Add(v.Valor)
	}
	var out []ventas.FilaSerie
	for dia, total := range porDia {
		out = append(out, ventas.FilaSerie{Fecha: dia, Valor: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Fecha.Before(out[j].Fecha) })
	return out, nil
}

func (f *ventasRepoFake) SerieMensual(_ context.Context, filial, vendedor *string, inicio, fim time.Time) ([]ventas.FilaSerie, error) {
	porMes := make(map[time.Time]decimal.Decimal)
	for _, v := range f.filtrar(filial, vendedor, inicio, fim) {
		mes := time.Date(v.Fecha.Year(), v.Fecha.Month(), 1, 0, 0, 0, 0, time.UTC)
		porMes[mes] = porMes[mes].Add(v.Valor)
	}
	var out []ventas.FilaSerie
	for mes, total := range porMes {
		out = append(out, ventas.FilaSerie{Fecha: mes, Valor: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Fecha.Before(out[j].Fecha) })
	return out, nil
}

func (f *ventasRepoFake) Filiales(_ context.Context) ([]string, error) {
	vistos := make(map[string]bool)
	var out []string
	for _, v := range f.filas {
		if !vistos[v.Filial] {
			vistos[v.Filial] = true
			out = append(out, v.Filial)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (f *ventasRepoFake) Vendedores(_ context.Context, filial *string) ([]string, error) {
	vistos := make(map[string]bool)
	var out []string
	for _, v := range f.filas {
		if filial != nil && v.Filial != *filial {
			continue
		}
		nombre := strings.ToUpper(v.Vendedor)
		if !vistos[nombre] {
			vistos[nombre] = true
			out = append(out, nombre)
		}
	}
	sort.Strings(out)
	return out, nil
}
