package ventas

import (
	"sort"

	"github.com/shopspring/decimal"
)

const (
	topRanking  = 10 // tope de exhibición del ranking del dashboard
	tamanoPodio = 3
)

// VendedorTotal total ya sumado por vendedor, ordenado descendente por la
// fuente. Empates conservan el orden de llegada (sin desempate secundario).
type VendedorTotal struct {
	Vendedor string
	Total    decimal.Decimal
}

// FilialTotal total por filial, descendente.
type FilialTotal struct {
	Filial string
	Total  decimal.Decimal
}

// EntradaRanking entrada del ranking de vendedores con su variación contra el
// período de comparación. Variacao siempre es numérica en esta salida.
type EntradaRanking struct {
	Nombre    string          `json:"nome"`
	Total     decimal.Decimal `json:"total"`
	Variacion decimal.Decimal `json:"variacao"`
	Filial    string          `json:"filial,omitempty"`
}

// EntradaPodio uno de los 3 primeros del ranking, con la filial donde el
// vendedor más vendió en el período.
type EntradaPodio struct {
	Posicion int             `json:"posicao"`
	Nombre   string          `json:"nome"`
	Total    decimal.Decimal `json:"total"`
	Filial   string          `json:"filial"`
}

// EntradaPodioFilial espejo del podio de vendedores visto por filial: no es
// un top-3 independiente de filiales, replica la atribución de filial de cada
// puesto del podio.
type EntradaPodioFilial struct {
	Posicion int             `json:"posicao"`
	Filial   string          `json:"filial"`
	Total    decimal.Decimal `json:"total"`
}

// CombinarTotalesVendedores fusiona varias listas de totales (una por filial)
// sumando por vendedor ANTES de ordenar, y reordena descendente por total.
// El orden relativo de empates es estable respecto de la primera aparición.
func CombinarTotalesVendedores(grupos ...[]VendedorTotal) []VendedorTotal {
	indice := make(map[string]int)
	var combinado []VendedorTotal
	for _, g := range grupos {
		for _, vt := range g {
			if i, ok := indice[vt.Vendedor]; ok {
				combinado[i].Total = combinado[i].Total.Add(vt.Total)
				continue
			}
			indice[vt.Vendedor] = len(combinado)
			combinado = append(combinado, vt)
		}
	}
	sort.SliceStable(combinado, func(i, j int) bool {
		return combinado[i].Total.GreaterThan(combinado[j].Total)
	})
	return combinado
}

// FetchTotalAnterior total del vendedor en el período de comparación.
type FetchTotalAnterior func(vendedor string) (decimal.Decimal, error)

// ConstruirRanking arma el ranking exhibido: trunca al top 10 y adjunta a
// cada vendedor su variación contra el período anterior, siempre con la regla
// general de Variacion (anterior cero con ventas actuales = +100%).
func ConstruirRanking(totales []VendedorTotal, anterior FetchTotalAnterior) ([]EntradaRanking, error) {
	if len(totales) > topRanking {
		totales = totales[:topRanking]
	}
	entradas := make([]EntradaRanking, 0, len(totales))
	for _, vt := range totales {
		previo, err := anterior(vt.Vendedor)
		if err != nil {
			return nil, err
		}
		entradas = append(entradas, EntradaRanking{
			Nombre:    vt.Vendedor,
			Total:     vt.Total,
			Variacion: Variacion(previo, vt.Total),
		})
	}
	return entradas, nil
}

// FetchFilialTop filial donde el vendedor más vendió en el mismo período y
// filtro (primera fila de sus totales por filial descendente; el desempate
// queda en el orden que entregue la fuente).
type FetchFilialTop func(vendedor string) (string, error)

// ConstruirPodio toma los 3 primeros del ranking COMPLETO (no del top 10
// exhibido) y produce dos listas paralelas: el podio de vendedores y el podio
// de filiales derivado de la mejor filial de cada uno.
func ConstruirPodio(totales []VendedorTotal, filialTop FetchFilialTop) ([]EntradaPodio, []EntradaPodioFilial, error) {
	n := tamanoPodio
	if len(totales) < n {
		n = len(totales)
	}
	podio := make([]EntradaPodio, 0, n)
	podioFiliales := make([]EntradaPodioFilial, 0, n)
	for i := 0; i < n; i++ {
		filial, err := filialTop(totales[i].Vendedor)
		if err != nil {
			return nil, nil, err
		}
		podio = append(podio, EntradaPodio{
			Posicion: i + 1,
			Nombre:   totales[i].Vendedor,
			Total:    totales[i].Total,
			Filial:   filial,
		})
		podioFiliales = append(podioFiliales, EntradaPodioFilial{
			Posicion: i + 1,
			Filial:   filial,
			Total:    totales[i].Total,
		})
	}
	return podio, podioFiliales, nil
}

// RestoRanking posiciones 4 en adelante del ranking completo; el podio se
// exhibe aparte.
func RestoRanking(totales []VendedorTotal) []VendedorTotal {
	if len(totales) <= tamanoPodio {
		return nil
	}
	return totales[tamanoPodio:]
}
