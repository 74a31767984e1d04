package ventas

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const formatoClave = "2006-01-02"

// FilaSerie fila cruda de una serie temporal tal como la entrega la fuente de
// datos: una fecha canónica y el total de ese día (o mes).
type FilaSerie struct {
	Fecha time.Time
	Valor decimal.Decimal
}

// PuntoSerie punto agregado del gráfico. Fecha en formato YYYY-MM-DD, único
// por clave y ordenado cronológicamente en la salida.
type PuntoSerie struct {
	Fecha string          `json:"data"`
	Valor decimal.Decimal `json:"valor"`
}

// ClaveFecha clave de día canónica: los timestamps del mismo día calendario
// (en el calendario local de la fuente) colapsan a la misma clave.
func ClaveFecha(t time.Time) string {
	return t.Format(formatoClave)
}

// NormalizarClaveFecha mejor esfuerzo para representaciones de fecha crudas
// heterogéneas: corta en la primera 'T' o espacio y conserva la parte
// izquierda; sin separador, la cadena completa es la clave.
func NormalizarClaveFecha(crudo string) string {
	if i := strings.IndexAny(crudo, "T "); i >= 0 {
		return crudo[:i]
	}
	return crudo
}

// CombinarSeries fusiona varios conjuntos de filas (por ejemplo uno por
// filial) en una serie única: suma los valores que caen en la misma clave de
// día y ordena ascendente por clave (orden lexicográfico de YYYY-MM-DD, que
// coincide con el cronológico).
func CombinarSeries(grupos ...[]FilaSerie) []PuntoSerie {
	acumulado := make(map[string]decimal.Decimal)
	for _, filas := range grupos {
		for _, f := range filas {
			clave := ClaveFecha(f.Fecha)
			acumulado[clave] = acumulado[clave].Add(f.Valor)
		}
	}

	claves := make([]string, 0, len(acumulado))
	for c := range acumulado {
		claves = append(claves, c)
	}
	sort.Strings(claves)

	puntos := make([]PuntoSerie, 0, len(claves))
	for _, c := range claves {
		puntos = append(puntos, PuntoSerie{Fecha: c, Valor: acumulado[c]})
	}
	return puntos
}
