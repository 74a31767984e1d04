// Package ventas implementa el motor de comparación de períodos y agregación
// multi-filial del dashboard: resolución del período anterior, variación
// porcentual, combinación ponderada de agregados por filial, ranking/podio de
// vendedores y series temporales. Todo el paquete es puro: sin I/O, sin reloj
// global (la fecha "hoy" se inyecta como parámetro).
package ventas

import "time"

// TipoPeriodo etiqueta semántica del período seleccionado en el dashboard.
// Controla cómo se deriva el período de comparación.
type TipoPeriodo string

const (
	PeriodoDia           TipoPeriodo = "dia"
	PeriodoSemana        TipoPeriodo = "semana"
	PeriodoMes           TipoPeriodo = "mes"
	PeriodoTrimestre     TipoPeriodo = "trimestre"
	PeriodoAno           TipoPeriodo = "ano"
	PeriodoPersonalizado TipoPeriodo = "personalizado"
)

// Periodo rango de fechas inclusivo [Inicio, Fim]. Invariante: Inicio <= Fim
// (precondición del llamador, no se valida aquí).
type Periodo struct {
	Inicio time.Time
	Fim    time.Time
}

// ResolverPeriodoAnterior deriva el período de comparación para [inicio, fim]
// según el tipo de período. Las ventanas "en curso" (este mes / este año /
// esta semana hasta hoy) se comparan contra la porción equivalente ya
// transcurrida del período anterior, no contra el período completo; las
// ventanas cerradas se desplazan calendario completo.
//
// hoy es la fecha de referencia del llamador (inyectada para que la función
// sea determinista). Tipos desconocidos o vacíos resuelven como "dia":
// desplazamiento fijo por la longitud de la ventana.
func ResolverPeriodoAnterior(inicio, fim time.Time, tipo TipoPeriodo, hoy time.Time) Periodo {
	switch tipo {
	case PeriodoMes:
		inicioAnterior := restarMeses(inicio, 1)
		// Ventana "este mes": fim es el último día del mes de hoy.
		if fim.Month() == hoy.Month() && fim.Year() == hoy.Year() && fim.Day() == ultimoDiaDelMes(fim) {
			dia := hoy.Day()
			if ult := ultimoDiaDelMes(inicioAnterior); dia > ult {
				dia = ult
			}
			return Periodo{inicioAnterior, conDia(inicioAnterior, dia)}
		}
		return Periodo{inicioAnterior, restarMeses(fim, 1)}

	case PeriodoAno:
		inicioAnterior := restarAnos(inicio, 1)
		// Ventana "este año": fim es el 31 de diciembre del año de hoy.
		if fim.Year() == hoy.Year() && fim.YearDay() == diasDelAno(fim.Year()) {
			return Periodo{inicioAnterior, restarAnos(hoy, 1)}
		}
		return Periodo{inicioAnterior, restarAnos(fim, 1)}

	case PeriodoTrimestre:
		return Periodo{restarMeses(inicio, 3), restarMeses(fim, 3)}

	case PeriodoSemana:
		inicioAnterior := inicio.AddDate(0, 0, -7)
		// Ventana "esta semana": fim cae en domingo y hoy está dentro de la semana.
		if fim.Weekday() == time.Sunday && !hoy.After(fim) && !hoy.Before(inicio) {
			return Periodo{inicioAnterior, hoy.AddDate(0, 0, -7)}
		}
		return Periodo{inicioAnterior, fim.AddDate(0, 0, -7)}

	default:
		n := diasEntre(inicio, fim) + 1
		return Periodo{inicio.AddDate(0, 0, -n), fim.AddDate(0, 0, -n)}
	}
}

// restarMeses resta n meses acotando el día al largo del mes destino
// (31 de marzo - 1 mes = 28/29 de febrero), sin normalizar hacia adelante.
func restarMeses(t time.Time, n int) time.Time {
	y := t.Year()
	m := int(t.Month()) - 1 - n // meses contados desde enero = 0
	y += m / 12
	m = m % 12
	if m < 0 {
		m += 12
		y--
	}
	mes := time.Month(m + 1)
	d := t.Day()
	if ult := diasDelMes(y, mes); d > ult {
		d = ult
	}
	return time.Date(y, mes, d, 0, 0, 0, 0, t.Location())
}

// restarAnos resta n años acotando el 29 de febrero a 28 en años no bisiestos.
func restarAnos(t time.Time, n int) time.Time {
	y := t.Year() - n
	d := t.Day()
	if ult := diasDelMes(y, t.Month()); d > ult {
		d = ult
	}
	return time.Date(y, t.Month(), d, 0, 0, 0, 0, t.Location())
}

func conDia(t time.Time, dia int) time.Time {
	return time.Date(t.Year(), t.Month(), dia, 0, 0, 0, 0, t.Location())
}

func diasDelMes(y int, m time.Month) int {
	// Día 0 del mes siguiente = último día de m.
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func ultimoDiaDelMes(t time.Time) int {
	return diasDelMes(t.Year(), t.Month())
}

func diasDelAno(y int) int {
	return time.Date(y, 12, 31, 0, 0, 0, 0, time.UTC).YearDay()
}

// diasEntre días calendario entre dos fechas (b - a), ignorando la hora.
func diasEntre(a, b time.Time) int {
	fa := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	fb := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(fb.Sub(fa).Hours() / 24)
}
