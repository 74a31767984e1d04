package ventas

import "github.com/shopspring/decimal"

// Parcial agregado crudo de una filial (o de todas, si la consulta fue sin
// filtro). Ticket solo es significativo en la consulta sin filtro de filial,
// donde la fuente ya calculó el promedio ponderado sobre todas las filas.
type Parcial struct {
	Suma     decimal.Decimal
	Cantidad int64
	Ticket   decimal.Decimal
}

// Totales agregado combinado del conjunto de filiales seleccionadas.
// Invariante: con Cantidad > 0, Ticket == round(Suma/Cantidad, 2, HALF_UP);
// con Cantidad == 0, Ticket == 0.
type Totales struct {
	Suma     decimal.Decimal
	Cantidad int64
	Ticket   decimal.Decimal
}

// FetchParcial obtiene el agregado de una filial. nil significa "todas las
// filiales" (consulta única sin restricción).
type FetchParcial func(filial *string) (Parcial, error)

// AgregarPorFiliales combina los agregados parciales del conjunto de filiales
// en totales correctos. La lista vacía se trata como el conjunto {nil}: una
// sola consulta sin filtro, cuyo ticket ponderado upstream se usa tal cual.
//
// Con varias filiales se suman montos y cantidades y el ticket se recalcula
// sobre los totales. Promediar los tickets por filial daría un resultado
// numéricamente incorrecto.
func AgregarPorFiliales(filiales []string, fetch FetchParcial) (Totales, error) {
	if len(filiales) == 0 {
		p, err := fetch(nil)
		if err != nil {
			return Totales{}, err
		}
		return Totales{Suma: p.Suma, Cantidad: p.Cantidad, Ticket: p.Ticket}, nil
	}

	var t Totales
	for i := range filiales {
		p, err := fetch(&filiales[i])
		if err != nil {
			return Totales{}, err
		}
		t.Suma = t.Suma.Add(p.Suma)
		t.Cantidad += p.Cantidad
	}
	t.Ticket = TicketMedio(t.Suma, t.Cantidad)
	return t, nil
}

// TicketMedio promedio ponderado redondeado a 2 decimales (HALF_UP);
// cero si no hubo ventas.
func TicketMedio(suma decimal.Decimal, cantidad int64) decimal.Decimal {
	if cantidad <= 0 {
		return decimal.Zero
	}
	return suma.DivRound(decimal.NewFromInt(cantidad), 2)
}
