package ventas

import "github.com/shopspring/decimal"

var cien = decimal.NewFromInt(100)

// Variacion variación porcentual entre el valor del período anterior y el
// actual. Un anterior de cero con actividad nueva se reporta como +100%
// (tope, no infinito); sin actividad en ninguno de los dos, 0%.
//
// El cociente se redondea a 4 decimales (HALF_UP) antes de multiplicar por
// 100 para no acumular error de redondeo.
func Variacion(anterior, actual decimal.Decimal) decimal.Decimal {
	if anterior.IsZero() {
		if actual.IsPositive() {
			return cien
		}
		return decimal.Zero
	}
	return actual.Sub(anterior).DivRound(anterior, 4).Mul(cien)
}

// VariacionPorcentual variante nullable: si alguna de las dos cantidades es
// desconocida (nil) la variación no se puede calcular y devuelve nil.
func VariacionPorcentual(anterior, actual *decimal.Decimal) *decimal.Decimal {
	if anterior == nil || actual == nil {
		return nil
	}
	v := Variacion(*anterior, *actual)
	return &v
}
