package money

import "github.com/shopspring/decimal"

const (
	// MaxExponent exponente decimal admitido en ambos sentidos (1e18 y 1e-18).
	MaxExponent = 18
	// maxCoefficientBits ~30 dígitos significativos.
	maxCoefficientBits = 100
)

// Plausible indica si d puede operarse sin riesgo. Round, Cmp y StringFixed reescalan
// el coeficiente a 10^|exponente|, así que un "1e50000000" bloquea la CPU.
func Plausible(d decimal.Decimal) bool {
	exp := d.Exponent()
	if exp > MaxExponent || exp < -MaxExponent {
		return false
	}
	return d.Coefficient().BitLen() <= maxCoefficientBits
}
