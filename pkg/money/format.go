// Package money formatea montos y fechas para mostrar en recibos y carritos.
package money

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter formatea montos según locale y moneda.
type Formatter struct {
	printer *message.Printer
	unit    currency.Unit
	scale   int
	symbol  string
	loc     *time.Location
}

// NewFormatter construye el formateador. currencyCode es ISO 4217 (COP, USD...);
// la escala de decimales es la estándar de la moneda.
func NewFormatter(locale, currencyCode, symbol string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("money: locale inválido %q: %w", locale, err)
	}
	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		return nil, fmt.Errorf("money: moneda inválida %q: %w", currencyCode, err)
	}
	scale, _ := currency.Standard.Rounding(unit)
	if symbol == "" {
		symbol = "$"
	}
	return &Formatter{
		printer: message.NewPrinter(tag),
		unit:    unit,
		scale:   scale,
		symbol:  symbol,
		loc:     time.Local,
	}, nil
}

// WithLocation fija la zona horaria usada por Date.
func (f *Formatter) WithLocation(loc *time.Location) *Formatter {
	cp := *f
	cp.loc = loc
	return &cp
}

// Currency formatea un monto con símbolo y separadores del locale: "$ 1.234.567,50".
func (f *Formatter) Currency(d decimal.Decimal) string {
	return f.format(d, f.scale)
}

// Units formatea un monto sin decimales (totales en unidades enteras).
func (f *Formatter) Units(d decimal.Decimal) string {
	return f.format(d.Round(0), 0)
}

// Code código ISO de la moneda.
func (f *Formatter) Code() string {
	return f.unit.String()
}

// Date formatea una fecha de venta.
func (f *Formatter) Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(f.loc).Format("02/01/2006 15:04")
}

func (f *Formatter) format(d decimal.Decimal, scale int) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	v, _ := d.Round(int32(scale)).Float64()
	return sign + f.symbol + " " + f.printer.Sprint(number.Decimal(v, number.Scale(scale)))
}
