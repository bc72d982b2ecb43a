package main

import (
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `tipo,nombre,sku,precio,iva,proveedor,codigo_barras
proveedor,Lácteos del Valle,,,,,
producto,Leche entera 1L,LEC-1,"4.500,00",5,Lácteos del Valle,7701234
producto,Pan tajado,PAN-1,6200,19,Panadería O'Brien,
producto,Sin sku,,1000,0,,
producto,IVA raro,X-1,1000,16,,
servicio,Domicilio,,,,,
`

func TestParseCatalog(t *testing.T) {
	cat, err := parseCatalog(decodeInput([]byte(sampleCSV)))
	require.NoError(t, err)

	require.Len(t, cat.products, 2)
	assert.True(t, cat.products[0].price.Equal(decimal.NewFromInt(4500)))
	assert.True(t, cat.products[0].taxRate.Equal(decimal.NewFromInt(5)))
	assert.Equal(t, "7701234", cat.products[0].barcode)
	assert.Equal(t, 3, cat.skipped)

	require.Len(t, cat.suppliers, 2, "el proveedor de un producto se crea aunque no tenga fila propia")
	assert.Equal(t, "Lácteos del Valle", cat.suppliers[0].name)
	assert.Equal(t, "Panadería O'Brien", cat.suppliers[1].name)
}

func TestDecodeInput_Latin1(t *testing.T) {
	latin1 := []byte("tipo,nombre\nproveedor,Caf\xe9 Andino\n")
	cat, err := parseCatalog(decodeInput(latin1))
	require.NoError(t, err)
	require.Len(t, cat.suppliers, 1)
	assert.Equal(t, "Café Andino", cat.suppliers[0].name)

	b, err := io.ReadAll(decodeInput([]byte("\xef\xbb\xbftipo")))
	require.NoError(t, err)
	assert.Equal(t, "tipo", string(b), "se descarta el BOM")
}

func TestParseCatalog_FaltaColumna(t *testing.T) {
	_, err := parseCatalog(strings.NewReader("nombre,sku\nx,y\n"))
	assert.Error(t, err)
}

func TestParseAmount(t *testing.T) {
	cases := map[string]string{
		"12500":      "12500",
		"$ 12.500":   "12500",
		"12.500,50":  "12500.5",
		"1.234.567":  "1234567",
		"12500.75":   "12500.75",
		"abc":        "0",
		"1e50000000": "0",
		"":           "0",
	}
	for in, want := range cases {
		assert.True(t, parseAmount(in).Equal(decimal.RequireFromString(want)), in)
	}
}

func TestWriteSQL(t *testing.T) {
	cat, err := parseCatalog(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	company := uuid.MustParse("00000000-0000-0000-0000-000000000002")

	var sb strings.Builder
	require.NoError(t, writeSQL(&sb, company, cat))
	sql := sb.String()

	assert.Contains(t, sql, "INSERT INTO suppliers")
	assert.Contains(t, sql, "'Panadería O''Brien'")
	assert.Contains(t, sql, "'LEC-1', 'Leche entera 1L', 4500.00, 5.00, '7701234'")
	assert.Contains(t, sql, "ON CONFLICT (company_id, sku)")
	assert.Equal(t, 2, strings.Count(sql, "INSERT INTO products"))
}
